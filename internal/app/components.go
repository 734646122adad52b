package app

import (
	"github.com/modkit-dev/modkit/internal/core/ports"
	"github.com/modkit-dev/modkit/internal/engine/registry"
	"github.com/modkit-dev/modkit/internal/engine/worker"
)

// Components contains all the initialized application components.
// This struct provides controlled access to components needed by the CLI layer.
type Components struct {
	App      *App
	Logger   ports.Logger
	Registry *registry.Registry
	Queue    *worker.Queue
}
