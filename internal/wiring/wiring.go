// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "github.com/modkit-dev/modkit/internal/adapters/config"
	_ "github.com/modkit-dev/modkit/internal/adapters/logger"
	_ "github.com/modkit-dev/modkit/internal/adapters/patch"
	_ "github.com/modkit-dev/modkit/internal/adapters/telemetry"
	_ "github.com/modkit-dev/modkit/internal/adapters/vfs"
	// Register app and engine nodes.
	_ "github.com/modkit-dev/modkit/internal/app"
	_ "github.com/modkit-dev/modkit/internal/engine/registry"
	_ "github.com/modkit-dev/modkit/internal/engine/worker"
)
