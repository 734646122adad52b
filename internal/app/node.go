package app

import (
	"context"

	"github.com/grindlemire/graft"

	"github.com/modkit-dev/modkit/internal/adapters/config" //nolint:depguard // Wired in app layer
	"github.com/modkit-dev/modkit/internal/adapters/logger" //nolint:depguard // Wired in app layer
	"github.com/modkit-dev/modkit/internal/adapters/vfs"    //nolint:depguard // Wired in app layer
	"github.com/modkit-dev/modkit/internal/core/ports"
	"github.com/modkit-dev/modkit/internal/engine/registry"
	"github.com/modkit-dev/modkit/internal/engine/worker"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	// App Node
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			vfs.NodeID,
			registry.NodeID,
			worker.NodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*App, error) {
			catalogs, err := graft.Dep[ports.CatalogLoader](ctx)
			if err != nil {
				return nil, err
			}
			sources, err := graft.Dep[ports.SourceFactory](ctx)
			if err != nil {
				return nil, err
			}
			reg, err := graft.Dep[*registry.Registry](ctx)
			if err != nil {
				return nil, err
			}
			queue, err := graft.Dep[*worker.Queue](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return New(catalogs, sources, reg, queue, log), nil
		},
	})

	// Components Node
	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
			registry.NodeID,
			worker.NodeID,
		},
		Run: runComponentsNode,
	})
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	application, err := graft.Dep[*App](ctx)
	if err != nil {
		return nil, err
	}
	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}
	reg, err := graft.Dep[*registry.Registry](ctx)
	if err != nil {
		return nil, err
	}
	queue, err := graft.Dep[*worker.Queue](ctx)
	if err != nil {
		return nil, err
	}

	return &Components{
		App:      application,
		Logger:   log,
		Registry: reg,
		Queue:    queue,
	}, nil
}
