package registry

import (
	"context"

	"github.com/grindlemire/graft"

	"github.com/modkit-dev/modkit/internal/adapters/logger"
	"github.com/modkit-dev/modkit/internal/adapters/patch"
	"github.com/modkit-dev/modkit/internal/core/ports"
)

// NodeID is the unique identifier for the registry node.
const NodeID graft.ID = "engine.registry"

func init() {
	graft.Register(graft.Node[*Registry]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{patch.NodeID, logger.NodeID},
		Run: func(ctx context.Context) (*Registry, error) {
			patches, err := graft.Dep[ports.PatchStore](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return New(patches, log), nil
		},
	})
}
