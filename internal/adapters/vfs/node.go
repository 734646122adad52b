package vfs

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/viant/afs"

	"github.com/modkit-dev/modkit/internal/adapters/logger"
	"github.com/modkit-dev/modkit/internal/core/ports"
)

// NodeID is the unique identifier for the source factory Graft node.
const NodeID graft.ID = "adapter.vfs_factory"

func init() {
	graft.Register(graft.Node[ports.SourceFactory]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.SourceFactory, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewFactory(afs.New(), log), nil
		},
	})
}
