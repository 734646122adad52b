package patch

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/viant/afs"

	"github.com/modkit-dev/modkit/internal/adapters/logger"
	"github.com/modkit-dev/modkit/internal/core/ports"
)

// NodeID is the unique identifier for the patch store Graft node.
const NodeID graft.ID = "adapter.patch_store"

func init() {
	graft.Register(graft.Node[ports.PatchStore]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.PatchStore, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewStore(afs.New(), log), nil
		},
	})
}
