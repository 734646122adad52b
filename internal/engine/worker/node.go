package worker

import (
	"context"

	"github.com/grindlemire/graft"

	"github.com/modkit-dev/modkit/internal/adapters/logger"
	"github.com/modkit-dev/modkit/internal/adapters/telemetry"
	"github.com/modkit-dev/modkit/internal/core/ports"
)

// NodeID is the unique identifier for the worker queue node.
const NodeID graft.ID = "engine.worker_queue"

func init() {
	graft.Register(graft.Node[*Queue]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{telemetry.NodeID, logger.NodeID},
		Run: func(ctx context.Context) (*Queue, error) {
			tracer, err := graft.Dep[ports.Tracer](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewQueue(tracer, log), nil
		},
	})
}
