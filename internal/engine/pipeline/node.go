package pipeline

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/spf13/afero"
	"go.trai.ch/datagen/internal/adapters/fs"        //nolint:depguard // Wired in engine wiring
	"go.trai.ch/datagen/internal/adapters/logger"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/datagen/internal/adapters/telemetry" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/datagen/internal/core/ports"
	"go.trai.ch/datagen/internal/engine/hashcache"
)

// NodeID is the unique identifier for the pipeline runner Graft node.
const NodeID graft.ID = "engine.pipeline"

func init() {
	graft.Register(graft.Node[*Runner]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			fs.FsNodeID,
			hashcache.NodeID,
			telemetry.TracerNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Runner, error) {
			fsys, err := graft.Dep[afero.Fs](ctx)
			if err != nil {
				return nil, err
			}

			caches, err := graft.Dep[*hashcache.Factory](ctx)
			if err != nil {
				return nil, err
			}

			tracer, err := graft.Dep[ports.Tracer](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return NewRunner(fsys, caches, tracer, log), nil
		},
	})
}
