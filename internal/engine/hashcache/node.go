package hashcache

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/spf13/afero"
	"go.trai.ch/datagen/internal/adapters/cas"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/datagen/internal/adapters/fs"     //nolint:depguard // Wired in engine wiring
	"go.trai.ch/datagen/internal/adapters/logger" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/datagen/internal/core/ports"
)

// NodeID is the unique identifier for the hash cache factory Graft node.
const NodeID graft.ID = "engine.hashcache"

func init() {
	graft.Register(graft.Node[*Factory]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			fs.FsNodeID,
			fs.WalkerNodeID,
			cas.NodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Factory, error) {
			fsys, err := graft.Dep[afero.Fs](ctx)
			if err != nil {
				return nil, err
			}

			walker, err := graft.Dep[ports.FileWalker](ctx)
			if err != nil {
				return nil, err
			}

			store, err := graft.Dep[ports.CacheStore](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return NewFactory(fsys, store, walker, log), nil
		},
	})
}
