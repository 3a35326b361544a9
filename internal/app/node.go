package app

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/spf13/afero"
	"go.trai.ch/datagen/internal/adapters/cas"       //nolint:depguard // Wired in app layer
	"go.trai.ch/datagen/internal/adapters/config"    //nolint:depguard // Wired in app layer
	"go.trai.ch/datagen/internal/adapters/declared"  //nolint:depguard // Wired in app layer
	"go.trai.ch/datagen/internal/adapters/fs"        //nolint:depguard // Wired in app layer
	"go.trai.ch/datagen/internal/adapters/logger"    //nolint:depguard // Wired in app layer
	"go.trai.ch/datagen/internal/adapters/telemetry" //nolint:depguard // Wired in app layer
	"go.trai.ch/datagen/internal/adapters/watcher"   //nolint:depguard // Wired in app layer
	"go.trai.ch/datagen/internal/core/ports"
	"go.trai.ch/datagen/internal/engine/pipeline"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			fs.FsNodeID,
			fs.VerifierNodeID,
			config.NodeID,
			declared.NodeID,
			pipeline.NodeID,
			cas.NodeID,
			watcher.NodeID,
			logger.NodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
			telemetry.TracerNodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			app, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			tracer, err := graft.Dep[ports.Tracer](ctx)
			if err != nil {
				return nil, err
			}

			components := &Components{App: app, Logger: log}
			if s, ok := tracer.(shutdowner); ok {
				components.Shutdown = s.Shutdown
			}
			return components, nil
		},
	})
}

type shutdowner interface {
	Shutdown(ctx context.Context) error
}

func runAppNode(ctx context.Context) (*App, error) {
	fsys, err := graft.Dep[afero.Fs](ctx)
	if err != nil {
		return nil, err
	}

	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}

	providers, err := graft.Dep[ports.ProviderFactory](ctx)
	if err != nil {
		return nil, err
	}

	runner, err := graft.Dep[*pipeline.Runner](ctx)
	if err != nil {
		return nil, err
	}

	store, err := graft.Dep[ports.CacheStore](ctx)
	if err != nil {
		return nil, err
	}

	verifier, err := graft.Dep[ports.Verifier](ctx)
	if err != nil {
		return nil, err
	}

	watchers, err := graft.Dep[ports.WatcherFactory](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return New(fsys, loader, providers, runner, store, verifier, watchers, log), nil
}
