package main

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"go.trai.ch/datagen/internal/adapters/cas"
	"go.trai.ch/datagen/internal/adapters/fs"
	"go.trai.ch/datagen/internal/adapters/telemetry"
	"go.trai.ch/datagen/internal/app"
	"go.trai.ch/datagen/internal/core/domain"
	"go.trai.ch/datagen/internal/core/ports/mocks"
	"go.trai.ch/datagen/internal/engine/hashcache"
	"go.trai.ch/datagen/internal/engine/pipeline"
	"go.uber.org/mock/gomock"
)

type testMocks struct {
	loader   *mocks.MockConfigLoader
	store    *mocks.MockCacheStore
	verifier *mocks.MockVerifier
	logger   *mocks.MockLogger
}

func newProvider(t *testing.T) (ComponentProvider, *testMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)
	fsys := afero.NewMemMapFs()

	m := &testMocks{
		loader:   mocks.NewMockConfigLoader(ctrl),
		store:    mocks.NewMockCacheStore(ctrl),
		verifier: mocks.NewMockVerifier(ctrl),
		logger:   mocks.NewMockLogger(ctrl),
	}
	m.logger.EXPECT().Debug(gomock.Any()).AnyTimes()
	m.logger.EXPECT().Info(gomock.Any()).AnyTimes()

	caches := hashcache.NewFactory(fsys, cas.NewStore(fsys), fs.NewWalker(fsys), m.logger)
	application := app.New(
		fsys,
		m.loader,
		mocks.NewMockProviderFactory(ctrl),
		pipeline.NewRunner(fsys, caches, telemetry.NewNoOpTracer(), m.logger),
		m.store,
		m.verifier,
		mocks.NewMockWatcherFactory(ctrl),
		m.logger,
	)

	return func(_ context.Context) (*app.Components, func(), error) {
		return &app.Components{
			App:    application,
			Logger: m.logger,
		}, func() {}, nil
	}, m
}

// TestRun_Success verifies that the run function returns 0 when the command succeeds.
func TestRun_Success(t *testing.T) {
	provider, _ := newProvider(t)

	stdout, stderr := new(bytes.Buffer), new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"version"}, stdout, stderr, provider)

	assert.Equal(t, 0, exitCode)
	assert.Contains(t, stdout.String(), "datagen version")
}

// TestRun_InitializationError verifies that run returns 1 when component initialization fails.
func TestRun_InitializationError(t *testing.T) {
	provider := func(_ context.Context) (*app.Components, func(), error) {
		return nil, nil, errors.New("init failed")
	}

	stderr := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"version"}, new(bytes.Buffer), stderr, provider)

	assert.Equal(t, 1, exitCode)
	assert.Contains(t, stderr.String(), "Error: init failed")
}

// TestRun_ExecutionError verifies that run returns 1 and logs when the command fails.
func TestRun_ExecutionError(t *testing.T) {
	provider, m := newProvider(t)
	m.loader.EXPECT().Load(".").Return(nil, domain.ErrConfigNotFound)
	m.logger.EXPECT().Error(gomock.Any()).Times(1)

	exitCode := run(context.Background(), []string{"clean"}, new(bytes.Buffer), new(bytes.Buffer), provider)
	assert.Equal(t, 1, exitCode)
}

// TestRun_DriftNotLogged verifies that drift exits non-zero without logging a second time.
func TestRun_DriftNotLogged(t *testing.T) {
	provider, m := newProvider(t)
	root := filepath.Join("/", "out")
	record := domain.NewProviderCache("1.0", nil)

	m.loader.EXPECT().Load(".").Return(&domain.Config{
		Root:      root,
		Providers: []domain.ProviderSpec{{ID: "blocks"}},
	}, nil)
	m.store.EXPECT().Load(root, "blocks").Return(record, nil)
	m.store.EXPECT().Path(root, "blocks").Return("cache")
	m.verifier.EXPECT().Verify(record).Return([]domain.Drift{{Path: filepath.Join(root, "a.json"), Missing: true}}, nil)

	stdout := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"inspect", "blocks", "--verify"}, stdout, new(bytes.Buffer), provider)

	assert.Equal(t, 1, exitCode)
	assert.Contains(t, stdout.String(), "missing a.json")
}

// TestRun_ShutsDownTelemetry verifies that telemetry is flushed once the command returns.
func TestRun_ShutsDownTelemetry(t *testing.T) {
	provider, _ := newProvider(t)

	var shutdowns int
	withShutdown := func(ctx context.Context) (*app.Components, func(), error) {
		components, cleanup, err := provider(ctx)
		if components != nil {
			components.Shutdown = func(context.Context) error {
				shutdowns++
				return nil
			}
		}
		return components, cleanup, err
	}

	exitCode := run(context.Background(), []string{"version"}, new(bytes.Buffer), new(bytes.Buffer), withShutdown)

	assert.Equal(t, 0, exitCode)
	assert.Equal(t, 1, shutdowns)
}
