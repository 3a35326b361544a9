package pipeline_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.trai.ch/datagen/internal/adapters/cas"
	"go.trai.ch/datagen/internal/adapters/fs"
	"go.trai.ch/datagen/internal/adapters/telemetry"
	"go.trai.ch/datagen/internal/core/domain"
	"go.trai.ch/datagen/internal/core/ports"
	"go.trai.ch/datagen/internal/core/ports/mocks"
	"go.trai.ch/datagen/internal/engine/hashcache"
	"go.trai.ch/datagen/internal/engine/pipeline"
	"go.uber.org/mock/gomock"
)

var root = filepath.Join("/", "out")

func out(parts ...string) string {
	return filepath.Join(append([]string{root}, parts...)...)
}

// fileProvider writes a fixed set of files.
type fileProvider struct {
	id    string
	files map[string]string
	err   error
	runs  int
}

func (p *fileProvider) ID() string {
	return p.id
}

func (p *fileProvider) Run(_ context.Context, w ports.CachedOutput) error {
	p.runs++
	for path, content := range p.files {
		data := []byte(content)
		if err := w.WriteIfNeeded(path, data, domain.HashBytes(data)); err != nil {
			return err
		}
	}
	return p.err
}

func newRunner(t *testing.T, fsys afero.Fs) *pipeline.Runner {
	t.Helper()
	return newTracedRunner(t, fsys, telemetry.NewNoOpTracer())
}

func newTracedRunner(t *testing.T, fsys afero.Fs, tracer ports.Tracer) *pipeline.Runner {
	t.Helper()
	log := mocks.NewMockLogger(gomock.NewController(t))
	log.EXPECT().Debug(gomock.Any()).AnyTimes()
	log.EXPECT().Info(gomock.Any()).AnyTimes()
	log.EXPECT().Warn(gomock.Any()).AnyTimes()

	caches := hashcache.NewFactory(fsys, cas.NewStore(fsys), fs.NewWalker(fsys), log)
	return pipeline.NewRunner(fsys, caches, tracer, log)
}

func config(version string) *domain.Config {
	return &domain.Config{Root: root, VersionTag: version}
}

func runOnce(t *testing.T, fsys afero.Fs, cfg *domain.Config, opts pipeline.Options, providers ...ports.Provider) *pipeline.Result {
	t.Helper()
	result, err := newRunner(t, fsys).Run(t.Context(), cfg, providers, opts)
	require.NoError(t, err)
	return result
}

func exists(t *testing.T, fsys afero.Fs, path string) bool {
	t.Helper()
	ok, err := afero.Exists(fsys, path)
	require.NoError(t, err)
	return ok
}

func TestRunner_Idempotence(t *testing.T) {
	fsys := afero.NewMemMapFs()
	blocks := &fileProvider{id: "blocks", files: map[string]string{
		out("assets", "a.json"): "a",
		out("assets", "b.json"): "b",
	}}

	first := runOnce(t, fsys, config("1.0"), pipeline.Options{}, blocks)
	assert.Equal(t, 2, first.Report.Written)
	assert.Equal(t, pipeline.StatusCompleted, first.Providers[0].Status)

	second := runOnce(t, fsys, config("1.0"), pipeline.Options{}, blocks)
	assert.Equal(t, 1, blocks.runs, "provider already ran for this version")
	assert.Equal(t, pipeline.StatusUpToDate, second.Providers[0].Status)
	assert.Equal(t, 0, second.Report.Written)
	assert.Equal(t, 0, second.Report.Deleted)

	forced := runOnce(t, fsys, config("1.0"), pipeline.Options{Always: true}, blocks)
	assert.Equal(t, 2, blocks.runs)
	assert.Equal(t, pipeline.StatusCompleted, forced.Providers[0].Status)
	assert.Equal(t, 0, forced.Providers[0].Writes)
	assert.Equal(t, 0, forced.Report.Written)
	assert.Equal(t, 0, forced.Report.Deleted)
	assert.Equal(t, 0, forced.Report.CachesSaved)
}

func TestRunner_ChangeDetection(t *testing.T) {
	fsys := afero.NewMemMapFs()
	blocks := &fileProvider{id: "blocks", files: map[string]string{
		out("a.json"): "a",
		out("b.json"): "b",
		out("c.json"): "c",
	}}
	runOnce(t, fsys, config("1.0"), pipeline.Options{}, blocks)

	before, err := fsys.Stat(out("a.json"))
	require.NoError(t, err)

	blocks.files[out("b.json")] = "b2"
	result := runOnce(t, fsys, config("1.0"), pipeline.Options{Always: true}, blocks)
	assert.Equal(t, 1, result.Report.Written)

	after, err := fsys.Stat(out("a.json"))
	require.NoError(t, err)
	assert.Equal(t, before.ModTime(), after.ModTime())

	data, err := afero.ReadFile(fsys, out("b.json"))
	require.NoError(t, err)
	assert.Equal(t, "b2", string(data))
}

func TestRunner_StaleDeletion(t *testing.T) {
	fsys := afero.NewMemMapFs()
	blocks := &fileProvider{id: "blocks", files: map[string]string{
		out("a.json"): "a",
		out("b.json"): "b",
	}}
	items := &fileProvider{id: "items", files: map[string]string{out("items", "x.json"): "x"}}
	runOnce(t, fsys, config("1.0"), pipeline.Options{}, blocks, items)

	delete(blocks.files, out("b.json"))
	result := runOnce(t, fsys, config("1.0"), pipeline.Options{Always: true}, blocks, items)
	assert.Equal(t, 1, result.Report.Deleted)

	assert.False(t, exists(t, fsys, out("b.json")))
	assert.True(t, exists(t, fsys, out("a.json")))
	assert.True(t, exists(t, fsys, out("items", "x.json")))
	assert.True(t, exists(t, fsys, domain.ManifestPath(root)))
}

func TestRunner_VersionInvalidation(t *testing.T) {
	fsys := afero.NewMemMapFs()
	blocks := &fileProvider{id: "blocks", files: map[string]string{out("a.json"): "a"}}
	items := &fileProvider{id: "items", files: map[string]string{out("b.json"): "b"}}
	runOnce(t, fsys, config("1.0"), pipeline.Options{}, blocks, items)

	result := runOnce(t, fsys, config("1.1"), pipeline.Options{}, blocks, items)
	assert.Equal(t, 2, blocks.runs)
	assert.Equal(t, 2, items.runs)
	for _, p := range result.Providers {
		assert.Equal(t, pipeline.StatusCompleted, p.Status, p.ID)
	}
	assert.Equal(t, 0, result.Report.Written, "content is unchanged")
	assert.Equal(t, 2, result.Report.CachesSaved)

	record, err := cas.NewStore(fsys).Load(root, "blocks")
	require.NoError(t, err)
	assert.Equal(t, "1.1", record.Version())
}

func TestRunner_CorruptCache(t *testing.T) {
	fsys := afero.NewMemMapFs()
	blocks := &fileProvider{id: "blocks", files: map[string]string{out("a.json"): "a", out("b.json"): "b"}}
	runOnce(t, fsys, config("1.0"), pipeline.Options{}, blocks)

	store := cas.NewStore(fsys)
	require.NoError(t, afero.WriteFile(fsys, store.Path(root, "blocks"), nil, 0o644))

	result := runOnce(t, fsys, config("1.0"), pipeline.Options{}, blocks)
	assert.Equal(t, 2, blocks.runs)
	assert.Equal(t, 2, result.Report.Written)

	record, err := store.Load(root, "blocks")
	require.NoError(t, err)
	assert.Equal(t, 2, record.Len())
}

func TestRunner_ProviderFailureAbortsRun(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, out("stale.json"), []byte("s"), 0o644))

	blocks := &fileProvider{id: "blocks", files: map[string]string{out("a.json"): "a"}}
	broken := &fileProvider{id: "broken", err: errors.New("generator crashed")}

	_, err := newRunner(t, fsys).Run(t.Context(), config("1.0"), []ports.Provider{blocks, broken}, pipeline.Options{})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrProviderFailed)
	assert.ErrorContains(t, err, "generator crashed")

	assert.True(t, exists(t, fsys, out("stale.json")), "no purge after a failed run")
	assert.False(t, exists(t, fsys, domain.ManifestPath(root)))
	assert.False(t, exists(t, fsys, cas.NewStore(fsys).Path(root, "blocks")), "no cache persisted")
}

func TestRunner_Selection(t *testing.T) {
	fsys := afero.NewMemMapFs()
	blocks := &fileProvider{id: "blocks", files: map[string]string{out("a.json"): "a"}}
	items := &fileProvider{id: "items", files: map[string]string{out("b.json"): "b"}}
	runOnce(t, fsys, config("1.0"), pipeline.Options{}, blocks, items)

	result := runOnce(t, fsys, config("1.0"), pipeline.Options{Always: true, Selection: []string{"items"}}, blocks, items)
	assert.Equal(t, 1, blocks.runs)
	assert.Equal(t, 2, items.runs)
	assert.Equal(t, pipeline.StatusSkipped, result.Providers[0].Status)
	assert.Equal(t, pipeline.StatusCompleted, result.Providers[1].Status)

	assert.True(t, exists(t, fsys, out("a.json")), "unselected outputs stay referenced")
	assert.Equal(t, 0, result.Report.Deleted)
}

func TestRunner_UnknownSelection(t *testing.T) {
	fsys := afero.NewMemMapFs()
	blocks := &fileProvider{id: "blocks"}

	_, err := newRunner(t, fsys).Run(t.Context(), config("1.0"), []ports.Provider{blocks},
		pipeline.Options{Selection: []string{"nope"}})
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrProviderNotFound.Error())
	assert.Equal(t, 0, blocks.runs)
}

func TestRunner_Cancelled(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, out("stale.json"), []byte("s"), 0o644))
	blocks := &fileProvider{id: "blocks"}

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	_, err := newRunner(t, fsys).Run(ctx, config("1.0"), []ports.Provider{blocks}, pipeline.Options{})
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, blocks.runs)
	assert.True(t, exists(t, fsys, out("stale.json")))
}

func TestRunner_Manifest(t *testing.T) {
	fsys := afero.NewMemMapFs()
	blocks := &fileProvider{id: "blocks"}
	items := &fileProvider{id: "items"}
	runOnce(t, fsys, config("1.0"), pipeline.Options{}, blocks, items)

	data, err := afero.ReadFile(fsys, domain.ManifestPath(root))
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"version\": \"1.0\",\n  \"providers\": [\n    \"blocks\",\n    \"items\"\n  ]\n}\n", string(data))

	before, err := fsys.Stat(domain.ManifestPath(root))
	require.NoError(t, err)
	runOnce(t, fsys, config("1.0"), pipeline.Options{}, blocks, items)
	after, err := fsys.Stat(domain.ManifestPath(root))
	require.NoError(t, err)
	assert.Equal(t, before.ModTime(), after.ModTime(), "identical manifest is not rewritten")
}

func TestRunner_Tracing(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	t.Cleanup(func() { _ = tp.Shutdown(t.Context()) })
	tracer := telemetry.NewOTelTracerWithProvider(tp, "test")

	fsys := afero.NewMemMapFs()
	blocks := &fileProvider{id: "blocks", files: map[string]string{out("a.json"): "a"}}
	items := &fileProvider{id: "items", files: map[string]string{out("b.json"): "b"}}

	_, err := newTracedRunner(t, fsys, tracer).Run(t.Context(), config("1.0"), []ports.Provider{blocks, items},
		pipeline.Options{Selection: []string{"blocks"}})
	require.NoError(t, err)

	spans := recorder.Ended()
	names := make([]string, len(spans))
	for i, s := range spans {
		names[i] = s.Name()
	}
	assert.Equal(t, []string{"provider blocks", "datagen.run"}, names, "unselected providers get no span")
	assert.Equal(t, spans[1].SpanContext().SpanID(), spans[0].Parent().SpanID())
}

func TestRunner_TracingRecordsFailure(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	t.Cleanup(func() { _ = tp.Shutdown(t.Context()) })
	tracer := telemetry.NewOTelTracerWithProvider(tp, "test")

	failing := &fileProvider{id: "blocks", err: errors.New("boom")}
	_, err := newTracedRunner(t, afero.NewMemMapFs(), tracer).Run(t.Context(), config("1.0"),
		[]ports.Provider{failing}, pipeline.Options{})
	require.Error(t, err)

	spans := recorder.Ended()
	require.Len(t, spans, 2)
	for _, s := range spans {
		assert.Equal(t, codes.Error, s.Status().Code, s.Name())
	}
}
