// Package pipeline runs providers against a hash cache and reconciles the output root.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/spf13/afero"
	"go.trai.ch/datagen/internal/core/domain"
	"go.trai.ch/datagen/internal/core/ports"
	"go.trai.ch/datagen/internal/engine/hashcache"
	"go.trai.ch/zerr"
)

// ProviderStatus is the outcome of a single provider in a run.
type ProviderStatus string

const (
	// StatusCompleted indicates the provider ran to completion.
	StatusCompleted ProviderStatus = "Completed"
	// StatusUpToDate indicates the provider already ran for the current version.
	StatusUpToDate ProviderStatus = "UpToDate"
	// StatusSkipped indicates the provider was not selected for this run.
	StatusSkipped ProviderStatus = "Skipped"
)

// Options controls a single run.
type Options struct {
	// Always runs every provider regardless of the version recorded in its cache.
	Always bool
	// Selection restricts the run to the named providers. Empty selects all.
	Selection []string
}

// ProviderResult describes what happened to one provider.
type ProviderResult struct {
	ID       string
	Status   ProviderStatus
	Writes   int
	Duration time.Duration
}

// Result is the outcome of a run.
type Result struct {
	Providers []ProviderResult
	Report    domain.PurgeReport
}

// Runner runs providers one at a time, then writes the manifest and purges stale files.
type Runner struct {
	fs      afero.Fs
	caches  *hashcache.Factory
	tracer  ports.Tracer
	log     ports.Logger
	elapsed func(start time.Time) time.Duration
}

// NewRunner creates a new Runner.
func NewRunner(fsys afero.Fs, caches *hashcache.Factory, tracer ports.Tracer, log ports.Logger) *Runner {
	return &Runner{
		fs:      fsys,
		caches:  caches,
		tracer:  tracer,
		log:     log,
		elapsed: time.Since,
	}
}

// Run executes the providers in order. A provider failure aborts the run before any
// record is persisted or any file is purged.
func (r *Runner) Run(
	ctx context.Context,
	cfg *domain.Config,
	providers []ports.Provider,
	opts Options,
) (*Result, error) {
	ctx, span := r.tracer.Start(ctx, "datagen.run")
	defer span.End()
	span.SetAttribute("version", cfg.VersionTag)
	span.SetAttribute("root", cfg.Root)

	result, err := r.run(ctx, cfg, providers, opts)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	span.SetAttribute("files.seen", result.Report.FilesSeen)
	span.SetAttribute("files.deleted", result.Report.Deleted)
	span.SetAttribute("caches.saved", result.Report.CachesSaved)
	return result, nil
}

func (r *Runner) run(
	ctx context.Context,
	cfg *domain.Config,
	providers []ports.Provider,
	opts Options,
) (*Result, error) {
	ids := make([]string, len(providers))
	for i, p := range providers {
		ids[i] = p.ID()
	}

	for _, name := range opts.Selection {
		if !slices.Contains(ids, name) {
			return nil, zerr.With(domain.ErrProviderNotFound, "provider", name)
		}
	}

	cache, err := r.caches.New(cfg.Root, cfg.VersionTag, ids)
	if err != nil {
		return nil, err
	}

	result := &Result{Providers: make([]ProviderResult, 0, len(providers))}
	for _, p := range providers {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		res, err := r.runProvider(ctx, cache, p, opts)
		if err != nil {
			return nil, err
		}
		result.Providers = append(result.Providers, res)
	}

	if err := writeManifest(r.fs, cfg.Root, cfg.VersionTag, ids); err != nil {
		return nil, err
	}

	report, err := cache.PurgeStaleAndWrite()
	if err != nil {
		return nil, err
	}
	result.Report = report
	return result, nil
}

func (r *Runner) runProvider(
	ctx context.Context,
	cache *hashcache.HashCache,
	p ports.Provider,
	opts Options,
) (ProviderResult, error) {
	id := p.ID()

	if len(opts.Selection) > 0 && !slices.Contains(opts.Selection, id) {
		r.log.Debug(fmt.Sprintf("%s not selected, keeping previous outputs", id))
		return ProviderResult{ID: id, Status: StatusSkipped}, nil
	}

	if !opts.Always && !cache.ShouldRunInThisVersion(id) {
		r.log.Debug(fmt.Sprintf("%s already run for version %s", id, cache.VersionTag()))
		return ProviderResult{ID: id, Status: StatusUpToDate}, nil
	}

	ctx, span := r.tracer.Start(ctx, "provider "+id)
	defer span.End()
	span.SetAttribute("provider.id", id)

	res, err := r.executeProvider(ctx, cache, p)
	if err != nil {
		span.RecordError(err)
		return ProviderResult{}, err
	}
	span.SetAttribute("writes", res.Writes)
	return res, nil
}

func (r *Runner) executeProvider(ctx context.Context, cache *hashcache.HashCache, p ports.Provider) (ProviderResult, error) {
	id := p.ID()
	start := time.Now()
	updater, err := cache.BeginUpdate(id)
	if err != nil {
		return ProviderResult{}, err
	}

	runErr := p.Run(ctx, updater)
	update := updater.Close()
	if runErr != nil {
		return ProviderResult{}, errors.Join(domain.ErrProviderFailed, zerr.With(runErr, "provider", id))
	}

	if err := cache.ApplyUpdate(update); err != nil {
		return ProviderResult{}, err
	}

	took := r.elapsed(start)
	r.log.Info(fmt.Sprintf("%s finished after %d ms, %d written", id, took.Milliseconds(), update.Writes))
	return ProviderResult{
		ID:       id,
		Status:   StatusCompleted,
		Writes:   update.Writes,
		Duration: took,
	}, nil
}
