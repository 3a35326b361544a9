// Package app implements the application layer for datagen.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/afero"
	"go.trai.ch/datagen/internal/core/domain"
	"go.trai.ch/datagen/internal/core/ports"
	"go.trai.ch/datagen/internal/engine/pipeline"
	"go.trai.ch/datagen/internal/ui/style"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	fs           afero.Fs
	configLoader ports.ConfigLoader
	providers    ports.ProviderFactory
	runner       *pipeline.Runner
	store        ports.CacheStore
	verifier     ports.Verifier
	watchers     ports.WatcherFactory
	logger       ports.Logger
}

// New creates a new App instance.
func New(
	fsys afero.Fs,
	loader ports.ConfigLoader,
	providers ports.ProviderFactory,
	runner *pipeline.Runner,
	store ports.CacheStore,
	verifier ports.Verifier,
	watchers ports.WatcherFactory,
	log ports.Logger,
) *App {
	return &App{
		fs:           fsys,
		configLoader: loader,
		providers:    providers,
		runner:       runner,
		store:        store,
		verifier:     verifier,
		watchers:     watchers,
		logger:       log,
	}
}

// ConfigOptions locates the configuration and overrides parts of it.
type ConfigOptions struct {
	// ConfigPath is a config file or a directory to search upwards from. Empty means ".".
	ConfigPath string
	// Root overrides the output root.
	Root string
}

// RunOptions configuration for the Run method.
type RunOptions struct {
	ConfigOptions
	VersionTag string
	Jobs       int
	Always     bool
}

// CleanOptions configuration for the Clean method.
type CleanOptions struct {
	ConfigOptions
	// All removes the whole output root instead of only the cache directory.
	All bool
}

// InspectOptions configuration for the Inspect method.
type InspectOptions struct {
	ConfigOptions
	// Verify rehashes every recorded output and reports drift.
	Verify bool
}

type logConfigurer interface {
	SetJSON(enable bool)
	SetVerbose(enable bool)
}

// ConfigureLogging switches the logger format and verbosity, if the logger supports it.
func (a *App) ConfigureLogging(jsonOutput, verbose bool) {
	if lc, ok := a.logger.(logConfigurer); ok {
		lc.SetJSON(jsonOutput)
		lc.SetVerbose(verbose)
	}
}

// Run generates the outputs of the selected providers, or of all providers when
// selection is empty.
func (a *App) Run(ctx context.Context, selection []string, opts RunOptions) error {
	cfg, err := a.loadConfig(opts.ConfigOptions)
	if err != nil {
		return err
	}
	if opts.VersionTag != "" {
		cfg.VersionTag = opts.VersionTag
	}
	if opts.Jobs > 0 {
		cfg.Jobs = opts.Jobs
	}

	providers, err := a.providers.Providers(cfg)
	if err != nil {
		return zerr.Wrap(err, "failed to create providers")
	}

	_, err = a.runner.Run(ctx, cfg, providers, pipeline.Options{
		Always:    opts.Always,
		Selection: selection,
	})
	return err
}

// Watch runs like Run, then reruns every time the configuration file changes until
// ctx is done. Failed runs are logged and do not end the session.
func (a *App) Watch(ctx context.Context, selection []string, opts RunOptions) error {
	cfg, err := a.loadConfig(opts.ConfigOptions)
	if err != nil {
		return err
	}

	w, err := a.watchers.NewWatcher()
	if err != nil {
		return zerr.Wrap(err, domain.ErrWatchFailed.Error())
	}
	defer func() { _ = w.Stop() }()

	if err := w.Start(ctx, []string{cfg.File}); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrWatchFailed.Error()), "path", cfg.File)
	}

	a.runLogged(ctx, selection, opts)
	a.logger.Info(fmt.Sprintf("watching %s for changes", cfg.File))

	for changed := range w.Changes() {
		a.logger.Info(fmt.Sprintf("%s changed, regenerating", strings.Join(changed, ", ")))
		a.runLogged(ctx, selection, opts)
	}
	return nil
}

func (a *App) runLogged(ctx context.Context, selection []string, opts RunOptions) {
	if err := a.Run(ctx, selection, opts); err != nil && ctx.Err() == nil {
		a.logger.Error(err)
	}
}

// Clean removes the cache directory, or the whole output root with opts.All.
func (a *App) Clean(_ context.Context, opts CleanOptions) error {
	cfg, err := a.loadConfig(opts.ConfigOptions)
	if err != nil {
		return err
	}

	var errs error
	remove := func(path, name string) {
		a.logger.Info(fmt.Sprintf("removing %s...", name))
		if err := a.fs.RemoveAll(path); err != nil {
			errs = errors.Join(errs, zerr.With(zerr.Wrap(err, domain.ErrCleanFailed.Error()), "path", path))
			return
		}
		a.logger.Info(fmt.Sprintf("removed %s", name))
	}

	if opts.All {
		remove(cfg.Root, "output root")
	} else {
		remove(domain.CacheDir(cfg.Root), "cache directory")
	}
	return errs
}

// Inspect prints the cache record of one provider to w.
func (a *App) Inspect(_ context.Context, w io.Writer, providerID string, opts InspectOptions) error {
	cfg, err := a.loadConfig(opts.ConfigOptions)
	if err != nil {
		return err
	}

	if !slices.ContainsFunc(cfg.Providers, func(p domain.ProviderSpec) bool { return p.ID == providerID }) {
		return zerr.With(domain.ErrProviderNotFound, "provider", providerID)
	}

	record, err := a.store.Load(cfg.Root, providerID)
	if err != nil {
		return err
	}
	if record == nil {
		_, _ = fmt.Fprintf(w, "%s has no cache record yet\n", providerID)
		return nil
	}

	_, _ = fmt.Fprintf(w, "%s\n", style.Heading(providerID))
	_, _ = fmt.Fprintf(w, "version: %s\n", record.Version())
	_, _ = fmt.Fprintf(w, "cache file: %s\n", a.store.Path(cfg.Root, providerID))
	_, _ = fmt.Fprintf(w, "outputs: %d\n", record.Len())
	for _, e := range record.Entries() {
		_, _ = fmt.Fprintf(w, "%s %s\n", e.Hash, displayPath(cfg.Root, e.Path))
	}

	if !opts.Verify {
		return nil
	}
	return a.verify(w, cfg.Root, record)
}

func (a *App) verify(w io.Writer, root string, record *domain.ProviderCache) error {
	drifts, err := a.verifier.Verify(record)
	if err != nil {
		return err
	}
	if len(drifts) == 0 {
		_, _ = fmt.Fprintf(w, "%s all outputs match\n", style.Check)
		return nil
	}

	for _, d := range drifts {
		if d.Missing {
			_, _ = fmt.Fprintf(w, "%s missing %s\n", style.Cross, displayPath(root, d.Path))
			continue
		}
		_, _ = fmt.Fprintf(w, "%s changed %s\n", style.Tilde, displayPath(root, d.Path))
	}
	return zerr.With(zerr.Wrap(domain.ErrCacheDrift, "verification failed"), "count", len(drifts))
}

func (a *App) loadConfig(opts ConfigOptions) (*domain.Config, error) {
	path := opts.ConfigPath
	if path == "" {
		path = "."
	}

	cfg, err := a.configLoader.Load(path)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}

	if opts.Root != "" {
		cfg.Root = opts.Root
	}
	root, err := filepath.Abs(cfg.Root)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrFailedToGetRoot.Error()), "root", cfg.Root)
	}
	cfg.Root = root

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func displayPath(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return path
	}
	return filepath.ToSlash(rel)
}
