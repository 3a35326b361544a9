// Package declared implements providers whose outputs are declared in datagen.yaml.
package declared

import (
	"context"
	"path/filepath"

	"go.trai.ch/datagen/internal/core/domain"
	"go.trai.ch/datagen/internal/core/ports"
	"go.trai.ch/datagen/internal/engine/hashcache" //nolint:depguard // shared stable JSON writer
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

var _ ports.Provider = (*Provider)(nil)

// output is a declared output resolved to its absolute path.
type output struct {
	path    string
	json    any
	content string
}

// Provider writes a fixed set of declared outputs.
type Provider struct {
	id      string
	jobs    int
	outputs []output
}

// ID returns the provider id.
func (p *Provider) ID() string {
	return p.id
}

// Outputs returns the absolute paths the provider writes, in declaration order.
func (p *Provider) Outputs() []string {
	paths := make([]string, len(p.outputs))
	for i, o := range p.outputs {
		paths[i] = o.path
	}
	return paths
}

// Run writes every declared output through out, at most jobs at a time.
func (p *Provider) Run(ctx context.Context, out ports.CachedOutput) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.jobs)

	for _, o := range p.outputs {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return o.write(out)
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}

func (o output) write(out ports.CachedOutput) error {
	if o.json != nil {
		return hashcache.SaveStable(out, o.json, o.path)
	}
	data := []byte(o.content)
	return out.WriteIfNeeded(o.path, data, domain.HashBytes(data))
}

func resolveOutput(root, namespace string, spec *domain.OutputSpec) (output, error) {
	o := output{json: spec.JSON, content: spec.Content}

	if spec.Path != "" {
		o.path = filepath.Join(root, filepath.FromSlash(spec.Path))
		return o, nil
	}

	loc, err := domain.ParseResourceLocation(spec.Resource, namespace)
	if err != nil {
		return output{}, err
	}
	target := spec.Target
	if target == "" {
		target = domain.TargetData
	}
	o.path = domain.NewPathProvider(root, target, spec.Kind).JSON(loc)
	return o, nil
}

func newProvider(root string, jobs int, spec *domain.ProviderSpec) (*Provider, error) {
	p := &Provider{
		id:      spec.ID,
		jobs:    jobs,
		outputs: make([]output, 0, len(spec.Outputs)),
	}

	seen := make(map[string]bool, len(spec.Outputs))
	for i := range spec.Outputs {
		o, err := resolveOutput(root, spec.Namespace, &spec.Outputs[i])
		if err != nil {
			return nil, zerr.With(err, "provider", spec.ID)
		}
		if seen[o.path] {
			return nil, zerr.With(zerr.With(domain.ErrDuplicateOutput, "provider", spec.ID), "path", o.path)
		}
		seen[o.path] = true
		p.outputs = append(p.outputs, o)
	}
	return p, nil
}
