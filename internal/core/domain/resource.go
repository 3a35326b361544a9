package domain

import (
	"path/filepath"
	"regexp"
	"strings"

	"go.trai.ch/zerr"
)

// DefaultNamespace is used for resource ids written without a namespace.
const DefaultNamespace = "minecraft"

var (
	namespaceRegex = regexp.MustCompile(`^[a-z0-9_.-]+$`)
	pathRegex      = regexp.MustCompile(`^[a-z0-9_./-]+$`)
)

// ResourceLocation names a generated resource as namespace:path.
type ResourceLocation struct {
	Namespace string
	Path      string
}

// ParseResourceLocation parses "namespace:path" or a bare "path", in which case
// defaultNamespace is used.
func ParseResourceLocation(s, defaultNamespace string) (ResourceLocation, error) {
	ns, p, found := strings.Cut(s, ":")
	if !found {
		ns, p = defaultNamespace, s
	}
	if ns == "" {
		ns = DefaultNamespace
	}

	if !namespaceRegex.MatchString(ns) || !pathRegex.MatchString(p) {
		return ResourceLocation{}, zerr.With(ErrInvalidResourceLocation, "resource", s)
	}
	for seg := range strings.SplitSeq(p, "/") {
		if seg == "" || seg == "." || seg == ".." {
			return ResourceLocation{}, zerr.With(ErrInvalidResourceLocation, "resource", s)
		}
	}
	return ResourceLocation{Namespace: ns, Path: p}, nil
}

// String returns the namespace:path form.
func (r ResourceLocation) String() string {
	return r.Namespace + ":" + r.Path
}

// PackTarget selects the top-level pack directory outputs are written to.
type PackTarget string

const (
	// TargetData writes under <root>/data.
	TargetData PackTarget = "data"
	// TargetAssets writes under <root>/assets.
	TargetAssets PackTarget = "assets"
)

// ParsePackTarget validates a target name; an empty name selects TargetData.
func ParsePackTarget(s string) (PackTarget, error) {
	switch PackTarget(s) {
	case "", TargetData:
		return TargetData, nil
	case TargetAssets:
		return TargetAssets, nil
	default:
		return "", zerr.With(ErrInvalidPackTarget, "target", s)
	}
}

// PathProvider maps resource locations of one kind to output paths:
// <root>/<target>/<namespace>/<kind>/<path>.json.
type PathProvider struct {
	root   string
	target PackTarget
	kind   string
}

// NewPathProvider creates a PathProvider rooted at root.
func NewPathProvider(root string, target PackTarget, kind string) PathProvider {
	return PathProvider{root: root, target: target, kind: kind}
}

// JSON returns the output path of the JSON file for loc.
func (p PathProvider) JSON(loc ResourceLocation) string {
	return p.File(loc, "json")
}

// File returns the output path of loc with the given extension.
func (p PathProvider) File(loc ResourceLocation, ext string) string {
	return filepath.Join(
		p.root,
		string(p.target),
		loc.Namespace,
		filepath.FromSlash(p.kind),
		filepath.FromSlash(loc.Path)+"."+ext,
	)
}
