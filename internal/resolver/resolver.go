// Package resolver implements C1, the Module Resolver: Node-style
// resolution of a (referrer, specifier) pair to an absolute file path, with
// a configurable ordered list of package.json "main entry" field names.
package resolver

import (
	"fmt"
	"path"
	"strings"

	"github.com/tain335/chunkgraph/internal/vfs"
)

// UnresolvedModule is returned when no candidate file exists for a
// specifier.
type UnresolvedModule struct {
	Specifier string
	From      string
}

func (e *UnresolvedModule) Error() string {
	return fmt.Sprintf("could not resolve %q from %s", e.Specifier, e.From)
}

// candidateExtensions is the default set tried, in order, when a resolved
// path has no extension of its own and isn't a directory.
var candidateExtensions = []string{"", ".js", ".mjs", ".cjs", ".jsx", ".ts", ".tsx", ".json"}

// Result is what C1 produces for one specifier: the resolved absolute file,
// plus an optional auxiliary package-metadata path that itself becomes a
// source file.
type Result struct {
	Path     string
	MetaPath string // "" when no package.json should be added as an auxiliary dep
}

// Resolver is a pure function of (referrer, specifier, options); instances
// may memoize internally but never mutate caller-visible state.
type Resolver struct {
	fs              vfs.FileSystem
	baseDirectory   string
	entryFieldOrder []string // default ["browser", "module", "main"]

	pkgCache map[string]*packageJSON
}

// New constructs a Resolver. entryFieldOrder may be nil, defaulting to
// ["browser", "module", "main"].
func New(fs vfs.FileSystem, baseDirectory string, entryFieldOrder []string) *Resolver {
	if len(entryFieldOrder) == 0 {
		entryFieldOrder = []string{"browser", "module", "main"}
	}
	return &Resolver{
		fs:              fs,
		baseDirectory:   baseDirectory,
		entryFieldOrder: entryFieldOrder,
		pkgCache:        make(map[string]*packageJSON),
	}
}

// Resolve maps specifier, referenced from the file at from, to an absolute
// path (plus optional metadata aux-dep).
func (r *Resolver) Resolve(from string, specifier string) (Result, error) {
	if isRelativeOrAbsolute(specifier) {
		p, err := r.resolveRelative(from, specifier)
		if err != nil {
			return Result{}, &UnresolvedModule{Specifier: specifier, From: from}
		}
		return Result{Path: p}, nil
	}
	return r.resolveBare(from, specifier)
}

func isRelativeOrAbsolute(specifier string) bool {
	return strings.HasPrefix(specifier, "./") || strings.HasPrefix(specifier, "../") ||
		specifier == "." || specifier == ".." || strings.HasPrefix(specifier, "/")
}

// resolveRelative resolves a "./"-, "../"- or "/"-prefixed specifier
// relative to the directory of from (or as an absolute path already).
func (r *Resolver) resolveRelative(from string, specifier string) (string, error) {
	var base string
	if strings.HasPrefix(specifier, "/") {
		base = specifier
	} else {
		base = r.fs.Join(r.fs.Dir(from), specifier)
	}
	if p, ok := r.resolveAsFileOrDir(base); ok {
		return p, nil
	}
	return "", fmt.Errorf("no candidate for %s", base)
}

// resolveAsFileOrDir tries base as a literal file (with candidate
// extensions), then as a directory (package.json main entry, then
// index.<ext>).
func (r *Resolver) resolveAsFileOrDir(base string) (string, bool) {
	if p, ok := r.resolveAsFile(base); ok {
		return p, true
	}
	return r.resolveAsDirectory(base)
}

func (r *Resolver) resolveAsFile(base string) (string, bool) {
	for _, ext := range candidateExtensions {
		candidate := base + ext
		if r.fs.Exists(candidate) {
			if info, err := r.fs.Stat(candidate); err == nil && !info.IsDir() {
				return candidate, true
			}
		}
	}
	return "", false
}

func (r *Resolver) resolveAsDirectory(dir string) (string, bool) {
	if !r.fs.Exists(dir) {
		return "", false
	}
	if info, err := r.fs.Stat(dir); err != nil || !info.IsDir() {
		return "", false
	}

	pkgPath := r.fs.Join(dir, "package.json")
	if pkg, err := r.loadPackageJSON(pkgPath); err == nil {
		entry := pkg.entryFor(r.entryFieldOrder)
		if entry != "" {
			entryPath := r.fs.Join(dir, entry)
			if p, ok := r.resolveAsFile(entryPath); ok {
				return p, true
			}
		}
	}

	index := r.fs.Join(dir, "index")
	return r.resolveAsFile(index)
}

// resolveBare climbs parent directories from the directory of from looking
// for a node_modules folder containing the package, following Node's
// standard bare-specifier semantics.
func (r *Resolver) resolveBare(from string, specifier string) (Result, error) {
	pkgName, subpath := splitPackageSpecifier(specifier)

	dir := r.fs.Dir(from)
	for {
		nodeModules := r.fs.Join(dir, "node_modules")
		pkgDir := r.fs.Join(nodeModules, pkgName)
		if r.fs.Exists(pkgDir) {
			resolved, metaPath, err := r.resolveWithinPackage(pkgDir, subpath)
			if err == nil {
				res := Result{Path: resolved}
				if isPackageRootSpecifier(specifier) {
					res.MetaPath = metaPath
				}
				return res, nil
			}
		}
		parent := r.fs.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return Result{}, &UnresolvedModule{Specifier: specifier, From: from}
}

// resolveWithinPackage resolves the "main entry" (subpath == "") or a
// specific subpath inside an already-located package directory.
func (r *Resolver) resolveWithinPackage(pkgDir string, subpath string) (resolved string, metaPath string, err error) {
	pkgPath := r.fs.Join(pkgDir, "package.json")
	pkg, pkgErr := r.loadPackageJSON(pkgPath)

	if subpath != "" {
		target := r.fs.Join(pkgDir, subpath)
		if p, ok := r.resolveAsFileOrDir(target); ok {
			if pkgErr == nil {
				metaPath = pkgPath
			}
			return p, metaPath, nil
		}
		return "", "", fmt.Errorf("no candidate for subpath %s in %s", subpath, pkgDir)
	}

	if pkgErr == nil {
		entry := pkg.entryFor(r.entryFieldOrder)
		if entry != "" {
			entryPath := r.fs.Join(pkgDir, entry)
			if p, ok := r.resolveAsFile(entryPath); ok {
				return p, pkgPath, nil
			}
		}
	}
	index := r.fs.Join(pkgDir, "index")
	if p, ok := r.resolveAsFile(index); ok {
		if pkgErr == nil {
			metaPath = pkgPath
		}
		return p, metaPath, nil
	}
	return "", "", fmt.Errorf("no main entry resolvable for %s", pkgDir)
}

func (r *Resolver) loadPackageJSON(pkgPath string) (*packageJSON, error) {
	if cached, ok := r.pkgCache[pkgPath]; ok {
		if cached == nil {
			return nil, fmt.Errorf("no package.json at %s", pkgPath)
		}
		return cached, nil
	}
	data, err := r.fs.ReadFile(pkgPath)
	if err != nil {
		r.pkgCache[pkgPath] = nil
		return nil, err
	}
	pkg, err := parsePackageJSON(data)
	if err != nil {
		r.pkgCache[pkgPath] = nil
		return nil, err
	}
	r.pkgCache[pkgPath] = pkg
	return pkg, nil
}

// splitPackageSpecifier separates a bare specifier into its package name
// (one segment, or two for an "@scope/name" package) and the remaining
// subpath (may be "").
func splitPackageSpecifier(specifier string) (pkgName string, subpath string) {
	segments := strings.Split(specifier, "/")
	if strings.HasPrefix(segments[0], "@") && len(segments) > 1 {
		pkgName = path.Join(segments[0], segments[1])
		subpath = strings.Join(segments[2:], "/")
		return pkgName, subpath
	}
	pkgName = segments[0]
	subpath = strings.Join(segments[1:], "/")
	return pkgName, subpath
}

// isPackageRootSpecifier reports whether specifier names exactly a
// package's root (no subpath): either a single bare segment, or exactly two
// segments where the first begins with "@". Only these
// forms cause the package's metadata file to be added as an auxiliary
// dependency.
func isPackageRootSpecifier(specifier string) bool {
	segments := strings.Split(specifier, "/")
	if strings.HasPrefix(segments[0], "@") {
		return len(segments) == 2
	}
	return len(segments) == 1
}
