// Package nsdeps implements C2, the Namespace Deps Parser. It reads a legacy
// Closure-style deps file made of top-level
// goog.addDependency("relpath", ["ns1", "ns2"], [...]) calls and produces a
// namespace -> absolute path mapping for the legacy resolver fallback used
// by C1/C3.
package nsdeps

import (
	"fmt"

	"github.com/tain335/chunkgraph/internal/astscan"
	"github.com/tain335/chunkgraph/internal/vfs"
)

// InvalidDepsFile is returned when a deps file cannot be read.
// Individual malformed statements are silently ignored, not treated as
// InvalidDepsFile.
type InvalidDepsFile struct {
	Path string
	Err  error
}

func (e *InvalidDepsFile) Error() string {
	return fmt.Sprintf("invalid deps file %s: %v", e.Path, e.Err)
}

func (e *InvalidDepsFile) Unwrap() error { return e.Err }

// Map is the C2 output: namespace -> absolute file path. It also implements
// depextract.NamespaceResolver so C3 can consume it directly.
type Map map[string]string

func (m Map) Resolve(namespace string) (string, bool) {
	p, ok := m[namespace]
	return p, ok
}

// ParseFile reads and parses one deps file rooted at baseDir, merging
// discovered namespaces into dst (later files/entries win on conflict,
// matching insertion-ordered-map semantics elsewhere in this spec).
func ParseFile(fs vfs.FileSystem, path string, baseDir string, dst Map) error {
	data, err := fs.ReadFile(path)
	if err != nil {
		return &InvalidDepsFile{Path: path, Err: err}
	}
	parseContents(string(data), baseDir, fs, dst)
	return nil
}

// AddExtraDeps merges an externally supplied set of namespace -> absolute
// path pairs into dst, bypassing any deps file.
func AddExtraDeps(extra map[string]string, dst Map) {
	for ns, p := range extra {
		dst[ns] = p
	}
}

// parseContents scans for `goog.addDependency(relPath, [ns...], [...])` call
// shapes. Anything else at the top level — other statements, calls with a
// different callee, addDependency calls with a non-array second argument —
// is silently ignored. For each recognized call, every listed namespace
// maps to joinPath(baseDir, relPath).
func parseContents(src string, baseDir string, vf vfs.FileSystem, dst Map) {
	for _, call := range astscan.ParseAddDependencyCalls(src) {
		abs := vf.Join(baseDir, call.RelPath)
		for _, ns := range call.Namespaces {
			dst[ns] = abs
		}
	}
}
