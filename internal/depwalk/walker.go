package depwalk

import (
	"github.com/tain335/chunkgraph/internal/astscan"
	"github.com/tain335/chunkgraph/internal/depextract"
	"github.com/tain335/chunkgraph/internal/graph"
	"github.com/tain335/chunkgraph/internal/logger"
)

var metadataExtensions = map[string]bool{
	".json": true,
}

// directResult is the cached output of parsing and resolving one file's own
// specifiers, before transitive flattening.
type directResult struct {
	staticDeps    []string // resolved paths, ordered, distinct
	dynamicChunks []string // resolved dynamic-import targets, ordered, distinct
}

// Walker runs C4 against a BuildContext.
type Walker struct {
	ctx *BuildContext
}

func New(ctx *BuildContext) *Walker {
	return &Walker{ctx: ctx}
}

// Walk computes the transitive closure of static dependencies rooted at f.
// It returns the first fatal error encountered
// (UnresolvedModule or UnknownNamespace); non-fatal per-file failures are
// recorded in ctx.Log and the offending file is treated as a dependency-free
// leaf.
func (w *Walker) Walk(f string) (graph.FileDepInfo, error) {
	visited := make(map[string]struct{})
	seenDeps := make(map[string]struct{})
	childChunks := make(map[string]struct{})
	var deps []string

	var fatalErr error
	var visit func(file string)
	visit = func(file string) {
		if fatalErr != nil {
			return
		}
		if _, ok := visited[file]; ok {
			return
		}
		visited[file] = struct{}{}

		dr, err := w.direct(file)
		if err != nil {
			fatalErr = err
			return
		}

		directList := append([]string(nil), dr.staticDeps...)
		for _, h := range w.ctx.HoistMap[file] {
			if !containsString(directList, h) {
				directList = append(directList, h)
			}
		}

		for _, c := range dr.dynamicChunks {
			childChunks[c] = struct{}{}
		}

		for _, d := range directList {
			visit(d)
			if fatalErr != nil {
				return
			}
		}

		if _, ok := seenDeps[file]; !ok {
			seenDeps[file] = struct{}{}
			deps = append(deps, file)
		}
	}
	visit(f)
	if fatalErr != nil {
		return graph.FileDepInfo{}, fatalErr
	}
	return graph.FileDepInfo{File: f, Deps: deps, ChildChunks: childChunks}, nil
}

// direct parses and resolves file's own specifiers, memoized across the
// whole build via ctx.directCache.
func (w *Walker) direct(file string) (*directResult, error) {
	if dr, ok := w.ctx.directCache[file]; ok {
		return dr, nil
	}

	if isMetadataFile(file) {
		dr := &directResult{}
		w.ctx.directCache[file] = dr
		return dr, nil
	}

	data, err := w.ctx.FS.ReadFile(file)
	if err != nil {
		w.ctx.Log.Warnf(&logger.Location{File: file}, "FileParseFailure: could not read file: %v", err)
		dr := &directResult{}
		w.ctx.directCache[file] = dr
		return dr, nil
	}

	tree := astscan.Parse(string(data))
	extracted, err := depextract.Extract(tree, file, w.ctx.NSResolver, w.ctx.GoogBasePath)
	if err != nil {
		// UnknownNamespace is fatal.
		return nil, err
	}

	dr := &directResult{}
	seenStatic := make(map[string]bool)
	addStatic := func(p string) {
		if p == "" || seenStatic[p] {
			return
		}
		seenStatic[p] = true
		dr.staticDeps = append(dr.staticDeps, p)
	}

	for _, spec := range extracted.StaticSpecifiers {
		res, err := w.ctx.Resolver.Resolve(file, spec)
		if err != nil {
			return nil, err
		}
		if res.MetaPath != "" {
			addStatic(res.MetaPath)
		}
		addStatic(res.Path)
	}

	seenDynamic := make(map[string]bool)
	for _, spec := range extracted.DynamicSpecifiers {
		res, err := w.ctx.Resolver.Resolve(file, spec)
		if err != nil {
			return nil, err
		}
		if res.MetaPath != "" {
			addStatic(res.MetaPath)
		}
		if !seenDynamic[res.Path] {
			seenDynamic[res.Path] = true
			dr.dynamicChunks = append(dr.dynamicChunks, res.Path)
		}
	}

	w.ctx.directCache[file] = dr
	return dr, nil
}

func isMetadataFile(file string) bool {
	for ext := range metadataExtensions {
		if len(file) >= len(ext) && file[len(file)-len(ext):] == ext {
			return true
		}
	}
	return false
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
