// Package api is the public surface: Options in, Result out, one function
// call. It runs chunker.BuildGraphs (the two-pass drive between the
// chunk-graph builder and the normalizer, then the projector) and hands the
// projected graph to the emitter.
package api

import (
	"errors"

	"github.com/tain335/chunkgraph/internal/chunker"
	"github.com/tain335/chunkgraph/internal/depextract"
	"github.com/tain335/chunkgraph/internal/depwalk"
	"github.com/tain335/chunkgraph/internal/logger"
	"github.com/tain335/chunkgraph/internal/nsdeps"
	"github.com/tain335/chunkgraph/internal/resolver"
	"github.com/tain335/chunkgraph/internal/vfs"
)

// NamingStyle selects how C9 renders chunk names in the emitted flags.
type NamingStyle uint8

const (
	EntrypointNaming NamingStyle = iota
	NumberedNaming
)

// Options are every input the builder needs for one run.
type Options struct {
	// EntryPoints must be non-empty; the first entry becomes the primary
	// entry (root) of both graphs.
	EntryPoints []chunker.EntryPoint

	// ManualEntryPoints attaches additional chunks as children of an
	// existing node, independent of dynamic-import discovery.
	ManualEntryPoints []chunker.ManualEntryPoint

	BaseDirectory   string
	EntryFieldOrder []string // default ["browser", "module", "main"]

	// GoogDepsFiles, when non-empty, are parsed as legacy
	// goog.addDependency deps files before the build starts.
	GoogDepsFiles []string
	// ExtraGoogDeps merges directly into the namespace map, bypassing a
	// deps file.
	ExtraGoogDeps map[string]string
	GoogBasePath  string

	Naming NamingStyle
}

// Result is everything a caller needs after one successful build.
type Result struct {
	Flags       []string
	SourceList  []string
	Diagnostics []*chunker.ChunkEntrypointMissing
	Log         *logger.Log

	Graph *chunker.BuiltGraphs
}

// Build runs the full pipeline: C1-C4 via the walker, C5 twice at most, C6
// and C7 in between, then C8 and C9.
func Build(opts Options) (*Result, error) {
	if len(opts.EntryPoints) == 0 {
		return nil, errors.New("api: at least one entry point is required")
	}

	fs := vfs.NewOSFileSystem()
	res := resolver.New(fs, opts.BaseDirectory, opts.EntryFieldOrder)
	log := logger.NewLog()

	var nsResolver depextract.NamespaceResolver
	if len(opts.GoogDepsFiles) > 0 || len(opts.ExtraGoogDeps) > 0 {
		nsMap := make(nsdeps.Map)
		for _, depsFile := range opts.GoogDepsFiles {
			if err := nsdeps.ParseFile(fs, depsFile, opts.BaseDirectory, nsMap); err != nil {
				log.Errorf(nil, "%v", err)
			}
		}
		nsdeps.AddExtraDeps(opts.ExtraGoogDeps, nsMap)
		nsResolver = nsMap
	}

	ctx := depwalk.NewBuildContext(fs, res, nsResolver, opts.GoogBasePath, log)

	built, err := chunker.BuildGraphs(ctx, opts.EntryPoints, opts.ManualEntryPoints)
	if err != nil {
		return nil, err
	}

	var mapper chunker.NameMapper
	if opts.Naming == NumberedNaming {
		mapper = chunker.NumberedNames
	} else {
		mapper = chunker.EntrypointNames
	}

	emission, err := chunker.Emit(built.Dependency, mapper)
	if err != nil {
		return nil, err
	}

	return &Result{
		Flags:       emission.Flags,
		SourceList:  emission.SourceList,
		Diagnostics: emission.Diagnostics,
		Log:         log,
		Graph:       built,
	}, nil
}
