// Package depwalk implements C4, the Dependency Walker, plus the
// BuildContext that threads every cache, configuration value, and the
// legacy-namespace map through a build. This avoids the global
// package-level caches seen in the teacher's pack_linker.go
// (packModuleCache, chunkPackModules, visitedMap are all file-scope
// `var`s) in favor of an explicit context object with no process-wide
// singletons.
package depwalk

import (
	"github.com/tain335/chunkgraph/internal/depextract"
	"github.com/tain335/chunkgraph/internal/logger"
	"github.com/tain335/chunkgraph/internal/resolver"
	"github.com/tain335/chunkgraph/internal/vfs"
)

// BuildContext is threaded through one full pipeline run, which may include
// up to two Chunk Graph Builder (C5) passes sharing the same direct-parse
// cache and the same legacy-namespace map.
type BuildContext struct {
	FS           vfs.FileSystem
	Resolver     *resolver.Resolver
	NSResolver   depextract.NamespaceResolver // nil if no legacy namespace support configured
	GoogBasePath string
	Log          *logger.Log

	// HoistMap holds, for the second C5/C4 pass only, the sources that a
	// prior C7 normalization decided should be hoisted into each node. Nil
	// (or empty) on the first pass.
	HoistMap map[string][]string

	// directCache memoizes the parse+resolve step per file, shared across
	// both passes since parsing doesn't depend on hoists.
	directCache map[string]*directResult
}

// NewBuildContext constructs a fresh context for one build. Call
// WithHoistMap on the returned context (or a copy) before the second C5
// pass.
func NewBuildContext(fs vfs.FileSystem, res *resolver.Resolver, nsResolver depextract.NamespaceResolver, googBasePath string, log *logger.Log) *BuildContext {
	return &BuildContext{
		FS:           fs,
		Resolver:     res,
		NSResolver:   nsResolver,
		GoogBasePath: googBasePath,
		Log:          log,
		directCache:  make(map[string]*directResult),
	}
}

// WithHoistMap returns ctx configured with hoistMap for a rebuild pass,
// reusing the same direct-parse cache: the file-deps cache is scoped to
// one full build, and at most two C5 passes share it.
func (ctx *BuildContext) WithHoistMap(hoistMap map[string][]string) *BuildContext {
	return &BuildContext{
		FS:           ctx.FS,
		Resolver:     ctx.Resolver,
		NSResolver:   ctx.NSResolver,
		GoogBasePath: ctx.GoogBasePath,
		Log:          ctx.Log,
		HoistMap:     hoistMap,
		directCache:  ctx.directCache,
	}
}
