package chunker

import (
	"github.com/tain335/chunkgraph/internal/depwalk"
	"github.com/tain335/chunkgraph/internal/graph"
)

// BuiltGraphs carries both the final normalized load-order graph and its
// projected dependency graph, for callers that want to inspect more than
// just the emitted flags (tests, and pkg/api's Result.Graph).
type BuiltGraphs struct {
	LoadOrder  *graph.LoadOrderGraph
	Dependency *graph.DependencyGraph
}

// BuildGraphs drives C5 through C8: one Build pass, a Normalize pass; if
// normalization found anything to hoist, a second Build pass seeded with
// the hoist map followed by a second Normalize pass (which only cleans up
// the now-stale ownership the first pass's sources left behind); then
// Project. The second Normalize's own hoist map is discarded: this is a
// fixed two-pass drive, not a loop to a fixed point.
func BuildGraphs(ctx *depwalk.BuildContext, entryPoints []EntryPoint, manualEntryPoints []ManualEntryPoint) (*BuiltGraphs, error) {
	g, err := BuildLoadOrderGraph(ctx, entryPoints, manualEntryPoints)
	if err != nil {
		return nil, err
	}

	hoists, err := Normalize(g)
	if err != nil {
		return nil, err
	}

	if len(hoists) > 0 {
		ctx2 := ctx.WithHoistMap(hoists)
		g, err = BuildLoadOrderGraph(ctx2, entryPoints, manualEntryPoints)
		if err != nil {
			return nil, err
		}
		if _, err := Normalize(g); err != nil {
			return nil, err
		}
	}

	dep, err := Project(g)
	if err != nil {
		return nil, err
	}

	return &BuiltGraphs{LoadOrder: g, Dependency: dep}, nil
}
