// C9, the Flag Emitter.
package chunker

import (
	"fmt"
	"sort"

	"github.com/tain335/chunkgraph/internal/graph"
)

// UnsortableChunks is returned when the dependency graph has no valid
// topological order (a cycle slipped past C8, or a parent references a node
// that was never added).
type UnsortableChunks struct {
	Remaining []string
}

func (e *UnsortableChunks) Error() string {
	return fmt.Sprintf("cannot topologically sort chunks: %v", e.Remaining)
}

// ChunkEntrypointMissing flags a node whose own entry file is not the last
// element of its Sources (or is entirely absent from it) after
// normalization: the diagnostic is non-fatal to emission, but callers exit
// with a non-zero status once it's reported.
type ChunkEntrypointMissing struct {
	Chunk string
}

func (e *ChunkEntrypointMissing) Error() string {
	return fmt.Sprintf("chunk %s has no valid entrypoint", e.Chunk)
}

// NameMapper renders a node's display name, given its position in the
// topological order; callers can choose entrypoint-style or numbered-style
// naming.
type NameMapper func(name string, index int) string

// EntrypointNames renders each chunk using its own node name.
func EntrypointNames(name string, _ int) string { return name }

// NumberedNames renders each chunk as "chunk<index>".
func NumberedNames(_ string, index int) string { return fmt.Sprintf("chunk%d", index) }

// Emission is C9's output: per-chunk flag strings in topological order, the
// flattened concatenated source list, and any non-fatal entrypoint
// diagnostics collected along the way.
type Emission struct {
	Flags       []string
	SourceList  []string
	Diagnostics []*ChunkEntrypointMissing
}

// Emit runs C9 against a projected dependency graph: it topologically sorts
// the nodes, formats each as "<name>:<count>[:<parent1>,<parent2>,...]", and
// concatenates every node's Sources in sorted-chunk order to produce the
// flat source list a bundler driver would compile in one pass.
func Emit(g *graph.DependencyGraph, mapper NameMapper) (*Emission, error) {
	if mapper == nil {
		mapper = EntrypointNames
	}

	order, err := topoSort(g)
	if err != nil {
		return nil, err
	}

	display := make(map[string]string, len(order))
	for i, name := range order {
		display[name] = mapper(name, i)
	}

	emission := &Emission{}
	for _, name := range order {
		node := g.Nodes[name]
		if node == nil || !node.IsValid() {
			emission.Diagnostics = append(emission.Diagnostics, &ChunkEntrypointMissing{Chunk: name})
		}

		count := 0
		if node != nil {
			count = len(node.Sources)
			emission.SourceList = append(emission.SourceList, node.Sources...)
		}

		flag := fmt.Sprintf("%s:%d", display[name], count)
		parents := g.ParentsOf(name)
		if len(parents) > 0 {
			names := make([]string, len(parents))
			for i, p := range parents {
				names[i] = display[p]
			}
			flag += ":" + joinComma(names)
		}
		emission.Flags = append(emission.Flags, flag)
	}

	return emission, nil
}

// topoSort orders every node in g so that each node's parents precede it,
// breaking ties lexicographically by name for determinism (Kahn's
// algorithm).
func topoSort(g *graph.DependencyGraph) ([]string, error) {
	indegree := make(map[string]int)
	children := make(map[string][]string)

	var names []string
	for n := range g.Nodes {
		names = append(names, n)
		indegree[n] = 0
	}
	sort.Strings(names)

	for _, n := range names {
		for _, p := range g.ParentsOf(n) {
			indegree[n]++
			children[p] = append(children[p], n)
		}
	}
	for _, n := range names {
		sort.Strings(children[n])
	}

	var ready []string
	for _, n := range names {
		if indegree[n] == 0 {
			ready = append(ready, n)
		}
	}
	sort.Strings(ready)

	var order []string
	for len(ready) > 0 {
		n := ready[0]
		ready = ready[1:]
		order = append(order, n)
		for _, c := range children[n] {
			indegree[c]--
			if indegree[c] == 0 {
				ready = append(ready, c)
				sort.Strings(ready)
			}
		}
	}

	if len(order) != len(names) {
		seen := make(map[string]bool, len(order))
		for _, n := range order {
			seen[n] = true
		}
		var remaining []string
		for _, n := range names {
			if !seen[n] {
				remaining = append(remaining, n)
			}
		}
		return nil, &UnsortableChunks{Remaining: remaining}
	}

	return order, nil
}

func joinComma(items []string) string {
	out := ""
	for i, s := range items {
		if i > 0 {
			out += ","
		}
		out += s
	}
	return out
}
