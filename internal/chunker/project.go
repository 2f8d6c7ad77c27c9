// C8, the Dependency-Graph Projector.
package chunker

import (
	"fmt"
	"sort"

	"github.com/tain335/chunkgraph/internal/graph"
)

// CyclicChunkGraph is returned when the projected dependency graph would
// contain a cycle.
type CyclicChunkGraph struct {
	Node string
}

func (e *CyclicChunkGraph) Error() string {
	return fmt.Sprintf("cyclic chunk graph detected at %s", e.Node)
}

// Project runs C8 against an already-normalized load-order graph, producing
// G_D.
func Project(g *graph.LoadOrderGraph) (*graph.DependencyGraph, error) {
	sourceOwner := make(map[string]string)
	for name, node := range g.Nodes {
		for _, src := range node.Sources {
			sourceOwner[src] = name
		}
	}

	candParents := make(map[string]map[string]struct{})
	for name, node := range g.Nodes {
		cands := make(map[string]struct{})
		if name != g.PrimaryEntry {
			cands[g.PrimaryEntry] = struct{}{}
		}
		for dep := range node.Deps {
			owner, ok := sourceOwner[dep]
			if !ok || owner == name {
				continue
			}
			cands[owner] = struct{}{}
		}
		candParents[name] = cands
	}

	ancestorSets := make(map[string]map[string]struct{})
	onStack := make(map[string]bool)

	var ancestorsOf func(n string) (map[string]struct{}, error)
	ancestorsOf = func(n string) (map[string]struct{}, error) {
		if cached, ok := ancestorSets[n]; ok {
			return cached, nil
		}
		if onStack[n] {
			return nil, &CyclicChunkGraph{Node: n}
		}
		onStack[n] = true
		defer func() { onStack[n] = false }()

		result := make(map[string]struct{})
		parents := sortedNames(candParents[n])
		for _, p := range parents {
			result[p] = struct{}{}
			grand, err := ancestorsOf(p)
			if err != nil {
				return nil, err
			}
			for g := range grand {
				result[g] = struct{}{}
			}
		}
		ancestorSets[n] = result
		return result, nil
	}

	depGraph := graph.NewDependencyGraph()
	depGraph.PrimaryEntry = g.PrimaryEntry
	for name, node := range g.Nodes {
		depGraph.Nodes[name] = node
	}

	names := g.NodeNames()
	for _, name := range names {
		if _, err := ancestorsOf(name); err != nil {
			return nil, err
		}
	}

	for _, name := range names {
		parents := sortedNames(candParents[name])
		for _, p := range parents {
			redundant := false
			for _, q := range parents {
				if q == p {
					continue
				}
				if _, ok := ancestorSets[q][p]; ok {
					redundant = true
					break
				}
			}
			if !redundant {
				depGraph.AddParent(name, p)
			}
		}
	}

	return depGraph, nil
}

func sortedNames(m map[string]struct{}) []string {
	var names []string
	for n := range m {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
