// C6, the Ancestor / LCA Engine.
package chunker

import (
	"fmt"
	"sort"

	"github.com/tain335/chunkgraph/internal/graph"
)

// ancestorEngine computes the set of common ancestors of a group of nodes
// in the load-order graph (the set of nodes appearing on EVERY simple path
// from each group member back to the primary entry), and selects the
// deepest one as the LCA.
type ancestorEngine struct {
	g     *graph.LoadOrderGraph
	cache map[string]map[string]struct{} // node -> P(node)
}

func newAncestorEngine(g *graph.LoadOrderGraph) *ancestorEngine {
	return &ancestorEngine{g: g, cache: make(map[string]map[string]struct{})}
}

// pathsToEntry enumerates every simple path from n back to the primary
// entry, following edges in reverse (parent direction). Path enumeration is
// depth-first with a cycle guard over the current path.
func (e *ancestorEngine) pathsToEntry(n string) [][]string {
	entry := e.g.PrimaryEntry
	if n == entry {
		return [][]string{{entry}}
	}

	var paths [][]string
	onPath := make(map[string]bool)
	var cur []string

	var dfs func(node string)
	dfs = func(node string) {
		if onPath[node] {
			return // cycle guard
		}
		onPath[node] = true
		cur = append(cur, node)

		if node == entry {
			pathCopy := append([]string(nil), cur...)
			paths = append(paths, pathCopy)
		} else {
			for _, parent := range e.g.Parents(node) {
				dfs(parent)
			}
		}

		cur = cur[:len(cur)-1]
		onPath[node] = false
	}
	dfs(n)
	return paths
}

// pOf returns the set of nodes that appear on every path from n to the
// primary entry, memoized per node.
func (e *ancestorEngine) pOf(n string) map[string]struct{} {
	if cached, ok := e.cache[n]; ok {
		return cached
	}
	paths := e.pathsToEntry(n)
	result := make(map[string]struct{})
	if len(paths) > 0 {
		for _, node := range paths[0] {
			result[node] = struct{}{}
		}
		for _, path := range paths[1:] {
			pathSet := make(map[string]struct{}, len(path))
			for _, node := range path {
				pathSet[node] = struct{}{}
			}
			for node := range result {
				if _, ok := pathSet[node]; !ok {
					delete(result, node)
				}
			}
		}
	}
	e.cache[n] = result
	return result
}

// commonAncestors returns the intersection of pOf(n) across every n in
// nodes.
func (e *ancestorEngine) commonAncestors(nodes []string) map[string]struct{} {
	if len(nodes) == 0 {
		return map[string]struct{}{}
	}
	sorted := append([]string(nil), nodes...)
	sort.Strings(sorted)

	result := make(map[string]struct{})
	for n := range e.pOf(sorted[0]) {
		result[n] = struct{}{}
	}
	for _, n := range sorted[1:] {
		p := e.pOf(n)
		for node := range result {
			if _, ok := p[node]; !ok {
				delete(result, node)
			}
		}
	}
	return result
}

// shortestDistancesFromEntry computes single-source shortest path distances
// (unit weights) from the primary entry, via BFS over forward edges.
func shortestDistancesFromEntry(g *graph.LoadOrderGraph) map[string]int {
	dist := map[string]int{g.PrimaryEntry: 0}
	queue := []string{g.PrimaryEntry}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, child := range g.Children(cur) {
			if _, seen := dist[child]; !seen {
				dist[child] = dist[cur] + 1
				queue = append(queue, child)
			}
		}
	}
	return dist
}

// LCA computes the lowest common ancestor of nodes: among their common
// ancestors, the one with greatest shortest-path distance from the primary
// entry, ties broken lexicographically by name.
func LCA(g *graph.LoadOrderGraph, nodes []string) (string, error) {
	engine := newAncestorEngine(g)
	common := engine.commonAncestors(nodes)
	if len(common) == 0 {
		return "", fmt.Errorf("no common ancestor for nodes %v", nodes)
	}
	dist := shortestDistancesFromEntry(g)

	var best string
	bestDist := -1
	var candidates []string
	for n := range common {
		candidates = append(candidates, n)
	}
	sort.Strings(candidates)
	for _, n := range candidates {
		d, ok := dist[n]
		if !ok {
			continue
		}
		if d > bestDist {
			bestDist = d
			best = n
		}
	}
	if best == "" {
		return "", fmt.Errorf("no reachable common ancestor for nodes %v", nodes)
	}
	return best, nil
}
