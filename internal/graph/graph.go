// Package graph holds the core data model shared by C4 through C9: Path,
// ChunkNode, FileDepInfo, and the two graph shapes (load-order and
// dependency). Per the teacher's design notes, nodes live in an arena
// keyed by name/path with edges stored as adjacency sets, rather than as
// direct object references, to keep the structures trivial to serialize
// and to test in isolation.
package graph

import (
	"sort"

	"golang.org/x/exp/maps"
)

// Path is an absolute, canonicalized filesystem path. Two Paths are equal
// iff byte-identical; symbolic links are preserved, never followed.
type Path = string

// ChunkKind distinguishes the output kind a chunk would eventually produce.
// Carried over from the teacher's code_spliting.ChunkNode.Kind field: this
// graph is JS-only, so every node is JSChunk, but the field stays so a
// future CSS/asset pathway wouldn't need a ChunkNode shape change.
type ChunkKind uint8

const (
	JSChunk ChunkKind = iota
)

// ChunkNode is a node in the load-order graph G_L.
type ChunkNode struct {
	// Name is both the node's identity and the file path of the chunk's
	// entry file.
	Name Path

	Kind ChunkKind

	// Sources is the ordered, de-duplicated list of files owned by this
	// chunk. Order must be a valid single-file load order: dependencies
	// before dependents. Name must be the last element.
	Sources []Path

	// Deps is the superset of static dependencies the entry file
	// transitively pulls in, used only by C8 (the projector).
	Deps map[Path]struct{}

	// ChildChunks names the entry points of chunks this chunk dynamically
	// imports.
	ChildChunks map[Path]struct{}
}

func NewChunkNode(name Path) *ChunkNode {
	return &ChunkNode{
		Name:        name,
		Kind:        JSChunk,
		Deps:        make(map[Path]struct{}),
		ChildChunks: make(map[Path]struct{}),
	}
}

// HasSource reports whether path is already present among n.Sources.
func (n *ChunkNode) HasSource(path Path) bool {
	for _, s := range n.Sources {
		if s == path {
			return true
		}
	}
	return false
}

// AddSource appends path to Sources if not already present.
func (n *ChunkNode) AddSource(path Path) {
	if !n.HasSource(path) {
		n.Sources = append(n.Sources, path)
	}
}

// RemoveSource deletes path from Sources, preserving relative order of the
// rest.
func (n *ChunkNode) RemoveSource(path Path) {
	out := n.Sources[:0]
	for _, s := range n.Sources {
		if s != path {
			out = append(out, s)
		}
	}
	n.Sources = out
}

// IsValid checks the per-node invariant: Name must be present in Sources
// and must be its last element.
func (n *ChunkNode) IsValid() bool {
	if len(n.Sources) == 0 {
		return false
	}
	return n.Sources[len(n.Sources)-1] == n.Name
}

// FileDepInfo is C4's result for a single file.
type FileDepInfo struct {
	File Path
	// Deps is the flattened transitive static-dependency list, dependents
	// last: every dependency precedes its dependent, and File itself is
	// the final element.
	Deps []Path
	// ChildChunks collects dynamic-import targets discovered while walking
	// File's transitive static deps.
	ChildChunks map[Path]struct{}
}

// LoadOrderGraph is G_L: nodes are ChunkNodes, edge A->B means "loading A
// causes B to become reachable via a dynamic import."
type LoadOrderGraph struct {
	Nodes       map[Path]*ChunkNode
	Edges       map[Path]map[Path]struct{} // parent -> set of children
	PrimaryEntry Path
}

func NewLoadOrderGraph() *LoadOrderGraph {
	return &LoadOrderGraph{
		Nodes: make(map[Path]*ChunkNode),
		Edges: make(map[Path]map[Path]struct{}),
	}
}

func (g *LoadOrderGraph) GetOrCreateNode(name Path) (*ChunkNode, bool) {
	if n, ok := g.Nodes[name]; ok {
		return n, false
	}
	n := NewChunkNode(name)
	g.Nodes[name] = n
	return n, true
}

// HasEdgeEitherDirection reports whether a->b or b->a already exists.
func (g *LoadOrderGraph) HasEdgeEitherDirection(a, b Path) bool {
	return g.HasEdge(a, b) || g.HasEdge(b, a)
}

func (g *LoadOrderGraph) HasEdge(from, to Path) bool {
	children, ok := g.Edges[from]
	if !ok {
		return false
	}
	_, ok = children[to]
	return ok
}

func (g *LoadOrderGraph) AddEdge(from, to Path) {
	if g.Edges[from] == nil {
		g.Edges[from] = make(map[Path]struct{})
	}
	g.Edges[from][to] = struct{}{}
}

// Children returns the sorted set of nodes that from points to, for
// deterministic traversal.
func (g *LoadOrderGraph) Children(from Path) []Path {
	return sortedKeys(g.Edges[from])
}

// Parents returns every node that has an edge pointing to "to".
func (g *LoadOrderGraph) Parents(to Path) []Path {
	var parents []Path
	for from, children := range g.Edges {
		if _, ok := children[to]; ok {
			parents = append(parents, from)
		}
	}
	sort.Strings(parents)
	return parents
}

// NodeNames returns every node name in the graph, sorted for deterministic
// iteration; the LCA tie-break is lexicographic by node name.
func (g *LoadOrderGraph) NodeNames() []Path {
	names := maps.Keys(g.Nodes)
	sort.Strings(names)
	return names
}

// DependencyGraph is G_D, produced by C8: edge A->B means "B cannot load
// until A is loaded."
type DependencyGraph struct {
	Nodes        map[Path]*ChunkNode
	Parents      map[Path]map[Path]struct{} // child -> set of parents
	PrimaryEntry Path
}

func NewDependencyGraph() *DependencyGraph {
	return &DependencyGraph{
		Nodes:   make(map[Path]*ChunkNode),
		Parents: make(map[Path]map[Path]struct{}),
	}
}

func (g *DependencyGraph) AddParent(child, parent Path) {
	if g.Parents[child] == nil {
		g.Parents[child] = make(map[Path]struct{})
	}
	g.Parents[child][parent] = struct{}{}
}

func (g *DependencyGraph) ParentsOf(child Path) []Path {
	return sortedKeys(g.Parents[child])
}

// TransitiveDependencies supplements C8/C9 with a diagnostic query
// (SPEC_FULL.md §6), grounded on the teacher's
// code_spliting.FindAllChunkDependecies: given a chunk name, it returns
// that chunk plus every ancestor chunk it transitively depends on.
func (g *DependencyGraph) TransitiveDependencies(name Path) []*ChunkNode {
	visited := make(map[Path]struct{})
	var out []*ChunkNode
	var walk func(Path)
	walk = func(n Path) {
		if _, ok := visited[n]; ok {
			return
		}
		visited[n] = struct{}{}
		node, ok := g.Nodes[n]
		if !ok {
			return
		}
		out = append(out, node)
		for _, parent := range g.ParentsOf(n) {
			walk(parent)
		}
	}
	walk(name)
	return out
}

func sortedKeys(m map[Path]struct{}) []Path {
	keys := maps.Keys(m)
	sort.Strings(keys)
	return keys
}
