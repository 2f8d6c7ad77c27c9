package chunker

import (
	"github.com/tain335/chunkgraph/internal/depwalk"
	"github.com/tain335/chunkgraph/internal/graph"
)

// queueItem is one unit of work for C5's BFS/work-queue traversal.
type queueItem struct {
	name  string
	files []string
}

// BuildLoadOrderGraph runs C5. On the first call of a build, ctx's
// HoistMap is empty; on the rebuild pass triggered by a non-empty C7 hoist
// map, the same ctx (via ctx.WithHoistMap) is passed back in so the walker
// picks up the new hoists, a single rebuild rather than a loop to a fixed
// point.
func BuildLoadOrderGraph(ctx *depwalk.BuildContext, entryPoints []EntryPoint, manualEntryPoints []ManualEntryPoint) (*graph.LoadOrderGraph, error) {
	g := graph.NewLoadOrderGraph()
	walker := depwalk.New(ctx)

	if len(entryPoints) == 0 {
		return g, nil
	}
	primary := entryPoints[0].Name
	g.PrimaryEntry = primary

	var queue []queueItem
	visited := make(map[string]bool)

	for i, ep := range entryPoints {
		g.GetOrCreateNode(ep.Name)
		if i > 0 {
			if !g.HasEdgeEitherDirection(primary, ep.Name) {
				g.AddEdge(primary, ep.Name)
			}
		}
		queue = append(queue, queueItem{name: ep.Name, files: ep.Files})
	}

	remainingManual := append([]ManualEntryPoint(nil), manualEntryPoints...)

	for {
		for len(queue) > 0 {
			item := queue[0]
			queue = queue[1:]
			if visited[item.name] {
				continue
			}
			visited[item.name] = true

			node, _ := g.GetOrCreateNode(item.name)

			for _, file := range item.files {
				info, err := walker.Walk(file)
				if err != nil {
					return nil, err
				}
				mergeFileDepInfo(node, info)

				for child := range info.ChildChunks {
					if _, existed := g.Nodes[child]; !existed {
						g.GetOrCreateNode(child)
						queue = append(queue, queueItem{name: child, files: []string{child}})
					}
					if !g.HasEdgeEitherDirection(item.name, child) {
						g.AddEdge(item.name, child)
					}
				}
			}
		}

		if len(remainingManual) == 0 {
			break
		}
		m := remainingManual[0]
		remainingManual = remainingManual[1:]
		g.GetOrCreateNode(m.Child.Name)
		g.AddEdge(m.Parent, m.Child.Name)
		queue = append(queue, queueItem{name: m.Child.Name, files: m.Child.Files})
	}

	return g, nil
}

// mergeFileDepInfo folds one FileDepInfo into a node's accumulating Sources
// and Deps, in forward order: each file's flattened, dependency-first Deps
// list is appended as-is (AddSource dedups anything already owned), so a
// multi-file entry point's files end up concatenated in the order they
// were given, with the entry's own file — the last Dep of the last file
// walked — landing last in Sources.
func mergeFileDepInfo(node *graph.ChunkNode, info graph.FileDepInfo) {
	for _, d := range info.Deps {
		node.AddSource(d)
	}
	for _, d := range info.Deps {
		node.Deps[d] = struct{}{}
	}
}
