// C7, the Normalizer.
package chunker

import (
	"sort"

	"github.com/tain335/chunkgraph/internal/graph"
)

// Normalize enforces single ownership: every source belongs to at most one
// node. It mutates g in place, deleting sources from every owner except
// each group's LCA, and returns the hoist map the driver should feed into
// the next C5/C4 pass (empty if g already satisfied the invariant).
func Normalize(g *graph.LoadOrderGraph) (map[string][]string, error) {
	ownersBySource := make(map[string]map[string]struct{})
	for name, node := range g.Nodes {
		for _, src := range node.Sources {
			if ownersBySource[src] == nil {
				ownersBySource[src] = make(map[string]struct{})
			}
			ownersBySource[src][name] = struct{}{}
		}
	}

	type group struct {
		owners  []string
		sources []string
	}
	groups := make(map[string]*group) // key: sorted owners joined

	var sources []string
	for src := range ownersBySource {
		sources = append(sources, src)
	}
	sort.Strings(sources)

	for _, src := range sources {
		owners := ownersBySource[src]
		if len(owners) <= 1 {
			continue
		}
		var ownerList []string
		for o := range owners {
			ownerList = append(ownerList, o)
		}
		sort.Strings(ownerList)
		key := groupKey(ownerList)
		grp, ok := groups[key]
		if !ok {
			grp = &group{owners: ownerList}
			groups[key] = grp
		}
		grp.sources = append(grp.sources, src)
	}

	var groupKeys []string
	for k := range groups {
		groupKeys = append(groupKeys, k)
	}
	sort.Strings(groupKeys)

	hoistMap := make(map[string][]string)
	for _, k := range groupKeys {
		grp := groups[k]
		lca, err := LCA(g, grp.owners)
		if err != nil {
			return nil, err
		}
		for _, src := range grp.sources {
			if !containsStr(hoistMap[lca], src) {
				hoistMap[lca] = append(hoistMap[lca], src)
			}
			for _, owner := range grp.owners {
				if owner == lca {
					continue
				}
				if node, ok := g.Nodes[owner]; ok {
					node.RemoveSource(src)
				}
			}
			// Deliberately not adding src to the LCA's own Sources here:
			// the LCA may not yet be an owner at all. Giving the LCA
			// actual ownership is the rebuilt C5 pass's job, seeded by
			// hoistMap.
		}
	}

	return hoistMap, nil
}

func groupKey(owners []string) string {
	out := ""
	for i, o := range owners {
		if i > 0 {
			out += "\x00"
		}
		out += o
	}
	return out
}

func containsStr(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
