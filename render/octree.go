//-----------------------------------------------------------------------------
/*

Octree Subsampling

Bottom-up simplification of the leaf vertices: eight sibling cells merge
into one node when the merged QEF stays below the error tolerance and the
child vertices belong to the same surface sheet. Quad emission later
resolves each leaf through its deepest non-collapsed ancestor.

*/
//-----------------------------------------------------------------------------

package render

import (
	"github.com/truescad/truescad/vec/v3i"
)

//-----------------------------------------------------------------------------

// octreeLayer maps a cell index at some level to the current root vertices
// of that region.
type octreeLayer map[v3i.Vec][]*octreeNode

// leafLayer returns the level-0 octree layer of the given cell vertices.
func leafLayer(vertices map[v3i.Vec]*cellVertices) octreeLayer {
	layer := make(octreeLayer, len(vertices))
	for index, cv := range vertices {
		layer[index] = cv.comps
	}
	return layer
}

//-----------------------------------------------------------------------------

// subsampleOctree repeatedly merges sibling groups into coarser vertices
// until a full pass collapses nothing. A group collapses when its merged
// QEF error stays within the tolerance, the merged solution lies inside
// the merged cell box, and the group forms a single connected sheet.
func subsampleOctree(layer octreeLayer, tolerance float64) {
	for len(layer) > 1 {
		next := make(octreeLayer, len(layer)/4+1)
		for index, nodes := range layer {
			parent := index.ShiftRight(1)
			next[parent] = append(next[parent], nodes...)
		}

		merges := 0
		for parent, nodes := range next {
			if len(nodes) < 2 || !topologicallyMergeable(nodes) {
				continue
			}
			merged := nodes[0].qef.clone()
			for _, n := range nodes[1:] {
				merged.Merge(n.qef)
			}
			merged.Solve()
			if merged.Error > tolerance {
				continue
			}
			node := &octreeNode{
				qef:     merged,
				corners: unionCorners(nodes),
				index:   -1,
			}
			for _, n := range nodes {
				n.parent = node
			}
			next[parent] = []*octreeNode{node}
			merges++
		}
		if merges == 0 {
			return
		}
		layer = next
	}
}

// clone returns a copy of the QEF accumulators.
func (q *Qef) clone() *Qef {
	c := *q
	return &c
}

// unionCorners returns the deduplicated corner lattice points of a group.
func unionCorners(nodes []*octreeNode) []v3i.Vec {
	seen := make(map[v3i.Vec]struct{})
	var corners []v3i.Vec
	for _, n := range nodes {
		for _, c := range n.corners {
			if _, ok := seen[c]; !ok {
				seen[c] = struct{}{}
				corners = append(corners, c)
			}
		}
	}
	return corners
}

// topologicallyMergeable reports whether the group's vertices form a
// single connected component, with two vertices connected when their
// inside corners share a lattice point.
func topologicallyMergeable(nodes []*octreeNode) bool {
	parent := make([]int, len(nodes))
	for i := range parent {
		parent[i] = i
	}
	var find func(i int) int
	find = func(i int) int {
		for parent[i] != i {
			parent[i] = parent[parent[i]]
			i = parent[i]
		}
		return i
	}
	union := func(a, b int) {
		parent[find(a)] = find(b)
	}

	owner := make(map[v3i.Vec]int)
	for i, n := range nodes {
		for _, c := range n.corners {
			if j, ok := owner[c]; ok {
				union(i, j)
			} else {
				owner[c] = i
			}
		}
	}

	root := find(0)
	for i := 1; i < len(nodes); i++ {
		if find(i) != root {
			return false
		}
	}
	return true
}

//-----------------------------------------------------------------------------
