//-----------------------------------------------------------------------------
/*

Cell Configuration Tables

A cell corner i sits at the offset (i&1, i>>1&1, i>>2&1) from the cell
origin. The 8 corner signs form a mask with bit i set when corner i is
inside the surface. For each of the 256 masks the table lists the manifold
components: groups of inside corners mutually connected through cube edges.
Each component receives its own dual vertex, which is what keeps saddle
configurations 2-manifold where classic dual contouring pinches.

*/
//-----------------------------------------------------------------------------

package render

import (
	"github.com/truescad/truescad/vec/v3i"
)

//-----------------------------------------------------------------------------

// cornerOffset returns the lattice offset of cell corner i.
func cornerOffset(i int) v3i.Vec {
	return v3i.Vec{X: i & 1, Y: (i >> 1) & 1, Z: (i >> 2) & 1}
}

// cellEdge is one of the twelve cube edges, identified by its endpoints
// and direction. Edge ids are grouped by axis: edge axis*4+j runs along
// the given axis, with j selecting the offset on the two other axes.
type cellEdge struct {
	axis             int
	corner0, corner1 int
}

// cellEdges indexes the twelve cube edges.
var cellEdges = buildCellEdges()

func buildCellEdges() [12]cellEdge {
	var edges [12]cellEdge
	for axis := 0; axis < 3; axis++ {
		b := (axis + 1) % 3
		c := (axis + 2) % 3
		for v := 0; v < 2; v++ {
			for u := 0; u < 2; u++ {
				corner0 := u<<uint(b) | v<<uint(c)
				edges[axis*4+u+2*v] = cellEdge{
					axis:    axis,
					corner0: corner0,
					corner1: corner0 | 1<<uint(axis),
				}
			}
		}
	}
	return edges
}

//-----------------------------------------------------------------------------

// cellConfig lists the manifold components of one corner sign mask.
type cellConfig struct {
	// corners[i] is the corner set of component i.
	corners []BitSet
	// edges[i] is the set of sign-change edge ids incident to component i.
	edges []BitSet
	// cornerComp maps a corner index to its component, -1 when outside.
	cornerComp [8]int8
}

// cellConfigs is the precomputed table over all 256 corner sign masks.
var cellConfigs = buildCellConfigs()

func buildCellConfigs() [256]cellConfig {
	var configs [256]cellConfig
	for mask := 0; mask < 256; mask++ {
		cfg := cellConfig{}
		for i := range cfg.cornerComp {
			cfg.cornerComp[i] = -1
		}

		// Flood the inside corners into edge-connected components.
		seen := BitSet(0)
		for start := 0; start < 8; start++ {
			if mask&(1<<uint(start)) == 0 || seen.Get(start) {
				continue
			}
			comp := BitSetFrom(start)
			queue := []int{start}
			for len(queue) > 0 {
				corner := queue[0]
				queue = queue[1:]
				for axis := 0; axis < 3; axis++ {
					neighbor := corner ^ 1<<uint(axis)
					if mask&(1<<uint(neighbor)) != 0 && !comp.Get(neighbor) {
						comp.Set(neighbor)
						queue = append(queue, neighbor)
					}
				}
			}
			seen = seen.Merge(comp)

			// Collect the sign-change edges whose inside endpoint belongs
			// to this component.
			edgeSet := BitSet(0)
			for e, edge := range cellEdges {
				in0 := mask&(1<<uint(edge.corner0)) != 0
				in1 := mask&(1<<uint(edge.corner1)) != 0
				if in0 == in1 {
					continue
				}
				inside := edge.corner0
				if in1 {
					inside = edge.corner1
				}
				if comp.Get(inside) {
					edgeSet.Set(e)
				}
			}

			compIndex := int8(len(cfg.corners))
			for it := comp; ; {
				corner, ok := it.Next()
				if !ok {
					break
				}
				cfg.cornerComp[corner] = compIndex
			}
			cfg.corners = append(cfg.corners, comp)
			cfg.edges = append(cfg.edges, edgeSet)
		}
		configs[mask] = cfg
	}
	return configs
}

//-----------------------------------------------------------------------------
