//-----------------------------------------------------------------------------
/*

Leaf Vertex Generation

Each active cell yields one vertex per manifold component of its inside
corners. The vertex is placed by a QEF over the intersection planes of the
sign-change edges incident to that component, constrained to the cell box.

*/
//-----------------------------------------------------------------------------

package render

import (
	"github.com/truescad/truescad/sdf"
	"github.com/truescad/truescad/vec/v3i"
)

//-----------------------------------------------------------------------------

// octreeNode is a vertex of the simplified octree. Leaves carry the QEF of
// one cell component; internal nodes carry the merged QEF of their
// children. A node with a parent has been collapsed into it.
type octreeNode struct {
	qef    *Qef
	parent *octreeNode
	// Lattice points of the inside corners of the component. Two nodes
	// sharing a lattice corner are part of the same surface sheet.
	corners []v3i.Vec
	// Mesh vertex index, -1 until assigned.
	index int
}

// root returns the deepest non-collapsed ancestor of the node.
func (n *octreeNode) root() *octreeNode {
	for n.parent != nil {
		n = n.parent
	}
	return n
}

//-----------------------------------------------------------------------------

// cellVertices holds the per-component vertices of one active cell.
type cellVertices struct {
	mask  uint8
	comps []*octreeNode
}

// vertexAt returns the vertex of the component owning the given corner.
func (cv *cellVertices) vertexAt(corner int) *octreeNode {
	comp := cellConfigs[cv.mask].cornerComp[corner]
	if comp < 0 {
		return nil
	}
	return cv.comps[comp]
}

//-----------------------------------------------------------------------------

// generateLeafVertices builds and solves the QEF vertices of every active
// cell, split by manifold component.
func generateLeafVertices(g *valueGrid, cells []activeCell, eg *edgeGrid) map[v3i.Vec]*cellVertices {
	slots := make([]*cellVertices, len(cells))
	parallelFor(len(cells), func(i int) {
		cell := cells[i]
		cfg := &cellConfigs[cell.mask]
		cellBox := sdf.NewBox3(
			g.point(cell.index),
			g.point(cell.index.Add(v3i.Vec{X: 1, Y: 1, Z: 1})),
		)
		cv := &cellVertices{mask: cell.mask}
		for comp := range cfg.corners {
			// Gather the planes of the sign-change edges belonging to
			// this component.
			qef := &Qef{bb: cellBox}
			for it := cfg.edges[comp]; ; {
				e, ok := it.Next()
				if !ok {
					break
				}
				edge := cellEdges[e]
				key := EdgeIndex{
					Cell: cell.index.Add(cornerOffset(edge.corner0)),
					Axis: edge.axis,
				}
				qef.Add(eg.planes[key])
			}
			qef.Solve()

			node := &octreeNode{qef: qef, index: -1}
			for it := cfg.corners[comp]; ; {
				corner, ok := it.Next()
				if !ok {
					break
				}
				node.corners = append(node.corners, cell.index.Add(cornerOffset(corner)))
			}
			cv.comps = append(cv.comps, node)
		}
		slots[i] = cv
	})

	vertices := make(map[v3i.Vec]*cellVertices, len(cells))
	for i, cell := range cells {
		vertices[cell.index] = slots[i]
	}
	return vertices
}

//-----------------------------------------------------------------------------
