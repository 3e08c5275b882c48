//-----------------------------------------------------------------------------
/*

Manifold Dual Contouring

Convert an implicit field to a watertight triangle mesh.
Supports sharp edges, and splits cell vertices on saddle configurations so
the output stays a 2-manifold.

The pipeline is stage-serial, each stage data-parallel over grid indices:
sample the value grid, compact the active cells, compute the edge grid,
generate the leaf vertices, subsample the octree, then emit two triangles
per sign-change edge.

*/
//-----------------------------------------------------------------------------

package render

import (
	"fmt"
	"log"
	"sync"

	"github.com/truescad/truescad/sdf"
	"github.com/truescad/truescad/vec/conv"
	"github.com/truescad/truescad/vec/v3i"
)

//-----------------------------------------------------------------------------

// ManifoldDualContouring renders an implicit field using manifold dual
// contouring.
type ManifoldDualContouring struct {
	s sdf.SDF3
	// resolution is the grid cell size.
	resolution float64
	// tolerance is the QEF error bound for octree simplification. With
	// zero, only groups whose merged QEF error is exactly zero collapse.
	tolerance float64

	warnOnce sync.Once
}

// NewManifoldDualContouring returns a renderer for the given field.
func NewManifoldDualContouring(s sdf.SDF3, resolution, tolerance float64) *ManifoldDualContouring {
	return &ManifoldDualContouring{
		s:          s,
		resolution: resolution,
		tolerance:  tolerance,
	}
}

// Info returns a string describing the sampling grid.
func (r *ManifoldDualContouring) Info() string {
	cells, ok := r.gridCells()
	if !ok {
		return "degenerate"
	}
	return fmt.Sprintf("%dx%dx%d", cells.X, cells.Y, cells.Z)
}

// gridCells returns the cell counts of the sampling grid. The field box is
// padded by one cell on all sides so surface crossings never touch the
// grid boundary.
func (r *ManifoldDualContouring) gridCells() (v3i.Vec, bool) {
	if r.s == nil || r.resolution <= 0 || r.tolerance < 0 {
		return v3i.Vec{}, false
	}
	bb := r.s.BoundingBox()
	if !bb.IsFinite() {
		return v3i.Vec{}, false
	}
	size := bb.Size()
	if size.X <= 0 || size.Y <= 0 || size.Z <= 0 {
		return v3i.Vec{}, false
	}
	cells := conv.V3ToV3i(size.DivScalar(r.resolution).Ceil())
	return cells.Add(v3i.Vec{X: 2, Y: 2, Z: 2}), true
}

// Tessellate samples the field and returns the triangle mesh of its
// surface, or nil when the field has no surface inside the grid or the
// input is degenerate.
func (r *ManifoldDualContouring) Tessellate() *Mesh {
	cells, ok := r.gridCells()
	if !ok {
		return nil
	}
	origin := r.s.BoundingBox().Min.AddScalar(-r.resolution)

	grid := sampleValueGrid(r.s, origin, r.resolution, cells)
	active := compactValueGrid(grid)
	if len(active) == 0 {
		return nil
	}
	edges := computeEdgeGrid(r.s, grid, active)
	vertices := generateLeafVertices(grid, active, edges)
	subsampleOctree(leafLayer(vertices), r.tolerance)

	mesh := &Mesh{}
	r.assignVertexIndices(mesh, active, vertices)
	r.emitQuads(mesh, grid, edges, vertices)
	return mesh
}

//-----------------------------------------------------------------------------

// assignVertexIndices numbers the simplified vertices in cell order and
// fills the mesh vertex list with their QEF solutions.
func (r *ManifoldDualContouring) assignVertexIndices(mesh *Mesh, active []activeCell, vertices map[v3i.Vec]*cellVertices) {
	for _, cell := range active {
		for _, node := range vertices[cell.index].comps {
			root := node.root()
			if root.index < 0 {
				root.index = len(mesh.Vertices)
				mesh.Vertices = append(mesh.Vertices, root.qef.Solution)
			}
		}
	}
}

// emitQuads emits two triangles per sign-change edge, stitching the
// vertices of the four incident cells. The winding follows the sign of
// the edge's low endpoint so face normals point out of the surface.
func (r *ManifoldDualContouring) emitQuads(mesh *Mesh, grid *valueGrid, edges *edgeGrid, vertices map[v3i.Vec]*cellVertices) {
	slots := make([][][3]int, len(edges.order))
	parallelFor(len(edges.order), func(i int) {
		slots[i] = r.edgeTriangles(grid, edges.order[i], vertices)
	})
	for _, faces := range slots {
		mesh.Faces = append(mesh.Faces, faces...)
	}
}

// edgeTriangles resolves the four vertices around one sign-change edge
// through the octree and returns the two triangles of its quad.
func (r *ManifoldDualContouring) edgeTriangles(grid *valueGrid, edge EdgeIndex, vertices map[v3i.Vec]*cellVertices) [][3]int {
	q := edge.Cell
	axis := edge.Axis
	insideLow := grid.inside(q)

	// The inside endpoint selects the manifold component in each cell.
	in := q
	if !insideLow {
		in.Set(axis, in.Get(axis)+1)
	}

	// The four incident cells, counter-clockwise around the +axis
	// direction.
	b := (axis + 1) % 3
	c := (axis + 2) % 3
	var eb, ec v3i.Vec
	eb.Set(b, 1)
	ec.Set(c, 1)
	ring := [4]v3i.Vec{
		q,
		q.Sub(eb),
		q.Sub(eb).Sub(ec),
		q.Sub(ec),
	}

	var quad [4]int
	for i, cellIndex := range ring {
		cv, ok := vertices[cellIndex]
		if !ok {
			// The grid margin keeps sign changes off the boundary, so
			// every incident cell of a sign-change edge is active.
			r.warnOnce.Do(func() {
				log.Printf("ManifoldDualContouring: no vertex for cell %v, the mesh will have a hole", cellIndex)
			})
			return nil
		}
		d := in.Sub(cellIndex)
		node := cv.vertexAt(d.X | d.Y<<1 | d.Z<<2)
		if node == nil {
			return nil
		}
		quad[i] = node.root().index
	}

	if !insideLow {
		quad[1], quad[3] = quad[3], quad[1]
	}

	var faces [][3]int
	for _, f := range [2][3]int{
		{quad[0], quad[1], quad[2]},
		{quad[0], quad[2], quad[3]},
	} {
		// Quads collapsed by simplification emit degenerate triangles.
		if f[0] == f[1] || f[1] == f[2] || f[0] == f[2] {
			continue
		}
		faces = append(faces, f)
	}
	return faces
}

//-----------------------------------------------------------------------------
