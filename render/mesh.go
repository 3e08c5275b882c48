//-----------------------------------------------------------------------------
/*

Triangle Meshes

Indexed triangle mesh produced by the tessellator, plus the closure check
used to validate that an output is watertight.

*/
//-----------------------------------------------------------------------------

package render

import (
	"fmt"

	v3 "github.com/truescad/truescad/vec/v3"
)

//-----------------------------------------------------------------------------

// Triangle3 is a 3D triangle.
type Triangle3 struct {
	V [3]v3.Vec
}

// Normal returns the normal vector of the triangle.
func (t *Triangle3) Normal() v3.Vec {
	e1 := t.V[1].Sub(t.V[0])
	e2 := t.V[2].Sub(t.V[0])
	return e1.Cross(e2).Normalize()
}

// Degenerate returns true if the triangle is degenerate.
func (t *Triangle3) Degenerate(tolerance float64) bool {
	e1 := t.V[1].Sub(t.V[0])
	e2 := t.V[2].Sub(t.V[0])
	return e1.Cross(e2).Length() <= tolerance
}

//-----------------------------------------------------------------------------

// Mesh is an indexed triangle mesh.
type Mesh struct {
	// The list of vertices.
	Vertices []v3.Vec
	// The list of triangles as indexes into the vertices.
	Faces [][3]int
}

// FaceNormal returns the normal of the face at the given index.
func (m *Mesh) FaceNormal(face int) v3.Vec {
	f := m.Faces[face]
	t := Triangle3{V: [3]v3.Vec{m.Vertices[f[0]], m.Vertices[f[1]], m.Vertices[f[2]]}}
	return t.Normal()
}

// Triangles returns the mesh faces as a list of triangles.
func (m *Mesh) Triangles() []*Triangle3 {
	ts := make([]*Triangle3, 0, len(m.Faces))
	for _, f := range m.Faces {
		ts = append(ts, &Triangle3{
			V: [3]v3.Vec{m.Vertices[f[0]], m.Vertices[f[1]], m.Vertices[f[2]]},
		})
	}
	return ts
}

// IsClosed checks that the mesh is closed and 2-manifold along its edges:
// every directed edge must appear in exactly one face, and its reverse in
// exactly one other face.
func (m *Mesh) IsClosed() error {
	edgeToFace := make(map[[2]int]int, 3*len(m.Faces))
	for faceIndex, face := range m.Faces {
		for i := 0; i < 3; i++ {
			edge := [2]int{face[i], face[(i+1)%3]}
			if existing, ok := edgeToFace[edge]; ok {
				return fmt.Errorf("face #%d and face #%d share edge %d->%d", existing, faceIndex, edge[0], edge[1])
			}
			edgeToFace[edge] = faceIndex
		}
	}
	for edge, faceIndex := range edgeToFace {
		if _, ok := edgeToFace[[2]int{edge[1], edge[0]}]; !ok {
			return fmt.Errorf("unmatched edge %d->%d of face #%d", edge[0], edge[1], faceIndex)
		}
	}
	return nil
}

//-----------------------------------------------------------------------------
