//-----------------------------------------------------------------------------
/*

Triangle Mesh Fields

Signed distance to an existing triangle mesh. Candidate faces are found
through an R-tree, then the exact point/face distance is taken over the
candidates. The sign comes from the angle between the face normal and the
vector to the closest point, so the mesh should be closed and consistently
wound.

*/
//-----------------------------------------------------------------------------

package sdf

import (
	"errors"
	"math"

	"github.com/dhconnelly/rtreego"
	v3 "github.com/truescad/truescad/vec/v3"
)

//-----------------------------------------------------------------------------

// maxFaceCandidates is the number of nearest faces checked exactly per
// evaluation.
const maxFaceCandidates = 16

// meshFace is one triangle of a mesh field, indexed by the R-tree.
type meshFace struct {
	a, b, c v3.Vec
	normal  v3.Vec
	rect    rtreego.Rect
}

// Bounds returns the R-tree rectangle of the face.
func (f *meshFace) Bounds() rtreego.Rect {
	return f.rect
}

// meshSDF is a signed distance field over a triangle mesh.
type meshSDF struct {
	tree  *rtreego.Rtree
	faces []*meshFace
	bb    Box3
}

// MeshSDF3 returns a field measuring the signed distance to a triangle
// mesh. The mesh should be closed, 2-manifold and consistently wound.
func MeshSDF3(vertices []v3.Vec, faces [][3]int) (SDF3, error) {
	if len(faces) == 0 {
		return nil, errors.New("mesh has no faces")
	}
	s := &meshSDF{
		tree: rtreego.NewTree(3, 8, 16),
		bb:   EmptyBox3(),
	}
	for _, v := range vertices {
		s.bb = s.bb.Include(v)
	}
	for _, f := range faces {
		a, b, c := vertices[f[0]], vertices[f[1]], vertices[f[2]]
		n := b.Sub(a).Cross(c.Sub(a))
		if n.Length() == 0 {
			// Degenerate face, no surface area to measure against.
			continue
		}
		min := a.Min(b).Min(c)
		size := a.Max(b).Max(c).Sub(min)
		rect, err := rtreego.NewRect(
			rtreego.Point{min.X, min.Y, min.Z},
			[]float64{
				math.Max(size.X, 1e-12),
				math.Max(size.Y, 1e-12),
				math.Max(size.Z, 1e-12),
			})
		if err != nil {
			return nil, err
		}
		face := &meshFace{a: a, b: b, c: c, normal: n.Normalize(), rect: rect}
		s.faces = append(s.faces, face)
		s.tree.Insert(face)
	}
	if len(s.faces) == 0 {
		return nil, errors.New("mesh has only degenerate faces")
	}
	return s, nil
}

//-----------------------------------------------------------------------------

// Evaluate returns the signed distance to the mesh surface.
func (s *meshSDF) Evaluate(p v3.Vec, slack float64) float64 {
	if approx := s.bb.Distance(p); approx > slack {
		return approx
	}
	k := maxFaceCandidates
	if k > len(s.faces) {
		k = len(s.faces)
	}
	candidates := s.tree.NearestNeighbors(k, rtreego.Point{p.X, p.Y, p.Z})
	best := math.Inf(1)
	bestAcos := 0.0
	for _, c := range candidates {
		f := c.(*meshFace)
		dist, acos := distancePointFace(f, p)
		if !math.IsInf(best, 1) && math.Abs(dist-best) <= 1e-12*math.Max(1, math.Abs(best)) {
			// Equidistant faces: the steeper angle decides the sign, which
			// resolves edges and vertices of the mesh.
			if math.Abs(acos) > math.Abs(bestAcos) {
				bestAcos = acos
			}
			continue
		}
		if dist < best {
			best = dist
			bestAcos = acos
		}
	}
	if math.Signbit(bestAcos) {
		return -best
	}
	return best
}

// Normal returns the normal of the mesh field at p.
func (s *meshSDF) Normal(p v3.Vec) v3.Vec {
	return NumericalNormal(s, p)
}

// BoundingBox returns the bounding box of the mesh.
func (s *meshSDF) BoundingBox() Box3 {
	return s.bb
}

// SetParameters is a no-op for primitives.
func (s *meshSDF) SetParameters(params *PrimitiveParameters) {}

//-----------------------------------------------------------------------------

// pointOverLine projects p onto the segment ab, or reports false if the
// projection falls outside the segment.
func pointOverLine(a, b, p v3.Vec) (v3.Vec, bool) {
	ab := b.Sub(a)
	scale := p.Sub(a).Dot(ab) / ab.Dot(ab)
	if scale < 0 || scale > 1 {
		return v3.Vec{}, false
	}
	return a.Add(ab.MulScalar(scale)), true
}

// pointOverTriangle projects p onto the plane of the triangle, or reports
// false if the projection falls outside the triangle.
func pointOverTriangle(f *meshFace, p v3.Vec) (v3.Vec, bool) {
	proj := p.Sub(f.normal.MulScalar(p.Sub(f.a).Dot(f.normal)))

	// Express the projection as a combination of the spanning edges.
	ab := f.b.Sub(f.a)
	bc := f.c.Sub(f.b)
	aproj := proj.Sub(f.a)

	var l float64
	if ld := bc.X*ab.Y - bc.Y*ab.X; ld != 0 {
		l = (aproj.X*ab.Y - aproj.Y*ab.X) / ld
	} else if ld := bc.X*ab.Z - bc.Z*ab.X; ld != 0 {
		l = (aproj.X*ab.Z - aproj.Z*ab.X) / ld
	} else {
		ld := bc.Z*ab.Y - bc.Y*ab.Z
		l = (aproj.Z*ab.Y - aproj.Y*ab.Z) / ld
	}

	var k float64
	if ab.X != 0 {
		k = (aproj.X - l*bc.X) / ab.X
	} else if ab.Y != 0 {
		k = (aproj.Y - l*bc.Y) / ab.Y
	} else {
		k = (aproj.Z - l*bc.Z) / ab.Z
	}

	if k < 0 || l < 0 || k > 1 || l > k {
		return v3.Vec{}, false
	}
	return proj, true
}

// distancePointFace returns the distance from p to the face and the cosine
// of the angle between the face normal and the line from the closest point
// to p.
func distancePointFace(f *meshFace, p v3.Vec) (float64, float64) {
	if proj, ok := pointOverTriangle(f, p); ok {
		delta := p.Sub(proj)
		if delta.Dot(f.normal) < 0 {
			return delta.Length(), -1
		}
		return delta.Length(), 1
	}

	// Closest projection onto any edge.
	closest := v3.Vec{}
	best := math.Inf(1)
	for _, edge := range [3][2]v3.Vec{{f.a, f.b}, {f.b, f.c}, {f.c, f.a}} {
		if pp, ok := pointOverLine(edge[0], edge[1], p); ok {
			if d := p.Sub(pp).Length(); d < best {
				closest, best = pp, d
			}
		}
	}

	// A vertex may be closer still.
	for _, vertex := range [3]v3.Vec{f.a, f.b, f.c} {
		if d := p.Sub(vertex).Length(); d < best {
			closest, best = vertex, d
		}
	}

	if best == 0 {
		return 0, 1
	}
	return best, p.Sub(closest).Dot(f.normal) / best
}

//-----------------------------------------------------------------------------
