//-----------------------------------------------------------------------------
/*

Quadratic Error Functions

Each sign-change edge contributes a plane (point + normal). The QEF
accumulates A^T*A, A^T*b and b^T*b over those planes and minimizes
E(x) = |A*x - b|^2 to place the dual vertex. The linear solve is a
pseudo-inverse recentered on the mean point, which gives the minimum-norm
solution for rank-deficient systems; when it lands outside the owning
cell box (or is NaN) a gradient-probe binary search inside the box takes
over.

*/
//-----------------------------------------------------------------------------

package render

import (
	"github.com/truescad/truescad/sdf"
	v3 "github.com/truescad/truescad/vec/v3"
	"gonum.org/v1/gonum/mat"
)

//-----------------------------------------------------------------------------

// qefEpsilon is the gradient probe step of the binary search.
const qefEpsilon = 1e-10

// svdTolerance is the relative singular value cutoff of the pseudo-inverse.
const svdTolerance = 1e-10

// Plane is a point with a unit normal, the QEF input datum produced for
// each sign-change edge.
type Plane struct {
	P v3.Vec
	N v3.Vec
}

//-----------------------------------------------------------------------------

// Qef is a quadratic error function over a set of planes.
type Qef struct {
	// Upper right triangle of A^T * A.
	ata [6]float64
	// Vector A^T * b.
	atb v3.Vec
	// Scalar b^T * b.
	btb float64
	// Sum of the plane points.
	sum v3.Vec
	// Number of planes.
	num int
	// Owning cell box, the solution domain.
	bb sdf.Box3

	// Point closest to all planes, valid after Solve.
	Solution v3.Vec
	// Residual error at Solution, valid after Solve.
	Error float64
}

// NewQef returns the QEF over the given planes, owned by the given cell box.
func NewQef(planes []Plane, bb sdf.Box3) *Qef {
	q := &Qef{bb: bb}
	for _, p := range planes {
		q.Add(p)
	}
	return q
}

// Add accumulates one plane.
func (q *Qef) Add(p Plane) {
	q.ata[0] += p.N.X * p.N.X
	q.ata[1] += p.N.X * p.N.Y
	q.ata[2] += p.N.X * p.N.Z
	q.ata[3] += p.N.Y * p.N.Y
	q.ata[4] += p.N.Y * p.N.Z
	q.ata[5] += p.N.Z * p.N.Z
	pn := p.P.Dot(p.N)
	q.atb = q.atb.Add(p.N.MulScalar(pn))
	q.btb += pn * pn
	q.sum = q.sum.Add(p.P)
	q.num++
}

// Merge sums the accumulators of another QEF into this one and unions the
// owning boxes. This is how octree subsampling aggregates children.
func (q *Qef) Merge(other *Qef) {
	for i := range q.ata {
		q.ata[i] += other.ata[i]
	}
	q.atb = q.atb.Add(other.atb)
	q.btb += other.btb
	q.sum = q.sum.Add(other.sum)
	q.num += other.num
	q.bb = q.bb.Union(other.bb)
}

//-----------------------------------------------------------------------------

// ataMul returns A^T*A times v.
func (q *Qef) ataMul(v v3.Vec) v3.Vec {
	return v3.Vec{
		X: q.ata[0]*v.X + q.ata[1]*v.Y + q.ata[2]*v.Z,
		Y: q.ata[1]*v.X + q.ata[3]*v.Y + q.ata[4]*v.Z,
		Z: q.ata[2]*v.X + q.ata[4]*v.Y + q.ata[5]*v.Z,
	}
}

// errorAt evaluates E(x) = b^T*b - 2*x.A^T*b + x.(A^T*A*x).
func (q *Qef) errorAt(x v3.Vec) float64 {
	return q.btb - 2*x.Dot(q.atb) + x.Dot(q.ataMul(x))
}

// Solve places the vertex and records the residual error.
func (q *Qef) Solve() {
	if q.num == 0 {
		q.Solution = q.bb.Center()
		q.Error = 0
		return
	}
	mean := q.sum.MulScalar(1 / float64(q.num))

	// Minimum-norm least squares solution recentered on the mean point.
	bRel := q.atb.Sub(q.ataMul(mean))
	q.Solution = mean.Add(q.pseudoInverseMul(bRel))

	// If the solution escaped the owning cell box (or is NaN, e.g. from
	// NaN plane data), binary-search the box instead.
	if !q.bb.Contains(q.Solution) {
		q.Solution = q.searchSolution()
	}
	q.Error = q.errorAt(q.Solution)
}

// pseudoInverseMul returns pinv(A^T*A) times v, computed by SVD with small
// singular values dropped.
func (q *Qef) pseudoInverseMul(v v3.Vec) v3.Vec {
	a := mat.NewDense(3, 3, []float64{
		q.ata[0], q.ata[1], q.ata[2],
		q.ata[1], q.ata[3], q.ata[4],
		q.ata[2], q.ata[4], q.ata[5],
	})
	var svd mat.SVD
	if !svd.Factorize(a, mat.SVDFull) {
		return v3.Vec{}
	}
	var u, vm mat.Dense
	svd.UTo(&u)
	svd.VTo(&vm)
	values := svd.Values(nil)

	cutoff := svdTolerance * values[0]
	in := [3]float64{v.X, v.Y, v.Z}
	var mid [3]float64
	for i := 0; i < 3; i++ {
		if values[i] <= cutoff {
			continue
		}
		dot := 0.0
		for j := 0; j < 3; j++ {
			dot += u.At(j, i) * in[j]
		}
		mid[i] = dot / values[i]
	}
	var out [3]float64
	for j := 0; j < 3; j++ {
		for i := 0; i < 3; i++ {
			out[j] += vm.At(j, i) * mid[i]
		}
	}
	return v3.Vec{X: out[0], Y: out[1], Z: out[2]}
}

// searchSolution descends along per-axis error gradients, halving the box
// until its side drops below 1% of the original.
func (q *Qef) searchSolution() v3.Vec {
	box := q.bb
	accuracy := (box.Max.X - box.Min.X) / 100
	for {
		mid := box.Center()
		if box.Max.X-box.Min.X <= accuracy {
			return mid
		}
		midError := q.errorAt(mid)
		for dim := 0; dim < 3; dim++ {
			probe := mid
			probe.Set(dim, probe.Get(dim)+qefEpsilon)
			if q.errorAt(probe) < midError {
				box.Min.Set(dim, mid.Get(dim))
			} else {
				box.Max.Set(dim, mid.Get(dim))
			}
		}
	}
}

//-----------------------------------------------------------------------------
