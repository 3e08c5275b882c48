//-----------------------------------------------------------------------------
/*

Uniform Sampling

Evaluates the field on the cell lattice with a pool of evaluation
routines, compacts the cells that straddle the surface, and computes the
edge grid: an intersection plane for every sign-change edge, each edge
owned by exactly one lattice point so it is computed once.

*/
//-----------------------------------------------------------------------------

package render

import (
	"runtime"
	"sync"

	"github.com/truescad/truescad/sdf"
	"github.com/truescad/truescad/vec/conv"
	v3 "github.com/truescad/truescad/vec/v3"
	"github.com/truescad/truescad/vec/v3i"
)

//-----------------------------------------------------------------------------

// evalReq is used for processing evaluations in parallel.
// A slice of V3 is evaluated with fn, the result is stored in out.
type evalReq struct {
	out []float64
	p   []v3.Vec
	fn  func(v3.Vec) float64
	wg  *sync.WaitGroup
}

// evalPool is a set of concurrent evaluation routines.
type evalPool struct {
	ch chan evalReq
}

// startEvalPool starts one evaluation routine per CPU.
func startEvalPool() *evalPool {
	e := &evalPool{ch: make(chan evalReq, 100)}
	for i := 0; i < runtime.NumCPU(); i++ {
		go func() {
			for r := range e.ch {
				for i, p := range r.p {
					r.out[i] = r.fn(p)
				}
				r.wg.Done()
			}
		}()
	}
	return e
}

// stop terminates the evaluation routines.
func (e *evalPool) stop() {
	close(e.ch)
}

//-----------------------------------------------------------------------------

// parallelFor runs fn over [0,n) on a bounded set of workers. Each fn call
// owns its index exclusively; writes must go to per-index slots.
func parallelFor(n int, fn func(i int)) {
	workers := runtime.NumCPU()
	if workers > n {
		workers = n
	}
	if workers <= 1 {
		for i := 0; i < n; i++ {
			fn(i)
		}
		return
	}
	indices := make(chan int, workers)
	wg := new(sync.WaitGroup)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indices {
				fn(i)
			}
		}()
	}
	for i := 0; i < n; i++ {
		indices <- i
	}
	close(indices)
	wg.Wait()
}

//-----------------------------------------------------------------------------

// valueGrid holds the field values on the cell lattice.
type valueGrid struct {
	origin v3.Vec
	d      float64
	// number of cells per axis; samples are cells+1 per axis
	cells  v3i.Vec
	values []float64
}

// index returns the storage index of the lattice point p.
func (g *valueGrid) index(p v3i.Vec) int {
	return (p.X*(g.cells.Y+1)+p.Y)*(g.cells.Z+1) + p.Z
}

// value returns the sampled field value at the lattice point p.
func (g *valueGrid) value(p v3i.Vec) float64 {
	return g.values[g.index(p)]
}

// inside reports whether the lattice point p is inside the surface.
func (g *valueGrid) inside(p v3i.Vec) bool {
	return g.value(p) < 0
}

// point returns the world position of the lattice point p.
func (g *valueGrid) point(p v3i.Vec) v3.Vec {
	return g.origin.Add(conv.V3iToV3(p).MulScalar(g.d))
}

// sampleValueGrid evaluates the field at every lattice point. The slack
// equals the resolution: values further than one cell from the surface may
// short-circuit to a bound.
func sampleValueGrid(s sdf.SDF3, origin v3.Vec, d float64, cells v3i.Vec) *valueGrid {
	g := &valueGrid{
		origin: origin,
		d:      d,
		cells:  cells,
		values: make([]float64, (cells.X+1)*(cells.Y+1)*(cells.Z+1)),
	}

	pool := startEvalPool()
	defer pool.stop()

	// Performance doesn't seem to improve past 100.
	const batchSize = 100

	eReq := evalReq{
		wg:  new(sync.WaitGroup),
		fn:  func(p v3.Vec) float64 { return s.Evaluate(p, d) },
		out: g.values,
	}
	eReq.p = make([]v3.Vec, 0, batchSize)
	for x := 0; x <= cells.X; x++ {
		for y := 0; y <= cells.Y; y++ {
			for z := 0; z <= cells.Z; z++ {
				eReq.p = append(eReq.p, g.point(v3i.Vec{X: x, Y: y, Z: z}))
				if len(eReq.p) == batchSize {
					eReq.wg.Add(1)
					pool.ch <- eReq
					eReq.out = eReq.out[batchSize:]
					eReq.p = make([]v3.Vec, 0, batchSize)
				}
			}
		}
	}
	if len(eReq.p) > 0 {
		eReq.wg.Add(1)
		pool.ch <- eReq
	}
	eReq.wg.Wait()

	return g
}

//-----------------------------------------------------------------------------

// activeCell is a cell whose corner values straddle the surface. The mask
// has bit i set when corner i is inside.
type activeCell struct {
	index v3i.Vec
	mask  uint8
}

// cellMask returns the corner sign mask of the cell at index c.
func (g *valueGrid) cellMask(c v3i.Vec) uint8 {
	mask := uint8(0)
	for i := 0; i < 8; i++ {
		if g.inside(c.Add(cornerOffset(i))) {
			mask |= 1 << uint(i)
		}
	}
	return mask
}

// compactValueGrid returns the active cells in lattice order.
func compactValueGrid(g *valueGrid) []activeCell {
	slabs := make([][]activeCell, g.cells.X)
	parallelFor(g.cells.X, func(x int) {
		var cells []activeCell
		for y := 0; y < g.cells.Y; y++ {
			for z := 0; z < g.cells.Z; z++ {
				c := v3i.Vec{X: x, Y: y, Z: z}
				mask := g.cellMask(c)
				if mask != 0 && mask != 255 {
					cells = append(cells, activeCell{index: c, mask: mask})
				}
			}
		}
		slabs[x] = cells
	})
	var all []activeCell
	for _, cells := range slabs {
		all = append(all, cells...)
	}
	return all
}

//-----------------------------------------------------------------------------

// EdgeIndex names a lattice edge: the cell lattice point of its low end
// and the axis it runs along (0 = x, 1 = y, 2 = z).
type EdgeIndex struct {
	Cell v3i.Vec
	Axis int
}

// edgeGrid holds the intersection plane of every sign-change edge.
type edgeGrid struct {
	planes map[EdgeIndex]Plane
	order  []EdgeIndex
}

// computeEdgeGrid finds all sign-change edges of the active cells and
// computes their intersection planes. An edge shared by up to four cells
// is computed once.
func computeEdgeGrid(s sdf.SDF3, g *valueGrid, cells []activeCell) *edgeGrid {
	eg := &edgeGrid{planes: make(map[EdgeIndex]Plane)}

	// Collect the unique sign-change edges in deterministic order.
	for _, cell := range cells {
		for _, edge := range cellEdges {
			in0 := cell.mask&(1<<uint(edge.corner0)) != 0
			in1 := cell.mask&(1<<uint(edge.corner1)) != 0
			if in0 == in1 {
				continue
			}
			key := EdgeIndex{
				Cell: cell.index.Add(cornerOffset(edge.corner0)),
				Axis: edge.axis,
			}
			if _, ok := eg.planes[key]; !ok {
				eg.planes[key] = Plane{}
				eg.order = append(eg.order, key)
			}
		}
	}

	// The intersection point comes from linear interpolation in the edge's
	// value field, the normal from the field itself.
	planes := make([]Plane, len(eg.order))
	parallelFor(len(eg.order), func(i int) {
		key := eg.order[i]
		q0 := key.Cell
		q1 := q0
		q1.Set(key.Axis, q1.Get(key.Axis)+1)
		v0 := g.value(q0)
		v1 := g.value(q1)
		t := v0 / (v0 - v1)
		p0 := g.point(q0)
		point := p0.Add(g.point(q1).Sub(p0).MulScalar(t))
		planes[i] = Plane{P: point, N: s.Normal(point)}
	})
	for i, key := range eg.order {
		eg.planes[key] = planes[i]
	}
	return eg
}

//-----------------------------------------------------------------------------
