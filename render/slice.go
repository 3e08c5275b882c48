//-----------------------------------------------------------------------------
/*

2D Slices

Marching squares over a Z slice of a field, with SVG and DXF export of the
resulting contour segments.

*/
//-----------------------------------------------------------------------------

package render

import (
	"errors"
	"fmt"
	"math"
	"os"

	svg "github.com/ajstarks/svgo/float"
	"github.com/truescad/truescad/sdf"
	"github.com/truescad/truescad/vec/v2"
	v3 "github.com/truescad/truescad/vec/v3"
	"github.com/yofu/dxf"
)

//-----------------------------------------------------------------------------

// Line2 is a 2D line segment.
type Line2 struct {
	A, B v2.Vec
}

// msEdgeTable lists, per corner sign mask, the cell edge pairs crossed by
// the contour. Corners are numbered counter-clockwise from the cell
// origin, edge i runs from corner i to corner (i+1)%4.
var msEdgeTable = [16][]int{
	{},
	{3, 0},
	{0, 1},
	{3, 1},
	{1, 2},
	{3, 0, 1, 2},
	{0, 2},
	{3, 2},
	{2, 3},
	{2, 0},
	{0, 1, 2, 3},
	{2, 1},
	{1, 3},
	{1, 0},
	{0, 3},
	{},
}

// msCorners are the cell corner offsets in edge order.
var msCorners = [4]v2.Vec{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}}

//-----------------------------------------------------------------------------

// SliceZ samples a field on the plane at height z and returns the contour
// segments of its zero set at the given resolution.
func SliceZ(s sdf.SDF3, z, resolution float64) ([]Line2, error) {
	if s == nil || resolution <= 0 {
		return nil, errors.New("degenerate slice input")
	}
	bb := s.BoundingBox()
	if !bb.IsFinite() {
		return nil, errors.New("unbounded field")
	}
	min := v2.Vec{X: bb.Min.X - resolution, Y: bb.Min.Y - resolution}
	nx := int(math.Ceil((bb.Max.X-bb.Min.X)/resolution)) + 2
	ny := int(math.Ceil((bb.Max.Y-bb.Min.Y)/resolution)) + 2

	// Sample the slice lattice.
	values := make([]float64, (nx+1)*(ny+1))
	for ix := 0; ix <= nx; ix++ {
		for iy := 0; iy <= ny; iy++ {
			p := v3.Vec{
				X: min.X + float64(ix)*resolution,
				Y: min.Y + float64(iy)*resolution,
				Z: z,
			}
			values[ix*(ny+1)+iy] = s.Evaluate(p, resolution)
		}
	}

	// March the squares.
	var lines []Line2
	for ix := 0; ix < nx; ix++ {
		for iy := 0; iy < ny; iy++ {
			var corner [4]float64
			mask := 0
			for i, c := range msCorners {
				corner[i] = values[(ix+int(c.X))*(ny+1)+iy+int(c.Y)]
				if corner[i] < 0 {
					mask |= 1 << uint(i)
				}
			}
			edges := msEdgeTable[mask]
			base := v2.Vec{X: min.X + float64(ix)*resolution, Y: min.Y + float64(iy)*resolution}
			crossing := func(edge int) v2.Vec {
				i0 := edge
				i1 := (edge + 1) % 4
				t := corner[i0] / (corner[i0] - corner[i1])
				c := msCorners[i0].Add(msCorners[i1].Sub(msCorners[i0]).MulScalar(t))
				return base.Add(c.MulScalar(resolution))
			}
			for i := 0; i < len(edges); i += 2 {
				lines = append(lines, Line2{A: crossing(edges[i]), B: crossing(edges[i+1])})
			}
		}
	}
	return lines, nil
}

//-----------------------------------------------------------------------------

// SaveSliceSVG writes contour segments to an SVG file, fitted into a
// fixed-size viewport.
func SaveSliceSVG(path string, lines []Line2) error {
	if len(lines) == 0 {
		return errors.New("no lines")
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, l := range lines {
		minX = math.Min(minX, math.Min(l.A.X, l.B.X))
		minY = math.Min(minY, math.Min(l.A.Y, l.B.Y))
		maxX = math.Max(maxX, math.Max(l.A.X, l.B.X))
		maxY = math.Max(maxY, math.Max(l.A.Y, l.B.Y))
	}
	const canvas = 500.0
	const margin = 10.0
	scale := (canvas - 2*margin) / math.Max(maxX-minX, maxY-minY)
	mapX := func(x float64) float64 { return margin + (x-minX)*scale }
	// SVG y grows downward.
	mapY := func(y float64) float64 { return canvas - margin - (y-minY)*scale }

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	canv := svg.New(file)
	canv.Start(canvas, canvas)
	style := "stroke:black;stroke-width:1;fill:none"
	for _, l := range lines {
		canv.Line(mapX(l.A.X), mapY(l.A.Y), mapX(l.B.X), mapY(l.B.Y), style)
	}
	canv.End()
	return nil
}

//-----------------------------------------------------------------------------

// SaveSliceDXF writes contour segments to a DXF file.
func SaveSliceDXF(path string, lines []Line2) error {
	if len(lines) == 0 {
		return errors.New("no lines")
	}
	drawing := dxf.NewDrawing()
	for _, l := range lines {
		if _, err := drawing.Line(l.A.X, l.A.Y, 0, l.B.X, l.B.Y, 0); err != nil {
			return fmt.Errorf("dxf line: %w", err)
		}
	}
	return drawing.SaveAs(path)
}

//-----------------------------------------------------------------------------
