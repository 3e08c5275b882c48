//-----------------------------------------------------------------------------
/*

Slice Previews

Debug rendering of a field's Z slice into an image: per-pixel field
sampling on a worker pool, distance shading, the zero contour stroked on
top, and optional axis labels.

*/
//-----------------------------------------------------------------------------

package dev

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"runtime"
	"sync"

	"github.com/golang/freetype/truetype"
	"github.com/llgcode/draw2d"
	"github.com/llgcode/draw2d/draw2dimg"
	"github.com/truescad/truescad/render"
	"github.com/truescad/truescad/sdf"
	v3 "github.com/truescad/truescad/vec/v3"
	xdraw "golang.org/x/image/draw"
)

//-----------------------------------------------------------------------------

type pixelJob struct {
	x, y int
	p    v3.Vec
}

type pixelResult struct {
	x, y int
	c    color.RGBA
}

//-----------------------------------------------------------------------------

// Preview renders a field's Z slice and the zero contour.
type Preview struct {
	s sdf.SDF3
	// Z height of the slice.
	Z float64
	// Pixels per axis of the rendered image.
	Pixels int
}

// NewPreview returns a slice preview of the given field.
func NewPreview(s sdf.SDF3) *Preview {
	return &Preview{s: s, Z: 0, Pixels: 512}
}

// Render samples one pixel per image point and strokes the zero contour.
func (pv *Preview) Render() (*image.RGBA, error) {
	if pv.s == nil || pv.Pixels <= 0 {
		return nil, errors.New("degenerate preview input")
	}
	bb := pv.s.BoundingBox()
	if !bb.IsFinite() {
		return nil, errors.New("unbounded field")
	}
	size := math.Max(bb.Size().X, bb.Size().Y) * 1.1
	center := bb.Center()
	minX := center.X - size/2
	minY := center.Y - size/2
	scale := size / float64(pv.Pixels)

	img := image.NewRGBA(image.Rect(0, 0, pv.Pixels, pv.Pixels))

	// Render one pixel at a time on a pool of workers.
	jobs := make(chan pixelJob, 100)
	results := make(chan pixelResult, 100)
	workerWg := &sync.WaitGroup{}
	for i := 0; i < runtime.NumCPU(); i++ {
		workerWg.Add(1)
		go func() {
			defer workerWg.Done()
			for job := range jobs {
				d := pv.s.Evaluate(job.p, size)
				results <- pixelResult{x: job.x, y: job.y, c: shade(d, scale)}
			}
		}()
	}
	go func() {
		workerWg.Wait()
		close(results)
	}()
	go func() {
		for y := 0; y < pv.Pixels; y++ {
			for x := 0; x < pv.Pixels; x++ {
				jobs <- pixelJob{
					x: x,
					y: y,
					p: v3.Vec{
						X: minX + (float64(x)+0.5)*scale,
						// Image y grows downward.
						Y: minY + (float64(pv.Pixels-1-y)+0.5)*scale,
						Z: pv.Z,
					},
				}
			}
		}
		close(jobs)
	}()
	for r := range results {
		img.SetRGBA(r.x, r.y, r.c)
	}

	// Stroke the zero contour on top.
	lines, err := render.SliceZ(pv.s, pv.Z, scale*2)
	if err != nil {
		return nil, err
	}
	gc := draw2dimg.NewGraphicContext(img)
	gc.SetStrokeColor(color.RGBA{R: 0xc0, A: 0xff})
	gc.SetLineWidth(1.5)
	for _, l := range lines {
		gc.BeginPath()
		gc.MoveTo((l.A.X-minX)/scale, float64(pv.Pixels)-(l.A.Y-minY)/scale)
		gc.LineTo((l.B.X-minX)/scale, float64(pv.Pixels)-(l.B.Y-minY)/scale)
		gc.Stroke()
	}
	return img, nil
}

// shade maps a field value to a pixel color: flat fill inside, distance
// bands outside.
func shade(d, scale float64) color.RGBA {
	if d < 0 {
		return color.RGBA{R: 0x60, G: 0x70, B: 0x90, A: 0xff}
	}
	band := uint8(0xe8)
	if int(d/(16*scale))%2 == 1 {
		band = 0xf8
	}
	return color.RGBA{R: band, G: band, B: band, A: 0xff}
}

//-----------------------------------------------------------------------------

// Label draws axis labels onto a rendered preview with the given TrueType
// font file.
func Label(img *image.RGBA, fontPath string, text string) error {
	data, err := os.ReadFile(fontPath)
	if err != nil {
		return err
	}
	font, err := truetype.Parse(data)
	if err != nil {
		return err
	}
	fontData := draw2d.FontData{Name: "preview", Family: draw2d.FontFamilySans}
	draw2d.RegisterFont(fontData, font)

	gc := draw2dimg.NewGraphicContext(img)
	gc.SetFontData(fontData)
	gc.SetFontSize(10)
	gc.SetFillColor(color.RGBA{A: 0xff})
	h := float64(img.Bounds().Dy())
	w := float64(img.Bounds().Dx())
	gc.FillStringAt(text, 8, 16)
	gc.FillStringAt("x", w-14, h-8)
	gc.FillStringAt("y", 8, h-8)
	return nil
}

// Upscale resizes a preview by an integer factor.
func Upscale(img *image.RGBA, factor int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, img.Bounds().Dx()*factor, img.Bounds().Dy()*factor))
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, img.Bounds(), xdraw.Over, nil)
	return dst
}

// SavePNG writes an image to a PNG file.
func SavePNG(path string, img image.Image) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return png.Encode(file, img)
}

//-----------------------------------------------------------------------------
