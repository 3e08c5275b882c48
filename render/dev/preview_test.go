//-----------------------------------------------------------------------------
/*

Slice Preview Tests

*/
//-----------------------------------------------------------------------------

package dev

import (
	"image/color"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/truescad/truescad/sdf"
)

//-----------------------------------------------------------------------------

func TestPreviewSphere(t *testing.T) {
	s, err := sdf.Sphere3D(1)
	require.NoError(t, err)

	pv := NewPreview(s)
	pv.Pixels = 64
	img, err := pv.Render()
	require.NoError(t, err)
	assert.Equal(t, 64, img.Bounds().Dx())

	// The center pixel is inside the sphere, a corner pixel is not.
	inside := color.RGBA{R: 0x60, G: 0x70, B: 0x90, A: 0xff}
	assert.Equal(t, inside, img.RGBAAt(32, 32))
	assert.NotEqual(t, inside, img.RGBAAt(1, 1))

	big := Upscale(img, 2)
	assert.Equal(t, 128, big.Bounds().Dx())

	path := filepath.Join(t.TempDir(), "preview.png")
	require.NoError(t, SavePNG(path, big))
}

func TestPreviewErrors(t *testing.T) {
	_, err := NewPreview(nil).Render()
	assert.Error(t, err)

	slab, err := sdf.SlabX3D(1)
	require.NoError(t, err)
	_, err = NewPreview(slab).Render()
	assert.Error(t, err)
}

//-----------------------------------------------------------------------------
