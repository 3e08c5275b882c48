//-----------------------------------------------------------------------------
/*

Shared Test Helpers

*/
//-----------------------------------------------------------------------------

package sdf

import (
	"testing"

	"github.com/stretchr/testify/require"
)

//-----------------------------------------------------------------------------

// testCube builds an origin-centered cube of the given side from three
// slabs.
func testCube(t *testing.T, side float64) SDF3 {
	t.Helper()
	sx, err := SlabX3D(side)
	require.NoError(t, err)
	sy, err := SlabY3D(side)
	require.NoError(t, err)
	sz, err := SlabZ3D(side)
	require.NoError(t, err)
	cube, err := Intersect3D(0, sx, sy, sz)
	require.NoError(t, err)
	return cube
}

//-----------------------------------------------------------------------------
