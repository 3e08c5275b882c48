//-----------------------------------------------------------------------------
/*

Bit Set Tests

*/
//-----------------------------------------------------------------------------

package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

//-----------------------------------------------------------------------------

func TestBitSetMerge(t *testing.T) {
	assert.Equal(t, BitSet(0), BitSet(0).Merge(0))
	assert.Equal(t, BitSet(0b01), BitSet(0b01).Merge(0b00))
	assert.Equal(t, BitSet(0b10), BitSet(0b00).Merge(0b10))
	assert.Equal(t, BitSet(0b11), BitSet(0b01).Merge(0b10))
	assert.Equal(t, BitSet(0b11), BitSet(0b11).Merge(0b11))
}

func TestBitSetIntersect(t *testing.T) {
	assert.Equal(t, BitSet(0), BitSet(0b01).Intersect(0b10))
	assert.Equal(t, BitSet(0b11), BitSet(0b11).Intersect(0b11))
	assert.Equal(t, BitSet(0), BitSet(0).Intersect(0))
}

func TestBitSetBasics(t *testing.T) {
	var b BitSet
	assert.True(t, b.Empty())
	b.Set(3)
	b.Set(17)
	assert.False(t, b.Empty())
	assert.True(t, b.Get(3))
	assert.True(t, b.Get(17))
	assert.False(t, b.Get(4))
	assert.Equal(t, 2, b.Count())

	low, ok := b.Lowest()
	assert.True(t, ok)
	assert.Equal(t, 3, low)

	_, ok = BitSet(0).Lowest()
	assert.False(t, ok)

	assert.Equal(t, BitSet(0b1011), BitSetFrom(0, 1, 3))
}

func TestBitSetIterate(t *testing.T) {
	b := BitSet(0b0100_1010)
	var got []int
	for i, ok := b.Next(); ok; i, ok = b.Next() {
		got = append(got, i)
	}
	assert.Equal(t, []int{1, 3, 6}, got)
	assert.True(t, b.Empty())
}

//-----------------------------------------------------------------------------
