//-----------------------------------------------------------------------------
/*

Bit Sets

32-bit masks used to classify cube corners and edges.

*/
//-----------------------------------------------------------------------------

package render

import "math/bits"

//-----------------------------------------------------------------------------

// BitSet is a set over the integers 0..31.
type BitSet uint32

// BitSetFrom returns a set containing the given bit indices.
func BitSetFrom(indices ...int) BitSet {
	var b BitSet
	for _, i := range indices {
		b.Set(i)
	}
	return b
}

// Set adds the given bit index to the set.
func (b *BitSet) Set(index int) {
	*b |= 1 << uint(index)
}

// Merge returns the union of two sets.
func (b BitSet) Merge(other BitSet) BitSet {
	return b | other
}

// Intersect returns the intersection of two sets.
func (b BitSet) Intersect(other BitSet) BitSet {
	return b & other
}

// Get reports whether the given bit index is in the set.
func (b BitSet) Get(index int) bool {
	return b&(1<<uint(index)) != 0
}

// Empty reports whether the set is empty.
func (b BitSet) Empty() bool {
	return b == 0
}

// Count returns the number of bits in the set.
func (b BitSet) Count() int {
	return bits.OnesCount32(uint32(b))
}

// Lowest returns the lowest bit index in the set.
func (b BitSet) Lowest() (int, bool) {
	if b == 0 {
		return 0, false
	}
	return bits.TrailingZeros32(uint32(b)), true
}

// Next removes and returns the lowest bit index in the set. It is the set
// iterator, yielding indices from low to high:
//
//	for i, ok := b.Next(); ok; i, ok = b.Next() { ... }
func (b *BitSet) Next() (int, bool) {
	if *b == 0 {
		return 0, false
	}
	i := bits.TrailingZeros32(uint32(*b))
	*b &= *b - 1
	return i, true
}

//-----------------------------------------------------------------------------
