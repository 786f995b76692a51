package varhuff

import (
	"bytes"
	"fmt"

	"github.com/chronos-tachyon/assert"
	"github.com/icza/bitio"
)

// Symbol represents one fixed-width group of input bits.  Negative symbols are
// not valid.
type Symbol int32

// MaxSymbol is the largest symbol representable at MaxWidth.
const MaxSymbol = Symbol(1<<MaxWidth - 1)

// InvalidSymbol is returned by some functions to clearly indicate that no
// symbol is being returned.
const InvalidSymbol = Symbol(-1)

// Width is the number of input bits grouped into one Symbol.
type Width byte

const (
	// MinWidth is the narrowest supported symbol width.
	MinWidth Width = 1

	// MaxWidth is the widest supported symbol width.
	MaxWidth Width = 8
)

// DefaultWidths lists the candidate widths tried by a default Compressor, in
// the order they are evaluated.  Width 1 is left out: Huffman coding single
// bits cannot beat the raw input.
var DefaultWidths = []Width{2, 3, 4, 5, 6, 7, 8}

// Valid returns true iff w is in the range [MinWidth, MaxWidth].
func (w Width) Valid() bool {
	return w >= MinWidth && w <= MaxWidth
}

// NumSymbols returns the size of the alphabet at this width.
func (w Width) NumSymbols() int {
	return 1 << w
}

// String returns the string representation of this Width.
func (w Width) String() string {
	return fmt.Sprintf("%d-bit", byte(w))
}

var _ fmt.Stringer = Width(0)

// splitSymbols tiles data into width-bit groups, MSB-first, and calls fn for
// each one.  A trailing group of fewer than width bits is zero-padded on its
// low-order end and still reported.
func splitSymbols(width Width, data []byte, fn func(Symbol)) {
	assert.Assertf(width.Valid(), "invalid symbol width %d", byte(width))

	totalBits := uint64(len(data)) * 8
	fullGroups := totalBits / uint64(width)
	remainder := uint8(totalBits % uint64(width))

	r := bitio.NewReader(bytes.NewReader(data))
	for i := uint64(0); i < fullGroups; i++ {
		u, err := r.ReadBits(uint8(width))
		assert.Assertf(err == nil, "in-memory bit read failed: %v", err)
		fn(Symbol(u))
	}
	if remainder != 0 {
		u, err := r.ReadBits(remainder)
		assert.Assertf(err == nil, "in-memory bit read failed: %v", err)
		fn(Symbol(u << (uint8(width) - remainder)))
	}
}
