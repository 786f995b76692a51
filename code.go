package varhuff

import (
	"fmt"
	"strconv"
)

// MaxCodeSize is the longest code that fits in Code.Bits, and also the longest
// code the container format can carry.
const MaxCodeSize = 64

// Code represents a sequence of bits.
type Code struct {
	// Size holds the number of valid bits.
	Size byte

	// Bits holds the actual values of the bits, right-aligned.  The most
	// significant of the Size valid bits is the first bit.
	Bits uint64
}

// MakeCode is a convenience function that constructs a Code.
func MakeCode(size byte, bits uint64) Code {
	return Code{Size: size, Bits: bits}
}

// Append returns the Code extended by one trailing bit.
func (hc Code) Append(bit bool) Code {
	hc.Size++
	hc.Bits <<= 1
	if bit {
		hc.Bits |= 1
	}
	return hc
}

// Parent returns the Code with its last bit removed.
func (hc Code) Parent() Code {
	return Code{Size: hc.Size - 1, Bits: hc.Bits >> 1}
}

// Sibling returns the Code with its last bit flipped.
func (hc Code) Sibling() Code {
	return Code{Size: hc.Size, Bits: hc.Bits ^ 1}
}

// Valid returns true iff Bits holds no bits beyond Size.
func (hc Code) Valid() bool {
	if hc.Size > MaxCodeSize {
		return false
	}
	if hc.Size == MaxCodeSize {
		return true
	}
	return hc.Bits>>hc.Size == 0
}

// String returns the string representation of this Code.
func (hc Code) String() string {
	if hc.Size == 0 {
		return "\"\""
	}
	format := "%0" + strconv.FormatUint(uint64(hc.Size), 10) + "b"
	return strconv.Quote(fmt.Sprintf(format, hc.Bits))
}

var _ fmt.Stringer = Code{}
