package varhuff

import (
	"io"
	mathbits "math/bits"
)

func log2uint32(x uint32) uint32 {
	if x == 0 {
		x = 1
	}
	return uint32(32 - mathbits.LeadingZeros32(x))
}

func ceilDiv(x, y uint64) uint64 {
	return (x + y - 1) / y
}

// countingWriter counts the bytes that pass through it.
type countingWriter struct {
	w io.Writer
	n int64
}

func (cw *countingWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.n += int64(n)
	return n, err
}

var _ io.Writer = (*countingWriter)(nil)
