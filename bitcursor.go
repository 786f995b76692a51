package varhuff

import (
	"io"

	"github.com/chronos-tachyon/assert"
	"github.com/icza/bitio"
)

// BitWriter packs individual bits, MSB-first, into the bytes of an
// io.Writer.  Whole bytes are handed on as they fill; Flush pads the last
// partial byte with zero bits.
type BitWriter struct {
	w       *bitio.Writer
	n       uint64
	flushed bool
}

// NewBitWriter returns a BitWriter that writes to w.
func NewBitWriter(w io.Writer) *BitWriter {
	return &BitWriter{w: bitio.NewWriter(w)}
}

// WriteBit appends one bit.
func (bw *BitWriter) WriteBit(bit bool) error {
	assert.Assertf(!bw.flushed, "BitWriter.WriteBit called after Flush")
	bw.n++
	return bw.w.WriteBool(bit)
}

// WriteCode appends every bit of hc, first bit first.
func (bw *BitWriter) WriteCode(hc Code) error {
	assert.Assertf(!bw.flushed, "BitWriter.WriteCode called after Flush")
	assert.Assertf(hc.Valid(), "invalid code %#v", hc)
	if hc.Size == 0 {
		return nil
	}
	bw.n += uint64(hc.Size)
	return bw.w.WriteBits(hc.Bits, hc.Size)
}

// Len returns the number of bits written so far, not counting padding.
func (bw *BitWriter) Len() uint64 {
	return bw.n
}

// Flush writes out the final partial byte, if any, zero-padded on the low
// end.  It must be called exactly once, after the last bit.
func (bw *BitWriter) Flush() error {
	assert.Assertf(!bw.flushed, "BitWriter.Flush called twice")
	bw.flushed = true
	return bw.w.Close()
}

// BitReader yields the bits of an io.Reader one at a time, MSB-first within
// each byte.  It makes a single forward pass over its source.
type BitReader struct {
	r *bitio.Reader
	n uint64
}

// NewBitReader returns a BitReader that reads from r.
func NewBitReader(r io.Reader) *BitReader {
	return &BitReader{r: bitio.NewReader(r)}
}

// ReadBit returns the next bit.  Once the source is exhausted it returns
// io.EOF.
func (br *BitReader) ReadBit() (bool, error) {
	bit, err := br.r.ReadBool()
	if err != nil {
		return false, err
	}
	br.n++
	return bit, nil
}

// Len returns the number of bits read so far.
func (br *BitReader) Len() uint64 {
	return br.n
}
