package varhuff

import (
	"bytes"
	"fmt"
	"io"
)

// Entry pairs one Symbol with its Code.
type Entry struct {
	Code   Code
	Symbol Symbol
}

// Dictionary lists the Code assigned to each Symbol of a Huffman tree.  Order
// carries no meaning; decoding keys on Code alone.
type Dictionary []Entry

// MaxSize returns the bit length of the longest code, or 0 for an empty
// Dictionary.
func (dict Dictionary) MaxSize() byte {
	var maxSize byte
	for _, entry := range dict {
		maxSize = max(maxSize, entry.Code.Size)
	}
	return maxSize
}

// Dump writes a programmer-readable debugging dump of the Dictionary to the
// given writer, in stored order.
func (dict Dictionary) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("Dictionary{\n")
	for _, entry := range dict {
		fmt.Fprintf(&buf, "\t%s => %d\n", entry.Code, entry.Symbol)
	}
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}
