package varhuff

import (
	"bytes"
	"fmt"
	"io"

	"github.com/chronos-tachyon/assert"
)

// Encoder maps each Symbol of one Width to its Code.
type Encoder struct {
	width   Width
	codes   []Code
	minSize byte
	maxSize byte
}

// Init initializes this Encoder from a Dictionary of the given width.
func (e *Encoder) Init(width Width, dict Dictionary) {
	assert.Assertf(width.Valid(), "invalid symbol width %d", byte(width))

	codes := make([]Code, width.NumSymbols())
	var minSize, maxSize byte
	for i, entry := range dict {
		assert.Assertf(entry.Symbol >= 0 && int(entry.Symbol) < len(codes), "symbol %d out of range for width %d", entry.Symbol, byte(width))
		assert.Assertf(codes[entry.Symbol].Size == 0, "symbol %d listed twice", entry.Symbol)

		codes[entry.Symbol] = entry.Code
		size := entry.Code.Size
		if i == 0 {
			minSize, maxSize = size, size
		} else if minSize > size {
			minSize = size
		} else if maxSize < size {
			maxSize = size
		}
	}

	*e = Encoder{
		width:   width,
		codes:   codes,
		minSize: minSize,
		maxSize: maxSize,
	}
}

// Encode returns the Code for symbol.  The result has Size 0 if symbol is not
// in the code.
func (e Encoder) Encode(symbol Symbol) Code {
	return e.codes[symbol]
}

// Width returns the symbol width of the code's alphabet.
func (e Encoder) Width() Width {
	return e.width
}

// MinSize is the bit length of the shortest legal code.
func (e Encoder) MinSize() byte {
	return e.minSize
}

// MaxSize is the bit length of the longest legal code.
func (e Encoder) MaxSize() byte {
	return e.maxSize
}

// EncodeAll writes the Code of every width-bit symbol of data to bw.
func (e Encoder) EncodeAll(bw *BitWriter, data []byte) error {
	var err error
	splitSymbols(e.width, data, func(symbol Symbol) {
		if err != nil {
			return
		}
		hc := e.codes[symbol]
		assert.Assertf(hc.Size != 0, "symbol %d has no code", symbol)
		err = bw.WriteCode(hc)
	})
	return err
}

// Dump writes a programmer-readable debugging dump of the Encoder's current
// state to the given writer.
func (e Encoder) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("Encoder{\n")
	fmt.Fprintf(&buf, "\tWidth() = %d\n", byte(e.width))
	fmt.Fprintf(&buf, "\tMinSize() = %d\n", e.minSize)
	fmt.Fprintf(&buf, "\tMaxSize() = %d\n", e.maxSize)
	numSymbols := Symbol(len(e.codes))
	for symbol := Symbol(0); symbol < numSymbols; symbol++ {
		hc := e.codes[symbol]
		if hc.Size == 0 {
			fmt.Fprintf(&buf, "\tEncode(%d) = nil\n", symbol)
		} else {
			fmt.Fprintf(&buf, "\tEncode(%d) = %s\n", symbol, hc)
		}
	}
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}
