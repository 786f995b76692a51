package varhuff

import (
	"bytes"
	"fmt"
	"io"
	"sort"
)

// Decoder maps Codes back to Symbols.  Besides the complete codes it also
// records every proper prefix of them, so that a bit sequence which cannot
// lead to any code is recognized on the first bad bit.
type Decoder struct {
	width   Width
	table   map[Code]decoderData
	minSize byte
	maxSize byte
}

// Init initializes this Decoder from a Dictionary of the given width.
//
// The Dictionary must be prefix-free: Init rejects duplicate codes, and codes
// which are a prefix of another code.  An empty Dictionary is permitted; it
// decodes nothing.
//
func (d *Decoder) Init(width Width, dict Dictionary) error {
	if !width.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidWidth, byte(width))
	}

	numEntries := uint32(len(dict))
	*d = Decoder{
		width: width,
		table: make(map[Code]decoderData, numEntries*log2uint32(numEntries)),
	}

	for i, entry := range dict {
		hc := entry.Code
		if hc.Size == 0 || !hc.Valid() {
			return fmt.Errorf("invalid code %s while constructing Huffman decoder", hc)
		}
		if entry.Symbol < 0 || int(entry.Symbol) >= width.NumSymbols() {
			return fmt.Errorf("symbol %d out of range for width %d", entry.Symbol, byte(width))
		}
		if err := fillTable(d.table, entry.Symbol, hc); err != nil {
			return err
		}
		if i == 0 {
			d.minSize, d.maxSize = hc.Size, hc.Size
		} else if d.minSize > hc.Size {
			d.minSize = hc.Size
		} else if d.maxSize < hc.Size {
			d.maxSize = hc.Size
		}
	}
	return nil
}

// Decode attempts to decode a Huffman code into a Symbol.
//
// If the Decode is completely successful, symbol >= 0 and minSize == maxSize.
//
// If the Decode fails due to insufficient bits, symbol == InvalidSymbol and at
// least (minSize - hc.Size) additional bits are required to decode this
// symbol.  No more than (maxSize - hc.Size) additional bits will be required.
//
// If the Decode fails due to unreasonable input, symbol == InvalidSymbol and
// minSize == maxSize == 0.
//
func (d Decoder) Decode(hc Code) (symbol Symbol, minSize byte, maxSize byte) {
	dd, found := d.table[hc]
	if !found {
		return InvalidSymbol, 0, 0
	}
	return dd.symbol, dd.minSize, dd.maxSize
}

// Width returns the symbol width of the code's alphabet.
func (d Decoder) Width() Width {
	return d.width
}

// MinSize is the bit length of the shortest legal code.
func (d Decoder) MinSize() byte {
	return d.minSize
}

// MaxSize is the bit length of the longest legal code.
func (d Decoder) MaxSize() byte {
	return d.maxSize
}

// DecodeAll reads codes from br and writes the decoded symbols, width bits
// each, to bw until exactly n bytes have been produced.
func (d Decoder) DecodeAll(bw *BitWriter, br *BitReader, n uint64) error {
	totalBits := n * 8
	if totalBits == 0 {
		return nil
	}
	if len(d.table) == 0 {
		return fmt.Errorf("%w: empty dictionary for %d bytes of output", ErrMalformedContainer, n)
	}

	var hc Code
	for {
		bit, err := br.ReadBit()
		if err == io.EOF {
			return fmt.Errorf("%w: payload ends after %d bits with %d of %d bytes decoded", ErrMalformedContainer, br.Len(), bw.Len()/8, n)
		}
		if err != nil {
			return err
		}

		hc = hc.Append(bit)
		symbol, minSize, _ := d.Decode(hc)
		if minSize == 0 || hc.Size > d.maxSize {
			return fmt.Errorf("%w: %s at payload bit %d", ErrUnknownCode, hc, br.Len())
		}
		if symbol == InvalidSymbol {
			continue
		}

		for i := int(d.width) - 1; i >= 0; i-- {
			if err := bw.WriteBit((symbol>>i)&1 != 0); err != nil {
				return err
			}
			if bw.Len() == totalBits {
				return nil
			}
		}
		hc = Code{}
	}
}

// Dump writes a programmer-readable debugging dump of the Decoder's current
// state to the given writer.
func (d Decoder) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("Decoder{\n")
	fmt.Fprintf(&buf, "\tWidth() = %d\n", byte(d.width))
	fmt.Fprintf(&buf, "\tMinSize() = %d\n", d.minSize)
	fmt.Fprintf(&buf, "\tMaxSize() = %d\n", d.maxSize)
	keys := make(byCode, 0, len(d.table))
	for hc := range d.table {
		keys = append(keys, hc)
	}
	keys.Sort()
	for _, hc := range keys {
		dd := d.table[hc]
		fmt.Fprintf(&buf, "\tDecode(%s) = {%d, %d, %d}\n", hc, dd.symbol, dd.minSize, dd.maxSize)
	}
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}

type decoderData struct {
	symbol  Symbol
	minSize byte
	maxSize byte
}

func fillTable(table map[Code]decoderData, symbol Symbol, hc Code) error {
	if old, found := table[hc]; found {
		if old.symbol == InvalidSymbol {
			return fmt.Errorf("code %s is a prefix of another code", hc)
		}
		return fmt.Errorf("code %s assigned to both %d and %d", hc, old.symbol, symbol)
	}

	dd := decoderData{symbol, hc.Size, hc.Size}
	table[hc] = dd

	for hc.Size != 0 {
		// Merge the dd's from "xxx...a" (dd) and "xxx...A" (ddSibling)
		// into ddNew (the new parent for dd and ddSibling).

		ddNew := decoderData{InvalidSymbol, dd.minSize, dd.maxSize}
		if ddSibling, found := table[hc.Sibling()]; found {
			if ddNew.minSize > ddSibling.minSize {
				ddNew.minSize = ddSibling.minSize
			}
			if ddNew.maxSize < ddSibling.maxSize {
				ddNew.maxSize = ddSibling.maxSize
			}
		}

		// Mutate hc from "xxx...a" to "xxx...".

		hc = hc.Parent()

		ddOld, found := table[hc]
		if found && ddOld.symbol != InvalidSymbol {
			return fmt.Errorf("code %s is a prefix of another code", hc)
		}

		// If table[hc] already equals ddNew, we can stop recursing.

		if found && ddOld == ddNew {
			break
		}

		// Update table[hc] with ddNew and continue recursing.

		table[hc] = ddNew
		dd = ddNew
	}
	return nil
}

// type byCode {{{

type byCode []Code

func (list byCode) Sort() {
	sort.Sort(list)
}

func (list byCode) Len() int {
	return len(list)
}

func (list byCode) Swap(i, j int) {
	list[i], list[j] = list[j], list[i]
}

func (list byCode) Less(i, j int) bool {
	a, b := list[i], list[j]
	as, ab := a.Size, a.Bits
	bs, bb := b.Size, b.Bits
	if as != bs {
		return as < bs
	}
	return ab < bb
}

var _ sort.Interface = byCode(nil)

// }}}
