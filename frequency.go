package varhuff

import (
	"bytes"
	"fmt"
	"io"

	"github.com/chronos-tachyon/assert"
)

// FrequencyTable counts how often each Symbol of a given Width occurs.
type FrequencyTable struct {
	width    Width
	counts   []uint64
	distinct int
	total    uint64
}

// Observe scans data once and counts its width-bit symbols.  A final group of
// fewer than width bits is zero-padded and counted as one more occurrence.
func Observe(width Width, data []byte) FrequencyTable {
	ft := FrequencyTable{
		width:  width,
		counts: make([]uint64, width.NumSymbols()),
	}
	splitSymbols(width, data, func(symbol Symbol) {
		if ft.counts[symbol] == 0 {
			ft.distinct++
		}
		ft.counts[symbol]++
		ft.total++
	})
	return ft
}

// NewFrequencyTable builds a FrequencyTable from explicit counts.  counts[i]
// is the number of occurrences of Symbol(i); any Symbol past the end of counts
// has a count of 0.
func NewFrequencyTable(width Width, counts []uint64) FrequencyTable {
	assert.Assertf(width.Valid(), "invalid symbol width %d", byte(width))
	assert.Assertf(len(counts) <= width.NumSymbols(), "%d counts for a %d-symbol alphabet", len(counts), width.NumSymbols())

	ft := FrequencyTable{
		width:  width,
		counts: make([]uint64, width.NumSymbols()),
	}
	for symbol, count := range counts {
		if count == 0 {
			continue
		}
		ft.counts[symbol] = count
		ft.distinct++
		ft.total += count
	}
	return ft
}

// Width returns the symbol width this table was built for.
func (ft FrequencyTable) Width() Width {
	return ft.width
}

// Count returns the number of occurrences of symbol.
func (ft FrequencyTable) Count(symbol Symbol) uint64 {
	if symbol < 0 || int(symbol) >= len(ft.counts) {
		return 0
	}
	return ft.counts[symbol]
}

// Distinct returns the number of symbols with a non-zero count.
func (ft FrequencyTable) Distinct() int {
	return ft.distinct
}

// Total returns the sum of all counts.
func (ft FrequencyTable) Total() uint64 {
	return ft.total
}

// Symbols returns every symbol with a non-zero count, in ascending order.
func (ft FrequencyTable) Symbols() []Symbol {
	out := make([]Symbol, 0, ft.distinct)
	for symbol, count := range ft.counts {
		if count != 0 {
			out = append(out, Symbol(symbol))
		}
	}
	return out
}

// Dump writes a programmer-readable debugging dump of the FrequencyTable to
// the given writer.
func (ft FrequencyTable) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("FrequencyTable{\n")
	fmt.Fprintf(&buf, "\tWidth() = %d\n", byte(ft.width))
	fmt.Fprintf(&buf, "\tDistinct() = %d\n", ft.distinct)
	fmt.Fprintf(&buf, "\tTotal() = %d\n", ft.total)
	for _, symbol := range ft.Symbols() {
		fmt.Fprintf(&buf, "\tCount(%d) = %d\n", symbol, ft.counts[symbol])
	}
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}
