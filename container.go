package varhuff

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// Header is the fixed-size prefix of a container.
type Header struct {
	// Width is the symbol width the payload was coded at.
	Width Width

	// Length is the original, uncompressed byte count.
	Length uint64

	// Entries is the number of dictionary entries that follow the header.
	Entries uint64
}

// AppendTo appends the serialized header to buf.
func (h Header) AppendTo(buf []byte) []byte {
	buf = append(buf, byte(h.Width))
	buf = binary.BigEndian.AppendUint64(buf, h.Length)
	buf = binary.BigEndian.AppendUint64(buf, h.Entries)
	return buf
}

func appendEntry(buf []byte, entry Entry) []byte {
	buf = binary.BigEndian.AppendUint32(buf, uint32(entry.Code.Size))
	buf = binary.BigEndian.AppendUint64(buf, entry.Code.Bits)
	buf = binary.BigEndian.AppendUint64(buf, uint64(entry.Symbol))
	return buf
}

// WriteContainer writes the container for data, coded with tree, to w.  The
// tree must have been built from Observe(tree.Width(), data).
func WriteContainer(w io.Writer, tree *Tree, data []byte) (int64, error) {
	cw := &countingWriter{w: w}
	dict := tree.Dictionary()

	header := Header{
		Width:   tree.Width(),
		Length:  uint64(len(data)),
		Entries: uint64(len(dict)),
	}
	buf := make([]byte, 0, HeaderSize+EntrySize*len(dict))
	buf = header.AppendTo(buf)
	for _, entry := range dict {
		buf = appendEntry(buf, entry)
	}
	if _, err := cw.Write(buf); err != nil {
		return cw.n, err
	}

	var e Encoder
	e.Init(tree.Width(), dict)
	bw := NewBitWriter(cw)
	if err := e.EncodeAll(bw, data); err != nil {
		return cw.n, err
	}
	err := bw.Flush()
	return cw.n, err
}

// ReadContainer decodes one container from r and writes the original bytes to
// w.  Bytes of r past the end of the payload may or may not be consumed.
func ReadContainer(w io.Writer, r io.Reader) (int64, error) {
	br := bufio.NewReader(r)
	header, dict, err := readPreamble(br)
	if err != nil {
		return 0, err
	}

	var d Decoder
	if err := d.Init(header.Width, dict); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrMalformedContainer, err)
	}

	cw := &countingWriter{w: w}
	bw := NewBitWriter(cw)
	if err := d.DecodeAll(bw, NewBitReader(br), header.Length); err != nil {
		return cw.n, err
	}
	err = bw.Flush()
	return cw.n, err
}

// Inspect reads only the header and dictionary of a container.
func Inspect(r io.Reader) (Header, Dictionary, error) {
	return readPreamble(bufio.NewReader(r))
}

func readPreamble(r io.Reader) (Header, Dictionary, error) {
	var raw [HeaderSize]byte
	if err := readFull(r, raw[:], "header"); err != nil {
		return Header{}, nil, err
	}

	header := Header{
		Width:   Width(raw[0]),
		Length:  binary.BigEndian.Uint64(raw[1:9]),
		Entries: binary.BigEndian.Uint64(raw[9:17]),
	}
	if !header.Width.Valid() {
		return header, nil, fmt.Errorf("%w: %v: %d", ErrMalformedContainer, ErrInvalidWidth, raw[0])
	}
	if header.Length > math.MaxUint64/8 {
		return header, nil, fmt.Errorf("%w: original length %d overflows the bit count", ErrMalformedContainer, header.Length)
	}
	if header.Entries > uint64(header.Width.NumSymbols()) {
		return header, nil, fmt.Errorf("%w: %d dictionary entries for a %d-symbol alphabet", ErrMalformedContainer, header.Entries, header.Width.NumSymbols())
	}

	dict := make(Dictionary, 0, header.Entries)
	for i := uint64(0); i < header.Entries; i++ {
		var rawEntry [EntrySize]byte
		if err := readFull(r, rawEntry[:], "dictionary"); err != nil {
			return header, nil, err
		}

		size := binary.BigEndian.Uint32(rawEntry[0:4])
		bits := binary.BigEndian.Uint64(rawEntry[4:12])
		symbol := binary.BigEndian.Uint64(rawEntry[12:20])
		if size > MaxCodeSize {
			return header, nil, fmt.Errorf("%w: entry %d: code length %d exceeds %d", ErrMalformedContainer, i, size, MaxCodeSize)
		}
		if symbol > math.MaxInt32 {
			return header, nil, fmt.Errorf("%w: entry %d: symbol %d out of range", ErrMalformedContainer, i, symbol)
		}
		dict = append(dict, Entry{Code: MakeCode(byte(size), bits), Symbol: Symbol(symbol)})
	}
	return header, dict, nil
}

func readFull(r io.Reader, p []byte, what string) error {
	_, err := io.ReadFull(r, p)
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return fmt.Errorf("%w: truncated %s", ErrMalformedContainer, what)
	}
	return err
}
