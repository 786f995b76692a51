package varhuff

import (
	"bytes"
	"errors"
	"math/rand"
	"strings"
	"testing"
)

func testInputs() map[string][]byte {
	rng := rand.New(rand.NewSource(4))
	random := make([]byte, 4096)
	rng.Read(random)

	skewed := make([]byte, 2048)
	for i := range skewed {
		skewed[i] = "aaaaaaaabbbbccd\n"[rng.Intn(16)]
	}

	all := make([]byte, 256)
	for i := range all {
		all[i] = byte(i)
	}

	return map[string][]byte{
		"empty":        nil,
		"single byte":  {0x42},
		"zero ff zero": {0x00, 0xff, 0x00},
		"repeated aa":  bytes.Repeat([]byte{0xaa}, 500),
		"repeated 00":  bytes.Repeat([]byte{0x00}, 33),
		"all bytes":    all,
		"text":         []byte(strings.Repeat("a man a plan a canal panama ", 20)),
		"skewed":       skewed,
		"random":       random,
	}
}

func TestRoundTrip(t *testing.T) {
	for name, data := range testInputs() {
		t.Run(name, func(t *testing.T) {
			container := CompressBytes(data)
			out, err := DecompressBytes(container)
			if err != nil {
				t.Fatalf("DecompressBytes failed: %v", err)
			}
			if !bytes.Equal(data, out) {
				t.Errorf("round trip mismatch:\n\texpect: %#v\n\tactual: %#v", data, out)
			}
		})
	}
}

func TestRoundTrip_EveryWidth(t *testing.T) {
	for name, data := range testInputs() {
		for width := MinWidth; width <= MaxWidth; width++ {
			c, err := New(WithWidths(width))
			if err != nil {
				t.Fatalf("New failed: %v", err)
			}
			container := c.CompressBytes(data)
			if Width(container[0]) != width {
				t.Errorf("%s/%s: container says width %d", name, width, container[0])
			}
			out, err := DecompressBytes(container)
			if err != nil {
				t.Fatalf("%s/%s: DecompressBytes failed: %v", name, width, err)
			}
			if !bytes.Equal(data, out) {
				t.Errorf("%s/%s: round trip mismatch", name, width)
			}
		}
	}
}

func TestCompress_Optimal(t *testing.T) {
	c, err := New()
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	for name, data := range testInputs() {
		t.Run(name, func(t *testing.T) {
			candidates := c.Analyze(data)
			if len(candidates) != len(DefaultWidths) {
				t.Fatalf("expected %d candidates, got %d", len(DefaultWidths), len(candidates))
			}
			best := c.Best(data)
			for i, candidate := range candidates {
				if candidate.Width != DefaultWidths[i] {
					t.Errorf("candidate %d has width %d", i, candidate.Width)
				}
				if best.EstimatedSize > candidate.EstimatedSize {
					t.Errorf("best %s estimate %d exceeds %s estimate %d", best.Width, best.EstimatedSize, candidate.Width, candidate.EstimatedSize)
				}
			}

			container := c.CompressBytes(data)
			if uint64(len(container)) != best.EstimatedSize {
				t.Errorf("estimated %d bytes, wrote %d", best.EstimatedSize, len(container))
			}
			if Width(container[0]) != best.Width {
				t.Errorf("expected width %d, container says %d", best.Width, container[0])
			}
		})
	}
}

func TestCompress_SingleSymbol(t *testing.T) {
	data := bytes.Repeat([]byte{0xaa}, 500)
	container := CompressBytes(data)

	if container[0] != 8 {
		t.Errorf("expected width 8, got %d", container[0])
	}
	if len(container) != 100 {
		t.Errorf("expected 100 bytes, got %d", len(container))
	}

	out, err := DecompressBytes(container)
	if err != nil {
		t.Fatalf("DecompressBytes failed: %v", err)
	}
	if !bytes.Equal(data, out) {
		t.Errorf("round trip mismatch")
	}
}

func TestCompress_ZeroFFZero(t *testing.T) {
	data := []byte{0x00, 0xff, 0x00}
	out, err := DecompressBytes(CompressBytes(data))
	if err != nil {
		t.Fatalf("DecompressBytes failed: %v", err)
	}
	if !bytes.Equal(data, out) {
		t.Errorf("wrong output:\n\texpect: %#v\n\tactual: %#v", data, out)
	}
}

func TestCompress_Parallel(t *testing.T) {
	serial, err := New()
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	parallel, err := New(WithParallel(true))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	for name, data := range testInputs() {
		if !bytes.Equal(serial.CompressBytes(data), parallel.CompressBytes(data)) {
			t.Errorf("%s: parallel output differs from serial output", name)
		}
	}
}

func TestCompress_Streams(t *testing.T) {
	data := []byte(strings.Repeat("stream me ", 100))

	var container bytes.Buffer
	n, err := Compress(&container, bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Compress failed: %v", err)
	}
	if n != int64(container.Len()) {
		t.Errorf("Compress reported %d bytes, wrote %d", n, container.Len())
	}

	var out bytes.Buffer
	n, err = Decompress(&out, &container)
	if err != nil {
		t.Fatalf("Decompress failed: %v", err)
	}
	if n != int64(len(data)) {
		t.Errorf("Decompress reported %d bytes, expected %d", n, len(data))
	}
	if !bytes.Equal(data, out.Bytes()) {
		t.Errorf("round trip mismatch")
	}
}

func TestNew_InvalidWidths(t *testing.T) {
	type testRow struct {
		name string
		opts []Option
	}

	testData := [...]testRow{
		{name: "zero", opts: []Option{WithWidths(0)}},
		{name: "nine", opts: []Option{WithWidths(2, 9)}},
		{name: "none", opts: []Option{WithWidths()}},
	}
	for _, row := range testData {
		t.Run(row.name, func(t *testing.T) {
			_, err := New(row.opts...)
			if !errors.Is(err, ErrInvalidWidth) {
				t.Errorf("expected ErrInvalidWidth, got %v", err)
			}
		})
	}
}

func TestCompress_TieBreak(t *testing.T) {
	c, err := New(WithWidths(8, 4, 2))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if best := c.Best([]byte{0xff}); best.Width != 8 {
		t.Errorf("expected the first of the tied widths (8), got %d", best.Width)
	}
}
