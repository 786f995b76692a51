package varhuff

import (
	"bytes"
	"fmt"
	"io"
	"sync"
)

// Config holds configuration for a Compressor.
type Config struct {
	Widths   []Width // Candidate symbol widths, in evaluation order (nil = DefaultWidths)
	Parallel bool    // Evaluate candidate widths concurrently
}

// Option is a functional option for configuring a Compressor.
type Option func(*Config)

// WithWidths sets the candidate symbol widths.  Earlier widths win ties.
func WithWidths(widths ...Width) Option {
	return func(c *Config) {
		c.Widths = append([]Width(nil), widths...)
	}
}

// WithParallel evaluates the candidate widths on separate goroutines.  The
// chosen width is the same either way.
func WithParallel(parallel bool) Option {
	return func(c *Config) {
		c.Parallel = parallel
	}
}

// Compressor picks the best symbol width for each input and writes the
// resulting container.  A Compressor holds no per-call state and is safe for
// concurrent use.
type Compressor struct {
	cfg Config
}

// New returns a Compressor configured by opts.
func New(opts ...Option) (*Compressor, error) {
	var cfg Config
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Widths == nil {
		cfg.Widths = DefaultWidths
	}
	if len(cfg.Widths) == 0 {
		return nil, fmt.Errorf("%w: no candidate widths", ErrInvalidWidth)
	}
	for _, w := range cfg.Widths {
		if !w.Valid() {
			return nil, fmt.Errorf("%w: %d", ErrInvalidWidth, byte(w))
		}
	}
	return &Compressor{cfg: cfg}, nil
}

var defaultCompressor = &Compressor{cfg: Config{Widths: DefaultWidths}}

// Candidate is the outcome of analyzing an input at one symbol width.
type Candidate struct {
	Width         Width
	Frequencies   FrequencyTable
	Tree          *Tree
	EstimatedSize uint64
}

func analyze(width Width, data []byte) Candidate {
	ft := Observe(width, data)
	tree := BuildTree(ft)
	return Candidate{
		Width:         width,
		Frequencies:   ft,
		Tree:          tree,
		EstimatedSize: tree.EstimatedSize(),
	}
}

// Analyze evaluates data at every candidate width and returns the results in
// candidate order.
func (c *Compressor) Analyze(data []byte) []Candidate {
	out := make([]Candidate, len(c.cfg.Widths))
	if !c.cfg.Parallel {
		for i, width := range c.cfg.Widths {
			out[i] = analyze(width, data)
		}
		return out
	}

	var wg sync.WaitGroup
	wg.Add(len(c.cfg.Widths))
	for i, width := range c.cfg.Widths {
		go func(i int, width Width) {
			defer wg.Done()
			out[i] = analyze(width, data)
		}(i, width)
	}
	wg.Wait()
	return out
}

// Best returns the candidate with the smallest estimated size.  Ties go to the
// earliest candidate.
func (c *Compressor) Best(data []byte) Candidate {
	return BestOf(c.Analyze(data))
}

// BestOf returns the candidate with the smallest estimated size, preferring
// the earliest on ties.  candidates must not be empty.
func BestOf(candidates []Candidate) Candidate {
	best := candidates[0]
	for _, candidate := range candidates[1:] {
		if candidate.EstimatedSize < best.EstimatedSize {
			best = candidate
		}
	}
	return best
}

// Compress reads all of src, then writes its container to dst.  It returns
// the number of bytes written.
func (c *Compressor) Compress(dst io.Writer, src io.Reader) (int64, error) {
	data, err := io.ReadAll(src)
	if err != nil {
		return 0, err
	}
	return WriteContainer(dst, c.Best(data).Tree, data)
}

// CompressBytes returns the container for data.
func (c *Compressor) CompressBytes(data []byte) []byte {
	best := c.Best(data)
	var buf bytes.Buffer
	buf.Grow(int(best.EstimatedSize))
	_, err := WriteContainer(&buf, best.Tree, data)
	if err != nil {
		// bytes.Buffer writes only fail by panicking.
		panic(err)
	}
	return buf.Bytes()
}

// Compress is shorthand for compressing with the default candidate widths.
func Compress(dst io.Writer, src io.Reader) (int64, error) {
	return defaultCompressor.Compress(dst, src)
}

// CompressBytes is shorthand for compressing data with the default candidate
// widths.
func CompressBytes(data []byte) []byte {
	return defaultCompressor.CompressBytes(data)
}

// Decompress decodes the container read from src and writes the original
// bytes to dst.  It returns the number of bytes written.
func Decompress(dst io.Writer, src io.Reader) (int64, error) {
	return ReadContainer(dst, src)
}

// DecompressBytes decodes a container held in memory.
func DecompressBytes(container []byte) ([]byte, error) {
	var buf bytes.Buffer
	_, err := ReadContainer(&buf, bytes.NewReader(container))
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
