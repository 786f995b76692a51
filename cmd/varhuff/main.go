// Command varhuff compresses and decompresses files with the varhuff
// container format.
//
// Usage:
//
//     varhuff [-d] [-o out] [-p] [-stats] [-verify] [-widths 2,3,...] [-parallel] [in]
//
// With no input file, varhuff reads stdin.  With no -o, it writes stdout.
package main

import (
	"bufio"
	"bytes"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"

	"github.com/chronos-tachyon/varhuff"
)

var (
	flagDecompress = flag.Bool("d", false, "decompress instead of compress")
	flagOutput     = flag.String("o", "", "write output to `file` instead of stdout")
	flagPrint      = flag.Bool("p", false, "dump the dictionary to stderr")
	flagStats      = flag.Bool("stats", false, "log the estimated size of every candidate width")
	flagVerify     = flag.Bool("verify", false, "decompress the result in memory and compare digests")
	flagWidths     = flag.String("widths", "", "comma-separated candidate symbol `widths` (default 2..8)")
	flagParallel   = flag.Bool("parallel", false, "evaluate candidate widths concurrently")
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("varhuff: ")
	flag.Parse()

	if flag.NArg() > 1 {
		log.Fatalf("expected at most 1 input file, got %d", flag.NArg())
	}

	fin := os.Stdin
	if name := flag.Arg(0); name != "" && name != "-" {
		f, err := os.Open(name)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		fin = f
	}

	fout := os.Stdout
	if *flagOutput != "" {
		f, err := os.Create(*flagOutput)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		fout = f
	}
	w := bufio.NewWriter(fout)

	var err error
	if *flagDecompress {
		err = decompress(w, bufio.NewReader(fin))
	} else {
		err = compress(w, fin)
	}
	if err != nil {
		log.Fatal(err)
	}
	if err := w.Flush(); err != nil {
		log.Fatal(err)
	}
}

func compress(w io.Writer, r io.Reader) error {
	opts, err := parseOptions(*flagWidths, *flagParallel)
	if err != nil {
		return err
	}
	c, err := varhuff.New(opts...)
	if err != nil {
		return err
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}

	candidates := c.Analyze(data)
	if *flagStats {
		for _, candidate := range candidates {
			log.Printf("%s: %d distinct symbols, %d bytes", candidate.Width, candidate.Tree.NumLeaves(), candidate.EstimatedSize)
		}
	}

	best := varhuff.BestOf(candidates)
	if *flagStats {
		log.Printf("chose %s: %d -> %d bytes", best.Width, len(data), best.EstimatedSize)
	}
	if *flagPrint {
		if _, err := best.Tree.Dictionary().Dump(os.Stderr); err != nil {
			return err
		}
	}

	var container bytes.Buffer
	if _, err := varhuff.WriteContainer(&container, best.Tree, data); err != nil {
		return err
	}
	if *flagVerify {
		if err := verify(data, container.Bytes()); err != nil {
			return err
		}
	}
	_, err = container.WriteTo(w)
	return err
}

func decompress(w io.Writer, r *bufio.Reader) error {
	if *flagPrint {
		// Inspect consumes the preamble, so decode from a second reader.
		container, err := io.ReadAll(r)
		if err != nil {
			return err
		}
		_, dict, err := varhuff.Inspect(bytes.NewReader(container))
		if err != nil {
			return err
		}
		if _, err := dict.Dump(os.Stderr); err != nil {
			return err
		}
		_, err = varhuff.Decompress(w, bytes.NewReader(container))
		return err
	}
	_, err := varhuff.Decompress(w, r)
	return err
}

// verify decodes container and checks that it reproduces data.
func verify(data []byte, container []byte) error {
	out, err := varhuff.DecompressBytes(container)
	if err != nil {
		return fmt.Errorf("verify: %w", err)
	}
	want, got := xxhash.Sum64(data), xxhash.Sum64(out)
	if want != got || len(out) != len(data) {
		return fmt.Errorf("verify: digest mismatch: input %016x (%d bytes), output %016x (%d bytes)", want, len(data), got, len(out))
	}
	return nil
}

func parseOptions(widths string, parallel bool) ([]varhuff.Option, error) {
	opts := []varhuff.Option{varhuff.WithParallel(parallel)}
	if widths == "" {
		return opts, nil
	}

	var list []varhuff.Width
	for _, field := range strings.Split(widths, ",") {
		u, err := strconv.ParseUint(strings.TrimSpace(field), 10, 8)
		if err != nil {
			return nil, fmt.Errorf("-widths: %w", err)
		}
		list = append(list, varhuff.Width(u))
	}
	return append(opts, varhuff.WithWidths(list...)), nil
}
