// Package varhuff implements a lossless byte-stream compressor built on
// Huffman codes over fixed-width bit groups ("symbols") of 1 to 8 bits.
//
// The compressor tries every candidate symbol width (2 through 8 by default),
// builds a Huffman tree for each, and keeps the width whose container comes
// out smallest.  The container is self-describing:
//
//     offset 0       : 1 byte  - symbol width
//     offset 1       : 8 bytes - original byte count (big-endian)
//     offset 9       : 8 bytes - dictionary entry count N (big-endian)
//     offset 17      : N x 20 bytes - {4 byte code length, 8 byte code, 8 byte symbol}
//     offset 17+20N  : bit-packed payload, MSB-first, zero-padded
//
// A final input group shorter than the symbol width is zero-padded and coded
// like any other symbol.  The decoder stops as soon as the declared byte count
// has been produced, so the padding never reaches the output.
//
// References:
//
//     <https://en.wikipedia.org/wiki/Huffman_coding>
//
package varhuff
