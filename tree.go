package varhuff

import (
	"bytes"
	"container/heap"
	"fmt"
	"io"

	"github.com/chronos-tachyon/assert"
)

const (
	// HeaderSize is the fixed size of a container header in bytes.
	HeaderSize = 1 + 8 + 8

	// EntrySize is the fixed size of one serialized dictionary entry.
	EntrySize = 4 + 8 + 8
)

// Tree is a Huffman code tree over the symbols of one FrequencyTable.
type Tree struct {
	width Width
	nodes []treeNode
	root  int32
}

// treeNode is a leaf if left < 0.  Leaves occupy nodes[0:numLeaves] in
// ascending symbol order; internal nodes follow in creation order.
type treeNode struct {
	symbol Symbol
	freq   uint64
	left   int32
	right  int32
}

func (n treeNode) isLeaf() bool {
	return n.left < 0
}

// BuildTree builds a Huffman tree from ft by repeatedly merging the two
// lowest-frequency nodes.  Ties go to the node with the lower index, so the
// result depends only on ft.
//
// A table with a single distinct symbol yields a one-leaf tree whose code is
// "0".  An empty table yields an empty tree.
//
func BuildTree(ft FrequencyTable) *Tree {
	numLeaves := ft.Distinct()
	t := &Tree{
		width: ft.Width(),
		nodes: make([]treeNode, 0, 2*numLeaves),
		root:  -1,
	}
	if numLeaves == 0 {
		return t
	}

	// Step 1: one leaf per symbol, all on a minheap.

	h := freqHeap{list: make([]nodeAndFreq, 0, numLeaves)}
	for _, symbol := range ft.Symbols() {
		index := int32(len(t.nodes))
		freq := ft.Count(symbol)
		t.nodes = append(t.nodes, treeNode{symbol: symbol, freq: freq, left: -1, right: -1})
		h.list = append(h.list, nodeAndFreq{index, freq})
	}
	h.Init()

	// Step 2: pop two nodes, merge them under a new internal node, push the
	// new node.  The first node popped becomes the "0" branch.

	for h.Len() > 1 {
		a := heap.Pop(&h).(nodeAndFreq)
		b := heap.Pop(&h).(nodeAndFreq)

		freqSum := a.freq + b.freq
		assert.Assertf(freqSum >= a.freq, "frequency overflow: %d + %d", a.freq, b.freq)

		index := int32(len(t.nodes))
		t.nodes = append(t.nodes, treeNode{symbol: InvalidSymbol, freq: freqSum, left: a.index, right: b.index})
		heap.Push(&h, nodeAndFreq{index, freqSum})
	}

	t.root = heap.Pop(&h).(nodeAndFreq).index
	assert.Assertf(len(t.nodes) == 2*numLeaves-1, "expected %d nodes, got %d", 2*numLeaves-1, len(t.nodes))
	return t
}

// Width returns the symbol width of the tree's alphabet.
func (t *Tree) Width() Width {
	return t.width
}

// NumLeaves returns the number of distinct symbols in the tree.
func (t *Tree) NumLeaves() int {
	if t.root < 0 {
		return 0
	}
	return (len(t.nodes) + 1) / 2
}

// walk visits every leaf in depth-first pre-order, "0" branch first, passing
// the leaf's code.
func (t *Tree) walk(fn func(leaf treeNode, hc Code)) {
	if t.root < 0 {
		return
	}

	// The root of a one-leaf tree gets the code "0" rather than the empty
	// code, so that every symbol costs at least one bit.
	if t.nodes[t.root].isLeaf() {
		fn(t.nodes[t.root], MakeCode(1, 0))
		return
	}

	type stackItem struct {
		index int32
		hc    Code
	}

	stack := make([]stackItem, 0, log2uint32(uint32(len(t.nodes)))+1)
	stack = append(stack, stackItem{t.root, Code{}})
	for len(stack) != 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		node := t.nodes[top.index]
		if node.isLeaf() {
			fn(node, top.hc)
			continue
		}

		assert.Assertf(top.hc.Size < MaxCodeSize, "code for node %d exceeds %d bits", top.index, MaxCodeSize)
		stack = append(stack, stackItem{node.right, top.hc.Append(true)})
		stack = append(stack, stackItem{node.left, top.hc.Append(false)})
	}
}

// Dictionary returns one Entry per leaf, in depth-first pre-order.
func (t *Tree) Dictionary() Dictionary {
	dict := make(Dictionary, 0, t.NumLeaves())
	t.walk(func(leaf treeNode, hc Code) {
		dict = append(dict, Entry{Code: hc, Symbol: leaf.symbol})
	})
	return dict
}

// EncodedBits returns the length of the payload in bits, excluding padding:
// the sum over all leaves of frequency times code size.
func (t *Tree) EncodedBits() uint64 {
	var sum uint64
	t.walk(func(leaf treeNode, hc Code) {
		sum += leaf.freq * uint64(hc.Size)
	})
	return sum
}

// EstimatedSize returns the size in bytes of the container this tree would
// produce: header, dictionary, and padded payload.
func (t *Tree) EstimatedSize() uint64 {
	return HeaderSize + EntrySize*uint64(t.NumLeaves()) + ceilDiv(t.EncodedBits(), 8)
}

// Dump writes a programmer-readable debugging dump of the Tree's current
// state to the given writer.
func (t *Tree) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("Tree{\n")
	fmt.Fprintf(&buf, "\tWidth() = %d\n", byte(t.width))
	fmt.Fprintf(&buf, "\tNumLeaves() = %d\n", t.NumLeaves())
	fmt.Fprintf(&buf, "\tEncodedBits() = %d\n", t.EncodedBits())
	fmt.Fprintf(&buf, "\tEstimatedSize() = %d\n", t.EstimatedSize())
	t.walk(func(leaf treeNode, hc Code) {
		fmt.Fprintf(&buf, "\tLeaf(%s) = {%d, %d}\n", hc, leaf.symbol, leaf.freq)
	})
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}

// type nodeAndFreq + type freqHeap {{{

type nodeAndFreq struct {
	index int32
	freq  uint64
}

type freqHeap struct {
	list []nodeAndFreq
}

func (h *freqHeap) Init() {
	heap.Init(h)
}

func (h *freqHeap) Len() int {
	return len(h.list)
}

func (h *freqHeap) Swap(i, j int) {
	h.list[i], h.list[j] = h.list[j], h.list[i]
}

func (h *freqHeap) Less(i, j int) bool {
	a, b := h.list[i], h.list[j]
	if a.freq != b.freq {
		return a.freq < b.freq
	}
	return a.index < b.index
}

func (h *freqHeap) Push(x interface{}) {
	h.list = append(h.list, x.(nodeAndFreq))
}

func (h *freqHeap) Pop() interface{} {
	last := uint(len(h.list)) - 1
	x := h.list[last]
	h.list = h.list[:last]
	return x
}

var _ heap.Interface = (*freqHeap)(nil)

// }}}
