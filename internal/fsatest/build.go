// Package fsatest builds small automaton images for tests. It emits valid
// but deliberately simple encodings: no target-next addressing, fixed
// address widths, and (for the variable-length format) zero-padded
// integers, all of which a conforming reader must accept. It is test
// support only and is not part of the public dictionary API.
package fsatest

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/az-ai-labs/fsadict/fsa"
)

const (
	gotoLen  = 4 // address field width for the fixed-width formats
	countLen = 4 // node count field width for the fixed-width formats
	vintLen  = 4 // padded width of every emitted v-coded integer
)

// trie node: parallel slices of outgoing arcs, sorted by label.
type tnode struct {
	labels []byte
	final  []bool
	child  []*tnode // nil entry = terminal arc
	count  int      // right-language count
	offset int      // assigned during layout
}

func buildTrie(words [][]byte) *tnode {
	sorted := make([][]byte, len(words))
	copy(sorted, words)
	sort.Slice(sorted, func(i, j int) bool { return bytes.Compare(sorted[i], sorted[j]) < 0 })

	root := &tnode{}
	for i, w := range sorted {
		if len(w) == 0 {
			panic("fsatest: empty sequence")
		}
		if i > 0 && bytes.Equal(sorted[i-1], w) {
			continue
		}
		n := root
		for j, b := range w {
			k := n.arcIndex(b)
			if k < 0 {
				k = n.insertArc(b)
			}
			last := j == len(w)-1
			if last {
				n.final[k] = true
			} else {
				if n.child[k] == nil {
					n.child[k] = &tnode{}
				}
				n = n.child[k]
			}
		}
	}
	root.computeCounts()
	return root
}

func (n *tnode) arcIndex(label byte) int {
	for i, l := range n.labels {
		if l == label {
			return i
		}
	}
	return -1
}

// insertArc adds an arc for label keeping labels sorted, and returns its
// index.
func (n *tnode) insertArc(label byte) int {
	i := sort.Search(len(n.labels), func(i int) bool { return n.labels[i] >= label })
	n.labels = append(n.labels, 0)
	n.final = append(n.final, false)
	n.child = append(n.child, nil)
	copy(n.labels[i+1:], n.labels[i:])
	copy(n.final[i+1:], n.final[i:])
	copy(n.child[i+1:], n.child[i:])
	n.labels[i] = label
	n.final[i] = false
	n.child[i] = nil
	return i
}

func (n *tnode) computeCounts() int {
	n.count = 0
	for i := range n.labels {
		if n.final[i] {
			n.count++
		}
		if n.child[i] != nil {
			n.count += n.child[i].computeCounts()
		}
	}
	return n.count
}

// breadthFirst lists all trie nodes, root first.
func breadthFirst(root *tnode) []*tnode {
	nodes := []*tnode{root}
	for i := 0; i < len(nodes); i++ {
		for _, c := range nodes[i].child {
			if c != nil {
				nodes = append(nodes, c)
			}
		}
	}
	return nodes
}

// Build serializes words into an automaton image of the given version
// (fsa.VersionFSA5, fsa.VersionCFSA or fsa.VersionCFSA2). Words are
// deduplicated and sorted byte-lexicographically, so enumeration order
// and perfect-hash ranks follow byte order. numbers controls whether
// right-language counts are stored.
func Build(version byte, words [][]byte, numbers bool) []byte {
	root := buildTrie(words)
	switch version {
	case fsa.VersionFSA5:
		return emitFSA5(root, numbers)
	case fsa.VersionCFSA:
		return emitCFSA(root, numbers)
	case fsa.VersionCFSA2:
		return emitCFSA2(root, numbers)
	default:
		panic(fmt.Sprintf("fsatest: unknown version 0x%02X", version))
	}
}

// BuildStrings is Build over string words.
func BuildStrings(version byte, words []string, numbers bool) []byte {
	bs := make([][]byte, len(words))
	for i, w := range words {
		bs[i] = []byte(w)
	}
	return Build(version, bs, numbers)
}

const (
	bitFinal = 1 << 0
	bitLast  = 1 << 1
)

func putLE(dst []byte, v int) {
	for i := range dst {
		dst[i] = byte(v)
		v >>= 8
	}
}

// Arc-region layout, shared by all three emitters: a dummy terminating
// node opens the region, followed by an epsilon node whose single arc
// points at the root; real nodes follow in breadth-first order.

func emitFSA5(root *tnode, numbers bool) []byte {
	countW := 0
	if numbers {
		countW = countLen
	}
	nodes := breadthFirst(root)
	arcSize := 1 + gotoLen

	// Offsets are relative to the start of the arc region.
	off := countW + arcSize // dummy node
	off += countW + arcSize // epsilon node
	for _, n := range nodes {
		n.offset = off
		off += countW + len(n.labels)*arcSize
	}

	var buf bytes.Buffer
	buf.Write([]byte{'\\', 'f', 's', 'a', fsa.VersionFSA5})
	buf.WriteByte('_') // filler
	buf.WriteByte('+') // annotation
	buf.WriteByte(byte(countW<<4 | gotoLen))

	count := make([]byte, countW)
	gotoField := make([]byte, gotoLen)
	writeArc := func(label byte, flags, target int) {
		buf.WriteByte(label)
		putLE(gotoField, target<<3|flags)
		buf.Write(gotoField)
	}
	writeNode := func(n *tnode) {
		if countW > 0 {
			putLE(count, n.count)
			buf.Write(count)
		}
		for i, l := range n.labels {
			flags := 0
			if n.final[i] {
				flags |= bitFinal
			}
			if i == len(n.labels)-1 {
				flags |= bitLast
			}
			target := 0
			if n.child[i] != nil {
				target = n.child[i].offset
			}
			writeArc(l, flags, target)
		}
	}

	// Dummy terminating node.
	if countW > 0 {
		putLE(count, 0)
		buf.Write(count)
	}
	writeArc(0, bitFinal|bitLast, 0)
	// Epsilon node with the single arc to the root.
	if countW > 0 {
		putLE(count, root.count)
		buf.Write(count)
	}
	writeArc('^', bitLast, root.offset)
	for _, n := range nodes {
		writeNode(n)
	}
	return buf.Bytes()
}

func emitCFSA(root *tnode, numbers bool) []byte {
	countW := 0
	if numbers {
		countW = countLen
	}
	nodes := breadthFirst(root)
	arcSize := 2 + gotoLen // flags + explicit label + address

	off := countW + arcSize
	off += countW + arcSize
	for _, n := range nodes {
		n.offset = off
		off += countW + len(n.labels)*arcSize
	}

	var buf bytes.Buffer
	buf.Write([]byte{'\\', 'f', 's', 'a', fsa.VersionCFSA})
	buf.WriteByte('_')
	buf.WriteByte('+')
	buf.WriteByte(byte(countW<<4 | gotoLen))
	buf.Write(make([]byte, 32)) // empty label table: all labels explicit

	count := make([]byte, countW)
	addr := make([]byte, gotoLen)
	writeArc := func(label byte, flags, target int) {
		buf.WriteByte(byte(flags)) // label index 0: explicit byte follows
		buf.WriteByte(label)
		putLE(addr, target)
		buf.Write(addr)
	}
	writeCount := func(v int) {
		if countW > 0 {
			putLE(count, v)
			buf.Write(count)
		}
	}

	writeCount(0)
	writeArc(0, bitFinal|bitLast, 0)
	writeCount(root.count)
	writeArc('^', bitLast, root.offset)
	for _, n := range nodes {
		writeCount(n.count)
		for i, l := range n.labels {
			flags := 0
			if n.final[i] {
				flags |= bitFinal
			}
			if i == len(n.labels)-1 {
				flags |= bitLast
			}
			target := 0
			if n.child[i] != nil {
				target = n.child[i].offset
			}
			writeArc(l, flags, target)
		}
	}
	return buf.Bytes()
}

const (
	cfsa2Final = 1 << 5
	cfsa2Last  = 1 << 6
)

// putVIntPadded writes v as a v-coded integer padded with continuation
// bytes to a fixed width, keeping offsets independent of the value.
func putVIntPadded(buf *bytes.Buffer, v int) {
	for i := 0; i < vintLen-1; i++ {
		buf.WriteByte(byte(v&0x7F) | 0x80)
		v >>= 7
	}
	buf.WriteByte(byte(v & 0x7F))
}

func emitCFSA2(root *tnode, numbers bool) []byte {
	nodes := breadthFirst(root)
	countW := 0
	if numbers {
		countW = vintLen
	}
	arcSize := 2 + vintLen // flags + explicit label + padded target

	off := countW + arcSize
	off += countW + arcSize
	for _, n := range nodes {
		n.offset = off
		off += countW + len(n.labels)*arcSize
	}

	flags := fsa.FlagFlexible | fsa.FlagStopBit | fsa.FlagNextBit
	if numbers {
		flags |= fsa.FlagNumbers
	}

	var buf bytes.Buffer
	buf.Write([]byte{'\\', 'f', 's', 'a', fsa.VersionCFSA2})
	buf.WriteByte(byte(flags >> 8))
	buf.WriteByte(byte(flags))
	buf.WriteByte(0) // label table size: all labels explicit

	writeArc := func(label byte, arcFlags, target int) {
		buf.WriteByte(byte(arcFlags)) // label index 0
		buf.WriteByte(label)
		putVIntPadded(&buf, target)
	}
	writeCount := func(v int) {
		if numbers {
			putVIntPadded(&buf, v)
		}
	}

	writeCount(0)
	writeArc(0, cfsa2Final|cfsa2Last, 0)
	writeCount(root.count)
	writeArc('^', cfsa2Last, root.offset)
	for _, n := range nodes {
		writeCount(n.count)
		for i, l := range n.labels {
			arcFlags := 0
			if n.final[i] {
				arcFlags |= cfsa2Final
			}
			if i == len(n.labels)-1 {
				arcFlags |= cfsa2Last
			}
			target := 0
			if n.child[i] != nil {
				target = n.child[i].offset
			}
			writeArc(l, arcFlags, target)
		}
	}
	return buf.Bytes()
}
