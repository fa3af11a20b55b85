package fsa

import "fmt"

// CFSA2 arc flag byte layout. The low 5 bits index the label table
// (0 means an explicit label byte follows the flag byte).
const (
	cfsa2LabelBits = 5
	cfsa2LabelMask = 1<<cfsa2LabelBits - 1

	cfsa2BitFinal = 1 << 5
	cfsa2BitLast  = 1 << 6
	cfsa2BitNext  = 1 << 7
)

// cfsa2MaxLabels is the capacity of the shared label table: index 0 is
// reserved for the explicit-label escape.
const cfsa2MaxLabels = cfsa2LabelMask

// cfsa2 is the second compact encoding. Each arc opens with a flag byte
// carrying the final/last/target-next bits and a 5-bit label table index;
// addresses and per-node counts are variable-length integers, so large
// dictionaries pay for exactly the offsets they need.
type cfsa2 struct {
	arcs    []byte
	labels  []byte
	flags   Flags
	numbers bool
}

func newCFSA2(body []byte) (*cfsa2, error) {
	if len(body) < 3 {
		return nil, ErrTruncated
	}
	a := &cfsa2{
		flags: Flags(body[0])<<8 | Flags(body[1]),
	}
	tableSize := int(body[2])
	if tableSize > cfsa2MaxLabels {
		return nil, fmt.Errorf("fsa: cfsa2 label table too large: %d", tableSize)
	}
	if len(body) < 3+tableSize+1 {
		return nil, ErrTruncated
	}
	// Index 0 is the explicit-label escape; the stored table begins at 1.
	a.labels = make([]byte, tableSize+1)
	copy(a.labels[1:], body[3:3+tableSize])
	a.arcs = body[3+tableSize:]
	a.numbers = a.flags.Numbers()
	return a, nil
}

func (a *cfsa2) Flags() Flags { return a.flags }
func (a *cfsa2) Size() int    { return len(a.arcs) }

func (a *cfsa2) Root() int {
	epsilon := a.skipArc(a.FirstArc(0))
	return a.destination(a.FirstArc(epsilon))
}

func (a *cfsa2) FirstArc(node int) int {
	if a.numbers {
		return skipVInt(a.arcs, node)
	}
	return node
}

func (a *cfsa2) NextArc(arc int) int {
	if a.arcs[arc]&cfsa2BitLast != 0 {
		return 0
	}
	return a.skipArc(arc)
}

func (a *cfsa2) Arc(node int, label byte) int { return scanArc(a, node, label) }

func (a *cfsa2) Label(arc int) byte {
	if idx := a.arcs[arc] & cfsa2LabelMask; idx > 0 {
		return a.labels[idx]
	}
	return a.arcs[arc+1]
}

func (a *cfsa2) IsFinal(arc int) bool { return a.arcs[arc]&cfsa2BitFinal != 0 }

func (a *cfsa2) IsTerminal(arc int) bool { return a.destination(arc) == 0 }

func (a *cfsa2) EndNode(arc int) int { return a.destination(arc) }

func (a *cfsa2) RightCount(node int) int {
	v, _ := readVInt(a.arcs, node)
	return v
}

// gotoField returns the offset of the v-coded target of arc.
func (a *cfsa2) gotoField(arc int) int {
	if a.arcs[arc]&cfsa2LabelMask == 0 {
		return arc + 2
	}
	return arc + 1
}

func (a *cfsa2) skipArc(arc int) int {
	next := a.gotoField(arc)
	if a.arcs[arc]&cfsa2BitNext != 0 {
		return next
	}
	return skipVInt(a.arcs, next)
}

func (a *cfsa2) destination(arc int) int {
	if a.arcs[arc]&cfsa2BitNext != 0 {
		for a.arcs[arc]&cfsa2BitLast == 0 {
			arc = a.skipArc(arc)
		}
		return a.skipArc(arc)
	}
	v, _ := readVInt(a.arcs, a.gotoField(arc))
	return v
}

// readVInt decodes a variable-length integer at off: 7 data bits per
// byte, least significant group first, high bit set on all bytes except
// the last. Returns the value and the byte after it.
func readVInt(data []byte, off int) (v, end int) {
	b := data[off]
	v = int(b & 0x7F)
	for shift := 7; b&0x80 != 0; shift += 7 {
		off++
		b = data[off]
		v |= int(b&0x7F) << shift
	}
	return v, off + 1
}

// skipVInt returns the offset right after the v-coded integer at off.
func skipVInt(data []byte, off int) int {
	for data[off]&0x80 != 0 {
		off++
	}
	return off + 1
}
