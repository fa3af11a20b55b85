package fsa

import "fmt"

// FSA5 arc flag bits, stored in the low 3 bits of the packed goto field.
const (
	fsa5BitFinal = 1 << 0
	fsa5BitLast  = 1 << 1
	fsa5BitNext  = 1 << 2
)

// fsa5 is the legacy version-5 encoding. Every arc is byte aligned:
// a label byte followed by a packed goto field of fixed width whose low
// three bits carry the arc flags and whose remaining bits, right-shifted,
// are the destination offset. Arcs with the target-next bit set drop the
// address and keep only the label and one flag byte; their destination is
// the byte right after the last arc of the node. Nodes optionally start
// with a fixed-width count of the sequences in their right language.
type fsa5 struct {
	arcs        []byte
	filler      byte
	annotation  byte
	gotoLen     int
	nodeDataLen int
	flags       Flags
}

func newFSA5(body []byte) (*fsa5, error) {
	if len(body) < 3 {
		return nil, ErrTruncated
	}
	gtl := body[2]
	a := &fsa5{
		filler:      body[0],
		annotation:  body[1],
		gotoLen:     int(gtl & 0x0F),
		nodeDataLen: int(gtl>>4) & 0x0F,
		arcs:        body[3:],
		flags:       FlagFlexible | FlagStopBit | FlagNextBit,
	}
	if a.gotoLen < 1 || a.gotoLen > 8 {
		return nil, fmt.Errorf("fsa: fsa5 goto field width out of range: %d", a.gotoLen)
	}
	if a.nodeDataLen > 0 {
		a.flags |= FlagNumbers
	}
	if len(a.arcs) < a.nodeDataLen+1+a.gotoLen {
		return nil, ErrTruncated
	}
	return a, nil
}

func (a *fsa5) Flags() Flags { return a.flags }
func (a *fsa5) Size() int    { return len(a.arcs) }

func (a *fsa5) Root() int {
	// Skip the dummy terminating node and follow the single arc of the
	// epsilon node after it.
	epsilon := a.skipArc(a.FirstArc(0))
	return a.destination(a.FirstArc(epsilon))
}

func (a *fsa5) FirstArc(node int) int { return node + a.nodeDataLen }

func (a *fsa5) NextArc(arc int) int {
	if a.arcs[arc+1]&fsa5BitLast != 0 {
		return 0
	}
	return a.skipArc(arc)
}

func (a *fsa5) Arc(node int, label byte) int { return scanArc(a, node, label) }

func (a *fsa5) Label(arc int) byte { return a.arcs[arc] }

func (a *fsa5) IsFinal(arc int) bool { return a.arcs[arc+1]&fsa5BitFinal != 0 }

func (a *fsa5) IsTerminal(arc int) bool { return a.destination(arc) == 0 }

func (a *fsa5) EndNode(arc int) int { return a.destination(arc) }

func (a *fsa5) RightCount(node int) int {
	return readLE(a.arcs, node, a.nodeDataLen)
}

// skipArc returns the offset right after arc.
func (a *fsa5) skipArc(arc int) int {
	if a.arcs[arc+1]&fsa5BitNext != 0 {
		return arc + 2
	}
	return arc + 1 + a.gotoLen
}

// destination resolves the target node offset of arc; 0 means terminal.
func (a *fsa5) destination(arc int) int {
	if a.arcs[arc+1]&fsa5BitNext != 0 {
		// The target node starts right after the last arc of this
		// arc's node.
		for a.arcs[arc+1]&fsa5BitLast == 0 {
			arc = a.skipArc(arc)
		}
		return a.skipArc(arc)
	}
	return readLE(a.arcs, arc+1, a.gotoLen) >> 3
}
