package fsa

import "fmt"

// cfsaLabelTableSize is the fixed label table length of the v1 compact
// encoding. Index 0 means "explicit label byte follows the flag byte".
const cfsaLabelTableSize = 1 << 5

// cfsa is the first compact encoding. The arc model is FSA5's, but flags
// move into a dedicated first byte whose high 5 bits index a shared table
// of the 31 most frequent labels, and the address field is an unshifted
// little-endian integer whose width is picked at build time.
type cfsa struct {
	arcs        []byte
	filler      byte
	annotation  byte
	gotoLen     int
	nodeDataLen int
	labels      [cfsaLabelTableSize]byte
	flags       Flags
}

func newCFSA(body []byte) (*cfsa, error) {
	if len(body) < 3+cfsaLabelTableSize {
		return nil, ErrTruncated
	}
	hgtl := body[2]
	a := &cfsa{
		filler:     body[0],
		annotation: body[1],
		gotoLen:    int(hgtl & 0x0F),
		flags:      FlagFlexible | FlagStopBit | FlagNextBit,
	}
	a.nodeDataLen = int(hgtl>>4) & 0x0F
	if a.nodeDataLen > 0 {
		a.flags |= FlagNumbers
	}
	if a.gotoLen < 1 || a.gotoLen > 8 {
		return nil, fmt.Errorf("fsa: cfsa goto field width out of range: %d", a.gotoLen)
	}
	copy(a.labels[:], body[3:3+cfsaLabelTableSize])
	a.arcs = body[3+cfsaLabelTableSize:]
	if len(a.arcs) == 0 {
		return nil, ErrTruncated
	}
	return a, nil
}

func (a *cfsa) Flags() Flags { return a.flags }
func (a *cfsa) Size() int    { return len(a.arcs) }

func (a *cfsa) Root() int {
	epsilon := a.skipArc(a.FirstArc(0))
	return a.destination(a.FirstArc(epsilon))
}

func (a *cfsa) FirstArc(node int) int { return node + a.nodeDataLen }

func (a *cfsa) NextArc(arc int) int {
	if a.arcs[arc]&fsa5BitLast != 0 {
		return 0
	}
	return a.skipArc(arc)
}

func (a *cfsa) Arc(node int, label byte) int { return scanArc(a, node, label) }

func (a *cfsa) Label(arc int) byte {
	if idx := a.arcs[arc] >> 3; idx > 0 {
		return a.labels[idx]
	}
	return a.arcs[arc+1]
}

func (a *cfsa) IsFinal(arc int) bool { return a.arcs[arc]&fsa5BitFinal != 0 }

func (a *cfsa) IsTerminal(arc int) bool { return a.destination(arc) == 0 }

func (a *cfsa) EndNode(arc int) int { return a.destination(arc) }

func (a *cfsa) RightCount(node int) int {
	return readLE(a.arcs, node, a.nodeDataLen)
}

// gotoField returns the offset of the address field of arc, one byte past
// the flags and the explicit label byte when the table index is 0.
func (a *cfsa) gotoField(arc int) int {
	if a.arcs[arc]>>3 == 0 {
		return arc + 2
	}
	return arc + 1
}

func (a *cfsa) skipArc(arc int) int {
	next := a.gotoField(arc)
	if a.arcs[arc]&fsa5BitNext != 0 {
		return next
	}
	return next + a.gotoLen
}

func (a *cfsa) destination(arc int) int {
	if a.arcs[arc]&fsa5BitNext != 0 {
		for a.arcs[arc]&fsa5BitLast == 0 {
			arc = a.skipArc(arc)
		}
		return a.skipArc(arc)
	}
	return readLE(a.arcs, a.gotoField(arc), a.gotoLen)
}
