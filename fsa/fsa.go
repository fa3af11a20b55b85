// Package fsa reads and traverses finite-state automata stored in the
// compressed \fsa binary formats used by large-vocabulary dictionaries.
//
// An automaton is a single immutable byte buffer. Nodes and arcs are plain
// integer byte offsets into that buffer; there are no pointers and nothing
// is decompressed up front. Three on-disk encodings are supported, selected
// by the version byte of the file header:
//
//   - FSA5 (version 5): byte-aligned arcs with a fixed-width address field.
//   - CFSA (version 0xC5): adds a shared label table and mixed-width
//     address fields.
//   - CFSA2 (version 0xC6): per-arc flag byte and variable-length integer
//     addresses and counts; the smallest of the three on large dictionaries.
//
// The buffer is read-only after loading and safe to share across
// goroutines. Traversal and iteration state (MatchResult, Iterator) is
// mutable scratch owned by one caller at a time.
package fsa

// Flags describe optional properties of a loaded automaton. The bit values
// match the CFSA2 on-disk flag word.
type Flags uint16

const (
	// FlagFlexible is set on all automata produced by the serializers.
	FlagFlexible Flags = 1 << 0
	// FlagStopBit marks arc lists terminated by a last-arc bit.
	FlagStopBit Flags = 1 << 1
	// FlagNextBit marks support for target-follows arc addressing.
	FlagNextBit Flags = 1 << 2
	// FlagTails marks shared-tail compression (informational).
	FlagTails Flags = 1 << 3
	// FlagNumbers marks right-language counts stored on every node,
	// required for perfect hashing.
	FlagNumbers Flags = 1 << 4
	// FlagSeparators marks automata built with legacy annotation
	// separators (informational).
	FlagSeparators Flags = 1 << 5
)

// Numbers reports whether right-language counts are available.
func (f Flags) Numbers() bool { return f&FlagNumbers != 0 }

// Automaton is a read-only finite-state automaton over byte labels.
//
// Nodes and arcs are opaque non-negative int offsets; 0 is "no arc". Arcs
// of one node form a list walked with FirstArc/NextArc and terminated by
// the last-arc bit. Exactly one arc per node carries any given label.
//
// An arc may be final (its path spells a stored sequence) and/or terminal
// (it has no destination node). A terminal arc is always final: every
// stored sequence ends on one.
type Automaton interface {
	// Root returns the automaton's root node.
	Root() int
	// FirstArc returns the first outgoing arc of node.
	FirstArc(node int) int
	// NextArc returns the arc after arc within the same node, or 0 if
	// arc is the node's last arc.
	NextArc(arc int) int
	// Arc returns the arc of node carrying label, or 0 if absent.
	Arc(node int, label byte) int
	// Label returns the byte label of arc.
	Label(arc int) byte
	// IsFinal reports whether arc ends a stored sequence.
	IsFinal(arc int) bool
	// IsTerminal reports whether arc has no destination node.
	IsTerminal(arc int) bool
	// EndNode returns the destination node of a non-terminal arc.
	EndNode(arc int) int
	// RightCount returns the number of stored sequences reachable from
	// node. Valid only when Flags().Numbers() is true.
	RightCount(node int) int
	// Flags returns the automaton's property flags.
	Flags() Flags
	// Size returns the length of the arc region in bytes.
	Size() int
}

// scanArc is the generic label scan shared by the codecs: walk the arc
// list of node until label is found or the list is exhausted.
func scanArc(a Automaton, node int, label byte) int {
	for arc := a.FirstArc(node); arc != 0; arc = a.NextArc(arc) {
		if a.Label(arc) == label {
			return arc
		}
	}
	return 0
}

// ArcCount returns the number of outgoing arcs of node.
func ArcCount(a Automaton, node int) int {
	n := 0
	for arc := a.FirstArc(node); arc != 0; arc = a.NextArc(arc) {
		n++
	}
	return n
}

// readLE reads an n-byte little-endian unsigned integer at off.
func readLE(data []byte, off, n int) int {
	v := 0
	for i := n - 1; i >= 0; i-- {
		v = v<<8 | int(data[off+i])
	}
	return v
}
