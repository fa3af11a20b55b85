package fsa

// stackIncrement is the growth step for the iterator's cursor stack and
// label buffer. Dictionary entries are short; most iterations never grow
// past the initial allocation.
const stackIncrement = 15

// Iterator enumerates every stored sequence reachable from a node, in the
// automaton's arc order, using an explicit depth-first stack rather than
// recursion. One Iterator is meant to be restarted over and over: a full
// dictionary walk performs millions of cheap Next calls on one instance.
//
// The slice returned by Next aliases the iterator's label buffer and is
// overwritten by the following Next call. Callers keeping a sequence
// must copy it first.
type Iterator struct {
	fsa    Automaton
	arcs   []int  // arc cursor per depth level
	buffer []byte // label accumulated at each depth
	depth  int    // live levels in arcs
}

// NewIterator returns an iterator positioned at node. A node of 0 yields
// an empty iteration.
func NewIterator(a Automaton, node int) *Iterator {
	it := &Iterator{
		fsa:    a,
		arcs:   make([]int, stackIncrement),
		buffer: make([]byte, stackIncrement),
	}
	it.RestartFrom(node)
	return it
}

// RestartFrom repositions the iterator at node, reusing its storage.
func (it *Iterator) RestartFrom(node int) {
	it.depth = 0
	if node != 0 {
		it.push(it.fsa.FirstArc(node))
	}
}

// Next returns the next stored sequence, or false when the walk is done.
func (it *Iterator) Next() ([]byte, bool) {
	a := it.fsa
	for it.depth > 0 {
		level := it.depth - 1
		arc := it.arcs[level]
		if arc == 0 {
			// All arcs at this level consumed; backtrack.
			it.depth--
			continue
		}

		it.buffer[level] = a.Label(arc)
		if !a.IsTerminal(arc) {
			it.push(a.FirstArc(a.EndNode(arc)))
		}
		// Advance the cursor in place so backtracking resumes at the
		// sibling arc.
		it.arcs[level] = a.NextArc(arc)

		if a.IsFinal(arc) {
			return it.buffer[:level+1], true
		}
	}
	return nil, false
}

// push adds one cursor level, growing both stacks by a fixed increment
// when exhausted.
func (it *Iterator) push(arc int) {
	if it.depth == len(it.arcs) {
		arcs := make([]int, len(it.arcs)+stackIncrement)
		copy(arcs, it.arcs)
		it.arcs = arcs
		buffer := make([]byte, len(it.buffer)+stackIncrement)
		copy(buffer, it.buffer)
		it.buffer = buffer
	}
	it.arcs[it.depth] = arc
	it.depth++
}
