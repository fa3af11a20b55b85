package fsa

// Info summarizes the structure of an automaton.
type Info struct {
	Nodes     int // reachable nodes
	Arcs      int // arcs of reachable nodes
	FinalArcs int // arcs that terminate a stored sequence
	Sequences int // stored sequences reachable from the root
}

// Stat walks the automaton once and returns its statistics. The sequence
// count comes from the root's right-language count when the automaton
// carries counts, and from summing final arcs otherwise.
func Stat(a Automaton) Info {
	var info Info
	VisitPreOrder(a, a.Root(), func(node int) bool {
		info.Nodes++
		for arc := a.FirstArc(node); arc != 0; arc = a.NextArc(arc) {
			info.Arcs++
			if a.IsFinal(arc) {
				info.FinalArcs++
			}
		}
		return true
	})
	if a.Flags().Numbers() {
		info.Sequences = a.RightCount(a.Root())
	} else {
		it := NewIterator(a, a.Root())
		for _, ok := it.Next(); ok; _, ok = it.Next() {
			info.Sequences++
		}
	}
	return info
}
