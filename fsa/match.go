package fsa

import "errors"

// MatchKind classifies the outcome of matching a byte sequence against an
// automaton.
type MatchKind int

const (
	// NoMatch: the first byte of the sequence already diverged from the
	// automaton; nothing was consumed.
	NoMatch MatchKind = iota
	// ExactMatch: the whole sequence is a stored sequence.
	ExactMatch
	// AutomatonHasPrefix: a positive-length prefix of the sequence exists
	// in the automaton but the remainder does not; Index is the first
	// position past the matched prefix.
	AutomatonHasPrefix
	// SequenceIsAPrefix: the whole sequence was consumed and is a strict
	// prefix of one or more stored sequences; Node is the node to
	// continue from.
	SequenceIsAPrefix
)

func (k MatchKind) String() string {
	switch k {
	case NoMatch:
		return "NoMatch"
	case ExactMatch:
		return "ExactMatch"
	case AutomatonHasPrefix:
		return "AutomatonHasPrefix"
	case SequenceIsAPrefix:
		return "SequenceIsAPrefix"
	default:
		return "MatchKind(?)"
	}
}

// MatchResult describes how far a sequence matched. One value is meant to
// be reused as scratch across many Match calls.
type MatchResult struct {
	Kind  MatchKind
	Index int // position reached in the query
	Node  int // node reached at that position, when meaningful
}

func (m *MatchResult) reset(kind MatchKind, index, node int) {
	m.Kind = kind
	m.Index = index
	m.Node = node
}

// Perfect-hash errors.
var (
	// ErrNotFound: the sequence is not stored in the automaton.
	ErrNotFound = errors.New("fsa: sequence not found")
	// ErrNoNumbers: the automaton was built without right-language
	// counts; hashes cannot be computed. This indicates the wrong
	// automaton was loaded for the job, not a bad query.
	ErrNoNumbers = errors.New("fsa: automaton carries no right-language counts")
)

// Traversal matches byte sequences against one automaton. The zero value
// is not usable; create with NewTraversal. A Traversal itself is
// stateless; callers supply the reusable MatchResult.
type Traversal struct {
	fsa Automaton
}

// NewTraversal returns a matcher over a.
func NewTraversal(a Automaton) *Traversal { return &Traversal{fsa: a} }

// Match matches seq starting at node and fills result. Passing the
// automaton's root matches from the beginning. result may be reused
// across calls to avoid allocation.
func (t *Traversal) Match(result *MatchResult, seq []byte, node int) {
	a := t.fsa
	if node == 0 {
		result.reset(NoMatch, 0, node)
		return
	}
	last := len(seq) - 1
	for i, label := range seq {
		arc := a.Arc(node, label)
		if arc == 0 {
			if i > 0 {
				result.reset(AutomatonHasPrefix, i, node)
			} else {
				result.reset(NoMatch, i, node)
			}
			return
		}
		if i == last && a.IsFinal(arc) {
			result.reset(ExactMatch, i, node)
			return
		}
		if a.IsTerminal(arc) {
			// The automaton's stored sequence is a strict prefix of
			// the query; the rest of the query cannot match.
			result.reset(AutomatonHasPrefix, i+1, 0)
			return
		}
		node = a.EndNode(arc)
	}
	result.reset(SequenceIsAPrefix, 0, node)
}

// PerfectHash returns the rank of seq among all stored sequences, a dense
// 0..N-1 numbering consistent with the byte-lexicographic order the
// automaton was built in. The traversal scans arcs in their stored order
// and never re-sorts; automata built from unsorted input produce
// meaningless ranks.
//
// Returns ErrNotFound if seq is not stored and ErrNoNumbers if the
// automaton carries no counts.
func (t *Traversal) PerfectHash(seq []byte) (int, error) {
	return t.PerfectHashFrom(seq, t.fsa.Root())
}

// PerfectHashFrom computes the rank of seq relative to node's right
// language. See PerfectHash.
func (t *Traversal) PerfectHashFrom(seq []byte, node int) (int, error) {
	a := t.fsa
	if !a.Flags().Numbers() {
		return 0, ErrNoNumbers
	}
	if node == 0 || len(seq) == 0 {
		return 0, ErrNotFound
	}
	hash := 0
	last := len(seq) - 1
	for i, label := range seq {
		found := false
		for arc := a.FirstArc(node); arc != 0; arc = a.NextArc(arc) {
			if a.Label(arc) == label {
				if a.IsFinal(arc) {
					if i == last {
						return hash, nil
					}
					// A shorter stored sequence ends here and
					// ranks before everything below this arc.
					hash++
				}
				if a.IsTerminal(arc) {
					return 0, ErrNotFound
				}
				node = a.EndNode(arc)
				found = true
				break
			}
			// Arcs scanned before the taken one contribute their
			// whole right language.
			if a.IsFinal(arc) {
				hash++
			}
			if !a.IsTerminal(arc) {
				hash += a.RightCount(a.EndNode(arc))
			}
		}
		if !found {
			return 0, ErrNotFound
		}
	}
	return 0, ErrNotFound
}
