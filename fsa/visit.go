package fsa

// Automata share suffixes, so the state graph is a DAG, not a tree: the
// visitors keep a visited bitmap sized to the arc region and expand each
// node once. Both use an explicit stack so traversal depth is bounded by
// available memory rather than goroutine stack limits.

// VisitPreOrder calls fn for every node reachable from node, parents
// before children. Traversal stops early if fn returns false.
func VisitPreOrder(a Automaton, node int, fn func(node int) bool) {
	visited := newBitset(a.Size() + 1)
	stack := []int{node}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if visited.get(n) {
			continue
		}
		visited.set(n)
		if !fn(n) {
			return
		}
		for arc := a.FirstArc(n); arc != 0; arc = a.NextArc(arc) {
			if !a.IsTerminal(arc) {
				stack = append(stack, a.EndNode(arc))
			}
		}
	}
}

// VisitPostOrder calls fn for every node reachable from node, children
// before parents. Traversal stops early if fn returns false.
func VisitPostOrder(a Automaton, node int, fn func(node int) bool) {
	type frame struct {
		node     int
		expanded bool
	}
	visited := newBitset(a.Size() + 1)
	stack := []frame{{node: node}}
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if top.expanded {
			n := top.node
			stack = stack[:len(stack)-1]
			if !fn(n) {
				return
			}
			continue
		}
		if visited.get(top.node) {
			stack = stack[:len(stack)-1]
			continue
		}
		visited.set(top.node)
		top.expanded = true
		for arc := a.FirstArc(top.node); arc != 0; arc = a.NextArc(arc) {
			if !a.IsTerminal(arc) {
				stack = append(stack, frame{node: a.EndNode(arc)})
			}
		}
	}
}

// bitset is a plain bit vector over node offsets.
type bitset []uint64

func newBitset(n int) bitset { return make(bitset, (n+63)/64) }

func (b bitset) set(i int)      { b[i/64] |= 1 << (i % 64) }
func (b bitset) get(i int) bool { return b[i/64]&(1<<(i%64)) != 0 }
