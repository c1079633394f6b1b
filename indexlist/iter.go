package indexlist

import (
	"iter"

	"github.com/drpcorg/ripple/ripple_errors"
)

// Range yields the positions and elements of from..<to in order, walking
// leaf to leaf. The list must not change while a Range is in progress.
func (l *List[E]) Range(from, to int) iter.Seq2[int, E] {
	ripple_errors.Check(0 <= from && from <= to && to <= l.Len(), ripple_errors.ErrIndexOutOfRange,
		"range %d..<%d of %d elements", from, to, l.Len())
	return func(yield func(int, E) bool) {
		if from == to {
			return
		}
		n, k := l.locate(from)
		for i := from; i < to; i++ {
			for k == len(n.elems) {
				n, k = nextLeaf(n), 0
			}
			if !yield(i, n.elems[k]) {
				return
			}
			k++
		}
	}
}

func (l *List[E]) All() iter.Seq2[int, E] {
	return l.Range(0, l.Len())
}

// ForEach calls fn for the elements of from..<to in order.
func (l *List[E]) ForEach(from, to int, fn func(E)) {
	for _, e := range l.Range(from, to) {
		fn(e)
	}
}

// Values copies the elements into a slice.
func (l *List[E]) Values() []E {
	out := make([]E, 0, l.Len())
	for _, e := range l.All() {
		out = append(out, e)
	}
	return out
}

func nextLeaf[E Element](n *node[E]) *node[E] {
	for n.parent != nil && n.slot+1 == len(n.parent.children) {
		n = n.parent
	}
	if n.parent == nil {
		return nil
	}
	n = n.parent.children[n.slot+1]
	for !n.leaf {
		n = n.children[0]
	}
	return n
}
