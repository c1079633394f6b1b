// Package indexlist is an ordered list with O(log n) positional access and
// O(log n) reverse lookup from an element to its position.
//
// The list is a B+ tree whose nodes cache their element count. Every element
// embeds a Link, the back-link to the leaf holding it, which the list keeps
// current through splits, merges and redistributions. Only the list touches
// the Link; an element belongs to at most one list at a time and its Link is
// cleared when it leaves.
package indexlist

import (
	"slices"

	"github.com/drpcorg/ripple/ripple_errors"
	"github.com/drpcorg/ripple/utils"
)

// Link is embedded in list elements. The zero value means "in no list".
//
// A set Link is a strong reference to its leaf and, through the parent
// pointers, to the whole tree: an element held anywhere keeps its list's
// storage reachable. Remove and Clear reset the link.
type Link struct {
	leaf any
	slot int
}

func (l *Link) link() *Link {
	return l
}

// Element is a pointer to a struct embedding Link.
type Element interface {
	comparable
	link() *Link
}

type node[E Element] struct {
	parent   *node[E]
	slot     int
	count    int
	leaf     bool
	elems    []E
	children []*node[E]
}

func (n *node[E]) size() int {
	if n.leaf {
		return len(n.elems)
	}
	return len(n.children)
}

// relink points back-links (or parent links) of the entries from k on at n.
func (n *node[E]) relink(k int) {
	if n.leaf {
		for ; k < len(n.elems); k++ {
			l := n.elems[k].link()
			l.leaf, l.slot = n, k
		}
		return
	}
	for ; k < len(n.children); k++ {
		n.children[k].parent, n.children[k].slot = n, k
	}
}

func (n *node[E]) recount() {
	if n.leaf {
		n.count = len(n.elems)
		return
	}
	n.count = 0
	for _, c := range n.children {
		n.count += c.count
	}
}

// List is not safe for concurrent use.
type List[E Element] struct {
	root  *node[E]
	order int
}

const MinOrder = 3

// New makes an empty list whose nodes hold at most order entries.
func New[E Element](order int) *List[E] {
	ripple_errors.Check(order >= MinOrder, ripple_errors.ErrBadOrder, "order %d", order)
	return &List[E]{order: order, root: &node[E]{leaf: true}}
}

func (l *List[E]) minFill() int {
	return utils.CeilDiv(l.order, 2)
}

func (l *List[E]) Len() int {
	return l.root.count
}

func (l *List[E]) checkIndex(i, limit int) {
	ripple_errors.Check(i >= 0 && i < limit, ripple_errors.ErrIndexOutOfRange,
		"index %d of %d elements", i, l.Len())
}

// locate finds the leaf and slot of position i; i == Len lands past the
// last slot of the last leaf.
func (l *List[E]) locate(i int) (*node[E], int) {
	n := l.root
	for !n.leaf {
		k, last := 0, len(n.children)-1
		for k < last && i >= n.children[k].count {
			i -= n.children[k].count
			k++
		}
		n = n.children[k]
	}
	return n, i
}

func (l *List[E]) Get(i int) E {
	l.checkIndex(i, l.Len())
	n, k := l.locate(i)
	return n.elems[k]
}

func claim[E Element](e E) {
	ripple_errors.Check(e.link().leaf == nil, ripple_errors.ErrElementInUse, "%v", e)
}

// Set puts e at position i and returns the element it replaced.
func (l *List[E]) Set(i int, e E) E {
	l.checkIndex(i, l.Len())
	n, k := l.locate(i)
	old := n.elems[k]
	if old == e {
		return old
	}
	claim(e)
	n.elems[k] = e
	*old.link() = Link{}
	*e.link() = Link{leaf: n, slot: k}
	return old
}

func (l *List[E]) Insert(i int, e E) {
	l.checkIndex(i, l.Len()+1)
	claim(e)
	n, k := l.locate(i)
	n.elems = slices.Insert(n.elems, k, e)
	n.relink(k)
	for p := n; p != nil; p = p.parent {
		p.count++
	}
	l.split(n)
}

func (l *List[E]) Append(e E) {
	l.Insert(l.Len(), e)
}

// Remove takes the element at i out of the list and clears its link.
func (l *List[E]) Remove(i int) E {
	l.checkIndex(i, l.Len())
	n, k := l.locate(i)
	e := n.elems[k]
	n.elems = slices.Delete(n.elems, k, k+1)
	n.relink(k)
	for p := n; p != nil; p = p.parent {
		p.count--
	}
	*e.link() = Link{}
	l.rebalance(n)
	return e
}

// IndexOf is the current position of e; it panics if e is not in the list.
func (l *List[E]) IndexOf(e E) int {
	i, ok := l.find(e)
	if !ok {
		ripple_errors.Fail(ripple_errors.ErrForeignElement, "%v", e)
	}
	return i
}

func (l *List[E]) Contains(e E) bool {
	_, ok := l.find(e)
	return ok
}

func (l *List[E]) find(e E) (int, bool) {
	lk := e.link()
	n, ok := lk.leaf.(*node[E])
	if !ok || lk.slot >= len(n.elems) || n.elems[lk.slot] != e {
		return -1, false
	}
	i := lk.slot
	for ; n.parent != nil; n = n.parent {
		for _, sib := range n.parent.children[:n.slot] {
			i += sib.count
		}
	}
	return i, n == l.root
}

// Clear empties the list, clearing the link of every element.
func (l *List[E]) Clear() {
	for _, e := range l.All() {
		*e.link() = Link{}
	}
	l.root = &node[E]{leaf: true}
}

func (l *List[E]) split(n *node[E]) {
	for ; n != nil && n.size() > l.order; n = n.parent {
		half := n.size() / 2
		total := n.count
		right := &node[E]{leaf: n.leaf}
		if n.leaf {
			right.elems = append([]E(nil), n.elems[half:]...)
			clear(n.elems[half:])
			n.elems = n.elems[:half]
		} else {
			right.children = append([]*node[E](nil), n.children[half:]...)
			clear(n.children[half:])
			n.children = n.children[:half]
		}
		right.relink(0)
		right.recount()
		n.count = total - right.count
		if n.parent == nil {
			l.root = &node[E]{count: total, children: []*node[E]{n}}
			n.parent, n.slot = l.root, 0
		}
		p := n.parent
		p.children = slices.Insert(p.children, n.slot+1, right)
		p.relink(n.slot + 1)
	}
}

func (l *List[E]) rebalance(n *node[E]) {
	least := l.minFill()
	for n != l.root && n.size() < least {
		p := n.parent
		var left, right *node[E]
		if n.slot > 0 {
			left = p.children[n.slot-1]
		}
		if n.slot+1 < len(p.children) {
			right = p.children[n.slot+1]
		}
		switch {
		case left != nil && left.size() > least:
			moveEntry(left, left.size()-1, n, 0)
			return
		case right != nil && right.size() > least:
			moveEntry(right, 0, n, n.size())
			return
		case left != nil:
			merge(left, n)
		default:
			merge(n, right)
		}
		n = p
	}
	for !l.root.leaf && len(l.root.children) == 1 {
		l.root = l.root.children[0]
		l.root.parent, l.root.slot = nil, 0
	}
}

// moveEntry moves entry k of src to position at of dst, a sibling.
func moveEntry[E Element](src *node[E], k int, dst *node[E], at int) {
	w := 1
	if src.leaf {
		e := src.elems[k]
		src.elems = slices.Delete(src.elems, k, k+1)
		dst.elems = slices.Insert(dst.elems, at, e)
	} else {
		c := src.children[k]
		w = c.count
		src.children = slices.Delete(src.children, k, k+1)
		dst.children = slices.Insert(dst.children, at, c)
	}
	src.count -= w
	dst.count += w
	src.relink(k)
	dst.relink(at)
}

// merge moves everything of right into left, its left sibling, and drops right.
func merge[E Element](left, right *node[E]) {
	k := left.size()
	if left.leaf {
		left.elems = append(left.elems, right.elems...)
	} else {
		left.children = append(left.children, right.children...)
	}
	left.count += right.count
	left.relink(k)
	p := right.parent
	p.children = slices.Delete(p.children, right.slot, right.slot+1)
	p.relink(right.slot)
	*right = node[E]{}
}
