package indexlist

import (
	"github.com/drpcorg/ripple/ripple_errors"
)

// Check verifies the tree: cached counts, fill bounds, parent and back-links,
// and equal leaf depth. It returns the first violation found.
func (l *List[E]) Check() error {
	if l.root.parent != nil {
		return ripple_errors.Corrupt(ripple_errors.ErrCorruptTree, "root has a parent")
	}
	if !l.root.leaf && len(l.root.children) < 2 {
		return ripple_errors.Corrupt(ripple_errors.ErrCorruptTree, "internal root with %d children", len(l.root.children))
	}
	leafDepth := -1
	return l.check(l.root, 0, &leafDepth)
}

func (l *List[E]) check(n *node[E], depth int, leafDepth *int) error {
	size := n.size()
	if size > l.order {
		return ripple_errors.Corrupt(ripple_errors.ErrCorruptTree, "node of %d entries, order %d", size, l.order)
	}
	if n != l.root && size < l.minFill() {
		return ripple_errors.Corrupt(ripple_errors.ErrCorruptTree, "node of %d entries, at least %d expected", size, l.minFill())
	}
	if n.leaf {
		if *leafDepth < 0 {
			*leafDepth = depth
		} else if *leafDepth != depth {
			return ripple_errors.Corrupt(ripple_errors.ErrCorruptTree, "leaves at depths %d and %d", *leafDepth, depth)
		}
		if n.count != len(n.elems) {
			return ripple_errors.Corrupt(ripple_errors.ErrCorruptTree, "leaf counts %d, holds %d", n.count, len(n.elems))
		}
		for k, e := range n.elems {
			if lk := e.link(); lk.leaf != any(n) || lk.slot != k {
				return ripple_errors.Corrupt(ripple_errors.ErrCorruptTree, "stale back-link of %v at slot %d", e, k)
			}
		}
		return nil
	}
	count := 0
	for k, c := range n.children {
		if c.parent != n || c.slot != k {
			return ripple_errors.Corrupt(ripple_errors.ErrCorruptTree, "stale parent link at slot %d", k)
		}
		if err := l.check(c, depth+1, leafDepth); err != nil {
			return err
		}
		count += c.count
	}
	if n.count != count {
		return ripple_errors.Corrupt(ripple_errors.ErrCorruptTree, "node counts %d, children hold %d", n.count, count)
	}
	return nil
}
