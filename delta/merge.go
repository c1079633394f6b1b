package delta

import (
	"github.com/drpcorg/ripple/ripple_errors"
)

// Merge composes a with b, a change of the collection a leaves behind, into a
// change against a's initial state. The result is canonical: touching edits
// are coalesced and edits that change nothing are dropped.
//
// Both batches are consumed in one left-to-right sweep; every step retires at
// least one modification of a or b.
func Merge[T any](a, b ChangeSet[T]) ChangeSet[T] {
	ripple_errors.Check(a.FinalCount() == b.initialCount, ripple_errors.ErrCountMismatch,
		"merging a change to %d elements with a change of %d", a.FinalCount(), b.initialCount)
	s := sweep[T]{pending: a.mods}
	for _, m := range b.mods {
		s.add(m)
	}
	s.flush()
	return ChangeSet[T]{initialCount: a.initialCount, mods: s.out}
}

// sweep holds the merge state. Three kinds of edits live in original
// coordinates: finished ones in out, at most one open edit cur that b may
// still touch, and the untouched rest of a in pending. "Live" coordinates are
// those of the collection after a and the b edits added so far.
type sweep[T any] struct {
	out      []Modification[T]
	outDelta int
	cur      Modification[T]
	hasCur   bool
	pending  []Modification[T]
	bDelta   int
}

func (s *sweep[T]) add(next Modification[T]) {
	next = next.shifted(s.bDelta)
	s.bDelta += next.DeltaCount()
	for {
		if !s.hasCur {
			if len(s.pending) == 0 {
				s.emit(next.shifted(-s.outDelta))
				return
			}
			s.cur, s.hasCur = s.pending[0], true
			s.pending = s.pending[1:]
		}
		switch classify(s.cur.shifted(s.outDelta), next) {
		case DisjointBefore:
			s.emit(next.shifted(-s.outDelta))
			return
		case DisjointAfter:
			s.finish()
			continue
		}
		s.absorb(next)
		o := s.cur.shifted(s.outDelta).Merged(next)
		switch o.Kind {
		case CollapsedToNothing:
			s.hasCur = false
		case CollapsedTo:
			s.cur = o.Modification.shifted(-s.outDelta)
		default:
			ripple_errors.Fail(ripple_errors.ErrCorruptChange, "%v against %v gave %v", next, s.cur, o.Kind)
		}
		return
	}
}

// absorb widens cur over every pending edit whose output next reaches, so that
// next overlaps a single edit. The untouched gaps in between are read off
// next.Removed, which spans them.
func (s *sweep[T]) absorb(next Modification[T]) {
	_, nend := next.InputRange()
	for len(s.pending) > 0 {
		p := s.pending[0]
		pstart := p.Index + s.outDelta + s.cur.DeltaCount()
		if nend <= pstart {
			return
		}
		_, curEnd := s.cur.shifted(s.outDelta).OutputRange()
		gap := next.Removed[curEnd-next.Index : pstart-next.Index]
		s.cur = Modification[T]{
			Index:    s.cur.Index,
			Removed:  concat(s.cur.Removed, gap, p.Removed),
			Inserted: concat(s.cur.Inserted, gap, p.Inserted),
		}
		s.pending = s.pending[1:]
	}
}

func (s *sweep[T]) finish() {
	s.emit(s.cur)
	s.cur, s.hasCur = Modification[T]{}, false
}

func (s *sweep[T]) flush() {
	if s.hasCur {
		s.finish()
	}
	for _, p := range s.pending {
		s.emit(p)
	}
	s.pending = nil
}

// emit appends a finished edit, coalescing it with the previous one when
// their original ranges touch.
func (s *sweep[T]) emit(m Modification[T]) {
	s.outDelta += m.DeltaCount()
	if n := len(s.out); n > 0 {
		last := s.out[n-1]
		_, end := last.InputRange()
		ripple_errors.Check(m.Index >= end, ripple_errors.ErrCorruptChange,
			"%v emitted after %v", m, last)
		if m.Index == end {
			m = Modification[T]{
				Index:    last.Index,
				Removed:  concat(last.Removed, m.Removed),
				Inserted: concat(last.Inserted, m.Inserted),
			}
			s.out = s.out[:n-1]
		}
	}
	if m.IsIdentity() {
		return
	}
	s.out = append(s.out, m)
}
