package utils

// Queue is a single-goroutine FIFO backed by a ring buffer.
// The zero value is an empty queue ready to use.
type Queue[T any] struct {
	buf  []T
	head int
	size int
}

func (q *Queue[T]) Len() int {
	return q.size
}

// Push appends x at the tail, growing the ring when full.
func (q *Queue[T]) Push(x T) {
	if q.size == len(q.buf) {
		q.grow()
	}
	q.buf[(q.head+q.size)%len(q.buf)] = x
	q.size++
}

// Pop removes and returns the head element. Pop on an empty queue panics.
func (q *Queue[T]) Pop() (x T) {
	if q.size == 0 {
		panic("utils: pop from an empty queue")
	}
	var zero T
	x = q.buf[q.head]
	q.buf[q.head] = zero
	q.head = (q.head + 1) % len(q.buf)
	q.size--
	if q.size == 0 {
		q.head = 0
	}
	return
}

// Clear drops every queued element, keeping the buffer.
func (q *Queue[T]) Clear() {
	clear(q.buf)
	q.head = 0
	q.size = 0
}

func (q *Queue[T]) grow() {
	n := 2 * len(q.buf)
	if n < 8 {
		n = 8
	}
	buf := make([]T, n)
	k := copy(buf, q.buf[q.head:])
	copy(buf[k:], q.buf[:q.head])
	q.buf = buf
	q.head = 0
}
