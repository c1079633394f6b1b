package broadcast

import (
	"fmt"
	"strings"
	"testing"

	"github.com/drpcorg/ripple/ripple_errors"
	"github.com/stretchr/testify/assert"
)

func panicsWith(t *testing.T, target error, f func()) {
	t.Helper()
	defer func() {
		r := recover()
		err, ok := r.(error)
		if assert.True(t, ok, "expected a panic with an error, got %v", r) {
			assert.ErrorIs(t, err, target)
		}
	}()
	f()
}

func TestBroadcaster_ReentrantSendIsSerialized(t *testing.T) {
	var b Broadcaster[int]
	trace := strings.Builder{}
	s := b.Connect(func(i int) {
		trace.WriteString(fmt.Sprintf("(%d", i))
		if i > 0 {
			b.Send(i - 1)
		}
		trace.WriteString(")")
	})
	b.Send(3)
	s.Disconnect()
	assert.Equal(t, "(3)(2)(1)(0)", trace.String())
}

func TestBroadcaster_EverySubscriberSeesEveryValueInOrder(t *testing.T) {
	var b Broadcaster[int]
	var log []string
	sa := b.Connect(func(i int) {
		log = append(log, fmt.Sprintf("a%d", i))
		if i == 1 {
			b.SendAll(10, 11)
		}
	})
	sb := b.Connect(func(i int) {
		log = append(log, fmt.Sprintf("b%d", i))
		if i == 1 {
			b.Send(20)
		}
	})
	b.Send(1)
	sa.Disconnect()
	sb.Disconnect()
	assert.Equal(t, []string{"a1", "b1", "a10", "b10", "a11", "b11", "a20", "b20"}, log)
	assert.False(t, b.IsConnected())
}

func TestBroadcaster_ConnectDuringRound(t *testing.T) {
	var b Broadcaster[int]
	var late []int
	var subs []*Subscription
	subs = append(subs, b.Connect(func(i int) {
		if len(subs) == 1 {
			subs = append(subs, b.Connect(func(i int) { late = append(late, i) }))
			b.Send(2)
		}
	}))
	b.Send(1)
	assert.Equal(t, []int{2}, late)
	assert.Equal(t, 2, b.Len())
	for _, s := range subs {
		s.Disconnect()
	}
	assert.Equal(t, 0, b.Len())
}

func TestBroadcaster_DisconnectDuringRound(t *testing.T) {
	var b Broadcaster[int]
	var got []string
	var first, second *Subscription
	first = b.Connect(func(i int) {
		got = append(got, fmt.Sprintf("first%d", i))
		first.Disconnect()
		second.Disconnect()
	})
	second = b.Connect(func(i int) { got = append(got, fmt.Sprintf("second%d", i)) })
	third := b.Connect(func(i int) { got = append(got, fmt.Sprintf("third%d", i)) })
	b.Send(1)
	b.Send(2)
	assert.Equal(t, []string{"first1", "third1", "third2"}, got)
	assert.False(t, first.IsConnected())
	assert.True(t, third.IsConnected())
	assert.Equal(t, 1, b.Len())
}

func TestBroadcaster_PanicResetsRound(t *testing.T) {
	var b Broadcaster[int]
	var got []int
	s := b.Connect(func(i int) {
		got = append(got, i)
		if i == 1 {
			b.Send(5)
			panic("boom")
		}
	})
	assert.Panics(t, func() { b.Send(1) })
	b.Send(2)
	s.Disconnect()
	assert.Equal(t, []int{1, 2}, got)
}

func TestMapSource(t *testing.T) {
	var b Broadcaster[int]
	var got []string
	s := MapSource[int, string](&b, func(i int) string { return fmt.Sprint(i * 2) }).
		Connect(func(v string) { got = append(got, v) })
	b.SendAll(1, 2)
	s.Disconnect()
	b.Send(3)
	assert.Equal(t, []string{"2", "4"}, got)
	assert.False(t, b.IsConnected())
}

func TestSubscription_ReentrantDisconnect(t *testing.T) {
	var b Broadcaster[int]
	s := b.Connect(func(int) {})
	s.AddCallback(func() { s.Disconnect() })
	panicsWith(t, ripple_errors.ErrReentrantCancel, s.Disconnect)
}
