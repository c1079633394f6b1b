package broadcast

import (
	"slices"

	"github.com/drpcorg/ripple/ripple_errors"
)

type subState uint8

const (
	connected subState = iota
	disconnecting
	disconnected
)

// Subscription is the consumer end of a Source. Disconnecting it stops
// deliveries and runs its callbacks; it is monotonic and idempotent.
//
// The source a Subscription came from keeps it connected until Disconnect is
// called, whether or not the caller holds on to the handle.
type Subscription struct {
	state     subState
	detach    func()
	callbacks []func()
	signal    *signal
}

// signal backs DisconnectSource. It holds the sinks to notify and nothing
// else, so a disconnect source never keeps its subscription reachable.
type signal struct {
	fired bool
	sinks []*Sink[struct{}]
}

// NewSubscription makes a connected subscription; detach, if not nil, runs
// once on Disconnect before any callback.
func NewSubscription(detach func()) *Subscription {
	return &Subscription{detach: detach, signal: &signal{}}
}

func disconnectedSubscription() *Subscription {
	return &Subscription{state: disconnected, signal: &signal{fired: true}}
}

func (s *Subscription) IsConnected() bool {
	return s.state == connected
}

// Disconnect detaches the subscription and runs every callback once, in
// registration order. Calling it again is a no-op; calling it from one of
// its own callbacks panics with ErrReentrantCancel.
func (s *Subscription) Disconnect() {
	switch s.state {
	case disconnected:
		return
	case disconnecting:
		ripple_errors.Fail(ripple_errors.ErrReentrantCancel, "subscription is already disconnecting")
	}
	s.state = disconnecting
	DisconnectCount.Inc()
	if detach := s.detach; detach != nil {
		s.detach = nil
		detach()
	}
	for len(s.callbacks) > 0 {
		cb := s.callbacks[0]
		s.callbacks = s.callbacks[1:]
		cb()
	}
	s.callbacks = nil
	s.state = disconnected
	s.signal.fire()
}

// AddCallback registers f to run on Disconnect. On a subscription that is
// already disconnected f runs right away.
func (s *Subscription) AddCallback(f func()) {
	if s.state == disconnected {
		f()
		return
	}
	s.callbacks = append(s.callbacks, f)
}

// DisconnectSource fires once, after s is disconnected and its callbacks ran.
// Sinks connected after that are called immediately. The source does not
// keep s alive.
func (s *Subscription) DisconnectSource() Source[struct{}] {
	return SourceFunc[struct{}](s.signal.connect)
}

func (g *signal) connect(sink Sink[struct{}]) *Subscription {
	if g.fired {
		sink(struct{}{})
		return disconnectedSubscription()
	}
	p := &sink
	g.sinks = append(g.sinks, p)
	return NewSubscription(func() {
		g.sinks = slices.DeleteFunc(g.sinks, func(q *Sink[struct{}]) bool { return q == p })
	})
}

func (g *signal) fire() {
	if g.fired {
		return
	}
	g.fired = true
	sinks := g.sinks
	g.sinks = nil
	for _, sink := range sinks {
		(*sink)(struct{}{})
	}
}
