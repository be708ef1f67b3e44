package bus

import (
	"context"
	"sync/atomic"

	"github.com/pkg/errors"
)

// Subscriber reads envelopes from one or more named channels of a bus.
type Subscriber[T any] struct {
	bus      *Bus[T]
	channels []string
	cursor   atomic.Uint64
}

func NewSubscriber[T any](b *Bus[T], channels ...string) *Subscriber[T] {
	return &Subscriber[T]{
		bus:      b,
		channels: channels,
	}
}

// Subscribe returns the receive side of every subscribed channel, failing if
// any of them has been removed.
func (s *Subscriber[T]) Subscribe() ([]<-chan Envelope[T], error) {
	receivers := make([]<-chan Envelope[T], len(s.channels))
	for i, name := range s.channels {
		ch, ok := s.bus.channel(name)
		if !ok {
			return nil, errors.Wrap(ErrChannelNotFound, name)
		}
		receivers[i] = ch
	}

	return receivers, nil
}

// TryNext polls a single channel and reports whether an envelope was ready.
// The cursor advances on every call, empty or not, so repeated calls spread
// attention across all subscribed channels instead of draining the first one.
func (s *Subscriber[T]) TryNext() (Envelope[T], bool) {
	var zero Envelope[T]
	if len(s.channels) == 0 {
		return zero, false
	}

	index := s.cursor.Add(1) - 1
	name := s.channels[index%uint64(len(s.channels))]
	ch, ok := s.bus.channel(name)
	if !ok {
		return zero, false
	}

	select {
	case env := <-ch:
		return env, true
	default:
		return zero, false
	}
}

// Next blocks on the channel under the cursor until an envelope arrives or
// ctx is done.
func (s *Subscriber[T]) Next(ctx context.Context) (Envelope[T], error) {
	var zero Envelope[T]
	if len(s.channels) == 0 {
		return zero, errors.Wrap(ErrChannelNotFound, "subscriber has no channels")
	}

	index := s.cursor.Add(1) - 1
	name := s.channels[index%uint64(len(s.channels))]
	ch, ok := s.bus.channel(name)
	if !ok {
		return zero, errors.Wrap(ErrChannelNotFound, name)
	}

	select {
	case <-ctx.Done():
		return zero, errors.Wrap(ctx.Err(), name)
	case env := <-ch:
		return env, nil
	}
}
