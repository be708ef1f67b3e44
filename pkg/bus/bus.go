// Package bus is a typed in-process event bus. Events travel as
// (topic, payload) envelopes over named channels; publishers bind to one
// channel and subscribers poll one or more of them.
package bus

import (
	"sync"

	"github.com/pkg/errors"
)

// Envelope pairs a topic with its payload.
type Envelope[T any] struct {
	Topic   string
	Payload T
}

const defaultBuffer = 64

// Bus is a registry of named channels carrying envelopes of T. All methods
// are safe for concurrent use.
type Bus[T any] struct {
	mu       sync.RWMutex
	channels map[string]chan Envelope[T]
	buffer   int
}

type Option[T any] func(*Bus[T])

// WithBuffer sets the capacity of channels created by AddChannel.
func WithBuffer[T any](size int) Option[T] {
	return func(b *Bus[T]) {
		b.buffer = size
	}
}

func New[T any](opts ...Option[T]) *Bus[T] {
	b := &Bus[T]{
		channels: make(map[string]chan Envelope[T]),
		buffer:   defaultBuffer,
	}
	for _, opt := range opts {
		opt(b)
	}

	return b
}

func (b *Bus[T]) AddChannel(name string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.channels[name]; ok {
		return errors.Wrap(ErrChannelExists, name)
	}
	b.channels[name] = make(chan Envelope[T], b.buffer)

	return nil
}

// RemoveChannel drops the channel from the registry. The channel is not
// closed: publishers holding it fail on their next lookup instead of
// panicking on a closed send.
func (b *Bus[T]) RemoveChannel(name string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.channels[name]; !ok {
		return errors.Wrap(ErrChannelNotFound, name)
	}
	delete(b.channels, name)

	return nil
}

func (b *Bus[T]) channel(name string) (chan Envelope[T], bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	ch, ok := b.channels[name]

	return ch, ok
}
