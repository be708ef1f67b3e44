package bus

import (
	"context"

	"github.com/pkg/errors"
)

// Publisher sends envelopes on one named channel of a bus.
type Publisher[T any] struct {
	bus     *Bus[T]
	channel string
}

func NewPublisher[T any](b *Bus[T], channel string) *Publisher[T] {
	return &Publisher[T]{
		bus:     b,
		channel: channel,
	}
}

// Publish blocks until the envelope is accepted or ctx is done. The channel
// is looked up per call, so publishing after RemoveChannel fails with
// ErrChannelNotFound.
func (p *Publisher[T]) Publish(ctx context.Context, topic string, payload T) error {
	ch, ok := p.bus.channel(p.channel)
	if !ok {
		return errors.Wrap(ErrChannelNotFound, p.channel)
	}

	select {
	case <-ctx.Done():
		return errors.Wrap(ctx.Err(), p.channel)
	case ch <- Envelope[T]{Topic: topic, Payload: payload}:
		return nil
	}
}

// TryPublish sends without blocking and reports whether the envelope was
// accepted. Meant for callers that would rather drop an event than stall,
// like a render loop.
func (p *Publisher[T]) TryPublish(topic string, payload T) bool {
	ch, ok := p.bus.channel(p.channel)
	if !ok {
		return false
	}

	select {
	case ch <- Envelope[T]{Topic: topic, Payload: payload}:
		return true
	default:
		return false
	}
}
