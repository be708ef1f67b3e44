package bus

import (
	"context"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// Sink observes every envelope drained by a dispatcher, before the handler
// runs. Nil sinks are skipped.
type Sink[T any] interface {
	OnEvent(env Envelope[T])
}

// Dispatcher drains one named channel into a handler using a pool of
// workers, broadcasting each envelope to its sinks on the way.
type Dispatcher[T any] struct {
	bus     *Bus[T]
	channel string
	workers int
	sinks   []Sink[T]
}

type DispatcherOption[T any] func(*Dispatcher[T])

// DispatcherWorkers sets the number of concurrent drain workers.
func DispatcherWorkers[T any](workers int) DispatcherOption[T] {
	return func(d *Dispatcher[T]) {
		d.workers = workers
	}
}

// DispatcherSinks attaches observers to the dispatcher.
func DispatcherSinks[T any](sinks ...Sink[T]) DispatcherOption[T] {
	return func(d *Dispatcher[T]) {
		d.sinks = append(d.sinks, sinks...)
	}
}

func NewDispatcher[T any](b *Bus[T], channel string, opts ...DispatcherOption[T]) *Dispatcher[T] {
	d := &Dispatcher[T]{
		bus:     b,
		channel: channel,
		workers: 1,
	}
	for _, opt := range opts {
		opt(d)
	}

	return d
}

// Run blocks, feeding envelopes to handler until ctx is done or the handler
// fails. All workers stop as soon as one of them returns an error.
func (d *Dispatcher[T]) Run(ctx context.Context, handler func(ctx context.Context, env Envelope[T]) error) error {
	ch, ok := d.bus.channel(d.channel)
	if !ok {
		return errors.Wrap(ErrChannelNotFound, d.channel)
	}

	workers := d.workers
	if workers < 1 {
		workers = 1
	}
	if workers == 1 {
		return d.drain(ctx, 1, ch, handler)
	}

	errGrp, dCtx := errgroup.WithContext(ctx)
	errGrp.SetLimit(workers)
	for goIdx := 0; goIdx < workers; goIdx++ {
		localGoIdx := goIdx
		errGrp.Go(func() error {
			return d.drain(dCtx, localGoIdx, ch, handler)
		})
	}

	return errGrp.Wait()
}

func (d *Dispatcher[T]) drain(ctx context.Context, goIdx int, ch <-chan Envelope[T], handler func(ctx context.Context, env Envelope[T]) error) error {
	for {
		select {
		case <-ctx.Done():
			return errors.Wrapf(ctx.Err(), "go routine %d:", goIdx)
		case env := <-ch:
			d.broadcast(env)
			if err := handler(ctx, env); err != nil {
				return errors.Wrapf(err, "go routine %d:", goIdx)
			}
		}
	}
}

func (d *Dispatcher[T]) broadcast(env Envelope[T]) {
	for _, sink := range d.sinks {
		if sink == nil {
			continue
		}
		sink.OnEvent(env)
	}
}
