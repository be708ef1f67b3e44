package ecs

import (
	"context"
	"time"

	"github.com/dominikbraun/graph"
	"github.com/pkg/errors"

	"github.com/glasskit/glasskit/pkg/profile"
)

// System mutates the world once per schedule run.
type System func(ctx context.Context, w *World) error

// Schedule runs named systems in dependency order. Dependencies are declared
// with After; the order is a stable topological sort of the resulting DAG,
// recomputed after registrations change.
type Schedule struct {
	entries []systemEntry
	systems map[string]System
	order   []string
	dirty   bool
	measure profile.Measure
}

type systemEntry struct {
	name  string
	after []string
}

type ScheduleOption func(*Schedule)

// ScheduleMeasure records per-system run durations on m.
func ScheduleMeasure(m profile.Measure) ScheduleOption {
	return func(s *Schedule) {
		s.measure = m
	}
}

type SystemOption func(*systemEntry)

// After orders the system being registered behind the named systems.
func After(names ...string) SystemOption {
	return func(e *systemEntry) {
		e.after = append(e.after, names...)
	}
}

func NewSchedule(opts ...ScheduleOption) *Schedule {
	s := &Schedule{
		systems: make(map[string]System),
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

func (s *Schedule) AddSystem(name string, system System, opts ...SystemOption) error {
	if system == nil {
		return errors.Wrap(ErrSystemMustBeSet, name)
	}
	if _, ok := s.systems[name]; ok {
		return errors.Wrap(ErrSystemExists, name)
	}

	entry := systemEntry{name: name}
	for _, opt := range opts {
		opt(&entry)
	}

	s.entries = append(s.entries, entry)
	s.systems[name] = system
	s.dirty = true

	if s.measure != nil {
		s.measure.AddMetric(name)
	}

	return nil
}

// Systems returns the registered system names in registration order.
func (s *Schedule) Systems() []string {
	names := make([]string, len(s.entries))
	for i, entry := range s.entries {
		names[i] = entry.name
	}

	return names
}

// Run executes every system once, in dependency order. It stops on the first
// system error, wrapped with the system name, and checks ctx between systems.
func (s *Schedule) Run(ctx context.Context, w *World) error {
	order, err := s.runOrder()
	if err != nil {
		return err
	}

	for _, name := range order {
		select {
		case <-ctx.Done():
			return errors.Wrap(ctx.Err(), "schedule interrupted")
		default:
		}

		start := time.Now()
		if err := s.systems[name](ctx, w); err != nil {
			return errors.Wrap(err, name)
		}
		if s.measure != nil {
			if mt := s.measure.GetMetric(name); mt != nil {
				mt.AddDuration(time.Since(start))
			}
		}
	}

	return nil
}

// runOrder rebuilds the dependency graph when registrations changed. Building
// it lazily lets systems declare dependencies in any registration order.
func (s *Schedule) runOrder() ([]string, error) {
	if !s.dirty {
		return s.order, nil
	}

	g := graph.New(graph.StringHash, graph.Directed(), graph.PreventCycles())
	for _, entry := range s.entries {
		if err := g.AddVertex(entry.name); err != nil {
			return nil, errors.Wrapf(err, "unable to add system %s", entry.name)
		}
	}

	for _, entry := range s.entries {
		for _, dep := range entry.after {
			if _, ok := s.systems[dep]; !ok {
				return nil, errors.Wrapf(ErrSystemNotFound, "%s runs after %s", entry.name, dep)
			}
			err := g.AddEdge(dep, entry.name)
			switch {
			case err == nil:
			case errors.Is(err, graph.ErrEdgeCreatesCycle):
				return nil, errors.Wrapf(ErrScheduleCycle, "%s -> %s", dep, entry.name)
			case errors.Is(err, graph.ErrEdgeAlreadyExists):
			default:
				return nil, errors.Wrapf(err, "unable to order %s after %s", entry.name, dep)
			}
		}
	}

	order, err := graph.StableTopologicalSort(g, func(a, b string) bool { return a < b })
	if err != nil {
		return nil, errors.Wrap(err, "unable to sort systems")
	}

	s.order = order
	s.dirty = false

	return order, nil
}
