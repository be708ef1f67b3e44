package ecs

import (
	"reflect"

	"github.com/pkg/errors"
)

// World owns the entity allocator, one component column per type, and the
// shared resource map. A World is not safe for concurrent mutation; the
// Schedule runs systems one at a time for that reason.
type World struct {
	allocator Allocator
	columns   map[reflect.Type]*column
	resources map[reflect.Type]any
}

func NewWorld() *World {
	return &World{
		columns:   make(map[reflect.Type]*column),
		resources: make(map[reflect.Type]any),
	}
}

func (w *World) CreateEntity() Entity {
	return w.allocator.Allocate()
}

func (w *World) CreateEntities(count int) []Entity {
	entities := make([]Entity, count)
	for i := range entities {
		entities[i] = w.allocator.Allocate()
	}

	return entities
}

// RemoveEntity releases the entity. Its components become unreachable
// immediately; their slots are reclaimed when the index is reused.
func (w *World) RemoveEntity(entity Entity) {
	w.allocator.Deallocate(entity)
}

func (w *World) RemoveEntities(entities []Entity) {
	for _, entity := range entities {
		w.allocator.Deallocate(entity)
	}
}

func (w *World) EntityExists(entity Entity) bool {
	return w.allocator.IsLive(entity)
}

func (w *World) ensureColumn(t reflect.Type) *column {
	col, ok := w.columns[t]
	if !ok {
		col = &column{}
		w.columns[t] = col
	}

	return col
}

func (w *World) registeredColumn(t reflect.Type) (*column, error) {
	col, ok := w.columns[t]
	if !ok {
		return nil, errors.Wrap(ErrComponentNotRegistered, t.String())
	}

	return col, nil
}

func typeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// Register ensures a column for T exists without attaching any component.
// Adding a component registers its type implicitly; Register only matters
// when a view may run before the first Add.
func Register[T any](w *World) {
	w.ensureColumn(typeOf[T]())
}

// Registered reports whether a column for T exists.
func Registered[T any](w *World) bool {
	_, ok := w.columns[typeOf[T]()]

	return ok
}

// Add attaches value to entity as its T component, replacing any previous T.
func Add[T any](w *World, entity Entity, value T) error {
	if !w.allocator.IsLive(entity) {
		return errors.Wrapf(ErrHandleNotFound, "add %s", typeOf[T]())
	}
	w.ensureColumn(typeOf[T]()).set(entity, &value)

	return nil
}

// Remove detaches the T component from entity. Removing a component the
// entity does not have is not an error.
func Remove[T any](w *World, entity Entity) error {
	if !w.allocator.IsLive(entity) {
		return errors.Wrapf(ErrHandleNotFound, "remove %s", typeOf[T]())
	}
	if col, ok := w.columns[typeOf[T]()]; ok {
		col.clear(entity)
	}

	return nil
}

// Get returns a pointer to entity's T component so callers can mutate it in
// place. It returns false for dead handles, unregistered types, and entities
// without a T component.
func Get[T any](w *World, entity Entity) (*T, bool) {
	if !w.allocator.IsLive(entity) {
		return nil, false
	}
	col, ok := w.columns[typeOf[T]()]
	if !ok {
		return nil, false
	}
	value, ok := col.get(entity)
	if !ok {
		return nil, false
	}

	return value.(*T), true
}

func Has[T any](w *World, entity Entity) bool {
	_, ok := Get[T](w, entity)

	return ok
}
