package ecs

// Resources are singletons shared between systems, keyed by their Go type.
// Setting a resource replaces any previous value of the same type.

func SetResource[T any](w *World, value T) {
	w.resources[typeOf[T]()] = &value
}

// Resource returns a pointer to the stored T singleton, if present.
func Resource[T any](w *World) (*T, bool) {
	value, ok := w.resources[typeOf[T]()]
	if !ok {
		return nil, false
	}

	return value.(*T), true
}

func RemoveResource[T any](w *World) {
	delete(w.resources, typeOf[T]())
}
