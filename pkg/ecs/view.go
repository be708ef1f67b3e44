package ecs

// Views iterate every live entity holding all of the listed component types,
// passing pointers so the callback can mutate components in place. The first
// callback error aborts the pass. Iterating a component type that was never
// registered fails with ErrComponentNotRegistered rather than visiting
// nothing.

func Each[A any](w *World, fn func(entity Entity, a *A) error) error {
	colA, err := w.registeredColumn(typeOf[A]())
	if err != nil {
		return err
	}

	for index := 0; index < w.allocator.capacity(); index++ {
		entity, ok := w.allocator.handleAt(uint32(index))
		if !ok {
			continue
		}
		va, ok := colA.get(entity)
		if !ok {
			continue
		}
		if err := fn(entity, va.(*A)); err != nil {
			return err
		}
	}

	return nil
}

func Each2[A, B any](w *World, fn func(entity Entity, a *A, b *B) error) error {
	colA, err := w.registeredColumn(typeOf[A]())
	if err != nil {
		return err
	}
	colB, err := w.registeredColumn(typeOf[B]())
	if err != nil {
		return err
	}

	for index := 0; index < w.allocator.capacity(); index++ {
		entity, ok := w.allocator.handleAt(uint32(index))
		if !ok {
			continue
		}
		va, ok := colA.get(entity)
		if !ok {
			continue
		}
		vb, ok := colB.get(entity)
		if !ok {
			continue
		}
		if err := fn(entity, va.(*A), vb.(*B)); err != nil {
			return err
		}
	}

	return nil
}

func Each3[A, B, C any](w *World, fn func(entity Entity, a *A, b *B, c *C) error) error {
	colA, err := w.registeredColumn(typeOf[A]())
	if err != nil {
		return err
	}
	colB, err := w.registeredColumn(typeOf[B]())
	if err != nil {
		return err
	}
	colC, err := w.registeredColumn(typeOf[C]())
	if err != nil {
		return err
	}

	for index := 0; index < w.allocator.capacity(); index++ {
		entity, ok := w.allocator.handleAt(uint32(index))
		if !ok {
			continue
		}
		va, ok := colA.get(entity)
		if !ok {
			continue
		}
		vb, ok := colB.get(entity)
		if !ok {
			continue
		}
		vc, ok := colC.get(entity)
		if !ok {
			continue
		}
		if err := fn(entity, va.(*A), vb.(*B), vc.(*C)); err != nil {
			return err
		}
	}

	return nil
}
