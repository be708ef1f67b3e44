package ecs

// Handle addresses a slot in a generational arena. Two handles with the same
// index but different generations belong to different lifetimes of that slot,
// so a handle kept across a deallocation goes stale instead of aliasing the
// slot's next occupant.
type Handle struct {
	Index      uint32
	Generation uint32
}

// Entity is a handle issued by a world.
type Entity = Handle

// Allocator issues handles and recycles freed indices. Reusing an index bumps
// its generation, which is what invalidates stale handles.
type Allocator struct {
	generations []uint32
	live        []bool
	free        []uint32
}

func (a *Allocator) Allocate() Handle {
	if n := len(a.free); n > 0 {
		index := a.free[n-1]
		a.free = a.free[:n-1]
		a.generations[index]++
		a.live[index] = true

		return Handle{Index: index, Generation: a.generations[index]}
	}

	index := uint32(len(a.generations))
	a.generations = append(a.generations, 0)
	a.live = append(a.live, true)

	return Handle{Index: index}
}

// Deallocate releases the slot behind h. Stale and unknown handles are
// ignored, so double frees are harmless.
func (a *Allocator) Deallocate(h Handle) {
	if !a.IsLive(h) {
		return
	}
	a.live[h.Index] = false
	a.free = append(a.free, h.Index)
}

func (a *Allocator) IsLive(h Handle) bool {
	if int(h.Index) >= len(a.generations) {
		return false
	}

	return a.live[h.Index] && a.generations[h.Index] == h.Generation
}

// handleAt rebuilds the live handle for an index, if the index is allocated.
func (a *Allocator) handleAt(index uint32) (Handle, bool) {
	if int(index) >= len(a.generations) || !a.live[index] {
		return Handle{}, false
	}

	return Handle{Index: index, Generation: a.generations[index]}, true
}

func (a *Allocator) capacity() int {
	return len(a.generations)
}
