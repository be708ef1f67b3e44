package ecs

// column stores every instance of one component type, indexed by handle
// index. Each slot is stamped with the generation that wrote it: components
// left behind by a removed entity stay in place but are invisible to handles
// of any other generation, and are overwritten when the index is reused.
type column struct {
	slots []slot
}

type slot struct {
	value      any // always a pointer to the component value
	generation uint32
	live       bool
}

func (c *column) set(h Handle, value any) {
	if int(h.Index) >= len(c.slots) {
		grown := make([]slot, h.Index+1)
		copy(grown, c.slots)
		c.slots = grown
	}
	c.slots[h.Index] = slot{value: value, generation: h.Generation, live: true}
}

func (c *column) get(h Handle) (any, bool) {
	if int(h.Index) >= len(c.slots) {
		return nil, false
	}
	s := c.slots[h.Index]
	if !s.live || s.generation != h.Generation {
		return nil, false
	}

	return s.value, true
}

func (c *column) clear(h Handle) {
	if int(h.Index) >= len(c.slots) {
		return
	}
	if s := &c.slots[h.Index]; s.live && s.generation == h.Generation {
		*s = slot{}
	}
}
