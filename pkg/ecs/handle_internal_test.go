package ecs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllocatorReuse(t *testing.T) {
	t.Parallel()

	var a Allocator
	first := a.Allocate()
	second := a.Allocate()
	require.NotEqual(t, first.Index, second.Index)

	a.Deallocate(first)
	assert.False(t, a.IsLive(first))

	reused := a.Allocate()
	assert.Equal(t, first.Index, reused.Index)
	assert.Equal(t, first.Generation+1, reused.Generation)
	assert.True(t, a.IsLive(reused))
	assert.False(t, a.IsLive(first))
}

func TestAllocatorDoubleFree(t *testing.T) {
	t.Parallel()

	var a Allocator
	h := a.Allocate()
	a.Deallocate(h)
	a.Deallocate(h) // stale, ignored

	reused := a.Allocate()
	assert.Equal(t, h.Index, reused.Index)
	assert.Equal(t, 1, a.capacity())
}

func TestAllocatorHandleAt(t *testing.T) {
	t.Parallel()

	var a Allocator
	h := a.Allocate()

	got, ok := a.handleAt(h.Index)
	require.True(t, ok)
	assert.Equal(t, h, got)

	a.Deallocate(h)
	_, ok = a.handleAt(h.Index)
	assert.False(t, ok)

	_, ok = a.handleAt(42)
	assert.False(t, ok)
}
