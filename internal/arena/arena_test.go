// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package arena

import (
	"testing"

	"github.com/cockroachdb/aggtree/internal/invariants"
	"github.com/stretchr/testify/require"
)

type testNode struct {
	left, right Handle
	v           int64
}

func TestArenaAlloc(t *testing.T) {
	a := New[testNode](0, 4)
	require.Equal(t, uint32(0), a.Size())
	require.Equal(t, uint32(MaxNodes), a.Capacity())

	h1, err := a.Alloc()
	require.NoError(t, err)
	require.Equal(t, Handle(1), h1)
	h2, err := a.Alloc()
	require.NoError(t, err)
	require.Equal(t, Handle(2), h2)

	a.Get(h1).v = 7
	a.Get(h2).left = h1
	require.Equal(t, int64(7), a.Get(a.Get(h2).left).v)
	require.Equal(t, uint32(2), a.Size())
	require.Equal(t, "n2", h2.String())
	require.Equal(t, "nil", Nil.String())
}

// TestArenaFull tests that allocations past the configured limit fail
// without changing the arena's accounting.
func TestArenaFull(t *testing.T) {
	a := New[testNode](3, 0)
	for i := 0; i < 3; i++ {
		_, err := a.Alloc()
		require.NoError(t, err)
	}
	_, err := a.Alloc()
	require.Equal(t, ErrArenaFull, err)
	require.Equal(t, uint32(3), a.Size())

	// Continuing to allocate continues to throw an error.
	_, err = a.Alloc()
	require.Equal(t, ErrArenaFull, err)
	require.Equal(t, uint32(3), a.Size())
}

func TestArenaDiscard(t *testing.T) {
	a := New[testNode](0, 0)
	h1, _ := a.Alloc()
	h2, _ := a.Alloc()
	a.Discard(h2)
	a.Discard(Nil)
	require.Equal(t, uint32(1), a.Garbage())
	require.Equal(t, uint32(1), a.Live())
	require.NotNil(t, a.Get(h1))
	if invariants.Enabled {
		require.True(t, a.Discarded(h2))
		require.Panics(t, func() { a.Get(h2) })
	} else {
		require.False(t, a.Discarded(h2))
	}
	require.Panics(t, func() { a.Get(Nil) })

	a.Reset()
	require.Equal(t, uint32(0), a.Size())
	require.Equal(t, uint32(0), a.Garbage())
	h, _ := a.Alloc()
	require.Equal(t, Handle(1), h)
	require.Equal(t, int64(0), a.Get(h).v)
}

func TestArenaOnGrow(t *testing.T) {
	a := New[testNode](0, 1)
	var grows int
	a.OnGrow(func(nodes uint32, capacity int) {
		grows++
		require.GreaterOrEqual(t, capacity, int(nodes))
	})
	for i := 0; i < 100; i++ {
		_, err := a.Alloc()
		require.NoError(t, err)
	}
	require.Greater(t, grows, 0)
	require.Less(t, grows, 100)
}
