// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package arena implements the append-only node pool that backs every
// aggregation tree of a single run. Nodes are addressed by Handle, a 32-bit
// index, rather than by pointer: this keeps nodes small, lets the garbage
// collector ignore the links between them and makes it trivial to drop every
// node of a run at once.
package arena

import (
	"math"

	"github.com/cockroachdb/aggtree/internal/invariants"
	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/redact"
)

// ErrArenaFull indicates that the arena has handed out MaxNodes handles.
var ErrArenaFull = errors.New("allocation failed because arena is full")

// MaxNodes is the largest number of nodes an arena can hold. Handle 0 is
// reserved as the nil handle.
const MaxNodes = math.MaxUint32 - 1

// Handle identifies a node within an Arena. The zero Handle is nil.
type Handle uint32

// Nil is the handle of an absent node.
const Nil Handle = 0

// IsNil returns true if h does not reference a node.
func (h Handle) IsNil() bool {
	return h == Nil
}

func (h Handle) String() string {
	return redact.StringWithoutMarkers(h)
}

// SafeFormat implements redact.SafeFormatter.
func (h Handle) SafeFormat(w redact.SafePrinter, _ rune) {
	if h == Nil {
		w.SafeString("nil")
		return
	}
	w.Printf("n%d", redact.Safe(uint32(h)))
}

// Arena is a growable pool of nodes of type T. Storage is never reused while
// the arena is alive: discarded handles are only counted (and, in invariant
// builds, remembered so that a later dereference panics). Reset drops every
// node at once.
//
// Arena is not safe for concurrent use.
type Arena[T any] struct {
	nodes    []T
	maxNodes uint32
	garbage  uint32
	// dead holds discarded handles in invariant builds.
	dead invariants.Tombstones
	// onGrow is invoked after the backing slice has been reallocated.
	onGrow func(nodes uint32, capacity int)
}

// New allocates a new arena that holds at most maxNodes nodes (0 means
// MaxNodes) with room for initial nodes before the first reallocation.
func New[T any](maxNodes uint32, initial int) *Arena[T] {
	if maxNodes == 0 || maxNodes > MaxNodes {
		maxNodes = MaxNodes
	}
	if initial < 0 {
		initial = 0
	}
	if uint64(initial) > uint64(maxNodes) {
		initial = int(maxNodes)
	}
	// Don't store data at position 0 in order to reserve handle 0 as a kind
	// of nil pointer.
	nodes := make([]T, 1, initial+1)
	return &Arena[T]{nodes: nodes, maxNodes: maxNodes}
}

// OnGrow registers fn to be called after the backing slice grows.
func (a *Arena[T]) OnGrow(fn func(nodes uint32, capacity int)) {
	a.onGrow = fn
}

// Alloc appends a zero node and returns its handle. Pointers previously
// returned by Get are invalidated.
func (a *Arena[T]) Alloc() (Handle, error) {
	if a.Size() >= a.maxNodes {
		return Nil, ErrArenaFull
	}
	var zero T
	prevCap := cap(a.nodes)
	a.nodes = append(a.nodes, zero)
	if cap(a.nodes) != prevCap && a.onGrow != nil {
		a.onGrow(a.Size(), cap(a.nodes)-1)
	}
	return Handle(len(a.nodes) - 1), nil
}

// Get returns the node referenced by h. The pointer is only valid until the
// next call to Alloc. Get panics if h is nil or, in invariant builds, if h was
// discarded.
func (a *Arena[T]) Get(h Handle) *T {
	if h == Nil {
		panic(errors.AssertionFailedf("arena: dereference of nil handle"))
	}
	if invariants.Enabled {
		invariants.CheckBounds(int(h), len(a.nodes))
		if a.dead.Contains(uint32(h)) {
			panic(errors.AssertionFailedf("arena: dereference of discarded handle %s", h))
		}
	}
	return &a.nodes[h]
}

// Discard records that h is no longer reachable from any tree. The storage is
// not reused.
func (a *Arena[T]) Discard(h Handle) {
	if h == Nil {
		return
	}
	if invariants.Enabled {
		a.dead.Add(uint32(h))
	}
	a.garbage++
}

// Discarded returns true if h was discarded. It always returns false in
// non-invariant builds.
func (a *Arena[T]) Discarded(h Handle) bool {
	return a.dead.Contains(uint32(h))
}

// Size returns the number of nodes allocated so far, live or not.
func (a *Arena[T]) Size() uint32 {
	return uint32(len(a.nodes) - 1)
}

// Capacity returns the maximum number of nodes the arena may hold.
func (a *Arena[T]) Capacity() uint32 {
	return a.maxNodes
}

// Garbage returns the number of discarded nodes.
func (a *Arena[T]) Garbage() uint32 {
	return a.garbage
}

// Live returns the number of allocated nodes that were not discarded.
func (a *Arena[T]) Live() uint32 {
	return invariants.SafeSub(a.Size(), a.garbage)
}

// Reset drops all nodes. Every handle previously returned becomes invalid.
// The backing slice is retained.
func (a *Arena[T]) Reset() {
	clear(a.nodes)
	a.nodes = a.nodes[:1]
	a.garbage = 0
	a.dead.Reset()
}
