// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package aggtree

import (
	"sync/atomic"

	"github.com/cockroachdb/aggtree/internal/arena"
	"github.com/cockroachdb/aggtree/internal/base"
	"github.com/cockroachdb/aggtree/payload"
	"github.com/cockroachdb/errors"
)

// node is the unit of storage of every aggregation tree. The key range a node
// covers is implied by its position and is not stored.
type node[P any] struct {
	left, right arena.Handle
	payload     P
}

// forestIDs hands out identifiers so that trees can detect being passed to a
// forest that did not create them.
var forestIDs atomic.Uint64

// Forest owns the arena shared by a set of aggregation trees built over the
// same Domain with the same payload type. Trees of one forest can be merged
// with each other; trees of different forests cannot.
type Forest[P any] struct {
	id     uint64
	opts   *Options
	domain Domain
	agg    payload.Aggregator[P]
	// lazy is non-nil if agg carries deferred state that must be pushed down
	// before descending.
	lazy  payload.Lazy[P]
	arena *arena.Arena[node[P]]
	// depth caches domain.Depth().
	depth int

	metrics struct {
		updates       uint64
		queries       uint64
		merges        uint64
		shortCircuits uint64
		mergeVisits   uint64
		// visits counts node pairs during the current top-level merge.
		visits int
	}
}

// Tree is the root handle of one aggregation tree. The zero Tree is an empty
// tree that binds to the first Forest it is used with.
//
// A Tree must not be copied while in use: after Merge consumes it as the
// source, only the Tree value that was passed to Merge knows it is consumed.
// Builds with the invariants tag detect dereferences of discarded nodes
// through stale copies.
type Tree struct {
	root     arena.Handle
	owner    uint64
	domain   Domain
	consumed bool
}

// Empty returns true if the tree holds no nodes.
func (t *Tree) Empty() bool {
	return t.root == arena.Nil
}

// Consumed returns true if the tree was consumed by a merge.
func (t *Tree) Consumed() bool {
	return t.consumed
}

// Domain returns the domain the tree is bound to. It is the zero Domain for a
// tree that was never used.
func (t *Tree) Domain() Domain {
	return t.domain
}

// New creates a forest for payloads of type P over domain.
func New[P any](agg payload.Aggregator[P], domain Domain, opts *Options) *Forest[P] {
	domain = base.MakeDomain(domain.Lo, domain.Hi)
	opts = opts.Clone().EnsureDefaults()
	f := &Forest[P]{
		id:     forestIDs.Add(1),
		opts:   opts,
		domain: domain,
		agg:    agg,
		arena:  arena.New[node[P]](opts.MaxNodes, opts.InitialNodes),
		depth:  domain.Depth(),
	}
	if lazy, ok := agg.(payload.Lazy[P]); ok {
		f.lazy = lazy
	}
	listener := opts.EventListener
	maxNodes := opts.MaxNodes
	if maxNodes == arena.MaxNodes {
		maxNodes = 0
	}
	f.arena.OnGrow(func(nodes uint32, capacity int) {
		listener.ArenaGrow(ArenaGrowInfo{Nodes: nodes, Capacity: capacity, MaxNodes: maxNodes})
	})
	return f
}

// Domain returns the domain of every tree in the forest.
func (f *Forest[P]) Domain() Domain {
	return f.domain
}

// Aggregator returns the aggregator the forest combines payloads with.
func (f *Forest[P]) Aggregator() payload.Aggregator[P] {
	return f.agg
}

// NewTree returns an empty tree bound to f.
func (f *Forest[P]) NewTree() Tree {
	return Tree{owner: f.id, domain: f.domain}
}

// NewSingleton returns a tree holding a single update of value. It is called
// once per vertex of the traversed tree, before its children are visited.
func (f *Forest[P]) NewSingleton(value int32, delta P) (Tree, error) {
	t := f.NewTree()
	if err := f.Update(&t, value, delta); err != nil {
		return Tree{}, err
	}
	return t, nil
}

// MergeInto merges child into parent. It is called once per edge of the
// traversed tree, after the child's subtree has been fully processed. child
// is consumed; parent holds the combined tree afterwards.
func (f *Forest[P]) MergeInto(parent *Tree, child *Tree) {
	f.Merge(parent, child)
}

// Reset discards every tree of the forest at once. Trees created before the
// reset must not be used afterwards.
func (f *Forest[P]) Reset() {
	f.arena.Reset()
	// Invalidate outstanding trees.
	f.id = forestIDs.Add(1)
}

// bind checks that t may be used with f, binding a zero Tree to f.
func (f *Forest[P]) bind(t *Tree) {
	if t.consumed {
		panic(base.AssertionFailedf(ErrUseAfterMerge, "aggtree: tree was consumed by a merge"))
	}
	if t.owner == f.id {
		return
	}
	if t.owner == 0 && t.root == arena.Nil {
		t.owner, t.domain = f.id, f.domain
		return
	}
	if t.domain != f.domain {
		panic(base.AssertionFailedf(ErrDomainMismatch,
			"aggtree: tree over %s used with forest over %s", t.domain, f.domain))
	}
	panic(base.AssertionFailedf(ErrDomainMismatch, "aggtree: tree belongs to another forest"))
}

func (f *Forest[P]) alloc() (arena.Handle, error) {
	h, err := f.arena.Alloc()
	if err != nil {
		f.opts.EventListener.CapacityExhausted(CapacityInfo{
			Nodes:    f.arena.Size(),
			MaxNodes: f.arena.Capacity(),
			Err:      err,
		})
		return arena.Nil, errors.Mark(
			errors.Wrapf(err, "aggtree: allocating node %d", errors.Safe(f.arena.Size()+1)),
			ErrOutOfCapacity)
	}
	return h, nil
}

// payloadOf returns the payload of h, or the identity if h is nil.
func (f *Forest[P]) payloadOf(h arena.Handle) P {
	if h == arena.Nil {
		return f.agg.Identity()
	}
	return f.arena.Get(h).payload
}

// pushUp recomputes the payload of h from its children.
func (f *Forest[P]) pushUp(h arena.Handle) {
	n := f.arena.Get(h)
	if f.lazy != nil && f.lazy.Pending(&n.payload) {
		panic(errors.AssertionFailedf("aggtree: pushUp of %s with pending state", h))
	}
	n.payload = f.agg.Combine(f.payloadOf(n.left), f.payloadOf(n.right))
}

// pushDown moves pending lazy state of the internal node h onto its children.
// It is a no-op for non-lazy aggregators.
func (f *Forest[P]) pushDown(h arena.Handle) {
	if f.lazy == nil {
		return
	}
	n := f.arena.Get(h)
	if !f.lazy.Pending(&n.payload) {
		return
	}
	var l, r *P
	if n.left != arena.Nil {
		l = &f.arena.Get(n.left).payload
	}
	if n.right != arena.Nil {
		r = &f.arena.Get(n.right).payload
	}
	f.lazy.PushDown(&n.payload, l, r)
}

// settle folds pending lazy state of the leaf h into its value.
func (f *Forest[P]) settle(h arena.Handle) {
	if f.lazy == nil {
		return
	}
	f.lazy.Settle(&f.arena.Get(h).payload)
}
