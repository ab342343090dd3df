// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package aggtree

import (
	"github.com/cockroachdb/aggtree/internal/arena"
	"github.com/cockroachdb/aggtree/internal/base"
)

// Update applies delta at pos, creating the nodes on the path to pos that do
// not exist yet. pos must lie within the forest's domain; otherwise Update
// panics with an error marked ErrOutOfDomain.
//
// If the arena is exhausted Update returns an error marked ErrOutOfCapacity.
// The tree stays consistent in that case but the update is not applied.
func (f *Forest[P]) Update(t *Tree, pos int32, delta P) error {
	f.bind(t)
	if !f.domain.Contains(pos) {
		panic(base.AssertionFailedf(ErrOutOfDomain, "aggtree: update of %d outside %s", pos, f.domain))
	}
	f.metrics.updates++
	root, err := f.update(t.root, f.domain, pos, delta)
	t.root = root
	f.maybeCheck(t)
	return err
}

// update applies delta at pos within the subtree rooted at h covering d and
// returns the (possibly new) root of that subtree.
func (f *Forest[P]) update(h arena.Handle, d Domain, pos int32, delta P) (arena.Handle, error) {
	fresh := h == arena.Nil
	if fresh {
		var err error
		if h, err = f.alloc(); err != nil {
			return arena.Nil, err
		}
	}
	if d.IsLeaf() {
		f.settle(h)
		n := f.arena.Get(h)
		n.payload = f.agg.Apply(pos, n.payload, delta)
		return h, nil
	}

	f.pushDown(h)
	var err error
	// The recursive call may allocate, which invalidates node pointers: read
	// the child handle first and store the result through a fresh pointer.
	if mid := d.Mid(); pos <= mid {
		var c arena.Handle
		c, err = f.update(f.arena.Get(h).left, d.Left(), pos, delta)
		f.arena.Get(h).left = c
	} else {
		var c arena.Handle
		c, err = f.update(f.arena.Get(h).right, d.Right(), pos, delta)
		f.arena.Get(h).right = c
	}
	if n := f.arena.Get(h); err != nil && fresh && n.left == arena.Nil && n.right == arena.Nil {
		// The allocation below this new node failed. Drop the node rather than
		// leave an empty internal node behind.
		f.arena.Discard(h)
		return arena.Nil, err
	}
	f.pushUp(h)
	return h, err
}

// Query returns the combined payload of all keys in [ql, qr] ∩ Domain. An
// empty intersection or an empty tree yields the aggregator's identity.
func (f *Forest[P]) Query(t *Tree, ql, qr int32) P {
	f.bind(t)
	f.metrics.queries++
	if _, ok := f.domain.Intersect(ql, qr); !ok {
		return f.agg.Identity()
	}
	return f.query(t.root, f.domain, ql, qr)
}

// QueryAll returns the payload of the whole tree. It is called once per
// vertex of the traversed tree, after all children have been merged in.
func (f *Forest[P]) QueryAll(t *Tree) P {
	return f.Query(t, f.domain.Lo, f.domain.Hi)
}

// Get returns the payload of the leaf for pos and whether the leaf exists.
// pos must lie within the forest's domain.
func (f *Forest[P]) Get(t *Tree, pos int32) (P, bool) {
	f.bind(t)
	if !f.domain.Contains(pos) {
		panic(base.AssertionFailedf(ErrOutOfDomain, "aggtree: get of %d outside %s", pos, f.domain))
	}
	f.metrics.queries++
	h, d := t.root, f.domain
	for h != arena.Nil && !d.IsLeaf() {
		f.pushDown(h)
		n := f.arena.Get(h)
		if pos <= d.Mid() {
			h, d = n.left, d.Left()
		} else {
			h, d = n.right, d.Right()
		}
	}
	if h == arena.Nil {
		return f.agg.Identity(), false
	}
	f.settle(h)
	return f.arena.Get(h).payload, true
}

func (f *Forest[P]) query(h arena.Handle, d Domain, ql, qr int32) P {
	if h == arena.Nil || d.Disjoint(ql, qr) {
		return f.agg.Identity()
	}
	if d.IsLeaf() {
		f.settle(h)
		return f.arena.Get(h).payload
	}
	if d.Covers(ql, qr) {
		p := f.arena.Get(h).payload
		if f.lazy != nil {
			// Hand out the aggregate without the node's deferred state.
			f.lazy.PushDown(&p, nil, nil)
		}
		return p
	}
	f.pushDown(h)
	n := f.arena.Get(h)
	left, right := n.left, n.right
	return f.agg.Combine(
		f.query(left, d.Left(), ql, qr),
		f.query(right, d.Right(), ql, qr),
	)
}

// Len returns the number of nodes reachable from t.
func (f *Forest[P]) Len(t *Tree) int {
	f.bind(t)
	return f.count(t.root)
}

func (f *Forest[P]) count(h arena.Handle) int {
	if h == arena.Nil {
		return 0
	}
	n := f.arena.Get(h)
	return 1 + f.count(n.left) + f.count(n.right)
}
