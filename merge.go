// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package aggtree

import (
	"github.com/cockroachdb/aggtree/internal/arena"
	"github.com/cockroachdb/aggtree/internal/base"
)

// Merge merges src into dst. Both trees must belong to f. Afterwards dst
// holds the combined tree and src is consumed: any further use of src panics
// with an error marked ErrUseAfterMerge.
//
// Merge never allocates. It only descends where both trees have a node; a
// subtree present on one side only is adopted as is. Nodes of src that are
// absorbed are discarded.
func (f *Forest[P]) Merge(dst, src *Tree) {
	if dst == src {
		panic(base.AssertionFailedf(ErrUseAfterMerge, "aggtree: merge of a tree into itself"))
	}
	f.bind(dst)
	f.bind(src)
	if dst.root != arena.Nil && dst.root == src.root {
		panic(base.AssertionFailedf(ErrUseAfterMerge, "aggtree: merge of two copies of the tree rooted at %s", dst.root))
	}

	f.metrics.merges++
	f.metrics.visits = 0
	shortCircuit := dst.root == arena.Nil || src.root == arena.Nil
	if shortCircuit {
		f.metrics.shortCircuits++
	}
	dst.root = f.merge(dst.root, src.root, f.domain)
	src.root = arena.Nil
	src.consumed = true
	f.metrics.mergeVisits += uint64(f.metrics.visits)

	f.opts.EventListener.MergeEnd(MergeInfo{
		Domain:       f.domain,
		Visited:      f.metrics.visits,
		ShortCircuit: shortCircuit,
	})
	f.maybeCheck(dst)
}

// merge merges the subtrees rooted at a and b, both covering d, and returns
// the root of the result. a survives wherever both sides are present.
func (f *Forest[P]) merge(a, b arena.Handle, d Domain) arena.Handle {
	if a == arena.Nil {
		return b
	}
	if b == arena.Nil {
		return a
	}
	f.metrics.visits++
	if d.IsLeaf() {
		f.settle(a)
		f.settle(b)
		na, nb := f.arena.Get(a), f.arena.Get(b)
		na.payload = f.agg.MergeLeaves(d.Lo, na.payload, nb.payload)
		f.arena.Discard(b)
		return a
	}

	// Pending state applies to a single side only; it must reach the children
	// before they are combined with the other side.
	f.pushDown(a)
	f.pushDown(b)
	// Merging never allocates, so node pointers stay valid for the duration.
	na, nb := f.arena.Get(a), f.arena.Get(b)
	bl, br := nb.left, nb.right
	f.arena.Discard(b)
	na.left = f.merge(na.left, bl, d.Left())
	na.right = f.merge(na.right, br, d.Right())
	f.pushUp(a)
	return a
}
