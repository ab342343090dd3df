// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package aggtree

import (
	"github.com/cockroachdb/aggtree/internal/arena"
	"github.com/cockroachdb/aggtree/internal/base"
	"github.com/cockroachdb/aggtree/payload"
	"github.com/cockroachdb/errors"
)

// Remapper maintains sequences of values in [1, K] keyed by position in
// [1, N] and supports replacing every occurrence of a value x within a range
// of positions by y without visiting each position.
//
// Substitutions are recorded as a pending image on the highest nodes fully
// covered by the range and composed with whatever is already pending there.
// They reach the leaves lazily, when a later operation descends through the
// node. Trees of a Remapper can be merged; pending images of both sides are
// pushed down before the merge combines them.
type Remapper struct {
	f   *Forest[payload.Remap]
	agg payload.RemapAggregator
}

// NewRemapper creates a Remapper for n positions holding values in [1, k].
func NewRemapper(n, k int32, opts *Options) *Remapper {
	if k < 1 {
		panic(base.AssertionFailedf(ErrOutOfDomain, "aggtree: empty value range [1,%d]", k))
	}
	agg := payload.RemapAggregator{K: k}
	return &Remapper{
		f:   New[payload.Remap](agg, MakeDomain(1, n), opts),
		agg: agg,
	}
}

// Forest returns the underlying forest, for queries and metrics.
func (r *Remapper) Forest() *Forest[payload.Remap] {
	return r.f
}

// Build returns a tree holding values[i] at position i+1.
func (r *Remapper) Build(values []int32) (Tree, error) {
	if int64(len(values)) > r.f.domain.Width() {
		return Tree{}, errors.Newf("aggtree: %d values exceed %d positions",
			errors.Safe(len(values)), errors.Safe(r.f.domain.Width()))
	}
	t := r.f.NewTree()
	for i, v := range values {
		if err := r.Set(&t, int32(i+1), v); err != nil {
			return Tree{}, err
		}
	}
	return t, nil
}

// Set stores v at pos, replacing the value previously displayed there.
func (r *Remapper) Set(t *Tree, pos, v int32) error {
	if err := r.agg.Validate(v); err != nil {
		return errors.Wrapf(err, "aggtree: position %d", errors.Safe(pos))
	}
	return r.f.Update(t, pos, payload.Store(v))
}

// AssignMapping replaces x by y at every position in [ql, qr]. Positions
// outside the domain are ignored. x and y must be values in [1, K].
func (r *Remapper) AssignMapping(t *Tree, ql, qr, x, y int32) {
	r.f.bind(t)
	if err := errors.CombineErrors(r.agg.Validate(x), r.agg.Validate(y)); err != nil {
		panic(errors.Mark(errors.NewAssertionErrorWithWrappedErrf(err, "aggtree: invalid mapping"), ErrOutOfDomain))
	}
	if x == y {
		return
	}
	r.f.metrics.updates++
	r.assign(t.root, r.f.domain, ql, qr, x, y)
	r.f.maybeCheck(t)
}

func (r *Remapper) assign(h arena.Handle, d Domain, ql, qr, x, y int32) {
	if h == arena.Nil || d.Disjoint(ql, qr) {
		return
	}
	if d.IsLeaf() {
		r.f.settle(h)
		if n := r.f.arena.Get(h); n.payload.Value == x {
			n.payload.Value = y
		}
		return
	}
	if d.Covers(ql, qr) {
		n := r.f.arena.Get(h)
		n.payload.Image = r.agg.Reassign(n.payload.Image, x, y)
		return
	}
	r.f.pushDown(h)
	n := r.f.arena.Get(h)
	left, right := n.left, n.right
	r.assign(left, d.Left(), ql, qr, x, y)
	r.assign(right, d.Right(), ql, qr, x, y)
	r.f.pushUp(h)
}

// Materialize returns the value displayed at pos, pushing pending images down
// the path to pos. It returns false if no value is stored at pos.
func (r *Remapper) Materialize(t *Tree, pos int32) (int32, bool) {
	p, ok := r.f.Get(t, pos)
	return p.Value, ok
}

// MaterializeAll returns the values displayed at every occupied position, in
// position order.
func (r *Remapper) MaterializeAll(t *Tree) []int32 {
	r.f.bind(t)
	r.f.metrics.queries++
	out := make([]int32, 0, r.f.QueryAll(t).Count)
	return r.collect(t.root, r.f.domain, out)
}

func (r *Remapper) collect(h arena.Handle, d Domain, out []int32) []int32 {
	if h == arena.Nil {
		return out
	}
	if d.IsLeaf() {
		r.f.settle(h)
		return append(out, r.f.arena.Get(h).payload.Value)
	}
	r.f.pushDown(h)
	n := r.f.arena.Get(h)
	left, right := n.left, n.right
	out = r.collect(left, d.Left(), out)
	return r.collect(right, d.Right(), out)
}

// Merge merges src into dst; see Forest.Merge. Where both trees store a
// value at the same position, dst's value is kept.
func (r *Remapper) Merge(dst, src *Tree) {
	r.f.Merge(dst, src)
}
