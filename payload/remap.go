// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package payload

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// Remap is the payload of a value-substitution tree. The tree is keyed by
// position; every leaf stores the value at its position and every node may
// carry a pending Image that rewrites all values below it.
//
// A node is Clean when Image is nil (the identity) and PendingMapping
// otherwise. Image has K+1 entries and Image[v] is the value currently
// displayed for a stored value v; entry 0 is unused.
type Remap struct {
	Image []int32
	// Value is the stored value of a leaf. Internal nodes leave it zero.
	Value int32
	// Count is the number of positions below the node.
	Count int64
}

func (r Remap) String() string {
	if r.Image != nil {
		return fmt.Sprintf("count=%d value=%d pending=%v", r.Count, r.Value, r.Image[1:])
	}
	return fmt.Sprintf("count=%d value=%d", r.Count, r.Value)
}

// Store returns a delta that stores value v at a position.
func Store(v int32) Remap {
	return Remap{Value: v, Count: 1}
}

// RemapAggregator aggregates Remap payloads over values in [1, K].
type RemapAggregator struct {
	K int32
}

var _ Lazy[Remap] = RemapAggregator{}

// Identity implements Aggregator.
func (RemapAggregator) Identity() Remap { return Remap{} }

// Apply implements Aggregator. Storing a value at a position replaces the
// previous one.
func (RemapAggregator) Apply(key int32, leaf, delta Remap) Remap {
	return Remap{Value: delta.Value, Count: 1}
}

// MergeLeaves implements Aggregator. Both leaves have been settled by the
// caller; the surviving tree's value wins.
func (RemapAggregator) MergeLeaves(key int32, a, b Remap) Remap {
	return Remap{Value: a.Value, Count: 1}
}

// Combine implements Aggregator.
func (RemapAggregator) Combine(left, right Remap) Remap {
	return Remap{Count: left.Count + right.Count}
}

// Pending implements Lazy.
func (RemapAggregator) Pending(p *Remap) bool {
	return p.Image != nil
}

// PushDown implements Lazy. Each child receives its own copy of the parent's
// image composed over the child's pending image, if any.
func (a RemapAggregator) PushDown(parent, left, right *Remap) {
	if parent.Image == nil {
		return
	}
	for _, c := range [2]*Remap{left, right} {
		if c == nil {
			continue
		}
		c.Image = a.compose(parent.Image, c.Image)
	}
	parent.Image = nil
}

// Settle implements Lazy.
func (RemapAggregator) Settle(leaf *Remap) {
	if leaf.Image == nil {
		return
	}
	leaf.Value = leaf.Image[leaf.Value]
	leaf.Image = nil
}

// compose returns outer∘inner: the image that first applies inner, then
// outer. A nil inner is the identity, in which case a copy of outer is
// returned. inner is updated in place when present.
func (a RemapAggregator) compose(outer, inner []int32) []int32 {
	if inner == nil {
		return append([]int32(nil), outer...)
	}
	for v := int32(1); v <= a.K; v++ {
		inner[v] = outer[inner[v]]
	}
	return inner
}

// Reassign layers the substitution x→y over img: every value currently
// displayed as x is displayed as y afterwards. A nil img is treated as the
// identity and a new image is returned.
func (a RemapAggregator) Reassign(img []int32, x, y int32) []int32 {
	if img == nil {
		img = a.IdentityImage()
	}
	for v := int32(1); v <= a.K; v++ {
		if img[v] == x {
			img[v] = y
		}
	}
	return img
}

// IdentityImage returns a fresh identity image.
func (a RemapAggregator) IdentityImage() []int32 {
	img := make([]int32, a.K+1)
	for v := range img {
		img[v] = int32(v)
	}
	return img
}

// Validate returns an error if v is not a value in [1, K].
func (a RemapAggregator) Validate(v int32) error {
	if v < 1 || v > a.K {
		return errors.Newf("value %d outside [1,%d]", v, a.K)
	}
	return nil
}
