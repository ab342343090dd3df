// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package payload defines the aggregation values carried by the nodes of an
// aggregation tree and the rules for combining them.
//
// An Aggregator is consulted in three places:
//
//   - Apply, when a point update reaches the leaf for a key;
//   - MergeLeaves, when a merge finds the same key present in both trees;
//   - Combine, when a node's payload is recomputed from its children
//     ("pushUp"). Absent children contribute Identity().
//
// Combine must be associative and Identity() must be its neutral element:
// range queries fold partial results with Combine in left-to-right order.
package payload

// Aggregator describes how payloads of type P are combined.
type Aggregator[P any] interface {
	// Identity returns the neutral payload, also returned by queries over an
	// empty range.
	Identity() P
	// Apply returns the leaf payload for key after applying delta.
	Apply(key int32, leaf, delta P) P
	// MergeLeaves returns the payload of the surviving leaf when two trees
	// both hold key. a belongs to the surviving tree.
	MergeLeaves(key int32, a, b P) P
	// Combine returns the payload of a node given its children's payloads.
	Combine(left, right P) P
}

// Lazy is implemented by aggregators whose payloads carry deferred updates
// that apply to a whole subtree. A node with pending state must have that
// state pushed to its children before the tree descends through it, before
// it takes part in a merge, and before its payload is recomputed.
type Lazy[P any] interface {
	Aggregator[P]
	// Pending returns true if p holds state not yet pushed to its children.
	Pending(p *P) bool
	// PushDown moves the pending state of parent onto left and right (either
	// may be nil when the child is absent) and leaves parent clean.
	PushDown(parent, left, right *P)
	// Settle folds the pending state of a leaf into its value.
	Settle(leaf *P)
}
