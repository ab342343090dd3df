// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package aggtree provides mergeable, value-indexed aggregation trees: sparse
// segment trees over a fixed key Domain whose nodes are created lazily on
// insertion and live in a shared, append-only arena.
//
// The typical consumer walks a rooted tree in post-order. Every vertex gets a
// singleton aggregation tree holding its own key; when a child has been fully
// processed its aggregation tree is merged into the parent's. Once all
// children are merged, the parent's tree aggregates its whole subtree and can
// be queried:
//
//	f := aggtree.New[payload.FrequencyMax](payload.FrequencyMaxAggregator{}, domain, nil)
//	t, err := f.NewSingleton(color, payload.Occurrences(1))
//	...
//	f.MergeInto(&t, &childTree) // childTree is consumed
//	answer := f.QueryAll(&t)
//
// Merging only recurses where both trees have a node, and the source tree's
// nodes are discarded as they are absorbed. The total work of all merges of a
// traversal is therefore bounded by the number of nodes ever allocated, which
// is O(n log V) for n insertions over a domain of V keys.
//
// A Forest is not safe for concurrent use. Independent computations should
// use independent forests.
package aggtree

import "github.com/cockroachdb/aggtree/internal/base"

// Domain exports the base.Domain type.
type Domain = base.Domain

// MakeDomain exports the base.MakeDomain function.
func MakeDomain(lo, hi int32) Domain {
	return base.MakeDomain(lo, hi)
}

// ErrOutOfDomain is the mark carried by the panic raised when a position or
// query lies outside the Domain of a tree.
var ErrOutOfDomain = base.ErrOutOfDomain

// ErrDomainMismatch is the mark carried by the panic raised when two trees of
// different forests or domains are merged.
var ErrDomainMismatch = base.ErrDomainMismatch

// ErrUseAfterMerge is the mark carried by the panic raised when a tree is used
// after it was consumed by a merge.
var ErrUseAfterMerge = base.ErrUseAfterMerge

// ErrOutOfCapacity is returned (wrapped) when the arena is exhausted.
var ErrOutOfCapacity = base.ErrOutOfCapacity

// Logger defines an interface for writing log messages.
type Logger = base.Logger

// DefaultLogger logs to the Go stdlib logs.
type DefaultLogger = base.DefaultLogger

// NoopLogger does not log anything.
type NoopLogger = base.NoopLogger
