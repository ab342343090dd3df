// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package payload

import "fmt"

// Sum counts occurrences and accumulates key*count over a range.
type Sum struct {
	// Count is the number of occurrences.
	Count int64
	// KeySum is the sum of the keys of all occurrences.
	KeySum int64
}

func (s Sum) String() string {
	return fmt.Sprintf("count=%d keysum=%d", s.Count, s.KeySum)
}

// SumAggregator aggregates Sum payloads. Deltas carry a Count; KeySum of a
// delta is ignored and derived from the key.
type SumAggregator struct{}

var _ Aggregator[Sum] = SumAggregator{}

// Identity implements Aggregator.
func (SumAggregator) Identity() Sum { return Sum{} }

// Apply implements Aggregator.
func (SumAggregator) Apply(key int32, leaf, delta Sum) Sum {
	leaf.Count += delta.Count
	leaf.KeySum = leaf.Count * int64(key)
	return leaf
}

// MergeLeaves implements Aggregator.
func (SumAggregator) MergeLeaves(key int32, a, b Sum) Sum {
	a.Count += b.Count
	a.KeySum = a.Count * int64(key)
	return a
}

// Combine implements Aggregator.
func (SumAggregator) Combine(left, right Sum) Sum {
	return Sum{
		Count:  left.Count + right.Count,
		KeySum: left.KeySum + right.KeySum,
	}
}
