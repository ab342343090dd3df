// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package payload

import (
	"fmt"
	"math"
)

// RangeMax tracks the maximum leaf value of a range and the smallest key
// holding it. Leaves accumulate deltas, which makes RangeMax suitable for
// difference-array style counting: add +1 at the endpoints of a path, -1 at
// their lowest common ancestor and its parent, and merge subtrees bottom-up.
type RangeMax struct {
	Max int64
	Key int32
}

func (r RangeMax) String() string {
	if r.Max == math.MinInt64 {
		return "empty"
	}
	return fmt.Sprintf("max=%d key=%d", r.Max, r.Key)
}

// Empty returns true if no leaf contributed to r.
func (r RangeMax) Empty() bool {
	return r.Max == math.MinInt64
}

// Add returns a delta adding n at a key.
func Add(n int64) RangeMax {
	return RangeMax{Max: n}
}

// RangeMaxAggregator aggregates RangeMax payloads. Deltas carry the amount
// to add in Max.
type RangeMaxAggregator struct{}

var _ Aggregator[RangeMax] = RangeMaxAggregator{}

// Identity implements Aggregator.
func (RangeMaxAggregator) Identity() RangeMax {
	return RangeMax{Max: math.MinInt64}
}

// Apply implements Aggregator. A freshly allocated leaf holds the zero
// payload, which counts as a value of 0.
func (RangeMaxAggregator) Apply(key int32, leaf, delta RangeMax) RangeMax {
	return RangeMax{Max: leaf.Max + delta.Max, Key: key}
}

// MergeLeaves implements Aggregator.
func (RangeMaxAggregator) MergeLeaves(key int32, a, b RangeMax) RangeMax {
	return RangeMax{Max: a.Max + b.Max, Key: key}
}

// Combine implements Aggregator. Ties resolve to the left (smaller) key. An
// empty side never wins, whatever its key.
func (RangeMaxAggregator) Combine(left, right RangeMax) RangeMax {
	if left.Empty() || (!right.Empty() && right.Max > left.Max) {
		return right
	}
	return left
}
