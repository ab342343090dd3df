// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package payload

import "fmt"

// FrequencyMax tracks the most frequent keys of a range.
//
// At a leaf, Count is the number of occurrences of the leaf's key. At an
// internal node it is the total number of occurrences below the node.
// BestCount is the largest per-key count in the range and BestKeySum the sum
// of every key reaching it. Keys whose count is not positive never
// contribute to BestKeySum.
type FrequencyMax struct {
	Count      int64
	BestCount  int64
	BestKeySum int64
}

func (f FrequencyMax) String() string {
	return fmt.Sprintf("count=%d best=%d keysum=%d", f.Count, f.BestCount, f.BestKeySum)
}

// FrequencyMaxAggregator aggregates FrequencyMax payloads. Deltas carry a
// Count; the other fields of a delta are ignored.
type FrequencyMaxAggregator struct{}

var _ Aggregator[FrequencyMax] = FrequencyMaxAggregator{}

// Occurrences returns a delta adding n occurrences of a key.
func Occurrences(n int64) FrequencyMax {
	return FrequencyMax{Count: n}
}

// Identity implements Aggregator.
func (FrequencyMaxAggregator) Identity() FrequencyMax { return FrequencyMax{} }

func frequencyLeaf(key int32, count int64) FrequencyMax {
	if count <= 0 {
		return FrequencyMax{Count: count}
	}
	return FrequencyMax{Count: count, BestCount: count, BestKeySum: int64(key)}
}

// Apply implements Aggregator.
func (FrequencyMaxAggregator) Apply(key int32, leaf, delta FrequencyMax) FrequencyMax {
	return frequencyLeaf(key, leaf.Count+delta.Count)
}

// MergeLeaves implements Aggregator.
func (FrequencyMaxAggregator) MergeLeaves(key int32, a, b FrequencyMax) FrequencyMax {
	return frequencyLeaf(key, a.Count+b.Count)
}

// Combine implements Aggregator.
func (FrequencyMaxAggregator) Combine(left, right FrequencyMax) FrequencyMax {
	res := FrequencyMax{Count: left.Count + right.Count}
	switch {
	case left.BestCount > right.BestCount:
		res.BestCount, res.BestKeySum = left.BestCount, left.BestKeySum
	case left.BestCount < right.BestCount:
		res.BestCount, res.BestKeySum = right.BestCount, right.BestKeySum
	default:
		res.BestCount, res.BestKeySum = left.BestCount, left.BestKeySum+right.BestKeySum
	}
	return res
}
