// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package discretize maps arbitrary int64 values onto a dense key range
// [1, n] so that aggregation trees can be declared over a small Domain.
// Ranks preserve the order of the values.
package discretize

import (
	"slices"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/swiss"
)

// Mapper maps each distinct value to its rank among the distinct values,
// starting at 1.
type Mapper struct {
	values []int64
	ranks  swiss.Map[int64, int32]
}

// New returns a Mapper over the distinct elements of values. values is not
// modified.
func New(values []int64) (*Mapper, error) {
	sorted := slices.Clone(values)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)
	if len(sorted) > 1<<31-1 {
		return nil, errors.Newf("discretize: %d distinct values", errors.Safe(len(sorted)))
	}
	m := &Mapper{values: sorted}
	m.ranks.Init(len(sorted))
	for i, v := range sorted {
		m.ranks.Put(v, int32(i+1))
	}
	return m, nil
}

// Rank returns the rank of v, or false if v was not among the values the
// Mapper was built from.
func (m *Mapper) Rank(v int64) (int32, bool) {
	return m.ranks.Get(v)
}

// MustRank is like Rank but panics if v is unknown.
func (m *Mapper) MustRank(v int64) int32 {
	r, ok := m.ranks.Get(v)
	if !ok {
		panic(errors.AssertionFailedf("discretize: unknown value %d", v))
	}
	return r
}

// Value returns the value with the given rank.
func (m *Mapper) Value(rank int32) int64 {
	if rank < 1 || int(rank) > len(m.values) {
		panic(errors.AssertionFailedf("discretize: rank %d outside [1,%d]", rank, len(m.values)))
	}
	return m.values[rank-1]
}

// Size returns the number of distinct values.
func (m *Mapper) Size() int32 {
	return int32(len(m.values))
}

// Domain returns the key range of the ranks, [1, Size()]. An empty Mapper
// yields [1, 1] so that a tree can still be declared over it.
func (m *Mapper) Domain() (lo, hi int32) {
	return 1, max(m.Size(), 1)
}
