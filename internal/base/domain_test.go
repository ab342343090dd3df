// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package base

import (
	"fmt"
	"math"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"
)

func TestDomain(t *testing.T) {
	d := MakeDomain(1, 10)
	require.Equal(t, "[1,10]", d.String())
	require.Equal(t, int32(5), d.Mid())
	require.Equal(t, Domain{Lo: 1, Hi: 5}, d.Left())
	require.Equal(t, Domain{Lo: 6, Hi: 10}, d.Right())
	require.Equal(t, int64(10), d.Width())
	require.True(t, d.Contains(1))
	require.True(t, d.Contains(10))
	require.False(t, d.Contains(0))
	require.False(t, d.Contains(11))
	require.False(t, d.IsLeaf())
	require.True(t, MakeDomain(4, 4).IsLeaf())

	got, ok := d.Intersect(-5, 3)
	require.True(t, ok)
	require.Equal(t, Domain{Lo: 1, Hi: 3}, got)
	_, ok = d.Intersect(11, 20)
	require.False(t, ok)

	require.True(t, d.Covers(0, 10))
	require.False(t, d.Covers(2, 10))
	require.True(t, d.Disjoint(11, 12))
	require.False(t, d.Disjoint(10, 12))
}

func TestDomainNegative(t *testing.T) {
	d := MakeDomain(-7, -2)
	require.Equal(t, int32(-5), d.Mid())
	require.Equal(t, Domain{Lo: -7, Hi: -5}, d.Left())
	require.Equal(t, Domain{Lo: -4, Hi: -2}, d.Right())
}

func TestDomainFullRange(t *testing.T) {
	d := MakeDomain(math.MinInt32, math.MaxInt32)
	require.Equal(t, int32(-1), d.Mid())
	require.Equal(t, int64(1)<<32, d.Width())
	require.Equal(t, 32, d.Depth())
	require.Equal(t, Domain{Lo: 0, Hi: math.MaxInt32}, d.Right())
}

func TestDomainDepth(t *testing.T) {
	for _, tc := range []struct {
		lo, hi int32
		depth  int
	}{
		{1, 1, 0},
		{1, 2, 1},
		{1, 3, 2},
		{1, 4, 2},
		{1, 5, 3},
		{1, 100, 7},
		{1, 1 << 20, 20},
	} {
		t.Run(fmt.Sprintf("%d-%d", tc.lo, tc.hi), func(t *testing.T) {
			require.Equal(t, tc.depth, MakeDomain(tc.lo, tc.hi).Depth())
		})
	}
}

func TestMakeDomainEmpty(t *testing.T) {
	defer func() {
		r := recover()
		require.NotNil(t, r)
		err, ok := r.(error)
		require.True(t, ok)
		require.True(t, errors.Is(err, ErrOutOfDomain))
		require.True(t, errors.HasAssertionFailure(err))
	}()
	MakeDomain(3, 2)
}
