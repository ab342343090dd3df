// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package aggtree

import (
	"fmt"
	"strings"
	"testing"

	"github.com/cockroachdb/aggtree/internal/testutils"
	"github.com/cockroachdb/aggtree/payload"
	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"
)

type bufLogger struct {
	strings.Builder
}

func (b *bufLogger) Infof(format string, args ...interface{}) {
	fmt.Fprintf(b, format+"\n", args...)
}

func (b *bufLogger) Errorf(format string, args ...interface{}) {
	fmt.Fprintf(b, "error: "+format+"\n", args...)
}

func (b *bufLogger) Fatalf(format string, args ...interface{}) {
	panic(fmt.Sprintf(format, args...))
}

func TestLoggingEventListener(t *testing.T) {
	var buf bufLogger
	l := MakeLoggingEventListener(&buf)
	f := New[payload.Sum](payload.SumAggregator{}, MakeDomain(1, 4), &Options{
		MaxNodes:      3,
		InitialNodes:  3,
		EventListener: &l,
	})
	a := testutils.CheckErr(f.NewSingleton(1, payload.Sum{Count: 1}))
	empty := f.NewTree()
	f.Merge(&a, &empty)
	_, err := f.NewSingleton(4, payload.Sum{Count: 1})
	require.True(t, errors.Is(err, ErrOutOfCapacity))

	const expected = `merge [1,4]: short-circuit
error: arena exhausted at 3/3 nodes: allocation failed because arena is full
`
	require.Equal(t, expected, buf.String())
}

func TestCapacityExhaustedDefault(t *testing.T) {
	var buf bufLogger
	f := New[payload.Sum](payload.SumAggregator{}, MakeDomain(1, 4), &Options{
		MaxNodes: 1,
		Logger:   &buf,
	})
	_, err := f.NewSingleton(1, payload.Sum{Count: 1})
	require.True(t, errors.Is(err, ErrOutOfCapacity))
	require.Equal(t, "error: arena exhausted at 1/1 nodes: allocation failed because arena is full\n", buf.String())
}

func TestTeeEventListener(t *testing.T) {
	var grows []ArenaGrowInfo
	var merges int
	l := TeeEventListener(
		EventListener{ArenaGrow: func(info ArenaGrowInfo) { grows = append(grows, info) }},
		EventListener{MergeEnd: func(MergeInfo) { merges++ }},
	)
	f := New[payload.Sum](payload.SumAggregator{}, MakeDomain(1, 4), &Options{
		InitialNodes:  2,
		EventListener: &l,
	})
	a := testutils.CheckErr(f.NewSingleton(1, payload.Sum{Count: 1}))
	b := testutils.CheckErr(f.NewSingleton(2, payload.Sum{Count: 1}))
	f.Merge(&a, &b)

	require.Equal(t, 1, merges)
	require.NotEmpty(t, grows)
	require.Equal(t, uint32(3), grows[0].Nodes)
	require.GreaterOrEqual(t, grows[0].Capacity, 3)
	require.Equal(t, uint32(0), grows[0].MaxNodes)
}
