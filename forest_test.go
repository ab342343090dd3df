// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package aggtree

import (
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/cockroachdb/aggtree/internal/testutils"
	"github.com/cockroachdb/aggtree/payload"
	"github.com/cockroachdb/datadriven"
	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"
)

// forestRunner runs the datadriven commands that operate on an existing
// forest. It hides the payload type of the forest under test.
type forestRunner interface {
	run(t *testing.T, td *datadriven.TestData) string
}

type forestHarness[P fmt.Stringer] struct {
	f     *Forest[P]
	delta func(n int64) P
	trees map[string]*Tree
	log   strings.Builder
}

func newForestHarness[P fmt.Stringer](
	agg payload.Aggregator[P], delta func(int64) P, d Domain, maxNodes int,
) *forestHarness[P] {
	h := &forestHarness[P]{delta: delta, trees: make(map[string]*Tree)}
	h.f = New[P](agg, d, &Options{
		MaxNodes:        uint32(maxNodes),
		CheckInvariants: true,
		EventListener: &EventListener{
			CapacityExhausted: func(info CapacityInfo) { fmt.Fprintln(&h.log, info) },
			MergeEnd:          func(info MergeInfo) { fmt.Fprintln(&h.log, info) },
		},
	})
	return h
}

func (h *forestHarness[P]) tree(name string) *Tree {
	t, ok := h.trees[name]
	if !ok {
		t = &Tree{}
		h.trees[name] = t
	}
	return t
}

func (h *forestHarness[P]) summary(name string, err error) string {
	if err != nil {
		if errors.Is(err, ErrOutOfCapacity) {
			fmt.Fprintf(&h.log, "error: out of capacity\n")
		} else {
			fmt.Fprintf(&h.log, "error: %v\n", err)
		}
		return h.log.String()
	}
	fmt.Fprintf(&h.log, "%s: %s\n", name, h.f.QueryAll(h.trees[name]))
	return h.log.String()
}

func (h *forestHarness[P]) run(t *testing.T, td *datadriven.TestData) string {
	h.log.Reset()
	var name string
	td.MaybeScanArgs(t, "name", &name)
	n := 1
	td.MaybeScanArgs(t, "n", &n)

	switch td.Cmd {
	case "singleton":
		var value int
		td.ScanArgs(t, "value", &value)
		tr, err := h.f.NewSingleton(int32(value), h.delta(int64(n)))
		if err == nil {
			h.trees[name] = &tr
		}
		return h.summary(name, err)

	case "update":
		var pos int
		td.ScanArgs(t, "pos", &pos)
		return h.summary(name, h.f.Update(h.tree(name), int32(pos), h.delta(int64(n))))

	case "merge":
		var dst, src string
		td.ScanArgs(t, "dst", &dst)
		td.ScanArgs(t, "src", &src)
		h.f.Merge(h.tree(dst), h.tree(src))
		return h.summary(dst, nil)

	case "query":
		var lo, hi int
		td.ScanArgs(t, "lo", &lo)
		td.ScanArgs(t, "hi", &hi)
		return h.f.Query(h.tree(name), int32(lo), int32(hi)).String()

	case "get":
		var pos int
		td.ScanArgs(t, "pos", &pos)
		p, ok := h.f.Get(h.tree(name), int32(pos))
		if !ok {
			return "absent"
		}
		return p.String()

	case "print":
		return h.f.DebugString(h.tree(name))

	case "len":
		return fmt.Sprintf("%d nodes", h.f.Len(h.tree(name)))

	case "stats":
		m := h.f.Metrics()
		return fmt.Sprintf("nodes=%d garbage=%d live=%d\nupdates=%d queries=%d\nmerges=%d short-circuits=%d node-pairs=%d",
			m.Arena.Nodes, m.Arena.Garbage, m.Live(), m.Updates, m.Queries,
			m.Merges, m.ShortCircuits, m.MergeVisits)

	default:
		return fmt.Sprintf("unknown command: %s", td.Cmd)
	}
}

// catchMarked runs fn and describes the mark of the error it panics with.
func catchMarked(fn func() string) (out string) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		err, ok := r.(error)
		if !ok {
			panic(r)
		}
		switch {
		case errors.Is(err, ErrUseAfterMerge):
			out = "panic: use after merge"
		case errors.Is(err, ErrOutOfDomain):
			out = "panic: out of domain"
		case errors.Is(err, ErrDomainMismatch):
			out = "panic: domain mismatch"
		default:
			panic(r)
		}
	}()
	return fn()
}

func TestForest(t *testing.T) {
	var r forestRunner
	datadriven.RunTest(t, "testdata/forest", func(t *testing.T, td *datadriven.TestData) string {
		if td.Cmd != "new" {
			return catchMarked(func() string { return r.run(t, td) })
		}
		var kind string
		var lo, hi, maxNodes int
		td.ScanArgs(t, "kind", &kind)
		td.ScanArgs(t, "lo", &lo)
		td.ScanArgs(t, "hi", &hi)
		td.MaybeScanArgs(t, "max-nodes", &maxNodes)
		d := MakeDomain(int32(lo), int32(hi))
		switch kind {
		case "sum":
			r = newForestHarness[payload.Sum](payload.SumAggregator{},
				func(n int64) payload.Sum { return payload.Sum{Count: n} }, d, maxNodes)
		case "freq":
			r = newForestHarness[payload.FrequencyMax](payload.FrequencyMaxAggregator{},
				payload.Occurrences, d, maxNodes)
		case "max":
			r = newForestHarness[payload.RangeMax](payload.RangeMaxAggregator{},
				payload.Add, d, maxNodes)
		default:
			td.Fatalf(t, "unknown kind %q", kind)
		}
		return fmt.Sprintf("forest over %s: depth %d", d, d.Depth())
	})
}

func TestForestMismatch(t *testing.T) {
	f1 := New[payload.Sum](payload.SumAggregator{}, MakeDomain(1, 8), nil)
	f2 := New[payload.Sum](payload.SumAggregator{}, MakeDomain(1, 8), nil)
	f3 := New[payload.Sum](payload.SumAggregator{}, MakeDomain(1, 16), nil)

	a := testutils.CheckErr(f1.NewSingleton(3, payload.Sum{Count: 1}))
	b := testutils.CheckErr(f2.NewSingleton(3, payload.Sum{Count: 1}))
	c := testutils.CheckErr(f3.NewSingleton(3, payload.Sum{Count: 1}))

	require.Equal(t, "panic: domain mismatch", catchMarked(func() string {
		f1.Merge(&a, &b)
		return ""
	}))
	require.Equal(t, "panic: domain mismatch", catchMarked(func() string {
		f1.Merge(&a, &c)
		return ""
	}))
	// A failed merge leaves both trees untouched.
	require.Equal(t, payload.Sum{Count: 1, KeySum: 3}, f1.QueryAll(&a))
	require.Equal(t, payload.Sum{Count: 1, KeySum: 3}, f2.QueryAll(&b))

	// Trees created before a reset belong to a forest that no longer exists.
	f1.Reset()
	require.Equal(t, "panic: domain mismatch", catchMarked(func() string {
		return f1.QueryAll(&a).String()
	}))
	require.Equal(t, uint32(0), f1.Metrics().Arena.Nodes)
}

// TestMergeCopiedTree merges a tree with a copy of itself, which would make
// every node reachable twice.
func TestMergeCopiedTree(t *testing.T) {
	f := New[payload.Sum](payload.SumAggregator{}, MakeDomain(1, 8), nil)
	a := testutils.CheckErr(f.NewSingleton(3, payload.Sum{Count: 1}))
	require.NoError(t, f.Update(&a, 6, payload.Sum{Count: 2}))
	alias := a
	require.Equal(t, "panic: use after merge", catchMarked(func() string {
		f.Merge(&a, &alias)
		return ""
	}))
	// Neither copy was touched.
	require.False(t, alias.Consumed())
	require.Equal(t, payload.Sum{Count: 3, KeySum: 15}, f.QueryAll(&a))
	require.Equal(t, uint32(f.Len(&a)), f.Metrics().Live())
	require.NoError(t, f.Check(&a))

	// Copies of an empty tree hold no nodes and merge trivially.
	e := f.NewTree()
	ecopy := e
	f.Merge(&e, &ecopy)
	require.True(t, ecopy.Consumed())
	require.True(t, e.Empty())
}

func TestZeroTreeBinds(t *testing.T) {
	f := New[payload.Sum](payload.SumAggregator{}, MakeDomain(-10, 10), nil)
	var tr Tree
	require.True(t, tr.Empty())
	require.Equal(t, Domain{}, tr.Domain())
	require.Equal(t, payload.Sum{}, f.QueryAll(&tr))
	require.Equal(t, MakeDomain(-10, 10), tr.Domain())
	require.NoError(t, f.Update(&tr, -10, payload.Sum{Count: 2}))
	require.False(t, tr.Empty())
	require.Equal(t, payload.Sum{Count: 2, KeySum: -20}, f.QueryAll(&tr))
	require.Equal(t, "<empty>\n", f.DebugString(&Tree{}))
}

func TestFullInt32Domain(t *testing.T) {
	d := MakeDomain(math.MinInt32, math.MaxInt32)
	f := New[payload.Sum](payload.SumAggregator{}, d, nil)
	require.Equal(t, 32, d.Depth())

	a := testutils.CheckErr(f.NewSingleton(math.MinInt32, payload.Sum{Count: 1}))
	b := testutils.CheckErr(f.NewSingleton(math.MaxInt32, payload.Sum{Count: 1}))
	c := testutils.CheckErr(f.NewSingleton(0, payload.Sum{Count: 1}))
	f.Merge(&a, &b)
	f.Merge(&a, &c)
	require.Equal(t, payload.Sum{Count: 3, KeySum: -1}, f.QueryAll(&a))
	require.Equal(t, payload.Sum{Count: 1}, f.Query(&a, -1, 1))
	require.NoError(t, f.Check(&a))
}
