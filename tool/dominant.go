// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package tool

import (
	"math"

	"github.com/cockroachdb/aggtree"
	"github.com/cockroachdb/aggtree/payload"
	"github.com/cockroachdb/aggtree/traverse"
	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
)

func (t *T) runDominant(cmd *cobra.Command, args []string) error {
	r, err := t.newRun(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	in := newReader(cmd.InOrStdin())
	n := in.vertexCount()
	colors := make([]int32, n+1)
	lo, hi := int32(math.MaxInt32), int32(math.MinInt32)
	for v := int32(1); v <= n && in.err == nil; v++ {
		colors[v] = in.int32("color", math.MinInt32, math.MaxInt32)
		lo, hi = min(lo, colors[v]), max(hi, colors[v])
	}
	g := in.graph(n)
	if in.err != nil {
		return in.err
	}

	answers, err := dominant(r, g, colors, aggtree.MakeDomain(lo, hi))
	if err != nil {
		return err
	}
	writeInts(cmd.OutOrStdout(), answers[1:])
	return r.finish(cmd.OutOrStdout())
}

// dominant returns, for every vertex, the sum of the colors occurring most
// often in its subtree.
func dominant(r *run, g *traverse.Graph, colors []int32, d aggtree.Domain) ([]int64, error) {
	n := g.NumVertices()
	f := aggtree.New[payload.FrequencyMax](payload.FrequencyMaxAggregator{}, d, r.options(int(n), d))
	answers := make([]int64, n+1)
	_, err := traverseTree(r, g, f, traverse.Hooks{
		Seed: func(v int32, tr *aggtree.Tree) error {
			return f.Update(tr, colors[v], payload.Occurrences(1))
		},
		Answer: func(v int32, tr *aggtree.Tree) {
			answers[v] = f.QueryAll(tr).BestKeySum
		},
	})
	if err != nil {
		return nil, errors.Wrap(err, "dominant")
	}
	if r.t.verbose {
		m := f.Metrics()
		r.logMetrics(&m)
	}
	return answers, nil
}
