// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package tool

import (
	"math"

	"github.com/cockroachdb/aggtree"
	"github.com/cockroachdb/aggtree/discretize"
	"github.com/cockroachdb/aggtree/payload"
	"github.com/cockroachdb/aggtree/traverse"
	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
)

// distribution hands one item of type z to every vertex on the path x..y.
type distribution struct {
	x, y int32
	z    int64
}

// pathUpdate is one of the four point updates a distribution turns into.
type pathUpdate struct {
	rank  int32
	delta int64
}

func (t *T) runPaths(cmd *cobra.Command, args []string) error {
	r, err := t.newRun(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	in := newReader(cmd.InOrStdin())
	n := in.vertexCount()
	m := in.int32("distribution count", 0, math.MaxInt32)
	g := in.graph(n)
	dists := make([]distribution, 0, m)
	for i := int32(0); i < m && in.err == nil; i++ {
		x := in.int32("path endpoint", 1, int64(n))
		y := in.int32("path endpoint", 1, int64(n))
		dists = append(dists, distribution{x: x, y: y, z: in.int64("item type")})
	}
	if in.err != nil {
		return in.err
	}

	answers, err := paths(r, g, dists)
	if err != nil {
		return err
	}
	writeInts(cmd.OutOrStdout(), answers[1:])
	return r.finish(cmd.OutOrStdout())
}

// paths returns, for every vertex, the item type it holds the most of after
// all distributions.
//
// A distribution over x..y adds one item at x and y and removes one at their
// lowest common ancestor and at its parent. The items a vertex holds are then
// the sum over its subtree.
func paths(r *run, g *traverse.Graph, dists []distribution) ([]int64, error) {
	n := g.NumVertices()
	o, err := traverse.PostOrder(g, 1)
	if err != nil {
		return nil, err
	}
	lca := traverse.NewLCA(o)

	types := make([]int64, len(dists))
	for i := range dists {
		types[i] = dists[i].z
	}
	mapper, err := discretize.New(types)
	if err != nil {
		return nil, err
	}

	updates := make([][]pathUpdate, n+1)
	var count int
	add := func(v, rank int32, delta int64) {
		updates[v] = append(updates[v], pathUpdate{rank: rank, delta: delta})
		count++
	}
	for _, d := range dists {
		rank := mapper.MustRank(d.z)
		l := lca.Query(d.x, d.y)
		add(d.x, rank, 1)
		add(d.y, rank, 1)
		add(l, rank, -1)
		if p := lca.Parent(l); p != 0 {
			add(p, rank, -1)
		}
	}

	domain := aggtree.MakeDomain(mapper.Domain())
	f := aggtree.New[payload.RangeMax](payload.RangeMaxAggregator{}, domain, r.options(count, domain))
	answers := make([]int64, n+1)
	_, err = traverseTree(r, g, f, traverse.Hooks{
		Seed: func(v int32, tr *aggtree.Tree) error {
			for _, u := range updates[v] {
				if err := f.Update(tr, u.rank, payload.Add(u.delta)); err != nil {
					return err
				}
			}
			return nil
		},
		Answer: func(v int32, tr *aggtree.Tree) {
			if best := f.QueryAll(tr); !best.Empty() && best.Max > 0 {
				answers[v] = mapper.Value(best.Key)
			}
		},
	})
	if err != nil {
		return nil, errors.Wrap(err, "paths")
	}
	if r.t.verbose {
		m := f.Metrics()
		r.logMetrics(&m)
	}
	return answers, nil
}
