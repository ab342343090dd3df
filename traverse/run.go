// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package traverse

import "github.com/cockroachdb/aggtree"

// Hooks are the per-vertex callbacks of Run.
type Hooks struct {
	// Seed is invoked with the fresh, empty tree of v before any child of v is
	// merged into it. It typically applies v's own updates.
	Seed func(v int32, t *aggtree.Tree) error
	// Answer is invoked once every child of v has been merged into t. t must
	// not be retained: it is merged into the tree of v's parent right after.
	Answer func(v int32, t *aggtree.Tree)
}

// Run walks the tree g from root and maintains, for every vertex, an
// aggregation tree of f covering its whole subtree. The tree of the root is
// returned; every other tree has been consumed.
func Run[P any](g *Graph, root int32, f *aggtree.Forest[P], h Hooks) (aggtree.Tree, error) {
	o, err := PostOrder(g, root)
	if err != nil {
		return aggtree.Tree{}, err
	}
	trees := make([]aggtree.Tree, g.n+1)
	// Seed parents before their children, mirroring a recursive walk.
	for i := len(o.Post) - 1; i >= 0; i-- {
		v := o.Post[i]
		trees[v] = f.NewTree()
		if h.Seed != nil {
			if err := h.Seed(v, &trees[v]); err != nil {
				return aggtree.Tree{}, err
			}
		}
	}
	for _, v := range o.Post {
		if h.Answer != nil {
			h.Answer(v, &trees[v])
		}
		if p := o.Parent[v]; p != 0 {
			f.MergeInto(&trees[p], &trees[v])
		}
	}
	return trees[root], nil
}

// RunRecursive is equivalent to Run but recurses once per tree level.
func RunRecursive[P any](g *Graph, root int32, f *aggtree.Forest[P], h Hooks) (aggtree.Tree, error) {
	if _, err := PostOrder(g, root); err != nil {
		return aggtree.Tree{}, err
	}
	var visit func(v, parent int32) (aggtree.Tree, error)
	visit = func(v, parent int32) (aggtree.Tree, error) {
		t := f.NewTree()
		if h.Seed != nil {
			if err := h.Seed(v, &t); err != nil {
				return aggtree.Tree{}, err
			}
		}
		for _, c := range g.Neighbors(v) {
			if c == parent {
				continue
			}
			ct, err := visit(c, v)
			if err != nil {
				return aggtree.Tree{}, err
			}
			f.MergeInto(&t, &ct)
		}
		if h.Answer != nil {
			h.Answer(v, &t)
		}
		return t, nil
	}
	return visit(root, 0)
}
