// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package traverse

import "github.com/cockroachdb/errors"

// ErrNotATree is returned when the graph handed to a walk is not a tree: it
// is disconnected or contains a cycle.
var ErrNotATree = errors.New("traverse: graph is not a tree")

// Order is the result of a depth-first walk from Root. Slices are indexed by
// vertex; index 0 is unused.
type Order struct {
	Root int32
	// Parent[v] is the parent of v, or 0 for the root.
	Parent []int32
	// Depth[v] is the number of edges between v and the root.
	Depth []int32
	// Post lists every vertex after all of its descendants.
	Post []int32
}

// PostOrder walks the tree g from root. Children are visited in the order of
// g.Neighbors.
func PostOrder(g *Graph, root int32) (*Order, error) {
	if root < 1 || root > g.n {
		return nil, errors.Newf("traverse: root %d outside [1,%d]", errors.Safe(root), errors.Safe(g.n))
	}
	if g.NumEdges() != int(g.n)-1 {
		return nil, errors.Wrapf(ErrNotATree, "%d vertices, %d edges",
			errors.Safe(g.n), errors.Safe(g.NumEdges()))
	}
	o := &Order{
		Root:   root,
		Parent: make([]int32, g.n+1),
		Depth:  make([]int32, g.n+1),
		Post:   make([]int32, 0, g.n),
	}
	for v := range o.Depth {
		o.Depth[v] = -1
	}

	type frame struct {
		v    int32
		next int32
	}
	stack := []frame{{v: root}}
	o.Depth[root] = 0
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		nbrs := g.Neighbors(top.v)
		if int(top.next) == len(nbrs) {
			o.Post = append(o.Post, top.v)
			stack = stack[:len(stack)-1]
			continue
		}
		c := nbrs[top.next]
		top.next++
		if o.Depth[c] >= 0 {
			// The parent, or a second path to an already visited vertex. The
			// latter implies a cycle and is caught by the count below.
			continue
		}
		o.Parent[c] = top.v
		o.Depth[c] = o.Depth[top.v] + 1
		stack = append(stack, frame{v: c})
	}
	if len(o.Post) != int(g.n) {
		return nil, errors.Wrapf(ErrNotATree, "%d of %d vertices reachable from %d",
			errors.Safe(len(o.Post)), errors.Safe(g.n), errors.Safe(root))
	}
	return o, nil
}

// Children returns the children of v in visit order.
func (o *Order) Children(g *Graph, v int32) []int32 {
	var res []int32
	for _, c := range g.Neighbors(v) {
		if o.Parent[c] == v && c != o.Root {
			res = append(res, c)
		}
	}
	return res
}
