// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package traverse walks rooted trees in post-order and drives the
// aggregation trees of an aggtree.Forest along the walk: every vertex gets a
// singleton tree, children are merged into their parent once processed, and
// each vertex is answered after all of its children were merged in.
//
// All walks use explicit stacks so that path-shaped inputs with millions of
// vertices do not exhaust the goroutine stack. RunRecursive is the exception
// and exists to cross-check Run on small inputs.
package traverse

import "github.com/cockroachdb/errors"

// Graph is an undirected graph over the vertices [1, n] stored in compressed
// sparse row form.
type Graph struct {
	n int32
	// offsets[v]..offsets[v+1] delimits the neighbors of v in adj.
	offsets []int32
	adj     []int32
}

// NumVertices returns n.
func (g *Graph) NumVertices() int32 {
	return g.n
}

// NumEdges returns the number of undirected edges.
func (g *Graph) NumEdges() int {
	return len(g.adj) / 2
}

// Neighbors returns the neighbors of v in insertion order. The returned slice
// must not be modified.
func (g *Graph) Neighbors(v int32) []int32 {
	return g.adj[g.offsets[v]:g.offsets[v+1]]
}

// Builder accumulates the edges of a Graph.
type Builder struct {
	n     int32
	edges [][2]int32
}

// NewBuilder returns a Builder for a graph over [1, n].
func NewBuilder(n int32) *Builder {
	return &Builder{n: n}
}

// AddEdge adds the undirected edge u-v.
func (b *Builder) AddEdge(u, v int32) error {
	if u < 1 || u > b.n || v < 1 || v > b.n {
		return errors.Newf("traverse: edge %d-%d outside [1,%d]",
			errors.Safe(u), errors.Safe(v), errors.Safe(b.n))
	}
	if u == v {
		return errors.Newf("traverse: self-loop at %d", errors.Safe(u))
	}
	b.edges = append(b.edges, [2]int32{u, v})
	return nil
}

// Finish builds the Graph. The Builder must not be used afterwards.
func (b *Builder) Finish() *Graph {
	g := &Graph{
		n:       b.n,
		offsets: make([]int32, b.n+2),
		adj:     make([]int32, 2*len(b.edges)),
	}
	for _, e := range b.edges {
		g.offsets[e[0]+1]++
		g.offsets[e[1]+1]++
	}
	for v := int32(1); v <= b.n+1; v++ {
		g.offsets[v] += g.offsets[v-1]
	}
	next := make([]int32, b.n+1)
	copy(next, g.offsets[:b.n+1])
	for _, e := range b.edges {
		g.adj[next[e[0]]] = e[1]
		next[e[0]]++
		g.adj[next[e[1]]] = e[0]
		next[e[1]]++
	}
	b.edges = nil
	return g
}
