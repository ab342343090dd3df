// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package traverse

import "math/bits"

// LCA answers lowest common ancestor queries by binary lifting.
type LCA struct {
	// up[j][v] is the 2^j-th ancestor of v, or 0 past the root.
	up    [][]int32
	depth []int32
}

// NewLCA builds the ancestor tables from a walk.
func NewLCA(o *Order) *LCA {
	n := len(o.Parent)
	levels := max(1, bits.Len(uint(n)))
	l := &LCA{up: make([][]int32, levels), depth: o.Depth}
	l.up[0] = o.Parent
	for j := 1; j < levels; j++ {
		prev, cur := l.up[j-1], make([]int32, n)
		for v := range cur {
			cur[v] = prev[prev[v]]
		}
		l.up[j] = cur
	}
	return l
}

// Parent returns the parent of v, or 0 for the root.
func (l *LCA) Parent(v int32) int32 {
	return l.up[0][v]
}

// Depth returns the depth of v.
func (l *LCA) Depth(v int32) int32 {
	return l.depth[v]
}

// Ancestor returns the k-th ancestor of v, or 0 if v has fewer than k
// ancestors.
func (l *LCA) Ancestor(v int32, k int32) int32 {
	if k > l.depth[v] {
		return 0
	}
	for j := 0; k > 0; j++ {
		if k&1 != 0 {
			v = l.up[j][v]
		}
		k >>= 1
	}
	return v
}

// Query returns the lowest common ancestor of u and v.
func (l *LCA) Query(u, v int32) int32 {
	if l.depth[u] < l.depth[v] {
		u, v = v, u
	}
	u = l.Ancestor(u, l.depth[u]-l.depth[v])
	if u == v {
		return u
	}
	for j := len(l.up) - 1; j >= 0; j-- {
		if l.up[j][u] != l.up[j][v] {
			u, v = l.up[j][u], l.up[j][v]
		}
	}
	return l.up[0][u]
}
