// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package aggtree

import (
	"github.com/cockroachdb/aggtree/internal/arena"
	"github.com/cockroachdb/aggtree/internal/treeprinter"
)

// DebugString returns a multi-line rendering of t, one node per line with
// the key range it covers and its payload. Absent children are omitted. It
// does not push down deferred state.
func (f *Forest[P]) DebugString(t *Tree) string {
	f.bind(t)
	if t.root == arena.Nil {
		return "<empty>\n"
	}
	tp := treeprinter.New()
	f.describe(tp, t.root, f.domain)
	return tp.String()
}

func (f *Forest[P]) describe(tp treeprinter.Node, h arena.Handle, d Domain) {
	n := f.arena.Get(h)
	c := tp.Childf("%s %v", d, n.payload)
	if d.IsLeaf() {
		return
	}
	left, right := n.left, n.right
	if left != arena.Nil {
		f.describe(c, left, d.Left())
	}
	if right != arena.Nil {
		f.describe(c, right, d.Right())
	}
}
