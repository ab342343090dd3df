// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package aggtree

import (
	"reflect"

	"github.com/cockroachdb/aggtree/internal/arena"
	"github.com/cockroachdb/aggtree/internal/invariants"
	"github.com/cockroachdb/errors"
)

// Check verifies the structural invariants of t:
//
//   - the payload of every internal node equals the combination of its
//     children's payloads (ignoring deferred state),
//   - no node is reachable twice,
//   - no reachable node was discarded (invariant builds only),
//   - the arena holds no more nodes than the updates performed so far could
//     have created.
func (f *Forest[P]) Check(t *Tree) error {
	f.bind(t)
	seen := make(map[arena.Handle]struct{})
	if err := f.check(t.root, f.domain, seen); err != nil {
		return err
	}
	if bound := f.metrics.updates * uint64(f.depth+1); uint64(f.arena.Size()) > bound {
		return errors.AssertionFailedf("aggtree: %d nodes allocated by %d updates over depth %d",
			errors.Safe(f.arena.Size()), errors.Safe(f.metrics.updates), errors.Safe(f.depth))
	}
	return nil
}

// maybeCheck verifies t after a mutation when Options.CheckInvariants is set,
// and on a small fraction of mutations in invariants builds.
func (f *Forest[P]) maybeCheck(t *Tree) {
	if !f.opts.CheckInvariants && !invariants.Sometimes(1) {
		return
	}
	if err := f.Check(t); err != nil {
		panic(err)
	}
}

func (f *Forest[P]) check(h arena.Handle, d Domain, seen map[arena.Handle]struct{}) error {
	if h == arena.Nil {
		return nil
	}
	if _, ok := seen[h]; ok {
		return errors.AssertionFailedf("aggtree: node %s reachable twice", h)
	}
	seen[h] = struct{}{}
	if f.arena.Discarded(h) {
		return errors.AssertionFailedf("aggtree: discarded node %s reachable", h)
	}
	n := f.arena.Get(h)
	if d.IsLeaf() {
		if n.left != arena.Nil || n.right != arena.Nil {
			return errors.AssertionFailedf("aggtree: leaf %s covering %s has children", h, d)
		}
		return nil
	}
	left, right := n.left, n.right
	want := f.agg.Combine(f.clean(left), f.clean(right))
	got := n.payload
	if f.lazy != nil {
		f.lazy.PushDown(&got, nil, nil)
	}
	if !reflect.DeepEqual(want, got) {
		return errors.AssertionFailedf("aggtree: node %s covering %s holds %v, children combine to %v",
			h, d, got, want)
	}
	if err := f.check(left, d.Left(), seen); err != nil {
		return err
	}
	return f.check(right, d.Right(), seen)
}

// clean returns a copy of the payload of h without deferred state.
func (f *Forest[P]) clean(h arena.Handle) P {
	p := f.payloadOf(h)
	if f.lazy != nil && h != arena.Nil {
		f.lazy.PushDown(&p, nil, nil)
	}
	return p
}
