// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package tool

import (
	"math"

	"github.com/cockroachdb/aggtree"
	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
)

// maxRemapValue bounds the values of the remap command. Pending
// substitutions hold a table over all values.
const maxRemapValue = 1 << 16

// substitution replaces x by y at every position in [l, r].
type substitution struct {
	l, r, x, y int32
}

func (t *T) runRemap(cmd *cobra.Command, args []string) error {
	r, err := t.newRun(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	in := newReader(cmd.InOrStdin())
	n := in.int32("position count", 1, math.MaxInt32-1)
	values := make([]int32, n)
	k := int32(1)
	for i := range values {
		if in.err != nil {
			break
		}
		values[i] = in.int32("value", 1, maxRemapValue)
		k = max(k, values[i])
	}
	q := in.int32("substitution count", 0, math.MaxInt32)
	subs := make([]substitution, 0, q)
	for i := int32(0); i < q && in.err == nil; i++ {
		s := substitution{
			l: in.int32("range start", 1, int64(n)),
			r: in.int32("range end", 1, int64(n)),
			x: in.int32("value", 1, maxRemapValue),
			y: in.int32("value", 1, maxRemapValue),
		}
		if in.err == nil && s.l > s.r {
			in.err = errors.Newf("empty range [%d,%d]", s.l, s.r)
		}
		k = max(k, s.x, s.y)
		subs = append(subs, s)
	}
	if in.err != nil {
		return in.err
	}

	domain := aggtree.MakeDomain(1, n)
	rm := aggtree.NewRemapper(n, k, r.options(int(n), domain))
	tr, err := rm.Build(values)
	if err != nil {
		return errors.Wrap(err, "remap")
	}
	for _, s := range subs {
		rm.AssignMapping(&tr, s.l, s.r, s.x, s.y)
	}
	writeInts(cmd.OutOrStdout(), rm.MaterializeAll(&tr))
	if t.verbose {
		m := rm.Forest().Metrics()
		r.logMetrics(&m)
	}
	return r.finish(cmd.OutOrStdout())
}
