// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package aggtree

import (
	"testing"

	"github.com/cockroachdb/aggtree/internal/arena"
	"github.com/stretchr/testify/require"
)

func TestOptionsEnsureDefaults(t *testing.T) {
	var nilOpts *Options
	o := nilOpts.EnsureDefaults()
	require.Equal(t, uint32(arena.MaxNodes), o.MaxNodes)
	require.NotNil(t, o.EventListener)
	require.NotNil(t, o.EventListener.MergeEnd)
	require.Equal(t, DefaultLogger{}, o.Logger)

	o = (&Options{InitialNodes: -3, Logger: NoopLogger{}}).EnsureDefaults()
	require.Equal(t, 0, o.InitialNodes)
	require.Equal(t, NoopLogger{}, o.Logger)
}

func TestOptionsString(t *testing.T) {
	o := &Options{MaxNodes: 1 << 20, InitialNodes: 4096, CheckInvariants: true}
	const expected = `[Options]
  check_invariants=true
  initial_nodes=4096
  max_nodes=1048576
`
	require.Equal(t, expected, o.String())

	var parsed Options
	require.NoError(t, parsed.Parse(o.String()))
	require.Equal(t, o.String(), parsed.String())
}

func TestOptionsParse(t *testing.T) {
	for _, tc := range []struct {
		in  string
		err string
	}{
		{in: "[Options]\n  max_nodes=12\n; comment\n# comment\n"},
		{in: "[Options]\n  max_nodes=-1\n", err: `invalid value for Options.max_nodes: .*invalid syntax`},
		{in: "[Options]\n  bogus=1\n", err: `unknown option: Options.bogus`},
		{in: "[Levels]\n  max_nodes=1\n", err: `unknown section: .*Levels`},
		{in: "[Options]\n  max_nodes\n", err: `invalid key=value syntax: .*max_nodes`},
	} {
		t.Run("", func(t *testing.T) {
			var o Options
			err := o.Parse(tc.in)
			if tc.err == "" {
				require.NoError(t, err)
				require.Equal(t, uint32(12), o.MaxNodes)
				return
			}
			require.Regexp(t, tc.err, err)
		})
	}
}

func TestOptionsClone(t *testing.T) {
	o := &Options{MaxNodes: 10}
	c := o.Clone()
	c.MaxNodes = 20
	require.Equal(t, uint32(10), o.MaxNodes)
	require.Equal(t, &Options{}, (*Options)(nil).Clone())
}
