// Copyright 2019 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package tool implements the aggtree command line tool: subtree
// aggregations over trees read from an input stream, and a randomized
// benchmark of the merge machinery.
package tool

import (
	"github.com/cockroachdb/aggtree"
	"github.com/spf13/cobra"
)

// T is the container for all of the aggtree commands.
type T struct {
	Commands []*cobra.Command

	// opts seeds the options of every forest the commands create. The
	// --options flag parses into it.
	opts        aggtree.Options
	optionsPath string
	verbose     bool
	recursive   bool
	metrics     bool

	bench benchConfig
}

// Option is a functional option for configuring the tool.
type Option func(*T)

// DefaultOptions sets the options that forests start from; --options
// overrides individual fields.
func DefaultOptions(opts aggtree.Options) Option {
	return func(t *T) {
		t.opts = opts
	}
}

// New creates a new aggtree tool.
func New(opts ...Option) *T {
	t := &T{}
	for _, opt := range opts {
		opt(t)
	}
	t.bench = defaultBenchConfig()

	dominant := &cobra.Command{
		Use:   "dominant",
		Short: "sum of the most frequent colors of every subtree",
		Long: `
Reads n, the colors of the vertices 1..n and n-1 edges from standard input and
prints, for every vertex of the tree rooted at 1, the sum of the colors that
occur most often in its subtree.
`,
		Args: cobra.NoArgs,
		RunE: t.runDominant,
	}
	paths := &cobra.Command{
		Use:   "paths",
		Short: "most common item type at every vertex after path distributions",
		Long: `
Reads n and m, n-1 edges and m distributions "x y z" from standard input. Each
distribution hands one item of type z to every vertex on the path from x to
y. Prints, for every vertex, the type it holds most items of (the smallest
such type on ties), or 0 if it holds none.
`,
		Args: cobra.NoArgs,
		RunE: t.runPaths,
	}
	remap := &cobra.Command{
		Use:   "remap",
		Short: "apply range value substitutions to an array",
		Long: `
Reads n, n values, q and q substitutions "l r x y" from standard input. Each
substitution replaces x by y at every position in [l, r]. Prints the final
array.
`,
		Args: cobra.NoArgs,
		RunE: t.runRemap,
	}
	bench := &cobra.Command{
		Use:   "bench",
		Short: "benchmark subtree aggregation over random trees",
		Args:  cobra.NoArgs,
		RunE:  t.runBench,
	}

	t.Commands = []*cobra.Command{dominant, paths, remap, bench}
	for _, cmd := range t.Commands {
		cmd.Flags().StringVar(
			&t.optionsPath, "options", "", "path to an options file (see Options.String)")
		cmd.Flags().BoolVarP(
			&t.verbose, "verbose", "v", false, "log forest events to stderr")
		cmd.Flags().BoolVar(
			&t.metrics, "metrics", false, "print the collected metrics after the run")
	}
	for _, cmd := range []*cobra.Command{dominant, paths, bench} {
		cmd.Flags().BoolVar(
			&t.recursive, "recursive", false, "use the recursive traversal")
	}
	t.bench.addFlags(bench)
	return t
}
