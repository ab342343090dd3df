// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package tool

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
	"github.com/cespare/xxhash/v2"
	"github.com/cockroachdb/aggtree"
	"github.com/cockroachdb/aggtree/payload"
	"github.com/cockroachdb/aggtree/traverse"
	"github.com/cockroachdb/crlib/crtime"
	"github.com/cockroachdb/errors"
	"github.com/guptarohit/asciigraph"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"golang.org/x/exp/rand"
	"golang.org/x/sync/errgroup"
)

type benchConfig struct {
	vertices    int
	colors      int
	trials      int
	concurrency int
	seed        uint64
	plot        bool
}

func defaultBenchConfig() benchConfig {
	return benchConfig{
		vertices:    100000,
		colors:      1000,
		trials:      4,
		concurrency: 4,
		seed:        1,
		plot:        true,
	}
}

func (c *benchConfig) addFlags(cmd *cobra.Command) {
	cmd.Flags().IntVarP(
		&c.vertices, "vertices", "n", c.vertices, "number of vertices of each random tree")
	cmd.Flags().IntVar(
		&c.colors, "colors", c.colors, "number of distinct colors")
	cmd.Flags().IntVar(
		&c.trials, "trials", c.trials, "number of random trees")
	cmd.Flags().IntVarP(
		&c.concurrency, "concurrency", "c", c.concurrency, "number of trials to run concurrently")
	cmd.Flags().Uint64Var(
		&c.seed, "seed", c.seed, "seed of the first trial; trial i uses seed+i")
	cmd.Flags().BoolVar(
		&c.plot, "plot", c.plot, "plot the arena growth of the first trial")
}

// benchResult holds the outcome of one trial.
type benchResult struct {
	metrics aggtree.Metrics
	// pairs records the node pairs visited per merge.
	pairs   *hdrhistogram.Histogram
	growth  []float64
	elapsed time.Duration
	// fingerprint hashes the answers of all vertices.
	fingerprint uint64
	// log buffers the trial's log output; trials run concurrently.
	log bytes.Buffer
}

// randomTree returns a tree over [1, n] where the parent of vertex v is
// drawn uniformly from [1, v).
func randomTree(rng *rand.Rand, n int32) *traverse.Graph {
	b := traverse.NewBuilder(n)
	for v := int32(2); v <= n; v++ {
		if err := b.AddEdge(v, 1+int32(rng.Intn(int(v-1)))); err != nil {
			panic(err)
		}
	}
	return b.Finish()
}

func (t *T) runBench(cmd *cobra.Command, args []string) error {
	c := t.bench
	if c.vertices < 1 || c.colors < 1 || c.trials < 1 || c.concurrency < 1 {
		return errors.New("vertices, colors, trials and concurrency must be positive")
	}
	r, err := t.newRun(cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	results := make([]benchResult, c.trials)
	var g errgroup.Group
	g.SetLimit(c.concurrency)
	for i := range results {
		g.Go(func() error {
			return t.benchTrial(r, c.seed+uint64(i), &results[i])
		})
	}
	err = g.Wait()
	stderr := cmd.ErrOrStderr()
	for i := range results {
		_, _ = results[i].log.WriteTo(stderr)
	}
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	writeBenchTable(w, c, results)
	if c.plot && len(results[0].growth) > 1 {
		fmt.Fprintln(w, asciigraph.Plot(results[0].growth,
			asciigraph.Height(10),
			asciigraph.Caption("arena nodes at each reallocation (trial 0)")))
	}
	return r.finish(w)
}

func (t *T) benchTrial(r *run, seed uint64, res *benchResult) error {
	c := t.bench
	rng := rand.New(rand.NewSource(seed))
	n := int32(c.vertices)
	g := randomTree(rng, n)
	colors := make([]int32, n+1)
	for v := range colors {
		colors[v] = 1 + int32(rng.Intn(c.colors))
	}

	d := aggtree.MakeDomain(1, int32(c.colors))
	opts := r.optionsTo(&res.log, int(n), d)
	if t.opts.InitialNodes == 0 {
		// Let the arena grow so that its growth can be observed.
		opts.InitialNodes = 0
	}
	res.pairs = hdrhistogram.New(0, int64(n)*int64(d.Depth()+1), 2)
	l := aggtree.EventListener{
		ArenaGrow: func(info aggtree.ArenaGrowInfo) {
			res.growth = append(res.growth, float64(info.Nodes))
		},
		MergeEnd: func(info aggtree.MergeInfo) {
			_ = res.pairs.RecordValue(int64(info.Visited))
		},
	}
	l = aggtree.TeeEventListener(*opts.EventListener, l)
	opts.EventListener = &l
	f := aggtree.New[payload.FrequencyMax](payload.FrequencyMaxAggregator{}, d, opts)

	answers := make([]int64, n+1)
	start := crtime.NowMono()
	_, err := traverseTree(r, g, f, traverse.Hooks{
		Seed: func(v int32, tr *aggtree.Tree) error {
			return f.Update(tr, colors[v], payload.Occurrences(1))
		},
		Answer: func(v int32, tr *aggtree.Tree) {
			answers[v] = f.QueryAll(tr).BestKeySum
		},
	})
	res.elapsed = start.Elapsed()
	if err != nil {
		return errors.Wrapf(err, "trial with seed %d", errors.Safe(seed))
	}
	res.metrics = f.Metrics()

	h := xxhash.New()
	var buf [8]byte
	for _, a := range answers[1:] {
		binary.LittleEndian.PutUint64(buf[:], uint64(a))
		_, _ = h.Write(buf[:])
	}
	res.fingerprint = h.Sum64()
	return nil
}

func writeBenchTable(w io.Writer, c benchConfig, results []benchResult) {
	tbl := tablewriter.NewWriter(w)
	tbl.SetHeader([]string{
		"Seed", "Nodes", "Garbage", "Merges", "Short", "Pairs p50", "Pairs p99", "Pairs max", "Elapsed", "Fingerprint",
	})
	for i := range results {
		res := &results[i]
		m := &res.metrics
		tbl.Append([]string{
			fmt.Sprint(c.seed + uint64(i)),
			fmt.Sprint(m.Arena.Nodes),
			fmt.Sprint(m.Arena.Garbage),
			fmt.Sprint(m.Merges),
			fmt.Sprint(m.ShortCircuits),
			fmt.Sprint(res.pairs.ValueAtQuantile(50)),
			fmt.Sprint(res.pairs.ValueAtQuantile(99)),
			fmt.Sprint(res.pairs.Max()),
			res.elapsed.Round(time.Microsecond).String(),
			fmt.Sprintf("%016x", res.fingerprint),
		})
	}
	tbl.Render()
	fmt.Fprintf(w, "%d vertices, %d colors, %d trials\n", c.vertices, c.colors, len(results))
}
