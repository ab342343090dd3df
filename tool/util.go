// Copyright 2019 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package tool

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strconv"

	"github.com/cockroachdb/aggtree"
	"github.com/cockroachdb/aggtree/traverse"
	"github.com/cockroachdb/errors"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

// reader tokenizes whitespace separated integers. The first error sticks:
// later calls return 0.
type reader struct {
	s     *bufio.Scanner
	token int
	err   error
}

func newReader(r io.Reader) *reader {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 64<<10), 1<<20)
	s.Split(bufio.ScanWords)
	return &reader{s: s}
}

func (r *reader) int64(what string) int64 {
	if r.err != nil {
		return 0
	}
	if !r.s.Scan() {
		r.err = r.s.Err()
		if r.err == nil {
			r.err = io.ErrUnexpectedEOF
		}
		r.err = errors.Wrapf(r.err, "reading %s (token %d)", errors.Safe(what), errors.Safe(r.token+1))
		return 0
	}
	r.token++
	v, err := strconv.ParseInt(r.s.Text(), 10, 64)
	if err != nil {
		r.err = errors.Wrapf(err, "reading %s (token %d)", errors.Safe(what), errors.Safe(r.token))
		return 0
	}
	return v
}

func (r *reader) int32(what string, lo, hi int64) int32 {
	v := r.int64(what)
	if r.err == nil && (v < lo || v > hi) {
		r.err = errors.Newf("%s %d outside [%d,%d] (token %d)",
			errors.Safe(what), v, errors.Safe(lo), errors.Safe(hi), errors.Safe(r.token))
	}
	return int32(v)
}

// graph reads n-1 edges over [1, n].
func (r *reader) graph(n int32) *traverse.Graph {
	b := traverse.NewBuilder(n)
	for i := int32(1); i < n && r.err == nil; i++ {
		u := r.int32("edge endpoint", 1, int64(n))
		v := r.int32("edge endpoint", 1, int64(n))
		if r.err == nil {
			r.err = b.AddEdge(u, v)
		}
	}
	return b.Finish()
}

func (r *reader) vertexCount() int32 {
	return r.int32("vertex count", 1, math.MaxInt32-1)
}

// stderrLogger logs to the command's stderr.
type stderrLogger struct {
	w io.Writer
}

func (l stderrLogger) Infof(format string, args ...interface{}) {
	fmt.Fprintf(l.w, format+"\n", args...)
}

func (l stderrLogger) Errorf(format string, args ...interface{}) {
	fmt.Fprintf(l.w, format+"\n", args...)
}

func (l stderrLogger) Fatalf(format string, args ...interface{}) {
	fmt.Fprintf(l.w, format+"\n", args...)
	os.Exit(1)
}

// run bundles the per-invocation state shared by the forests of a command.
type run struct {
	t         *T
	stderr    io.Writer
	registry  *prometheus.Registry
	collector *aggtree.PrometheusCollector
}

func (t *T) newRun(stderr io.Writer) (*run, error) {
	if t.optionsPath != "" {
		data, err := os.ReadFile(t.optionsPath)
		if err != nil {
			return nil, err
		}
		if err := t.opts.Parse(string(data)); err != nil {
			return nil, errors.Wrapf(err, "%s", t.optionsPath)
		}
	}
	r := &run{t: t, stderr: stderr}
	if t.metrics {
		r.registry = prometheus.NewRegistry()
		r.collector = aggtree.NewPrometheusCollector("aggtree")
		if err := r.collector.Register(r.registry); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// options returns the options for a forest expected to hold the given number
// of insertions over d. Unless configured otherwise the arena is sized up
// front so that it never reallocates.
func (r *run) options(insertions int, d aggtree.Domain) *aggtree.Options {
	return r.optionsTo(r.stderr, insertions, d)
}

// optionsTo is like options but logs to w.
func (r *run) optionsTo(w io.Writer, insertions int, d aggtree.Domain) *aggtree.Options {
	opts := r.t.opts.Clone()
	if opts.InitialNodes == 0 {
		opts.InitialNodes = insertions * (d.Depth() + 1)
		if opts.MaxNodes != 0 {
			opts.InitialNodes = min(opts.InitialNodes, int(opts.MaxNodes))
		}
	}
	logger := stderrLogger{w: w}
	opts.Logger = logger
	var l aggtree.EventListener
	if r.t.verbose {
		l = aggtree.MakeLoggingEventListener(logger)
	}
	if r.collector != nil {
		l = aggtree.TeeEventListener(l, r.collector.EventListener())
	}
	if opts.EventListener != nil {
		l = aggtree.TeeEventListener(*opts.EventListener, l)
	}
	opts.EventListener = &l
	return opts
}

func (r *run) logMetrics(m *aggtree.Metrics) {
	stderrLogger{w: r.stderr}.Infof("%s", m)
}

// traverseTree runs the configured traversal driver.
func traverseTree[P any](
	r *run, g *traverse.Graph, f *aggtree.Forest[P], h traverse.Hooks,
) (aggtree.Tree, error) {
	if r.t.recursive {
		return traverse.RunRecursive(g, 1, f, h)
	}
	return traverse.Run(g, 1, f, h)
}

// finish prints the collected metrics, if requested.
func (r *run) finish(w io.Writer) error {
	if r.registry == nil {
		return nil
	}
	families, err := r.registry.Gather()
	if err != nil {
		return err
	}
	sort.Slice(families, func(i, j int) bool {
		return families[i].GetName() < families[j].GetName()
	})
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			switch mf.GetType() {
			case dto.MetricType_COUNTER:
				fmt.Fprintf(w, "%s %g\n", mf.GetName(), m.GetCounter().GetValue())
			case dto.MetricType_GAUGE:
				fmt.Fprintf(w, "%s %g\n", mf.GetName(), m.GetGauge().GetValue())
			case dto.MetricType_HISTOGRAM:
				h := m.GetHistogram()
				fmt.Fprintf(w, "%s_count %d\n", mf.GetName(), h.GetSampleCount())
				fmt.Fprintf(w, "%s_sum %g\n", mf.GetName(), h.GetSampleSum())
			}
		}
	}
	return nil
}

func writeInts[T int32 | int64](w io.Writer, vals []T) {
	bw := bufio.NewWriter(w)
	for i, v := range vals {
		if i > 0 {
			bw.WriteByte(' ')
		}
		bw.WriteString(strconv.FormatInt(int64(v), 10))
	}
	bw.WriteByte('\n')
	_ = bw.Flush()
}
