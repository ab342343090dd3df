// Copyright 2019 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package aggtree

import (
	"github.com/cockroachdb/crlib/crhumanize"
	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/redact"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds counters of the work a forest has performed.
type Metrics struct {
	Arena struct {
		// Nodes is the number of nodes allocated, live or discarded.
		Nodes uint32
		// Garbage is the number of nodes discarded by merges.
		Garbage uint32
		// MaxNodes is the allocation limit.
		MaxNodes uint32
	}
	// Updates is the number of point updates, including those that created
	// singleton trees.
	Updates uint64
	// Queries is the number of range and point queries.
	Queries uint64
	// Merges is the number of top-level merges.
	Merges uint64
	// ShortCircuits is the number of merges where either side was empty.
	ShortCircuits uint64
	// MergeVisits is the number of node pairs all merges recursed into. It is
	// bounded by Arena.Nodes.
	MergeVisits uint64
}

// Live returns the number of allocated nodes still reachable from a tree.
func (m Metrics) Live() uint32 {
	return m.Arena.Nodes - m.Arena.Garbage
}

// Metrics returns a snapshot of the forest's counters.
func (f *Forest[P]) Metrics() Metrics {
	var m Metrics
	m.Arena.Nodes = f.arena.Size()
	m.Arena.Garbage = f.arena.Garbage()
	m.Arena.MaxNodes = f.arena.Capacity()
	m.Updates = f.metrics.updates
	m.Queries = f.metrics.queries
	m.Merges = f.metrics.merges
	m.ShortCircuits = f.metrics.shortCircuits
	m.MergeVisits = f.metrics.mergeVisits
	return m
}

func (m *Metrics) String() string {
	return redact.StringWithoutMarkers(m)
}

// SafeFormat implements redact.SafeFormatter.
func (m *Metrics) SafeFormat(w redact.SafePrinter, _ rune) {
	count := func(v uint64) redact.SafeString {
		return redact.SafeString(crhumanize.Count(v, crhumanize.Compact))
	}
	w.Printf("arena: %s nodes (%s garbage, %s live)\n",
		count(uint64(m.Arena.Nodes)), count(uint64(m.Arena.Garbage)), count(uint64(m.Live())))
	w.Printf("updates: %s, queries: %s\n", count(m.Updates), count(m.Queries))
	w.Printf("merges: %s (%s short-circuit, %s node pairs)\n",
		count(m.Merges), count(m.ShortCircuits), count(m.MergeVisits))
}

// PrometheusCollector exposes forest events as Prometheus metrics. Hook it up
// through Options.EventListener (see EventListener) and register it with a
// prometheus.Registerer.
type PrometheusCollector struct {
	Merges        prometheus.Counter
	ShortCircuits prometheus.Counter
	MergeVisits   prometheus.Histogram
	ArenaGrows    prometheus.Counter
	// ArenaNodes is set on every arena reallocation. When several forests
	// report to one collector it holds the value of the last one to grow.
	ArenaNodes        prometheus.Gauge
	CapacityExhausted prometheus.Counter
}

// NewPrometheusCollector creates the metrics under the given namespace.
func NewPrometheusCollector(namespace string) *PrometheusCollector {
	return &PrometheusCollector{
		Merges: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "merges_total",
			Help:      "Number of top-level merges.",
		}),
		ShortCircuits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "merge_short_circuits_total",
			Help:      "Number of merges where either tree was empty.",
		}),
		MergeVisits: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "merge_node_pairs",
			Help:      "Node pairs visited per merge.",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 10),
		}),
		ArenaGrows: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "arena_grows_total",
			Help:      "Number of arena reallocations.",
		}),
		ArenaNodes: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "arena_nodes",
			Help:      "Nodes allocated at the last arena reallocation of any reporting forest.",
		}),
		CapacityExhausted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "arena_exhausted_total",
			Help:      "Number of allocations refused by a full arena.",
		}),
	}
}

// Collectors returns every metric of c.
func (c *PrometheusCollector) Collectors() []prometheus.Collector {
	return []prometheus.Collector{
		c.Merges, c.ShortCircuits, c.MergeVisits, c.ArenaGrows, c.ArenaNodes, c.CapacityExhausted,
	}
}

// Register registers every metric of c with r.
func (c *PrometheusCollector) Register(r prometheus.Registerer) error {
	for _, m := range c.Collectors() {
		if err := r.Register(m); err != nil {
			return errors.Wrap(err, "aggtree: registering metrics")
		}
	}
	return nil
}

// EventListener returns an EventListener that updates c.
func (c *PrometheusCollector) EventListener() EventListener {
	return EventListener{
		ArenaGrow: func(info ArenaGrowInfo) {
			c.ArenaGrows.Inc()
			c.ArenaNodes.Set(float64(info.Nodes))
		},
		CapacityExhausted: func(CapacityInfo) {
			c.CapacityExhausted.Inc()
		},
		MergeEnd: func(info MergeInfo) {
			c.Merges.Inc()
			if info.ShortCircuit {
				c.ShortCircuits.Inc()
			}
			c.MergeVisits.Observe(float64(info.Visited))
		},
	}
}
