// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package base

import "github.com/cockroachdb/redact"

// ArenaGrowInfo contains the info for an arena grow event: the backing node
// slice was reallocated to hold more nodes.
type ArenaGrowInfo struct {
	// Nodes is the number of nodes allocated so far.
	Nodes uint32
	// Capacity is the new number of node slots in the backing slice.
	Capacity int
	// MaxNodes is the configured upper bound (0 if unbounded).
	MaxNodes uint32
}

func (i ArenaGrowInfo) String() string {
	return redact.StringWithoutMarkers(i)
}

// SafeFormat implements redact.SafeFormatter.
func (i ArenaGrowInfo) SafeFormat(w redact.SafePrinter, _ rune) {
	w.Printf("arena grown: %d nodes, %d slots", redact.Safe(i.Nodes), redact.Safe(i.Capacity))
	if i.MaxNodes > 0 {
		w.Printf(", limit %d", redact.Safe(i.MaxNodes))
	}
}

// MergeInfo contains the info for a completed top-level merge.
type MergeInfo struct {
	Domain Domain
	// Visited is the number of node pairs the merge recursed into (both sides
	// present).
	Visited int
	// ShortCircuit is true if either side was empty and the merge returned
	// without touching any node.
	ShortCircuit bool
}

func (i MergeInfo) String() string {
	return redact.StringWithoutMarkers(i)
}

// SafeFormat implements redact.SafeFormatter.
func (i MergeInfo) SafeFormat(w redact.SafePrinter, _ rune) {
	if i.ShortCircuit {
		w.Printf("merge %s: short-circuit", i.Domain)
		return
	}
	w.Printf("merge %s: %d node pairs", i.Domain, redact.Safe(i.Visited))
}

// CapacityInfo contains the info for a failed allocation.
type CapacityInfo struct {
	Nodes    uint32
	MaxNodes uint32
	Err      error
}

func (i CapacityInfo) String() string {
	return redact.StringWithoutMarkers(i)
}

// SafeFormat implements redact.SafeFormatter.
func (i CapacityInfo) SafeFormat(w redact.SafePrinter, _ rune) {
	w.Printf("arena exhausted at %d/%d nodes: %v", redact.Safe(i.Nodes), redact.Safe(i.MaxNodes), i.Err)
}

// EventListener contains a set of functions that will be invoked when various
// significant events occur. Each callback is optional; a nil callback is
// replaced by a no-op in EnsureDefaults.
type EventListener struct {
	// ArenaGrow is invoked after the node arena reallocates its backing slice.
	ArenaGrow func(ArenaGrowInfo)

	// CapacityExhausted is invoked when an allocation fails because the arena
	// reached Options.MaxNodes.
	CapacityExhausted func(CapacityInfo)

	// MergeEnd is invoked after every top-level merge.
	MergeEnd func(MergeInfo)
}

// EnsureDefaults ensures that callbacks are non-nil so that it is safe to
// invoke them. CapacityExhausted defaults to logging through logger.
func (l *EventListener) EnsureDefaults(logger Logger) {
	if l.ArenaGrow == nil {
		l.ArenaGrow = func(ArenaGrowInfo) {}
	}
	if l.CapacityExhausted == nil {
		if logger != nil {
			l.CapacityExhausted = func(info CapacityInfo) {
				logger.Errorf("%s", info)
			}
		} else {
			l.CapacityExhausted = func(CapacityInfo) {}
		}
	}
	if l.MergeEnd == nil {
		l.MergeEnd = func(MergeInfo) {}
	}
}

// MakeLoggingEventListener creates an EventListener that logs all events to
// the specified logger.
func MakeLoggingEventListener(logger Logger) EventListener {
	if logger == nil {
		logger = DefaultLogger{}
	}
	return EventListener{
		ArenaGrow: func(info ArenaGrowInfo) {
			logger.Infof("%s", info)
		},
		CapacityExhausted: func(info CapacityInfo) {
			logger.Errorf("%s", info)
		},
		MergeEnd: func(info MergeInfo) {
			logger.Infof("%s", info)
		},
	}
}

// TeeEventListener wraps two EventListeners, forwarding all events to both.
func TeeEventListener(a, b EventListener) EventListener {
	a.EnsureDefaults(nil)
	b.EnsureDefaults(nil)
	return EventListener{
		ArenaGrow: func(info ArenaGrowInfo) {
			a.ArenaGrow(info)
			b.ArenaGrow(info)
		},
		CapacityExhausted: func(info CapacityInfo) {
			a.CapacityExhausted(info)
			b.CapacityExhausted(info)
		},
		MergeEnd: func(info MergeInfo) {
			a.MergeEnd(info)
			b.MergeEnd(info)
		},
	}
}
