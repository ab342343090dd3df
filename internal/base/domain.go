// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package base

import "github.com/cockroachdb/redact"

// Domain is the closed key range [Lo, Hi] an aggregation tree covers.
type Domain struct {
	Lo, Hi int32
}

// MakeDomain returns the domain [lo, hi]. It panics if the range is empty.
func MakeDomain(lo, hi int32) Domain {
	if lo > hi {
		panic(AssertionFailedf(ErrOutOfDomain, "aggtree: empty domain [%d,%d]", lo, hi))
	}
	return Domain{Lo: lo, Hi: hi}
}

// Contains returns true if pos lies within the domain.
func (d Domain) Contains(pos int32) bool {
	return d.Lo <= pos && pos <= d.Hi
}

// Mid returns the split point of the domain: the left half covers
// [Lo, Mid()] and the right half [Mid()+1, Hi].
func (d Domain) Mid() int32 {
	return d.Lo + int32((int64(d.Hi)-int64(d.Lo))/2)
}

// Left returns the left half of the domain.
func (d Domain) Left() Domain {
	return Domain{Lo: d.Lo, Hi: d.Mid()}
}

// Right returns the right half of the domain.
func (d Domain) Right() Domain {
	return Domain{Lo: d.Mid() + 1, Hi: d.Hi}
}

// IsLeaf returns true if the domain covers a single key.
func (d Domain) IsLeaf() bool {
	return d.Lo == d.Hi
}

// Width returns the number of keys in the domain.
func (d Domain) Width() int64 {
	return int64(d.Hi) - int64(d.Lo) + 1
}

// Intersect clips [ql, qr] to the domain. The second return value is false if
// the intersection is empty.
func (d Domain) Intersect(ql, qr int32) (Domain, bool) {
	lo, hi := max(ql, d.Lo), min(qr, d.Hi)
	if lo > hi {
		return Domain{}, false
	}
	return Domain{Lo: lo, Hi: hi}, true
}

// Covers returns true if d lies completely within [ql, qr].
func (d Domain) Covers(ql, qr int32) bool {
	return ql <= d.Lo && d.Hi <= qr
}

// Disjoint returns true if d and [ql, qr] do not overlap.
func (d Domain) Disjoint(ql, qr int32) bool {
	return qr < d.Lo || d.Hi < ql
}

// Depth returns the height of a tree over the domain: the number of levels
// below the root on the longest path to a leaf.
func (d Domain) Depth() int {
	var depth int
	for w := d.Width(); w > 1; w = (w + 1) / 2 {
		depth++
	}
	return depth
}

func (d Domain) String() string {
	return redact.StringWithoutMarkers(d)
}

// SafeFormat implements redact.SafeFormatter.
func (d Domain) SafeFormat(w redact.SafePrinter, _ rune) {
	w.Printf("[%d,%d]", d.Lo, d.Hi)
}
