// Copyright 2020 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

//go:build invariants || race

package invariants

import "fmt"

// Enabled is true if we were built with the "invariants" or "race" build tags.
const Enabled = true

// Tombstones records integer identifiers (arena handles) that must never be
// dereferenced again. In non-invariant builds the struct is zero-sized and
// Contains always returns false.
type Tombstones struct {
	words []uint64
}

// Add marks i as dead. Marking the same identifier twice panics: it means two
// owners released the same storage.
func (t *Tombstones) Add(i uint32) {
	w := int(i / 64)
	for w >= len(t.words) {
		t.words = append(t.words, 0)
	}
	bit := uint64(1) << (i % 64)
	if t.words[w]&bit != 0 {
		panic(fmt.Sprintf("double discard of %d", i))
	}
	t.words[w] |= bit
}

// Contains returns true if i was marked dead.
func (t *Tombstones) Contains(i uint32) bool {
	w := int(i / 64)
	if w >= len(t.words) {
		return false
	}
	return t.words[w]&(uint64(1)<<(i%64)) != 0
}

// Reset forgets every tombstone.
func (t *Tombstones) Reset() {
	t.words = t.words[:0]
}

// CheckBounds panics if the index is not in the range [0, n). No-op in
// non-invariant builds.
func CheckBounds[T Integer](i T, n T) {
	if i < 0 || i >= n {
		panic(fmt.Sprintf("index %d out of bounds [0, %d)", i, n))
	}
}

// SafeSub returns a - b. If a < b, it panics in invariant builds and returns 0
// in non-invariant builds.
func SafeSub[T Integer](a, b T) T {
	if a < b {
		panic(fmt.Sprintf("underflow: %d - %d", a, b))
	}
	return a - b
}
