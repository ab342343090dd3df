// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package base

import "github.com/cockroachdb/errors"

// ErrOutOfDomain marks a position or query outside the Domain a tree was
// declared over. It is a caller bug and surfaces as a panic.
var ErrOutOfDomain = errors.New("aggtree: position out of domain")

// ErrDomainMismatch marks a merge of two trees declared over different
// Domains. It is a caller bug and surfaces as a panic.
var ErrDomainMismatch = errors.New("aggtree: domain mismatch")

// ErrUseAfterMerge marks an operation on a tree that was already consumed as
// the source of a merge. It is a caller bug and surfaces as a panic.
var ErrUseAfterMerge = errors.New("aggtree: use after merge")

// ErrOutOfCapacity is returned when the node arena cannot hold another node.
// Unlike the other errors it depends on input size and is returned, not
// raised.
var ErrOutOfCapacity = errors.New("aggtree: arena out of capacity")

// AssertionFailedf returns an assertion failure marked with the given
// sentinel, so that a recovered panic value satisfies errors.Is(v, mark).
func AssertionFailedf(mark error, format string, args ...interface{}) error {
	return errors.Mark(errors.AssertionFailedf(format, args...), mark)
}
