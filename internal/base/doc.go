// Copyright 2024 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package base defines fundamental types used across aggtree: the value
// Domain a tree is built over, the error taxonomy, the Logger interface and
// the EventListener through which the engine reports arena growth, merges
// and capacity exhaustion.
//
// # Domains
//
// Every aggregation tree covers a closed range of integer keys [Lo, Hi]. The
// range is never stored per node; it is split at Mid() on the way down, so two
// trees can only be merged when they were built over the same Domain. Callers
// normally derive the Domain once from a discretization of their raw values
// and pass it everywhere.
package base
