// Copyright 2018 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package aggtree

import "github.com/cockroachdb/aggtree/internal/base"

// ArenaGrowInfo exports the base.ArenaGrowInfo type.
type ArenaGrowInfo = base.ArenaGrowInfo

// MergeInfo exports the base.MergeInfo type.
type MergeInfo = base.MergeInfo

// CapacityInfo exports the base.CapacityInfo type.
type CapacityInfo = base.CapacityInfo

// EventListener exports the base.EventListener type.
type EventListener = base.EventListener

// MakeLoggingEventListener exports the base.MakeLoggingEventListener function.
func MakeLoggingEventListener(logger Logger) EventListener {
	return base.MakeLoggingEventListener(logger)
}

// TeeEventListener exports the base.TeeEventListener function.
func TeeEventListener(a, b EventListener) EventListener {
	return base.TeeEventListener(a, b)
}
