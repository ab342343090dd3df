// Copyright 2025 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package testutils

import "testing"

// Logger routes forest log messages to a test's log, tagged with their level
// so that capacity errors stand out among merge and growth events.
type Logger struct {
	T testing.TB
}

// Infof implements the aggtree.Logger interface.
func (l Logger) Infof(format string, args ...interface{}) {
	l.T.Helper()
	l.T.Logf("info: "+format, args...)
}

// Errorf implements the aggtree.Logger interface. Errors are logged, not
// failed: an exhausted arena is a reported condition.
func (l Logger) Errorf(format string, args ...interface{}) {
	l.T.Helper()
	l.T.Logf("error: "+format, args...)
}

// Fatalf implements the aggtree.Logger interface.
func (l Logger) Fatalf(format string, args ...interface{}) {
	l.T.Helper()
	l.T.Fatalf(format, args...)
}
