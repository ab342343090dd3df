// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package base

import (
	"fmt"
	"log"
	"os"
)

// Logger receives the messages a forest emits about arena growth, exhausted
// capacity and merges (see MakeLoggingEventListener).
type Logger interface {
	Infof(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	Fatalf(format string, args ...interface{})
}

// logPrefix tags every line written by DefaultLogger.
const logPrefix = "aggtree: "

// DefaultLogger writes to the Go stdlib log package, tagging every message so
// that forest events are distinguishable in a shared process log.
type DefaultLogger struct{}

var _ Logger = DefaultLogger{}

func (DefaultLogger) output(format string, args ...interface{}) {
	_ = log.Output(3, logPrefix+fmt.Sprintf(format, args...))
}

// Infof implements the Logger.Infof interface.
func (l DefaultLogger) Infof(format string, args ...interface{}) {
	l.output(format, args...)
}

// Errorf implements the Logger.Errorf interface.
func (l DefaultLogger) Errorf(format string, args ...interface{}) {
	l.output("error: "+format, args...)
}

// Fatalf implements the Logger.Fatalf interface.
func (l DefaultLogger) Fatalf(format string, args ...interface{}) {
	l.output("fatal: "+format, args...)
	os.Exit(1)
}

// NoopLogger drops every message. Fatalf still exits.
type NoopLogger struct{}

var _ Logger = NoopLogger{}

// Infof implements the Logger.Infof interface.
func (NoopLogger) Infof(format string, args ...interface{}) {}

// Errorf implements the Logger.Errorf interface.
func (NoopLogger) Errorf(format string, args ...interface{}) {}

// Fatalf implements the Logger.Fatalf interface.
func (NoopLogger) Fatalf(format string, args ...interface{}) {
	os.Exit(1)
}
