// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package aggtree

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/cockroachdb/aggtree/internal/arena"
	"github.com/cockroachdb/errors"
)

// Options holds the optional parameters for configuring a Forest. A nil
// *Options is valid and is equivalent to the zero Options.
type Options struct {
	// MaxNodes bounds the number of nodes the forest's arena may allocate.
	// Once reached, updates fail with an error marked ErrOutOfCapacity. The
	// default (0) is the largest handle space the arena supports.
	MaxNodes uint32

	// InitialNodes is the number of node slots allocated up front. Sizing the
	// arena for the expected number of insertions times the domain depth
	// avoids reallocations during a traversal.
	InitialNodes int

	// CheckInvariants verifies the structure of the affected tree after every
	// update and merge. It is expensive and meant for tests and debugging.
	CheckInvariants bool

	// EventListener provides hooks to listening to significant events.
	EventListener *EventListener

	// Logger used to write log messages.
	//
	// The default logger uses the Go standard library log package.
	Logger Logger
}

// EnsureDefaults ensures that the default values for all options are set if a
// valid value was not already specified. Returns the new options.
func (o *Options) EnsureDefaults() *Options {
	if o == nil {
		o = &Options{}
	}
	if o.MaxNodes == 0 || o.MaxNodes > arena.MaxNodes {
		o.MaxNodes = arena.MaxNodes
	}
	if o.InitialNodes < 0 {
		o.InitialNodes = 0
	}
	if o.Logger == nil {
		o.Logger = DefaultLogger{}
	}
	if o.EventListener == nil {
		o.EventListener = &EventListener{}
	}
	o.EventListener.EnsureDefaults(o.Logger)
	return o
}

// Clone creates a shallow-copy of the supplied options.
func (o *Options) Clone() *Options {
	n := &Options{}
	if o != nil {
		*n = *o
	}
	return n
}

// String returns a string representation of the options in an INI-like
// format that Parse accepts.
func (o *Options) String() string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "[Options]\n")
	fmt.Fprintf(&buf, "  check_invariants=%t\n", o.CheckInvariants)
	fmt.Fprintf(&buf, "  initial_nodes=%d\n", o.InitialNodes)
	fmt.Fprintf(&buf, "  max_nodes=%d\n", o.MaxNodes)
	return buf.String()
}

// Parse parses the options from the specified string. Note that certain
// options cannot be parsed into populated fields. For example, the Logger and
// EventListener are not serialized.
func (o *Options) Parse(s string) error {
	return parseOptions(s, func(section, key, value string) error {
		switch section {
		case "Options":
		default:
			return errors.Errorf("aggtree: unknown section: %q", errors.Safe(section))
		}
		var err error
		switch key {
		case "check_invariants":
			o.CheckInvariants, err = strconv.ParseBool(value)
		case "initial_nodes":
			o.InitialNodes, err = strconv.Atoi(value)
		case "max_nodes":
			var v uint64
			v, err = strconv.ParseUint(value, 10, 32)
			o.MaxNodes = uint32(v)
		default:
			return errors.Errorf("aggtree: unknown option: %s.%s",
				errors.Safe(section), errors.Safe(key))
		}
		if err != nil {
			return errors.Wrapf(err, "aggtree: invalid value for %s.%s", errors.Safe(section), errors.Safe(key))
		}
		return nil
	})
}

func parseOptions(s string, fn func(section, key, value string) error) error {
	var section string
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if len(line) == 0 || line[0] == ';' || line[0] == '#' {
			// Skip blank lines and comments.
			continue
		}
		n := len(line)
		if line[0] == '[' && line[n-1] == ']' {
			// Parse section.
			section = line[1 : n-1]
			continue
		}

		pos := strings.Index(line, "=")
		if pos < 0 {
			const maxLen = 50
			if len(line) > maxLen {
				line = line[:maxLen-3] + "..."
			}
			return errors.Errorf("aggtree: invalid key=value syntax: %q", errors.Safe(line))
		}

		key := strings.TrimSpace(line[:pos])
		value := strings.TrimSpace(line[pos+1:])

		if err := fn(section, key, value); err != nil {
			return err
		}
	}
	return nil
}
