// Copyright 2019 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package tool

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cockroachdb/crlib/testutils/leaktest"
	"github.com/cockroachdb/datadriven"
	"github.com/spf13/cobra"
)

// runTests runs the datadriven files matching path. Each command line is an
// aggtree invocation and the input is its standard input. The output is what
// the command wrote to stdout and stderr, followed by the error it returned,
// if any.
func runTests(t *testing.T, path string) {
	paths, err := filepath.Glob(path)
	if err != nil {
		t.Fatal(err)
	}
	for _, path := range paths {
		t.Run(filepath.Base(path), func(t *testing.T) {
			datadriven.RunTest(t, path, func(t *testing.T, d *datadriven.TestData) string {
				args := []string{d.Cmd}
				for _, arg := range d.CmdArgs {
					args = append(args, arg.String())
				}
				return execute(t, args, d.Input)
			})
		})
	}
}

func execute(t *testing.T, args []string, input string) string {
	var buf bytes.Buffer
	c := &cobra.Command{SilenceErrors: true, SilenceUsage: true}
	c.AddCommand(New().Commands...)
	c.SetArgs(args)
	c.SetIn(strings.NewReader(input))
	c.SetOut(&buf)
	c.SetErr(&buf)
	if err := c.Execute(); err != nil {
		buf.WriteString("error: " + err.Error() + "\n")
	}
	return buf.String()
}

func TestDominant(t *testing.T) {
	defer leaktest.AfterTest(t)()
	runTests(t, "testdata/dominant")
}

func TestPaths(t *testing.T) {
	defer leaktest.AfterTest(t)()
	runTests(t, "testdata/paths")
}

func TestRemap(t *testing.T) {
	defer leaktest.AfterTest(t)()
	runTests(t, "testdata/remap")
}
