// Copyright 2019 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package lint

import (
	"bytes"
	"go/build"
	"os/exec"
	"runtime"
	"strings"
	"testing"

	"github.com/ghemawat/stream"
)

const root = "github.com/cockroachdb/aggtree"

// forbiddenImports maps an import path to the package that replaces it.
var forbiddenImports = map[string]string{
	"errors":                "github.com/cockroachdb/errors",
	"github.com/pkg/errors": "github.com/cockroachdb/errors",
}

func dirCmd(t *testing.T, dir string, name string, args ...string) stream.Filter {
	cmd := exec.Command(name, args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	switch err.(type) {
	case nil:
	case *exec.ExitError:
		// Non-zero exit is expected.
	default:
		t.Fatal(err)
	}
	return stream.ReadLines(bytes.NewReader(out))
}

func ignoreGoMod() stream.Filter {
	return stream.GrepNot(`^go: (finding|extracting|downloading)`)
}

func TestLint(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("lint checks skipped on Windows")
	}
	if _, err := exec.LookPath("go"); err != nil {
		t.Skip("go binary not in PATH")
	}

	pkg, err := build.Import(root, "../..", 0)
	if err != nil {
		t.Fatal(err)
	}

	t.Run("TestGoVet", func(t *testing.T) {
		t.Parallel()

		if err := stream.ForEach(
			stream.Sequence(
				dirCmd(t, pkg.Dir, "go", "vet", "./..."),
				stream.GrepNot(`^#`),
				ignoreGoMod(),
			), func(s string) {
				t.Errorf("\n%s", s)
			}); err != nil {
			t.Error(err)
		}
	})

	t.Run("TestForbiddenImports", func(t *testing.T) {
		t.Parallel()

		if err := stream.ForEach(
			stream.Sequence(
				dirCmd(t, pkg.Dir, "go", "list", "-f",
					`{{ .ImportPath }}{{ range .Imports }} {{ . }}{{ end }}{{ range .TestImports }} {{ . }}{{ end }}`,
					"./..."),
				ignoreGoMod(),
				stream.Grep(`^`+root),
			), func(s string) {
				fields := strings.Fields(s)
				for _, imp := range fields[1:] {
					if repl, ok := forbiddenImports[imp]; ok {
						t.Errorf("%s imports %q; use %q instead", fields[0], imp, repl)
					}
				}
			}); err != nil {
			t.Error(err)
		}
	})

	t.Run("TestFmtErrorf", func(t *testing.T) {
		t.Parallel()

		if _, err := exec.LookPath("grep"); err != nil {
			t.Skip("grep not in PATH")
		}
		if err := stream.ForEach(
			stream.Sequence(
				dirCmd(t, pkg.Dir, "grep", "-rn", "--include=*.go", "--exclude-dir=_*",
					`fmt\.Errorf(`, "."),
				stream.GrepNot(`lint_test\.go`),
			), func(s string) {
				t.Errorf("\n%s <- please use \"errors.Errorf\" instead", s)
			}); err != nil {
			t.Error(err)
		}
	})
}
