// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package treeprinter renders hierarchical debug output, for example:
//
//	[1,8] count=3
//	 ├── [1,4] count=2
//	 │    └── [3,4] count=2
//	 └── [5,8] count=1
package treeprinter

import (
	"fmt"
	"strings"
)

const (
	edgeMid  = " ├── "
	edgeLast = " └── "
	padMid   = " │   "
	padLast  = "     "
)

// Node is a node in the tree being printed. The zero Node is not usable; use
// New to obtain the root.
type Node struct {
	n *node
}

type node struct {
	text     string
	children []*node
}

// New creates a tree printer and returns a sentinel node. Children of the
// sentinel are printed without indentation.
func New() Node {
	return Node{n: &node{}}
}

// Child adds a child with the given text.
func (n Node) Child(text string) Node {
	c := &node{text: text}
	n.n.children = append(n.n.children, c)
	return Node{n: c}
}

// Childf adds a child with formatted text.
func (n Node) Childf(format string, args ...interface{}) Node {
	return n.Child(fmt.Sprintf(format, args...))
}

// String returns the rendered tree. Each line is terminated by a newline.
func (n Node) String() string {
	var b strings.Builder
	for _, c := range n.n.children {
		b.WriteString(c.text)
		b.WriteByte('\n')
		render(&b, c.children, "")
	}
	return b.String()
}

func render(b *strings.Builder, children []*node, prefix string) {
	for i, c := range children {
		edge, pad := edgeMid, padMid
		if i == len(children)-1 {
			edge, pad = edgeLast, padLast
		}
		b.WriteString(prefix)
		b.WriteString(edge)
		b.WriteString(c.text)
		b.WriteByte('\n')
		render(b, c.children, prefix+pad)
	}
}
