// Copyright 2018 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package main

import (
	"log"
	"os"

	"github.com/cockroachdb/aggtree/tool"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "aggtree [command] (flags)",
	Short:         "subtree aggregation with mergeable segment trees",
	Long:          ``,
	SilenceErrors: true,
	SilenceUsage:  true,
}

func main() {
	log.SetFlags(0)

	cobra.EnableCommandSorting = false
	t := tool.New()
	rootCmd.AddCommand(t.Commands...)

	if err := rootCmd.Execute(); err != nil {
		log.Printf("error: %v", err)
		os.Exit(1)
	}
}
