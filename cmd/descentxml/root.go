package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "descentxml",
	Short: "A streaming XML well-formedness checker",
	Long: `descentxml checks XML documents for well-formedness without
building a document tree: element nesting, the single-root constraint,
prolog ordering, and absence of stray text outside the root.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {}
