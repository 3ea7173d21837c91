/*
 * bootjvm - A Java virtual machine core
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "jstat",
	Short: "Report class, heap, and thread counters for a classpath",
	Long: `jstat boots a throwaway JVM core against a classpath directory,
loads every .class file it finds, and renders a fixed-width report of
the resulting class table, heap allocator, and thread table counters.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func main() {
	Execute()
}
