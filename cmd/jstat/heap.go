/*
 * bootjvm - A Java virtual machine core
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var heapCmd = &cobra.Command{
	Use:   "heap [classpath-dir]",
	Short: "Report bimodal heap allocator counters for a classpath directory",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		j, err := bootSession(args[0])
		if err != nil {
			return err
		}
		stats := j.TakeSnapshot().HeapStats
		fmt.Printf("%-20s %d\n", "slab allocs:", stats.SlabAllocs)
		fmt.Printf("%-20s %d\n", "slab frees:", stats.SlabFrees)
		fmt.Printf("%-20s %d\n", "system allocs:", stats.SystemAllocs)
		fmt.Printf("%-20s %d\n", "system frees:", stats.SystemFrees)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(heapCmd)
}
