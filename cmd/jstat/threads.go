/*
 * bootjvm - A Java virtual machine core
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var threadsCmd = &cobra.Command{
	Use:   "threads [classpath-dir]",
	Short: "Report thread table entries and their states",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		j, err := bootSession(args[0])
		if err != nil {
			return err
		}
		snap := j.TakeSnapshot()
		fmt.Printf("%-6s %-16s %s\n", "INDEX", "NAME", "STATE")
		for _, ts := range snap.ThreadStates {
			fmt.Printf("%-6d %-16s %s\n", ts.Index, ts.Name, ts.State)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(threadsCmd)
}
