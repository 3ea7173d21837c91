/*
 * bootjvm - A Java virtual machine core
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var classesCmd = &cobra.Command{
	Use:   "classes [classpath-dir]",
	Short: "Report the count of classes loaded from a classpath directory",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		j, err := bootSession(args[0])
		if err != nil {
			return err
		}
		snap := j.TakeSnapshot()
		fmt.Printf("%-20s %d\n", "loaded classes:", snap.LoadedClasses)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(classesCmd)
}
