/*
 * bootjvm - A Java virtual machine core
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package main

import (
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run [classpath-dir] [main-class]",
	Short: "Load a classpath and run a class's main method to completion",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		j, err := bootSession(args[0])
		if err != nil {
			return err
		}
		return j.RunProgram(args[1])
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}
