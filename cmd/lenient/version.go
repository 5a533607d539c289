package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/lenient"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of lenient",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "lenient version %s\n", strings.TrimSpace(lenient.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
