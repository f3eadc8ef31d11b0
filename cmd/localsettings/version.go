package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/localsettings"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of localsettings",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "localsettings version %s\n", strings.TrimSpace(localsettings.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
