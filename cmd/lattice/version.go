package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"lattice/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show the build fingerprint",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		v := version.Plain()
		if useColor(cmd, os.Stdout) {
			v = version.Version
		}
		fmt.Fprintf(out, "lattice %s\n", v)
		if version.GitCommit != "" {
			fmt.Fprintf(out, "commit %s\n", version.GitCommit)
		}
		if version.BuildDate != "" {
			fmt.Fprintf(out, "built  %s\n", version.BuildDate)
		}
		return nil
	},
}
