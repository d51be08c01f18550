package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"lattice/internal/driver"
	"lattice/internal/ui"
)

var exportCmd = &cobra.Command{
	Use:   "export [flags] script.lat",
	Short: "Check a script and write its snapshot",
	Long: `Export checks one script and serializes the result - declared aliases,
binding types, and diagnostics - as a msgpack snapshot keyed to the
source content hash.`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().String("out", "", "snapshot path (default: alongside the script, .mp extension)")
}

func runExport(cmd *cobra.Command, args []string) error {
	path := args[0]
	res, err := driver.RunFile(path, driver.Options{MaxDiagnostics: maxDiagnostics(cmd)})
	if err != nil {
		return err
	}
	if res.Bag.Len() > 0 {
		ui.RenderDiagnostics(os.Stderr, res.Bag, res.FileSet, ui.RenderOpts{
			Color: useColor(cmd, os.Stderr),
		})
	}

	out, _ := cmd.Flags().GetString("out")
	if out == "" {
		out = strings.TrimSuffix(path, filepath.Ext(path)) + ".mp"
	}
	if err := driver.WriteSnapshot(out, driver.BuildSnapshot(res)); err != nil {
		return err
	}
	if quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet"); !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", out)
	}
	if res.HasErrors() {
		return fmt.Errorf("%s: check failed", path)
	}
	return nil
}
