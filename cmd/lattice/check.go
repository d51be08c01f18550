package main

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"lattice/internal/driver"
	"lattice/internal/ui"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] [path]",
	Short: "Type-check a script or a directory of scripts",
	Long: `Check runs the full pipeline on one .lat script, or on every .lat
script under a directory. With no path it checks the project named by
lattice.toml.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().Int("jobs", 0, "parallel workers for directory checks (0 = GOMAXPROCS)")
	checkCmd.Flags().Bool("summary", false, "print declared aliases and bindings after checking")
}

func runCheck(cmd *cobra.Command, args []string) error {
	path, err := resolveTarget(args)
	if err != nil {
		return err
	}

	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	opts := driver.Options{MaxDiagnostics: maxDiagnostics(cmd)}
	if manifest, ok, err := loadManifest("."); err == nil && ok {
		if manifest.Config.Check.MaxDiagnostics > 0 && !cmd.Root().PersistentFlags().Changed("max-diagnostics") {
			opts.MaxDiagnostics = manifest.Config.Check.MaxDiagnostics
		}
		opts.MaxDepth = manifest.Config.Check.MaxDepth
	}
	if info.IsDir() {
		jobs, _ := cmd.Flags().GetInt("jobs")
		return checkDir(cmd, path, opts, jobs)
	}
	return checkOne(cmd, path, opts)
}

func checkOne(cmd *cobra.Command, path string, opts driver.Options) error {
	res, err := driver.RunFile(path, opts)
	if err != nil {
		return err
	}
	renderResult(cmd, res)
	if summary, _ := cmd.Flags().GetBool("summary"); summary {
		printSummary(res)
	}
	if res.HasErrors() {
		return fmt.Errorf("%s: check failed", path)
	}
	return nil
}

func checkDir(cmd *cobra.Command, dir string, opts driver.Options, jobs int) error {
	results, err := driver.CheckDir(context.Background(), dir, opts, jobs)
	if err != nil {
		return err
	}
	failed := 0
	for _, r := range results {
		renderResult(cmd, r.Result)
		if r.Result.HasErrors() {
			failed++
		}
	}
	if quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet"); !quiet {
		all := driver.AllDiagnostics(results)
		fmt.Fprintf(cmd.OutOrStdout(), "checked %d scripts, %d failed, %d diagnostics\n", len(results), failed, all.Len())
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d scripts failed", failed, len(results))
	}
	return nil
}

func renderResult(cmd *cobra.Command, res *driver.Result) {
	if res.Bag.Len() == 0 {
		return
	}
	ui.RenderDiagnostics(os.Stderr, res.Bag, res.FileSet, ui.RenderOpts{
		Color: useColor(cmd, os.Stderr),
	})
}

func printSummary(res *driver.Result) {
	aliases := make([]string, 0, len(res.Check.Aliases))
	for name, id := range res.Check.Aliases {
		aliases = append(aliases, fmt.Sprintf("type %s = %s", res.Names.MustLookup(name), res.FormatType(id)))
	}
	bindings := make([]string, 0, len(res.Check.Bindings))
	for name, id := range res.Check.Bindings {
		bindings = append(bindings, fmt.Sprintf("%s: %s", res.Names.MustLookup(name), res.FormatType(id)))
	}
	sort.Strings(aliases)
	sort.Strings(bindings)
	for _, line := range aliases {
		fmt.Println(line)
	}
	for _, line := range bindings {
		fmt.Println(line)
	}
}
