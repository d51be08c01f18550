package main

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"lattice/internal/ui"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive checking session",
	Long: `Repl opens an interactive session: each line joins the session script
and the whole script is re-checked, so declarations persist and bad
lines roll back.`,
	Args: cobra.NoArgs,
	RunE: runRepl,
}

func runRepl(cmd *cobra.Command, args []string) error {
	if !isTerminal(os.Stdin) {
		return errors.New("repl needs an interactive terminal")
	}
	return ui.RunRepl(useColor(cmd, os.Stdout))
}
