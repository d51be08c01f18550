package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"lattice/internal/driver"
	"lattice/internal/token"
	"lattice/internal/ui"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] script.lat",
	Short: "Scan a script and print its tokens",
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")

	res, err := driver.TokenizeFile(args[0], driver.Options{MaxDiagnostics: maxDiagnostics(cmd)})
	if err != nil {
		return err
	}
	if res.Bag.Len() > 0 {
		ui.RenderDiagnostics(os.Stderr, res.Bag, res.FileSet, ui.RenderOpts{
			Color: useColor(cmd, os.Stderr),
		})
	}

	switch format {
	case "pretty":
		return printTokensPretty(cmd, res)
	case "json":
		return printTokensJSON(cmd, res)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

func printTokensPretty(cmd *cobra.Command, res *driver.TokenizeResult) error {
	out := cmd.OutOrStdout()
	for _, tok := range res.Tokens {
		start, _ := res.FileSet.Resolve(tok.Span)
		if tok.Text != "" {
			fmt.Fprintf(out, "%4d:%-3d %-12s %q\n", start.Line, start.Col, tok.Kind, tok.Text)
			continue
		}
		fmt.Fprintf(out, "%4d:%-3d %s\n", start.Line, start.Col, tok.Kind)
	}
	return nil
}

type tokenPayload struct {
	Kind string `json:"kind"`
	Text string `json:"text,omitempty"`
	Line uint32 `json:"line"`
	Col  uint32 `json:"col"`
}

func printTokensJSON(cmd *cobra.Command, res *driver.TokenizeResult) error {
	payload := make([]tokenPayload, 0, len(res.Tokens))
	for _, tok := range res.Tokens {
		if tok.Kind == token.EOF {
			break
		}
		start, _ := res.FileSet.Resolve(tok.Span)
		payload = append(payload, tokenPayload{
			Kind: tok.Kind.String(),
			Text: tok.Text,
			Line: start.Line,
			Col:  start.Col,
		})
	}
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}
