package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/dgallion1/prdgest/internal/parser"
	"github.com/dgallion1/prdgest/internal/prd"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	verbose   bool
	pdftotext bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "prdparse",
		Short: "Extract structured requirements from PRD documents",
		Long: `prdparse turns a free-form product requirements document into a
structured record: project name, description, tech stack, and a
prioritized feature list.

Text and Markdown are parsed directly. HTML, CSV, PDF, and DOCX files are
converted to text first, chosen by file extension.`,
		SilenceUsage: true,
	}
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log debug output to stderr")
	cmd.PersistentFlags().BoolVar(&opts.pdftotext, "pdftotext", true, "Fall back to pdftotext for PDFs the native reader cannot handle")

	cmd.AddCommand(newParseCmd(opts))
	cmd.AddCommand(newValidateCmd(opts))
	cmd.AddCommand(newWatchCmd(opts))
	cmd.AddCommand(newVersionCmd())
	return cmd
}

func (o *rootOptions) logger(cmd *cobra.Command) *slog.Logger {
	level := slog.LevelWarn
	if o.verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
}

func (o *rootOptions) parserOptions() parser.Options {
	return parser.Options{PDFFallbackPdftotext: o.pdftotext}
}

// parseSource reads path (or stdin for "" and "-") and returns its ParsedPRD.
// Stdin is always treated as raw text.
func parseSource(cmd *cobra.Command, path string, opts parser.Options) (prd.ParsedPRD, error) {
	var text string
	if path == "" || path == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return prd.ParsedPRD{}, fmt.Errorf("read stdin: %w", err)
		}
		text = string(data)
	} else {
		f, err := os.Open(path)
		if err != nil {
			return prd.ParsedPRD{}, fmt.Errorf("open document: %w", err)
		}
		defer f.Close()
		text, err = parser.Convert(f, path, opts)
		if err != nil {
			return prd.ParsedPRD{}, fmt.Errorf("convert %s: %w", path, err)
		}
	}
	return prd.Parse(text)
}

func formatFlag(cmd *cobra.Command, value *string) {
	cmd.Flags().StringVarP(value, "format", "f", string(prd.FormatJSON), "Output format (json or yaml)")
}
