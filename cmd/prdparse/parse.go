package main

import (
	"fmt"
	"io"
	"os"

	"github.com/dgallion1/prdgest/internal/prd"
	"github.com/spf13/cobra"
)

func newParseCmd(root *rootOptions) *cobra.Command {
	var (
		format string
		output string
	)
	cmd := &cobra.Command{
		Use:   "parse [file|-]",
		Short: "Parse a PRD and print the record",
		Long: `Parse a PRD document and print the extracted record.

With no file, or "-", the document is read from stdin as raw text.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := prd.ParseFormat(format)
			if err != nil {
				return err
			}
			path := ""
			if len(args) == 1 {
				path = args[0]
			}

			log := root.logger(cmd)
			result, err := parseSource(cmd, path, root.parserOptions())
			if err != nil {
				return err
			}
			log.Debug("parsed document",
				"source", path,
				"project_name", result.ProjectName,
				"features", result.FeatureCount(),
				"tech_stack", len(result.TechStack),
			)

			var w io.Writer = cmd.OutOrStdout()
			if output != "" {
				out, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("create output: %w", err)
				}
				defer out.Close()
				w = out
			}
			return prd.Encode(w, result, f)
		},
	}
	formatFlag(cmd, &format)
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write the record to this file instead of stdout")
	return cmd
}
