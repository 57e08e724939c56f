package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/dgallion1/prdgest/internal/prd"
	"github.com/spf13/cobra"
)

func newValidateCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <record.json>",
		Short: "Check a record against the ParsedPRD schema",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read record: %w", err)
			}

			err = prd.Validate(data)
			var se *prd.SchemaError
			if errors.As(err, &se) {
				for _, issue := range se.Issues {
					fmt.Fprintf(cmd.ErrOrStderr(), "  - %s\n", issue)
				}
				return fmt.Errorf("%s: %d schema issue(s)", args[0], len(se.Issues))
			}
			if err != nil {
				return err
			}
			root.logger(cmd).Debug("record valid", "path", args[0])
			fmt.Fprintf(cmd.OutOrStdout(), "%s: valid\n", args[0])
			return nil
		},
	}
}
