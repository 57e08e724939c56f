package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dgallion1/prdgest/internal/prd"
	"github.com/dgallion1/prdgest/internal/watch"
	"github.com/spf13/cobra"
)

func newWatchCmd(root *rootOptions) *cobra.Command {
	var (
		format   string
		debounce time.Duration
	)
	cmd := &cobra.Command{
		Use:   "watch <file>",
		Short: "Re-parse a PRD every time it is saved",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := prd.ParseFormat(format)
			if err != nil {
				return err
			}
			path := args[0]
			log := root.logger(cmd)

			render := func() {
				result, err := parseSource(cmd, path, root.parserOptions())
				if err != nil {
					log.Error("parse failed", "path", path, "error", err)
					return
				}
				if err := prd.Encode(cmd.OutOrStdout(), result, f); err != nil {
					log.Error("write record", "error", err)
				}
			}
			render()

			w, err := watch.NewFileWatcher(path, debounce, func(string) {
				log.Debug("change detected", "path", path)
				render()
			})
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			fmt.Fprintf(cmd.ErrOrStderr(), "watching %s (ctrl-c to stop)\n", path)
			if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		},
	}
	formatFlag(cmd, &format)
	cmd.Flags().DurationVar(&debounce, "debounce", watch.DefaultDebounce, "Quiet period before re-parsing")
	return cmd
}
