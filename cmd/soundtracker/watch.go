package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/aretw0/soundtracker"
	stlifecycle "github.com/aretw0/soundtracker/pkg/adapters/lifecycle"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-render the totals whenever the project changes on disk",
	Long: `Watch the project slot and re-render the totals each time another process
(or another soundtracker invocation) changes it. Stop with Ctrl+C.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		svc, err := openService(soundtracker.WithWatcherErrorHandler(func(err error) {
			slog.Error("watcher error", "error", err)
		}))
		if err != nil {
			return err
		}
		defer closeService(svc)

		events, err := svc.Watch(ctx)
		if err != nil {
			return err
		}
		source := stlifecycle.NewSource(events)
		if err := source.Start(ctx); err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if err := renderTotals(out, svc.Totals()); err != nil {
			return err
		}
		for ev := range source.Events() {
			slog.Debug("reloaded", "event", ev.String())
			fmt.Fprintln(out)
			if err := renderTotals(out, svc.Totals()); err != nil {
				return err
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
