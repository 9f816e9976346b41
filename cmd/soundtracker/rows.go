package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/aretw0/soundtracker/pkg/core"
)

var addCmd = &cobra.Command{
	Use:   "add <soundId>...",
	Short: "Add one row per sound id",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := openService()
		if err != nil {
			return err
		}
		defer closeService(svc)

		ctx := context.Background()
		var unknown []string
		for _, id := range args {
			row, ok := svc.Add(ctx, id)
			if !ok {
				unknown = append(unknown, id)
				continue
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", row.RowID, core.DisplayName(svc.Catalog(), row))
		}
		if len(unknown) > 0 {
			return fmt.Errorf("unknown sound: %v (see 'soundtracker catalog')", unknown)
		}
		return nil
	},
}

var removeCmd = &cobra.Command{
	Use:   "remove <rowId>",
	Short: "Remove a row",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := openService()
		if err != nil {
			return err
		}
		defer closeService(svc)

		if !svc.Remove(context.Background(), args[0]) {
			slog.Warn("no such row", "row_id", args[0])
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Removed", args[0])
		return nil
	},
}

var labelCmd = &cobra.Command{
	Use:   "label <rowId> <text>",
	Short: "Set the free-text label of a row",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := openService()
		if err != nil {
			return err
		}
		defer closeService(svc)

		if !svc.Relabel(context.Background(), args[0], args[1]) {
			slog.Warn("label unchanged", "row_id", args[0])
		}
		return nil
	},
}

var toggleCmd = &cobra.Command{
	Use:   "toggle <rowId> <axis> <value>",
	Short: "Flip one attribute value on a row",
	Long: `Flip one attribute value on a row. The axis is one of frequency, stereo,
depth or shape. Values outside the axis vocabulary are stored but never counted.`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		axis, err := core.ParseAxis(args[1])
		if err != nil {
			return err
		}
		value := args[2]
		if !axis.InVocabulary(value) {
			slog.Warn("value is outside the axis vocabulary and will not be counted",
				"axis", axis, "value", value, "vocabulary", axis.Vocabulary())
		}

		svc, err := openService()
		if err != nil {
			return err
		}
		defer closeService(svc)

		changed, err := svc.Toggle(context.Background(), args[0], axis, value)
		if err != nil {
			return err
		}
		if !changed {
			slog.Warn("no such row", "row_id", args[0])
			return nil
		}
		for _, row := range svc.Rows() {
			if row.RowID == args[0] {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", axis.Title(), formatSet(row.Set(axis)))
			}
		}
		return nil
	},
}

var clearYes bool

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every row",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := openService()
		if err != nil {
			return err
		}
		defer closeService(svc)

		if len(svc.Rows()) == 0 {
			return nil
		}
		if !clearYes && !confirm(cmd.InOrStdin(), cmd.ErrOrStderr(), "Are you sure you want to clear all sounds?") {
			fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
			return nil
		}
		svc.Clear(context.Background())
		fmt.Fprintln(cmd.OutOrStdout(), "Cleared all sounds.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(addCmd, removeCmd, labelCmd, toggleCmd, clearCmd)
	clearCmd.Flags().BoolVarP(&clearYes, "yes", "y", false, "Skip the confirmation prompt")
}
