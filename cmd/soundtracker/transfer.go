package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/aretw0/soundtracker/pkg/transfer"
)

var (
	exportOut   string
	exportForce bool
	importYes   bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the rows and custom sounds to a portable JSON file",
	Long: `Write the rows and custom sounds to a portable JSON file. Without --out the
file is named sound-tracker-export-<timestamp>.json. Use --out - for stdout.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := openService()
		if err != nil {
			return err
		}
		defer closeService(svc)

		state := svc.Snapshot()
		if !transfer.HasContent(state) && !exportForce {
			return errors.New("nothing to export (use --force to write an empty document)")
		}

		now := time.Now()
		data, err := transfer.Marshal(transfer.Export(state, now))
		if err != nil {
			return err
		}

		if exportOut == "-" {
			_, err := cmd.OutOrStdout().Write(data)
			return err
		}
		path := exportOut
		if path == "" {
			path = transfer.FileName(now)
		}
		if err := os.WriteFile(path, data, 0644); err != nil {
			return fmt.Errorf("failed to write export: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Exported to", path)
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Replace the rows with the content of an export file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read import file: %w", err)
		}

		svc, err := openService()
		if err != nil {
			return err
		}
		defer closeService(svc)

		ask := func(imp *transfer.Import) bool {
			slog.Warn("invalid rows skipped", "total", imp.Total, "dropped", imp.Dropped)
			if importYes {
				return true
			}
			return confirm(cmd.InOrStdin(), cmd.ErrOrStderr(),
				"Some rows in this file look invalid and will be skipped. Continue?")
		}

		imp, err := transfer.Run(context.Background(), svc, data, ask)
		switch {
		case errors.Is(err, transfer.ErrAbandoned):
			fmt.Fprintln(cmd.OutOrStdout(), "Import cancelled.")
			return nil
		case err != nil:
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Imported %d rows", len(imp.Rows()))
		if sounds := imp.CustomSounds(); sounds != nil {
			fmt.Fprintf(cmd.OutOrStdout(), " and %d custom sounds", len(sounds))
		}
		fmt.Fprintln(cmd.OutOrStdout(), ".")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd, importCmd)
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "Output file (- for stdout)")
	exportCmd.Flags().BoolVar(&exportForce, "force", false, "Export even when there is nothing to export")
	importCmd.Flags().BoolVarP(&importYes, "yes", "y", false, "Skip the confirmation prompt")
}
