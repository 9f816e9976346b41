package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/aretw0/soundtracker/internal/platform"
)

var (
	initKey       string
	initSystemDir string
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a soundtracker project",
	Long: `Initialize a new project in the current directory (or --dir).
Writes soundtracker.yaml and prepares the storage of the chosen adapter.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		root := projectDir
		if root == "" {
			cwd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to get working directory: %w", err)
			}
			root = cwd
		}
		if err := os.MkdirAll(root, 0755); err != nil {
			return fmt.Errorf("failed to create project directory: %w", err)
		}

		cfg := platform.ProjectConfig{
			Adapter:   adapter,
			SystemDir: initSystemDir,
			Key:       initKey,
		}
		if cfg.Adapter == "" {
			cfg.Adapter = "fs"
		}

		path := filepath.Join(root, platform.ConfigFileName)
		err := platform.WriteProjectConfig(path, cfg)
		switch {
		case errors.Is(err, os.ErrExist):
			slog.Info("config already exists, keeping it", "path", path)
			existing, err := platform.LoadProjectConfig(path)
			if err != nil {
				return err
			}
			cfg = *existing
		case err != nil:
			return err
		}

		repo, err := platform.Init(root, platform.WithConfig(&cfg), platform.WithLogger(slog.Default()))
		if err != nil {
			return fmt.Errorf("failed to initialize storage: %w", err)
		}
		if c, ok := repo.(io.Closer); ok {
			c.Close()
		}

		fmt.Fprintln(cmd.OutOrStdout(), "Initialized soundtracker project in", root)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().StringVar(&initKey, "key", "", "Slot the snapshot is stored under")
	initCmd.Flags().StringVar(&initSystemDir, "system-dir", "", "Hidden directory name (default .soundtracker)")
}
