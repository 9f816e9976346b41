package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/soundtracker"
	"github.com/aretw0/soundtracker/internal/platform"
	"github.com/aretw0/soundtracker/pkg/core"
)

var (
	verbose    bool
	adapter    string
	projectDir string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "soundtracker",
	Short: "Track how the sounds of an arrangement spread across the mix",
	Long: `Soundtracker keeps a list of the sounds used in a track and tags each one
by frequency band, stereo presence, depth and shape. Running totals show
where the arrangement is crowded.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setLogger(slog.LevelInfo)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&adapter, "adapter", "", "Storage adapter (fs, sqlite, memory)")
	rootCmd.PersistentFlags().StringVar(&projectDir, "dir", "", "Project directory (defaults to the nearest project root)")
}

func setLogger(level slog.Level) {
	if verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{
		Level: level,
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, opts))
	slog.SetDefault(logger)
}

// projectRoot resolves --dir, or walks up from the working directory.
func projectRoot() (string, error) {
	if projectDir != "" {
		return projectDir, nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working directory: %w", err)
	}
	return platform.ResolveRoot(cwd)
}

// openService loads soundtracker.yaml (when present) and opens the project.
// Command-line flags take precedence over the config file.
func openService(extra ...soundtracker.Option) (*core.Service, error) {
	root, err := projectRoot()
	if err != nil {
		return nil, err
	}

	cfg, err := soundtracker.DiscoverConfig(root)
	if err != nil {
		return nil, err
	}
	if cfg != nil && cfg.LogLevel != "" {
		level, _ := platform.ParseLogLevel(cfg.LogLevel)
		setLogger(level)
	}

	opts := []soundtracker.Option{
		soundtracker.WithConfig(cfg),
		soundtracker.WithAdapter(adapter),
		soundtracker.WithLogger(slog.Default()),
	}
	opts = append(opts, extra...)

	svc, err := soundtracker.New(root, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to open project: %w", err)
	}
	return svc, nil
}

// closeService releases adapters holding handles (sqlite).
func closeService(svc *core.Service) {
	if c, ok := svc.Repository().(io.Closer); ok {
		if err := c.Close(); err != nil {
			slog.Warn("failed to close repository", "error", err)
		}
	}
}
