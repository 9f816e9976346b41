package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/soundtracker"
	"github.com/aretw0/soundtracker/pkg/core"
)

var (
	soundName   string
	soundFreq   []string
	soundStereo []string
	soundDepth  []string
	soundShape  []string
)

var soundCmd = &cobra.Command{
	Use:   "sound",
	Short: "Manage custom sound definitions",
}

var soundListCmd = &cobra.Command{
	Use:   "list",
	Short: "List custom sounds",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := openService()
		if err != nil {
			return err
		}
		defer closeService(svc)

		return renderCatalog(cmd.OutOrStdout(), svc.CustomSounds(), true)
	},
}

var soundAddCmd = &cobra.Command{
	Use:   "add <id>",
	Short: "Register or replace a custom sound",
	Example: `  soundtracker sound add vox --name Vocals --freq mid,high --stereo narrow \
    --depth front --shape sustained`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		def := core.SoundDefinition{
			ID:              strings.TrimSpace(args[0]),
			Name:            soundName,
			FreqBands:       core.NewAttributeSet(soundFreq...),
			StereoPresences: core.NewAttributeSet(soundStereo...),
			Depths:          core.NewAttributeSet(soundDepth...),
			Shapes:          core.NewAttributeSet(soundShape...),
		}
		if def.Name == "" {
			def.Name = def.ID
		}

		svc, err := openService()
		if err != nil {
			return err
		}
		defer closeService(svc)

		if err := svc.RegisterSound(context.Background(), def); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Registered", def.ID)
		return nil
	},
}

var soundRemoveCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Remove a custom sound",
	Long: `Remove a custom sound. Rows created from it are kept and display their
raw sound id from then on.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := openService()
		if err != nil {
			return err
		}
		defer closeService(svc)

		if !svc.UnregisterSound(context.Background(), args[0]) {
			return fmt.Errorf("no custom sound with id %q", args[0])
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Removed", args[0])
		return nil
	},
}

var soundLoadCmd = &cobra.Command{
	Use:   "load <file.yaml>",
	Short: "Register every sound of a YAML sound file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		defs, err := soundtracker.LoadSounds(args[0])
		if err != nil {
			return err
		}

		svc, err := openService()
		if err != nil {
			return err
		}
		defer closeService(svc)

		ctx := context.Background()
		for _, d := range defs {
			if err := svc.RegisterSound(ctx, d); err != nil {
				return fmt.Errorf("sound %s: %w", d.ID, err)
			}
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Registered %d sounds.\n", len(defs))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(soundCmd)
	soundCmd.AddCommand(soundListCmd, soundAddCmd, soundRemoveCmd, soundLoadCmd)

	soundAddCmd.Flags().StringVar(&soundName, "name", "", "Display name (defaults to the id)")
	soundAddCmd.Flags().StringSliceVar(&soundFreq, "freq", nil, "Default frequency bands")
	soundAddCmd.Flags().StringSliceVar(&soundStereo, "stereo", nil, "Default stereo presences")
	soundAddCmd.Flags().StringSliceVar(&soundDepth, "depth", nil, "Default depths")
	soundAddCmd.Flags().StringSliceVar(&soundShape, "shape", nil, "Default shapes")
}
