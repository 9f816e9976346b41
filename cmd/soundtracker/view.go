package main

import (
	"encoding/json"

	"github.com/spf13/cobra"
)

var (
	listJSON   bool
	totalsJSON bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the selected rows",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := openService()
		if err != nil {
			return err
		}
		defer closeService(svc)

		rows := svc.Rows()
		if listJSON {
			encoder := json.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent("", "  ")
			return encoder.Encode(rows)
		}
		return renderRows(cmd.OutOrStdout(), rows, svc.Catalog())
	},
}

var totalsCmd = &cobra.Command{
	Use:   "totals",
	Short: "Show the per-axis counts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := openService()
		if err != nil {
			return err
		}
		defer closeService(svc)

		totals := svc.Totals()
		if totalsJSON {
			encoder := json.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent("", "  ")
			return encoder.Encode(totals)
		}
		return renderTotals(cmd.OutOrStdout(), totals)
	},
}

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List the sounds that can be added",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := openService()
		if err != nil {
			return err
		}
		defer closeService(svc)

		if err := renderCatalog(cmd.OutOrStdout(), svc.Builtin().All(), false); err != nil {
			return err
		}
		return renderCatalog(cmd.OutOrStdout(), svc.CustomSounds(), true)
	},
}

func init() {
	rootCmd.AddCommand(listCmd, totalsCmd, catalogCmd)
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	totalsCmd.Flags().BoolVar(&totalsJSON, "json", false, "Output in JSON format")
}
