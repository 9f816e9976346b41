package main

import (
	"encoding/json"

	"github.com/aretw0/introspection"
	"github.com/spf13/cobra"
)

type statusReport struct {
	Service    any `json:"service"`
	Repository any `json:"repository,omitempty"`
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Print the internal state of the service and its adapter",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := openService()
		if err != nil {
			return err
		}
		defer closeService(svc)

		report := statusReport{Service: svc.State()}
		if repo, ok := svc.Repository().(introspection.Introspectable); ok {
			report.Repository = repo.State()
		}

		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(report)
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
