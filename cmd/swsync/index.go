package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shopware/sw-sync-cli/pkg/errs"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Trigger a remote index rebuild",
	Long: `Trigger the remote API's index rebuild directly, without running a
sync. Useful after an import run with --disable-index, once several
imports have completed and only one rebuild is needed.`,
	RunE: runIndex,
}

func init() {
	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, args []string) error {
	apiClient, err := newClient()
	if err != nil {
		return err
	}

	if err := apiClient.TriggerIndex(cmd.Context()); err != nil {
		return &errs.NetworkFatalError{Message: "trigger index", Cause: err}
	}

	fmt.Println("✓ index rebuild triggered")
	return nil
}
