package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/shopware/sw-sync-cli/pkg/config"
	"github.com/shopware/sw-sync-cli/pkg/errs"
)

var (
	// Global flags
	cfgFile         string
	credentialsFile string
	verbose         bool
)

var rootCmd = &cobra.Command{
	Use:   "swsync",
	Short: "swsync - bidirectional commerce-platform CSV sync engine",
	Long: `swsync exports commerce-platform entities to CSV and imports CSV back
into the platform, driven by a YAML profile that maps columns to entity
fields and optionally runs serialize/deserialize scripts per record.

For more information, visit: https://github.com/shopware/sw-sync-cli`,
	Version: Version,
}

// Execute runs the root command, translating the returned error into the
// exit codes spec.md §6/§7 promise: 0 success, 1 usage/profile error, 2
// runtime error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(errs.ExitCode(err))
	}
}

func init() {
	// Global persistent flags (available to all subcommands)
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "config.yaml", "run config file path")
	rootCmd.PersistentFlags().StringVar(&credentialsFile, "credentials", "", "credentials file path (default: config's credentials_path)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.CompletionOptions.DisableDefaultCmd = false
}

// resolveCredentialsPath returns the credentials file path: the
// --credentials flag if set, otherwise the run config's credentials_path
// (falling back to the package default if the config file is absent, so
// `swsync auth` works before a config.yaml exists).
func resolveCredentialsPath() (string, error) {
	if credentialsFile != "" {
		return credentialsFile, nil
	}
	if cfg, err := config.LoadConfig(cfgFile); err == nil {
		return cfg.CredentialsPath, nil
	}
	path := config.DefaultCredentialsPath
	if strings.HasPrefix(path, "~") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path, nil
}
