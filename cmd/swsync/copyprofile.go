package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/shopware/sw-sync-cli/internal/bundledprofiles"
	"github.com/shopware/sw-sync-cli/pkg/config"
	"github.com/shopware/sw-sync-cli/pkg/errs"
	"github.com/shopware/sw-sync-cli/pkg/gitprofile"
)

var copyProfileFlags struct {
	repo string
}

var copyProfileCmd = &cobra.Command{
	Use:   "copy-profile",
	Short: "Copy profile documents into the current directory",
	Long: `Copy profile YAML documents into the current working directory.

Without --repo, the profiles bundled with this binary are copied. With
--repo, the given Git repository is cloned and its profile documents
are copied instead.

Examples:
  swsync copy-profile
  swsync copy-profile --repo https://github.com/example/sync-profiles.git`,
	RunE: runCopyProfile,
}

func init() {
	rootCmd.AddCommand(copyProfileCmd)
	copyProfileCmd.Flags().StringVar(&copyProfileFlags.repo, "repo", "", "Git repository URL to copy profile documents from")
}

func runCopyProfile(cmd *cobra.Command, args []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return &errs.UsageError{Message: "determine working directory", Cause: err}
	}

	if copyProfileFlags.repo == "" {
		return copyBundledProfiles(cwd)
	}

	cfg := config.GitProfileConfig{Repository: copyProfileFlags.repo, Branch: "main"}
	if loaded, err := config.LoadConfig(cfgFile); err == nil && loaded.GitProfile.Repository == copyProfileFlags.repo {
		cfg = loaded.GitProfile
	}

	copied, err := gitprofile.Fetch(cmd.Context(), cfg, cwd)
	if err != nil {
		return &errs.UsageError{Message: "copy profiles from git repository", Cause: err}
	}
	for _, name := range copied {
		fmt.Printf("✓ copied %s\n", name)
	}
	return nil
}

func copyBundledProfiles(destDir string) error {
	names, err := bundledprofiles.Files()
	if err != nil {
		return &errs.UsageError{Message: "list bundled profiles", Cause: err}
	}
	for _, name := range names {
		data, err := bundledprofiles.Read(name)
		if err != nil {
			return &errs.UsageError{Message: fmt.Sprintf("read bundled profile %s", name), Cause: err}
		}
		dst := filepath.Join(destDir, name)
		if err := os.WriteFile(dst, data, 0o644); err != nil {
			return &errs.UsageError{Message: fmt.Sprintf("write profile %s", name), Cause: err}
		}
		fmt.Printf("✓ copied %s\n", name)
	}
	return nil
}
