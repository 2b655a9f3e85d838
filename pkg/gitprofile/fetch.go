// Package gitprofile clones a Git repository of profile documents for
// the copy-profile command's --repo flag, adapted from the teacher's
// pkg/policy/git repository fetcher.
package gitprofile

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	"github.com/shopware/sw-sync-cli/pkg/config"
)

// Fetch clones cfg.Repository at cfg.Branch into a local working
// directory (cfg.Clone.LocalPath, or a temp directory if unset), then
// copies every *.yaml/*.yml file directly in cfg.Path into destDir
// (subdirectories are not searched). It returns the names of the files
// copied.
func Fetch(ctx context.Context, cfg config.GitProfileConfig, destDir string) ([]string, error) {
	if cfg.Repository == "" {
		return nil, fmt.Errorf("gitprofile: repository URL is empty")
	}

	localPath := cfg.Clone.LocalPath
	if localPath == "" {
		var err error
		localPath, err = os.MkdirTemp("", "swsync-profiles-*")
		if err != nil {
			return nil, fmt.Errorf("gitprofile: create temp clone dir: %w", err)
		}
		defer os.RemoveAll(localPath)
	}

	auth, err := authMethod(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("gitprofile: %w", err)
	}

	branch := cfg.Branch
	if branch == "" {
		branch = "main"
	}
	depth := cfg.Clone.Depth
	if depth == 0 {
		depth = 1
	}

	cloneOpts := &gogit.CloneOptions{
		URL:           cfg.Repository,
		Auth:          auth,
		Depth:         depth,
		SingleBranch:  true,
		ReferenceName: plumbing.NewBranchReferenceName(branch),
	}

	if _, err := gogit.PlainCloneContext(ctx, localPath, false, cloneOpts); err != nil {
		return nil, fmt.Errorf("gitprofile: clone %s: %w", cfg.Repository, err)
	}

	srcDir := filepath.Join(localPath, cfg.Path)
	entries, err := os.ReadDir(srcDir)
	if err != nil {
		return nil, fmt.Errorf("gitprofile: read profile path %q: %w", cfg.Path, err)
	}

	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return nil, fmt.Errorf("gitprofile: create destination %q: %w", destDir, err)
	}

	var copied []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext != ".yaml" && ext != ".yml" {
			continue
		}
		if err := copyFile(filepath.Join(srcDir, entry.Name()), filepath.Join(destDir, entry.Name())); err != nil {
			return copied, fmt.Errorf("gitprofile: copy %s: %w", entry.Name(), err)
		}
		copied = append(copied, entry.Name())
	}

	return copied, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, in)
	return err
}
