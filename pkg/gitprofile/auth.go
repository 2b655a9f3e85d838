package gitprofile

import (
	"fmt"
	"os"

	"github.com/go-git/go-git/v5/plumbing/transport"
	"github.com/go-git/go-git/v5/plumbing/transport/http"
	"github.com/go-git/go-git/v5/plumbing/transport/ssh"

	"github.com/shopware/sw-sync-cli/pkg/config"
)

// authMethod builds the go-git transport auth for cfg. Supported types:
// "token" (HTTPS with the token as the basic-auth password), "ssh"
// (public key file, optionally passphrase-protected), "none"/"" (no
// auth, for public repositories). Adapted from the teacher's
// pkg/policy/git auth providers, collapsed from an interface with
// three implementations into one switch since nothing here needs to
// swap providers at runtime.
func authMethod(cfg config.GitAuthConfig) (transport.AuthMethod, error) {
	switch cfg.Type {
	case "token":
		if cfg.Token == "" {
			return nil, fmt.Errorf("token auth requires a non-empty token")
		}
		return &http.BasicAuth{Username: "git", Password: cfg.Token}, nil

	case "ssh":
		if cfg.SSHKeyPath == "" {
			return nil, fmt.Errorf("ssh auth requires ssh_key_path")
		}
		if info, err := os.Stat(cfg.SSHKeyPath); err != nil {
			return nil, fmt.Errorf("access ssh key: %w", err)
		} else if mode := info.Mode().Perm(); mode&0o077 != 0 {
			return nil, fmt.Errorf("ssh key %s permissions too open (%o), want 0600", cfg.SSHKeyPath, mode)
		}
		auth, err := ssh.NewPublicKeysFromFile("git", cfg.SSHKeyPath, cfg.SSHKeyPassphrase)
		if err != nil {
			return nil, fmt.Errorf("load ssh key: %w", err)
		}
		return auth, nil

	case "none", "":
		return nil, nil

	default:
		return nil, fmt.Errorf("unknown git auth type: %s", cfg.Type)
	}
}
