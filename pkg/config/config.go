package config

import "time"

// Config is the root runtime configuration for sw-sync-cli. It is loaded
// once at startup (see LoadConfig/LoadConfigWithEnvOverrides) and either
// threaded explicitly through commands or read from the package-level
// singleton (see singleton.go).
type Config struct {
	// Sync contains the tunables that govern a single sync run: in-flight
	// concurrency, retry counts, batch sizing, and page size.
	Sync SyncConfig `yaml:"sync"`

	// Watch contains configuration for running sync on a recurring
	// schedule instead of once and exiting.
	Watch WatchConfig `yaml:"watch"`

	// GitProfile configures fetching profile documents from a Git
	// repository for the copy-profile command.
	GitProfile GitProfileConfig `yaml:"git_profile"`

	// Metrics contains configuration for the Prometheus exposition
	// endpoint.
	Metrics MetricsConfig `yaml:"metrics"`

	// Logging contains configuration for structured log output.
	Logging LoggingConfig `yaml:"logging"`

	// CredentialsPath is the path to the stored OAuth client credentials
	// file written by the auth command.
	// Default: "~/.config/sw-sync-cli/credentials"
	CredentialsPath string `yaml:"credentials_path"`
}

// SyncConfig contains the tunables for a sync run (spec.md §4.D, §6).
type SyncConfig struct {
	// InFlightLimit is the maximum number of concurrent remote requests
	// (search pages, bulk upserts) held open at once.
	// Default: 8
	InFlightLimit int `yaml:"in_flight_limit"`

	// TryCount is the maximum number of attempts for one request,
	// including the initial try, before it is treated as failed.
	// Default: 3
	TryCount int `yaml:"try_count"`

	// BatchSize is the number of records sent per bulk_upsert call
	// during import.
	// Default: 100
	BatchSize int `yaml:"batch_size"`

	// PageLimit is the number of records requested per search page
	// during export.
	// Default: 250
	PageLimit int `yaml:"page_limit"`

	// DisableIndex skips the trigger_index call at the end of an
	// import.
	// Default: false
	DisableIndex bool `yaml:"disable_index"`

	// RequestTimeout bounds a single HTTP round trip to the remote API.
	// Default: 60s
	RequestTimeout time.Duration `yaml:"request_timeout"`
}

// WatchConfig contains configuration for recurring sync runs (spec.md
// §4.I, the `sync --watch` mode).
type WatchConfig struct {
	// Enabled turns on cron-scheduled recurring syncs instead of a
	// single run.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// Schedule is a standard five-field cron expression evaluated in
	// the process's local timezone.
	// Example: "*/15 * * * *"
	Schedule string `yaml:"schedule"`

	// ProfileDir is loaded from profile_dir (or its env override) but is
	// not read by the sync command; --watch-profile watches only the
	// file given with --profile.
	ProfileDir string `yaml:"profile_dir"`
}

// GitProfileConfig configures the copy-profile command's repository
// fetch (spec.md §5, `copy-profile --repo`).
type GitProfileConfig struct {
	// Repository is the Git URL (HTTPS or SSH) profiles are copied
	// from when --repo is not given explicitly on the command line.
	Repository string `yaml:"repository"`

	// Branch to check out.
	// Default: "main"
	Branch string `yaml:"branch"`

	// Path within the repository that holds profile YAML files.
	// Default: "" (repository root)
	Path string `yaml:"path"`

	// Auth configures Git authentication for private repositories.
	Auth GitAuthConfig `yaml:"auth"`

	// Clone configures how the repository is fetched.
	Clone GitCloneConfig `yaml:"clone"`
}

// GitAuthConfig configures Git authentication.
type GitAuthConfig struct {
	// Type: "token", "ssh", "none".
	// Default: "none"
	Type string `yaml:"type"`

	// Token for HTTPS authentication (supports env var expansion via
	// ${VAR}).
	Token string `yaml:"token"`

	// SSHKeyPath for SSH authentication.
	SSHKeyPath string `yaml:"ssh_key_path"`

	// SSHKeyPassphrase for an encrypted SSH key (supports env var
	// expansion via ${VAR}).
	SSHKeyPassphrase string `yaml:"ssh_key_passphrase"`
}

// GitCloneConfig configures repository cloning.
type GitCloneConfig struct {
	// Depth for a shallow clone (0 = full clone). A profile repository
	// never needs history, so a depth-1 clone is the default.
	// Default: 1
	Depth int `yaml:"depth"`

	// LocalPath is where the repository is cloned to on disk.
	// Default: a temp directory, removed after copy-profile completes
	LocalPath string `yaml:"local_path"`
}

// MetricsConfig contains configuration for the Prometheus exposition
// endpoint (spec.md §6 `--metrics-addr`).
type MetricsConfig struct {
	// Enabled starts an HTTP server exposing /metrics.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// ListenAddress is the address the metrics server listens on.
	// Default: "127.0.0.1:9090"
	ListenAddress string `yaml:"listen_address"`
}

// LoggingConfig contains configuration for structured log output.
type LoggingConfig struct {
	// Level: "debug", "info", "warn", "error".
	// Default: "info"
	Level string `yaml:"level"`

	// Format: "json" or "text".
	// Default: "json"
	Format string `yaml:"format"`
}
