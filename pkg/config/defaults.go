package config

import "time"

// Default values for configuration fields.
const (
	// Sync defaults (spec.md §6)
	DefaultInFlightLimit  = 8
	DefaultTryCount       = 3
	DefaultBatchSize      = 100
	DefaultPageLimit      = 250
	DefaultRequestTimeout = 60 * time.Second

	// Git profile defaults
	DefaultGitBranch     = "main"
	DefaultGitAuthType   = "none"
	DefaultGitCloneDepth = 1

	// Metrics defaults
	DefaultMetricsListenAddress = "127.0.0.1:9090"

	// Logging defaults
	DefaultLoggingLevel  = "info"
	DefaultLoggingFormat = "json"

	// DefaultCredentialsPath is expanded against the user's home
	// directory at load time (see expandHome in load.go).
	DefaultCredentialsPath = "~/.config/sw-sync-cli/credentials"
)

// ApplyDefaults fills zero-valued fields of cfg with their defaults. It
// is idempotent and safe to call multiple times.
func ApplyDefaults(cfg *Config) {
	if cfg.Sync.InFlightLimit == 0 {
		cfg.Sync.InFlightLimit = DefaultInFlightLimit
	}
	if cfg.Sync.TryCount == 0 {
		cfg.Sync.TryCount = DefaultTryCount
	}
	if cfg.Sync.BatchSize == 0 {
		cfg.Sync.BatchSize = DefaultBatchSize
	}
	if cfg.Sync.PageLimit == 0 {
		cfg.Sync.PageLimit = DefaultPageLimit
	}
	if cfg.Sync.RequestTimeout == 0 {
		cfg.Sync.RequestTimeout = DefaultRequestTimeout
	}

	if cfg.GitProfile.Branch == "" {
		cfg.GitProfile.Branch = DefaultGitBranch
	}
	if cfg.GitProfile.Auth.Type == "" {
		cfg.GitProfile.Auth.Type = DefaultGitAuthType
	}
	if cfg.GitProfile.Clone.Depth == 0 {
		cfg.GitProfile.Clone.Depth = DefaultGitCloneDepth
	}

	if cfg.Metrics.ListenAddress == "" {
		cfg.Metrics.ListenAddress = DefaultMetricsListenAddress
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = DefaultLoggingLevel
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = DefaultLoggingFormat
	}

	if cfg.CredentialsPath == "" {
		cfg.CredentialsPath = DefaultCredentialsPath
	}
}
