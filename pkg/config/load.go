package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// LoadConfig loads configuration from a YAML file at path, applies
// defaults, validates the result, and returns it. Use
// LoadConfigWithEnvOverrides to additionally apply SWSYNC_*
// environment variable overrides.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
	}

	ApplyDefaults(&cfg)
	cfg.CredentialsPath = expandHome(cfg.CredentialsPath)
	if cfg.GitProfile.Clone.LocalPath != "" {
		cfg.GitProfile.Clone.LocalPath = expandHome(cfg.GitProfile.Clone.LocalPath)
	}

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// LoadConfigWithEnvOverrides loads configuration from path and applies
// environment variable overrides. Environment variables follow the
// naming convention SWSYNC_SECTION_FIELD (e.g.,
// SWSYNC_SYNC_IN_FLIGHT_LIMIT) and always take precedence over the
// file.
//
// The loading sequence is:
//  1. Load YAML from file
//  2. Apply default values
//  3. Apply environment variable overrides
//  4. Re-validate
func LoadConfigWithEnvOverrides(path string) (*Config, error) {
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed after environment overrides: %w", err)
	}

	return cfg, nil
}

// applyEnvOverrides applies SWSYNC_*-prefixed environment variable
// overrides to cfg.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("SWSYNC_SYNC_IN_FLIGHT_LIMIT"); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			cfg.Sync.InFlightLimit = i
		}
	}
	if v := os.Getenv("SWSYNC_SYNC_TRY_COUNT"); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			cfg.Sync.TryCount = i
		}
	}
	if v := os.Getenv("SWSYNC_SYNC_BATCH_SIZE"); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			cfg.Sync.BatchSize = i
		}
	}
	if v := os.Getenv("SWSYNC_SYNC_PAGE_LIMIT"); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			cfg.Sync.PageLimit = i
		}
	}
	if v := os.Getenv("SWSYNC_SYNC_DISABLE_INDEX"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Sync.DisableIndex = b
		}
	}
	if v := os.Getenv("SWSYNC_SYNC_REQUEST_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Sync.RequestTimeout = d
		}
	}

	if v := os.Getenv("SWSYNC_WATCH_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Watch.Enabled = b
		}
	}
	if v := os.Getenv("SWSYNC_WATCH_SCHEDULE"); v != "" {
		cfg.Watch.Schedule = v
	}
	if v := os.Getenv("SWSYNC_WATCH_PROFILE_DIR"); v != "" {
		cfg.Watch.ProfileDir = v
	}

	if v := os.Getenv("SWSYNC_GIT_PROFILE_REPOSITORY"); v != "" {
		cfg.GitProfile.Repository = v
	}
	if v := os.Getenv("SWSYNC_GIT_PROFILE_BRANCH"); v != "" {
		cfg.GitProfile.Branch = v
	}
	if v := os.Getenv("SWSYNC_GIT_PROFILE_PATH"); v != "" {
		cfg.GitProfile.Path = v
	}
	if v := os.Getenv("SWSYNC_GIT_PROFILE_AUTH_TYPE"); v != "" {
		cfg.GitProfile.Auth.Type = v
	}
	if v := os.Getenv("SWSYNC_GIT_PROFILE_AUTH_TOKEN"); v != "" {
		cfg.GitProfile.Auth.Token = v
	}
	if v := os.Getenv("SWSYNC_GIT_PROFILE_AUTH_SSH_KEY_PATH"); v != "" {
		cfg.GitProfile.Auth.SSHKeyPath = v
	}

	if v := os.Getenv("SWSYNC_METRICS_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Metrics.Enabled = b
		}
	}
	if v := os.Getenv("SWSYNC_METRICS_LISTEN_ADDRESS"); v != "" {
		cfg.Metrics.ListenAddress = v
	}

	if v := os.Getenv("SWSYNC_LOGGING_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("SWSYNC_LOGGING_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}

	if v := os.Getenv("SWSYNC_CREDENTIALS_PATH"); v != "" {
		cfg.CredentialsPath = expandHome(v)
	}
}

// expandHome expands a leading "~" into the user's home directory. It
// returns path unchanged if it does not start with "~" or the home
// directory cannot be determined.
func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
