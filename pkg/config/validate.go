package config

import (
	"fmt"
	"strings"
)

// FieldError represents a validation error for a specific configuration
// field.
type FieldError struct {
	// Field is the dotted path to the configuration field (e.g.,
	// "sync.in_flight_limit").
	Field string

	// Message is a human-readable error message.
	Message string
}

// Error returns the error message for this field error.
func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError collects every FieldError found in a Config.
type ValidationError struct {
	Errors []FieldError
}

// Error returns a formatted string containing all validation errors.
func (e ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "configuration validation failed"
	}
	if len(e.Errors) == 1 {
		return fmt.Sprintf("configuration validation failed: %s", e.Errors[0].Error())
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("configuration validation failed with %d errors:\n", len(e.Errors)))
	for _, err := range e.Errors {
		sb.WriteString(fmt.Sprintf("  - %s\n", err.Error()))
	}
	return sb.String()
}

// Validate validates the entire configuration and returns a
// ValidationError if any validation rules fail. Call it after
// ApplyDefaults so required-but-defaultable fields are already filled.
func Validate(cfg *Config) error {
	var errs []FieldError

	errs = append(errs, validateSync(&cfg.Sync)...)
	errs = append(errs, validateWatch(&cfg.Watch)...)
	errs = append(errs, validateGitProfile(&cfg.GitProfile)...)
	errs = append(errs, validateMetrics(&cfg.Metrics)...)
	errs = append(errs, validateLogging(&cfg.Logging)...)

	if len(errs) > 0 {
		return ValidationError{Errors: errs}
	}
	return nil
}

func validateSync(cfg *SyncConfig) []FieldError {
	var errs []FieldError
	if cfg.InFlightLimit < 1 {
		errs = append(errs, FieldError{Field: "sync.in_flight_limit", Message: "must be at least 1"})
	}
	if cfg.TryCount < 1 {
		errs = append(errs, FieldError{Field: "sync.try_count", Message: "must be at least 1"})
	}
	if cfg.BatchSize < 1 {
		errs = append(errs, FieldError{Field: "sync.batch_size", Message: "must be at least 1"})
	}
	if cfg.PageLimit < 1 {
		errs = append(errs, FieldError{Field: "sync.page_limit", Message: "must be at least 1"})
	}
	if cfg.RequestTimeout < 0 {
		errs = append(errs, FieldError{Field: "sync.request_timeout", Message: "must not be negative"})
	}
	return errs
}

func validateWatch(cfg *WatchConfig) []FieldError {
	var errs []FieldError
	if cfg.Enabled && cfg.Schedule == "" {
		errs = append(errs, FieldError{Field: "watch.schedule", Message: "required when watch.enabled is true"})
	}
	return errs
}

func validateGitProfile(cfg *GitProfileConfig) []FieldError {
	var errs []FieldError
	switch cfg.Auth.Type {
	case "", "none":
	case "token":
		if cfg.Auth.Token == "" {
			errs = append(errs, FieldError{Field: "git_profile.auth.token", Message: "required when auth.type is \"token\""})
		}
	case "ssh":
		if cfg.Auth.SSHKeyPath == "" {
			errs = append(errs, FieldError{Field: "git_profile.auth.ssh_key_path", Message: "required when auth.type is \"ssh\""})
		}
	default:
		errs = append(errs, FieldError{Field: "git_profile.auth.type", Message: fmt.Sprintf("unknown auth type %q, want \"token\", \"ssh\", or \"none\"", cfg.Auth.Type)})
	}
	if cfg.Clone.Depth < 0 {
		errs = append(errs, FieldError{Field: "git_profile.clone.depth", Message: "must not be negative"})
	}
	return errs
}

func validateMetrics(cfg *MetricsConfig) []FieldError {
	var errs []FieldError
	if cfg.Enabled && cfg.ListenAddress == "" {
		errs = append(errs, FieldError{Field: "metrics.listen_address", Message: "required when metrics.enabled is true"})
	}
	return errs
}

func validateLogging(cfg *LoggingConfig) []FieldError {
	var errs []FieldError
	switch cfg.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, FieldError{Field: "logging.level", Message: fmt.Sprintf("unknown level %q, want debug/info/warn/error", cfg.Level)})
	}
	switch cfg.Format {
	case "json", "text":
	default:
		errs = append(errs, FieldError{Field: "logging.format", Message: fmt.Sprintf("unknown format %q, want json/text", cfg.Format)})
	}
	return errs
}
