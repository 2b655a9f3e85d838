// Package config provides configuration management for sw-sync-cli.
//
// This package handles loading, validating, and managing configuration from
// YAML files with environment variable overrides. It provides a type-safe
// configuration system with comprehensive validation and sensible defaults.
//
// # Configuration Loading
//
// Configuration can be loaded in two ways:
//
//  1. From a YAML file only:
//     cfg, err := config.LoadConfig("config.yaml")
//
//  2. From a YAML file with environment variable overrides:
//     cfg, err := config.LoadConfigWithEnvOverrides("config.yaml")
//
// # Environment Variable Overrides
//
// Environment variables follow the naming convention SWSYNC_SECTION_FIELD.
// For example:
//
//   - SWSYNC_SYNC_IN_FLIGHT_LIMIT overrides sync.in_flight_limit
//   - SWSYNC_SYNC_BATCH_SIZE overrides sync.batch_size
//   - SWSYNC_LOGGING_LEVEL overrides logging.level
//
// Environment variables always take precedence over file-based configuration.
//
// # Configuration Precedence
//
// Configuration values are applied in the following order (later overrides earlier):
//
//  1. Default values (defined in defaults.go)
//  2. Values from YAML file
//  3. Environment variable overrides
//  4. Validation (fails fast if invalid)
//
// # Singleton Pattern
//
// For application-wide configuration access, use the singleton pattern:
//
//	// At application startup
//	if err := config.Initialize("config.yaml"); err != nil {
//	    log.Fatal(err)
//	}
//
//	// Anywhere in the application
//	cfg := config.GetConfig()
//	fmt.Println(cfg.Sync.InFlightLimit)
//
// For testing, prefer dependency injection with explicit Config instances
// rather than the global singleton.
//
// # Validation
//
// All configuration is validated automatically during loading. Validation includes:
//
//   - Required field checks (e.g., watch.schedule when watch.enabled is true)
//   - Range validation (e.g., sync.in_flight_limit must be at least 1)
//   - Enum validation (e.g., logging.level, git_profile.auth.type)
//
// Validation errors include field paths and helpful messages:
//
//	configuration validation failed with 2 errors:
//	  - sync.batch_size: must be at least 1
//	  - watch.schedule: required when watch.enabled is true
//
// # Example Configuration
//
// Here is a minimal configuration file:
//
//	sync:
//	  in_flight_limit: 8
//	  try_count: 3
//	  batch_size: 100
//	  page_limit: 250
//
//	logging:
//	  level: "info"
//	  format: "json"
//
// # Thread Safety
//
// All configuration access is thread-safe. The singleton pattern uses read-write
// locks to allow concurrent reads while protecting against concurrent writes during
// reload operations.
package config
