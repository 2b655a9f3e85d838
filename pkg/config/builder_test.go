package config

// ConfigBuilder provides a fluent API for building Config instances in
// tests. It starts from ApplyDefaults and allows selective overrides.
type ConfigBuilder struct {
	cfg Config
}

// NewTestConfig creates a new ConfigBuilder with sensible defaults for
// testing. The resulting configuration is valid and can be used
// immediately.
func NewTestConfig() *ConfigBuilder {
	var cfg Config
	ApplyDefaults(&cfg)
	return &ConfigBuilder{cfg: cfg}
}

// Build returns the built Config instance.
func (b *ConfigBuilder) Build() Config {
	return b.cfg
}

func (b *ConfigBuilder) WithInFlightLimit(n int) *ConfigBuilder {
	b.cfg.Sync.InFlightLimit = n
	return b
}

func (b *ConfigBuilder) WithBatchSize(n int) *ConfigBuilder {
	b.cfg.Sync.BatchSize = n
	return b
}

func (b *ConfigBuilder) WithWatch(schedule string) *ConfigBuilder {
	b.cfg.Watch.Enabled = true
	b.cfg.Watch.Schedule = schedule
	return b
}
