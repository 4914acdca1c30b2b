package config

import "time"

// Config is the root configuration structure for GlosaGuard. It contains
// all configuration sections for the validation engine, lookup tables,
// telemetry, and rule toggles.
type Config struct {
	// Engine contains validation engine configuration including execution
	// mode and the soft time budget.
	Engine EngineConfig `yaml:"engine"`

	// Tables contains lookup-table configuration including the table
	// directory, file watching, and the periodic refresh schedule.
	Tables TablesConfig `yaml:"tables"`

	// Telemetry contains observability configuration for logging and
	// metrics.
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Rules contains rule catalog configuration.
	Rules RulesConfig `yaml:"rules"`
}

// EngineConfig contains validation engine configuration.
type EngineConfig struct {
	// StopOnFirstError halts a sequential pass once a blocking finding is
	// recorded.
	// Default: false
	StopOnFirstError bool `yaml:"stop_on_first_error"`

	// Timeout is the soft wall-clock budget for one validation pass,
	// checked between rules. Zero means no budget.
	// Default: 0
	Timeout time.Duration `yaml:"timeout"`

	// Parallel runs all applicable rules concurrently. StopOnFirstError
	// and Timeout are not enforced in this mode.
	// Default: false
	Parallel bool `yaml:"parallel"`
}

// TablesConfig contains lookup-table configuration.
type TablesConfig struct {
	// Dir is the directory holding the YAML table files (tuss.yaml,
	// cbo.yaml). An empty value disables table-backed rules.
	// Default: "tables"
	Dir string `yaml:"dir"`

	// Watch enables automatic table reloading when files in Dir change.
	// Default: false
	Watch bool `yaml:"watch"`

	// RefreshSchedule is a cron expression for periodic table refresh.
	// Empty disables scheduled refresh.
	// Example: "0 3 * * *" (daily at 3 AM)
	RefreshSchedule string `yaml:"refresh_schedule"`
}

// TelemetryConfig contains observability configuration.
type TelemetryConfig struct {
	// Logging contains logging configuration.
	Logging LoggingConfig `yaml:"logging"`

	// Metrics contains metrics collection configuration.
	Metrics MetricsConfig `yaml:"metrics"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level to emit.
	// Options: "debug", "info", "warn", "error"
	// Default: "info"
	Level string `yaml:"level"`

	// Format controls the log output format.
	// Options: "json", "text"
	// Default: "text"
	Format string `yaml:"format"`

	// AddSource includes file and line number in log entries.
	// Default: false
	AddSource bool `yaml:"add_source"`

	// RedactPII masks patient identifiers (CPF, CNS, carteira numbers)
	// in log output.
	// Default: true
	RedactPII bool `yaml:"redact_pii"`
}

// MetricsConfig contains metrics collection configuration.
type MetricsConfig struct {
	// Enabled controls whether Prometheus metrics are registered.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// Namespace is the metric name prefix.
	// Default: "glosaguard"
	Namespace string `yaml:"namespace"`

	// Subsystem is the metric subsystem name.
	// Default: "validation"
	Subsystem string `yaml:"subsystem"`

	// DurationBuckets defines histogram buckets for pass duration (seconds).
	// Default: [0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0, 5.0]
	DurationBuckets []float64 `yaml:"duration_buckets"`
}

// RulesConfig contains rule catalog configuration.
type RulesConfig struct {
	// Disabled lists rule ids to disable at startup. Unknown ids are
	// ignored.
	Disabled []string `yaml:"disabled"`
}
