package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// LoadConfig loads configuration from a YAML file at the specified path.
// It applies default values, validates the configuration, and returns any
// errors. Environment variables are not consulted; use
// LoadConfigWithEnvOverrides for that.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}

	// Bool fields whose default is true are seeded before unmarshal, so an
	// explicit false in the file still wins.
	cfg := Config{}
	cfg.Telemetry.Logging.RedactPII = DefaultLoggingRedactPII

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
	}

	ApplyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &cfg, nil
}

// LoadConfigWithEnvOverrides loads configuration from a YAML file and applies
// environment variable overrides. Environment variables follow the naming
// convention GLOSAGUARD_SECTION_FIELD (e.g., GLOSAGUARD_TABLES_DIR) and
// always take precedence over file-based configuration.
//
// The loading sequence is:
//  1. Load YAML from file
//  2. Apply default values
//  3. Apply environment variable overrides
//  4. Validate final configuration
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

// applyEnvOverrides applies environment variable overrides to the
// configuration.
func applyEnvOverrides(cfg *Config) {
	// Engine overrides
	if val := os.Getenv("GLOSAGUARD_ENGINE_STOP_ON_FIRST_ERROR"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Engine.StopOnFirstError = b
		}
	}
	if val := os.Getenv("GLOSAGUARD_ENGINE_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Engine.Timeout = d
		}
	}
	if val := os.Getenv("GLOSAGUARD_ENGINE_PARALLEL"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Engine.Parallel = b
		}
	}

	// Tables overrides
	if val := os.Getenv("GLOSAGUARD_TABLES_DIR"); val != "" {
		cfg.Tables.Dir = val
	}
	if val := os.Getenv("GLOSAGUARD_TABLES_WATCH"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Tables.Watch = b
		}
	}
	if val := os.Getenv("GLOSAGUARD_TABLES_REFRESH_SCHEDULE"); val != "" {
		cfg.Tables.RefreshSchedule = val
	}

	// Telemetry overrides
	if val := os.Getenv("GLOSAGUARD_TELEMETRY_LOGGING_LEVEL"); val != "" {
		cfg.Telemetry.Logging.Level = val
	}
	if val := os.Getenv("GLOSAGUARD_TELEMETRY_LOGGING_FORMAT"); val != "" {
		cfg.Telemetry.Logging.Format = val
	}
	if val := os.Getenv("GLOSAGUARD_TELEMETRY_LOGGING_REDACT_PII"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Telemetry.Logging.RedactPII = b
		}
	}
	if val := os.Getenv("GLOSAGUARD_TELEMETRY_METRICS_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Telemetry.Metrics.Enabled = b
		}
	}
	if val := os.Getenv("GLOSAGUARD_TELEMETRY_METRICS_NAMESPACE"); val != "" {
		cfg.Telemetry.Metrics.Namespace = val
	}

	// Rules overrides
	if val := os.Getenv("GLOSAGUARD_RULES_DISABLED"); val != "" {
		var ids []string
		for _, id := range strings.Split(val, ",") {
			if id = strings.TrimSpace(id); id != "" {
				ids = append(ids, id)
			}
		}
		cfg.Rules.Disabled = ids
	}
}
