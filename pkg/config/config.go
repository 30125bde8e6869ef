package config

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds all configuration for the insight engine.
// Configuration can come from YAML file (config.yaml) or environment variables.
// Environment variables always override YAML values for fields that support both.
type Config struct {
	Env     string `yaml:"env" env:"ENVIRONMENT" env-default:"local"`
	Version string `yaml:"-"` // Set at load time, not from config

	// SnapshotPath points at the extraction pipeline's handoff file
	// (relationship catalogue + flattened records, JSON or YAML).
	SnapshotPath string `yaml:"snapshot_path" env:"SNAPSHOT_PATH" env-default:"snapshot.json"`

	// Logging configuration
	Log LogConfig `yaml:"log"`

	// Per-file analysis configuration
	Analysis AnalysisConfig `yaml:"analysis"`

	// Optional impact query, run before the per-file reports
	Impact ImpactConfig `yaml:"impact"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	// Level overrides the environment's default log level when set
	// (debug, info, warn, error).
	Level string `yaml:"level" env:"LOG_LEVEL" env-default:""`
}

// AnalysisConfig holds settings for the per-file analysis run.
type AnalysisConfig struct {
	// MaxConcurrent bounds parallel per-file analysis tasks.
	// 1 runs files strictly one after another.
	MaxConcurrent int `yaml:"max_concurrent" env:"ANALYSIS_MAX_CONCURRENT" env-default:"1"`

	// GraphDepth is the traversal depth for dependency graphs built
	// during impact queries.
	GraphDepth int `yaml:"graph_depth" env:"ANALYSIS_GRAPH_DEPTH" env-default:"3"`
}

// ImpactConfig describes an optional impact query. When Table, Field and
// Value are all set, the harness analyzes that edit before building the
// per-file reports. NewValue switches the query from delete to update.
type ImpactConfig struct {
	Table    string `yaml:"table" env:"IMPACT_TABLE" env-default:""`
	Field    string `yaml:"field" env:"IMPACT_FIELD" env-default:""`
	Value    string `yaml:"value" env:"IMPACT_VALUE" env-default:""`
	NewValue string `yaml:"new_value" env:"IMPACT_NEW_VALUE" env-default:""`
}

// IsRequested returns true if an impact query is fully specified.
func (c *ImpactConfig) IsRequested() bool {
	return c.Table != "" && c.Field != "" && c.Value != ""
}

// IsUpdate returns true if the query describes a value change rather
// than a deletion.
func (c *ImpactConfig) IsUpdate() bool {
	return c.NewValue != ""
}

// Load reads configuration from config.yaml with environment variable overrides.
// The version parameter is injected at build time and set on the returned Config.
func Load(version string) (*Config, error) {
	cfg := &Config{
		Version: version,
	}

	if err := cleanenv.ReadConfig("config.yaml", cfg); err != nil {
		return nil, fmt.Errorf("failed to read config.yaml: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.SnapshotPath == "" {
		return fmt.Errorf("snapshot_path must not be empty")
	}
	if c.Analysis.MaxConcurrent < 1 {
		return fmt.Errorf("analysis.max_concurrent must be at least 1, got %d", c.Analysis.MaxConcurrent)
	}
	if c.Analysis.GraphDepth < 0 {
		return fmt.Errorf("analysis.graph_depth must not be negative, got %d", c.Analysis.GraphDepth)
	}
	if c.Impact.NewValue != "" && !c.Impact.IsRequested() {
		return fmt.Errorf("impact.new_value requires impact.table, impact.field and impact.value")
	}
	return nil
}
