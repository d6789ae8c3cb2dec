package model

import (
	"runtime"
	"time"
)

// Config holds all runtime configuration.
type Config struct {
	Pipeline PipelineConfig `yaml:"pipeline" mapstructure:"pipeline"`
	Cache    CacheConfig    `yaml:"cache" mapstructure:"cache"`
	Output   OutputConfig   `yaml:"output" mapstructure:"output"`
	Log      LogConfig      `yaml:"log" mapstructure:"log"`
}

// PipelineConfig controls the batch extraction run.
type PipelineConfig struct {
	Concurrency       int `yaml:"concurrency" mapstructure:"concurrency"`
	Limit             int `yaml:"limit" mapstructure:"limit"` // 0 = all rows
	MaxCleanTextChars int `yaml:"max_clean_text_chars" mapstructure:"max_clean_text_chars"`
	RawExcerptChars   int `yaml:"raw_excerpt_chars" mapstructure:"raw_excerpt_chars"`
}

// CacheConfig controls the evaluation memo cache.
type CacheConfig struct {
	Enabled bool          `yaml:"enabled" mapstructure:"enabled"`
	TTL     time.Duration `yaml:"ttl" mapstructure:"ttl"`
}

// OutputConfig controls where the output tables are written.
type OutputConfig struct {
	Dir string `yaml:"dir" mapstructure:"dir"`
}

// LogConfig controls the zap logger.
type LogConfig struct {
	JSON  bool `yaml:"json" mapstructure:"json"`
	Debug bool `yaml:"debug" mapstructure:"debug"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Pipeline: PipelineConfig{
			Concurrency:       runtime.NumCPU(),
			MaxCleanTextChars: 6000,
			RawExcerptChars:   2000,
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     10 * time.Minute,
		},
		Output: OutputConfig{
			Dir: "./policyfit-out",
		},
	}
}
