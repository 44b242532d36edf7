// Package config loads runtime configuration for robustness
// evaluation runs from defaults, an optional config file, and
// FOIL_-prefixed environment variables, in increasing precedence.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds the knobs for a robustness evaluation run.
type Config struct {
	// Eta is the overshoot multiplier applied to each minimal step.
	Eta float64 `mapstructure:"eta"`

	// MaxIter caps the number of search iterations per example.
	MaxIter int `mapstructure:"max_iter"`

	// CacheDir, when non-empty, is where per-fold ratio lists are
	// cached between runs.
	CacheDir string `mapstructure:"cache_dir"`

	// LogLevel is the zap level for run logging.
	LogLevel string `mapstructure:"log_level"`
}

// Default returns the configuration used when nothing is overridden.
func Default() *Config {
	return &Config{
		Eta:      0.02,
		MaxIter:  50,
		CacheDir: "",
		LogLevel: "info",
	}
}

// Load reads configuration from the given file (optional, any format
// viper understands) and the environment, layered over defaults.
func Load(path string) (*Config, error) {
	v := viper.New()
	def := Default()
	v.SetDefault("eta", def.Eta)
	v.SetDefault("max_iter", def.MaxIter)
	v.SetDefault("cache_dir", def.CacheDir)
	v.SetDefault("log_level", def.LogLevel)

	v.SetEnvPrefix("FOIL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.Eta < 0 {
		return fmt.Errorf("config: eta must be >= 0, got %v", c.Eta)
	}
	if c.MaxIter < 1 {
		return fmt.Errorf("config: max_iter must be >= 1, got %d", c.MaxIter)
	}
	return nil
}
