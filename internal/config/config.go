// Package config loads archmap configuration from file and environment
// via viper.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config is the complete archmap configuration.
type Config struct {
	Source  SourceConfig  `json:"source" mapstructure:"source"`
	Parser  ParserConfig  `json:"parser" mapstructure:"parser"`
	Logging LoggingConfig `json:"logging" mapstructure:"logging"`
	Store   StoreConfig   `json:"store" mapstructure:"store"`
}

// SourceConfig controls which files enter the pipeline.
type SourceConfig struct {
	// Extensions lists the source file extensions analyzed.
	Extensions []string `json:"extensions" mapstructure:"extensions"`
	// IgnoreFragments excludes files whose path contains a fragment
	// (build output, dependency caches).
	IgnoreFragments []string `json:"ignoreFragments" mapstructure:"ignoreFragments"`
	// RootAlias is the import prefix mapped to the project root.
	RootAlias string `json:"rootAlias" mapstructure:"rootAlias"`
	// MaxFileSizeBytes skips larger files during project loading.
	MaxFileSizeBytes int `json:"maxFileSizeBytes" mapstructure:"maxFileSizeBytes"`
}

// ParserConfig controls the parse stage.
type ParserConfig struct {
	// Workers bounds the per-file parse parallelism. Zero means one
	// worker per CPU.
	Workers int `json:"workers" mapstructure:"workers"`
}

// LoggingConfig controls diagnostic output.
type LoggingConfig struct {
	Format string `json:"format" mapstructure:"format"`
	Level  string `json:"level" mapstructure:"level"`
}

// StoreConfig controls the optional run-history store.
type StoreConfig struct {
	Path string `json:"path" mapstructure:"path"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Source: SourceConfig{
			Extensions:       []string{".ts", ".tsx", ".js", ".jsx"},
			IgnoreFragments:  []string{"node_modules", ".next", "dist", "build", ".git", "coverage"},
			RootAlias:        "@/",
			MaxFileSizeBytes: 1024 * 1024,
		},
		Parser: ParserConfig{
			Workers: 0,
		},
		Logging: LoggingConfig{
			Format: "text",
			Level:  "info",
		},
		Store: StoreConfig{
			Path: ".archmap/archmap.db",
		},
	}
}

// Load reads configuration from the given file path, falling back to
// defaults for anything unset. An empty path loads defaults plus
// ARCHMAP_* environment overrides only.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("ARCHMAP")
	// Nested keys use dots; shells cannot set dotted variable names, so
	// logging.level binds to ARCHMAP_LOGGING_LEVEL.
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults := Default()
	v.SetDefault("source.extensions", defaults.Source.Extensions)
	v.SetDefault("source.ignoreFragments", defaults.Source.IgnoreFragments)
	v.SetDefault("source.rootAlias", defaults.Source.RootAlias)
	v.SetDefault("source.maxFileSizeBytes", defaults.Source.MaxFileSizeBytes)
	v.SetDefault("parser.workers", defaults.Parser.Workers)
	v.SetDefault("logging.format", defaults.Logging.Format)
	v.SetDefault("logging.level", defaults.Logging.Level)
	v.SetDefault("store.path", defaults.Store.Path)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}
