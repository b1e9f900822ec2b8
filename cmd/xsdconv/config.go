package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/reoring/xsdconv/i18n"
)

// Config is the optional YAML configuration file of the CLI. Flags given on
// the command line override it.
type Config struct {
	Language string `yaml:"language"`  // en or ja
	LogLevel string `yaml:"log_level"` // debug, info, warn, error
}

// loadConfig reads a YAML config file; an empty path yields the defaults.
// Values are validated by the caller once flag overrides are applied.
func loadConfig(path string) (*Config, error) {
	cfg := &Config{}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		data = []byte(os.ExpandEnv(string(data)))
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}
	setDefaults(cfg)
	return cfg, nil
}

func setDefaults(cfg *Config) {
	if cfg.Language == "" {
		cfg.Language = "en"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "warn"
	}
}

func validate(cfg *Config) error {
	known := false
	for _, l := range i18n.Languages() {
		if strings.EqualFold(cfg.Language, l) {
			known = true
		}
	}
	if !known {
		return fmt.Errorf("unknown language %q (want one of %s)", cfg.Language, strings.Join(i18n.Languages(), ", "))
	}
	if _, err := zerolog.ParseLevel(cfg.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	return nil
}

// newLogger writes human-readable logs to w at the configured level.
func newLogger(w io.Writer, cfg *Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.WarnLevel
	}
	output := zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339, NoColor: true}
	return zerolog.New(output).Level(level).With().Timestamp().Logger()
}
