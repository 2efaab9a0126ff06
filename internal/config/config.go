package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/nordicpm/repokeeper/internal/logger"
)

// Config holds optional defaults shared by repokeeper invocations.
type Config struct {
	// DefaultRepository is the repository path used when none is given.
	DefaultRepository string `yaml:"default_repository"`
	// DefaultChannel is the release channel used when none is given.
	// Empty means "not set": the channel is still asked for.
	DefaultChannel string `yaml:"default_channel"`
	// DefaultPlatform is the platform used when none is given.
	DefaultPlatform string `yaml:"default_platform"`
	// LogLevel overrides the default logging level (debug, info, warn, ...).
	LogLevel string `yaml:"log_level"`
}

const (
	// DefaultConfigFilename is the default filename for tool settings.
	DefaultConfigFilename = "repokeeper-settings.yaml"

	// DefaultFilePermissions is the default file permission for settings files.
	DefaultFilePermissions = 0o600
)

var (
	// errConfigIsNotSet is returned when a nil configuration is provided.
	errConfigIsNotSet = errors.New("configuration is not set")
	// errUnknownLogLevel is returned when the configured log level is not recognized.
	errUnknownLogLevel = errors.New("unknown log level")
)

// Load reads settings from the provided path and validates them. A missing
// file yields empty settings rather than an error.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigFilename
	}

	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}

		return nil, fmt.Errorf("read settings: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(contents, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save writes settings to the provided path.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if path == "" {
		path = DefaultConfigFilename
	}

	if err := Validate(cfg); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	// Restrict permissions.
	if err := os.WriteFile(filepath.Clean(path), data, DefaultFilePermissions); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}

	return nil
}

// Validate checks the provided settings for consistency.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if cfg.LogLevel != "" {
		if _, ok := logger.ParseLogLevel(cfg.LogLevel); !ok {
			return fmt.Errorf("%w: %q", errUnknownLogLevel, cfg.LogLevel)
		}
	}

	return nil
}
