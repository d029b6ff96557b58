// Package config provides configuration loading for the allow list handler.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix for environment variables read by the CLI
const EnvPrefix = "ALLOWLIST"

var (
	// ErrAllowListNotList is returned when the configured allow list is not a list
	ErrAllowListNotList = errors.New("allow list is not a list")

	// ErrAllowListNotString is returned when an allow list entry is not a string
	ErrAllowListNotString = errors.New("allow list entry is not a string")
)

//go:generate mockgen -destination=mocks/mock_source.go -package=mocks -source=config.go AllowListSource

// AllowListSource provides the allow list patterns configured for a project.
type AllowListSource interface {
	// GetAllowList returns the configured glob patterns. A project without
	// an allow list returns an empty list and no error.
	GetAllowList() ([]string, error)
}

var (
	_ AllowListSource = (*Config)(nil)
	_ AllowListSource = (*Manifest)(nil)
)

// Option defines the interface for configuration options
type Option func(*loaderConfig) error

// loaderConfig defines the configuration for loading a configuration
type loaderConfig struct {
	path string
}

// WithConfigPath loads configuration from a YAML file
func WithConfigPath(path string) Option {
	return func(cfg *loaderConfig) error {
		realPath, err := resolvePath(path)
		if err != nil {
			return err
		}
		cfg.path = realPath
		return nil
	}
}

// resolvePath resolves symlinks and rejects relative paths that escape the
// working directory.
func resolvePath(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("path is required")
	}

	// Note that this calls filepath.Clean internally.
	realPath, err := filepath.EvalSymlinks(path)
	if err != nil {
		return "", fmt.Errorf("failed to evaluate symlinks: %w", err)
	}

	if !filepath.IsAbs(realPath) {
		if !filepath.IsLocal(realPath) {
			return "", fmt.Errorf("path is not local or contains invalid traversal: %s", path)
		}
	}

	return realPath, nil
}

// Config represents the root configuration structure
type Config struct {
	// AllowList is the list of glob patterns package names must match.
	// When set it takes the place of a manifest allow list.
	AllowList []string `yaml:"allowList,omitempty"`

	// Manifest is the path to a package manifest holding the allow list.
	// Relative paths are resolved against the directory of the config file.
	Manifest string `yaml:"manifest,omitempty"`

	manifest *Manifest
}

// LoadConfig loads and parses configuration from a YAML file
func LoadConfig(opts ...Option) (*Config, error) {
	loaderCfg := &loaderConfig{}
	for _, opt := range opts {
		if err := opt(loaderCfg); err != nil {
			return nil, err
		}
	}

	if loaderCfg.path == "" {
		return nil, fmt.Errorf("path is required")
	}

	data, err := os.ReadFile(loaderCfg.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config, err := ParseConfig(data)
	if err != nil {
		return nil, err
	}

	if config.Manifest != "" {
		manifestPath := config.Manifest
		if !filepath.IsAbs(manifestPath) {
			manifestPath = filepath.Join(filepath.Dir(loaderCfg.path), manifestPath)
		}
		manifest, err := LoadManifest(manifestPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load manifest: %w", err)
		}
		config.manifest = manifest
	}

	return config, nil
}

// ParseConfig parses and validates YAML configuration. Unknown keys are rejected.
func ParseConfig(data []byte) (*Config, error) {
	var config Config
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Validate performs validation on the configuration
func (c *Config) Validate() error {
	if c == nil {
		return fmt.Errorf("config cannot be nil")
	}

	if c.AllowList != nil && c.Manifest != "" {
		return fmt.Errorf("allowList and manifest are mutually exclusive")
	}

	return nil
}

// GetAllowList returns the allow list from the config file, or from the
// referenced manifest when the config file does not list patterns itself.
func (c *Config) GetAllowList() ([]string, error) {
	if c.AllowList != nil {
		return append([]string{}, c.AllowList...), nil
	}
	if c.manifest != nil {
		return c.manifest.GetAllowList()
	}
	return []string{}, nil
}
