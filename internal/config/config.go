// Package config loads the optional TOML file that supplies defaults for the
// symhash command-line flags. The hash phrase is never read from it.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/isseis/go-symbol-hasher/internal/logging"
	"github.com/isseis/go-symbol-hasher/internal/mapping"
	"github.com/isseis/go-symbol-hasher/internal/safefileio"
	"github.com/pelletier/go-toml/v2"
)

// maxConfigSize bounds the configuration file size
const maxConfigSize = 1024 * 1024

// Configuration errors
var (
	// ErrConfigTooLarge is returned when the file exceeds maxConfigSize
	ErrConfigTooLarge = errors.New("config file too large")

	// ErrUnknownConfigKey is returned when the file contains a key this version does not know
	ErrUnknownConfigKey = errors.New("unknown config key")

	// ErrSecretInConfig is returned when the file tries to carry the hash phrase
	ErrSecretInConfig = errors.New("hash phrase must not be stored in the config file")

	// ErrInvalidConfig is returned when a value fails validation
	ErrInvalidConfig = errors.New("invalid config value")
)

// secretKeys are rejected outright so a phrase never sits in a plain file
var secretKeys = []string{"hash_phrase", "hashphrase", "hash-phrase", "secret", "key"}

// Config holds flag defaults. Pointer fields distinguish unset from false.
type Config struct {
	StripLineNumbers *bool  `toml:"strip_line_numbers"`
	SortMapping      *bool  `toml:"sort_mapping"`
	MappingFormat    string `toml:"mapping_format"`
	MappingFile      string `toml:"mapping_file"`
	LogLevel         string `toml:"log_level"`
	LogFormat        string `toml:"log_format"`
}

// Load reads and validates the config file at path.
func Load(path string) (*Config, error) {
	f, err := safefileio.SafeOpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	content, err := io.ReadAll(io.LimitReader(f, maxConfigSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if len(content) > maxConfigSize {
		return nil, fmt.Errorf("%w: %s", ErrConfigTooLarge, path)
	}

	cfg, err := Parse(content)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// LoadOptional behaves like Load but returns an empty Config when path does not exist.
func LoadOptional(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return &Config{}, nil
	}
	return cfg, err
}

// Parse decodes and validates TOML content.
func Parse(content []byte) (*Config, error) {
	if err := checkSecretKeys(content); err != nil {
		return nil, err
	}

	var cfg Config
	dec := toml.NewDecoder(bytes.NewReader(content))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return nil, fmt.Errorf("%w:\n%s", ErrUnknownConfigKey, strict.String())
		}
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks enumerated values.
func (c *Config) Validate() error {
	if _, err := mapping.ParseFormat(c.MappingFormat); err != nil {
		return fmt.Errorf("%w: mapping_format: %w", ErrInvalidConfig, err)
	}
	var level logging.LogLevel
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return fmt.Errorf("%w: log_level: %w", ErrInvalidConfig, err)
	}
	var format logging.LogFormat
	if err := format.UnmarshalText([]byte(c.LogFormat)); err != nil {
		return fmt.Errorf("%w: log_format: %w", ErrInvalidConfig, err)
	}
	return nil
}

// checkSecretKeys inspects the raw document for keys that would hold the hash phrase
func checkSecretKeys(content []byte) error {
	var raw map[string]any
	if err := toml.Unmarshal(content, &raw); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}
	for _, key := range secretKeys {
		if _, ok := raw[key]; ok {
			return fmt.Errorf("%w: found key %q", ErrSecretInConfig, key)
		}
	}
	return nil
}
