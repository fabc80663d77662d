// Package config loads the rapidid CLI settings from a YAML file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("config: invalid value")

// Output formats for generated identifiers.
const (
	OutputText = "text"
	OutputJSON = "json"
)

// Config is the on-disk CLI configuration.
type Config struct {
	// Workers caps batch goroutines. 0 means GOMAXPROCS.
	Workers int `yaml:"workers"`
	// MinChunk is the fewest identifiers one batch goroutine handles. 0 uses the library default.
	MinChunk int `yaml:"min_chunk"`
	// NanoIDSize is the default NanoID length.
	NanoIDSize int `yaml:"nanoid_size"`
	// Output is "text" (one id per line) or "json".
	Output string `yaml:"output"`
	Log    Log    `yaml:"log"`
}

// Log configures diagnostics on stderr.
type Log struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		NanoIDSize: 21,
		Output:     OutputText,
		Log: Log{
			Level:  "warn",
			Format: "text",
		},
	}
}

// Load reads path over Default. An empty path, or a path that does not
// exist, yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// Validate checks ranges and enumerations.
func (c Config) Validate() error {
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers must not be negative, got %d", ErrInvalid, c.Workers)
	}
	if c.MinChunk < 0 {
		return fmt.Errorf("%w: min_chunk must not be negative, got %d", ErrInvalid, c.MinChunk)
	}
	if c.NanoIDSize <= 0 {
		return fmt.Errorf("%w: nanoid_size must be positive, got %d", ErrInvalid, c.NanoIDSize)
	}
	switch c.Output {
	case OutputText, OutputJSON:
	default:
		return fmt.Errorf("%w: output must be %q or %q, got %q", ErrInvalid, OutputText, OutputJSON, c.Output)
	}
	return nil
}
