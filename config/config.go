// Package config loads the process configuration used by the thresh
// command: which system to run on, which primitives to use, the threshold
// policy and logging.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/f3rmion/thresh/curves"
	"github.com/f3rmion/thresh/dem"
	"github.com/f3rmion/thresh/hashing"
	"github.com/f3rmion/thresh/suite"
	"github.com/f3rmion/thresh/threshold"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid configuration")

// LoggerConfig holds the logging configuration.
type LoggerConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json or console
}

// Config holds the application's configuration values.
type Config struct {
	System    string `yaml:"system"`
	Hash      string `yaml:"hash"`
	Mode      string `yaml:"mode"`
	Threshold int    `yaml:"threshold"`
	Total     int    `yaml:"total"`

	// SkipThreshold lets the combiner run with fewer than Threshold shares.
	SkipThreshold bool `yaml:"skip_threshold"`
	// ParallelValidation checks partial decryptor proofs concurrently.
	ParallelValidation bool `yaml:"parallel_validation"`

	Logger LoggerConfig `yaml:"logger"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		System:    curves.Default.String(),
		Hash:      hashing.Default.String(),
		Mode:      dem.Default.String(),
		Threshold: 2,
		Total:     3,
		Logger: LoggerConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load reads a YAML file over the defaults and validates the result.
// An empty path returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.decode(data); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse is Load for configuration already in memory.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := cfg.decode(data); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) decode(data []byte) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("config: decoding: %w", err)
	}
	return nil
}

// Validate checks every field. Unsupported names fail here, before any
// cryptographic operation.
func (c *Config) Validate() error {
	if _, err := curves.Parse(c.System); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if _, err := hashing.Parse(c.Hash); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if _, err := dem.Parse(c.Mode); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if c.Threshold < 1 || c.Threshold > c.Total {
		return fmt.Errorf("%w: threshold %d of %d", ErrInvalid, c.Threshold, c.Total)
	}
	if _, err := zapcore.ParseLevel(c.Logger.Level); err != nil {
		return fmt.Errorf("%w: log level: %w", ErrInvalid, err)
	}
	switch c.Logger.Format {
	case "json", "console":
	default:
		return fmt.Errorf("%w: log format %q", ErrInvalid, c.Logger.Format)
	}
	return nil
}

// NewLogger builds a zap logger writing to stderr.
func (c *Config) NewLogger() (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(c.Logger.Level)
	if err != nil {
		return nil, err
	}
	var zc zap.Config
	if c.Logger.Format == "json" {
		zc = zap.NewProductionConfig()
	} else {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.OutputPaths = []string{"stderr"}
	return zc.Build()
}

// Suite builds the cryptographic suite described by the configuration.
func (c *Config) Suite(logger *zap.Logger) (*suite.Suite, error) {
	label, err := curves.Parse(c.System)
	if err != nil {
		return nil, err
	}
	alg, err := hashing.Parse(c.Hash)
	if err != nil {
		return nil, err
	}
	mode, err := dem.Parse(c.Mode)
	if err != nil {
		return nil, err
	}
	opts := []suite.Option{suite.WithHash(alg), suite.WithMode(mode)}
	if logger != nil {
		opts = append(opts, suite.WithLogger(logger))
	}
	return suite.New(label, opts...)
}

// Combiner builds a combiner with the configured threshold policy.
func (c *Config) Combiner(s *suite.Suite) (*threshold.Combiner, error) {
	var opts []threshold.Option
	if c.SkipThreshold {
		opts = append(opts, threshold.WithSkipThreshold())
	}
	if c.ParallelValidation {
		opts = append(opts, threshold.WithParallelValidation())
	}
	return threshold.NewCombiner(s, c.Threshold, opts...)
}
