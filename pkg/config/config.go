package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/psarna/dirsync/pkg/dirsync"

	"gopkg.in/yaml.v3"
)

type Config struct {
	MaxDepth    int    `yaml:"max_depth"`
	RaceRetries int    `yaml:"race_retries"`
	LogLevel    string `yaml:"log_level"`
	Jobs        int    `yaml:"jobs"`
	Retry       Retry  `yaml:"retry"`
}

// Retry controls repeating a whole sync that failed transiently.
type Retry struct {
	MaxTries        int           `yaml:"max_tries"`
	InitialInterval time.Duration `yaml:"initial_interval"`
}

func Default() Config {
	return Config{
		MaxDepth:    dirsync.DefaultMaxDepth,
		RaceRetries: dirsync.DefaultRaceRetries,
		Jobs:        1,
		Retry: Retry{
			MaxTries:        1,
			InitialInterval: 50 * time.Millisecond,
		},
	}
}

// Load reads a YAML file on top of Default. Keys missing from the file keep
// their default value; unknown keys are rejected.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (Config, error) {
	cfg := Default()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.MaxDepth < 1 {
		return fmt.Errorf("max_depth must be at least 1, got %d", c.MaxDepth)
	}
	if c.RaceRetries < 0 {
		return fmt.Errorf("race_retries must not be negative, got %d", c.RaceRetries)
	}
	if c.Jobs < 1 {
		return fmt.Errorf("jobs must be at least 1, got %d", c.Jobs)
	}
	if c.Retry.MaxTries < 1 {
		return fmt.Errorf("retry.max_tries must be at least 1, got %d", c.Retry.MaxTries)
	}
	if c.Retry.InitialInterval < 0 {
		return fmt.Errorf("retry.initial_interval must not be negative, got %s", c.Retry.InitialInterval)
	}
	if _, ok := dirsync.ParseLevel(c.LogLevel); !ok {
		return fmt.Errorf("unknown log_level %q", c.LogLevel)
	}
	return nil
}

// Options translates the tuning knobs into dirsync options.
func (c Config) Options() []dirsync.Option {
	return []dirsync.Option{
		dirsync.WithMaxDepth(c.MaxDepth),
		dirsync.WithRaceRetries(c.RaceRetries),
		dirsync.WithExternalRetry(c.Retry.MaxTries, c.Retry.InitialInterval),
	}
}
