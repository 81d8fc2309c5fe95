package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/danpilch/trainlist/internal/storage"
)

const (
	DefaultPath     = "trainlist.yaml"
	DefaultLogLevel = "warn"
)

type NotifyConfig struct {
	// Enabled sends a Pushover message for every added train.
	Enabled bool `yaml:"enabled"`
}

type Config struct {
	DataFile string       `yaml:"data_file"`
	LogLevel string       `yaml:"log_level"`
	Notify   NotifyConfig `yaml:"notify"`
}

func Default() *Config {
	return &Config{
		DataFile: storage.DefaultPath,
		LogLevel: DefaultLogLevel,
	}
}

// Load reads the config file at path. A missing file is not an error and
// yields the defaults; keys absent from the file keep their default value.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.DataFile == "" {
		return fmt.Errorf("data_file must not be empty")
	}
	if _, err := c.Level(); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	return nil
}

// Level returns the configured logrus level.
func (c *Config) Level() (logrus.Level, error) {
	return logrus.ParseLevel(c.LogLevel)
}
