package config

import (
	"os"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/skyline93/seekmap/internal/layout"
)

// Config holds the defaults used by the seekmap commands. Command line flags
// override the values loaded from a config file.
type Config struct {
	// Start is the first location of a relocated block.
	Start uint64 `yaml:"start"`
	// Top is the number of most frequent addresses a frequency based
	// strategy relocates.
	Top int `yaml:"top"`
	// Workers bounds the number of strategies evaluated concurrently.
	Workers int `yaml:"workers"`
	// MaxAddress rejects trace addresses above it. Zero leaves only the hard
	// limit of the placement index.
	MaxAddress uint64 `yaml:"max_address"`
	LogLevel   string `yaml:"log_level"`
	// Format is either "text" or "json".
	Format string `yaml:"format"`
	// Verify runs a full index check after every relocation.
	Verify bool `yaml:"verify"`
}

const (
	FormatText = "text"
	FormatJSON = "json"
)

// DefaultMaxAddress covers a 1 TiB device in 4 KiB blocks.
const DefaultMaxAddress = 1 << 28

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Start:      0,
		Top:        100,
		Workers:    2,
		MaxAddress: DefaultMaxAddress,
		LogLevel:   "info",
		Format:     FormatText,
	}
}

// Load reads the YAML file at path on top of Default. An empty path returns
// the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrap(err, "ReadFile")
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, errors.Wrapf(err, "parse %s", path)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, errors.Wrapf(err, "config %s", path)
	}

	log.Debugf("loaded config %s: %+v", path, cfg)
	return cfg, nil
}

// Validate checks that all values are usable.
func (c Config) Validate() error {
	if c.Top < 0 {
		return errors.Errorf("top must not be negative, got %d", c.Top)
	}
	if c.Workers < 1 {
		return errors.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	if c.MaxAddress > layout.MaxIndexable {
		return errors.Errorf("max_address must not exceed %d, got %d", uint64(layout.MaxIndexable), c.MaxAddress)
	}
	if c.Format != FormatText && c.Format != FormatJSON {
		return errors.Errorf("unknown format %q", c.Format)
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return errors.Wrap(err, "log_level")
	}
	return nil
}

// Level returns the configured log level.
func (c Config) Level() log.Level {
	lvl, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}
