// Package config loads app configuration from a YAML file and environment
// variables. Priority: ENV > YAML > defaults.
package config

import (
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config is the full app configuration.
type Config struct {
	Bank    BankConfig    `yaml:"bank"`
	Storage StorageConfig `yaml:"storage"`
	Review  ReviewConfig  `yaml:"review"`
	Log     LogConfig     `yaml:"log"`
}

// BankConfig locates the question bank file.
type BankConfig struct {
	Path string `yaml:"path" env:"QUIZDRILL_BANK" env-default:"questions.json"`
}

// StorageConfig locates the SQLite database. An empty path means the XDG
// default location.
type StorageConfig struct {
	Path string `yaml:"path" env:"QUIZDRILL_DB"`
}

// ReviewConfig tunes queue construction.
type ReviewConfig struct {
	SmartLimit int `yaml:"smart_limit" env:"QUIZDRILL_SMART_LIMIT" env-default:"30"`
}

// LogConfig controls the debug log. The TUI owns the terminal, so logs go
// to a file; an empty file disables logging.
type LogConfig struct {
	File  string `yaml:"file" env:"QUIZDRILL_LOG"`
	Level string `yaml:"level" env:"QUIZDRILL_LOG_LEVEL" env-default:"info"`
}

// defaultFile is the config file checked when no explicit path is given.
const defaultFile = "quizdrill.yaml"

// Load reads configuration. An explicit path (from the --config flag) must
// exist; otherwise QUIZDRILL_CONFIG is consulted, then ./quizdrill.yaml.
// With no file present, configuration comes from ENV + defaults only.
func Load(path string) (*Config, error) {
	var cfg Config

	explicit := path != ""
	if !explicit {
		path = os.Getenv("QUIZDRILL_CONFIG")
		explicit = path != ""
	}
	if !explicit {
		path = defaultFile
	}

	if _, err := os.Stat(path); err == nil {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	} else if explicit {
		return nil, fmt.Errorf("config: file %s: %w", path, err)
	} else {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("config: read env: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

// Validate checks the loaded values.
func (c *Config) Validate() error {
	if c.Bank.Path == "" {
		return fmt.Errorf("bank path must not be empty")
	}
	if c.Review.SmartLimit < 1 {
		return fmt.Errorf("review smart_limit must be at least 1, got %d", c.Review.SmartLimit)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.Log.Level)
	}
	return nil
}
