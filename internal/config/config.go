// Package config loads nbloc configuration from a YAML file and the
// environment.
package config

import (
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/d-kuro/nbloc/internal/errors"
	"github.com/d-kuro/nbloc/internal/jupyter"
	"github.com/d-kuro/nbloc/internal/logging"
)

const (
	// DefaultConfigDir is the configuration directory under the user's home.
	DefaultConfigDir = ".nbloc"

	// DefaultConfigFile is the configuration file name.
	DefaultConfigFile = "config.yaml"
)

// Config holds nbloc settings.
type Config struct {
	LogLevel string `yaml:"log_level"`

	// ConnectionFile is the kernel connection file. When empty it is taken
	// from the kernel command line.
	ConnectionFile string `yaml:"connection_file"`

	// RuntimeDirs overrides the Jupyter runtime directory lookup.
	RuntimeDirs []string `yaml:"runtime_dirs"`

	// NotebookDir is searched for sibling notebooks.
	NotebookDir string `yaml:"notebook_dir"`

	// RequestTimeout bounds each session query, as a Go duration. "0"
	// disables the client timeout.
	RequestTimeout string `yaml:"request_timeout"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		LogLevel:       "info",
		NotebookDir:    ".",
		RequestTimeout: jupyter.DefaultTimeout.String(),
	}
}

// DefaultPath returns ~/.nbloc/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "failed to get user home directory")
	}
	return filepath.Join(home, DefaultConfigDir, DefaultConfigFile), nil
}

// Load reads the file at path over the defaults. A missing file is not an
// error when optional is true.
func Load(path string, optional bool) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if optional && os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, errors.Configuration("failed to read config file "+path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Configuration("failed to parse config file "+path, err)
	}

	return cfg, nil
}

// ApplyEnv overrides settings from environment variables.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if v := getenv("LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := getenv("NBLOC_CONNECTION_FILE"); v != "" {
		c.ConnectionFile = v
	}
	if v := getenv("JUPYTER_RUNTIME_DIR"); v != "" {
		c.RuntimeDirs = []string{v}
	}
	if v := getenv("NBLOC_NOTEBOOK_DIR"); v != "" {
		c.NotebookDir = v
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return errors.Configuration("invalid log_level", err)
	}
	if _, err := c.Timeout(); err != nil {
		return err
	}
	return nil
}

// Timeout returns the parsed request timeout.
func (c *Config) Timeout() (time.Duration, error) {
	if c.RequestTimeout == "" {
		return jupyter.DefaultTimeout, nil
	}

	d, err := time.ParseDuration(c.RequestTimeout)
	if err != nil {
		return 0, errors.Configuration("invalid request_timeout", err)
	}
	if d < 0 {
		return 0, errors.Configuration("request_timeout cannot be negative", nil)
	}
	return d, nil
}
