// Package config loads shadowforensic settings from shadowforensic.yaml, a
// .env file and SHADOWFORENSIC_* environment variables.
//
// Precedence, highest first: command-line flags (applied by the CLI),
// environment, configuration file, built-in defaults.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/vvka-141/shadowforensic/pkg/shadowforensic"
)

// ErrConfigNotFound is returned when the config file does not exist.
// Callers can check for this with errors.Is(err, config.ErrConfigNotFound).
var ErrConfigNotFound = errors.New("config file not found")

// ConfigFileName is looked up in the working directory when --config is not given.
const ConfigFileName = "shadowforensic.yaml"

// EnvPrefix prefixes every environment variable read by ApplyEnv.
const EnvPrefix = "SHADOWFORENSIC_"

// RecoverConfig holds defaults for the recover command.
type RecoverConfig struct {
	OutputDir        string   `yaml:"output_dir,omitempty"`
	Filters          []string `yaml:"filters,omitempty"`
	MinSize          int64    `yaml:"min_size,omitempty"`
	MaxSize          int64    `yaml:"max_size,omitempty"`
	PreserveMetadata *bool    `yaml:"preserve_metadata,omitempty"`
	Workers          int      `yaml:"workers,omitempty"`
	Stream           bool     `yaml:"stream,omitempty"`
	MetricsFile      string   `yaml:"metrics_file,omitempty"`
}

// Config is the full settings file.
type Config struct {
	Backend   string        `yaml:"backend,omitempty"`
	LogFormat string        `yaml:"log_format,omitempty"`
	Verbose   bool          `yaml:"verbose,omitempty"`
	Recover   RecoverConfig `yaml:"recover,omitempty"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Backend:   "auto",
		LogFormat: "text",
		Recover: RecoverConfig{
			OutputDir: shadowforensic.DefaultOutputDir,
			Filters:   []string{shadowforensic.DefaultFilter},
		},
	}
}

// Load reads the YAML file at path on top of the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w: %w", path, shadowforensic.ErrInvalidConfig, err)
	}
	return cfg, nil
}

// Resolve builds the effective configuration. path is the value of --config;
// when empty, ConfigFileName in the working directory is used if present.
// A .env file in the working directory is loaded into the process
// environment first; variables already set are not overridden.
func Resolve(path string) (*Config, error) {
	_ = godotenv.Load()

	explicit := path != ""
	if !explicit {
		path = ConfigFileName
	}

	cfg, err := Load(path)
	switch {
	case err == nil:
	case errors.Is(err, ErrConfigNotFound) && !explicit:
		cfg = Default()
	default:
		return nil, err
	}

	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overrides settings with SHADOWFORENSIC_* variables found by lookup.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	get := func(name string) (string, bool) {
		v, ok := lookup(EnvPrefix + name)
		return strings.TrimSpace(v), ok && strings.TrimSpace(v) != ""
	}

	if v, ok := get("BACKEND"); ok {
		c.Backend = v
	}
	if v, ok := get("LOG_FORMAT"); ok {
		c.LogFormat = v
	}
	if v, ok := get("OUTPUT_DIR"); ok {
		c.Recover.OutputDir = v
	}
	if v, ok := get("FILTERS"); ok {
		c.Recover.Filters = splitList(v)
	}
	if v, ok := get("METRICS_FILE"); ok {
		c.Recover.MetricsFile = v
	}

	var err error
	if v, ok := get("VERBOSE"); ok {
		if c.Verbose, err = parseBool("VERBOSE", v); err != nil {
			return err
		}
	}
	if v, ok := get("STREAM"); ok {
		if c.Recover.Stream, err = parseBool("STREAM", v); err != nil {
			return err
		}
	}
	if v, ok := get("PRESERVE_METADATA"); ok {
		b, err := parseBool("PRESERVE_METADATA", v)
		if err != nil {
			return err
		}
		c.Recover.PreserveMetadata = &b
	}
	if v, ok := get("MIN_SIZE"); ok {
		if c.Recover.MinSize, err = parseInt("MIN_SIZE", v); err != nil {
			return err
		}
	}
	if v, ok := get("MAX_SIZE"); ok {
		if c.Recover.MaxSize, err = parseInt("MAX_SIZE", v); err != nil {
			return err
		}
	}
	if v, ok := get("WORKERS"); ok {
		n, err := parseInt("WORKERS", v)
		if err != nil {
			return err
		}
		c.Recover.Workers = int(n)
	}
	return nil
}

// RecoveryOptions converts the recover settings into engine options.
func (c *Config) RecoveryOptions() shadowforensic.RecoveryOptions {
	opts := shadowforensic.DefaultRecoveryOptions()
	if len(c.Recover.Filters) > 0 {
		opts.Filters = append([]string(nil), c.Recover.Filters...)
	}
	opts.MinSize = c.Recover.MinSize
	opts.MaxSize = c.Recover.MaxSize
	if c.Recover.PreserveMetadata != nil {
		opts.PreserveMetadata = *c.Recover.PreserveMetadata
	}
	opts.Workers = c.Recover.Workers
	opts.Stream = c.Recover.Stream
	return opts
}

// Save writes c as YAML to path.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func parseBool(name, v string) (bool, error) {
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s%s=%q: %w", EnvPrefix, name, v, shadowforensic.ErrInvalidConfig)
	}
	return b, nil
}

func parseInt(name, v string) (int64, error) {
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%s%s=%q: %w", EnvPrefix, name, v, shadowforensic.ErrInvalidConfig)
	}
	return n, nil
}
