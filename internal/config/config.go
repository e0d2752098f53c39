// Package config provides configuration management for modcheck using Viper.
package config

import (
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/thoreinstein/modcheck/internal/errors"
	"github.com/thoreinstein/modcheck/internal/logging"
	"github.com/thoreinstein/modcheck/internal/paths"
	"github.com/thoreinstein/modcheck/internal/report"
)

// EnvPrefix is the prefix for environment variable overrides (MODCHECK_PARALLEL, ...).
const EnvPrefix = "MODCHECK"

// Config represents the top-level configuration structure.
type Config struct {
	Version int `mapstructure:"version" yaml:"version"`
	// Formats are report specs in method[:target] form.
	Formats     []string `mapstructure:"formats" yaml:"formats"`
	Parallel    bool     `mapstructure:"parallel" yaml:"parallel"`
	AutoCorrect bool     `mapstructure:"auto_correct" yaml:"auto_correct"`
	// Color is auto, always or never.
	Color string `mapstructure:"color" yaml:"color,omitempty"`
	// Tools maps an external tool name to the executable to run.
	Tools map[string]string `mapstructure:"tools" yaml:"tools,omitempty"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Version: 1,
		Formats: []string{report.DefaultFormats()[0].String()},
		Color:   string(logging.ColorAuto),
	}
}

// Tool returns the configured executable for name, or name itself.
func (c *Config) Tool(name string) string {
	if exe := c.Tools[name]; exe != "" {
		return exe
	}
	return name
}

// Init initializes Viper with default configuration.
// moduleRoot may be empty when not inside a module; the project
// config directory is then skipped.
func Init(moduleRoot string) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	// Search paths (in order of precedence)
	if dir := paths.ProjectConfigDir(moduleRoot); dir != "" {
		viper.AddConfigPath(dir)
	}
	viper.AddConfigPath(paths.UserConfigDir())

	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	def := Default()
	viper.SetDefault("version", def.Version)
	viper.SetDefault("formats", def.Formats)
	viper.SetDefault("parallel", false)
	viper.SetDefault("auto_correct", false)
	viper.SetDefault("color", def.Color)
}

// Load reads the configuration file.
// If path is provided, it reads from that specific file.
// If path is empty, it searches the paths registered by Init and falls
// back to defaults when no file is found.
func Load(path string) (*Config, error) {
	if path != "" {
		viper.SetConfigFile(path)
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case errors.As(err, &notFound) && path == "":
		case errors.As(err, &notFound):
			return nil, errors.Wrapf(errors.ErrNotFound, "config file %s", path)
		case path != "" && isNotExist(err):
			return nil, errors.Wrapf(errors.ErrNotFound, "config file %s", path)
		default:
			return nil, errors.Wrapf(errors.ErrInvalidConfig, "reading config file: %v", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrapf(errors.ErrInvalidConfig, "unmarshaling config: %v", err)
	}

	if errs := Validate(&cfg); len(errs) > 0 {
		return &cfg, errors.Wrapf(errors.ErrInvalidConfig, "%s", joinErrors(errs))
	}
	return &cfg, nil
}

// Used returns the config file viper read, or "" when defaults are in use.
func Used() string {
	return viper.ConfigFileUsed()
}

func isNotExist(err error) bool {
	return errors.Is(err, os.ErrNotExist)
}

func joinErrors(errs []error) string {
	msgs := make([]string, len(errs))
	for i, err := range errs {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}
