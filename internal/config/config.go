// Package config provides configuration and path management.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/spf13/viper"
)

const (
	// AppName is the application name.
	AppName = "ccconv"

	// ConfigFileName is the config file name without extension.
	ConfigFileName = "config"

	// ConfigFileType is the config file format.
	ConfigFileType = "yaml"

	// EnvPrefix prefixes environment overrides, e.g. CCCONV_DATA_DIR.
	EnvPrefix = "CCCONV"

	// DefaultResource is the country table file name.
	DefaultResource = "country-codes.txt"

	// DefaultFormat is the default output format.
	DefaultFormat = "text"

	// DefaultLogLevel is the default log level.
	DefaultLogLevel = "warning"

	// DefaultConcurrency is the default batch lookup concurrency.
	DefaultConcurrency = 4

	// MaxConcurrency is the maximum batch lookup concurrency.
	MaxConcurrency = 64
)

// Viper keys.
const (
	KeyDataDir     = "data_dir"
	KeyResource    = "resource"
	KeyFormat      = "format"
	KeyLogLevel    = "log.level"
	KeyLogFile     = "log.file"
	KeyConcurrency = "concurrency"
)

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

// Config holds runtime configuration.
type Config struct {
	DataDir     string    `mapstructure:"data_dir"`
	Resource    string    `mapstructure:"resource"`
	Format      string    `mapstructure:"format"`
	Concurrency int       `mapstructure:"concurrency"`
	Log         LogConfig `mapstructure:"log"`

	// ConfigFile is the file the settings were read from, if any.
	ConfigFile string `mapstructure:"-"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		DataDir:     DefaultDataDir(),
		Resource:    DefaultResource,
		Format:      DefaultFormat,
		Concurrency: DefaultConcurrency,
		Log: LogConfig{
			Level: DefaultLogLevel,
		},
	}
}

// DefaultDataDir returns the directory searched for table overrides.
func DefaultDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// DefaultConfigDir returns the directory searched for config.yaml.
func DefaultConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// SetDefaults registers DefaultConfig values on v.
func SetDefaults(v *viper.Viper) {
	d := DefaultConfig()
	v.SetDefault(KeyDataDir, d.DataDir)
	v.SetDefault(KeyResource, d.Resource)
	v.SetDefault(KeyFormat, d.Format)
	v.SetDefault(KeyConcurrency, d.Concurrency)
	v.SetDefault(KeyLogLevel, d.Log.Level)
	v.SetDefault(KeyLogFile, d.Log.File)
}

// Load reads configuration into a Config. When configFile is empty the
// default locations are searched and a missing file is not an error.
// Environment variables prefixed with EnvPrefix override file values.
func Load(v *viper.Viper, configFile string) (*Config, error) {
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(ConfigFileName)
		v.SetConfigType(ConfigFileType)
		v.AddConfigPath(DefaultConfigDir())
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.ConfigFile = v.ConfigFileUsed()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks and normalizes the configuration.
func (c *Config) Validate() error {
	c.Format = strings.ToLower(strings.TrimSpace(c.Format))
	switch c.Format {
	case "text", "json", "yaml":
	default:
		return fmt.Errorf("invalid format %q (use text, json, or yaml)", c.Format)
	}

	if strings.TrimSpace(c.Resource) == "" {
		return fmt.Errorf("resource must not be empty")
	}

	if c.Concurrency < 1 {
		c.Concurrency = 1
	}
	if c.Concurrency > MaxConcurrency {
		c.Concurrency = MaxConcurrency
	}
	return nil
}

// EnsureDir creates a directory if it doesn't exist.
func EnsureDir(dir string) error {
	return os.MkdirAll(dir, 0755)
}
