// Package config loads framework configuration from files and environment
// variables, and parses declarative command manifests.
package config

import (
	"errors"
	"io/fs"
	"os"
	"slices"

	"github.com/spf13/viper"
)

// DatasetConfig is the configuration for a SQL-backed dataset.
//
// WARNING: The DSN may contain credentials and should not be logged.
type DatasetConfig struct {
	Driver          string `mapstructure:"driver" yaml:"driver"`                     // Database driver name (e.g. postgres)
	DSN             string `mapstructure:"dsn" yaml:"dsn"`                           // Secret: data source name / connection string
	Table           string `mapstructure:"table" yaml:"table"`                       // Default relation table
	ConnectAttempts uint   `mapstructure:"connect_attempts" yaml:"connect_attempts"` // Ping attempts before giving up
}

// LoggingConfig is the configuration for the framework logger.
type LoggingConfig struct {
	Level string `mapstructure:"level" yaml:"level"` // zap level name (debug, info, ...)
}

// Config wraps the entire framework configuration.
type Config struct {
	Dataset DatasetConfig `mapstructure:"dataset" yaml:"dataset"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
}

// Load loads the config from the file path, falling back to env vars if the
// file does not exist. If the file exists, any env vars that are set will
// override the values loaded from the file.
func Load(filePath string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(filePath)

	// Bind environment variables
	if err := bindEnvs(v); err != nil {
		return nil, err
	}

	// If the config file exists, we continue to read it, otherwise we
	// fall back to using environment variables
	if _, err := os.Stat(filePath); !errors.Is(err, fs.ErrNotExist) {
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}

	cfg := &Config{}
	err := v.Unmarshal(cfg)

	return cfg, err
}

// LoadEnv loads the config from the environment variables.
func LoadEnv() (*Config, error) {
	v := viper.New()

	if err := bindEnvs(v); err != nil {
		return nil, err
	}

	cfg := &Config{}
	err := v.Unmarshal(cfg)

	return cfg, err
}

// LoadFile loads the config from a file.
func LoadFile(filePath string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(filePath)

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	cfg := &Config{}
	err := v.Unmarshal(cfg)

	return cfg, err
}

// envBindings defines how environment variables map to configuration keys
// used by Viper. Each entry maps a config key (as used in the struct, e.g.
// "dataset.dsn") to a list of environment variable names that can provide
// its value. When loading, Viper checks each listed environment variable in
// order and uses the first one that is set.
var envBindings = map[string][]string{
	"dataset.driver":           {"DATASET_DRIVER"},
	"dataset.dsn":              {"DATASET_DSN"},
	"dataset.table":            {"DATASET_TABLE"},
	"dataset.connect_attempts": {"DATASET_CONNECT_ATTEMPTS"},
	"logging.level":            {"LOGGING_LEVEL", "LOG_LEVEL"},
}

// bindEnvs binds the environment variables to the viper instance.
func bindEnvs(v *viper.Viper) error {
	for key, envs := range envBindings {
		// Prepend the env key to the start of the arguments
		inputs := slices.Insert(envs, 0, key)

		if err := v.BindEnv(inputs...); err != nil {
			return err
		}
	}

	return nil
}
