// Package config provides configuration management for reclaim with Viper
// integration. Settings live in a TOML file under the user's config
// directory; a missing file means defaults, a malformed file is a fatal
// startup error.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/spf13/viper"

	"github.com/reclaim-cli/reclaim/internal/filesystem"
)

// File permission constants
const (
	dirPerm  = 0755
	filePerm = 0644
)

// Config represents the persisted configuration for reclaim.
type Config struct {
	DefaultExclude       []string `mapstructure:"default_exclude" toml:"default_exclude"`
	FlutterCleanArgs     []string `mapstructure:"flutter_clean_args" toml:"flutter_clean_args"`
	CargoCleanArgs       []string `mapstructure:"cargo_clean_args" toml:"cargo_clean_args"`
	MaxParallelJobs      int      `mapstructure:"max_parallel_jobs" toml:"max_parallel_jobs"`
	InteractiveByDefault bool     `mapstructure:"interactive_by_default" toml:"interactive_by_default"`
	ShowProgress         bool     `mapstructure:"show_progress" toml:"show_progress"`
	ConfirmBeforeClean   bool     `mapstructure:"confirm_before_clean" toml:"confirm_before_clean"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		DefaultExclude:     []string{"node_modules", ".git", "target", "build"},
		FlutterCleanArgs:   []string{"clean"},
		CargoCleanArgs:     []string{"clean"},
		MaxParallelJobs:    0,
		ShowProgress:       true,
		ConfirmBeforeClean: true,
	}
}

// DefaultPath returns the canonical config file location.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot find home directory: %w", err)
	}
	return filepath.Join(home, ".config", "reclaim", "config.toml"), nil
}

// Load reads the config file at path, or the default location when path is
// empty. A missing file yields Default(); a file that cannot be parsed is an
// error.
func Load(path string) (Config, error) {
	if path == "" {
		defaultPath, err := DefaultPath()
		if err != nil {
			return Config{}, err
		}
		path = defaultPath
	}

	if _, err := os.Stat(path); err != nil {
		return Default(), nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	defaults := Default()
	v.SetDefault("default_exclude", defaults.DefaultExclude)
	v.SetDefault("flutter_clean_args", defaults.FlutterCleanArgs)
	v.SetDefault("cargo_clean_args", defaults.CargoCleanArgs)
	v.SetDefault("max_parallel_jobs", defaults.MaxParallelJobs)
	v.SetDefault("interactive_by_default", defaults.InteractiveByDefault)
	v.SetDefault("show_progress", defaults.ShowProgress)
	v.SetDefault("confirm_before_clean", defaults.ConfirmBeforeClean)
}

// Save writes the config as TOML to path, or the default location when path
// is empty, creating parent directories as needed.
func (c Config) Save(fs filesystem.FileSystem, path string) error {
	if path == "" {
		defaultPath, err := DefaultPath()
		if err != nil {
			return err
		}
		path = defaultPath
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := fs.MkdirAll(filepath.Dir(path), dirPerm); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := fs.WriteFile(path, data, filePerm); err != nil {
		return fmt.Errorf("failed to write config %s: %w", path, err)
	}

	return nil
}
