package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config is the top-level application configuration.
type Config struct {
	// DBPath is the location of the SQLite database file.
	DBPath string `mapstructure:"db_path" yaml:"db_path"`

	// Project is the name of the active project.
	Project string `mapstructure:"project" yaml:"project"`

	// DefaultSort is the sort key applied when a listing does not ask
	// for one ("id", "priority", "due", "category", "status").
	DefaultSort string `mapstructure:"default_sort" yaml:"default_sort"`

	// DefaultSortDesc reverses the default sort direction.
	DefaultSortDesc bool `mapstructure:"default_sort_desc" yaml:"default_sort_desc"`

	// Theme selects the terminal color theme.
	Theme string `mapstructure:"theme" yaml:"theme"`
}

// DefaultConfigPath returns the default path for the configuration file,
// located at ~/.config/tasktrack/config.yaml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "config.yaml")
	}
	return filepath.Join(home, ".config", "tasktrack", "config.yaml")
}

// defaultDBPath returns the default database location next to the
// config file.
func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "tasktrack.db")
	}
	return filepath.Join(home, ".config", "tasktrack", "tasktrack.db")
}

// defaultConfig returns a sensible default configuration.
func defaultConfig() *Config {
	return &Config{
		DBPath:      defaultDBPath(),
		Project:     "default",
		DefaultSort: "id",
		Theme:       "default",
	}
}

// Load reads configuration from the given YAML file path using Viper.
// If the file does not exist, it returns a default configuration.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	// Set defaults so missing keys resolve to sensible values.
	v.SetDefault("db_path", defaultDBPath())
	v.SetDefault("project", "default")
	v.SetDefault("default_sort", "id")
	v.SetDefault("default_sort_desc", false)
	v.SetDefault("theme", "default")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(*os.PathError); ok {
			return defaultConfig(), nil
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return defaultConfig(), nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := defaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if cfg.Project == "" {
		cfg.Project = "default"
	}
	return cfg, nil
}

// Save writes the given configuration to a YAML file at path,
// creating parent directories if needed.
func Save(path string, cfg *Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("db_path", cfg.DBPath)
	v.Set("project", cfg.Project)
	v.Set("default_sort", cfg.DefaultSort)
	v.Set("default_sort_desc", cfg.DefaultSortDesc)
	v.Set("theme", cfg.Theme)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}
