package model

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// BackendConfig holds the connection settings for the hosted data service.
type BackendConfig struct {
	// BaseURL is the root URL of the rows API
	// (e.g. https://fleet.example.supabase.co).
	BaseURL string `mapstructure:"base_url" yaml:"base_url"`

	// KeyName is the keyring entry holding the service key.
	// The DISPATCH_API_KEY environment variable takes precedence.
	KeyName string `mapstructure:"key_name" yaml:"key_name"`

	// TimeoutSec bounds each remote request.
	TimeoutSec int `mapstructure:"timeout_sec" yaml:"timeout_sec"`
}

// DisplayConfig holds UI/rendering preferences.
type DisplayConfig struct {
	Theme           string `mapstructure:"theme" yaml:"theme"`
	PollIntervalSec int    `mapstructure:"poll_interval_sec" yaml:"poll_interval_sec"`
	ActivityLimit   int    `mapstructure:"activity_limit" yaml:"activity_limit"`
}

// AppConfig is the top-level application configuration.
type AppConfig struct {
	Backend   BackendConfig `mapstructure:"backend" yaml:"backend"`
	Display   DisplayConfig `mapstructure:"display" yaml:"display"`
	CachePath string        `mapstructure:"cache_path" yaml:"cache_path"`
	LogPath   string        `mapstructure:"log_path" yaml:"log_path"`
}

// DefaultConfigPath returns the default path for the configuration file,
// located at ~/.config/dispatch/config.yaml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "config.yaml")
	}
	return filepath.Join(home, ".config", "dispatch", "config.yaml")
}

// defaultAppConfig returns a sensible default configuration.
func defaultAppConfig() *AppConfig {
	home, _ := os.UserHomeDir()
	return &AppConfig{
		Backend: BackendConfig{
			KeyName:    "backend-api-key",
			TimeoutSec: 30,
		},
		Display: DisplayConfig{
			Theme:           "default",
			PollIntervalSec: 60,
			ActivityLimit:   10,
		},
		CachePath: filepath.Join(home, ".local", "share", "dispatch", "cache.db"),
		LogPath:   filepath.Join(home, ".local", "state", "dispatch", "dispatch.log"),
	}
}

// LoadConfig reads configuration from the given YAML file path using Viper.
// If the file does not exist, it returns a default configuration.
func LoadConfig(path string) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	def := defaultAppConfig()
	v.SetDefault("backend.key_name", def.Backend.KeyName)
	v.SetDefault("backend.timeout_sec", def.Backend.TimeoutSec)
	v.SetDefault("display.theme", def.Display.Theme)
	v.SetDefault("display.poll_interval_sec", def.Display.PollIntervalSec)
	v.SetDefault("display.activity_limit", def.Display.ActivityLimit)
	v.SetDefault("cache_path", def.CachePath)
	v.SetDefault("log_path", def.LogPath)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(*os.PathError); ok {
			return def, nil
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return def, nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := defaultAppConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	return cfg, nil
}

// SaveConfig writes the given configuration to a YAML file at path,
// creating parent directories if needed.
func SaveConfig(path string, cfg *AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("backend", cfg.Backend)
	v.Set("display", cfg.Display)
	v.Set("cache_path", cfg.CachePath)
	v.Set("log_path", cfg.LogPath)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}
