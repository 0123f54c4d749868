package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"sidekick/internal/constants"
	"sidekick/internal/utils"
)

// BackendConfig points at the REST backend that owns habits, routines and
// todos.
type BackendConfig struct {
	// URL is the root URL of the backend API.
	URL string `mapstructure:"url" yaml:"url"`

	// PollIntervalSec is how often (in seconds) to refetch the collections.
	PollIntervalSec int `mapstructure:"poll_interval_sec" yaml:"poll_interval_sec"`
}

// LocationConfig fixes the user's position and timezone. Latitude and
// longitude feed the weather checks; unset coordinates disable them.
type LocationConfig struct {
	Latitude  *float64 `mapstructure:"latitude" yaml:"latitude"`
	Longitude *float64 `mapstructure:"longitude" yaml:"longitude"`
	Timezone  string   `mapstructure:"timezone" yaml:"timezone"`
}

// WeatherConfig selects the weather provider endpoint and cache lifetime.
type WeatherConfig struct {
	ProviderURL string `mapstructure:"provider_url" yaml:"provider_url"`
	CacheTTLMin int    `mapstructure:"cache_ttl_min" yaml:"cache_ttl_min"`
}

// ReminderConfig tunes the check cadence and notification behavior.
type ReminderConfig struct {
	CheckIntervalSec int    `mapstructure:"check_interval_sec" yaml:"check_interval_sec"`
	DismissAfterMs   int    `mapstructure:"dismiss_after_ms" yaml:"dismiss_after_ms"`
	SummaryTime      string `mapstructure:"summary_time" yaml:"summary_time"`
	DesktopForward   bool   `mapstructure:"desktop_forward" yaml:"desktop_forward"`
}

// StorageConfig selects the notification history backend. Driver is
// "sqlite" or "postgres"; the postgres connection string lives in the
// system keyring, not here.
type StorageConfig struct {
	Driver string `mapstructure:"driver" yaml:"driver"`
	Path   string `mapstructure:"path" yaml:"path"`
}

// Config is the top-level application configuration.
type Config struct {
	Backend  BackendConfig  `mapstructure:"backend" yaml:"backend"`
	Location LocationConfig `mapstructure:"location" yaml:"location"`
	Weather  WeatherConfig  `mapstructure:"weather" yaml:"weather"`
	Reminder ReminderConfig `mapstructure:"reminder" yaml:"reminder"`
	Storage  StorageConfig  `mapstructure:"storage" yaml:"storage"`
	Debug    bool           `mapstructure:"debug" yaml:"debug"`
}

// DefaultConfigPath returns the default path for the configuration file,
// located at ~/.config/sidekick/config.yaml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "config.yaml")
	}
	return filepath.Join(home, ".config", constants.AppName, "config.yaml")
}

// DefaultStoragePath returns the default sqlite history location next to the
// config file.
func DefaultStoragePath() string {
	return filepath.Join(filepath.Dir(DefaultConfigPath()), "history.db")
}

func defaultConfig() *Config {
	return &Config{
		Backend: BackendConfig{
			PollIntervalSec: constants.DefaultBackendPollSec,
		},
		Weather: WeatherConfig{
			ProviderURL: constants.DefaultWeatherProviderURL,
			CacheTTLMin: int(constants.DefaultWeatherCacheTTL / time.Minute),
		},
		Reminder: ReminderConfig{
			CheckIntervalSec: int(constants.DefaultCheckInterval / time.Second),
			DismissAfterMs:   constants.NotificationDurationMs,
			SummaryTime:      constants.DefaultSummaryTime,
		},
		Storage: StorageConfig{
			Driver: "sqlite",
			Path:   DefaultStoragePath(),
		},
	}
}

// Load reads configuration from the given YAML file path using Viper.
// If the file does not exist, it returns a default configuration.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	// Set defaults so missing keys resolve to sensible values.
	v.SetDefault("backend.poll_interval_sec", constants.DefaultBackendPollSec)
	v.SetDefault("weather.provider_url", constants.DefaultWeatherProviderURL)
	v.SetDefault("weather.cache_ttl_min", int(constants.DefaultWeatherCacheTTL/time.Minute))
	v.SetDefault("reminder.check_interval_sec", int(constants.DefaultCheckInterval/time.Second))
	v.SetDefault("reminder.dismiss_after_ms", constants.NotificationDurationMs)
	v.SetDefault("reminder.summary_time", constants.DefaultSummaryTime)
	v.SetDefault("storage.driver", "sqlite")
	v.SetDefault("storage.path", DefaultStoragePath())

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(*os.PathError); ok {
			return defaultConfig(), nil
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return defaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	cfg := defaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return cfg, nil
}

// Save writes the given configuration to a YAML file at path, creating
// parent directories if needed.
func Save(path string, cfg *Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("failed to create config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("backend", cfg.Backend)
	v.Set("location", cfg.Location)
	v.Set("weather", cfg.Weather)
	v.Set("reminder", cfg.Reminder)
	v.Set("storage", cfg.Storage)
	v.Set("debug", cfg.Debug)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("failed to write config to %s: %w", path, err)
	}

	return nil
}

func (c *Config) validate() error {
	if (c.Location.Latitude == nil) != (c.Location.Longitude == nil) {
		return fmt.Errorf("location requires both latitude and longitude")
	}
	if c.Location.Latitude != nil {
		if *c.Location.Latitude < -90 || *c.Location.Latitude > 90 {
			return fmt.Errorf("latitude %v out of range", *c.Location.Latitude)
		}
		if *c.Location.Longitude < -180 || *c.Location.Longitude > 180 {
			return fmt.Errorf("longitude %v out of range", *c.Location.Longitude)
		}
	}
	if !utils.ValidateTimezone(c.Location.Timezone) {
		return fmt.Errorf("unknown timezone %q", c.Location.Timezone)
	}
	switch c.Storage.Driver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}
	if c.Reminder.SummaryTime != "" {
		if _, err := time.Parse(constants.TimeFormat, c.Reminder.SummaryTime); err != nil {
			return fmt.Errorf("invalid summary_time %q: %w", c.Reminder.SummaryTime, err)
		}
	}
	return nil
}

// TimezoneLocation resolves the configured timezone, falling back to the
// system local zone when unset or unknown.
func (c *Config) TimezoneLocation() *time.Location {
	loc, err := utils.LoadLocation(c.Location.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// PollInterval returns the backend poll cadence as a duration.
func (c *Config) PollInterval() time.Duration {
	if c.Backend.PollIntervalSec <= 0 {
		return time.Duration(constants.DefaultBackendPollSec) * time.Second
	}
	return time.Duration(c.Backend.PollIntervalSec) * time.Second
}

// CheckInterval returns the reminder check cadence as a duration.
func (c *Config) CheckInterval() time.Duration {
	if c.Reminder.CheckIntervalSec <= 0 {
		return constants.DefaultCheckInterval
	}
	return time.Duration(c.Reminder.CheckIntervalSec) * time.Second
}

// DismissAfter returns how long auto-dismiss notifications stay up.
func (c *Config) DismissAfter() time.Duration {
	if c.Reminder.DismissAfterMs <= 0 {
		return constants.DefaultDismissAfter
	}
	return time.Duration(c.Reminder.DismissAfterMs) * time.Millisecond
}

// WeatherTTL returns the weather cache lifetime.
func (c *Config) WeatherTTL() time.Duration {
	if c.Weather.CacheTTLMin <= 0 {
		return constants.DefaultWeatherCacheTTL
	}
	return time.Duration(c.Weather.CacheTTLMin) * time.Minute
}
