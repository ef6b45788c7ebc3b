// Package config loads goodbuddi settings from YAML, a .env file and
// GOODBUDDI_* environment variables, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"
)

const appDirName = "goodbuddi"

type Config struct {
	User    UserConfig    `yaml:"user"`
	Storage StorageConfig `yaml:"storage"`
	Log     LogConfig     `yaml:"log"`
	Notify  NotifyConfig  `yaml:"notify"`
	Alerts  AlertsConfig  `yaml:"alerts"`
	Daily   DailyConfig   `yaml:"daily"`
	Timer   TimerConfig   `yaml:"timer"`
}

type UserConfig struct {
	Name string `yaml:"name"`
}

type StorageConfig struct {
	DBPath string `yaml:"db_path"`
}

func (c *StorageConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.DBPath, validation.Required),
	)
}

type LogConfig struct {
	File  string `yaml:"file"`
	Debug bool   `yaml:"debug"`
}

type NotifyConfig struct {
	Desktop bool `yaml:"desktop"`
	Bell    bool `yaml:"bell"`
}

type AlertsConfig struct {
	Buffer      int `yaml:"buffer"`
	LeadMinutes int `yaml:"lead_minutes"`
}

func (c *AlertsConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Buffer, validation.Required, validation.Min(1)),
		validation.Field(&c.LeadMinutes, validation.Min(0), validation.Max(24*60)),
	)
}

// DailyConfig controls the day rollover job. RolloverCron is a standard
// five-field cron spec.
type DailyConfig struct {
	RolloverCron string `yaml:"rollover_cron"`
}

func (c *DailyConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.RolloverCron, validation.Required, validation.By(validCron)),
	)
}

type TimerConfig struct {
	DefaultMinutes int `yaml:"default_minutes"`
}

func (c *TimerConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.DefaultMinutes, validation.Min(0), validation.Max(24*60)),
	)
}

func (c *Config) Validate() error {
	if err := c.Storage.Validate(); err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	if err := c.Alerts.Validate(); err != nil {
		return fmt.Errorf("alerts: %w", err)
	}
	if err := c.Daily.Validate(); err != nil {
		return fmt.Errorf("daily: %w", err)
	}
	if err := c.Timer.Validate(); err != nil {
		return fmt.Errorf("timer: %w", err)
	}
	return nil
}

func validCron(value any) error {
	spec, _ := value.(string)
	if _, err := cron.ParseStandard(spec); err != nil {
		return fmt.Errorf("invalid cron spec %q: %w", spec, err)
	}
	return nil
}

// Dir is the per-user directory holding the database, log and config file.
func Dir() string {
	base, err := os.UserConfigDir()
	if err != nil || base == "" {
		return "."
	}
	return filepath.Join(base, appDirName)
}

func DefaultPath() string {
	return filepath.Join(Dir(), "config.yaml")
}

func Default() *Config {
	dir := Dir()
	return &Config{
		User:    UserConfig{Name: "friend"},
		Storage: StorageConfig{DBPath: filepath.Join(dir, "goodbuddi.db")},
		Log:     LogConfig{File: filepath.Join(dir, "goodbuddi.log")},
		Notify:  NotifyConfig{Bell: true},
		Alerts:  AlertsConfig{Buffer: 64, LeadMinutes: 5},
		Daily:   DailyConfig{RolloverCron: "0 0 * * *"},
		Timer:   TimerConfig{DefaultMinutes: 0},
	}
}

// Load builds the effective config. A missing YAML file is not an error;
// defaults apply. envFile is loaded with godotenv when present and never
// overrides variables already set in the process environment.
func Load(path, envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("load env file %s: %w", envFile, err)
		}
	}

	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("read config file %s: %w", path, err)
		default:
			if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), cfg); err != nil {
				return nil, fmt.Errorf("parse config file %s: %w", path, err)
			}
		}
	}

	cfg = FromEnv(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// WriteDefault creates a starter config file at path unless one exists.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(Default())
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}
