package config

import (
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config is the full process configuration, loaded from a yaml file with
// environment variable overrides.
type Config struct {
	Env string `yaml:"env" env:"APP_ENV" env-default:"development"`

	HTTP struct {
		Addr            string `yaml:"addr" env:"HTTP_ADDR" env-default:":3000"`
		ReadTimeout     int    `yaml:"read_timeout" env:"HTTP_READ_TIMEOUT" env-default:"15"`
		WriteTimeout    int    `yaml:"write_timeout" env:"HTTP_WRITE_TIMEOUT" env-default:"15"`
		ShutdownTimeout int    `yaml:"shutdown_timeout" env:"HTTP_SHUTDOWN_TIMEOUT" env-default:"10"`
	} `yaml:"http"`

	StoragePath string `yaml:"storage_path" env:"STORAGE_PATH" env-default:"timeclock.db"`

	// Timezone is the single process-wide zone used for all calendar-day
	// reasoning. There is no per-user timezone.
	Timezone string `yaml:"timezone" env:"APP_TIMEZONE" env-default:"America/Sao_Paulo"`

	Log struct {
		Level  string `yaml:"level" env:"LOG_LEVEL" env-default:"info"`
		Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
	} `yaml:"log"`
}

// LoadConfig reads configuration from path, falling back to environment
// variables only when the file does not exist.
func LoadConfig(path string) (*Config, error) {
	var cfg Config

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("failed to read config from env: %w", err)
		}
		return &cfg, nil
	}

	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	return &cfg, nil
}

// Location resolves the configured timezone.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}
