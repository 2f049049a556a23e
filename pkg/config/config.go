package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"gopkg.in/yaml.v3"
)

const (
	xdgAppName = "tickctx"
	configFile = "config.yaml"

	DefaultTimezone = "Asia/Kolkata"
)

// Config is read from the config file, then overridden by the environment.
// The access token only comes from the environment; see auth.ResolveToken for
// the token file.
type Config struct {
	Token            string        `yaml:"-" env:"TICKTICK_TOKEN"`
	BaseURL          string        `yaml:"base_url" env:"TICKTICK_BASE_URL" env-default:"https://api.ticktick.com/open/v1"`
	Timezone         string        `yaml:"timezone" env:"TIMEZONE" env-default:"Asia/Kolkata"`
	FetchConcurrency int           `yaml:"fetch_concurrency" env:"TICKTICK_FETCH_CONCURRENCY" env-default:"8"`
	HTTPTimeout      time.Duration `yaml:"http_timeout" env:"TICKTICK_HTTP_TIMEOUT" env-default:"30s"`
}

func GetConfigPath() (string, error) {
	xdgHome, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(xdgHome, ".config", xdgAppName, configFile), nil
}

// Load reads the config at path, or at GetConfigPath when path is empty. A
// missing file is not an error: the environment and defaults are used alone.
func Load(path string) (*Config, error) {
	if path == "" {
		p, err := GetConfigPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	var cfg Config
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		var pe *os.PathError
		if !errors.As(err, &pe) {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("failed to read environment: %w", err)
		}
	}

	if _, err := cfg.Location(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Location resolves the configured IANA timezone.
func (c *Config) Location() (*time.Location, error) {
	name := c.Timezone
	if name == "" {
		name = DefaultTimezone
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", name, err)
	}
	return loc, nil
}

// Save writes cfg to path, or to GetConfigPath when path is empty.
func Save(cfg *Config, path string) error {
	if path == "" {
		p, err := GetConfigPath()
		if err != nil {
			return err
		}
		path = p
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to open config file for writing: %w", err)
	}
	defer f.Close()

	encoder := yaml.NewEncoder(f)
	encoder.SetIndent(2)
	if err := encoder.Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return encoder.Close()
}
