package app

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config describes the window the app opens.
type Config struct {
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Fullscreen bool   `yaml:"fullscreen"`
	Title      string `yaml:"title"`
	Icon       string `yaml:"icon,omitempty"`
}

func DefaultConfig() Config {
	return Config{
		Width:  1920,
		Height: 1080,
		Title:  "Glasskit App",
	}
}

// LoadConfig reads a YAML config file. Missing fields keep their zero value,
// so callers usually start from DefaultConfig and overlay the file on top.
func LoadConfig(name string) (Config, error) {
	cfg := DefaultConfig()

	raw, err := os.ReadFile(name)
	if err != nil {
		return cfg, errors.Wrapf(err, "unable to read config %s", name)
	}

	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "unable to parse config %s", name)
	}

	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return errors.Wrapf(ErrInvalidConfig, "%dx%d", c.Width, c.Height)
	}

	return nil
}
