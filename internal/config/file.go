package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/adrg/xdg"

	"github.com/lgbarn/chesswrapper-go/internal/errors"
)

// FileName is the config file path relative to the XDG config directories.
const FileName = "chesswrapper/config.json"

// Load returns the default configuration overlaid with a JSON config file.
// An empty path searches the XDG config directories for FileName, and
// finding nothing there is not an error. Output streams keep their
// defaults.
func Load(path string) (*Config, error) {
	cfg := NewConfig()
	if path == "" {
		found, err := xdg.SearchConfigFile(FileName)
		if err != nil {
			return cfg, cfg.Validate()
		}
		path = found
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading config %s", path)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config %s: %v: %w", path, err, errors.ErrFormat)
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrapf(err, "config %s", path)
	}
	return cfg, nil
}

// Save writes the configuration to FileName under the XDG config home,
// creating directories as needed, and returns the path written.
func (c *Config) Save() (string, error) {
	path, err := xdg.ConfigFile(FileName)
	if err != nil {
		return "", errors.Wrap(err, "locating config file")
	}
	return path, c.SaveTo(path)
}

// SaveTo writes the configuration as indented JSON to path.
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encoding config")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrapf(err, "writing config %s", path)
	}
	return nil
}
