// Package config loads the application settings and the user's mapping
// definition files.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Settings are the TOML-backed application settings.
type Settings struct {
	// MapTimeoutMS is the disambiguation window for ambiguous key
	// prefixes, in milliseconds.
	MapTimeoutMS int `toml:"map-timeout"`

	// DefaultMode is the mode entered at startup.
	DefaultMode string `toml:"default-mode"`

	// MapFiles are mapping definition files applied at startup and
	// re-applied when they change.
	MapFiles []string `toml:"map-files"`

	// Script is an optional Lua script run at startup to define mappings.
	Script string `toml:"script"`
}

// Default returns the settings used when no config file exists.
func Default() *Settings {
	return &Settings{
		MapTimeoutMS: 1000,
		DefaultMode:  "normal",
	}
}

// MapTimeout returns the disambiguation window as a duration.
func (s *Settings) MapTimeout() time.Duration {
	if s.MapTimeoutMS <= 0 {
		return time.Second
	}
	return time.Duration(s.MapTimeoutMS) * time.Millisecond
}

// Load reads settings from a TOML file. A missing file is not an error:
// defaults are returned.
func Load(path string) (*Settings, error) {
	settings := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return settings, nil
		}
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, settings); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return settings, nil
}
