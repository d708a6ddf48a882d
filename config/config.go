package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

const DefaultAllowOrigins = "*"

// TomlFeed holds settings for how the feed is built
type TomlFeed struct {
	// Only items with one of these statuses are shown. Empty shows all.
	FilterStatuses []string `toml:"filter_statuses"`
}

// TomlServer holds HTTP server settings
type TomlServer struct {
	AllowOrigins string `toml:"allow_origins"`
}

// TomlConfig represents the top-level configuration
type TomlConfig struct {
	Feed   TomlFeed   `toml:"feed"`
	Server TomlServer `toml:"server"`
}

// Default returns the configuration used when no file is given
func Default() *TomlConfig {
	return &TomlConfig{
		Server: TomlServer{AllowOrigins: DefaultAllowOrigins},
	}
}

// LoadConfig reads a TOML file on top of the defaults. An empty path
// returns the defaults.
func LoadConfig(path string) (*TomlConfig, error) {
	config := Default()
	if path == "" {
		return config, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	if config.Server.AllowOrigins == "" {
		config.Server.AllowOrigins = DefaultAllowOrigins
	}

	return config, nil
}

// WithFilterStatuses returns a copy with the status filter replaced, used
// when the filter is given on the command line.
func (c TomlConfig) WithFilterStatuses(statuses []string) *TomlConfig {
	c.Feed.FilterStatuses = append([]string(nil), statuses...)
	return &c
}
