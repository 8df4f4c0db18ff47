// Package config loads the CLI configuration with koanf, layering
// defaults, an optional cosmogony.yaml file, COSMOGONY_* environment
// variables and explicitly set command-line flags.
package config

import (
	"fmt"
	"strings"
)

// Defaults.
const (
	DefaultOutput    = "cosmogony.json"
	DefaultLogFormat = "text"
)

// Config holds the resolved CLI configuration.
type Config struct {
	// Input is the OSM PBF extract to process.
	Input string `koanf:"input"`
	// Rules is the classification rule table; empty uses the embedded
	// default table.
	Rules string `koanf:"rules"`
	// CountryCode forces a single country instead of spatial inference.
	CountryCode string `koanf:"country_code"`
	// Geometry selects boundary-bearing mode.
	Geometry bool `koanf:"geometry"`
	// Output is the result file path ("-" for stdout).
	Output string `koanf:"output"`
	// Pretty indents the JSON output.
	Pretty bool `koanf:"pretty"`
	// Verbose enables debug logging.
	Verbose bool `koanf:"verbose"`
	// LogFormat is "text" or "json".
	LogFormat string `koanf:"log_format"`
}

// Validate checks values that would otherwise fail deep inside a run.
func (c *Config) Validate() error {
	if c.CountryCode != "" && len(c.CountryCode) != 2 {
		return fmt.Errorf("country code must be an ISO 3166-1 alpha-2 code, got %q", c.CountryCode)
	}
	c.CountryCode = strings.ToUpper(c.CountryCode)

	switch c.LogFormat {
	case "", "text", "json":
	default:
		return fmt.Errorf("log format must be text or json, got %q", c.LogFormat)
	}
	return nil
}
