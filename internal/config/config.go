// Package config loads the cautiond YAML configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the full cautiond configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Storage StorageConfig `yaml:"storage"`
	Catalog CatalogConfig `yaml:"catalog"`
	API     APIConfig     `yaml:"api"`
}

// ServerConfig configures the HTTP surface.
type ServerConfig struct {
	Host            string `yaml:"host"`
	Port            int    `yaml:"port"`
	ReadTimeoutSec  int    `yaml:"read_timeout_sec"`
	WriteTimeoutSec int    `yaml:"write_timeout_sec"`
	IdleTimeoutSec  int    `yaml:"idle_timeout_sec"`
}

// StorageConfig configures session persistence.
type StorageConfig struct {
	// SessionFile is the path of the single JSON session blob. Empty means
	// the default under the user home directory.
	SessionFile string `yaml:"session_file"`
}

// CatalogConfig points at the persona and caution catalog files.
type CatalogConfig struct {
	PersonasFile string `yaml:"personas_file"`
	CautionsFile string `yaml:"cautions_file"`
}

// APIConfig tunes query layer and rate limiting behavior.
type APIConfig struct {
	// LatencyMS is the artificial per-call delay simulating network
	// round-trips, matching the feel of the original in-browser demo API.
	LatencyMS int     `yaml:"latency_ms"`
	RateRPS   float64 `yaml:"rate_rps"`
	RateBurst int     `yaml:"rate_burst"`
}

// DefaultConfig returns the configuration used when no file is supplied.
func DefaultConfig() Config {
	return Config{
		Server: ServerConfig{
			Host:            "127.0.0.1",
			Port:            8080,
			ReadTimeoutSec:  10,
			WriteTimeoutSec: 10,
			IdleTimeoutSec:  60,
		},
		Storage: StorageConfig{
			SessionFile: defaultSessionFile(),
		},
		Catalog: CatalogConfig{
			PersonasFile: "config/personas.yaml",
			CautionsFile: "config/cautions.yaml",
		},
		API: APIConfig{
			LatencyMS: 350,
			RateRPS:   25,
			RateBurst: 50,
		},
	}
}

// Load reads configuration from file, overlaying the defaults. An empty
// path returns the defaults unchanged.
func Load(configPath string) (Config, error) {
	cfg := DefaultConfig()
	if configPath == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config YAML: %w", err)
	}
	return cfg, nil
}

// Latency returns the configured artificial delay as a duration.
func (c APIConfig) Latency() time.Duration {
	return time.Duration(c.LatencyMS) * time.Millisecond
}

func defaultSessionFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".cautiond", "session.json")
	}
	return filepath.Join(home, ".cautiond", "session.json")
}
