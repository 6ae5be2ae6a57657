package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// BrandConfig defines the static reporting identity of a single brand
type BrandConfig struct {
	Brand       string `toml:"Brand"`
	ApiURL      string `toml:"ApiURL"`
	LocalApiURL string `toml:"LocalApiURL"`
	Expired     string `toml:"Expired"`
	Status      string `toml:"Status"`
	Kategori    string `toml:"Kategori"`

	// resolved from the .env file at startup, never present in the TOML
	ApiKey string `toml:"-"`
}

// Config maps to the config.toml file for the reporting agent
type Config struct {
	ReportIntervalInSeconds uint32        `toml:"ReportIntervalInSeconds"`
	ReportTimeoutInSeconds  uint32        `toml:"ReportTimeoutInSeconds"`
	UserAgent               string        `toml:"UserAgent"`
	Brands                  []BrandConfig `toml:"Brands"`
}

// LoadConfig parses a TOML file into the Config struct
func LoadConfig(filepath string) (*Config, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", filepath, err)
	}

	var cfg Config
	err = toml.Unmarshal(data, &cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to decode config file: %w", err)
	}

	return &cfg, nil
}

// BrandNames returns the names of all configured brands
func (cfg *Config) BrandNames() []string {
	names := make([]string, 0, len(cfg.Brands))
	for _, brand := range cfg.Brands {
		names = append(names, brand.Brand)
	}

	return names
}
