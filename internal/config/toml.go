// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Search  SearchConfig       `toml:"search"`
	Weights map[string]float64 `toml:"weights"`
}

// SearchConfig maps search-related settings. Fields are pointers so unset
// values never override flags.
type SearchConfig struct {
	Iterations  *int     `toml:"iterations"`
	TimeLimit   *string  `toml:"time-limit"`
	Stagnation  *int     `toml:"stagnation"`
	Policy      *string  `toml:"policy"`
	InitialTemp *float64 `toml:"initial-temp"`
	Cooling     *float64 `toml:"cooling"`
	Neighbors   *int     `toml:"neighbors"`
	Parallelism *int     `toml:"parallelism"`
	RandSeed    *int64   `toml:"rand-seed"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}
