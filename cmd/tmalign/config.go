package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// fileConfig carries optional flag defaults loaded from a YAML file.
// Only keys present in the file override built-in defaults; flags given on
// the command line always win.
type fileConfig struct {
	Ter     *int  `yaml:"ter"`
	Fast    *bool `yaml:"fast"`
	Outfmt  *int  `yaml:"outfmt"`
	NormAvg *bool `yaml:"norm_avg"`
}

// loadConfig reads and decodes the YAML defaults file.
func loadConfig(path string) (*fileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}

	var cfg fileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}

	return &cfg, nil
}
