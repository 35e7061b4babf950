package cmd

import (
	"os"

	"github.com/goccy/go-yaml"
)

// fileConfig is the shape of the optional `--config FILE` YAML document:
// strict-mode default, indentation tab width, and the recursion-depth
// guard, all of which populate an interp.Options for the run.
type fileConfig struct {
	Strict            bool `yaml:"strict"`
	TabWidth          int  `yaml:"tabWidth"`
	MaxRecursionDepth int  `yaml:"maxRecursionDepth"`
}

func loadConfig(path string) (fileConfig, error) {
	cfg := fileConfig{TabWidth: 4}
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
