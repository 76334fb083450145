package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Names probed by Discover, most specific first. Dotted variants let a
// project keep the file hidden next to its stylesheets.
var configFileNames = []string{
	"sasslint.yml",
	"sasslint.yaml",
	".sasslint.yml",
	".sasslint.yaml",
}

// Discover looks for a sasslint config in dir and returns the first hit,
// or "" when dir has none.
func Discover(dir string) string {
	for _, name := range configFileNames {
		candidate := filepath.Join(dir, name)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate
		}
	}
	return ""
}

// Load returns the lint configuration for a run. An explicit path must
// exist; with an empty path the working directory is searched and a
// project without a config file lints with DefaultConfig.
//
// Keys absent from the file keep their defaults, so a file that only sets
// fix.max_iterations still lints with the 9elements order.
func Load(path string) (*Config, error) {
	if path == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("locating config: %w", err)
		}
		if path = Discover(wd); path == "" {
			return DefaultConfig(), nil
		}
	}

	raw, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil, fmt.Errorf("config file not found: %s", path)
	case err != nil:
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg, err := decode(raw)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// decode overlays raw YAML on the defaults and validates the result.
func decode(raw []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("parsing yaml: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}
	return cfg, nil
}
