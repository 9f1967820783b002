// Package config loads InstallSpec files and supplies the built-in
// defaults used when no config file exists.
package config

import (
	"os"

	"github.com/pkg/errors"
	"github.com/zsh-install/zshup/pkg/spec"
	"gopkg.in/yaml.v3"
)

const (
	// Default config file paths, tried in order.
	DefaultConfigPathYML  = ".config/zshup.yml"
	DefaultConfigPathYAML = ".config/zshup.yaml"
)

// Load reads and parses an InstallSpec config file from the given path
// and applies variant defaults to any unset field.
func Load(path string) (*spec.InstallSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read config file: %s", path)
	}

	var cfg spec.InstallSpec
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrapf(err, "failed to parse config file: %s", path)
	}

	cfg.SetDefaults()
	return &cfg, nil
}

// Discover returns the first default config file that exists, or an
// empty string when none does.
func Discover() string {
	for _, candidate := range []string{DefaultConfigPathYML, DefaultConfigPathYAML} {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return ""
}

// Default builds a fully-defaulted InstallSpec for the given variant.
// An empty variant selects the zip release.
func Default(variant spec.Variant) *spec.InstallSpec {
	var cfg spec.InstallSpec
	if variant != "" {
		cfg.Variant = &variant
	}
	cfg.SetDefaults()
	return &cfg
}

