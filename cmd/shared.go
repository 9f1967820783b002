package cmd

import (
	"github.com/apex/log"
	"github.com/zsh-install/zshup/pkg/config"
	"github.com/zsh-install/zshup/pkg/spec"
)

// loadSpec resolves the InstallSpec: an explicit --config path first,
// then a discovered default config file, then built-in defaults. The
// program stays usable with no config file at all.
func loadSpec(cfgFile string) (*spec.InstallSpec, error) {
	if cfgFile == "" {
		cfgFile = config.Discover()
	}
	if cfgFile == "" {
		log.Debug("no config file found, using built-in defaults")
		return config.Default(""), nil
	}
	log.Debugf("reading config from: %s", cfgFile)
	return config.Load(cfgFile)
}
