package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zsh-install/zshup/pkg/config"
	"github.com/zsh-install/zshup/pkg/spec"
)

func TestInitWritesDefaultConfig(t *testing.T) {
	stubGlobals(t)
	t.Chdir(t.TempDir())

	origVariant, origOutput, origForce := initVariant, initOutputFile, initForce
	t.Cleanup(func() { initVariant, initOutputFile, initForce = origVariant, origOutput, origForce })

	initVariant = "tar.gz"
	initOutputFile = filepath.Join("conf", "zshup.yml")
	initForce = true

	require.NoError(t, InitCommand.RunE(InitCommand, nil))

	cfg, err := config.Load(initOutputFile)
	require.NoError(t, err)
	assert.Equal(t, spec.VariantTarGz, *cfg.Variant)
	assert.Contains(t, cfg.Dirs, "lib")
}

func TestInitRejectsUnknownVariant(t *testing.T) {
	stubGlobals(t)
	t.Chdir(t.TempDir())

	origVariant := initVariant
	t.Cleanup(func() { initVariant = origVariant })
	initVariant = "7z"

	err := InitCommand.RunE(InitCommand, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid --variant")

	_, statErr := os.Stat(config.DefaultConfigPathYML)
	assert.True(t, os.IsNotExist(statErr), "no file written on failure")
}
