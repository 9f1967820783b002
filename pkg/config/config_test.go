package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zsh-install/zshup/pkg/spec"
)

func TestLoad(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "zshup.yml")
	content := `
variant: tar.gz
url: https://example.com/zsh.tar.gz
min_size: 2048
elevate: true
dirs: [bin]
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, spec.VariantTarGz, *cfg.Variant)
	assert.Equal(t, "https://example.com/zsh.tar.gz", spec.StringValue(cfg.URL))
	assert.Equal(t, int64(2048), spec.Int64Value(cfg.MinSize))
	assert.True(t, spec.BoolValue(cfg.Elevate), "explicit elevate overrides the tar.gz default")
	assert.Equal(t, []string{"bin"}, cfg.Dirs)
	assert.Equal(t, "usr", spec.StringValue(cfg.Prefix), "defaults applied to unset fields")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yml")
	require.NoError(t, os.WriteFile(path, []byte("variant: [unterminated"), 0644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestDiscover(t *testing.T) {
	tmpDir := t.TempDir()
	t.Chdir(tmpDir)

	assert.Equal(t, "", Discover())

	require.NoError(t, os.MkdirAll(filepath.Join(tmpDir, ".config"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, DefaultConfigPathYAML), []byte("variant: zip\n"), 0644))
	assert.Equal(t, DefaultConfigPathYAML, Discover())

	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, DefaultConfigPathYML), []byte("variant: zip\n"), 0644))
	assert.Equal(t, DefaultConfigPathYML, Discover(), ".yml takes precedence over .yaml")
}

func TestDefault(t *testing.T) {
	cfg := Default("")
	assert.Equal(t, spec.VariantZip, *cfg.Variant)

	cfg = Default(spec.VariantTarGz)
	assert.Equal(t, spec.VariantTarGz, *cfg.Variant)
	assert.Contains(t, cfg.Dirs, "lib")
}
