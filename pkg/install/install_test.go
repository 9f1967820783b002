package install

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeTree creates files under root from relative path to content.
func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
}

// readTree returns all files under root as relative path to content.
func readTree(t *testing.T, root string) map[string]string {
	t.Helper()
	files := map[string]string{}
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		files[filepath.ToSlash(rel)] = string(content)
		return nil
	})
	require.NoError(t, err)
	return files
}

func TestCopyDirMergesAndOverwrites(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	writeTree(t, src, map[string]string{
		"zsh.exe":        "new zsh",
		"helpers/zshenv": "env setup",
		"helpers/zlogin": "login setup",
	})
	writeTree(t, dst, map[string]string{
		"zsh.exe":        "old zsh",
		"bash.exe":       "bash stays",
		"helpers/zshenv": "old env",
	})

	require.NoError(t, CopyDir(src, dst))

	got := readTree(t, dst)
	want := map[string]string{
		"zsh.exe":        "new zsh",    // replaced
		"bash.exe":       "bash stays", // destination-only, untouched
		"helpers/zshenv": "env setup",  // replaced in subdirectory
		"helpers/zlogin": "login setup",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("destination tree mismatch (-want +got):\n%s", diff)
	}
}

func TestCopyDirIdempotent(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	writeTree(t, src, map[string]string{
		"bin/zsh.exe":    "zsh",
		"share/zsh/help": "help text",
	})

	require.NoError(t, CopyDir(src, dst))
	once := readTree(t, dst)

	require.NoError(t, CopyDir(src, dst))
	twice := readTree(t, dst)

	if diff := cmp.Diff(once, twice); diff != "" {
		t.Errorf("second copy changed the tree (-once +twice):\n%s", diff)
	}
}

func TestCopyDirMissingSource(t *testing.T) {
	err := CopyDir(filepath.Join(t.TempDir(), "missing"), t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read source directory")
}

func TestInstallDirs(t *testing.T) {
	extractRoot := t.TempDir()
	gitRoot := t.TempDir()
	writeTree(t, extractRoot, map[string]string{
		"usr/bin/zsh.exe":                 "zsh binary",
		"usr/share/zsh/5.9/functions.zwc": "functions",
		"usr/lib/zsh/5.9/zle.dll":         "line editor",
	})
	writeTree(t, gitRoot, map[string]string{
		"usr/bin/bash.exe": "bash",
	})

	require.NoError(t, InstallDirs(extractRoot, gitRoot, "usr", []string{"bin", "share", "lib"}))

	assert.FileExists(t, filepath.Join(gitRoot, "usr", "bin", "zsh.exe"))
	assert.FileExists(t, filepath.Join(gitRoot, "usr", "share", "zsh", "5.9", "functions.zwc"))
	assert.FileExists(t, filepath.Join(gitRoot, "usr", "lib", "zsh", "5.9", "zle.dll"))
	assert.FileExists(t, filepath.Join(gitRoot, "usr", "bin", "bash.exe"), "existing files outside the copy set stay")
}

func TestInstallDirsMissingSubdirFails(t *testing.T) {
	extractRoot := t.TempDir()
	gitRoot := t.TempDir()
	writeTree(t, extractRoot, map[string]string{
		"usr/bin/zsh.exe": "zsh binary",
	})

	err := InstallDirs(extractRoot, gitRoot, "usr", []string{"bin", "lib"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), filepath.Join("usr", "lib"))

	// The earlier copy is not rolled back.
	assert.FileExists(t, filepath.Join(gitRoot, "usr", "bin", "zsh.exe"))
}
