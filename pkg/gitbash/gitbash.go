// Package gitbash locates an existing Git for Windows installation,
// the tree that receives the Zsh files.
package gitbash

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// EnvInstallRoot names the environment variable consulted after the
// well-known install locations.
const EnvInstallRoot = "GIT_INSTALL_ROOT"

// ErrNotFound is returned when no candidate root contains a Git for
// Windows installation. Callers treat it as "nothing to do", not as a
// failure.
var ErrNotFound = errors.New("Git for Windows installation not found")

// markerRelPath is the file whose presence marks a candidate root as a
// real Git for Windows installation.
var markerRelPath = filepath.Join("usr", "bin", "bash.exe")

// DefaultCandidates returns the candidate installation roots in probe
// order: the two well-known install locations, then the override from
// GIT_INSTALL_ROOT when set.
func DefaultCandidates() []string {
	candidates := []string{
		`C:\Program Files\Git`,
		`C:\Program Files (x86)\Git`,
	}
	if root := os.Getenv(EnvInstallRoot); root != "" {
		candidates = append(candidates, root)
	}
	return candidates
}

// Locate returns the first candidate root whose marker file exists.
// Empty candidates are skipped. Returns ErrNotFound when no candidate
// matches.
func Locate(candidates []string) (string, error) {
	for _, root := range candidates {
		if root == "" {
			continue
		}
		if _, err := os.Stat(filepath.Join(root, markerRelPath)); err == nil {
			return root, nil
		}
	}
	return "", ErrNotFound
}
