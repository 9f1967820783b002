// Package install merges subdirectories of the extracted distribution
// into the Git for Windows installation tree.
package install

import (
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// InstallDirs copies each named subdirectory from under the extracted
// tree's prefix into the same place under the Git installation root.
// Each copy is an independent operation run in order; an error stops
// the sequence but does not roll back completed copies.
func InstallDirs(extractRoot, gitRoot, prefix string, dirs []string) error {
	for _, dir := range dirs {
		src := filepath.Join(extractRoot, prefix, dir)
		dst := filepath.Join(gitRoot, prefix, dir)
		if err := CopyDir(src, dst); err != nil {
			return errors.Wrapf(err, "failed to install %s", filepath.Join(prefix, dir))
		}
	}
	return nil
}

// CopyDir recursively copies srcDir into dstDir. Destination files with
// matching names are replaced; files only present at the destination
// are left alone. This is a merge, not a mirror, and running it twice
// yields the same tree as running it once.
func CopyDir(srcDir, dstDir string) error {
	entries, err := os.ReadDir(srcDir)
	if err != nil {
		return errors.Wrapf(err, "failed to read source directory: %s", srcDir)
	}

	if err := os.MkdirAll(dstDir, 0755); err != nil {
		return errors.Wrapf(err, "failed to create directory: %s", dstDir)
	}

	for _, entry := range entries {
		src := filepath.Join(srcDir, entry.Name())
		dst := filepath.Join(dstDir, entry.Name())

		if entry.IsDir() {
			if err := CopyDir(src, dst); err != nil {
				return err
			}
			continue
		}
		if !entry.Type().IsRegular() {
			// MSYS2 packages may carry symlinks that mean nothing on
			// the target tree; skip them.
			continue
		}

		info, err := entry.Info()
		if err != nil {
			return errors.Wrapf(err, "failed to stat source file: %s", src)
		}
		if err := copyFile(src, dst, info.Mode().Perm()); err != nil {
			return err
		}
	}
	return nil
}

// copyFile copies one regular file, truncating any existing target.
func copyFile(src, dst string, mode os.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return errors.Wrapf(err, "failed to open source file: %s", src)
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode)
	if err != nil {
		return errors.Wrapf(err, "failed to create file: %s", dst)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return errors.Wrapf(err, "failed to copy file: %s", dst)
	}
	return out.Close()
}
