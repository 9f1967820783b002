// Package archive unpacks the fetched distribution archive into the
// extraction directory.
package archive

import (
	"archive/tar"
	"archive/zip"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// Format represents the archive format.
type Format string

const (
	FormatTarGz Format = "tar.gz"
	FormatTar   Format = "tar"
	FormatZip   Format = "zip"
)

// DetectFormat detects the archive format from the filename.
func DetectFormat(filename string) (Format, error) {
	lower := strings.ToLower(filename)
	switch {
	case strings.HasSuffix(lower, ".tar.gz"), strings.HasSuffix(lower, ".tgz"):
		return FormatTarGz, nil
	case strings.HasSuffix(lower, ".tar"):
		return FormatTar, nil
	case strings.HasSuffix(lower, ".zip"):
		return FormatZip, nil
	}
	return "", fmt.Errorf("unsupported archive format: %s", filepath.Base(filename))
}

// Extract unpacks archivePath into destDir, creating destDir first if
// it does not exist. stripComponents leading path components are
// removed from every entry; entries consumed entirely by the strip are
// skipped. Entries that would escape destDir are rejected.
func Extract(archivePath, destDir string, stripComponents int) error {
	format, err := DetectFormat(archivePath)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(destDir, 0755); err != nil {
		return errors.Wrap(err, "failed to create extraction directory")
	}

	switch format {
	case FormatTarGz:
		return extractTarGz(archivePath, destDir, stripComponents)
	case FormatTar:
		return extractTar(archivePath, destDir, stripComponents)
	case FormatZip:
		return extractZip(archivePath, destDir, stripComponents)
	}
	return fmt.Errorf("unsupported archive format: %s", format)
}

func extractTarGz(archivePath, destDir string, stripComponents int) error {
	file, err := os.Open(archivePath)
	if err != nil {
		return errors.Wrap(err, "failed to open archive")
	}
	defer file.Close()

	gzReader, err := gzip.NewReader(file)
	if err != nil {
		return errors.Wrap(err, "failed to create gzip reader")
	}
	defer gzReader.Close()

	return extractTarReader(gzReader, destDir, stripComponents)
}

func extractTar(archivePath, destDir string, stripComponents int) error {
	file, err := os.Open(archivePath)
	if err != nil {
		return errors.Wrap(err, "failed to open archive")
	}
	defer file.Close()

	return extractTarReader(file, destDir, stripComponents)
}

func extractTarReader(r io.Reader, destDir string, stripComponents int) error {
	tarReader := tar.NewReader(r)

	for {
		header, err := tarReader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return errors.Wrap(err, "failed to read tar header")
		}

		target, ok, err := entryTarget(destDir, header.Name, stripComponents)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}

		switch header.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, os.FileMode(header.Mode)); err != nil {
				return errors.Wrap(err, "failed to create directory")
			}
		case tar.TypeReg:
			if err := writeEntry(target, tarReader, os.FileMode(header.Mode)); err != nil {
				return err
			}
		}
	}
	return nil
}

func extractZip(archivePath, destDir string, stripComponents int) error {
	reader, err := zip.OpenReader(archivePath)
	if err != nil {
		return errors.Wrap(err, "failed to open zip archive")
	}
	defer reader.Close()

	for _, file := range reader.File {
		target, ok, err := entryTarget(destDir, file.Name, stripComponents)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}

		if file.FileInfo().IsDir() {
			if err := os.MkdirAll(target, file.Mode()); err != nil {
				return errors.Wrap(err, "failed to create directory")
			}
			continue
		}

		src, err := file.Open()
		if err != nil {
			return errors.Wrap(err, "failed to open file in archive")
		}
		err = writeEntry(target, src, file.Mode())
		src.Close()
		if err != nil {
			return err
		}
	}
	return nil
}

// entryTarget resolves an archive entry name to its on-disk path,
// applying the component strip and rejecting path traversal. ok is
// false when the entry is consumed entirely by the strip.
func entryTarget(destDir, name string, stripComponents int) (target string, ok bool, err error) {
	stripped, skip := stripPath(name, stripComponents)
	if skip {
		return "", false, nil
	}

	target = filepath.Join(destDir, stripped)
	if target != destDir && !strings.HasPrefix(target, destDir+string(os.PathSeparator)) {
		return "", false, fmt.Errorf("invalid path in archive: %s", name)
	}
	return target, true, nil
}

// writeEntry streams one archive entry to disk, creating parents.
func writeEntry(target string, src io.Reader, mode os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return errors.Wrap(err, "failed to create parent directory")
	}

	out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode)
	if err != nil {
		return errors.Wrap(err, "failed to create file")
	}
	if _, err := io.Copy(out, src); err != nil {
		out.Close()
		return errors.Wrap(err, "failed to extract file")
	}
	return out.Close()
}

// stripPath removes count leading path components.
func stripPath(path string, count int) (string, bool) {
	if count == 0 {
		return path, false
	}
	parts := strings.Split(path, "/")
	if len(parts) <= count {
		return "", true
	}
	return strings.Join(parts[count:], "/"), false
}
