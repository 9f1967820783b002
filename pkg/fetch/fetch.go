// Package fetch downloads the distribution archive and validates the
// result. The failure classes are kept distinct: a non-success HTTP
// status, a network error during the transfer, and a completed transfer
// that is too small to be a real archive each surface as their own
// error, because each leaves the filesystem in a different state.
package fetch

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// StatusError reports a non-success HTTP response. The destination file
// is not touched in this case: a previously downloaded artifact stays
// exactly as it was.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status code: %d", e.Code)
}

// SizeError reports a completed transfer below the minimum plausible
// archive size, usually a server error page delivered with a 200. The
// undersized file is left on disk for diagnostics.
type SizeError struct {
	Size int64
	Min  int64
}

func (e *SizeError) Error() string {
	return fmt.Sprintf("downloaded file is too small: %d bytes (expected at least %d)", e.Size, e.Min)
}

// ProgressFunc is a callback for download progress. total is -1 when
// the server did not announce a content length.
type ProgressFunc func(downloaded, total int64)

// Download fetches url into destPath. See DownloadWithProgress.
func Download(client *http.Client, url, destPath string, minSize int64) error {
	return DownloadWithProgress(client, url, destPath, minSize, nil)
}

// DownloadWithProgress issues a single GET (redirects follow the
// client's policy) and streams the body to destPath, overwriting any
// prior file. The destination is only opened after the status check, so
// a failed status leaves a previous artifact untouched. A transfer that
// errors mid-stream removes the partial file; a completed transfer
// below minSize (when minSize > 0) is left in place and reported as a
// SizeError.
func DownloadWithProgress(client *http.Client, url, destPath string, minSize int64, progress ProgressFunc) error {
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Get(url)
	if err != nil {
		return errors.Wrap(err, "download request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &StatusError{Code: resp.StatusCode}
	}

	if err := os.MkdirAll(filepath.Dir(destPath), 0755); err != nil {
		return errors.Wrap(err, "failed to create download directory")
	}
	out, err := os.OpenFile(destPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return errors.Wrap(err, "failed to create download file")
	}

	written, copyErr := copyWithProgress(out, resp.Body, resp.ContentLength, progress)
	closeErr := out.Close()
	if copyErr != nil {
		// A truncated body is worse than no file: a later run could
		// mistake it for a complete archive.
		os.Remove(destPath)
		return errors.Wrap(copyErr, "download interrupted")
	}
	if closeErr != nil {
		os.Remove(destPath)
		return errors.Wrap(closeErr, "failed to close download file")
	}

	if minSize > 0 && written < minSize {
		return &SizeError{Size: written, Min: minSize}
	}
	return nil
}

// copyWithProgress copies src to dst in fixed-size chunks, reporting
// after every chunk.
func copyWithProgress(dst io.Writer, src io.Reader, total int64, progress ProgressFunc) (int64, error) {
	var written int64
	buf := make([]byte, 32*1024)

	for {
		nr, readErr := src.Read(buf)
		if nr > 0 {
			nw, writeErr := dst.Write(buf[:nr])
			if writeErr != nil {
				return written, writeErr
			}
			written += int64(nw)
			if progress != nil {
				progress(written, total)
			}
		}
		if readErr != nil {
			if readErr == io.EOF {
				return written, nil
			}
			return written, readErr
		}
	}
}
