package pipeline

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
)

// Document is the transient uploaded file. It owns the on-disk copy and is
// released exactly once via Discard, on every pipeline exit path.
type Document struct {
	Filename string
	Size     int64
	Path     string

	discard sync.Once
}

// SaveUpload spools the uploaded content to a temp file under dir and
// returns the handle that anchors cleanup.
func SaveUpload(content io.Reader, filename, dir string) (*Document, error) {
	f, err := os.CreateTemp(dir, "rate-upload-*")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}

	n, err := io.Copy(f, content)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(f.Name())
		return nil, fmt.Errorf("spool upload: %w", err)
	}

	return &Document{
		Filename: filename,
		Size:     n,
		Path:     f.Name(),
	}, nil
}

// Bytes reads the spooled content back.
func (d *Document) Bytes() ([]byte, error) {
	return os.ReadFile(d.Path)
}

// Discard deletes the on-disk copy. Safe to call more than once; a removal
// failure is logged as a warning and never escalated, so it cannot mask the
// pipeline's primary result.
func (d *Document) Discard(logger *slog.Logger) {
	d.discard.Do(func() {
		if err := os.Remove(d.Path); err != nil && !os.IsNotExist(err) {
			if logger == nil {
				logger = slog.Default()
			}
			logger.Warn("upload.discard_failed", "path", d.Path, "error", err)
		}
	})
}
