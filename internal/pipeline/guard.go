package pipeline

import (
	"path/filepath"

	"github.com/voyago/rates-ingestion/constants"
	"github.com/voyago/rates-ingestion/internal/common"
)

// Guard admits an upload by declared filename and byte size before any
// extraction work happens. Unknown extensions are rejected, never parsed
// best-effort.
type Guard struct {
	MaxBytes int64
}

func NewGuard(maxBytes int64) Guard {
	if maxBytes <= 0 {
		maxBytes = constants.MaxUploadBytes
	}
	return Guard{MaxBytes: maxBytes}
}

// Admit returns the resolved document format, or a FileSizeError /
// FileTypeError. The size check runs first so oversize uploads are turned
// away before any format-specific handling.
func (g Guard) Admit(filename string, size int64) (string, error) {
	if size > g.MaxBytes {
		return "", &common.FileSizeError{Size: size, Limit: g.MaxBytes}
	}

	ext := constants.NormalizeExt(filepath.Ext(filename))
	format := constants.MapExtToFormat(ext)
	if format == "" {
		return "", &common.FileTypeError{Filename: filename, Ext: ext}
	}
	return format, nil
}
