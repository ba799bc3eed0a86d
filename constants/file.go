package constants

import "strings"

// Document format labels used across the pipeline.
const (
	PDF  = "PDF"
	DOCX = "DOCX"
	XLSX = "XLSX"
)

// MaxUploadBytes is the default upload size ceiling (5 MiB).
const MaxUploadBytes int64 = 5 * 1024 * 1024

// AllowedExtensions holds the file extensions admitted by the upload guard.
var AllowedExtensions = map[string]struct{}{
	"pdf":  {},
	"docx": {},
	"xlsx": {},
}

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// MapExtToFormat resolves a file extension to its document format label.
// Returns "" for unsupported extensions.
func MapExtToFormat(ext string) string {
	switch NormalizeExt(ext) {
	case "pdf":
		return PDF
	case "docx":
		return DOCX
	case "xlsx":
		return XLSX
	default:
		return ""
	}
}

// ExtractionMethod names the extraction strategy for provenance metadata.
func ExtractionMethod(format string) string {
	switch format {
	case PDF:
		return "pdf-text"
	case DOCX:
		return "docx-text"
	case XLSX:
		return "xlsx-csv"
	default:
		return "unknown"
	}
}
