package extract

import (
	"context"
	"time"
)

// TextExtractor is Stage 2: document bytes -> plain text.
type TextExtractor interface {
	Extract(ctx context.Context, content []byte) (TextExtractionResult, error)
}

type TextExtractionResult struct {
	Text     string
	Units    int    // pages for PDF, paragraphs for DOCX, sheets for XLSX
	Method   string // "pdf-text" | "docx-text" | "xlsx-csv"
	Duration time.Duration
}
