package extract

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/ledongthuc/pdf"
)

// PDFExtractor extracts the full document text from a PDF.
type PDFExtractor struct{}

func NewPDFExtractor() *PDFExtractor {
	return &PDFExtractor{}
}

func (e *PDFExtractor) Extract(_ context.Context, content []byte) (TextExtractionResult, error) {
	start := time.Now()

	reader, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return TextExtractionResult{}, fmt.Errorf("open pdf: %w", err)
	}

	plain, err := reader.GetPlainText()
	if err != nil {
		return TextExtractionResult{}, fmt.Errorf("read pdf text: %w", err)
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(plain); err != nil {
		return TextExtractionResult{}, fmt.Errorf("read pdf text: %w", err)
	}

	return TextExtractionResult{
		Text:     buf.String(),
		Units:    reader.NumPage(),
		Method:   "pdf-text",
		Duration: time.Since(start),
	}, nil
}
