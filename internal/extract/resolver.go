package extract

import (
	"context"
	"log/slog"

	"github.com/voyago/rates-ingestion/constants"
	"github.com/voyago/rates-ingestion/internal/common"
)

// Resolver maps a document format to exactly one extraction strategy.
// No fallback strategy is attempted when the chosen one fails.
type Resolver struct {
	strategies map[string]TextExtractor
	logger     *slog.Logger
}

func NewResolver(logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{
		strategies: map[string]TextExtractor{
			constants.PDF:  NewPDFExtractor(),
			constants.DOCX: NewDOCXExtractor(),
			constants.XLSX: NewXLSXExtractor(),
		},
		logger: logger,
	}
}

// Extract runs the strategy for format over content. Strategy failures are
// wrapped into a single ExtractionError carrying the underlying cause.
func (r *Resolver) Extract(ctx context.Context, format string, content []byte) (TextExtractionResult, error) {
	strategy, ok := r.strategies[format]
	if !ok {
		return TextExtractionResult{}, &common.ExtractionError{
			Format: format,
			Cause:  common.ErrInvalidInput,
		}
	}

	res, err := strategy.Extract(ctx, content)
	if err != nil {
		r.logger.Error("extract.failed", "format", format, "error", err)
		return TextExtractionResult{}, &common.ExtractionError{Format: format, Cause: err}
	}

	r.logger.Debug("extract.ok",
		"format", format,
		"method", res.Method,
		"units", res.Units,
		"text_len", len(res.Text),
		"elapsed_ms", res.Duration.Milliseconds(),
	)
	return res, nil
}
