// Package validation applies the per-candidate business rules for extracted
// rates. Violations are collected across the whole batch and reported as a
// single aggregated error; a batch with any violation is rejected atomically.
package validation

import (
	"log/slog"
	"time"
	"unicode/utf8"

	"github.com/voyago/rates-ingestion/constants"
	"github.com/voyago/rates-ingestion/internal/common"
	"github.com/voyago/rates-ingestion/internal/llm"
)

const dateLayout = "2006-01-02"

type Engine struct {
	logger *slog.Logger
}

func NewEngine(logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{logger: logger}
}

// ValidateBatch checks every candidate and returns a *common.ValidationError
// carrying every violation in candidate order, or nil when the batch is
// clean. Positions are 1-based for human-facing messages.
func (e *Engine) ValidateBatch(candidates []llm.RateCandidate) error {
	var violations []common.Violation
	add := func(pos int, reason string) {
		violations = append(violations, common.Violation{Position: pos, Reason: reason})
	}

	for i, c := range candidates {
		pos := i + 1

		if !constants.IsRateType(c.RateType) {
			add(pos, "Invalid rate type")
		}
		if c.Description == "" {
			add(pos, "Missing or empty description")
		}
		if cost, ok := numericCost(c.Cost); !ok || cost < 0 {
			add(pos, "Invalid cost value")
		}
		if utf8.RuneCountInString(c.Currency) != 3 {
			add(pos, "Invalid currency code")
		}

		start, startErr := time.Parse(dateLayout, c.ValidStart)
		if startErr != nil {
			add(pos, "Invalid start date")
		}
		end, endErr := time.Parse(dateLayout, c.ValidEnd)
		if endErr != nil {
			add(pos, "Invalid end date")
		}
		if startErr == nil && endErr == nil && end.Before(start) {
			add(pos, "End date precedes start date")
		}
	}

	if len(violations) > 0 {
		e.logger.Warn("validation.batch_rejected",
			"candidates", len(candidates),
			"violations", len(violations),
		)
		return &common.ValidationError{Violations: violations}
	}
	return nil
}

func numericCost(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case int:
		return float64(t), true
	default:
		return 0, false
	}
}
