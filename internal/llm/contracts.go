package llm

import (
	"context"
	"time"
)

// RateCandidate is the normalized shape we want from the LLM, one element
// per extracted rate. Cost stays loosely typed so the validation layer can
// report bad values instead of the decoder rejecting the whole payload.
type RateCandidate struct {
	RateType    string `json:"rate_type"`
	Description string `json:"description"`
	Cost        any    `json:"cost"`
	Currency    string `json:"currency"`    // 3-letter code
	ValidStart  string `json:"valid_start"` // YYYY-MM-DD
	ValidEnd    string `json:"valid_end"`   // YYYY-MM-DD, >= valid_start
}

type ExtractRequest struct {
	Text            string
	FilenameHint    string
	DefaultCurrency string
	Today           time.Time
}

// RateExtractor is the interface the pipeline depends on.
type RateExtractor interface {
	ExtractRates(ctx context.Context, req ExtractRequest) ([]RateCandidate, []byte /*rawJSON*/, error)
}
