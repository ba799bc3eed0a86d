package llm

import (
	"strings"

	"github.com/voyago/rates-ingestion/constants"
)

const maxPromptTextLen = 12000

// BuildSystemPrompt composes the system message with the output schema, the
// rate-type enum, and the normalization rules the caller relies on. Relative
// validity phrasing is resolved here, by instruction, so callers always see
// absolute dates.
func BuildSystemPrompt(req ExtractRequest) string {
	defCur := strings.TrimSpace(req.DefaultCurrency)
	if defCur == "" {
		defCur = "USD"
	}
	today := req.Today.Format("2006-01-02")
	oneYear := req.Today.AddDate(1, 0, 0).Format("2006-01-02")

	parts := []string{
		"You are a travel pricing parser. Extract every rate from the document text.",
		"Return ONLY a bare JSON array that matches the provided JSON Schema. No surrounding prose, no Markdown fences.",
		"Each element has exactly these fields: rate_type, description, cost, currency, valid_start, valid_end.",
		"rate_type MUST be exactly one of: " + strings.Join(constants.RateTypeStrings(), ", ") + ".",
		"cost is a non-negative number without currency symbols or thousands separators.",
		"currency is a 3-letter ISO 4217 code; default to " + defCur + " if the document does not specify one.",
		"Use ISO-8601 dates (YYYY-MM-DD).",
		"If no start date is given, use " + today + ".",
		"If no end date is given, use exactly one year after the start date (e.g. " + today + " -> " + oneYear + ").",
		"Resolve relative phrasing like 'valid for 1 year' or 'valid through summer' to absolute dates yourself.",
		"If the document contains no rates, return [].",
	}
	return strings.Join(parts, " ")
}

// BuildUserPrompt packages the extracted document text with a filename hint.
func BuildUserPrompt(req ExtractRequest) string {
	var b strings.Builder
	if f := strings.TrimSpace(req.FilenameHint); f != "" {
		b.WriteString("Filename: ")
		b.WriteString(f)
		b.WriteString("\n")
	}
	b.WriteString("\nDocument text:\n")
	text := strings.TrimSpace(req.Text)
	if len(text) > maxPromptTextLen {
		b.WriteString(text[:maxPromptTextLen])
		b.WriteString("\n…(truncated)")
	} else {
		b.WriteString(text)
	}
	return b.String()
}
