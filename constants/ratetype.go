package constants

import "strings"

// RateType is the canonical kind of a priced travel offering.
type RateType string

// Stable values (store these exact strings in DB).
const (
	Flight    RateType = "Flight"
	Hotel     RateType = "Hotel"
	Tour      RateType = "Tour"
	Insurance RateType = "Insurance"
	Transfer  RateType = "Transfer"
)

var allRateTypes = []RateType{
	Flight,
	Hotel,
	Tour,
	Insurance,
	Transfer,
}

// RateTypeStrings returns the enum as a string slice for prompts and schemas.
func RateTypeStrings() []string {
	result := make([]string, len(allRateTypes))
	for i, rt := range allRateTypes {
		result[i] = string(rt)
	}
	return result
}

// IsRateType reports whether input matches the enum exactly.
func IsRateType(input string) bool {
	for _, rt := range allRateTypes {
		if input == string(rt) {
			return true
		}
	}
	return false
}

// CanonicalRateType maps common labels onto the enum, case-insensitively.
func CanonicalRateType(input string) (RateType, bool) {
	normalized := strings.ToLower(strings.TrimSpace(input))
	if normalized == "" {
		return "", false
	}

	synonyms := map[string]RateType{
		"air":           Flight,
		"airfare":       Flight,
		"accommodation": Hotel,
		"lodging":       Hotel,
		"excursion":     Tour,
		"activity":      Tour,
		"cover":         Insurance,
		"shuttle":       Transfer,
		"pickup":        Transfer,
	}
	if rt, ok := synonyms[normalized]; ok {
		return rt, true
	}

	for _, rt := range allRateTypes {
		if normalized == strings.ToLower(string(rt)) {
			return rt, true
		}
	}
	return "", false
}
