package constants

import "testing"

func TestMapExtToFormat(t *testing.T) {
	cases := []struct {
		ext  string
		want string
	}{
		{".pdf", PDF},
		{"PDF", PDF},
		{".DocX", DOCX},
		{"xlsx", XLSX},
		{".txt", ""},
		{"", ""},
	}
	for _, tc := range cases {
		if got := MapExtToFormat(tc.ext); got != tc.want {
			t.Errorf("MapExtToFormat(%q) = %q, want %q", tc.ext, got, tc.want)
		}
	}
}

func TestExtractionMethod(t *testing.T) {
	if got := ExtractionMethod(XLSX); got != "xlsx-csv" {
		t.Errorf("ExtractionMethod(XLSX) = %q", got)
	}
	if got := ExtractionMethod("EPUB"); got != "unknown" {
		t.Errorf("ExtractionMethod(EPUB) = %q", got)
	}
}

func TestIsRateTypeIsExact(t *testing.T) {
	for _, s := range RateTypeStrings() {
		if !IsRateType(s) {
			t.Errorf("IsRateType(%q) = false", s)
		}
	}
	for _, s := range []string{"hotel", "HOTEL", "Cruise", ""} {
		if IsRateType(s) {
			t.Errorf("IsRateType(%q) = true", s)
		}
	}
}

func TestCanonicalRateType(t *testing.T) {
	cases := []struct {
		in   string
		want RateType
		ok   bool
	}{
		{"hotel", Hotel, true},
		{" Flight ", Flight, true},
		{"accommodation", Hotel, true},
		{"shuttle", Transfer, true},
		{"airfare", Flight, true},
		{"cruise", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, ok := CanonicalRateType(tc.in)
		if got != tc.want || ok != tc.ok {
			t.Errorf("CanonicalRateType(%q) = (%q, %v), want (%q, %v)", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}
