package pipeline

import (
	"errors"
	"testing"

	"github.com/voyago/rates-ingestion/constants"
	"github.com/voyago/rates-ingestion/internal/common"
)

func TestGuardAdmitsSupportedExtensions(t *testing.T) {
	g := NewGuard(1024)

	cases := []struct {
		filename string
		want     string
	}{
		{"rates.pdf", constants.PDF},
		{"rates.docx", constants.DOCX},
		{"rates.xlsx", constants.XLSX},
		{"RATES.PDF", constants.PDF},
		{"summer 2024 pricing.XlSx", constants.XLSX},
	}
	for _, tc := range cases {
		format, err := g.Admit(tc.filename, 512)
		if err != nil {
			t.Errorf("Admit(%q) returned error: %v", tc.filename, err)
			continue
		}
		if format != tc.want {
			t.Errorf("Admit(%q) = %q, want %q", tc.filename, format, tc.want)
		}
	}
}

func TestGuardRejectsUnsupportedExtensions(t *testing.T) {
	g := NewGuard(1024)

	for _, filename := range []string{"rates.txt", "rates.csv", "rates", "rates.doc", "rates.pdf.exe"} {
		_, err := g.Admit(filename, 512)
		var fte *common.FileTypeError
		if !errors.As(err, &fte) {
			t.Errorf("Admit(%q) = %v, want FileTypeError", filename, err)
		}
	}
}

func TestGuardRejectsOversizeBeforeTypeCheck(t *testing.T) {
	g := NewGuard(100)

	// even an unsupported extension reports the size violation first
	_, err := g.Admit("rates.txt", 101)
	var fse *common.FileSizeError
	if !errors.As(err, &fse) {
		t.Fatalf("Admit oversize = %v, want FileSizeError", err)
	}
	if fse.Size != 101 || fse.Limit != 100 {
		t.Errorf("FileSizeError = %+v, want Size=101 Limit=100", fse)
	}
}

func TestGuardAdmitsAtLimit(t *testing.T) {
	g := NewGuard(100)
	if _, err := g.Admit("rates.pdf", 100); err != nil {
		t.Fatalf("Admit at limit returned error: %v", err)
	}
}
