package extract

import (
	"archive/zip"
	"bytes"
	"context"
	"strings"
	"testing"
)

func docxBytes(t *testing.T, documentXML string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := w.Write([]byte(documentXML)); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

const sampleDocumentXML = `<?xml version="1.0" encoding="UTF-8"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>Hotel rates for 2024 season</w:t></w:r></w:p>
    <w:p><w:r><w:t>Downtown Suite: </w:t></w:r><w:r><w:t>120 USD per night</w:t></w:r></w:p>
  </w:body>
</w:document>`

func TestDOCXExtractParagraphs(t *testing.T) {
	res, err := NewDOCXExtractor().Extract(context.Background(), docxBytes(t, sampleDocumentXML))
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if res.Method != "docx-text" {
		t.Errorf("Method = %q", res.Method)
	}
	if res.Units != 2 {
		t.Errorf("Units = %d, want 2 paragraphs", res.Units)
	}
	if !strings.Contains(res.Text, "Hotel rates for 2024 season") {
		t.Errorf("first paragraph missing: %q", res.Text)
	}
	// adjacent runs in one paragraph concatenate without separators
	if !strings.Contains(res.Text, "Downtown Suite: 120 USD per night") {
		t.Errorf("runs not joined: %q", res.Text)
	}
}

func TestDOCXExtractMissingDocumentXML(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/styles.xml")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := w.Write([]byte("<styles/>")); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}

	if _, err := NewDOCXExtractor().Extract(context.Background(), buf.Bytes()); err == nil {
		t.Fatal("expected error for archive without word/document.xml")
	}
}

func TestDOCXExtractRejectsNonZip(t *testing.T) {
	if _, err := NewDOCXExtractor().Extract(context.Background(), []byte("plain text file")); err == nil {
		t.Fatal("expected error for non-zip bytes")
	}
}
