package extract

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
	"time"
)

// DOCXExtractor pulls raw paragraph text out of a Word document, discarding
// styling. A .docx file is a zip archive whose body lives in
// word/document.xml; text runs are the w:t elements and paragraphs the w:p
// elements.
type DOCXExtractor struct{}

func NewDOCXExtractor() *DOCXExtractor {
	return &DOCXExtractor{}
}

func (e *DOCXExtractor) Extract(_ context.Context, content []byte) (TextExtractionResult, error) {
	start := time.Now()

	archive, err := zip.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return TextExtractionResult{}, fmt.Errorf("open docx archive: %w", err)
	}

	var document *zip.File
	for _, f := range archive.File {
		if f.Name == "word/document.xml" {
			document = f
			break
		}
	}
	if document == nil {
		return TextExtractionResult{}, fmt.Errorf("docx archive has no word/document.xml")
	}

	rc, err := document.Open()
	if err != nil {
		return TextExtractionResult{}, fmt.Errorf("open document.xml: %w", err)
	}
	defer rc.Close()

	text, paragraphs, err := decodeDocumentXML(rc)
	if err != nil {
		return TextExtractionResult{}, err
	}

	return TextExtractionResult{
		Text:     text,
		Units:    paragraphs,
		Method:   "docx-text",
		Duration: time.Since(start),
	}, nil
}

func decodeDocumentXML(r io.Reader) (string, int, error) {
	dec := xml.NewDecoder(r)

	var b strings.Builder
	var inText bool
	paragraphs := 0

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", 0, fmt.Errorf("decode document.xml: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "t" {
				inText = true
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				paragraphs++
				b.WriteByte('\n')
			}
		case xml.CharData:
			if inText {
				b.Write(t)
			}
		}
	}

	return b.String(), paragraphs, nil
}
