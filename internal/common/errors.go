package common

import (
	"errors"
	"fmt"
	"strings"
)

// Common application errors
var (
	ErrNoContent    = errors.New("no text content found in document")
	ErrNoRates      = errors.New("no valid rate data could be extracted from the file")
	ErrInvalidInput = errors.New("invalid input")
)

// FileTypeError reports an upload with an extension outside the allowed set.
type FileTypeError struct {
	Filename string
	Ext      string
}

func (e *FileTypeError) Error() string {
	return fmt.Sprintf("unsupported file type %q: only PDF, DOCX and XLSX files are accepted", e.Ext)
}

// FileSizeError reports an upload over the configured size ceiling.
type FileSizeError struct {
	Size  int64
	Limit int64
}

func (e *FileSizeError) Error() string {
	return fmt.Sprintf("file too large: %d bytes exceeds the %d byte limit", e.Size, e.Limit)
}

// ExtractionError wraps a text-extraction strategy failure.
type ExtractionError struct {
	Format string
	Cause  error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("%s text extraction failed: %v", e.Format, e.Cause)
}

func (e *ExtractionError) Unwrap() error { return e.Cause }

// AIProcessingError reports a failed completion call (transport or provider).
type AIProcessingError struct {
	Cause error
}

func (e *AIProcessingError) Error() string {
	return fmt.Sprintf("ai processing failed: %v", e.Cause)
}

func (e *AIProcessingError) Unwrap() error { return e.Cause }

// AIResponseParseError reports a completion that succeeded but returned a
// payload that is not parseable JSON after stripping wrapping artifacts.
type AIResponseParseError struct {
	Cause error
}

func (e *AIResponseParseError) Error() string {
	return fmt.Sprintf("ai response is not valid JSON: %v", e.Cause)
}

func (e *AIResponseParseError) Unwrap() error { return e.Cause }

// Violation is a single per-candidate validation failure. Position is
// 1-based, matching the candidate's place in the extracted sequence.
type Violation struct {
	Position int
	Reason   string
}

func (v Violation) String() string {
	return fmt.Sprintf("Rate %d: %s", v.Position, v.Reason)
}

// ValidationError aggregates every violation across a candidate batch.
// The batch is rejected atomically whenever this is non-empty.
type ValidationError struct {
	Violations []Violation
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		msgs[i] = v.String()
	}
	return "rate validation failed: " + strings.Join(msgs, "; ")
}

// Messages returns the per-violation strings in candidate order.
func (e *ValidationError) Messages() []string {
	msgs := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		msgs[i] = v.String()
	}
	return msgs
}

// PersistenceError wraps a datastore insert failure.
type PersistenceError struct {
	Cause error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("failed to save rates: %v", e.Cause)
}

func (e *PersistenceError) Unwrap() error { return e.Cause }

// WrapError annotates err with a stage-identifying message.
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
