package common

import (
	"errors"
	"strings"
	"testing"
)

func TestViolationString(t *testing.T) {
	v := Violation{Position: 3, Reason: "Invalid cost value"}
	if got := v.String(); got != "Rate 3: Invalid cost value" {
		t.Errorf("String() = %q", got)
	}
}

func TestValidationErrorAggregates(t *testing.T) {
	err := &ValidationError{Violations: []Violation{
		{Position: 1, Reason: "Invalid rate type"},
		{Position: 2, Reason: "Missing or empty description"},
	}}

	msg := err.Error()
	if !strings.Contains(msg, "Rate 1: Invalid rate type; Rate 2: Missing or empty description") {
		t.Errorf("Error() = %q", msg)
	}

	msgs := err.Messages()
	if len(msgs) != 2 || msgs[0] != "Rate 1: Invalid rate type" {
		t.Errorf("Messages() = %v", msgs)
	}
}

func TestTypedErrorsUnwrap(t *testing.T) {
	cause := errors.New("socket closed")

	for _, err := range []error{
		&ExtractionError{Format: "pdf", Cause: cause},
		&AIProcessingError{Cause: cause},
		&AIResponseParseError{Cause: cause},
		&PersistenceError{Cause: cause},
	} {
		if !errors.Is(err, cause) {
			t.Errorf("%T does not unwrap to its cause", err)
		}
	}
}

func TestWrapError(t *testing.T) {
	if WrapError(nil, "stage") != nil {
		t.Error("wrapping nil must stay nil")
	}
	base := errors.New("boom")
	wrapped := WrapError(base, "persist rates")
	if !errors.Is(wrapped, base) {
		t.Error("wrapped error lost its cause")
	}
	if !strings.HasPrefix(wrapped.Error(), "persist rates: ") {
		t.Errorf("message = %q", wrapped.Error())
	}
}
