package records

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

var (
	// ErrMissingField indicates a required field is absent from a record.
	ErrMissingField = errors.New("missing field")
	// ErrTypeCoercion indicates a field value cannot be coerced to the expected type.
	ErrTypeCoercion = errors.New("type coercion failed")
	// ErrMalformedMarkup marks fragments the tolerant HTML parser had to repair.
	// It is informational and never aborts a stage.
	ErrMalformedMarkup = errors.New("malformed markup")
)

// FieldError reports a record-level failure together with the record position
// inside its collection. Index is -1 when the position is unknown.
type FieldError struct {
	Index int
	Field string
	Want  string
	Got   string
	Err   error
}

func (e *FieldError) Error() string {
	var b strings.Builder
	if e.Index >= 0 {
		fmt.Fprintf(&b, "record %d: ", e.Index)
	}
	switch {
	case errors.Is(e.Err, ErrMissingField):
		fmt.Fprintf(&b, "missing field %q", e.Field)
	case errors.Is(e.Err, ErrTypeCoercion):
		if e.Field != "" {
			fmt.Fprintf(&b, "field %q: ", e.Field)
		}
		fmt.Fprintf(&b, "cannot coerce %s to %s", e.Got, e.Want)
	default:
		if e.Field != "" {
			fmt.Fprintf(&b, "field %q: ", e.Field)
		}
		if e.Err != nil {
			b.WriteString(e.Err.Error())
		}
	}
	return b.String()
}

func (e *FieldError) Unwrap() error { return e.Err }

// AtIndex annotates a FieldError with the record position. Other errors are
// returned unchanged.
func AtIndex(err error, index int) error {
	var fe *FieldError
	if !errors.As(err, &fe) {
		return err
	}
	clone := *fe
	clone.Index = index
	return &clone
}

func missingField(field string) *FieldError {
	return &FieldError{Index: -1, Field: field, Err: ErrMissingField}
}

func coercionError(field, want string, raw []byte) *FieldError {
	return &FieldError{Index: -1, Field: field, Want: want, Got: describe(raw), Err: ErrTypeCoercion}
}

const describeLimit = 32

// describe renders a raw JSON value for error messages, truncating long values
// on a rune boundary.
func describe(raw []byte) string {
	s := strings.TrimSpace(string(raw))
	if s == "" {
		return "empty value"
	}
	if len(s) > describeLimit {
		cut := describeLimit
		for cut > 0 && !utf8.RuneStart(s[cut]) {
			cut--
		}
		s = s[:cut] + "..."
	}
	return s
}
