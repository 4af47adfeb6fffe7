package domain

import (
	"fmt"
	"strings"
)

// Issue codes carried by FieldError.
const (
	CodeParseError    = "parse_error"
	CodeRequired      = "required"
	CodeInvalidType   = "invalid_type"
	CodeInvalidFormat = "invalid_format"
	CodeLength        = "length"
	CodeTooShort      = "too_short"
	CodeConflict      = "conflict"
)

// RootPath is the path reported for errors that concern the whole document.
const RootPath = "$"

// FieldError is a single rule violation on a field path such as
// "address.postCode".
type FieldError struct {
	Path    string `json:"path" yaml:"path"`
	Code    string `json:"code" yaml:"code"`
	Message string `json:"message" yaml:"message"`
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s (%s)", e.Path, e.Message, e.Code)
}

// FieldErrors is a collection of field errors that implements error.
type FieldErrors []FieldError

// Error summarizes the first few errors.
func (fe FieldErrors) Error() string {
	if len(fe) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	lim := min(len(fe), maxShown)
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		fmt.Fprintf(b, "%s at %s", fe[i].Code, fe[i].Path)
	}
	if len(fe) > lim {
		fmt.Fprintf(b, "; ... (total %d)", len(fe))
	}
	return b.String()
}

// Paths returns the field paths in the order they were reported.
func (fe FieldErrors) Paths() []string {
	out := make([]string, 0, len(fe))
	for _, e := range fe {
		out = append(out, e.Path)
	}
	return out
}

// Has reports whether any error names the given path.
func (fe FieldErrors) Has(path string) bool {
	for _, e := range fe {
		if e.Path == path {
			return true
		}
	}
	return false
}

// ValidationOutcome is either Valid (User set, Errors empty) or Invalid
// (User nil, at least one error). Construct it with Valid or Invalid.
type ValidationOutcome struct {
	User   *User
	Errors FieldErrors
}

// Valid wraps a validated user.
func Valid(u User) ValidationOutcome {
	return ValidationOutcome{User: &u}
}

// Invalid wraps one or more field errors.
func Invalid(errs ...FieldError) ValidationOutcome {
	return ValidationOutcome{Errors: FieldErrors(errs)}
}

// IsValid reports whether the outcome carries a validated user.
func (o ValidationOutcome) IsValid() bool {
	return o.User != nil && len(o.Errors) == 0
}

// Kind maps the outcome to its terminal item state.
func (o ValidationOutcome) Kind() ItemState {
	if o.IsValid() {
		return StateValid
	}
	return StateInvalid
}
