package schema

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"regexp"
	"unicode/utf8"

	json "github.com/goccy/go-json"

	"github.com/bft-labs/jsongate/internal/domain"
)

// Validator applies an Object schema to raw records. It has no side effects
// and is safe for concurrent use.
type Validator struct {
	schema Object
}

// NewValidator returns a validator for UserSchema.
func NewValidator() *Validator {
	return &Validator{schema: UserSchema}
}

// Validate decodes data and validates it. Malformed input is reported as
// Invalid with a single root error, never as a Go error.
func (v *Validator) Validate(data []byte) domain.ValidationOutcome {
	raw, err := Decode(data)
	if err != nil {
		return domain.Invalid(domain.FieldError{
			Path:    domain.RootPath,
			Code:    domain.CodeParseError,
			Message: err.Error(),
		})
	}
	return v.ValidateValue(raw)
}

// ValidateValue validates an already decoded value tree. Numbers must be
// json.Number (see Decode).
func (v *Validator) ValidateValue(raw any) domain.ValidationOutcome {
	obj, ok := raw.(map[string]any)
	if !ok {
		return domain.Invalid(domain.FieldError{
			Path:    domain.RootPath,
			Code:    domain.CodeInvalidType,
			Message: fmt.Sprintf("record must be an object, got %s", typeName(raw)),
		})
	}

	values, errs := v.schema.Validate("", obj)
	if len(errs) > 0 {
		return domain.Invalid(errs...)
	}
	return domain.Valid(buildUser(values))
}

// Decode parses exactly one JSON value, keeping numbers as json.Number.
// Empty input, trailing data, invalid UTF-8 and number literals outside the
// JSON grammar (leading zeros, a leading '+', a bare '.') are errors wrapping
// domain.ErrDecode.
//
// A well-formed number too large for the decoder, such as 1E400, also fails
// here. It is therefore reported as a parse error at the root rather than as
// a type error on the field holding it.
func Decode(data []byte) (any, error) {
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("%w: invalid UTF-8", domain.ErrDecode)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty document", domain.ErrDecode)
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrDecode, err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: unexpected data after top-level value", domain.ErrDecode)
	}
	if err := checkNumbers(v); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrDecode, err)
	}
	return v, nil
}

// numberLiteral is the RFC 8259 number grammar.
var numberLiteral = regexp.MustCompile(`^-?(0|[1-9][0-9]*)(\.[0-9]+)?([eE][+-]?[0-9]+)?$`)

// checkNumbers walks the decoded tree and rejects number literals the
// decoder let through but JSON does not allow.
func checkNumbers(v any) error {
	switch t := v.(type) {
	case json.Number:
		if !numberLiteral.MatchString(t.String()) {
			return fmt.Errorf("invalid number literal %q", t.String())
		}
	case map[string]any:
		for _, el := range t {
			if err := checkNumbers(el); err != nil {
				return err
			}
		}
	case []any:
		for _, el := range t {
			if err := checkNumbers(el); err != nil {
				return err
			}
		}
	}
	return nil
}
