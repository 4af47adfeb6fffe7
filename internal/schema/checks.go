package schema

import (
	"fmt"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/bft-labs/jsongate/internal/domain"
)

func typeError(path, want string, v any) domain.FieldErrors {
	return domain.FieldErrors{{
		Path:    path,
		Code:    domain.CodeInvalidType,
		Message: fmt.Sprintf("must be %s, got %s", want, typeName(v)),
	}}
}

func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case json.Number, float64:
		return "number"
	case string:
		return "string"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}

// Integer accepts JSON number literals without fraction or exponent that fit in int64.
func Integer(path string, v any) (any, domain.FieldErrors) {
	n, ok := v.(json.Number)
	if !ok {
		return nil, typeError(path, "an integer", v)
	}
	s := n.String()
	if strings.ContainsAny(s, ".eE") {
		return nil, domain.FieldErrors{{
			Path:    path,
			Code:    domain.CodeInvalidType,
			Message: fmt.Sprintf("must be an integer, got %s", s),
		}}
	}
	i, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil, domain.FieldErrors{{
			Path:    path,
			Code:    domain.CodeInvalidType,
			Message: fmt.Sprintf("integer %s out of range", s),
		}}
	}
	return i, nil
}

// String accepts any JSON string, including the empty string.
func String(path string, v any) (any, domain.FieldErrors) {
	s, ok := v.(string)
	if !ok {
		return nil, typeError(path, "a string", v)
	}
	return s, nil
}

// Boolean accepts JSON true and false only.
func Boolean(path string, v any) (any, domain.FieldErrors) {
	b, ok := v.(bool)
	if !ok {
		return nil, typeError(path, "a boolean", v)
	}
	return b, nil
}

// NonEmptyString accepts strings with at least one character.
func NonEmptyString(path string, v any) (any, domain.FieldErrors) {
	s, errs := String(path, v)
	if errs != nil {
		return nil, errs
	}
	if s.(string) == "" {
		return nil, domain.FieldErrors{{Path: path, Code: domain.CodeTooShort, Message: "must not be empty"}}
	}
	return s, nil
}

// Email accepts strings containing at least one '@'.
func Email(path string, v any) (any, domain.FieldErrors) {
	s, errs := String(path, v)
	if errs != nil {
		return nil, errs
	}
	if !strings.Contains(s.(string), "@") {
		return nil, domain.FieldErrors{{Path: path, Code: domain.CodeInvalidFormat, Message: "invalid email address: missing @"}}
	}
	return s, nil
}

// Digits returns a Check accepting strings of exactly n ASCII digits.
func Digits(n int) Check {
	return func(path string, v any) (any, domain.FieldErrors) {
		s, errs := String(path, v)
		if errs != nil {
			return nil, errs
		}
		str := s.(string)
		for i := 0; i < len(str); i++ {
			if str[i] < '0' || str[i] > '9' {
				return nil, domain.FieldErrors{{
					Path:    path,
					Code:    domain.CodeInvalidFormat,
					Message: fmt.Sprintf("must contain only digits, got %q", str),
				}}
			}
		}
		if len(str) != n {
			return nil, domain.FieldErrors{{
				Path:    path,
				Code:    domain.CodeLength,
				Message: fmt.Sprintf("must be exactly %d digits, got %d", n, len(str)),
			}}
		}
		return str, nil
	}
}

// StringArray accepts arrays whose elements are all strings.
// Every offending element is reported as path[i].
func StringArray(path string, v any) (any, domain.FieldErrors) {
	arr, ok := v.([]any)
	if !ok {
		return nil, typeError(path, "an array of strings", v)
	}
	out := make([]string, 0, len(arr))
	var errs domain.FieldErrors
	for i, el := range arr {
		s, ok := el.(string)
		if !ok {
			errs = append(errs, typeError(fmt.Sprintf("%s[%d]", path, i), "a string", el)...)
			continue
		}
		out = append(out, s)
	}
	if len(errs) > 0 {
		return nil, errs
	}
	return out, nil
}

// Nested returns a Check that validates a JSON object against obj.
func Nested(obj Object) Check {
	return func(path string, v any) (any, domain.FieldErrors) {
		m, ok := v.(map[string]any)
		if !ok {
			return nil, typeError(path, "an object", v)
		}
		values, errs := obj.Validate(path, m)
		if len(errs) > 0 {
			return nil, errs
		}
		return values, nil
	}
}
