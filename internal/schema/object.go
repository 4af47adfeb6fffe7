package schema

import (
	"github.com/bft-labs/jsongate/internal/domain"
)

// Check validates one decoded value found at path and returns its normalized
// form (int64, string, bool, []string or map[string]any for nested objects).
type Check func(path string, v any) (any, domain.FieldErrors)

// Field is one rule of an Object.
type Field struct {
	// Name is the canonical key. Error paths always use it.
	Name string

	// Aliases are alternative keys accepted when Name is absent.
	Aliases []string

	Required bool

	// NullAsAbsent treats an explicit null like a missing key.
	NullAsAbsent bool

	// Default produces the value used when the key is absent.
	Default func() any

	Check Check
}

// Object is an ordered list of field rules. Unknown keys are ignored.
type Object struct {
	Fields []Field
}

// Validate checks every field of obj and returns the normalized values keyed
// by canonical name. Absent optional fields without a default are omitted.
func (o Object) Validate(path string, obj map[string]any) (map[string]any, domain.FieldErrors) {
	values := make(map[string]any, len(o.Fields))
	var errs domain.FieldErrors

	for _, f := range o.Fields {
		fp := join(path, f.Name)

		raw, present, conflict := lookup(obj, f)
		if conflict != "" {
			errs = append(errs, domain.FieldError{
				Path:    fp,
				Code:    domain.CodeConflict,
				Message: "both " + f.Name + " and " + conflict + " are set",
			})
			continue
		}
		if present && raw == nil && f.NullAsAbsent {
			present = false
		}

		if !present {
			switch {
			case f.Required:
				errs = append(errs, domain.FieldError{Path: fp, Code: domain.CodeRequired, Message: "field required"})
			case f.Default != nil:
				values[f.Name] = f.Default()
			}
			continue
		}

		v, ferrs := f.Check(fp, raw)
		if len(ferrs) > 0 {
			errs = append(errs, ferrs...)
			continue
		}
		values[f.Name] = v
	}

	return values, errs
}

// lookup finds the field under its canonical name or one of its aliases.
// conflict names the alias when both spellings are present.
func lookup(obj map[string]any, f Field) (v any, present bool, conflict string) {
	v, present = obj[f.Name]
	for _, alias := range f.Aliases {
		av, ok := obj[alias]
		if !ok {
			continue
		}
		if present {
			return nil, false, alias
		}
		v, present = av, true
	}
	return v, present, ""
}

func join(path, name string) string {
	if path == "" {
		return name
	}
	return path + "." + name
}
