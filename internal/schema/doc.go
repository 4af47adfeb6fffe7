// Package schema declares the record schema and validates raw input against it.
//
// A schema is an [Object]: an ordered list of [Field] rules evaluated over the
// generic value tree produced by a number-preserving JSON decode. Every rule
// runs; the validator collects all field errors instead of stopping at the
// first one. There is no implicit coercion: the string "42" is not an integer
// and 1.0 is not an integer either.
//
//	v := schema.NewValidator()
//	out := v.Validate(raw)
//	if !out.IsValid() {
//	    for _, fe := range out.Errors {
//	        fmt.Println(fe.Path, fe.Message)
//	    }
//	}
package schema
