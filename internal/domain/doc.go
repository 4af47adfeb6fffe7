// Package domain contains the core entities and value objects for jsongate.
//
// This package is the innermost layer. It has no dependencies on
// infrastructure concerns (file system, logging, metrics) and contains only
// the record model and the bookkeeping types of a run.
//
// # Entities
//
//   - [User] and [Address]: the typed, validated record
//   - [FieldError] and [ValidationOutcome]: the result of validating one record
//   - [ProcessingResult]: the terminal status of one item in a run
//   - [RunSummary]: the aggregate of a whole run
//
// # Item lifecycle
//
// Every item moves through [ItemState] values:
//
//	Pending -> Decoding -> Valid | Invalid | IOError
//
// The three right-hand states are terminal.
package domain
