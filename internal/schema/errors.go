package schema

import "fmt"

// SchemaMismatchError reports a required field missing from the raw source
// header. It is fatal: the load aborts before any record is materialized.
type SchemaMismatchError struct {
	Field  string
	Source string
}

func (e *SchemaMismatchError) Error() string {
	return fmt.Sprintf("schema mismatch: required field %q absent from source %q", e.Field, e.Source)
}

// ConstraintViolationError reports a record value outside its contract
// bounds: an ordinal rating off its closed range, or a non-positive value
// where positivity is required.
type ConstraintViolationError struct {
	Field  string
	Value  any
	Line   int // 1-based data row number within the source
	Reason string
}

func (e *ConstraintViolationError) Error() string {
	return fmt.Sprintf("constraint violation: row %d field %q value %v: %s", e.Line, e.Field, e.Value, e.Reason)
}
