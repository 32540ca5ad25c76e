// Package records defines the row currency shared by every pipeline stage.
package records

// Record is a single row keyed by canonical field name. Values are the
// loosely typed results of parsing and coercion: string, int64, float64,
// bool, or nil for a missing/null cell.
type Record map[string]any

// Clone returns a shallow copy of r. Transformers mutate records in place,
// so callers that need the pre-transform view must clone first.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}
