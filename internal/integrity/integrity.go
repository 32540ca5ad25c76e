// Package integrity reports data-quality diagnostics over the canonical
// record set. It never mutates records and never fails; the pipeline logs
// its findings and carries on, since downstream aggregation handles nulls
// with SQL semantics (excluded from sums, counted in group sizes).
package integrity

import (
	"attrition/internal/schema"
	"attrition/pkg/records"
)

// RequiredFields is the fixed checklist of fields whose null counts the
// analysis depends on being zero.
var RequiredFields = []string{
	schema.FieldAge,
	schema.FieldAttrition,
	schema.FieldBusinessTravel,
	schema.FieldDistanceFromHome,
}

// Check counts missing (nil or absent) values per field. The returned map
// has an entry for every requested field, including zero counts.
func Check(recs []records.Record, fields []string) map[string]int {
	counts := make(map[string]int, len(fields))
	for _, f := range fields {
		counts[f] = 0
	}
	for _, r := range recs {
		for _, f := range fields {
			if v, ok := r[f]; !ok || v == nil {
				counts[f]++
			}
		}
	}
	return counts
}
