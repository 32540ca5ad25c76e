// Package builtin contains the reusable transform stages of the attrition
// pipeline: normalization, de-duplication, outlier capping, and
// categorization. All stages are total functions over valid input; only the
// optional warning sink reports suspect values.
package builtin

import (
	"fmt"
	"strings"

	"attrition/internal/schema"
	"attrition/pkg/records"
)

// Warning flags a value the normalizer accepted but could not confidently
// map, e.g. a yes/no field defaulting to 0 or a mixed-case gender label
// passing through unchanged.
type Warning struct {
	Field string
	Value any
	Note  string
}

func (w Warning) String() string {
	return fmt.Sprintf("field %q value %v: %s", w.Field, w.Value, w.Note)
}

// yes/no fields are matched case-insensitively; everything else in the
// record keeps its case-sensitive source form.
var yesNoFields = []string{schema.FieldAttrition, schema.FieldOverTime}

// businessTravel rewrites raw export labels to display names. Canonical
// outputs never re-match a key, so the rewrite is idempotent.
var businessTravel = map[string]string{
	"Travel_Rarely":     "Rarely",
	"Travel_Frequently": "Frequently",
	"Non-Travel":        "No Travel",
}

// gender and maritalStatus are matched case-sensitively, mirroring the
// source system's behavior. "male" stays "male" and is surfaced as a
// warning rather than silently folded.
var (
	gender        = map[string]string{"Male": "M", "Female": "F"}
	maritalStatus = map[string]string{"Single": "S", "Married": "M", "Divorced": "D"}
)

// Normalize rewrites textual encodings into canonical scalar ones:
// yes/no flags to 0/1, business travel to display labels, gender and
// marital status to one-letter codes. It never fails; applying it twice
// yields the same records as applying it once.
type Normalize struct {
	// Warn, when set, receives a Warning for every value that fell through
	// to a default or passed through unmapped.
	Warn func(Warning)
}

func (n Normalize) Apply(in []records.Record) []records.Record {
	for _, r := range in {
		for _, f := range yesNoFields {
			n.normalizeYesNo(r, f)
		}
		n.rewrite(r, schema.FieldBusinessTravel, businessTravel, nil)
		n.rewrite(r, schema.FieldGender, gender, map[string]struct{}{"M": {}, "F": {}})
		n.rewrite(r, schema.FieldMaritalStatus, maritalStatus, map[string]struct{}{"S": {}, "M": {}, "D": {}})
	}
	return in
}

// normalizeYesNo maps case-insensitive "yes" to 1 and anything else to 0.
// Values already normalized (ints) and nulls are left untouched so the
// stage is idempotent and null counts stay visible to the integrity check.
func (n Normalize) normalizeYesNo(r records.Record, field string) {
	v, ok := r[field]
	if !ok || v == nil {
		return
	}
	s, isStr := v.(string)
	if !isStr {
		return
	}
	if strings.EqualFold(s, "yes") {
		r[field] = int64(1)
		return
	}
	if !strings.EqualFold(s, "no") && n.Warn != nil {
		n.Warn(Warning{Field: field, Value: s, Note: "unrecognized yes/no value defaulted to 0"})
	}
	r[field] = int64(0)
}

// rewrite applies an exact-match lookup; unmatched values pass through
// unchanged. canonical lists already-normalized outputs that should not be
// warned about on a second application.
func (n Normalize) rewrite(r records.Record, field string, lookup map[string]string, canonical map[string]struct{}) {
	v, ok := r[field]
	if !ok || v == nil {
		return
	}
	s, isStr := v.(string)
	if !isStr || s == "" {
		return
	}
	if mapped, ok := lookup[s]; ok {
		r[field] = mapped
		return
	}
	if canonical != nil {
		if _, ok := canonical[s]; ok {
			return
		}
		if n.Warn != nil {
			n.Warn(Warning{Field: field, Value: s, Note: "no case-sensitive mapping; passed through unchanged"})
		}
	}
}
