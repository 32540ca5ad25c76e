package builtin

import "attrition/pkg/records"

// CapOutliers clamps extreme values of a numeric field to a ceiling derived
// from the field's own distribution: Factor times the mean of the pre-cap
// snapshot. The threshold is computed exactly once per Apply, from all
// non-null values, and capped values do not feed back into it.
//
// Re-running over already-capped data would derive a new, lower-or-equal
// threshold from the clamped distribution, so the driver invokes the stage
// exactly once per snapshot.
type CapOutliers struct {
	Field  string
	Factor float64 // e.g. 3 for a 3×mean ceiling

	// Threshold is set by Apply to the ceiling used for the pass, for
	// logging and tests. Zero until Apply runs or when no values exist.
	Threshold float64

	// Capped is set by Apply to the number of clamped records.
	Capped int
}

func (c *CapOutliers) Apply(in []records.Record) []records.Record {
	var sum float64
	var n int
	for _, r := range in {
		if v, ok := numeric(r[c.Field]); ok {
			sum += v
			n++
		}
	}
	if n == 0 {
		c.Threshold = 0
		c.Capped = 0
		return in
	}

	c.Threshold = c.Factor * sum / float64(n)
	c.Capped = 0
	for _, r := range in {
		if v, ok := numeric(r[c.Field]); ok && v > c.Threshold {
			r[c.Field] = c.Threshold
			c.Capped++
		}
	}
	return in
}

// numeric unwraps the value types the parser and coercion produce.
func numeric(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case int64:
		return float64(t), true
	case int:
		return float64(t), true
	}
	return 0, false
}
