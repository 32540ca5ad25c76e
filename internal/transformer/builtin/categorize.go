package builtin

import (
	"attrition/internal/schema"
	"attrition/pkg/records"
)

// Derivation derives one categorical field from one numeric field by
// splitting the axis into three ranges:
//
//	v < Lo           → Low label
//	Lo ≤ v ≤ Hi      → Mid label
//	v > Hi           → High label
//
// The middle range is closed on both ends (BETWEEN semantics); the three
// ranges partition the axis, so every record gets exactly one label.
type Derivation struct {
	From string
	Into string

	Lo, Hi         float64
	Low, Mid, High string
}

func (d Derivation) label(v float64) string {
	switch {
	case v < d.Lo:
		return d.Low
	case v <= d.Hi:
		return d.Mid
	default:
		return d.High
	}
}

// Categorize derives categorical fields from numeric ones by fixed-boundary
// bucketing. Pure per record: the derived key is overwritten
// deterministically, so reapplication is a no-op.
type Categorize struct {
	Derivations []Derivation
}

func (c Categorize) Apply(in []records.Record) []records.Record {
	for _, r := range in {
		for _, d := range c.Derivations {
			v, ok := numeric(r[d.From])
			if !ok {
				continue
			}
			r[d.Into] = d.label(v)
		}
	}
	return in
}

// EmployeeCategories returns the tenure and salary derivations used by the
// attrition analysis: years at company <3 / 3–7 / >7 and monthly income
// <3000 / 3000–8000 / >8000.
func EmployeeCategories() Categorize {
	return Categorize{Derivations: []Derivation{
		{
			From: schema.FieldYearsAtCompany,
			Into: schema.FieldTenureCategory,
			Lo:   3, Hi: 7,
			Low: "Short-Term", Mid: "Medium-Term", High: "Long-Term",
		},
		{
			From: schema.FieldMonthlyIncome,
			Into: schema.FieldSalaryCategory,
			Lo:   3000, Hi: 8000,
			Low: "Low", Mid: "Medium", High: "High",
		},
	}}
}
