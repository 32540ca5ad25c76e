// Package aggregate computes the per-dimension attrition tables consumed
// by the dashboard. Grouping follows SQL semantics: a null group key forms
// its own group, every record counts toward its group's size, and null
// attrition values are excluded from the attrition sum.
package aggregate

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/shopspring/decimal"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"attrition/internal/schema"
	"attrition/pkg/records"
)

// Dimension names one grouping axis. Field is empty for the overall total.
type Dimension struct {
	Name  string
	Field string
}

// Dimensions are the seven published grouping axes.
var Dimensions = []Dimension{
	{Name: "overall"},
	{Name: "department", Field: schema.FieldDepartment},
	{Name: "salary_category", Field: schema.FieldSalaryCategory},
	{Name: "job_role", Field: schema.FieldJobRole},
	{Name: "tenure_category", Field: schema.FieldTenureCategory},
	{Name: "work_life_balance", Field: schema.FieldWorkLifeBalance},
	{Name: "over_time", Field: schema.FieldOverTime},
}

// Row is one aggregate output row. AttritionRate is a percentage rounded
// half-up to two decimal places; decimal arithmetic keeps 33.335 from
// drifting below the .005 boundary the way binary floats do.
type Row struct {
	GroupKey       string
	TotalEmployees int64
	AttritionCount int64
	AttritionRate  decimal.Decimal
}

// Result is the aggregate table for one dimension, ordered by rate
// descending with ties broken by group key ascending (collated).
type Result struct {
	Dimension Dimension
	Rows      []Row
}

var collator = collate.New(language.English)

// Aggregate groups the record set by dim and computes count, attrition
// count, and rate per group. Groups with zero members cannot occur: every
// group exists because at least one record produced its key.
func Aggregate(recs []records.Record, dim Dimension) Result {
	type acc struct {
		total int64
		attr  int64
	}
	groups := map[string]*acc{}

	for _, r := range recs {
		key := "All"
		if dim.Field != "" {
			key = keyString(r[dim.Field])
		}
		g, ok := groups[key]
		if !ok {
			g = &acc{}
			groups[key] = g
		}
		g.total++
		if n, ok := r[schema.FieldAttrition].(int64); ok && n == 1 {
			g.attr++
		}
	}

	rows := make([]Row, 0, len(groups))
	for key, g := range groups {
		rows = append(rows, Row{
			GroupKey:       key,
			TotalEmployees: g.total,
			AttritionCount: g.attr,
			AttritionRate:  rate(g.attr, g.total),
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if c := rows[i].AttritionRate.Cmp(rows[j].AttritionRate); c != 0 {
			return c > 0
		}
		return collator.CompareString(rows[i].GroupKey, rows[j].GroupKey) < 0
	})
	return Result{Dimension: dim, Rows: rows}
}

// All computes every published dimension in order.
func All(recs []records.Record) []Result {
	out := make([]Result, 0, len(Dimensions))
	for _, d := range Dimensions {
		out = append(out, Aggregate(recs, d))
	}
	return out
}

// rate is round_half_up(100 × attr ÷ total, 2).
func rate(attr, total int64) decimal.Decimal {
	return decimal.NewFromInt(100 * attr).DivRound(decimal.NewFromInt(total), 2)
}

// keyString renders a group value the way the result table stores it.
// Only a nil value maps to the empty key — its own group, mirroring GROUP
// BY over a NULL column; unexpected value types are stringified so they
// can never merge into the null group.
func keyString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprint(t)
	}
}
