package builtin

import (
	"reflect"
	"testing"

	"attrition/internal/schema"
	"attrition/pkg/records"
)

/*
TestEmployeeCategories_Buckets verifies the fixed-boundary bucketing,
including the closed BETWEEN boundaries on both middle ranges:

	years: <3 Short-Term, 3–7 Medium-Term, >7 Long-Term
	income: <3000 Low, 3000–8000 Medium, >8000 High
*/
func TestEmployeeCategories_Buckets(t *testing.T) {
	cases := []struct {
		years      int64
		income     float64
		wantTenure string
		wantSalary string
	}{
		{2, 2500, "Short-Term", "Low"},
		{5, 5000, "Medium-Term", "Medium"},
		{10, 9000, "Long-Term", "High"},
		// Boundary values.
		{0, 2999, "Short-Term", "Low"},
		{3, 3000, "Medium-Term", "Medium"},
		{7, 8000, "Medium-Term", "Medium"},
		{8, 8001, "Long-Term", "High"},
	}

	cat := EmployeeCategories()
	for _, tc := range cases {
		rec := records.Record{
			schema.FieldYearsAtCompany: tc.years,
			schema.FieldMonthlyIncome:  tc.income,
		}
		cat.Apply([]records.Record{rec})
		if got := rec[schema.FieldTenureCategory]; got != tc.wantTenure {
			t.Fatalf("years=%d: tenure=%v; want %v", tc.years, got, tc.wantTenure)
		}
		if got := rec[schema.FieldSalaryCategory]; got != tc.wantSalary {
			t.Fatalf("income=%v: salary=%v; want %v", tc.income, got, tc.wantSalary)
		}
	}
}

/*
TestEmployeeCategories_Totality verifies that every record with a numeric
source value gets exactly one label per dimension, and that null source
values derive no label at all.
*/
func TestEmployeeCategories_Totality(t *testing.T) {
	labels := map[string]struct{}{"Short-Term": {}, "Medium-Term": {}, "Long-Term": {}}
	cat := EmployeeCategories()
	for years := int64(0); years <= 40; years++ {
		rec := records.Record{schema.FieldYearsAtCompany: years}
		cat.Apply([]records.Record{rec})
		got, ok := rec[schema.FieldTenureCategory].(string)
		if !ok {
			t.Fatalf("years=%d: no tenure label derived", years)
		}
		if _, known := labels[got]; !known {
			t.Fatalf("years=%d: unknown label %q", years, got)
		}
	}

	rec := records.Record{schema.FieldYearsAtCompany: nil}
	cat.Apply([]records.Record{rec})
	if _, ok := rec[schema.FieldTenureCategory]; ok {
		t.Fatalf("null years derived a tenure label: %v", rec)
	}
}

/*
TestEmployeeCategories_Idempotent verifies that re-categorizing an
already-categorized record changes nothing.
*/
func TestEmployeeCategories_Idempotent(t *testing.T) {
	rec := records.Record{
		schema.FieldYearsAtCompany: int64(5),
		schema.FieldMonthlyIncome:  float64(5000),
	}
	cat := EmployeeCategories()
	cat.Apply([]records.Record{rec})
	once := rec.Clone()
	cat.Apply([]records.Record{rec})
	if !reflect.DeepEqual(rec, once) {
		t.Fatalf("second pass changed record: %v -> %v", once, rec)
	}
}
