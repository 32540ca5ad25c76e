package builtin

import (
	"testing"

	"attrition/internal/schema"
	"attrition/pkg/records"
)

func incomes(vs ...float64) []records.Record {
	out := make([]records.Record, len(vs))
	for i, v := range vs {
		out[i] = records.Record{schema.FieldMonthlyIncome: v}
	}
	return out
}

/*
TestCapOutliers verifies the single-pass capping semantics:
  - the threshold is Factor × mean of the pre-cap values, computed once,
  - every value above the threshold is clamped to exactly the threshold,
  - values at or below the threshold are untouched,
  - capped values do not feed back into a revised mean.
*/
func TestCapOutliers(t *testing.T) {
	// mean = (1000+2000+3000+30000)/4 = 9000; threshold = 27000.
	recs := incomes(1000, 2000, 3000, 30000)

	c := &CapOutliers{Field: schema.FieldMonthlyIncome, Factor: 3}
	c.Apply(recs)

	if c.Threshold != 27000 {
		t.Fatalf("threshold=%v; want 27000", c.Threshold)
	}
	if c.Capped != 1 {
		t.Fatalf("capped=%d; want 1", c.Capped)
	}
	want := []float64{1000, 2000, 3000, 27000}
	for i, rec := range recs {
		if got := rec[schema.FieldMonthlyIncome]; got != want[i] {
			t.Fatalf("record %d income=%v; want %v", i, got, want[i])
		}
	}

	// Post-condition from the pre-cap distribution.
	for i, rec := range recs {
		if v := rec[schema.FieldMonthlyIncome].(float64); v > c.Threshold {
			t.Fatalf("record %d income %v exceeds threshold %v", i, v, c.Threshold)
		}
	}
}

/*
TestCapOutliers_NullsAndEmpty verifies that null incomes are excluded from
the mean and left unclamped, and that an all-null or empty snapshot is a
no-op with a zero threshold.
*/
func TestCapOutliers_NullsAndEmpty(t *testing.T) {
	recs := incomes(3000, 9000)
	recs = append(recs, records.Record{schema.FieldMonthlyIncome: nil})

	c := &CapOutliers{Field: schema.FieldMonthlyIncome, Factor: 3}
	c.Apply(recs)
	// mean over non-null values = 6000; threshold 18000; nothing above it.
	if c.Threshold != 18000 || c.Capped != 0 {
		t.Fatalf("threshold=%v capped=%d; want 18000, 0", c.Threshold, c.Capped)
	}
	if recs[2][schema.FieldMonthlyIncome] != nil {
		t.Fatalf("null income was rewritten: %v", recs[2])
	}

	empty := &CapOutliers{Field: schema.FieldMonthlyIncome, Factor: 3}
	out := empty.Apply(nil)
	if len(out) != 0 || empty.Threshold != 0 {
		t.Fatalf("empty snapshot: out=%v threshold=%v", out, empty.Threshold)
	}
}

/*
TestCapOutliers_IntegerIncome verifies that integer-typed values are read
into the mean and that clamping rewrites them as float64 thresholds.
*/
func TestCapOutliers_IntegerIncome(t *testing.T) {
	recs := []records.Record{
		{schema.FieldMonthlyIncome: int64(1000)},
		{schema.FieldMonthlyIncome: int64(11000)},
	}
	c := &CapOutliers{Field: schema.FieldMonthlyIncome, Factor: 1}
	c.Apply(recs)
	// mean = 6000, factor 1 → threshold 6000.
	if c.Threshold != 6000 {
		t.Fatalf("threshold=%v; want 6000", c.Threshold)
	}
	if got := recs[1][schema.FieldMonthlyIncome]; got != float64(6000) {
		t.Fatalf("clamped value=%v (%T); want 6000.0", got, got)
	}
	if got := recs[0][schema.FieldMonthlyIncome]; got != int64(1000) {
		t.Fatalf("unclamped value=%v (%T); want untouched int64", got, got)
	}
}
