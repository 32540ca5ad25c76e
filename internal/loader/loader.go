// Package loader turns parsed staging rows into the canonical employee
// record set. It is the single place where the field contract is enforced:
// a required field missing from the source header aborts the run before
// any record is materialized, and a value outside its declared bounds is
// handled per the configured policy. Identity numbers are assigned here, in
// load order starting at 1, and supersede any identifier in the source.
package loader

import (
	"strconv"
	"strings"

	"attrition/internal/schema"
	"attrition/pkg/records"
)

// Policy selects how constraint violations are handled.
const (
	PolicyRejectRun    = "reject-run"    // first violation aborts the load
	PolicyRejectRecord = "reject-record" // violating rows are dropped and reported
)

// RejectedRow describes a staging row dropped under PolicyRejectRecord.
type RejectedRow struct {
	Line   int // 1-based data row number
	Raw    records.Record
	Reason string
}

// Loader validates, coerces, and numbers staging rows.
type Loader struct {
	Contract schema.Contract
	Policy   string            // PolicyRejectRun (default) or PolicyRejectRecord
	Reject   func(RejectedRow) // optional sink, used by PolicyRejectRecord

	// Rejected is set by Load to the number of dropped rows.
	Rejected int
}

// Load produces the canonical record set. fields is the field set the
// source declared (the parsed batch's Fields); the contract is enforced
// against it before any record is touched, so a snapshot missing a
// required column fails even when it carries zero data rows. On success
// the input slice must be considered consumed: records are mutated in
// place and the caller's raw view of them is no longer meaningful.
func (l *Loader) Load(fields []string, in []records.Record) ([]records.Record, error) {
	l.Rejected = 0

	if err := l.checkFields(fields); err != nil {
		return nil, err
	}

	out := make([]records.Record, 0, len(in))
	for i, rec := range in {
		line := i + 1
		if err := l.coerceRecord(rec, line); err != nil {
			if l.Policy == PolicyRejectRecord {
				l.Rejected++
				if l.Reject != nil {
					l.Reject(RejectedRow{Line: line, Raw: rec, Reason: err.Error()})
				}
				continue
			}
			return nil, err
		}
		out = append(out, rec)
	}

	for i, rec := range out {
		rec[schema.FieldEmployeeNumber] = int64(i + 1)
	}
	return out, nil
}

// checkFields verifies that every required contract field appears in the
// source's declared field set.
func (l *Loader) checkFields(fields []string) error {
	declared := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		declared[f] = struct{}{}
	}
	for _, f := range l.Contract.Fields {
		if !f.Required {
			continue
		}
		if _, ok := declared[f.Name]; !ok {
			return &schema.SchemaMismatchError{Field: f.Name, Source: l.Contract.Name}
		}
	}
	return nil
}

// coerceRecord rewrites cell values onto the contract's types and checks
// bounds. Nil cells are left alone; null accounting belongs to the
// integrity check, not the loader.
func (l *Loader) coerceRecord(r records.Record, line int) error {
	for _, f := range l.Contract.Fields {
		v, ok := r[f.Name]
		if !ok || v == nil {
			continue
		}

		switch f.Type {
		case "int":
			n, err := toInt(v)
			if err != nil {
				return &schema.ConstraintViolationError{Field: f.Name, Value: v, Line: line, Reason: "not an integer"}
			}
			r[f.Name] = n
			if err := checkBounds(f, float64(n)); err != "" {
				return &schema.ConstraintViolationError{Field: f.Name, Value: n, Line: line, Reason: err}
			}
		case "real":
			x, err := toFloat(v)
			if err != nil {
				return &schema.ConstraintViolationError{Field: f.Name, Value: v, Line: line, Reason: "not numeric"}
			}
			r[f.Name] = x
			if err := checkBounds(f, x); err != "" {
				return &schema.ConstraintViolationError{Field: f.Name, Value: x, Line: line, Reason: err}
			}
		case "text", "bool", "":
			// kept as-is; yes/no text is normalized by the next stage
		}
	}
	return nil
}

func checkBounds(f schema.Field, v float64) string {
	if f.Positive && v <= 0 {
		return "must be positive"
	}
	if f.NonNegative && v < 0 {
		return "must not be negative"
	}
	if f.Bounded() && (v < float64(f.Min) || v > float64(f.Max)) {
		return "outside range " + strconv.FormatInt(f.Min, 10) + ".." + strconv.FormatInt(f.Max, 10)
	}
	return ""
}

func toInt(v any) (int64, error) {
	switch t := v.(type) {
	case int64:
		return t, nil
	case int:
		return int64(t), nil
	case float64:
		return int64(t), nil
	case string:
		return strconv.ParseInt(strings.TrimSpace(t), 10, 64)
	}
	return 0, strconv.ErrSyntax
}

func toFloat(v any) (float64, error) {
	switch t := v.(type) {
	case float64:
		return t, nil
	case int64:
		return float64(t), nil
	case int:
		return float64(t), nil
	case string:
		return strconv.ParseFloat(strings.TrimSpace(t), 64)
	}
	return 0, strconv.ErrSyntax
}
