package json

import (
	"reflect"
	"strings"
	"testing"
)

/*
TestParse_Array verifies parsing of a top-level array of objects:
  - keys are mapped to canonical names,
  - numbers surface as their literal string form (coercion happens in the
    loader, identically to CSV cells),
  - null and empty-string values become nil,
  - the declared field set is the union of keys in first-seen order.
*/
func TestParse_Array(t *testing.T) {
	input := `[
		{"Age": 34, "Attrition": "Yes", "Department": "Sales"},
		{"Age": 41, "Attrition": "No", "Department": null},
		{"Age": 29, "Attrition": "No", "Department": ""}
	]`

	p := NewParser(Options{HeaderMap: map[string]string{"Age": "age", "Attrition": "attrition", "Department": "department"}})
	batch, err := p.Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if batch.Skipped != 0 {
		t.Fatalf("skipped=%d; want 0", batch.Skipped)
	}
	if len(batch.Records) != 3 {
		t.Fatalf("len(records)=%d; want 3", len(batch.Records))
	}
	if want := []string{"age", "attrition", "department"}; !reflect.DeepEqual(batch.Fields, want) {
		t.Fatalf("fields=%v; want %v", batch.Fields, want)
	}
	if got := batch.Records[0]["age"]; got != "34" {
		t.Fatalf("age=%v (%T); want \"34\"", got, got)
	}
	if batch.Records[1]["department"] != nil || batch.Records[2]["department"] != nil {
		t.Fatalf("null/empty department=%v,%v; want nil", batch.Records[1]["department"], batch.Records[2]["department"])
	}
}

/*
TestParse_NDJSON verifies newline-delimited objects parse identically to
an array, and that an empty stream yields no records, no fields, and no
error.
*/
func TestParse_NDJSON(t *testing.T) {
	input := "{\"Age\": 34}\n{\"Age\": 41}\n"
	p := NewParser(Options{HeaderMap: map[string]string{"Age": "age"}})
	batch, err := p.Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(batch.Records) != 2 || batch.Records[1]["age"] != "41" {
		t.Fatalf("records=%v; want two rows", batch.Records)
	}

	empty, err := p.Parse(strings.NewReader(""))
	if err != nil || len(empty.Records) != 0 || len(empty.Fields) != 0 {
		t.Fatalf("empty stream: batch=%+v err=%v", empty, err)
	}
}

/*
TestParse_FieldsUnion verifies that a key omitted from the first object
but present on a later one still counts as declared by the source. An
object stream has no header row; the union of keys stands in for one, so
a sparse first record must not narrow the field set.
*/
func TestParse_FieldsUnion(t *testing.T) {
	input := "{\"Age\": 34}\n{\"Age\": 41, \"Attrition\": \"Yes\"}\n"
	p := NewParser(Options{HeaderMap: map[string]string{"Age": "age", "Attrition": "attrition"}})
	batch, err := p.Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if want := []string{"age", "attrition"}; !reflect.DeepEqual(batch.Fields, want) {
		t.Fatalf("fields=%v; want %v", batch.Fields, want)
	}
	if _, ok := batch.Records[0]["attrition"]; ok {
		t.Fatalf("sparse record grew a key: %v", batch.Records[0])
	}
}

/*
TestParse_Rejects verifies that non-object top-level values are rejected.
*/
func TestParse_Rejects(t *testing.T) {
	p := NewParser(Options{})
	if _, err := p.Parse(strings.NewReader(`"just a string"`)); err == nil {
		t.Fatalf("want error for non-object input")
	}
	if _, err := p.Parse(strings.NewReader(`[1, 2]`)); err == nil {
		t.Fatalf("want error for array of non-objects")
	}
}
