package transformer

import (
	"testing"

	"attrition/pkg/records"
)

type appendStage struct{ key, val string }

func (s appendStage) Apply(in []records.Record) []records.Record {
	for _, r := range in {
		r[s.key] = s.val
	}
	return in
}

type dropAll struct{}

func (dropAll) Apply(in []records.Record) []records.Record { return in[:0] }

/*
TestChain verifies ordered application: later stages see earlier stages'
mutations, a stage may shrink the slice, and an empty chain is the
identity.
*/
func TestChain(t *testing.T) {
	rec := records.Record{}
	out := Chain{appendStage{"a", "1"}, appendStage{"a", "2"}, appendStage{"b", "x"}}.Apply([]records.Record{rec})
	if len(out) != 1 || rec["a"] != "2" || rec["b"] != "x" {
		t.Fatalf("chain result=%v", rec)
	}

	if out := (Chain{appendStage{"a", "1"}, dropAll{}}).Apply([]records.Record{{}}); len(out) != 0 {
		t.Fatalf("drop stage kept records: %v", out)
	}

	in := []records.Record{{"k": "v"}}
	if out := (Chain{}).Apply(in); len(out) != 1 || out[0]["k"] != "v" {
		t.Fatalf("empty chain changed input: %v", out)
	}
}
