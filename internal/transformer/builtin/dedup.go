package builtin

import (
	"fmt"
	"sort"
	"strings"

	"github.com/zeebo/xxh3"

	"attrition/pkg/records"
)

// DeDup drops exact duplicate rows from a staging batch, keeping the first
// occurrence. Duplicates happen when an export is run twice into the same
// staging file; removing them before identity assignment keeps employee
// numbers dense and group counts honest.
//
// A row's key is the xxh3 hash of its fields serialized in sorted-key
// order, so key equality means field-for-field equality (modulo the
// vanishingly small collision probability of a 128-bit hash).
type DeDup struct {
	// Dropped is set by Apply to the number of removed duplicates.
	Dropped int
}

func (d *DeDup) Apply(in []records.Record) []records.Record {
	if len(in) < 2 {
		d.Dropped = 0
		return in
	}

	seen := make(map[xxh3.Uint128]struct{}, len(in))
	out := in[:0]
	for _, r := range in {
		k := hashRecord(r)
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, r)
	}
	d.Dropped = len(in) - len(out)
	return out
}

func hashRecord(r records.Record) xxh3.Uint128 {
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		b.WriteString(k)
		b.WriteByte('\x1f')
		switch t := r[k].(type) {
		case nil:
			b.WriteByte('\x00')
		case string:
			b.WriteString(t)
		default:
			fmt.Fprint(&b, t)
		}
		b.WriteByte('\x1e')
	}
	return xxh3.Hash128([]byte(b.String()))
}
