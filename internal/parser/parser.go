// Package parser defines the contract shared by the source parsers. A
// parser turns raw bytes into a batch of records keyed by canonical field
// names.
package parser

import (
	"io"

	"attrition/pkg/records"
)

// Batch is one parsed snapshot. Fields is the canonical field set the
// source declared — the CSV header, or the union of object keys for JSON —
// and is populated even when the source carries zero data rows, so the
// load stage can enforce the field contract on an empty snapshot.
type Batch struct {
	Records []records.Record
	Fields  []string
	Skipped int // malformed rows dropped
}

type Parser interface {
	Parse(r io.Reader) (Batch, error)
}
