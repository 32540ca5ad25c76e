// Package csv parses the employee snapshot export. The first row must be a
// header; header names are translated to canonical field names via the
// configured HeaderMap, and empty cells become nil so downstream null
// accounting sees them.
package csv

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"attrition/internal/parser"
	"attrition/pkg/records"
)

// Options configures the CSV parser. All fields are optional; sensible
// defaults are applied when a field is zero.
type Options struct {
	// Comma specifies the field delimiter. When zero, ',' is used.
	Comma rune

	// TrimSpace trims leading/trailing spaces from each field value.
	TrimSpace bool

	// HeaderMap maps source header names to canonical keys. Headers without
	// a mapping are kept verbatim.
	HeaderMap map[string]string
}

// Parser parses CSV input according to Options. It is safe to reuse across
// inputs, but Parser itself is not concurrency-safe.
type Parser struct{ opt Options }

// NewParser constructs a Parser with the provided Options.
func NewParser(opt Options) *Parser { return &Parser{opt: opt} }

// Parse consumes CSV records from r. The header row is mandatory and
// becomes the batch's declared field set; a read failure there is fatal.
// Rows with a field count differing from the header are skipped and
// counted.
func (p *Parser) Parse(r io.Reader) (parser.Batch, error) {
	cr := csv.NewReader(r)
	if p.opt.Comma != 0 {
		cr.Comma = p.opt.Comma
	}
	cr.FieldsPerRecord = -1 // width enforced against the header below
	cr.ReuseRecord = true

	h, err := cr.Read()
	if err != nil {
		return parser.Batch{}, fmt.Errorf("read csv header: %w", err)
	}
	headers := p.canonicalHeaders(h)
	batch := parser.Batch{Fields: headers}

	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return batch, fmt.Errorf("read csv row: %w", err)
		}
		if len(row) != len(headers) {
			batch.Skipped++
			continue
		}
		rec := make(records.Record, len(headers))
		for i, name := range headers {
			v := row[i]
			if p.opt.TrimSpace {
				v = strings.TrimSpace(v)
			}
			if v == "" {
				rec[name] = nil
				continue
			}
			rec[name] = v
		}
		batch.Records = append(batch.Records, rec)
	}
	return batch, nil
}

func (p *Parser) canonicalHeaders(h []string) []string {
	headers := StripHeaderBOM(append([]string(nil), h...))
	for i, raw := range headers {
		name := strings.TrimSpace(raw)
		if mapped, ok := p.opt.HeaderMap[name]; ok && mapped != "" {
			name = mapped
		}
		headers[i] = name
	}
	return headers
}
