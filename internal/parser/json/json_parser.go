// Package json parses employee snapshots exported as JSON: either a
// top-level array of objects or newline-delimited objects (NDJSON). Object
// keys are translated through the same HeaderMap used for CSV so both
// exports produce identical canonical records.
package json

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"attrition/internal/parser"
	"attrition/pkg/records"
)

// Options configures the JSON parser.
type Options struct {
	// HeaderMap maps source object keys to canonical field names. Keys
	// without a mapping are kept verbatim.
	HeaderMap map[string]string
}

// Parser parses a JSON snapshot according to Options.
type Parser struct{ opt Options }

// NewParser constructs a Parser with the provided Options.
func NewParser(opt Options) *Parser { return &Parser{opt: opt} }

// keySet accumulates the batch's declared field set: the union of canonical
// object keys across all records, in first-seen order. JSON has no header
// row, so the union stands in for one — a key present on any object counts
// as declared by the source.
type keySet struct {
	seen  map[string]struct{}
	order []string
}

func newKeySet() *keySet { return &keySet{seen: map[string]struct{}{}} }

func (k *keySet) add(name string) {
	if _, ok := k.seen[name]; ok {
		return
	}
	k.seen[name] = struct{}{}
	k.order = append(k.order, name)
}

// Parse reads the whole stream. A top-level '[' starts an array of objects;
// anything else is treated as a sequence of objects. Numbers decode via
// json.Number and are surfaced as strings so the loader's contract coercion
// treats CSV and JSON cells identically. The skipped count is always zero;
// malformed JSON is fatal rather than soft-skipped, since partial decode
// state is unreliable.
func (p *Parser) Parse(r io.Reader) (parser.Batch, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	ks := newKeySet()

	tok, err := dec.Token()
	if err == io.EOF {
		return parser.Batch{}, nil
	}
	if err != nil {
		return parser.Batch{}, fmt.Errorf("read json: %w", err)
	}

	var out []records.Record
	if d, ok := tok.(json.Delim); ok && d == '[' {
		for dec.More() {
			rec, err := p.decodeObject(dec, ks)
			if err != nil {
				return parser.Batch{}, err
			}
			out = append(out, rec)
		}
		if _, err := dec.Token(); err != nil { // closing ']'
			return parser.Batch{}, fmt.Errorf("read json array end: %w", err)
		}
		return parser.Batch{Records: out, Fields: ks.order}, nil
	}

	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return parser.Batch{}, errors.New("json source must be an array of objects or NDJSON objects")
	}

	// NDJSON: we already consumed the first object's '{'; decode its body,
	// then loop full objects.
	rec, err := p.decodeObjectBody(dec, ks)
	if err != nil {
		return parser.Batch{}, err
	}
	out = append(out, rec)
	for {
		rec, err := p.decodeObject(dec, ks)
		if err == io.EOF {
			return parser.Batch{Records: out, Fields: ks.order}, nil
		}
		if err != nil {
			return parser.Batch{}, err
		}
		out = append(out, rec)
	}
}

func (p *Parser) decodeObject(dec *json.Decoder, ks *keySet) (records.Record, error) {
	tok, err := dec.Token()
	if err == io.EOF {
		return nil, io.EOF
	}
	if err != nil {
		return nil, fmt.Errorf("read json object: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("expected json object, got %v", tok)
	}
	return p.decodeObjectBody(dec, ks)
}

// decodeObjectBody consumes key/value pairs up to and including the
// closing '}'.
func (p *Parser) decodeObjectBody(dec *json.Decoder, ks *keySet) (records.Record, error) {
	rec := records.Record{}
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("read json object: %w", err)
		}
		if d, ok := tok.(json.Delim); ok && d == '}' {
			return rec, nil
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("expected json object key, got %v", tok)
		}
		if mapped, ok := p.opt.HeaderMap[key]; ok && mapped != "" {
			key = mapped
		}
		ks.add(key)

		var raw any
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("read json value for %q: %w", key, err)
		}
		rec[key] = normalizeValue(raw)
	}
}

// normalizeValue flattens decoded values onto the loader's input domain:
// strings stay strings, numbers become their literal string form, booleans
// become "true"/"false", null stays nil. Nested objects/arrays are not
// valid cells and are stringified for the contract to reject.
func normalizeValue(v any) any {
	switch t := v.(type) {
	case nil:
		return nil
	case string:
		if t == "" {
			return nil
		}
		return t
	case json.Number:
		return t.String()
	case bool:
		if t {
			return "true"
		}
		return "false"
	default:
		return fmt.Sprint(t)
	}
}
