// Package schema defines the field contract for the employee snapshot:
// canonical field names, types, required flags, ordinal bounds, and the
// header mapping from raw CSV column names. The load stage enforces the
// contract; later stages may assume it holds.
package schema

// Field describes one column of the canonical record.
type Field struct {
	Name     string `json:"name"`
	Type     string `json:"type"` // "int" | "real" | "text" | "bool"
	Required bool   `json:"required,omitempty"`
	Nullable bool   `json:"nullable,omitempty"`

	// Positive requires a value strictly greater than zero (monthly income,
	// age). NonNegative admits zero (distances, tenure years).
	Positive    bool `json:"positive,omitempty"`
	NonNegative bool `json:"non_negative,omitempty"`

	// Min/Max bound ordinal rating fields as a closed range. Both zero means
	// unbounded.
	Min int64 `json:"min,omitempty"`
	Max int64 `json:"max,omitempty"`
}

// Contract is an ordered field list plus the raw-header mapping.
type Contract struct {
	Name      string            `json:"name"`
	Fields    []Field           `json:"fields"`
	HeaderMap map[string]string `json:"header_map,omitempty"`
}

// FieldNames returns the contract's canonical field names in declaration order.
func (c Contract) FieldNames() []string {
	out := make([]string, len(c.Fields))
	for i, f := range c.Fields {
		out[i] = f.Name
	}
	return out
}

// Lookup returns the field definition for name, if declared.
func (c Contract) Lookup(name string) (Field, bool) {
	for _, f := range c.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Bounded reports whether the field declares a closed ordinal range.
func (f Field) Bounded() bool { return f.Min != 0 || f.Max != 0 }
