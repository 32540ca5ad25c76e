// Package config defines the JSON-serializable configuration model for the
// attrition pipeline. It is intentionally small, explicit, and dependency-
// free so that a run can be described by a single file under
// configs/pipelines/*.json and decoded with the standard library.
//
// Example (trimmed):
//
//	{
//	  "job":     "attrition_snapshot",
//	  "source":  { "kind": "file", "file": { "path": "data/employees.csv" } },
//	  "parser":  { "kind": "csv", "options": { "trim_space": true } },
//	  "load":    { "policy": "reject-run" },
//	  "storage": { "kind": "sqlite", "db": { "dsn": "attrition.db" } }
//	}
package config

import "encoding/json"

// Pipeline describes one full attrition run. It is the top-level object
// decoded from a pipeline file.
type Pipeline struct {
	// Job names the run; used for metrics labeling and log prefixes.
	Job string `json:"job"`

	// Source describes where the raw employee snapshot comes from.
	Source Source `json:"source"`

	// Parser configures how raw bytes become records (CSV or JSON).
	Parser Parser `json:"parser"`

	// Load controls constraint-violation policy during staging.
	Load Load `json:"load"`

	// Storage describes where cleaned records and aggregate tables are
	// written for the dashboard.
	Storage Storage `json:"storage"`
}

// Source identifies the data source. Only local files are supported; the
// snapshot is assumed to already exist as a tabular export.
type Source struct {
	// Kind selects the source implementation. Current value: "file".
	Kind string `json:"kind"`

	// File carries options for the "file" source kind.
	File SourceFile `json:"file"`
}

// SourceFile holds configuration for the "file" source kind.
type SourceFile struct {
	// Path is the local filesystem path to the input file.
	Path string `json:"path"`
}

// Parser selects how to parse the raw source into records.
type Parser struct {
	// Kind selects the parser implementation: "csv" (default) or "json".
	Kind string `json:"kind"`

	// Options is a free-form map interpreted by the parser implementation.
	// For CSV, recognized keys: comma (string), trim_space (bool),
	// header_map (object, overrides the built-in mapping).
	Options Options `json:"options"`
}

// Load controls how the loader responds to records that violate the field
// contract (ordinal out of range, non-positive income, ...).
type Load struct {
	// Policy is "reject-run" (default; first violation aborts the load) or
	// "reject-record" (violating rows are dropped and reported).
	Policy string `json:"policy"`
}

// Storage selects the sink used to persist cleaned records and aggregates.
type Storage struct {
	// Kind selects the storage implementation: "sqlite" (default),
	// "postgres", or "none" (results emitted to stdout only).
	Kind string `json:"kind"`

	// DB configures the selected database sink.
	DB DBConfig `json:"db"`
}

// DBConfig configures a database sink.
type DBConfig struct {
	// DSN is the connection string: a file path for sqlite, a
	// postgresql:// URL for postgres.
	DSN string `json:"dsn"`

	// TablePrefix prefixes the result tables (default "attrition_by_").
	// The cleaned record table is always "employees".
	TablePrefix string `json:"table_prefix"`
}

// Options is a small helper to fetch typed values from arbitrary JSON maps
// without introducing a configuration library. It performs only minimal
// type coercion and returns the provided default when a key is absent or of
// an unexpected type.
type Options map[string]any

// String returns the string value for key or def if key is missing or not a string.
func (o Options) String(key, def string) string {
	if v, ok := o[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return def
}

// Bool returns the bool value for key or def if key is missing or not a bool.
func (o Options) Bool(key string, def bool) bool {
	if v, ok := o[key]; ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return def
}

// Rune returns the first rune of a string value for key, or def if key is
// missing or empty. Used for single-character parser settings such as the
// CSV delimiter.
func (o Options) Rune(key string, def rune) rune {
	if v, ok := o[key]; ok {
		if s, ok := v.(string); ok && len(s) > 0 {
			return []rune(s)[0]
		}
	}
	return def
}

// StringMap returns a map[string]string for key when the value is an object
// whose values are strings. Non-string values are ignored. Returns an empty
// map when the key is missing or the value is not an object.
func (o Options) StringMap(key string) map[string]string {
	res := map[string]string{}
	if v, ok := o[key]; ok {
		if m, ok := v.(map[string]any); ok {
			for k, vv := range m {
				if s, ok := vv.(string); ok {
					res[k] = s
				}
			}
		}
	}
	return res
}

// UnmarshalJSON implements json.Unmarshaler so that a missing or null
// "options" object decodes to a non-nil, empty Options map. This removes
// nil-checks at call sites.
func (o *Options) UnmarshalJSON(b []byte) error {
	var tmp map[string]any
	if len(b) == 0 || string(b) == "null" {
		*o = Options{}
		return nil
	}
	if err := json.Unmarshal(b, &tmp); err != nil {
		return err
	}
	*o = Options(tmp)
	return nil
}
