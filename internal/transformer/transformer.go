// Package transformer defines the stage contract for the attrition
// pipeline. Each stage consumes the complete output of the previous one;
// the driver owns the record slice and hands it stage to stage, so
// transformers may mutate records in place.
package transformer

import "attrition/pkg/records"

// Transformer is a single pipeline stage.
type Transformer interface {
	Apply([]records.Record) []records.Record
}

// Chain is an ordered list of transformers applied sequentially.
type Chain []Transformer

func (c Chain) Apply(in []records.Record) []records.Record {
	out := in
	for _, t := range c {
		out = t.Apply(out)
	}
	return out
}
