// Package config provides configuration models and helpers for attrition runs.
//
// This file adds a lightweight linter/validator for Pipeline values. It
// performs static checks over a decoded Pipeline and returns a list of
// issues (errors and warnings) that callers can surface in a CLI or tests.
package config

import (
	"fmt"
	"strings"
)

// IssueSeverity represents the severity of a configuration issue.
type IssueSeverity string

const (
	// SeverityError indicates a configuration error that should block execution.
	SeverityError IssueSeverity = "error"
	// SeverityWarning indicates a configuration warning that should be surfaced
	// to users but may not necessarily block execution.
	SeverityWarning IssueSeverity = "warning"
)

// Issue describes a single validation finding for a Pipeline.
//
// Path is a dotted path into the config (e.g. "storage.kind"). Message is
// human-readable.
type Issue struct {
	Severity IssueSeverity
	Path     string
	Message  string
}

// Error implements the error interface so an Issue can be treated as a
// single error where one is expected.
func (i Issue) Error() string {
	return fmt.Sprintf("%s at %s: %s", i.Severity, i.Path, i.Message)
}

// ValidatePipeline performs static validation of a Pipeline. It does not
// mutate the pipeline; callers decide whether warnings are fatal.
func ValidatePipeline(p Pipeline) []Issue {
	var issues []Issue

	if strings.TrimSpace(p.Job) == "" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "job",
			Message:  "job must not be empty; it is used for metrics labeling and identifying runs",
		})
	}
	issues = append(issues, validateSource(p.Source)...)
	issues = append(issues, validateParser(p.Parser)...)
	issues = append(issues, validateLoad(p.Load)...)
	issues = append(issues, validateStorage(p.Storage)...)

	return issues
}

func validateSource(s Source) []Issue {
	var issues []Issue

	// Unknown kinds are warnings for forward compatibility; empty defaults
	// to file.
	if s.Kind != "" && s.Kind != "file" {
		issues = append(issues, Issue{
			Severity: SeverityWarning,
			Path:     "source.kind",
			Message:  fmt.Sprintf("unknown source kind %q; ensure a matching implementation exists", s.Kind),
		})
	}

	if (s.Kind == "" || s.Kind == "file") && strings.TrimSpace(s.File.Path) == "" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "source.file.path",
			Message:  "file source requires a non-empty path",
		})
	}

	return issues
}

func validateParser(p Parser) []Issue {
	var issues []Issue

	switch p.Kind {
	case "", "csv", "json":
		// ok; empty defaults to csv
	default:
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "parser.kind",
			Message:  fmt.Sprintf("unsupported parser kind %q (want csv or json)", p.Kind),
		})
	}

	if comma := p.Options.String("comma", ","); len([]rune(comma)) != 1 {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "parser.options.comma",
			Message:  fmt.Sprintf("comma must be a single character, got %q", comma),
		})
	}

	return issues
}

func validateLoad(l Load) []Issue {
	switch l.Policy {
	case "", "reject-run", "reject-record":
		return nil
	}
	return []Issue{{
		Severity: SeverityError,
		Path:     "load.policy",
		Message:  fmt.Sprintf("unsupported load policy %q (want reject-run or reject-record)", l.Policy),
	}}
}

func validateStorage(s Storage) []Issue {
	var issues []Issue

	switch s.Kind {
	case "", "sqlite", "postgres", "none":
		// ok; empty defaults to sqlite
	default:
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "storage.kind",
			Message:  fmt.Sprintf("unsupported storage kind %q (want sqlite, postgres, or none)", s.Kind),
		})
		return issues
	}

	if (s.Kind == "sqlite" || s.Kind == "postgres") && strings.TrimSpace(s.DB.DSN) == "" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "storage.db.dsn",
			Message:  fmt.Sprintf("%s storage requires a non-empty DSN", s.Kind),
		})
	}

	if s.Kind == "none" && strings.TrimSpace(s.DB.DSN) != "" {
		issues = append(issues, Issue{
			Severity: SeverityWarning,
			Path:     "storage.db.dsn",
			Message:  "DSN is set but storage.kind is none; it will be ignored",
		})
	}

	return issues
}
