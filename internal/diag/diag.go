// Package diag defines the diagnostic taxonomy for a derivation run.
// Per-type and per-field failures are collected with full context and
// reported together; a single unsupported type never aborts the run.
package diag

import "fmt"

// Code identifies one diagnostic category.
type Code int

const (
	CodeUnsupportedShape Code = iota
	CodeAmbiguousCopyStrategy
	CodeMissingHint
	CodeFieldNotFound
	CodeNamingCollision
	CodeRecursionLimit
)

func (c Code) String() string {
	switch c {
	case CodeUnsupportedShape:
		return "unsupported-shape"
	case CodeAmbiguousCopyStrategy:
		return "ambiguous-copy-strategy"
	case CodeMissingHint:
		return "missing-hint"
	case CodeFieldNotFound:
		return "field-not-found"
	case CodeNamingCollision:
		return "naming-collision"
	case CodeRecursionLimit:
		return "recursion-limit"
	default:
		return fmt.Sprintf("code(%d)", int(c))
	}
}

// Informational reports whether the code describes expected behavior rather
// than a rejection. Recursion stopping at the configured depth is not an
// error: the affected level simply has no navigator.
func (c Code) Informational() bool {
	return c == CodeRecursionLimit
}

// Diagnostic is one collected finding, naming the offending type and, where
// applicable, field or method.
type Diagnostic struct {
	Code   Code
	Type   string
	Field  string
	Detail string
}

func (d Diagnostic) Error() string {
	loc := d.Type
	if d.Field != "" {
		loc += "." + d.Field
	}
	return fmt.Sprintf("%s: %s: %s", loc, d.Code, d.Detail)
}

// Collector accumulates diagnostics across a run.
type Collector struct {
	diags []Diagnostic
}

// Add records one diagnostic.
func (c *Collector) Add(d Diagnostic) {
	c.diags = append(c.diags, d)
}

// Addf records a diagnostic with a formatted detail message.
func (c *Collector) Addf(code Code, typeName, field, format string, args ...any) {
	c.Add(Diagnostic{Code: code, Type: typeName, Field: field, Detail: fmt.Sprintf(format, args...)})
}

// All returns every collected diagnostic in insertion order.
func (c *Collector) All() []Diagnostic {
	return c.diags
}

// Errors returns the non-informational diagnostics.
func (c *Collector) Errors() []Diagnostic {
	out := make([]Diagnostic, 0, len(c.diags))
	for _, d := range c.diags {
		if !d.Code.Informational() {
			out = append(out, d)
		}
	}
	return out
}
