// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package stubcheck validates a generated stub tree: every stub must parse
// as Python, example snippets may only import names the stubs declare, and
// optionally mypy must accept the snippets against the tree.
package stubcheck

import "fmt"

// Diagnostic sources.
const (
	SourceSyntax  = "syntax"
	SourceImports = "imports"
	SourceMypy    = "mypy"
)

// Diagnostic is one problem found in a stub or snippet.
type Diagnostic struct {
	File     string `json:"file" yaml:"file"`
	Line     int    `json:"line" yaml:"line"`                         // 1-based
	Column   int    `json:"column,omitempty" yaml:"column,omitempty"` // 1-based, 0 if not available
	Severity string `json:"severity" yaml:"severity"`                 // error, warning, or note
	Message  string `json:"message" yaml:"message"`
	Code     string `json:"code,omitempty" yaml:"code,omitempty"` // mypy error code
	Source   string `json:"source" yaml:"source"`
}

func (d Diagnostic) String() string {
	loc := fmt.Sprintf("%s:%d", d.File, d.Line)
	if d.Column > 0 {
		loc = fmt.Sprintf("%s:%d", loc, d.Column)
	}
	msg := fmt.Sprintf("%s: %s: %s", loc, d.Severity, d.Message)
	if d.Code != "" {
		msg += fmt.Sprintf(" [%s]", d.Code)
	}
	return msg
}

// IsError reports whether the diagnostic fails the check. Notes and
// warnings are informational.
func (d Diagnostic) IsError() bool {
	return d.Severity == "error"
}

// Report is the outcome of checking a stub tree.
type Report struct {
	Dir         string       `json:"dir" yaml:"dir"`
	Stubs       int          `json:"stubs" yaml:"stubs"`       // Stub files parsed
	Snippets    int          `json:"snippets" yaml:"snippets"` // Snippet files checked
	MypyRan     bool         `json:"mypy_ran" yaml:"mypy_ran"`
	Diagnostics []Diagnostic `json:"diagnostics" yaml:"diagnostics"`
}

// Errors returns the number of diagnostics that fail the check.
func (r *Report) Errors() int {
	n := 0
	for _, d := range r.Diagnostics {
		if d.IsError() {
			n++
		}
	}
	return n
}

// OK reports whether the check passed.
func (r *Report) OK() bool {
	return r.Errors() == 0
}
