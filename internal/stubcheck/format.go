// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package stubcheck

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const defaultContextLines = 2

// Report formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Encode writes report to w in the given format.
func Encode(w io.Writer, report *Report, format string) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(report); err != nil {
			return err
		}
		return enc.Close()
	case FormatText, "":
		_, err := io.WriteString(w, Format(report, defaultContextLines))
		return err
	default:
		return fmt.Errorf("unknown report format %q", format)
	}
}

// Format renders a report for the terminal. Each diagnostic with a known
// line is followed by the surrounding lines of its file.
func Format(report *Report, contextLines int) string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Checked %d stub files and %d snippets in %s\n", report.Stubs, report.Snippets, report.Dir)
	if report.MypyRan {
		buf.WriteString("mypy: ran\n")
	}

	if len(report.Diagnostics) == 0 {
		buf.WriteString("No problems found.\n")
		return buf.String()
	}

	buf.WriteString("\n")
	for _, d := range report.Diagnostics {
		buf.WriteString(d.String())
		buf.WriteString("\n")
		if ctx := codeContext(d.File, d.Line, contextLines); ctx != "" {
			buf.WriteString(ctx)
		}
		buf.WriteString("\n")
	}
	fmt.Fprintf(&buf, "%d errors\n", report.Errors())
	return buf.String()
}

// codeContext returns numbered lines around line, marking the line itself.
func codeContext(path string, line, contextLines int) string {
	if line < 1 {
		return ""
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}

	lines := strings.Split(string(data), "\n")
	start := max(line-contextLines-1, 0)
	end := min(line+contextLines, len(lines))

	var buf strings.Builder
	for i := start; i < end; i++ {
		marker := "  "
		if i+1 == line {
			marker = "> "
		}
		fmt.Fprintf(&buf, "%s%4d │ %s\n", marker, i+1, lines[i])
	}
	return buf.String()
}
