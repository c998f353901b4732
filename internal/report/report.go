// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package report prints the human-facing progress of a stub run to the
// terminal using pterm.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/pterm/pterm"

	"github.com/petar-djukic/stubgen/internal/stubfile"
)

// CLI prints run progress. Skipped files are listed only when verbose.
type CLI struct {
	w       io.Writer
	verbose bool
}

// NewCLI creates a CLI reporter writing to w.
func NewCLI(w io.Writer, verbose bool) *CLI {
	return &CLI{w: w, verbose: verbose}
}

// Start prints the banner and run settings once the library is found.
func (c *CLI) Start(library, version, outDir string, overwrite bool) {
	title := fmt.Sprintf("%s stub generator", library)
	pterm.Fprintln(c.w, pterm.Bold.Sprint(title))
	pterm.Fprintln(c.w, pterm.Gray(strings.Repeat("=", len(title))))
	pterm.Fprintln(c.w, fmt.Sprintf("Found %s version: %s", library, pterm.LightCyan(version)))
	pterm.Fprintln(c.w, fmt.Sprintf("Generating stubs in: %s", outDir))
	if overwrite {
		pterm.Fprintln(c.w, "Overwrite mode: enabled")
	} else {
		pterm.Fprintln(c.w, "Overwrite mode: disabled (new files only)")
	}
	if c.verbose {
		pterm.Fprintln(c.w, "Verbose mode enabled")
	}
	pterm.Fprintln(c.w, "Scanning modules and extracting classes/functions...")
}

// File prints the action taken for one stub file.
func (c *CLI) File(action stubfile.Action, path string) {
	switch action {
	case stubfile.Skipped:
		if c.verbose {
			pterm.Fprintln(c.w, fmt.Sprintf("  %s: %s", pterm.Gray("Skipped (exists)"), path))
		}
	case stubfile.Overwritten:
		pterm.Fprintln(c.w, fmt.Sprintf("  %s: %s", pterm.Yellow(action.String()), path))
	default:
		pterm.Fprintln(c.w, fmt.Sprintf("  %s: %s", pterm.Green(action.String()), path))
	}
}

// Summary prints the final counters.
func (c *CLI) Summary(generated, skipped, failed int) {
	pterm.Fprintln(c.w)
	pterm.Success.WithWriter(c.w).Println("Stub generation complete!")
	pterm.Fprintln(c.w, fmt.Sprintf("Generated: %d stub files", generated))
	if skipped > 0 {
		pterm.Fprintln(c.w, fmt.Sprintf("Skipped: %d existing files (use --overwrite to replace)", skipped))
	}
	if failed > 0 {
		pterm.Fprintln(c.w, fmt.Sprintf("Failed: %d modules", failed))
	}
	pterm.Fprintln(c.w, "Note: Type annotations may need manual refinement.")
}

// Fatal prints an error that ends the run as "Error: <msg>".
func (c *CLI) Fatal(msg string) {
	pterm.Fprintln(c.w, pterm.Red("Error: "+msg))
}
