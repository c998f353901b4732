// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package stubcheck

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const geometryStub = `"""Type stubs for shapes.geometry"""

from typing import Any

DEFAULT_SIZE: int

def make(size: Any = ...) -> Any: ...

class Square:
    """A square."""
    side: Any

    def __init__(self, side): ...
    def area(self) -> Any: ...
`

// writeTree creates files relative to dir.
func writeTree(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(dir, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

func TestSyntaxErrors_ValidStub(t *testing.T) {
	diags, err := SyntaxErrors(context.Background(), "geometry.pyi", []byte(geometryStub))
	require.NoError(t, err)
	assert.Empty(t, diags)
}

func TestSyntaxErrors_BrokenStub(t *testing.T) {
	content := "from typing import Any\n\ndef broken(self, *args: Any -> Any: ...\n"
	diags, err := SyntaxErrors(context.Background(), "broken.pyi", []byte(content))
	require.NoError(t, err)
	require.NotEmpty(t, diags)
	assert.Equal(t, "broken.pyi", diags[0].File)
	assert.Equal(t, 3, diags[0].Line)
	assert.Equal(t, SourceSyntax, diags[0].Source)
	assert.True(t, diags[0].IsError())
}

func TestDeclared(t *testing.T) {
	content := geometryStub + "\nALIAS = Square\n\n@overload\ndef wrapped() -> Any: ...\n"
	names, err := Declared(context.Background(), []byte(content))
	require.NoError(t, err)
	assert.Equal(t, []string{"ALIAS", "DEFAULT_SIZE", "Square", "make", "wrapped"}, names)
}

func TestDeclared_IgnoresNestedNames(t *testing.T) {
	names, err := Declared(context.Background(), []byte(geometryStub))
	require.NoError(t, err)
	assert.NotContains(t, names, "area")
	assert.NotContains(t, names, "side")
}

func TestImports(t *testing.T) {
	content := `import os
from shapes.geometry import Square, make as build
from shapes import *
from . import sibling
`
	imports, err := Imports(context.Background(), []byte(content))
	require.NoError(t, err)
	require.Len(t, imports, 3)

	assert.Equal(t, "shapes.geometry", imports[0].Module)
	assert.Equal(t, []string{"Square", "make"}, imports[0].Names)
	assert.Equal(t, 2, imports[0].Line)

	assert.Equal(t, "shapes", imports[1].Module)
	assert.True(t, imports[1].Wildcard)

	assert.Equal(t, ".", imports[2].Module)
	assert.Equal(t, []string{"sibling"}, imports[2].Names)
}

func TestChecker_Run(t *testing.T) {
	dir := t.TempDir()
	stubs := filepath.Join(dir, "shapes-stubs")
	writeTree(t, stubs, map[string]string{
		"__init__.pyi":    "\"\"\"Type stubs for shapes\"\"\"\n\n# No public API detected - may need manual inspection",
		"geometry.pyi":    geometryStub,
		"io/__init__.pyi": "from typing import Any\n\ndef load(path: Any) -> Any: ...\n",
		"broken.pyi":      "class Broken(:\n",
	})

	snippet := filepath.Join(dir, "example.py")
	writeTree(t, dir, map[string]string{
		"example.py": `from shapes.geometry import Square, DEFAULT_SIZE, Circle
from shapes import geometry, io
from shapes.missing import Thing
from numpy import array

Square(DEFAULT_SIZE).area()
`,
	})

	checker := New(Config{Dir: stubs, Package: "shapes"})
	report, err := checker.Run(context.Background(), []string{snippet})
	require.NoError(t, err)

	assert.Equal(t, 4, report.Stubs)
	assert.Equal(t, 1, report.Snippets)
	assert.False(t, report.MypyRan)
	assert.False(t, report.OK())

	var messages []string
	for _, d := range report.Diagnostics {
		messages = append(messages, d.Source+": "+d.Message)
	}
	assert.Contains(t, messages, "imports: shapes.geometry does not declare Circle")
	assert.Contains(t, messages, "imports: no stub for module shapes.missing")
	assert.NotContains(t, messages, "imports: shapes does not declare geometry")
	assert.NotContains(t, messages, "imports: shapes does not declare io")

	syntaxCount := 0
	for _, d := range report.Diagnostics {
		if d.Source == SourceSyntax {
			syntaxCount++
			assert.Equal(t, filepath.Join(stubs, "broken.pyi"), d.File)
		}
	}
	assert.Positive(t, syntaxCount)
}

func TestChecker_CleanTree(t *testing.T) {
	stubs := t.TempDir()
	writeTree(t, stubs, map[string]string{"geometry.pyi": geometryStub})

	report, err := New(Config{Dir: stubs, Package: "shapes"}).Run(context.Background(), nil)
	require.NoError(t, err)
	assert.True(t, report.OK())
	assert.Equal(t, 1, report.Stubs)
}

func TestChecker_MissingDir(t *testing.T) {
	_, err := New(Config{Dir: filepath.Join(t.TempDir(), "nope"), Package: "shapes"}).Run(context.Background(), nil)
	require.Error(t, err)
}

func TestParseMypy(t *testing.T) {
	output := `example.py:3:1: error: Module "shapes.geometry" has no attribute "Circle"  [attr-defined]
example.py:7: note: Revealed type is "Any"
Success: no issues found in 1 source file
`
	diags := parseMypy(output)
	require.Len(t, diags, 2)

	assert.Equal(t, Diagnostic{
		File:     "example.py",
		Line:     3,
		Column:   1,
		Severity: "error",
		Message:  `Module "shapes.geometry" has no attribute "Circle"`,
		Code:     "attr-defined",
		Source:   SourceMypy,
	}, diags[0])

	assert.Equal(t, "note", diags[1].Severity)
	assert.Equal(t, 0, diags[1].Column)
	assert.Empty(t, diags[1].Code)
	assert.False(t, diags[1].IsError())
}

func TestMypy_EmptyCommand(t *testing.T) {
	_, err := Mypy(context.Background(), MypyConfig{Command: "  "})
	require.Error(t, err)
}

func TestDiagnosticString(t *testing.T) {
	d := Diagnostic{File: "a.py", Line: 2, Column: 4, Severity: "error", Message: "bad", Code: "misc"}
	assert.Equal(t, "a.py:2:4: error: bad [misc]", d.String())

	d = Diagnostic{File: "a.py", Line: 2, Severity: "note", Message: "fyi"}
	assert.Equal(t, "a.py:2: note: fyi", d.String())
}

func TestFormat_IncludesContext(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "example.py")
	require.NoError(t, os.WriteFile(path, []byte("a = 1\nb = 2\nc = 3\nd = 4\n"), 0o644))

	report := &Report{
		Dir:      dir,
		Snippets: 1,
		Diagnostics: []Diagnostic{
			{File: path, Line: 2, Severity: "error", Message: "boom", Source: SourceImports},
		},
	}
	out := Format(report, 1)
	assert.Contains(t, out, "Checked 0 stub files and 1 snippets")
	assert.Contains(t, out, ">    2 │ b = 2")
	assert.Contains(t, out, "     1 │ a = 1")
	assert.Contains(t, out, "     3 │ c = 3")
	assert.NotContains(t, out, "d = 4")
	assert.Contains(t, out, "1 errors")
}

func TestFormat_NoProblems(t *testing.T) {
	out := Format(&Report{Dir: "stubs", Stubs: 3}, 2)
	assert.Contains(t, out, "No problems found.")
}

func TestEncode(t *testing.T) {
	report := &Report{
		Dir:   "stubs",
		Stubs: 2,
		Diagnostics: []Diagnostic{
			{File: "x.pyi", Line: 1, Column: 2, Severity: "error", Message: "unexpected", Source: SourceSyntax},
		},
	}

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Encode(&buf, report, FormatJSON))
		var decoded Report
		require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
		assert.Equal(t, *report, decoded)
	})

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Encode(&buf, report, FormatYAML))
		assert.Contains(t, buf.String(), "source: syntax")
		var decoded Report
		require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
		assert.Equal(t, *report, decoded)
	})

	t.Run("text", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Encode(&buf, report, FormatText))
		assert.Contains(t, buf.String(), "x.pyi:1:2: error: unexpected")
	})

	t.Run("unknown", func(t *testing.T) {
		require.Error(t, Encode(&bytes.Buffer{}, report, "xml"))
	})
}
