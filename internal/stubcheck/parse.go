// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package stubcheck

import (
	"context"
	"fmt"
	"sort"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"
)

const maxSnippet = 40

// ImportFrom is a `from module import a, b` statement.
type ImportFrom struct {
	Module   string
	Names    []string // Imported names, aliases resolved to the original name
	Wildcard bool
	Line     int
}

// parse returns the syntax tree of Python source.
func parse(ctx context.Context, content []byte) (*sitter.Node, error) {
	root, err := sitter.ParseCtx(ctx, content, python.GetLanguage())
	if err != nil {
		return nil, err
	}
	if root == nil {
		return nil, fmt.Errorf("parser returned no tree")
	}
	return root, nil
}

// SyntaxErrors parses content and reports every ERROR or MISSING node.
func SyntaxErrors(ctx context.Context, file string, content []byte) ([]Diagnostic, error) {
	root, err := parse(ctx, content)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", file, err)
	}

	var diags []Diagnostic
	var visit func(n *sitter.Node)
	visit = func(n *sitter.Node) {
		switch {
		case n.IsMissing():
			diags = append(diags, syntaxDiagnostic(file, n, fmt.Sprintf("missing %s", n.Type())))
			return
		case n.Type() == "ERROR":
			diags = append(diags, syntaxDiagnostic(file, n, fmt.Sprintf("unexpected %q", excerpt(n.Content(content)))))
			return
		case !n.HasError():
			return
		}
		for i := 0; i < int(n.ChildCount()); i++ {
			visit(n.Child(i))
		}
	}
	visit(root)
	return diags, nil
}

func syntaxDiagnostic(file string, n *sitter.Node, msg string) Diagnostic {
	p := n.StartPoint()
	return Diagnostic{
		File:     file,
		Line:     int(p.Row) + 1,
		Column:   int(p.Column) + 1,
		Severity: "error",
		Message:  msg,
		Source:   SourceSyntax,
	}
}

func excerpt(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	if len(s) > maxSnippet {
		s = s[:maxSnippet-3] + "..."
	}
	return s
}

// Declared returns the sorted top-level names a stub declares through
// class and def statements and through plain or annotated assignments.
func Declared(ctx context.Context, content []byte) ([]string, error) {
	root, err := parse(ctx, content)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	for i := 0; i < int(root.NamedChildCount()); i++ {
		if name := declaredName(root.NamedChild(i), content); name != "" {
			seen[name] = true
		}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func declaredName(n *sitter.Node, content []byte) string {
	switch n.Type() {
	case "class_definition", "function_definition":
		if name := n.ChildByFieldName("name"); name != nil {
			return name.Content(content)
		}
	case "decorated_definition":
		if def := n.ChildByFieldName("definition"); def != nil {
			return declaredName(def, content)
		}
	case "expression_statement":
		if n.NamedChildCount() == 0 {
			return ""
		}
		assign := n.NamedChild(0)
		if assign.Type() != "assignment" {
			return ""
		}
		if left := assign.ChildByFieldName("left"); left != nil && left.Type() == "identifier" {
			return left.Content(content)
		}
	}
	return ""
}

// Imports returns every `from ... import ...` statement in content.
// Relative imports are returned with their leading dots.
func Imports(ctx context.Context, content []byte) ([]ImportFrom, error) {
	root, err := parse(ctx, content)
	if err != nil {
		return nil, err
	}

	q, err := sitter.NewQuery([]byte(`(import_from_statement) @stmt`), python.GetLanguage())
	if err != nil {
		return nil, fmt.Errorf("compiling import query: %w", err)
	}
	defer q.Close()

	qc := sitter.NewQueryCursor()
	defer qc.Close()
	qc.Exec(q, root)

	var imports []ImportFrom
	for {
		m, ok := qc.NextMatch()
		if !ok {
			break
		}
		for _, c := range m.Captures {
			if imp, ok := importFrom(c.Node, content); ok {
				imports = append(imports, imp)
			}
		}
	}
	return imports, nil
}

// importFrom reads one import_from_statement. Its first named child is the
// module; the remaining named children are the imported names.
func importFrom(n *sitter.Node, content []byte) (ImportFrom, bool) {
	if n.NamedChildCount() == 0 {
		return ImportFrom{}, false
	}

	imp := ImportFrom{
		Module: n.NamedChild(0).Content(content),
		Line:   int(n.StartPoint().Row) + 1,
	}
	for i := 1; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		switch child.Type() {
		case "dotted_name":
			imp.Names = append(imp.Names, child.Content(content))
		case "aliased_import":
			if name := child.ChildByFieldName("name"); name != nil {
				imp.Names = append(imp.Names, name.Content(content))
			}
		case "wildcard_import":
			imp.Wildcard = true
		}
	}
	return imp, true
}
