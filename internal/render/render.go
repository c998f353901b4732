// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package render turns classified members into .pyi stub text. Rendering is
// pure: the same module record always produces the same bytes.
package render

import (
	"fmt"
	"strings"

	"github.com/petar-djukic/stubgen/internal/classify"
	"github.com/petar-djukic/stubgen/pkg/types"
)

const (
	anyType     = "Any"
	indent      = "    "
	anyImport   = "from typing import Any"
	emptyMarker = "# No public API detected - may need manual inspection"
)

// docEscaper keeps a docstring line valid inside a triple-quoted literal.
var docEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

// Module renders the complete stub file for mod: header, optional docstring
// comment, then constants, functions, and classes.
func Module(mod *types.Module) string {
	lines := []string{
		fmt.Sprintf(`"""Type stubs for %s"""`, mod.Name),
		"",
	}

	if doc := strings.TrimSpace(mod.Doc); doc != "" {
		lines = append(lines, "# "+doc, "")
	}

	members := classify.Module(mod)
	if members.Empty() {
		lines = append(lines, emptyMarker)
		return strings.Join(lines, "\n")
	}

	lines = append(lines, anyImport, "")

	if len(members.Constants) > 0 {
		for _, c := range members.Constants {
			lines = append(lines, Constant(c))
		}
		lines = append(lines, "")
	}

	if len(members.Callables) > 0 {
		for _, f := range members.Callables {
			lines = append(lines, Function(f))
		}
		lines = append(lines, "")
	}

	for _, c := range members.Classes {
		lines = append(lines, Class(c))
	}

	return strings.Join(lines, "\n")
}

// Class renders a class block. The block always ends with a newline so that
// consecutive classes are separated by one blank line.
func Class(cls types.Attribute) string {
	lines := []string{fmt.Sprintf("class %s:", cls.Name)}

	if doc := strings.TrimSpace(cls.Doc); doc != "" {
		lines = append(lines, fmt.Sprintf(`%s"""%s"""`, indent, docEscaper.Replace(doc)))
	}

	cm := classify.Class(cls)

	if len(cm.Properties) > 0 {
		for _, p := range cm.Properties {
			lines = append(lines, fmt.Sprintf("%s%s: %s", indent, p.Name, anyType))
		}
		lines = append(lines, "")
	}

	for _, m := range cm.Methods {
		lines = append(lines, Method(m))
	}

	if cm.Empty() {
		lines = append(lines, indent+"...")
	}

	lines = append(lines, "")
	return strings.Join(lines, "\n")
}

// Function renders a module-level function declaration.
func Function(f types.Attribute) string {
	if f.Signature == nil {
		return fmt.Sprintf("def %s(*args: %s, **kwargs: %s) -> %s: ...", f.Name, anyType, anyType, anyType)
	}
	return fmt.Sprintf("def %s(%s)%s: ...", f.Name, Params(f.Signature), returns(f.Signature))
}

// Method renders an indented method declaration. Without a signature it
// falls back to a variadic form; __init__ then returns None.
func Method(m types.Attribute) string {
	if m.Signature == nil {
		ret := anyType
		if m.Name == "__init__" {
			ret = "None"
		}
		return fmt.Sprintf("%sdef %s(self, *args: %s, **kwargs: %s) -> %s: ...", indent, m.Name, anyType, anyType, ret)
	}
	return fmt.Sprintf("%sdef %s(%s)%s: ...", indent, m.Name, Params(m.Signature), returns(m.Signature))
}

// Constant renders a typed module-level constant.
func Constant(c types.Attribute) string {
	return fmt.Sprintf("%s: %s", c.Name, classify.ConstantType(c))
}

// Params renders a parameter list. Annotated parameters are typed Any
// whatever the real annotation was. The / and * markers are inserted where
// the parameter kinds require them.
func Params(sig *types.Signature) string {
	var parts []string
	sawVarPositional := false
	sawKeywordOnly := false

	for i, p := range sig.Params {
		switch p.Kind {
		case types.VarPositional:
			sawVarPositional = true
		case types.KeywordOnly:
			if !sawVarPositional && !sawKeywordOnly {
				parts = append(parts, "*")
			}
			sawKeywordOnly = true
		}

		parts = append(parts, param(p))

		if p.Kind == types.PositionalOnly {
			last := i == len(sig.Params)-1
			if last || sig.Params[i+1].Kind != types.PositionalOnly {
				parts = append(parts, "/")
			}
		}
	}

	return strings.Join(parts, ", ")
}

func param(p types.Param) string {
	name := p.Name
	switch p.Kind {
	case types.VarPositional:
		name = "*" + name
	case types.VarKeyword:
		name = "**" + name
	}

	if p.Annotated {
		name += ": " + anyType
		if p.HasDefault {
			name += " = ..."
		}
		return name
	}
	if p.HasDefault {
		name += "=..."
	}
	return name
}

func returns(sig *types.Signature) string {
	if sig.HasReturn {
		return " -> " + anyType
	}
	return ""
}
