// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package types defines the records shared across stubgen packages: the raw
// facts reported by the introspection probe and the classification of
// members derived from them.
package types

// MemberKind identifies which stub block a member is rendered into.
type MemberKind int

const (
	Class    MemberKind = iota // Class declaration
	Callable                   // Function, builtin, or other callable
	Constant                   // Anything else that is not a sub-module
)

// String returns the human-readable name of the member kind.
func (k MemberKind) String() string {
	switch k {
	case Class:
		return "Class"
	case Callable:
		return "Callable"
	case Constant:
		return "Constant"
	default:
		return "Unknown"
	}
}

// ParamKind mirrors the parameter kinds reported by Python's inspect module.
type ParamKind string

const (
	PositionalOnly      ParamKind = "POSITIONAL_ONLY"
	PositionalOrKeyword ParamKind = "POSITIONAL_OR_KEYWORD"
	VarPositional       ParamKind = "VAR_POSITIONAL"
	KeywordOnly         ParamKind = "KEYWORD_ONLY"
	VarKeyword          ParamKind = "VAR_KEYWORD"
)

// Param is a single parameter of an introspected signature. Only the
// presence of an annotation is recorded, never its value.
type Param struct {
	Name       string    `json:"name"`
	Kind       ParamKind `json:"kind"`
	Annotated  bool      `json:"annotated"`
	HasDefault bool      `json:"has_default"`
}

// Signature is the parameter list of a callable. A nil *Signature means the
// runtime could not produce one (typical for natively compiled callables).
type Signature struct {
	Params    []Param `json:"params"`
	HasReturn bool    `json:"has_return"`
}

// Attribute is one named attribute of a module or class together with the
// runtime facts the probe observed about it.
type Attribute struct {
	Name             string      `json:"name"`
	IsClass          bool        `json:"is_class"`
	IsFunction       bool        `json:"is_function"`
	IsBuiltin        bool        `json:"is_builtin"`
	IsCallable       bool        `json:"is_callable"`
	IsModule         bool        `json:"is_module"`
	IsDataDescriptor bool        `json:"is_data_descriptor"`
	Module           string      `json:"module"`        // __module__, empty when absent
	InClassDict      bool        `json:"in_class_dict"` // defined directly on the owning class
	ValueType        string      `json:"value_type"`    // bool, int, float, str or empty
	Doc              string      `json:"doc"`           // first docstring line of a class or callable
	Signature        *Signature  `json:"signature"`
	Members          []Attribute `json:"members,omitempty"` // class attributes, for classes the module defines
}

// Module is a loaded module as reported by the probe.
type Module struct {
	Name       string      `json:"name"`
	IsPackage  bool        `json:"is_package"`
	Doc        string      `json:"doc"`
	Attributes []Attribute `json:"attributes"`
}

// Library describes the root package: its version string and the raw list of
// submodule names found by walking it.
type Library struct {
	Name    string   `json:"name"`
	Version string   `json:"version"`
	Modules []string `json:"modules"`
}
