// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package classify partitions the attributes reported by the introspection
// probe into classes, callables, and constants, and selects the methods and
// properties that belong in a class stub.
package classify

import (
	"sort"
	"strings"

	"github.com/petar-djukic/stubgen/pkg/types"
)

// Members holds public attributes partitioned by kind. Each list is sorted
// by name.
type Members struct {
	Classes   []types.Attribute
	Callables []types.Attribute
	Constants []types.Attribute
}

// Empty reports whether no member of any kind is present.
func (m Members) Empty() bool {
	return len(m.Classes) == 0 && len(m.Callables) == 0 && len(m.Constants) == 0
}

// ClassMembers holds what a class stub declares: properties in name order
// and methods in emission order.
type ClassMembers struct {
	Properties []types.Attribute
	Methods    []types.Attribute
}

// Empty reports whether the class declares neither properties nor methods.
func (c ClassMembers) Empty() bool {
	return len(c.Properties) == 0 && len(c.Methods) == 0
}

// Kind classifies a single attribute. The checks run in a fixed order: a
// class wins over a callable, and a callable wins over a constant. The
// second result is false for sub-modules, which belong to no kind.
func Kind(a types.Attribute) (types.MemberKind, bool) {
	switch {
	case a.IsClass:
		return types.Class, true
	case a.IsFunction || a.IsBuiltin || a.IsCallable:
		return types.Callable, true
	case a.IsModule:
		return 0, false
	default:
		return types.Constant, true
	}
}

// Partition splits attrs into public classes, callables, and constants.
// Names starting with an underscore are dropped.
func Partition(attrs []types.Attribute) Members {
	var m Members
	for _, a := range sortedByName(attrs) {
		if strings.HasPrefix(a.Name, "_") {
			continue
		}
		kind, ok := Kind(a)
		if !ok {
			continue
		}
		switch kind {
		case types.Class:
			m.Classes = append(m.Classes, a)
		case types.Callable:
			m.Callables = append(m.Callables, a)
		case types.Constant:
			m.Constants = append(m.Constants, a)
		}
	}
	return m
}

// Module returns the public API defined by mod. Classes and callables whose
// declaring module differs from mod are re-exports and are left out;
// constants carry no declaring module and are always kept.
func Module(mod *types.Module) Members {
	all := Partition(mod.Attributes)
	return Members{
		Classes:   ownedBy(all.Classes, mod.Name),
		Callables: ownedBy(all.Callables, mod.Name),
		Constants: all.Constants,
	}
}

// Class selects the properties and methods declared by cls.
//
// Dunder methods are kept only when they are in the catalogue and defined
// directly on the class. Other methods are kept when defined directly on
// the class or when their declaring module matches the class's module,
// which covers compiled methods that do not show up in the class dict.
func Class(cls types.Attribute) ClassMembers {
	var cm ClassMembers
	for _, m := range sortedByName(cls.Members) {
		dunder := IsDunder(m.Name)
		if strings.HasPrefix(m.Name, "_") && !dunder {
			continue
		}

		switch {
		case m.IsCallable && !m.IsDataDescriptor:
			if includeMethod(cls, m, dunder) {
				cm.Methods = append(cm.Methods, m)
			}
		case m.IsDataDescriptor && !strings.HasPrefix(m.Name, "_"):
			cm.Properties = append(cm.Properties, m)
		}
	}

	sort.SliceStable(cm.Methods, func(i, j int) bool {
		return MethodLess(cm.Methods[i].Name, cm.Methods[j].Name)
	})
	return cm
}

func includeMethod(cls, m types.Attribute, dunder bool) bool {
	if dunder {
		return IsAllowedDunder(m.Name) && m.InClassDict
	}
	if m.InClassDict {
		return true
	}
	return m.Module != "" && m.Module == cls.Module
}

// ConstantType infers the declared type of a constant from the narrowest
// runtime type the probe matched. Anything else is Any.
func ConstantType(a types.Attribute) string {
	switch a.ValueType {
	case "bool", "int", "float", "str":
		return a.ValueType
	default:
		return "Any"
	}
}

func ownedBy(attrs []types.Attribute, module string) []types.Attribute {
	var out []types.Attribute
	for _, a := range attrs {
		if a.Module == module {
			out = append(out, a)
		}
	}
	return out
}

func sortedByName(attrs []types.Attribute) []types.Attribute {
	out := make([]types.Attribute, len(attrs))
	copy(out, attrs)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
