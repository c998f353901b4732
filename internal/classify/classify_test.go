// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package classify

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petar-djukic/stubgen/pkg/types"
)

func names(attrs []types.Attribute) []string {
	out := make([]string, 0, len(attrs))
	for _, a := range attrs {
		out = append(out, a.Name)
	}
	return out
}

func method(name string, inDict bool, module string) types.Attribute {
	return types.Attribute{Name: name, IsCallable: true, IsFunction: true, InClassDict: inDict, Module: module}
}

func TestKind(t *testing.T) {
	tests := []struct {
		name   string
		attr   types.Attribute
		want   types.MemberKind
		wantOK bool
	}{
		{name: "class", attr: types.Attribute{IsClass: true, IsCallable: true}, want: types.Class, wantOK: true},
		{name: "function", attr: types.Attribute{IsFunction: true, IsCallable: true}, want: types.Callable, wantOK: true},
		{name: "builtin", attr: types.Attribute{IsBuiltin: true}, want: types.Callable, wantOK: true},
		{name: "callable instance", attr: types.Attribute{IsCallable: true}, want: types.Callable, wantOK: true},
		{name: "module", attr: types.Attribute{IsModule: true}, wantOK: false},
		{name: "constant", attr: types.Attribute{ValueType: "int"}, want: types.Constant, wantOK: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := Kind(tc.attr)
			assert.Equal(t, tc.wantOK, ok)
			if tc.wantOK {
				assert.Equal(t, tc.want, got)
			}
		})
	}
}

func TestPartition(t *testing.T) {
	attrs := []types.Attribute{
		{Name: "zeta", IsFunction: true, IsCallable: true},
		{Name: "Alpha", IsClass: true},
		{Name: "_hidden", IsFunction: true},
		{Name: "__all__"},
		{Name: "os", IsModule: true},
		{Name: "LIMIT", ValueType: "int"},
		{Name: "beta", IsBuiltin: true},
	}

	m := Partition(attrs)
	assert.Equal(t, []string{"Alpha"}, names(m.Classes))
	assert.Equal(t, []string{"beta", "zeta"}, names(m.Callables))
	assert.Equal(t, []string{"LIMIT"}, names(m.Constants))
	assert.False(t, m.Empty())
}

func TestModule_DropsReexports(t *testing.T) {
	mod := &types.Module{
		Name: "pkg.core",
		Attributes: []types.Attribute{
			{Name: "Local", IsClass: true, Module: "pkg.core"},
			{Name: "Imported", IsClass: true, Module: "pkg.other"},
			{Name: "helper", IsFunction: true, Module: "pkg.core"},
			{Name: "join", IsFunction: true, Module: "posixpath"},
			{Name: "RATE", ValueType: "float"},
		},
	}

	m := Module(mod)
	assert.Equal(t, []string{"Local"}, names(m.Classes))
	assert.Equal(t, []string{"helper"}, names(m.Callables))
	assert.Equal(t, []string{"RATE"}, names(m.Constants))
}

func TestModule_PrivateOnlyIsEmpty(t *testing.T) {
	mod := &types.Module{
		Name: "pkg._impl",
		Attributes: []types.Attribute{
			{Name: "_helper", IsFunction: true, Module: "pkg._impl"},
			{Name: "_CACHE", ValueType: "int"},
		},
	}
	assert.True(t, Module(mod).Empty())
}

func TestClass_MethodSelection(t *testing.T) {
	cls := types.Attribute{
		Name:    "Vector",
		IsClass: true,
		Module:  "pkg.core",
		Members: []types.Attribute{
			method("dot", true, "pkg.core"),
			method("__init__", true, "pkg.core"),
			method("__add__", true, "pkg.core"),
			method("__repr__", false, "builtins"),
			method("__hash__", true, "pkg.core"),
			method("__format__", true, "pkg.core"),
			method("compiled", false, "pkg.core"),
			method("inherited", false, "pkg.base"),
			method("_private", true, "pkg.core"),
			{Name: "norm", IsDataDescriptor: true},
			{Name: "__dict__", IsDataDescriptor: true, InClassDict: true},
			{Name: "_cache", IsDataDescriptor: true},
			{Name: "count", IsCallable: true, IsDataDescriptor: true},
		},
	}

	cm := Class(cls)
	assert.Equal(t, []string{"__init__", "__add__", "compiled", "dot"}, names(cm.Methods))
	assert.Equal(t, []string{"count", "norm"}, names(cm.Properties))
	assert.False(t, cm.Empty())
}

func TestClass_EmittedDundersAreAllowed(t *testing.T) {
	var members []types.Attribute
	for _, d := range []string{"__init__", "__eq__", "__hash__", "__bool__", "__contains__", "__call__", "__weird__"} {
		members = append(members, method(d, true, "pkg"))
	}

	cm := Class(types.Attribute{Name: "C", IsClass: true, Module: "pkg", Members: members})
	for _, m := range cm.Methods {
		assert.True(t, IsAllowedDunder(m.Name), m.Name)
	}
	assert.Equal(t, []string{"__init__", "__eq__", "__call__"}, names(cm.Methods))
}

func TestClass_Empty(t *testing.T) {
	cm := Class(types.Attribute{Name: "C", IsClass: true, Members: []types.Attribute{method("__repr__", false, "")}})
	assert.True(t, cm.Empty())
}

func TestClass_MissingModuleDoesNotMatch(t *testing.T) {
	cm := Class(types.Attribute{Name: "C", IsClass: true, Members: []types.Attribute{method("run", false, "")}})
	assert.Empty(t, cm.Methods)
}

func TestMethodLess_Order(t *testing.T) {
	input := []string{"zoom", "__zzz__", "__call__", "area", "__aaa__", "__init__", "__repr__", "__eq__"}
	sort.SliceStable(input, func(i, j int) bool { return MethodLess(input[i], input[j]) })
	assert.Equal(t, []string{"__init__", "__repr__", "__eq__", "__call__", "__aaa__", "__zzz__", "area", "zoom"}, input)
}

func TestMethodLess_Idempotent(t *testing.T) {
	members := []types.Attribute{
		method("b", true, "m"), method("__len__", true, "m"), method("a", true, "m"), method("__init__", true, "m"),
	}
	cls := types.Attribute{Name: "C", IsClass: true, Module: "m", Members: members}

	first := names(Class(cls).Methods)
	reversed := make([]types.Attribute, len(members))
	for i, m := range members {
		reversed[len(members)-1-i] = m
	}
	cls.Members = reversed
	assert.Equal(t, first, names(Class(cls).Methods))
}

func TestDunderCatalogue(t *testing.T) {
	require.Len(t, Dunders, 34)
	assert.Equal(t, "__init__", Dunders[0])
	assert.Equal(t, "__reduce__", Dunders[len(Dunders)-1])

	seen := make(map[string]bool)
	for _, d := range Dunders {
		assert.False(t, seen[d], "duplicate %s", d)
		seen[d] = true
		assert.True(t, IsDunder(d))
		assert.True(t, IsAllowedDunder(d))
	}
	assert.False(t, IsAllowedDunder("__hash__"))
}

func TestIsDunder(t *testing.T) {
	assert.True(t, IsDunder("__init__"))
	assert.True(t, IsDunder("__x__"))
	assert.False(t, IsDunder("_private"))
	assert.False(t, IsDunder("__mangled"))
	assert.False(t, IsDunder("name"))
}

func TestConstantType(t *testing.T) {
	tests := map[string]string{"bool": "bool", "int": "int", "float": "float", "str": "str", "": "Any", "list": "Any"}
	for valueType, want := range tests {
		assert.Equal(t, want, ConstantType(types.Attribute{ValueType: valueType}), valueType)
	}
}
