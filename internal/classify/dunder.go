// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package classify

import "strings"

// Dunders is the ordered catalogue of special methods that may appear in a
// class stub. The order is the emission order.
var Dunders = []string{
	// Construction and destruction.
	"__init__",
	"__cinit__",
	"__dealloc__",
	// String conversion.
	"__repr__",
	"__str__",
	// Binary arithmetic.
	"__add__",
	"__radd__",
	"__sub__",
	"__rsub__",
	"__mul__",
	"__rmul__",
	"__truediv__",
	"__rtruediv__",
	"__mod__",
	"__rmod__",
	"__pow__",
	"__rpow__",
	// Unary arithmetic.
	"__neg__",
	"__abs__",
	// Comparison.
	"__richcmp__",
	"__eq__",
	"__ne__",
	"__lt__",
	"__le__",
	"__gt__",
	"__ge__",
	// Container protocol.
	"__getitem__",
	"__setitem__",
	"__iter__",
	"__len__",
	// Callable protocol.
	"__call__",
	// Pickling.
	"__getstate__",
	"__setstate__",
	"__reduce__",
}

// dunderRank maps each catalogue entry to its position in Dunders.
var dunderRank = func() map[string]int {
	m := make(map[string]int, len(Dunders))
	for i, name := range Dunders {
		m[name] = i
	}
	return m
}()

// IsAllowedDunder reports whether name is in the dunder catalogue.
func IsAllowedDunder(name string) bool {
	_, ok := dunderRank[name]
	return ok
}

// IsDunder reports whether name has the __name__ shape.
func IsDunder(name string) bool {
	return strings.HasPrefix(name, "__") && strings.HasSuffix(name, "__")
}

// methodGroup returns the sort group of a method name: catalogue dunders
// first, other dunders second, regular names last.
func methodGroup(name string) int {
	if IsAllowedDunder(name) {
		return 0
	}
	if IsDunder(name) {
		return 1
	}
	return 2
}

// MethodLess orders method names for emission. Catalogue dunders keep
// catalogue order; the other two groups sort alphabetically.
func MethodLess(a, b string) bool {
	ga, gb := methodGroup(a), methodGroup(b)
	if ga != gb {
		return ga < gb
	}
	if ga == 0 {
		return dunderRank[a] < dunderRank[b]
	}
	return a < b
}
