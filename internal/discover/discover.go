// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package discover turns the raw submodule walk of a root package into the
// ordered list of modules to stub.
package discover

import (
	"sort"
	"strings"
)

const (
	testSegment  = "test"
	testsSegment = "tests"
)

// Modules returns root plus every walked name that is not a test module,
// deduplicated and sorted lexicographically.
func Modules(root string, walked []string) []string {
	seen := map[string]bool{root: true}
	modules := []string{root}

	for _, name := range walked {
		name = strings.TrimSpace(name)
		if name == "" || seen[name] || IsTestModule(name) {
			continue
		}
		seen[name] = true
		modules = append(modules, name)
	}

	sort.Strings(modules)
	return modules
}

// IsTestModule reports whether a dotted module name has a segment equal to
// "test" or a last segment equal to "tests". Names such as pkg.unittests
// are kept.
func IsTestModule(name string) bool {
	segs := strings.Split(name, ".")
	if segs[len(segs)-1] == testsSegment {
		return true
	}
	for _, seg := range segs {
		if seg == testSegment {
			return true
		}
	}
	return false
}
