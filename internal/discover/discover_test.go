// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package discover

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestModules(t *testing.T) {
	walked := []string{
		"raysect.optical",
		"raysect.core",
		"raysect.core",
		" raysect.core.math ",
		"",
		"raysect.tests",
		"raysect.core.tests",
		"raysect.test.fixtures",
		"raysect.optical.unittests",
		"raysect.testing",
	}

	got := Modules("raysect", walked)
	assert.Equal(t, []string{
		"raysect",
		"raysect.core",
		"raysect.core.math",
		"raysect.optical",
		"raysect.optical.unittests",
		"raysect.testing",
	}, got)
}

func TestModules_RootOnly(t *testing.T) {
	assert.Equal(t, []string{"pkg"}, Modules("pkg", nil))
}

func TestModules_RootNotDuplicated(t *testing.T) {
	assert.Equal(t, []string{"pkg", "pkg.a"}, Modules("pkg", []string{"pkg.a", "pkg"}))
}

func TestModules_NoTestNames(t *testing.T) {
	walked := []string{"p.a", "p.test", "p.b.test.c", "p.mytests", "p.b.tests", "p.tests.x", "p.c"}
	got := Modules("p", walked)
	for _, name := range got {
		segs := strings.Split(name, ".")
		assert.NotEqual(t, "tests", segs[len(segs)-1], name)
		for _, seg := range segs {
			assert.NotEqual(t, "test", seg, name)
		}
	}
	assert.Contains(t, got, "p.mytests")
}

func TestIsTestModule(t *testing.T) {
	tests := map[string]bool{
		"pkg.test":          true,
		"pkg.test.helpers":  true,
		"pkg.tests":         true,
		"pkg.core.tests":    true,
		"pkg.unittests":     false,
		"pkg.contests":      false,
		"pkg.testing":       false,
		"pkg.contest":       false,
		"pkg.tests.helpers": false,
		"pkg.core":          false,
	}
	for name, want := range tests {
		assert.Equal(t, want, IsTestModule(name), name)
	}
}
