// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package git

import (
	"fmt"
	"strings"
)

const maxSubjectLength = 72

// CommitMessage builds the commit message for a stub regeneration: a
// subject naming the library and version, the list of files, and the
// Generated-By trailer.
func CommitMessage(library, version string, files []string) string {
	msg := buildSubject(library, version)
	if body := buildBody(files); body != "" {
		msg += "\n\n" + body
	}
	msg += "\n\n" + generatedTrailer
	return msg
}

// buildSubject creates the first line of the commit message, truncated to
// 72 characters.
func buildSubject(library, version string) string {
	subject := fmt.Sprintf("stubs: regenerate %s stubs", library)
	if version != "" && version != "unknown" {
		subject = fmt.Sprintf("stubs: regenerate %s %s stubs", library, version)
	}
	if len(subject) > maxSubjectLength {
		subject = subject[:maxSubjectLength-3] + "..."
	}
	return subject
}

// buildBody lists the committed files.
func buildBody(files []string) string {
	if len(files) == 0 {
		return ""
	}

	var buf strings.Builder
	buf.WriteString("Updated files:\n")
	for _, f := range files {
		buf.WriteString(fmt.Sprintf("- %s\n", f))
	}
	return strings.TrimRight(buf.String(), "\n")
}
