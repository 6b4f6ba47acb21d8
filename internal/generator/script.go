// Package generator turns a schema snapshot into executable DDL for one of
// the supported dialects.
package generator

import (
	"fmt"
	"strings"
)

// Script accumulates the statements of one generation run in emission order.
// Rendering is separate from assembly so formatting can be tested on its own.
type Script struct {
	entries []scriptEntry
}

type scriptEntry struct {
	text    string
	comment bool
}

// Add appends a finished SQL statement.
func (s *Script) Add(text string) {
	s.entries = append(s.entries, scriptEntry{text: text})
}

// Addf appends a formatted SQL statement.
func (s *Script) Addf(format string, args ...any) {
	s.Add(fmt.Sprintf(format, args...))
}

// Comment appends an explanatory line comment.
func (s *Script) Comment(text string) {
	s.entries = append(s.entries, scriptEntry{text: "-- " + text, comment: true})
}

// Raw appends pre-rendered lines, keeping lines starting with -- as comments.
func (s *Script) Raw(lines ...string) {
	for _, line := range lines {
		s.entries = append(s.entries, scriptEntry{
			text:    line,
			comment: strings.HasPrefix(line, "--"),
		})
	}
}

// Len returns the number of accumulated entries.
func (s *Script) Len() int {
	return len(s.entries)
}

// Render joins the accumulated entries into the final SQL text. Formatted
// output separates statements with blank lines; unformatted output puts one
// entry per line. Comments stay glued to the entry that follows them.
func (s *Script) Render(formatted bool) string {
	if len(s.entries) == 0 {
		return ""
	}

	var sb strings.Builder
	for i, e := range s.entries {
		if i > 0 {
			if formatted && !s.entries[i-1].comment {
				sb.WriteString("\n\n")
			} else {
				sb.WriteString("\n")
			}
		}
		sb.WriteString(e.text)
	}
	sb.WriteString("\n")
	return sb.String()
}
