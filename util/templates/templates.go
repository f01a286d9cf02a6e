// Package templates normalizes cobra help text written as indented raw
// string literals.
package templates

import (
	"strings"

	"github.com/MakeNowJust/heredoc"
)

const indentation = "  "

// LongDesc removes the common indentation and surrounding blank lines of a
// long command description.
func LongDesc(s string) string {
	if len(s) == 0 {
		return s
	}
	return strings.TrimSpace(heredoc.Doc(s))
}

// Examples dedents s and then indents every line by two spaces, the way
// cobra prints the Examples section.
func Examples(s string) string {
	if len(s) == 0 {
		return s
	}
	lines := strings.Split(strings.TrimSpace(heredoc.Doc(s)), "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = indentation + line
		}
	}
	return strings.Join(lines, "\n")
}
