// Package format normalizes extracted source text for schema output.
//
// The engine treats formatting as a service: type expressions are rendered
// on a single line, declaration bodies keep their shape but lose the
// indentation of their original nesting level.
package format

import (
	"regexp"
	"strings"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// SingleLine collapses all whitespace runs (including newlines) into single
// spaces and trims the result. Used for type-expression text.
func SingleLine(s string) string {
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(s, " "))
}

// Declaration normalizes a declaration's source text: trailing whitespace is
// stripped per line, surrounding blank lines are dropped, and the common
// leading indentation of all non-blank lines after the first is removed so a
// declaration extracted from deep nesting reads as top-level code.
func Declaration(s string) string {
	lines := strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")

	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}

	// Drop leading/trailing blank lines.
	for len(lines) > 0 && lines[0] == "" {
		lines = lines[1:]
	}
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	if len(lines) == 0 {
		return ""
	}

	// The first line starts at the extraction point and carries no indent;
	// dedent the remaining lines by their common prefix.
	indent := commonIndent(lines[1:])
	for i := 1; i < len(lines); i++ {
		if lines[i] != "" {
			lines[i] = strings.TrimPrefix(lines[i], indent)
		}
	}

	return strings.Join(lines, "\n")
}

// commonIndent returns the longest common leading whitespace of the
// non-blank lines.
func commonIndent(lines []string) string {
	indent := ""
	first := true
	for _, line := range lines {
		if line == "" {
			continue
		}
		lead := line[:len(line)-len(strings.TrimLeft(line, " \t"))]
		if first {
			indent = lead
			first = false
			continue
		}
		indent = commonPrefix(indent, lead)
		if indent == "" {
			return ""
		}
	}
	return indent
}

func commonPrefix(a, b string) string {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return a[:i]
		}
	}
	return a[:n]
}
