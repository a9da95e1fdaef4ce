package docschema

import (
	"regexp"
	"strings"
)

// memberPattern matches the expected member shape: identifier, optional "?",
// colon, then the type expression up to an optional trailing semicolon or
// comma. (?s) lets the type expression span multiple lines. Members that do
// not match (computed keys, index signatures, method shorthand) are skipped.
var memberPattern = regexp.MustCompile(`(?s)^\s*(?:readonly\s+)?([A-Za-z_$][A-Za-z0-9_$]*)\s*(\?)?\s*:\s*(.+?)[;,]?\s*$`)

// member is the parsed form of one property or parameter signature.
type member struct {
	Name     string
	Optional bool
	// TypeText is the verbatim type-expression text, not yet rendered or
	// link-substituted.
	TypeText string
	// Initializer is the inline default-value expression of a parameter.
	Initializer string
}

// parseMember parses a property signature's raw text. The boolean result is
// false for members that do not match the expected shape; this is a
// recoverable condition, not an error.
func parseMember(raw string) (member, bool) {
	m := memberPattern.FindStringSubmatch(raw)
	if m == nil {
		return member{}, false
	}
	return member{
		Name:     m[1],
		Optional: m[2] == "?",
		TypeText: strings.TrimSpace(m[3]),
	}, true
}

// parseParameter parses a function parameter's raw text, splitting off an
// inline default-value expression first. Rest parameters (...args) keep
// their name without the ellipsis. Untyped parameters do not match the
// expected shape and are skipped.
func parseParameter(raw string) (member, bool) {
	decl, init := splitInitializer(raw)
	decl = strings.TrimSpace(decl)
	decl = strings.TrimPrefix(decl, "...")

	m, ok := parseMember(decl)
	if !ok {
		return member{}, false
	}
	m.Initializer = strings.TrimSpace(init)
	if m.Initializer != "" {
		m.Optional = true
	}
	return m, true
}

// splitInitializer splits "name: Type = expr" at the first top-level "=".
// Nesting ("()[]{}<>") and string literals are respected so arrow types and
// default expressions containing "=" survive; "=>", "==", ">=", "<=" and
// "!=" are never split points.
func splitInitializer(raw string) (decl, init string) {
	depth := 0
	var quote byte

	for i := 0; i < len(raw); i++ {
		c := raw[i]

		if quote != 0 {
			if c == '\\' {
				i++
			} else if c == quote {
				quote = 0
			}
			continue
		}

		switch c {
		case '"', '\'', '`':
			quote = c
		case '(', '[', '{', '<':
			depth++
		case ')', ']', '}', '>':
			if depth > 0 {
				depth--
			}
		case '=':
			if depth != 0 {
				continue
			}
			if i+1 < len(raw) && (raw[i+1] == '>' || raw[i+1] == '=') {
				i++
				continue
			}
			if i > 0 && strings.IndexByte("<>!=", raw[i-1]) >= 0 {
				continue
			}
			return raw[:i], raw[i+1:]
		}
	}
	return raw, ""
}
