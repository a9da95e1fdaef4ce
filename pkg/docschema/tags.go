package docschema

import "strings"

// Tag names with dedicated meaning to the engine.
const (
	// TagTitle marks a declaration as documented and keys its schema entry.
	TagTitle = "title"
	// TagDescription and TagRemarks mark a property as self-documenting.
	TagDescription = "description"
	TagRemarks     = "remarks"
	// TagNotExtends opts an interface out of inherited-member emission.
	TagNotExtends = "notExtends"

	tagDefault      = "default"
	tagDefaultValue = "defaultValue"
)

// docInfo is a parsed documentation comment block.
type docInfo struct {
	// Description is the plain paragraph text before the first tag.
	Description string
	// Title is the value of the first title tag, "" when absent.
	Title string
	Tags  []Tag
}

// parseDoc parses a raw comment block (/** ... */, /* ... */ or // lines)
// into its description text and documentation tags. A declaration may have
// at most one effective title; the first title tag wins. There is no
// failure path: empty or absent comments yield an empty docInfo.
func parseDoc(doc string) docInfo {
	var info docInfo
	doc = strings.TrimSpace(doc)
	if doc == "" {
		return info
	}

	var descLines []string
	var current *Tag

	flush := func() {
		if current != nil {
			current.Value = strings.TrimSpace(current.Value)
			info.Tags = append(info.Tags, *current)
			current = nil
		}
	}

	for _, line := range strings.Split(doc, "\n") {
		line = trimCommentMarkers(line)

		if name, value, ok := splitTagLine(line); ok {
			flush()
			current = &Tag{Name: name, Value: value}
			continue
		}

		if current != nil {
			// Continuation of a multi-line tag value.
			if line != "" {
				if current.Value != "" {
					current.Value += " "
				}
				current.Value += line
			}
			continue
		}

		if line != "" {
			descLines = append(descLines, line)
		}
	}
	flush()

	info.Description = strings.Join(descLines, " ")
	for _, t := range info.Tags {
		if t.Name == TagTitle {
			info.Title = t.Value
			break
		}
	}
	return info
}

// trimCommentMarkers strips comment syntax from one line of a comment block.
func trimCommentMarkers(line string) string {
	line = strings.TrimSpace(line)
	line = strings.TrimPrefix(line, "/**")
	line = strings.TrimPrefix(line, "/*")
	line = strings.TrimSuffix(line, "*/")
	line = strings.TrimPrefix(line, "//")
	line = strings.TrimSpace(line)
	if strings.HasPrefix(line, "*") {
		line = strings.TrimSpace(strings.TrimPrefix(line, "*"))
	}
	return line
}

// splitTagLine parses "@name value" lines. Lines like "@" alone or email
// text mid-line are not tags.
func splitTagLine(line string) (name, value string, ok bool) {
	if !strings.HasPrefix(line, "@") {
		return "", "", false
	}
	rest := line[1:]
	if rest == "" {
		return "", "", false
	}
	if i := strings.IndexAny(rest, " \t"); i >= 0 {
		return rest[:i], strings.TrimSpace(rest[i+1:]), true
	}
	return rest, "", true
}

// symbolTags resolves the tags of a property or parameter. When strict is
// false, plain description text is promoted into synthetic description and
// remarks tags so that an untagged paragraph still counts as documentation.
// Tag names already present are never overwritten.
func symbolTags(doc string, strict bool) []Tag {
	info := parseDoc(doc)
	tags := info.Tags

	if !strict && info.Description != "" {
		for _, name := range []string{TagDescription, TagRemarks} {
			if !hasTag(tags, name) {
				tags = append(tags, Tag{Name: name, Value: info.Description})
			}
		}
	}
	return tags
}

// hasTag reports whether a tag with the given name is present.
func hasTag(tags []Tag, name string) bool {
	for _, t := range tags {
		if t.Name == name {
			return true
		}
	}
	return false
}

// tagValue returns the first value of the named tag, "" when absent.
func tagValue(tags []Tag, name string) string {
	for _, t := range tags {
		if t.Name == name {
			return t.Value
		}
	}
	return ""
}
