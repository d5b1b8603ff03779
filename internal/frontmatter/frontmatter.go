// Package frontmatter splits and joins delimited YAML metadata headers.
//
// The on-disk shape shared by the markdown-based agent formats is:
//
//	---
//	key: value
//	---
//	body text...
//
// Split extracts the raw YAML block and the trimmed body; Join produces
// the same shape back. Adapters own the YAML (un)marshalling so that each
// format controls its own field set and ordering.
package frontmatter

import (
	"errors"
	"strings"
)

// ErrNoFrontmatter is returned when content lacks the opening and closing
// "---" delimiters.
var ErrNoFrontmatter = errors.New("no frontmatter block found")

const delimiter = "---"

// Split separates content into the raw YAML frontmatter and the body.
// The returned header excludes the delimiter lines; the body has leading
// and trailing whitespace trimmed.
func Split(content string) (header, body string, err error) {
	// Normalize line endings so CRLF files parse the same way.
	content = strings.ReplaceAll(content, "\r\n", "\n")

	if !strings.HasPrefix(content, delimiter+"\n") {
		return "", "", ErrNoFrontmatter
	}

	rest := content[len(delimiter)+1:]
	if end := strings.Index(rest, "\n"+delimiter+"\n"); end >= 0 {
		header = rest[:end]
		body = rest[end+len(delimiter)+2:]
		return header, strings.TrimSpace(body), nil
	}
	// A file may end at the closing delimiter with no body.
	if trimmed := strings.TrimSuffix(rest, "\n"); strings.HasSuffix(trimmed, "\n"+delimiter) {
		return strings.TrimSuffix(trimmed, "\n"+delimiter), "", nil
	}
	return "", "", ErrNoFrontmatter
}

// Join assembles frontmatter and body back into the delimited form.
// The header must be YAML text without delimiter lines. Output always
// ends with a single trailing newline, which keeps serialization a fixed
// point across repeated conversions.
func Join(header, body string) string {
	header = strings.TrimSuffix(header, "\n")
	var b strings.Builder
	b.WriteString(delimiter)
	b.WriteByte('\n')
	if header != "" {
		b.WriteString(header)
		b.WriteByte('\n')
	}
	b.WriteString(delimiter)
	b.WriteByte('\n')
	if body != "" {
		b.WriteString(body)
		b.WriteByte('\n')
	}
	return b.String()
}
