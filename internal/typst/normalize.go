package typst

import "strings"

// TOCMarker is the line that requests an inline table of contents.
const TOCMarker = "[toc]"

// TOCSentinel replaces TOCMarker lines before parsing. It survives the
// parser as plain text and is substituted while rendering text runs.
const TOCSentinel = "MD2TYPSTTOCSENTINEL9c41e7"

// outlineDirective is emitted in place of the sentinel when TOC is enabled.
const outlineDirective = "\n#outline()\n"

// NormalizeTokens replaces every line whose trimmed content is exactly
// TOCMarker with TOCSentinel. Every output line ends with a newline.
// It reports whether any marker was found.
func NormalizeTokens(markdown string) (string, bool) {
	var b strings.Builder
	b.Grow(len(markdown) + len(TOCSentinel))

	found := false
	for line := range strings.Lines(markdown) {
		line = strings.TrimSuffix(line, "\n")
		line = strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(line) == TOCMarker {
			found = true
			b.WriteString(TOCSentinel)
		} else {
			b.WriteString(line)
		}
		b.WriteByte('\n')
	}
	return b.String(), found
}

// restoreMarker puts TOCMarker back in literals that captured a sentinel
// line, such as code and math.
func restoreMarker(literal string) string {
	return strings.ReplaceAll(literal, TOCSentinel, TOCMarker)
}
