package typst

import "strings"

// EscapeText backslash-escapes the characters Typst markup reserves:
// backslash, #, [, ], {, }, *, _, $ and backtick. All of them are ASCII, so
// the input is copied byte by byte and invalid UTF-8 passes through as is.
func EscapeText(s string) string {
	if !strings.ContainsAny(s, "\\#[]{}*_$`") {
		return s
	}

	var b strings.Builder
	b.Grow(len(s) + 8)
	for i := range len(s) {
		switch s[i] {
		case '\\', '#', '[', ']', '{', '}', '*', '_', '$', '`':
			b.WriteByte('\\')
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

var stringEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

// EscapeString escapes s for use inside a Typst string literal.
func EscapeString(s string) string {
	return stringEscaper.Replace(s)
}

var inlineCodeEscaper = strings.NewReplacer(`\`, `\\`, "`", "\\`")

func escapeInlineCode(s string) string {
	return inlineCodeEscaper.Replace(s)
}
