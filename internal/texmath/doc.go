// Package texmath translates LaTeX math literals into Typst math syntax.
//
// The translator covers the commands commonly found in Markdown documents:
// Greek letters, operators and relations, fractions, roots, font and accent
// commands, scripts, delimiters and matrix-like environments. It is
// best-effort: ToTypst never fails and returns its trimmed input when the
// literal cannot be translated.
package texmath
