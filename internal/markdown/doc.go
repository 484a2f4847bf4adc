// Package markdown parses Markdown with goldmark and converts the result into
// the document tree consumed by the Typst renderer.
//
// The parser enables GFM (tables, strikethrough, task lists and autolinks),
// footnotes and definition lists, plus the extensions defined here: sub- and
// superscript, spoilers, wikilinks, dollar math, ">>>" fenced quotes and
// GitHub-style alerts.
package markdown
