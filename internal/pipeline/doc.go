// Package pipeline turns Markdown into a complete Typst source file.
//
// The stages are:
//   - preprocessing (line endings, inline TOC markers)
//   - parsing with goldmark into the document tree
//   - relative link rewriting
//   - rendering the tree as Typst markup
//   - composing the body with a style template
//
// Compiling the Typst source to PDF is handled by the root md2typst package.
package pipeline
