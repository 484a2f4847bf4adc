// Package typst renders a document tree as Typst markup.
//
// Rendering is a pure function of the tree and its Options: footnote bodies
// are collected from the top-level definitions first, then blocks are
// rendered in order. Every block renderer returns either the empty string or
// text ending in a single blank line, so blocks concatenate without
// accumulating irregular spacing.
package typst
