// Package document defines the parsed Markdown tree consumed by the Typst renderer.
//
// The tree is a closed set of node types split into two families, Block and
// Inline. Parsers produce it once; renderers only read it. Node kinds the
// renderer does not model explicitly are represented by OtherBlock and
// OtherInline, whose children are still rendered.
package document
