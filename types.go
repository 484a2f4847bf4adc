package md2typst

import (
	"github.com/alnah/go-md2typst/internal/pipeline"
)

// Input contains conversion parameters.
// Empty strings and a nil TOC mean "not set": front matter then applies.
type Input struct {
	Markdown string // Markdown content, optionally starting with YAML front matter (required)

	Title  string // Overrides the front matter title
	Author string // Overrides front matter author and authors
	Lang   string // Overrides the front matter lang and CJK detection
	TOC    *bool  // Forces the outline on or off

	// SourceDir resolves relative image and link targets to file:// URLs.
	// Empty disables rewriting.
	SourceDir string

	// TypstOnly skips compilation. ConvertResult.PDF is then nil.
	TypstOnly bool
}

// ConvertResult contains the output of a conversion.
type ConvertResult struct {
	// Typst is the composed source: style template followed by the
	// #article(...) call wrapping the document body.
	Typst []byte
	// PDF is nil when Input.TypstOnly was set.
	PDF      []byte
	Document *Document
}

// Document is a transpiled document before template composition.
type Document struct {
	Title   string
	Authors []string
	Lang    string
	// Body is Typst markup, empty or ending with one newline.
	Body string
	// TOC reports whether the template is asked to render an outline.
	TOC bool
}

func newDocument(c *pipeline.Converted) *Document {
	return &Document{
		Title:   c.Title,
		Authors: c.Authors,
		Lang:    c.Lang,
		Body:    c.Body,
		TOC:     c.TOC,
	}
}

func (d *Document) converted() *pipeline.Converted {
	return &pipeline.Converted{
		Title:   d.Title,
		Authors: d.Authors,
		Lang:    d.Lang,
		Body:    d.Body,
		TOC:     d.TOC,
	}
}

// Ptr returns a pointer to v, for optional fields such as Input.TOC.
func Ptr[T any](v T) *T {
	return &v
}
