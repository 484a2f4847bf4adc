package typst

import (
	"strings"

	"github.com/alnah/go-md2typst/internal/document"
)

// MathFunc translates a LaTeX math literal into Typst math. It must not fail:
// implementations fall back to returning their input.
type MathFunc func(latex string) string

// LanguageFunc maps a code block language tag to the name Typst should see.
type LanguageFunc func(lang string) string

// Options configures a render.
type Options struct {
	// TOC enables substitution of the inline table-of-contents sentinel.
	TOC bool

	// Math translates math literals. Nil keeps literals unchanged.
	Math MathFunc

	// Language rewrites code block language tags. Nil keeps them unchanged.
	Language LanguageFunc
}

// Renderer renders one document. It is not safe for concurrent use until
// CollectFootnotes has returned; after that it is read-only.
type Renderer struct {
	opts      Options
	footnotes map[string]string
}

// NewRenderer creates a Renderer with an empty footnote map.
func NewRenderer(opts Options) *Renderer {
	if opts.Math == nil {
		opts.Math = strings.TrimSpace
	}
	if opts.Language == nil {
		opts.Language = func(lang string) string { return lang }
	}
	return &Renderer{opts: opts, footnotes: make(map[string]string)}
}

// Render collects footnotes from root and renders it. The result is trimmed
// and, when non-empty, ends with exactly one newline.
func Render(root *document.Document, opts Options) string {
	r := NewRenderer(opts)
	r.CollectFootnotes(root)

	body := strings.TrimSpace(r.RenderBlocks(root, 0))
	if body == "" {
		return ""
	}
	return body + "\n"
}

// Footnote returns the rendered body of a collected footnote.
func (r *Renderer) Footnote(name string) (string, bool) {
	body, ok := r.footnotes[name]
	return body, ok
}

// RenderBlocks renders the children of parent as blocks.
func (r *Renderer) RenderBlocks(parent document.Node, indent int) string {
	var b strings.Builder
	for _, child := range document.ChildrenOf(parent) {
		b.WriteString(r.RenderBlock(child, indent))
	}
	return b.String()
}

// RenderInlines renders the children of parent as inlines.
func (r *Renderer) RenderInlines(parent document.Node) string {
	var b strings.Builder
	for _, child := range document.ChildrenOf(parent) {
		b.WriteString(r.RenderInline(child))
	}
	return b.String()
}
