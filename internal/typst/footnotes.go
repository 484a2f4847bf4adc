package typst

import (
	"strings"

	"github.com/alnah/go-md2typst/internal/document"
)

// CollectFootnotes renders every top-level footnote definition of root and
// stores the non-empty bodies by name. It must run before any reference is
// rendered so that references preceding their definition resolve.
func (r *Renderer) CollectFootnotes(root *document.Document) {
	for _, child := range root.Nodes() {
		def, ok := child.(*document.FootnoteDefinition)
		if !ok {
			continue
		}
		var b strings.Builder
		for _, n := range def.Nodes() {
			b.WriteString(r.RenderBlock(n, 0))
		}
		if body := strings.TrimSpace(b.String()); body != "" {
			r.footnotes[def.Name] = body
		}
	}
}
