package typst

import (
	"strings"

	"github.com/alnah/go-md2typst/internal/document"
)

// RenderInline renders an inline node. Block nodes render to the empty string here.
func (r *Renderer) RenderInline(n document.Node) string {
	switch n := n.(type) {
	case *document.Text:
		return r.renderText(n.Value)
	case *document.Code:
		literal := restoreMarker(n.Literal)
		fence := Fence(literal, InlineFenceMin)
		return fence + escapeInlineCode(literal) + fence
	case *document.SoftBreak:
		return " "
	case *document.LineBreak:
		return "\\\n"
	case *document.Emphasis:
		return wrapMarkup("_", r.RenderInlines(n))
	case *document.Strong:
		return wrapMarkup("*", r.RenderInlines(n))
	case *document.Strikethrough:
		return wrapFunction("strike", r.RenderInlines(n))
	case *document.Superscript:
		return wrapFunction("super", r.RenderInlines(n))
	case *document.Subscript:
		return wrapFunction("sub", r.RenderInlines(n))
	case *document.Underline:
		return wrapFunction("underline", r.RenderInlines(n))
	case *document.Spoiler:
		return wrapFunction("hide", r.RenderInlines(n))
	case *document.Link:
		label := strings.TrimSpace(r.RenderInlines(n))
		if label == "" {
			label = EscapeText(n.URL)
		}
		return hyperlink(n.URL, label)
	case *document.Image:
		label := strings.TrimSpace(r.RenderInlines(n))
		if label == "" {
			label = "image"
		}
		return hyperlink(n.URL, label)
	case *document.WikiLink:
		label := "wiki"
		if strings.TrimSpace(n.URL) != "" {
			label = EscapeText(n.URL)
		}
		return hyperlink(n.URL, label)
	case *document.FootnoteReference:
		if body, ok := r.footnotes[n.Name]; ok {
			return "#footnote[" + body + "]"
		}
		return "#footnote[" + EscapeText(n.Name) + "]"
	case *document.Math:
		return r.renderMath(n)
	case *document.Raw:
		return n.Value
	case *document.EscapedTag:
		return EscapeText(n.Value)
	case *document.Escaped:
		return "\\"
	case *document.HTMLInline:
		return ""
	case document.Inline:
		return r.RenderInlines(n)
	default:
		return ""
	}
}

// renderText escapes a text run and replaces any TOC sentinel in it. The
// sentinel itself never reaches the output.
func (r *Renderer) renderText(text string) string {
	if !strings.Contains(text, TOCSentinel) {
		return EscapeText(text)
	}

	pieces := strings.Split(text, TOCSentinel)
	var b strings.Builder
	for i, piece := range pieces {
		b.WriteString(EscapeText(piece))
		if i < len(pieces)-1 && r.opts.TOC {
			b.WriteString(outlineDirective)
		}
	}
	return b.String()
}

func (r *Renderer) renderMath(m *document.Math) string {
	body := r.opts.Math(strings.TrimSpace(restoreMarker(m.Literal)))
	if m.Display {
		return "$\n" + body + "\n$"
	}
	return "$" + body + "$"
}

func hyperlink(url, label string) string {
	return `#link("` + EscapeString(url) + `")[` + label + "]"
}

func wrapMarkup(marker, body string) string {
	body = strings.TrimSpace(body)
	if body == "" {
		return ""
	}
	return marker + body + marker
}

func wrapFunction(name, body string) string {
	body = strings.TrimSpace(body)
	if body == "" {
		return ""
	}
	return "#" + name + "[" + body + "]"
}
