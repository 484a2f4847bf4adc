package typst

import (
	"strings"

	"github.com/alnah/go-md2typst/internal/document"
)

const thematicBreak = "#line(length: 100%, stroke: 0.5pt)\n\n"

// RenderBlock renders a block node at the given indentation depth.
// Inline nodes render to the empty string here.
func (r *Renderer) RenderBlock(n document.Node, indent int) string {
	switch n := n.(type) {
	case *document.Document:
		return r.RenderBlocks(n, indent)
	case *document.FrontMatter, *document.HTMLBlock, *document.FootnoteDefinition:
		return ""
	case *document.Paragraph:
		return r.renderParagraph(n)
	case *document.Heading:
		return r.renderHeading(n)
	case *document.BlockQuote:
		return wrapQuote(strings.TrimSpace(r.RenderBlocks(n, indent+1)))
	case *document.List:
		return r.renderList(n, indent)
	case *document.ListItem, *document.TaskItem:
		return r.RenderBlocks(n, indent)
	case *document.CodeBlock:
		return r.renderCodeBlock(n)
	case *document.ThematicBreak:
		return thematicBreak
	case *document.Table:
		return r.renderTable(n)
	case *document.TableRow, *document.TableCell:
		return r.RenderBlocks(n, indent)
	case *document.DescriptionList:
		return r.renderDescriptionList(n, indent)
	case *document.DescriptionItem:
		return r.renderDescriptionItem(n, indent)
	case *document.DescriptionTerm, *document.DescriptionDetails:
		return r.RenderBlocks(n, indent)
	case *document.Alert:
		return r.renderAlert(n, indent)
	case document.Block:
		return r.RenderBlocks(n, indent)
	default:
		return ""
	}
}

func (r *Renderer) renderParagraph(p *document.Paragraph) string {
	if math, ok := soleDisplayMath(p); ok {
		return r.renderMath(math) + "\n\n"
	}
	text := strings.TrimSpace(r.RenderInlines(p))
	if text == "" {
		return ""
	}
	return text + "\n\n"
}

// soleDisplayMath returns the paragraph's only child when it is display math.
func soleDisplayMath(p *document.Paragraph) (*document.Math, bool) {
	children := p.Nodes()
	if len(children) != 1 {
		return nil, false
	}
	math, ok := children[0].(*document.Math)
	if !ok || !math.Display {
		return nil, false
	}
	return math, true
}

func (r *Renderer) renderHeading(h *document.Heading) string {
	title := strings.TrimSpace(r.RenderInlines(h))
	if title == "" {
		return ""
	}
	return strings.Repeat("=", max(h.Level, 1)) + " " + title + "\n\n"
}

func wrapQuote(inner string) string {
	if inner == "" {
		return ""
	}
	return "#quote[\n" + inner + "\n]\n\n"
}

func (r *Renderer) renderAlert(a *document.Alert, indent int) string {
	inner := strings.TrimSpace(r.RenderBlocks(a, indent+1))
	if inner == "" {
		return ""
	}
	title := a.Title
	if title == "" {
		title = a.Kind.DefaultTitle()
	}
	return "#quote[\n*" + EscapeText(title) + "*\n\n" + inner + "\n]\n\n"
}

func (r *Renderer) renderCodeBlock(c *document.CodeBlock) string {
	lang := ""
	if fields := strings.Fields(c.Info); len(fields) > 0 {
		lang = r.opts.Language(fields[0])
	}
	literal := restoreMarker(c.Literal)
	fence := Fence(literal, BlockFenceMin)

	var b strings.Builder
	b.WriteString(fence)
	b.WriteString(lang)
	b.WriteByte('\n')
	b.WriteString(strings.TrimRight(literal, "\n"))
	b.WriteByte('\n')
	b.WriteString(fence)
	b.WriteString("\n\n")
	return b.String()
}

func (r *Renderer) renderDescriptionList(l *document.DescriptionList, indent int) string {
	var b strings.Builder
	for _, item := range l.Nodes() {
		if item, ok := item.(*document.DescriptionItem); ok {
			b.WriteString(r.renderDescriptionItem(item, indent))
		}
	}
	b.WriteByte('\n')
	return b.String()
}

func (r *Renderer) renderDescriptionItem(item *document.DescriptionItem, indent int) string {
	var term, details string
	for _, child := range item.Nodes() {
		switch child := child.(type) {
		case *document.DescriptionTerm:
			if s := strings.TrimSpace(r.RenderBlocks(child, indent)); s != "" {
				term = s
			}
		case *document.DescriptionDetails:
			if s := strings.TrimSpace(r.RenderBlocks(child, indent+1)); s != "" {
				details = s
			}
		}
	}

	if term == "" && details == "" {
		return ""
	}

	var b strings.Builder
	b.WriteString(indentUnit(indent))
	b.WriteString("- ")
	switch {
	case term == "":
		b.WriteString(details)
	case details == "":
		b.WriteString("*" + term + "*")
	default:
		b.WriteString("*" + term + "*: " + strings.ReplaceAll(details, "\n", " "))
	}
	b.WriteByte('\n')
	return b.String()
}
