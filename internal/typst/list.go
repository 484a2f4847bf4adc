package typst

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/alnah/go-md2typst/internal/document"
)

func indentUnit(depth int) string {
	return strings.Repeat("  ", depth)
}

func (r *Renderer) renderList(l *document.List, indent int) string {
	var b strings.Builder
	index := max(l.Start, 1)
	for _, child := range l.Nodes() {
		switch child.(type) {
		case *document.ListItem, *document.TaskItem:
		default:
			continue
		}
		b.WriteString(r.renderItem(child, l.Ordered, index, indent))
		if l.Ordered {
			index++
		}
	}
	b.WriteByte('\n')
	return b.String()
}

// renderItem renders one list item. The first paragraph becomes the head,
// written right after the marker; everything else is tail content rendered
// one level deeper and re-indented below it.
func (r *Renderer) renderItem(item document.Node, ordered bool, index, indent int) string {
	marker := "- "
	if ordered {
		marker = strconv.Itoa(index) + ". "
	}

	task := ""
	if ti, ok := item.(*document.TaskItem); ok {
		task = "[ ] "
		if ti.Checked {
			task = "[x] "
		}
	}

	var head string
	var tail strings.Builder
	for _, child := range document.ChildrenOf(item) {
		if p, ok := child.(*document.Paragraph); ok && head == "" {
			head = strings.TrimSpace(r.RenderInlines(p))
			continue
		}
		tail.WriteString(r.RenderBlock(child, indent+1))
	}

	var b strings.Builder
	b.WriteString(indentUnit(indent))
	b.WriteString(marker)
	b.WriteString(task)
	b.WriteString(head)
	b.WriteByte('\n')

	if rest := strings.TrimRightFunc(tail.String(), unicode.IsSpace); rest != "" {
		b.WriteString(indentBlock(rest, indent+1))
		b.WriteByte('\n')
	}
	return b.String()
}

// indentBlock prefixes every non-empty line of block with depth indent units.
func indentBlock(block string, depth int) string {
	prefix := indentUnit(depth)
	var b strings.Builder
	for line := range strings.Lines(block) {
		line = strings.TrimSuffix(line, "\n")
		line = strings.TrimSuffix(line, "\r")
		if line != "" {
			b.WriteString(prefix)
			b.WriteString(line)
		}
		b.WriteByte('\n')
	}
	return strings.TrimRightFunc(b.String(), unicode.IsSpace)
}
