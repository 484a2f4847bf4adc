package typst

import (
	"strconv"
	"strings"

	"github.com/alnah/go-md2typst/internal/document"
)

func alignmentName(a document.Alignment) string {
	switch a {
	case document.AlignCenter:
		return "center"
	case document.AlignRight:
		return "right"
	default:
		return "left"
	}
}

// renderTable emits a Typst table whose width is the larger of the declared
// column count and the widest row. Short rows are padded with empty cells and
// alignments beyond the column count are dropped.
func (r *Renderer) renderTable(t *document.Table) string {
	var rows [][]string
	widest := 0
	for _, child := range t.Nodes() {
		row, ok := child.(*document.TableRow)
		if !ok {
			continue
		}
		var cells []string
		for _, c := range row.Nodes() {
			if cell, ok := c.(*document.TableCell); ok {
				cells = append(cells, r.renderCell(cell))
			}
		}
		widest = max(widest, len(cells))
		rows = append(rows, cells)
	}

	columns := max(t.Columns, widest)
	if columns == 0 || len(rows) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("#table(\n")
	b.WriteString("  columns: " + strconv.Itoa(columns) + ",\n")

	if len(t.Alignments) > 0 {
		aligns := t.Alignments[:min(len(t.Alignments), columns)]
		names := make([]string, len(aligns))
		for i, a := range aligns {
			names[i] = alignmentName(a)
		}
		b.WriteString("  align: (" + strings.Join(names, ", ") + "),\n")
	}

	for _, row := range rows {
		for col := range columns {
			cell := ""
			if col < len(row) {
				cell = row[col]
			}
			b.WriteString("  [" + cell + "],\n")
		}
	}

	b.WriteString(")\n\n")
	return b.String()
}

// renderCell flattens the content of a cell to a single line. Inline runs
// accumulate until a block interrupts them; every fragment is trimmed and the
// non-empty ones are joined with single spaces.
func (r *Renderer) renderCell(cell *document.TableCell) string {
	var parts []string
	var pending strings.Builder

	push := func(s string) {
		if s = strings.TrimSpace(s); s != "" {
			parts = append(parts, s)
		}
	}
	flush := func() {
		push(pending.String())
		pending.Reset()
	}

	for _, child := range cell.Nodes() {
		switch child := child.(type) {
		case *document.Paragraph:
			flush()
			push(r.RenderInlines(child))
		case document.Block:
			flush()
			push(strings.ReplaceAll(strings.TrimSpace(r.RenderBlock(child, 0)), "\n", " "))
		default:
			pending.WriteString(r.RenderInline(child))
		}
	}
	flush()

	return strings.Join(parts, " ")
}
