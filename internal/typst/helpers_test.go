package typst

import "github.com/alnah/go-md2typst/internal/document"

func text(s string) *document.Text { return &document.Text{Value: s} }

func para(children ...document.Node) *document.Paragraph {
	return &document.Paragraph{Container: document.Of(children...)}
}

func doc(children ...document.Node) *document.Document {
	return &document.Document{Container: document.Of(children...)}
}

func item(children ...document.Node) *document.ListItem {
	return &document.ListItem{Container: document.Of(children...)}
}

func row(cells ...string) *document.TableRow {
	r := &document.TableRow{}
	for _, c := range cells {
		cell := &document.TableCell{}
		if c != "" {
			cell.Children = []document.Node{text(c)}
		}
		r.Children = append(r.Children, cell)
	}
	return r
}
