package markdown

import (
	"bytes"
	"regexp"
	"strconv"
	"strings"

	"github.com/yuin/goldmark/ast"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/util"

	"github.com/alnah/go-md2typst/internal/document"
)

var alertPattern = regexp.MustCompile(`(?i)^\[!(note|tip|important|warning|caution)\](?:[ \t]+(.*))?$`)

// converter maps a goldmark tree onto document nodes.
type converter struct {
	source    []byte
	footnotes map[int]string
}

func newConverter(source []byte) *converter {
	return &converter{source: source, footnotes: make(map[int]string)}
}

// collectFootnoteNames records the label of every footnote so references,
// which only carry an index, can be resolved by name.
func (c *converter) collectFootnoteNames(root ast.Node) {
	_ = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if fn, ok := n.(*extast.Footnote); ok && entering {
			c.footnotes[fn.Index] = string(fn.Ref)
		}
		return ast.WalkContinue, nil
	})
}

func (c *converter) convertDocument(root ast.Node) *document.Document {
	return &document.Document{Container: document.Of(c.convertBlocks(root)...)}
}

func (c *converter) convertBlocks(parent ast.Node) []document.Node {
	var out []document.Node
	for child := parent.FirstChild(); child != nil; child = child.NextSibling() {
		out = append(out, c.convertBlock(child)...)
	}
	return out
}

func (c *converter) convertBlock(node ast.Node) []document.Node {
	switch n := node.(type) {
	case *ast.Paragraph, *ast.TextBlock:
		return one(&document.Paragraph{Container: document.Of(c.convertInlines(n)...)})
	case *ast.Heading:
		return one(&document.Heading{Container: document.Of(c.convertInlines(n)...), Level: n.Level})
	case *ast.ThematicBreak:
		return one(&document.ThematicBreak{})
	case *ast.CodeBlock:
		return one(&document.CodeBlock{Literal: c.lines(n)})
	case *ast.FencedCodeBlock:
		return one(c.convertFencedCode(n))
	case *ast.Blockquote:
		return one(c.convertQuote(n))
	case *MultilineQuoteNode:
		return one(&document.BlockQuote{Container: document.Of(c.convertBlocks(n)...), Multiline: true})
	case *ast.List:
		return one(&document.List{
			Container: document.Of(c.convertBlocks(n)...),
			Ordered:   n.IsOrdered(),
			Start:     n.Start,
		})
	case *ast.ListItem:
		return one(c.convertListItem(n))
	case *ast.HTMLBlock:
		literal := c.lines(n)
		if n.HasClosure() {
			literal += string(n.ClosureLine.Value(c.source))
		}
		return one(&document.HTMLBlock{Literal: literal})
	case *MathBlockNode:
		return one(&document.Paragraph{Container: document.Of(&document.Math{Literal: string(n.Literal), Display: true})})
	case *extast.Table:
		return one(c.convertTable(n))
	case *extast.TableHeader:
		return one(&document.TableRow{Container: document.Of(c.convertBlocks(n)...), Header: true})
	case *extast.TableRow:
		return one(&document.TableRow{Container: document.Of(c.convertBlocks(n)...)})
	case *extast.TableCell:
		return one(&document.TableCell{Container: document.Of(c.convertInlines(n)...)})
	case *extast.DefinitionList:
		return one(c.convertDefinitionList(n))
	case *extast.FootnoteList:
		return c.convertBlocks(n)
	case *extast.Footnote:
		return one(&document.FootnoteDefinition{Container: document.Of(c.convertBlocks(n)...), Name: string(n.Ref)})
	default:
		return one(&document.OtherBlock{Container: document.Of(c.convertBlocks(n)...), Kind: node.Kind().String()})
	}
}

func one(n document.Node) []document.Node {
	return []document.Node{n}
}

// lines concatenates the raw source lines of a block.
func (c *converter) lines(n ast.Node) string {
	var b strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		b.Write(seg.Value(c.source))
	}
	return b.String()
}

// convertFencedCode maps a fenced block to a code block, or to display math
// when its language is "math".
func (c *converter) convertFencedCode(n *ast.FencedCodeBlock) document.Node {
	info := ""
	if n.Info != nil {
		info = strings.TrimSpace(string(n.Info.Segment.Value(c.source)))
	}
	if fields := strings.Fields(info); len(fields) > 0 && fields[0] == "math" {
		return &document.Paragraph{Container: document.Of(&document.Math{Literal: c.lines(n), Display: true})}
	}
	return &document.CodeBlock{Info: info, Literal: c.lines(n)}
}

func (c *converter) convertQuote(n *ast.Blockquote) document.Node {
	children := c.convertBlocks(n)
	if alert, ok := c.alertOf(n, children); ok {
		return alert
	}
	return &document.BlockQuote{Container: document.Of(children...)}
}

// alertOf recognises a quote whose first line is a "[!KIND]" marker,
// optionally followed by a custom title.
func (c *converter) alertOf(n *ast.Blockquote, children []document.Node) (*document.Alert, bool) {
	para, ok := n.FirstChild().(*ast.Paragraph)
	if !ok || para.Lines().Len() == 0 || len(children) == 0 {
		return nil, false
	}
	first := para.Lines().At(0)
	match := alertPattern.FindSubmatch(bytes.TrimSpace(first.Value(c.source)))
	if match == nil {
		return nil, false
	}
	kind, ok := document.ParseAlertKind(string(match[1]))
	if !ok {
		return nil, false
	}
	head, ok := children[0].(*document.Paragraph)
	if !ok {
		return nil, false
	}

	body := children[1:]
	if rest := dropFirstLine(head.Children); len(rest) > 0 {
		body = append([]document.Node{&document.Paragraph{Container: document.Of(rest...)}}, body...)
	}
	return &document.Alert{
		Container: document.Of(body...),
		Kind:      kind,
		Title:     strings.TrimSpace(string(match[2])),
	}, true
}

func dropFirstLine(inlines []document.Node) []document.Node {
	for i, n := range inlines {
		switch n.(type) {
		case *document.SoftBreak, *document.LineBreak:
			return inlines[i+1:]
		}
	}
	return nil
}

func (c *converter) convertListItem(n *ast.ListItem) document.Node {
	children := c.convertBlocks(n)
	if first := n.FirstChild(); first != nil {
		if box, ok := first.FirstChild().(*extast.TaskCheckBox); ok {
			return &document.TaskItem{Container: document.Of(children...), Checked: box.IsChecked}
		}
	}
	return &document.ListItem{Container: document.Of(children...)}
}

func (c *converter) convertTable(n *extast.Table) document.Node {
	aligns := make([]document.Alignment, len(n.Alignments))
	for i, a := range n.Alignments {
		switch a {
		case extast.AlignLeft:
			aligns[i] = document.AlignLeft
		case extast.AlignCenter:
			aligns[i] = document.AlignCenter
		case extast.AlignRight:
			aligns[i] = document.AlignRight
		default:
			aligns[i] = document.AlignNone
		}
	}
	return &document.Table{
		Container:  document.Of(c.convertBlocks(n)...),
		Columns:    len(n.Alignments),
		Alignments: aligns,
	}
}

// convertDefinitionList groups each term with the descriptions that follow
// it. Consecutive descriptions are merged into one details block.
func (c *converter) convertDefinitionList(n *extast.DefinitionList) document.Node {
	list := &document.DescriptionList{}
	var item *document.DescriptionItem
	var details *document.DescriptionDetails

	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		switch child := child.(type) {
		case *extast.DefinitionTerm:
			term := &document.Paragraph{Container: document.Of(c.convertInlines(child)...)}
			item = &document.DescriptionItem{Container: document.Of(&document.DescriptionTerm{Container: document.Of(term)})}
			details = nil
			list.Children = append(list.Children, item)
		case *extast.DefinitionDescription:
			if item == nil {
				item = &document.DescriptionItem{}
				list.Children = append(list.Children, item)
			}
			if details == nil {
				details = &document.DescriptionDetails{}
				item.Children = append(item.Children, details)
			}
			details.Children = append(details.Children, c.convertBlocks(child)...)
		}
	}
	return list
}

// convertInlines converts the inline children of parent, merging adjacent
// text runs.
func (c *converter) convertInlines(parent ast.Node) []document.Node {
	var out []document.Node
	for child := parent.FirstChild(); child != nil; child = child.NextSibling() {
		for _, n := range c.convertInline(child) {
			if t, ok := n.(*document.Text); ok && len(out) > 0 {
				if prev, ok := out[len(out)-1].(*document.Text); ok {
					prev.Value += t.Value
					continue
				}
			}
			out = append(out, n)
		}
	}
	return out
}

func (c *converter) convertInline(node ast.Node) []document.Node {
	switch n := node.(type) {
	case *ast.Text:
		var out []document.Node
		if value := n.Segment.Value(c.source); len(value) > 0 {
			out = append(out, &document.Text{Value: c.text(value, n.IsRaw())})
		}
		if n.HardLineBreak() {
			out = append(out, &document.LineBreak{})
		} else if n.SoftLineBreak() {
			out = append(out, &document.SoftBreak{})
		}
		return out
	case *ast.String:
		return one(&document.Text{Value: string(n.Value)})
	case *ast.CodeSpan:
		return one(&document.Code{Literal: c.codeSpan(n)})
	case *ast.Emphasis:
		children := document.Of(c.convertInlines(n)...)
		switch {
		case n.Level < 2:
			return one(&document.Emphasis{Container: children})
		case c.underscored(n):
			return one(&document.Underline{Container: children})
		default:
			return one(&document.Strong{Container: children})
		}
	case *ast.Link:
		return one(&document.Link{
			Container: document.Of(c.convertInlines(n)...),
			URL:       string(util.UnescapePunctuations(n.Destination)),
			Title:     string(n.Title),
		})
	case *ast.Image:
		return one(&document.Image{
			Container: document.Of(c.convertInlines(n)...),
			URL:       string(util.UnescapePunctuations(n.Destination)),
			Title:     string(n.Title),
		})
	case *ast.AutoLink:
		url := string(n.URL(c.source))
		if n.AutoLinkType == ast.AutoLinkEmail {
			label := &document.Text{Value: string(n.Label(c.source))}
			if !strings.HasPrefix(strings.ToLower(url), "mailto:") {
				url = "mailto:" + url
			}
			return one(&document.Link{Container: document.Of(label), URL: url})
		}
		return one(&document.Link{URL: url})
	case *ast.RawHTML:
		var b strings.Builder
		for i := 0; i < n.Segments.Len(); i++ {
			seg := n.Segments.At(i)
			b.Write(seg.Value(c.source))
		}
		return one(&document.HTMLInline{Literal: b.String()})
	case *extast.Strikethrough:
		return one(&document.Strikethrough{Container: document.Of(c.convertInlines(n)...)})
	case *extast.TaskCheckBox, *extast.FootnoteBacklink:
		return nil
	case *extast.FootnoteLink:
		name, ok := c.footnotes[n.Index]
		if !ok {
			name = strconv.Itoa(n.Index)
		}
		return one(&document.FootnoteReference{Name: name})
	case *SubscriptNode:
		return one(&document.Subscript{Container: document.Of(&document.Text{Value: n.Content})})
	case *SuperscriptNode:
		return one(&document.Superscript{Container: document.Of(&document.Text{Value: n.Content})})
	case *SpoilerNode:
		return one(&document.Spoiler{Container: document.Of(&document.Text{Value: n.Content})})
	case *WikiLinkNode:
		link := &document.WikiLink{URL: n.Target}
		if n.Label != "" {
			link.Children = []document.Node{&document.Text{Value: n.Label}}
		}
		return one(link)
	case *MathNode:
		return one(&document.Math{Literal: n.Literal, Display: n.Display})
	default:
		return one(&document.OtherInline{Container: document.Of(c.convertInlines(n)...), Kind: node.Kind().String()})
	}
}

// text decodes backslash escapes and character references unless the
// segment is raw.
func (c *converter) text(value []byte, raw bool) string {
	if raw {
		return string(value)
	}
	value = util.UnescapePunctuations(value)
	value = util.ResolveNumericReferences(value)
	value = util.ResolveEntityNames(value)
	return string(value)
}

func (c *converter) codeSpan(n *ast.CodeSpan) string {
	var b strings.Builder
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		switch child := child.(type) {
		case *ast.Text:
			value := child.Segment.Value(c.source)
			if trimmed, ok := bytes.CutSuffix(value, []byte("\n")); ok {
				b.Write(trimmed)
				b.WriteByte(' ')
				continue
			}
			b.Write(value)
		case *ast.String:
			b.Write(child.Value)
		}
	}
	return b.String()
}

// underscored reports whether a strong emphasis was written with "__", which
// this converter treats as underline.
func (c *converter) underscored(n *ast.Emphasis) bool {
	v, ok := n.Attribute(underscoreAttr)
	return ok && v == true
}
