package markdown

import (
	"strconv"

	"github.com/yuin/goldmark/ast"
)

var (
	KindSubscript      = ast.NewNodeKind("Subscript")
	KindSuperscript    = ast.NewNodeKind("Superscript")
	KindSpoiler        = ast.NewNodeKind("Spoiler")
	KindWikiLink       = ast.NewNodeKind("WikiLink")
	KindMath           = ast.NewNodeKind("Math")
	KindMathBlock      = ast.NewNodeKind("MathBlock")
	KindMultilineQuote = ast.NewNodeKind("MultilineQuote")
)

// SubscriptNode is ~text~.
type SubscriptNode struct {
	ast.BaseInline
	Content string
}

func (n *SubscriptNode) Kind() ast.NodeKind { return KindSubscript }

func (n *SubscriptNode) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{"Content": n.Content}, nil)
}

// SuperscriptNode is ^text^.
type SuperscriptNode struct {
	ast.BaseInline
	Content string
}

func (n *SuperscriptNode) Kind() ast.NodeKind { return KindSuperscript }

func (n *SuperscriptNode) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{"Content": n.Content}, nil)
}

// SpoilerNode is ||text||.
type SpoilerNode struct {
	ast.BaseInline
	Content string
}

func (n *SpoilerNode) Kind() ast.NodeKind { return KindSpoiler }

func (n *SpoilerNode) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{"Content": n.Content}, nil)
}

// WikiLinkNode is [[target]] or [[target|label]].
type WikiLinkNode struct {
	ast.BaseInline
	Target string
	Label  string
}

func (n *WikiLinkNode) Kind() ast.NodeKind { return KindWikiLink }

func (n *WikiLinkNode) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{
		"Target": n.Target,
		"Label":  n.Label,
	}, nil)
}

// MathNode is $inline$ or $$display$$ math inside a paragraph.
type MathNode struct {
	ast.BaseInline
	Literal string
	Display bool
}

func (n *MathNode) Kind() ast.NodeKind { return KindMath }

func (n *MathNode) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{
		"Literal": n.Literal,
		"Display": strconv.FormatBool(n.Display),
	}, nil)
}

// MathBlockNode is display math opened by a line starting with $$.
type MathBlockNode struct {
	ast.BaseBlock
	Literal []byte
	closed  bool
}

func (n *MathBlockNode) Kind() ast.NodeKind { return KindMathBlock }

func (n *MathBlockNode) IsRaw() bool { return true }

func (n *MathBlockNode) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{"Literal": string(n.Literal)}, nil)
}

// MultilineQuoteNode is a block quote fenced by two ">>>" lines.
type MultilineQuoteNode struct {
	ast.BaseBlock
}

func (n *MultilineQuoteNode) Kind() ast.NodeKind { return KindMultilineQuote }

func (n *MultilineQuoteNode) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, nil, nil)
}
