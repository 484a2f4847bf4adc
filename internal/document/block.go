package document

// Alignment is the horizontal alignment of a table column.
type Alignment int

// Table column alignments.
const (
	AlignNone Alignment = iota
	AlignLeft
	AlignCenter
	AlignRight
)

// AlertKind identifies a GitHub-style alert block.
type AlertKind int

// Alert kinds, in the order GitHub documents them.
const (
	AlertNote AlertKind = iota
	AlertTip
	AlertImportant
	AlertWarning
	AlertCaution
)

// DefaultTitle returns the heading used when an alert has no custom title.
func (k AlertKind) DefaultTitle() string {
	switch k {
	case AlertTip:
		return "Tip"
	case AlertImportant:
		return "Important"
	case AlertWarning:
		return "Warning"
	case AlertCaution:
		return "Caution"
	default:
		return "Note"
	}
}

// ParseAlertKind maps a marker such as "NOTE" or "warning" to its kind.
func ParseAlertKind(s string) (AlertKind, bool) {
	switch s {
	case "NOTE", "note", "Note":
		return AlertNote, true
	case "TIP", "tip", "Tip":
		return AlertTip, true
	case "IMPORTANT", "important", "Important":
		return AlertImportant, true
	case "WARNING", "warning", "Warning":
		return AlertWarning, true
	case "CAUTION", "caution", "Caution":
		return AlertCaution, true
	}
	return AlertNote, false
}

// Document is the root of a parsed file.
type Document struct{ Container }

// FrontMatter is a metadata block left in the tree by the parser. It renders to nothing.
type FrontMatter struct {
	Literal string
}

// Paragraph holds inline children.
type Paragraph struct{ Container }

// Heading is an ATX or setext heading. Level is 1 to 6.
type Heading struct {
	Container
	Level int
}

// BlockQuote is a quoted block. Multiline marks the ">>>" fenced form.
type BlockQuote struct {
	Container
	Multiline bool
}

// List is an ordered or bullet list. Start is the declared first ordinal.
type List struct {
	Container
	Ordered bool
	Start   int
}

// ListItem is a plain list item.
type ListItem struct{ Container }

// TaskItem is a list item carrying a checkbox.
type TaskItem struct {
	Container
	Checked bool
}

// CodeBlock is a fenced or indented code block.
type CodeBlock struct {
	Info    string
	Literal string
}

// ThematicBreak is a horizontal rule.
type ThematicBreak struct{}

// Table is a GFM table. Columns is the column count declared by the delimiter row.
type Table struct {
	Container
	Columns    int
	Alignments []Alignment
}

// TableRow holds TableCell children.
type TableRow struct {
	Container
	Header bool
}

// TableCell holds the content of a single cell.
type TableCell struct{ Container }

// FootnoteDefinition is the body of a named footnote.
type FootnoteDefinition struct {
	Container
	Name string
}

// DescriptionList holds DescriptionItem children.
type DescriptionList struct{ Container }

// DescriptionItem pairs a term with its details.
type DescriptionItem struct{ Container }

// DescriptionTerm is the defined term of a DescriptionItem.
type DescriptionTerm struct{ Container }

// DescriptionDetails is the definition of a DescriptionItem.
type DescriptionDetails struct{ Container }

// Alert is a callout block. An empty Title selects the kind's default title.
type Alert struct {
	Container
	Kind  AlertKind
	Title string
}

// HTMLBlock is raw HTML. It renders to nothing.
type HTMLBlock struct {
	Literal string
}

// OtherBlock is a block kind without a dedicated type.
type OtherBlock struct {
	Container
	Kind string
}

func (*Document) node()           {}
func (*FrontMatter) node()        {}
func (*Paragraph) node()          {}
func (*Heading) node()            {}
func (*BlockQuote) node()         {}
func (*List) node()               {}
func (*ListItem) node()           {}
func (*TaskItem) node()           {}
func (*CodeBlock) node()          {}
func (*ThematicBreak) node()      {}
func (*Table) node()              {}
func (*TableRow) node()           {}
func (*TableCell) node()          {}
func (*FootnoteDefinition) node() {}
func (*DescriptionList) node()    {}
func (*DescriptionItem) node()    {}
func (*DescriptionTerm) node()    {}
func (*DescriptionDetails) node() {}
func (*Alert) node()              {}
func (*HTMLBlock) node()          {}
func (*OtherBlock) node()         {}

func (*Document) block()           {}
func (*FrontMatter) block()        {}
func (*Paragraph) block()          {}
func (*Heading) block()            {}
func (*BlockQuote) block()         {}
func (*List) block()               {}
func (*ListItem) block()           {}
func (*TaskItem) block()           {}
func (*CodeBlock) block()          {}
func (*ThematicBreak) block()      {}
func (*Table) block()              {}
func (*TableRow) block()           {}
func (*TableCell) block()          {}
func (*FootnoteDefinition) block() {}
func (*DescriptionList) block()    {}
func (*DescriptionItem) block()    {}
func (*DescriptionTerm) block()    {}
func (*DescriptionDetails) block() {}
func (*Alert) block()              {}
func (*HTMLBlock) block()          {}
func (*OtherBlock) block()         {}
