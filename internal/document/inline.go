package document

// Text is a run of literal characters.
type Text struct {
	Value string
}

// Code is an inline code span.
type Code struct {
	Literal string
}

// SoftBreak is a newline inside a paragraph.
type SoftBreak struct{}

// LineBreak is a hard line break.
type LineBreak struct{}

// Emphasis is italic text.
type Emphasis struct{ Container }

// Strong is bold text.
type Strong struct{ Container }

// Strikethrough is deleted text.
type Strikethrough struct{ Container }

// Superscript is raised text.
type Superscript struct{ Container }

// Subscript is lowered text.
type Subscript struct{ Container }

// Underline is underlined text.
type Underline struct{ Container }

// Spoiler is text hidden until revealed.
type Spoiler struct{ Container }

// Link is a hyperlink. Children form the label.
type Link struct {
	Container
	URL   string
	Title string
}

// Image is an image reference. Children form the alternative text.
type Image struct {
	Container
	URL   string
	Title string
}

// WikiLink is a [[target]] link.
type WikiLink struct {
	Container
	URL string
}

// FootnoteReference points at a FootnoteDefinition by name.
type FootnoteReference struct {
	Name string
}

// Math is a LaTeX math literal.
type Math struct {
	Literal string
	Display bool
}

// Raw is pre-rendered output that must be emitted verbatim.
type Raw struct {
	Value string
}

// EscapedTag is a tag-like run the parser decided to keep as text.
type EscapedTag struct {
	Value string
}

// Escaped is a backslash escape marker.
type Escaped struct{}

// HTMLInline is raw inline HTML. It renders to nothing.
type HTMLInline struct {
	Literal string
}

// OtherInline is an inline kind without a dedicated type.
type OtherInline struct {
	Container
	Kind string
}

func (*Text) node()              {}
func (*Code) node()              {}
func (*SoftBreak) node()         {}
func (*LineBreak) node()         {}
func (*Emphasis) node()          {}
func (*Strong) node()            {}
func (*Strikethrough) node()     {}
func (*Superscript) node()       {}
func (*Subscript) node()         {}
func (*Underline) node()         {}
func (*Spoiler) node()           {}
func (*Link) node()              {}
func (*Image) node()             {}
func (*WikiLink) node()          {}
func (*FootnoteReference) node() {}
func (*Math) node()              {}
func (*Raw) node()               {}
func (*EscapedTag) node()        {}
func (*Escaped) node()           {}
func (*HTMLInline) node()        {}
func (*OtherInline) node()       {}

func (*Text) inline()              {}
func (*Code) inline()              {}
func (*SoftBreak) inline()         {}
func (*LineBreak) inline()         {}
func (*Emphasis) inline()          {}
func (*Strong) inline()            {}
func (*Strikethrough) inline()     {}
func (*Superscript) inline()       {}
func (*Subscript) inline()         {}
func (*Underline) inline()         {}
func (*Spoiler) inline()           {}
func (*Link) inline()              {}
func (*Image) inline()             {}
func (*WikiLink) inline()          {}
func (*FootnoteReference) inline() {}
func (*Math) inline()              {}
func (*Raw) inline()               {}
func (*EscapedTag) inline()        {}
func (*Escaped) inline()           {}
func (*HTMLInline) inline()        {}
func (*OtherInline) inline()       {}
