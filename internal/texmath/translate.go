package texmath

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/alecthomas/participle/v2/lexer"
)

// ErrSyntax indicates a literal the translator cannot interpret, such as
// unbalanced braces or a command missing its argument.
var ErrSyntax = errors.New("invalid math syntax")

// ToTypst translates latex and never fails: empty input yields the empty
// string and untranslatable input is returned trimmed.
func ToTypst(latex string) string {
	trimmed := strings.TrimSpace(latex)
	if trimmed == "" {
		return ""
	}
	out, err := Translate(trimmed)
	if err != nil {
		return trimmed
	}
	return out
}

// Translate converts a LaTeX math literal to Typst math.
func Translate(latex string) (string, error) {
	tokens, err := tokenize(latex)
	if err != nil {
		return "", err
	}
	p := &parser{tokens: tokens}
	atoms, err := p.sequence(nil)
	if err != nil {
		return "", err
	}
	if !p.done() {
		return "", fmt.Errorf("%w: unexpected %q at offset %d", ErrSyntax, p.peek().Value, p.peek().Pos.Offset)
	}
	return join(atoms), nil
}

// atom is one rendered fragment of Typst math.
type atom struct {
	text string
	// compound marks fragments that need parentheses when used as a script.
	compound bool
}

type parser struct {
	tokens []lexer.Token
	pos    int
}

func (p *parser) done() bool {
	p.skipSpace()
	return p.pos >= len(p.tokens)
}

func (p *parser) peek() lexer.Token {
	return p.tokens[p.pos]
}

func (p *parser) next() lexer.Token {
	t := p.tokens[p.pos]
	p.pos++
	return t
}

func (p *parser) skipSpace() {
	for p.pos < len(p.tokens) && p.tokens[p.pos].Type == tokWhitespace {
		p.pos++
	}
}

func isCommand(t lexer.Token, names ...string) bool {
	if t.Type != tokCommand {
		return false
	}
	for _, n := range names {
		if t.Value == `\`+n {
			return true
		}
	}
	return false
}

func isSymbol(t lexer.Token, value string) bool {
	return t.Type == tokSymbol && t.Value == value
}

// sequence parses atoms until stop matches the next token or input ends.
// The stopping token is not consumed.
func (p *parser) sequence(stop func(lexer.Token) bool) ([]atom, error) {
	var atoms []atom
	for {
		p.skipSpace()
		if p.pos >= len(p.tokens) {
			return atoms, nil
		}
		t := p.peek()
		if stop != nil && stop(t) {
			return atoms, nil
		}

		switch t.Type {
		case tokRBrace:
			if stop == nil {
				return nil, fmt.Errorf("%w: unmatched }", ErrSyntax)
			}
			return atoms, nil
		case tokScript:
			p.next()
			arg, err := p.argument()
			if err != nil {
				return nil, err
			}
			base := atom{text: `""`}
			if n := len(atoms); n > 0 {
				base = atoms[n-1]
				atoms = atoms[:n-1]
			}
			base.text += t.Value + scriptText(arg)
			base.compound = true
			atoms = append(atoms, base)
		default:
			a, ok, err := p.atom()
			if err != nil {
				return nil, err
			}
			if ok {
				atoms = append(atoms, a)
			}
		}
	}
}

// atom parses one element. ok is false for tokens that produce no output.
func (p *parser) atom() (atom, bool, error) {
	t := p.next()
	switch t.Type {
	case tokLetter, tokNumber:
		return atom{text: t.Value}, true, nil
	case tokLBrace:
		atoms, err := p.group()
		if err != nil {
			return atom{}, false, err
		}
		if len(atoms) == 0 {
			return atom{}, false, nil
		}
		return atom{text: join(atoms), compound: len(atoms) > 1}, true, nil
	case tokCommand:
		return p.command(strings.TrimPrefix(t.Value, `\`))
	case tokSymbol:
		if r, ok := symbolReplacements[t.Value]; ok {
			return atom{text: r}, r != "", nil
		}
		return atom{text: t.Value}, true, nil
	}
	return atom{}, false, nil
}

// group parses the content of a brace group whose { was already consumed.
func (p *parser) group() ([]atom, error) {
	atoms, err := p.sequence(func(t lexer.Token) bool { return t.Type == tokRBrace })
	if err != nil {
		return nil, err
	}
	if p.pos >= len(p.tokens) {
		return nil, fmt.Errorf("%w: unmatched {", ErrSyntax)
	}
	p.next()
	return atoms, nil
}

// argument parses a command or script argument: a brace group or a single element.
func (p *parser) argument() ([]atom, error) {
	p.skipSpace()
	if p.pos >= len(p.tokens) {
		return nil, fmt.Errorf("%w: missing argument", ErrSyntax)
	}
	t := p.peek()
	if t.Type == tokLBrace {
		p.next()
		return p.group()
	}
	if t.Type == tokRBrace || t.Type == tokScript {
		return nil, fmt.Errorf("%w: missing argument before %q", ErrSyntax, t.Value)
	}
	// A letter run such as "^ab" only takes its first letter as argument.
	a, ok, err := p.atom()
	if err != nil || !ok {
		return nil, err
	}
	return []atom{a}, nil
}

func (p *parser) argumentText() (string, error) {
	atoms, err := p.argument()
	if err != nil {
		return "", err
	}
	return join(atoms), nil
}

// optional parses a bracketed optional argument if one follows.
func (p *parser) optional() (string, bool, error) {
	p.skipSpace()
	if p.pos >= len(p.tokens) || !isSymbol(p.peek(), "[") {
		return "", false, nil
	}
	p.next()
	atoms, err := p.sequence(func(t lexer.Token) bool { return isSymbol(t, "]") })
	if err != nil {
		return "", false, err
	}
	if p.pos >= len(p.tokens) || !isSymbol(p.peek(), "]") {
		return "", false, fmt.Errorf("%w: unmatched [", ErrSyntax)
	}
	p.next()
	return join(atoms), true, nil
}

// verbatim returns the raw source of a brace group, used by \text.
func (p *parser) verbatim() (string, error) {
	p.skipSpace()
	if p.pos >= len(p.tokens) || p.peek().Type != tokLBrace {
		return "", fmt.Errorf("%w: expected { after text command", ErrSyntax)
	}
	p.next()
	var b strings.Builder
	depth := 1
	for p.pos < len(p.tokens) {
		t := p.next()
		switch t.Type {
		case tokLBrace:
			depth++
		case tokRBrace:
			depth--
			if depth == 0 {
				return b.String(), nil
			}
		}
		b.WriteString(t.Value)
	}
	return "", fmt.Errorf("%w: unmatched {", ErrSyntax)
}

func (p *parser) command(name string) (atom, bool, error) {
	if sym, ok := symbolCommands[name]; ok {
		return atom{text: sym}, true, nil
	}
	if operatorCommands[name] {
		return atom{text: name}, true, nil
	}
	if ignoredCommands[name] {
		return atom{}, false, nil
	}
	if fn, ok := fontCommands[name]; ok {
		arg, err := p.argumentText()
		if err != nil {
			return atom{}, false, err
		}
		if fn == "bb" && isSingleUpper(arg) {
			return atom{text: arg + arg}, true, nil
		}
		return atom{text: fn + "(" + arg + ")"}, true, nil
	}
	if fn, ok := accentCommands[name]; ok {
		arg, err := p.argumentText()
		if err != nil {
			return atom{}, false, err
		}
		return atom{text: fn + "(" + arg + ")"}, true, nil
	}
	if textCommands[name] {
		s, err := p.verbatim()
		if err != nil {
			return atom{}, false, err
		}
		return atom{text: quote(s)}, true, nil
	}

	switch name {
	case "frac", "dfrac", "tfrac", "cfrac", "binom", "dbinom", "tbinom":
		num, err := p.argumentText()
		if err != nil {
			return atom{}, false, err
		}
		den, err := p.argumentText()
		if err != nil {
			return atom{}, false, err
		}
		fn := "frac"
		if strings.HasSuffix(name, "binom") {
			fn = "binom"
		}
		return atom{text: fn + "(" + num + ", " + den + ")"}, true, nil
	case "sqrt":
		index, hasIndex, err := p.optional()
		if err != nil {
			return atom{}, false, err
		}
		radicand, err := p.argumentText()
		if err != nil {
			return atom{}, false, err
		}
		if hasIndex {
			return atom{text: "root(" + index + ", " + radicand + ")"}, true, nil
		}
		return atom{text: "sqrt(" + radicand + ")"}, true, nil
	case "operatorname":
		s, err := p.verbatim()
		if err != nil {
			return atom{}, false, err
		}
		return atom{text: "op(" + quote(s) + ")"}, true, nil
	case "left", "right", "middle":
		return p.delimiter()
	case "begin":
		return p.environment()
	case "end":
		return atom{}, false, fmt.Errorf("%w: \\end without \\begin", ErrSyntax)
	}

	return atom{text: name}, true, nil
}

// delimiter parses the token following \left, \right or \middle.
func (p *parser) delimiter() (atom, bool, error) {
	p.skipSpace()
	if p.pos >= len(p.tokens) {
		return atom{}, false, fmt.Errorf("%w: missing delimiter", ErrSyntax)
	}
	t := p.next()
	switch {
	case isSymbol(t, "."):
		return atom{}, false, nil
	case t.Type == tokCommand:
		return p.command(strings.TrimPrefix(t.Value, `\`))
	case t.Type == tokSymbol:
		return atom{text: t.Value}, true, nil
	}
	return atom{}, false, fmt.Errorf("%w: invalid delimiter %q", ErrSyntax, t.Value)
}

// environment parses \begin{name} ... \end{name}.
func (p *parser) environment() (atom, bool, error) {
	name, err := p.verbatim()
	if err != nil {
		return atom{}, false, err
	}
	name = strings.TrimSpace(name)

	rows, err := p.rows()
	if err != nil {
		return atom{}, false, err
	}
	end, err := p.verbatim()
	if err != nil {
		return atom{}, false, err
	}
	if strings.TrimSpace(end) != name {
		return atom{}, false, fmt.Errorf("%w: \\begin{%s} closed by \\end{%s}", ErrSyntax, name, end)
	}

	base := strings.TrimSuffix(name, "*")
	if delim, ok := matrixDelimiters[base]; ok {
		lines := make([]string, len(rows))
		for i, row := range rows {
			lines[i] = strings.Join(row, ", ")
		}
		return atom{text: "mat(delim: " + delim + ", " + strings.Join(lines, "; ") + ")"}, true, nil
	}
	if base == "cases" {
		lines := make([]string, len(rows))
		for i, row := range rows {
			lines[i] = strings.Join(row, " & ")
		}
		return atom{text: "cases(" + strings.Join(lines, ", ") + ")"}, true, nil
	}

	lines := make([]string, len(rows))
	for i, row := range rows {
		lines[i] = strings.Join(row, " & ")
	}
	return atom{text: strings.Join(lines, " \\ "), compound: true}, true, nil
}

// rows parses environment content into cells split on & and \\, stopping
// before \end. Trailing empty rows are dropped.
func (p *parser) rows() ([][]string, error) {
	var rows [][]string
	var row []string
	for {
		cell, err := p.sequence(func(t lexer.Token) bool {
			return isSymbol(t, "&") || isCommand(t, `\`, "end", "cr")
		})
		if err != nil {
			return nil, err
		}
		row = append(row, join(cell))

		if p.pos >= len(p.tokens) {
			return nil, fmt.Errorf("%w: missing \\end", ErrSyntax)
		}
		t := p.next()
		switch {
		case t.Type == tokRBrace:
			return nil, fmt.Errorf("%w: unmatched } in environment", ErrSyntax)
		case isSymbol(t, "&"):
			continue
		case isCommand(t, "end"):
			rows = append(rows, row)
			for len(rows) > 0 && isBlankRow(rows[len(rows)-1]) {
				rows = rows[:len(rows)-1]
			}
			return rows, nil
		default:
			rows = append(rows, row)
			row = nil
		}
	}
}

func isBlankRow(row []string) bool {
	for _, c := range row {
		if c != "" {
			return false
		}
	}
	return true
}

func isSingleUpper(s string) bool {
	r, size := utf8.DecodeRuneInString(s)
	return size == len(s) && unicode.IsUpper(r)
}

func quote(s string) string {
	return `"` + strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(s) + `"`
}

func scriptText(arg []atom) string {
	switch {
	case len(arg) == 0:
		return `""`
	case len(arg) == 1 && !arg[0].compound:
		return arg[0].text
	default:
		return "(" + join(arg) + ")"
	}
}

// join concatenates atoms with single spaces, keeping brackets, punctuation
// and primes tight against their neighbours.
func join(atoms []atom) string {
	var b strings.Builder
	for i, a := range atoms {
		if a.text == "" {
			continue
		}
		if i > 0 && b.Len() > 0 && spaced(atoms[i-1].text, a.text) {
			b.WriteByte(' ')
		}
		b.WriteString(a.text)
	}
	return b.String()
}

func spaced(prev, next string) bool {
	switch next {
	case ")", "]", ",", ";", "!", "'", " ":
		return false
	case "(", "[":
		r, size := utf8.DecodeRuneInString(prev)
		tight := (size == len(prev) && (unicode.IsLetter(r) || unicode.IsDigit(r))) || prev == "'" || prev == ")"
		return !tight
	}
	switch prev {
	case "(", "[", " ":
		return false
	}
	return true
}
