package pipeline

import (
	"errors"
	"strconv"
	"strings"
)

// ArticleSignature must appear in every template: composition calls
// #article(title:, authors:, lang:, toc:)[body].
const ArticleSignature = "#let article("

// ErrInvalidTemplate indicates a template that does not define article.
var ErrInvalidTemplate = errors.New("template must define #let article(title: none, authors: (), lang: \"en\", toc: false, body)")

// ValidateTemplate checks that source defines the article function.
func ValidateTemplate(source string) error {
	if !strings.Contains(source, ArticleSignature) {
		return ErrInvalidTemplate
	}
	return nil
}

var templateStringEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\r\n", " ", "\n", " ", "\r", " ")

// escapeTemplateString escapes s for a Typst string literal and flattens it
// to one line.
func escapeTemplateString(s string) string {
	return templateStringEscaper.Replace(s)
}

func quote(s string) string {
	return `"` + escapeTemplateString(s) + `"`
}

// Compose appends an #article call wrapping doc.Body to template.
func Compose(template string, doc *Converted) string {
	title := "none"
	if strings.TrimSpace(doc.Title) != "" {
		title = quote(doc.Title)
	}

	var b strings.Builder
	b.Grow(len(template) + len(doc.Body) + 128)
	b.WriteString(template)
	b.WriteString("\n\n#article(title: ")
	b.WriteString(title)
	b.WriteString(", authors: ")
	b.WriteString(authorsLiteral(doc.Authors))
	b.WriteString(", lang: ")
	b.WriteString(quote(doc.Lang))
	b.WriteString(", toc: ")
	b.WriteString(strconv.FormatBool(doc.TOC))
	b.WriteString(")[\n")
	b.WriteString(doc.Body)
	b.WriteString("\n]\n")
	return b.String()
}

// authorsLiteral formats a Typst array. A single element needs a trailing
// comma, otherwise Typst reads a parenthesized expression.
func authorsLiteral(authors []string) string {
	switch len(authors) {
	case 0:
		return "()"
	case 1:
		return "(" + quote(authors[0]) + ",)"
	}
	quoted := make([]string, len(authors))
	for i, a := range authors {
		quoted[i] = quote(a)
	}
	return "(" + strings.Join(quoted, ", ") + ")"
}
