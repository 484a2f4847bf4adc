package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/language"

	"github.com/alnah/go-md2typst/internal/frontmatter"
	"github.com/alnah/go-md2typst/internal/markdown"
	"github.com/alnah/go-md2typst/internal/texmath"
	"github.com/alnah/go-md2typst/internal/typst"
)

// ErrMarkdownParse indicates the Markdown body could not be parsed.
var ErrMarkdownParse = errors.New("markdown parse failed")

// ErrInternal indicates a panic recovered while transpiling.
var ErrInternal = errors.New("internal error")

// Language tags chosen when neither an override nor front matter sets one.
const (
	defaultLang = "en"
	cjkLang     = "zh"
)

// Converted is a transpiled document ready for template composition.
type Converted struct {
	// Title is empty when the document has none.
	Title   string
	Authors []string
	Lang    string
	// Body is empty or ends with exactly one newline.
	Body string
	// TOC asks the template for an outline. It is false whenever the body
	// already carries an inline one.
	TOC bool
}

// TranspileOptions carries caller overrides. Empty strings and a nil
// ForceTOC mean "not set".
type TranspileOptions struct {
	Title    string
	Author   string
	Lang     string
	ForceTOC *bool

	// SourceDir resolves relative link targets. Empty disables rewriting.
	SourceDir string

	// Math translates math literals. Nil selects texmath.ToTypst.
	Math typst.MathFunc

	// Language rewrites code block language tags. Nil keeps them.
	Language typst.LanguageFunc
}

// Transpiler abstracts Markdown to Typst conversion.
type Transpiler interface {
	Transpile(ctx context.Context, body string, meta frontmatter.Metadata, opts TranspileOptions) (*Converted, error)
}

// GoldmarkTranspiler parses with goldmark and renders Typst markup.
type GoldmarkTranspiler struct {
	parser *markdown.Parser
}

// NewGoldmarkTranspiler creates a GoldmarkTranspiler with every Markdown
// extension enabled.
func NewGoldmarkTranspiler() *GoldmarkTranspiler {
	return &GoldmarkTranspiler{parser: markdown.NewParser()}
}

// Transpile converts body, the Markdown text after front matter removal.
// Goldmark does not take a context, so the work runs in a goroutine and the
// call returns early on cancellation.
func (t *GoldmarkTranspiler) Transpile(ctx context.Context, body string, meta frontmatter.Metadata, opts TranspileOptions) (*Converted, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	type result struct {
		doc *Converted
		err error
	}

	done := make(chan result, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- result{err: fmt.Errorf("%w: %v", ErrInternal, r)}
			}
		}()
		doc, err := t.transpile(ctx, body, meta, opts)
		done <- result{doc: doc, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r := <-done:
		return r.doc, r.err
	}
}

func (t *GoldmarkTranspiler) transpile(ctx context.Context, body string, meta frontmatter.Metadata, opts TranspileOptions) (*Converted, error) {
	pre, err := Preprocess(ctx, body)
	if err != nil {
		return nil, err
	}

	root, err := t.parser.Parse([]byte(pre.Source))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMarkdownParse, err)
	}
	if err := RewriteRelativeURLs(root, opts.SourceDir); err != nil {
		return nil, fmt.Errorf("resolving link targets: %w", err)
	}

	tocEnabled := pre.HasTOCMarker
	switch {
	case opts.ForceTOC != nil:
		tocEnabled = *opts.ForceTOC
	case meta.TOC != nil:
		tocEnabled = *meta.TOC
	}

	math := opts.Math
	if math == nil {
		math = texmath.ToTypst
	}

	return &Converted{
		Title:   resolveTitle(meta, opts),
		Authors: resolveAuthors(meta, opts),
		Lang:    resolveLang(body, meta, opts),
		Body: typst.Render(root, typst.Options{
			TOC:      tocEnabled,
			Math:     math,
			Language: opts.Language,
		}),
		TOC: tocEnabled && !pre.HasTOCMarker,
	}, nil
}

var defaultTranspiler = NewGoldmarkTranspiler()

// Transpile converts body with a shared GoldmarkTranspiler.
func Transpile(ctx context.Context, body string, meta frontmatter.Metadata, opts TranspileOptions) (*Converted, error) {
	return defaultTranspiler.Transpile(ctx, body, meta, opts)
}

func resolveTitle(meta frontmatter.Metadata, opts TranspileOptions) string {
	if title := strings.TrimSpace(opts.Title); title != "" {
		return title
	}
	return strings.TrimSpace(meta.Title)
}

// resolveAuthors prefers the override, then the authors list with blanks and
// duplicates removed, then the single author key.
func resolveAuthors(meta frontmatter.Metadata, opts TranspileOptions) []string {
	if author := strings.TrimSpace(opts.Author); author != "" {
		return []string{author}
	}

	var authors []string
	seen := make(map[string]struct{})
	for _, author := range meta.Authors {
		author = strings.TrimSpace(author)
		if author == "" {
			continue
		}
		if _, dup := seen[author]; dup {
			continue
		}
		seen[author] = struct{}{}
		authors = append(authors, author)
	}
	if len(authors) > 0 {
		return authors
	}

	if author := strings.TrimSpace(meta.Author); author != "" {
		return []string{author}
	}
	return nil
}

func resolveLang(body string, meta frontmatter.Metadata, opts TranspileOptions) string {
	if lang := strings.TrimSpace(opts.Lang); lang != "" {
		return CanonicalLang(lang)
	}
	if lang := strings.TrimSpace(meta.Lang); lang != "" {
		return CanonicalLang(lang)
	}
	return DetectLang(body)
}

// CanonicalLang reduces a BCP 47 tag to its base language ("zh-CN" becomes
// "zh"). Tags that do not parse are returned unchanged.
func CanonicalLang(tag string) string {
	parsed, err := language.Parse(tag)
	if err != nil {
		return tag
	}
	base, _ := parsed.Base()
	return base.String()
}

// DetectLang returns "zh" when text contains a CJK unified ideograph and
// "en" otherwise.
func DetectLang(text string) string {
	for _, r := range text {
		if r >= 0x4E00 && r <= 0x9FFF {
			return cjkLang
		}
	}
	return defaultLang
}
