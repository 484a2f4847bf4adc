package md2typst

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/alnah/go-md2typst/internal/assets"
	"github.com/alnah/go-md2typst/internal/fileutil"
	"github.com/alnah/go-md2typst/internal/frontmatter"
	"github.com/alnah/go-md2typst/internal/logging"
	"github.com/alnah/go-md2typst/internal/pipeline"
)

var _ pipeline.Transpiler = (*pipeline.GoldmarkTranspiler)(nil)

// Converter orchestrates the Markdown to PDF pipeline.
// A Converter is safe for concurrent use.
type Converter struct {
	cfg         converterConfig
	assetLoader AssetLoader
	transpiler  pipeline.Transpiler
	compiler    Compiler
	language    *pipeline.LanguageNormalizer
	logger      *slog.Logger
}

// NewConverter creates a Converter. The style is resolved and validated
// here, so a bad style fails fast instead of on every conversion.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{
		cfg:    converterConfig{timeout: defaultTimeout},
		logger: logging.Discard(),
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.assetLoader == nil {
		loader, err := NewAssetLoader(c.cfg.assetPath)
		if err != nil {
			return nil, err
		}
		c.assetLoader = loader
	}
	if c.transpiler == nil {
		c.transpiler = pipeline.NewGoldmarkTranspiler()
	}
	if c.compiler == nil {
		c.compiler = NewTypstCompiler(c.logger)
	}
	if c.cfg.languageAliases != nil {
		c.language = pipeline.NewLanguageNormalizer(c.cfg.languageAliases)
	}

	if err := c.resolveStyle(); err != nil {
		return nil, err
	}

	return c, nil
}

// Convert runs the full pipeline. Compilation is skipped when
// input.TypstOnly is set. Panics raised inside the pipeline are returned as
// errors matching ErrInternal.
func (c *Converter) Convert(ctx context.Context, input Input) (result *ConvertResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrInternal, r)
		}
	}()

	ctx, cancel := context.WithTimeout(ctx, c.cfg.timeout)
	defer cancel()

	logger := logging.FromContext(ctx, c.logger)
	start := time.Now()

	doc, err := c.transpile(ctx, input)
	if err != nil {
		return nil, err
	}

	source := pipeline.Compose(c.cfg.resolvedStyle, doc.converted())
	res := &ConvertResult{
		Typst:    []byte(source),
		Document: doc,
	}
	logger.Debug("composed typst source", "bytes", len(source), "lang", doc.Lang, "toc", doc.TOC)

	if input.TypstOnly {
		return res, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pdf, err := c.compiler.Compile(ctx, source, CompileOptions{FontPaths: c.cfg.fontPaths})
	if err != nil {
		return nil, fmt.Errorf("compiling PDF: %w", err)
	}
	logger.Debug("compiled PDF", "bytes", len(pdf), "elapsed", time.Since(start))

	res.PDF = pdf
	return res, nil
}

// Transpile splits front matter and renders the Markdown body to Typst
// without composing or compiling.
func (c *Converter) Transpile(ctx context.Context, input Input) (doc *Document, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrInternal, r)
		}
	}()
	return c.transpile(ctx, input)
}

func (c *Converter) transpile(ctx context.Context, input Input) (*Document, error) {
	if strings.TrimSpace(input.Markdown) == "" {
		return nil, ErrEmptyMarkdown
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	parsed, err := frontmatter.Split(input.Markdown)
	if err != nil {
		return nil, fmt.Errorf("reading front matter: %w", err)
	}

	opts := pipeline.TranspileOptions{
		Title:     input.Title,
		Author:    input.Author,
		Lang:      input.Lang,
		ForceTOC:  input.TOC,
		SourceDir: input.SourceDir,
	}
	if c.language != nil {
		opts.Language = c.language.Normalize
	}

	converted, err := c.transpiler.Transpile(ctx, parsed.Body, parsed.Meta, opts)
	if err != nil {
		return nil, err
	}
	return newDocument(converted), nil
}

// Style returns the resolved style template source.
func (c *Converter) Style() string {
	return c.cfg.resolvedStyle
}

// Close releases the compiler when it holds resources.
func (c *Converter) Close() error {
	if closer, ok := c.compiler.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

// resolveStyle turns the style input (path, inline source or name) into
// template source and checks that it defines article().
func (c *Converter) resolveStyle() error {
	input := strings.TrimSpace(c.cfg.styleInput)

	var source string
	switch {
	case input == "":
		style, err := c.assetLoader.LoadStyle(assets.DefaultStyle)
		if err != nil {
			return fmt.Errorf("loading style %q: %w", assets.DefaultStyle, err)
		}
		source = style
	case strings.Contains(input, pipeline.ArticleSignature):
		source = input
	case fileutil.IsFilePath(input) || fileutil.IsTypst(input):
		content, err := os.ReadFile(input) // #nosec G304 -- user-provided path
		if err != nil {
			return fmt.Errorf("loading style file %q: %w", input, err)
		}
		source = string(content)
	default:
		style, err := c.assetLoader.LoadStyle(input)
		if err != nil {
			return fmt.Errorf("loading style %q: %w", input, err)
		}
		source = style
	}

	if err := pipeline.ValidateTemplate(source); err != nil {
		return err
	}
	c.cfg.resolvedStyle = source
	return nil
}
