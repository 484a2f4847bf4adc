package md2typst

import (
	"errors"

	"github.com/alnah/go-md2typst/internal/frontmatter"
	"github.com/alnah/go-md2typst/internal/pipeline"
)

// Sentinel errors for library operations.
var (
	ErrEmptyMarkdown = errors.New("markdown content cannot be empty")
	ErrInternal      = pipeline.ErrInternal

	// Document errors, re-exported so callers need not import internal packages.
	ErrFrontMatter     = frontmatter.ErrUnterminated
	ErrFrontMatterYAML = frontmatter.ErrInvalidYAML
	ErrMarkdownParse   = pipeline.ErrMarkdownParse

	// Compiler errors.
	ErrCompilerNotFound = errors.New("typst compiler not found")
	ErrCompile          = errors.New("typst compilation failed")

	// Asset loading errors.
	ErrStyleNotFound    = errors.New("style not found")
	ErrInvalidTemplate  = pipeline.ErrInvalidTemplate
	ErrInvalidAssetPath = errors.New("invalid asset path")
)
