package pipeline

import (
	"context"
	"regexp"

	"github.com/alnah/go-md2typst/internal/typst"
)

var crlfOrCR = regexp.MustCompile(`\r\n?`)

// Preprocessed is Markdown ready for parsing.
type Preprocessed struct {
	Source string
	// HasTOCMarker reports that a "[toc]" line was replaced by the sentinel.
	HasTOCMarker bool
}

// Preprocess normalizes line endings and replaces inline TOC markers with the
// sentinel the renderer substitutes later.
func Preprocess(ctx context.Context, content string) (Preprocessed, error) {
	if err := ctx.Err(); err != nil {
		return Preprocessed{}, err
	}

	content = normalizeLineEndings(content)
	source, found := typst.NormalizeTokens(content)
	return Preprocessed{Source: source, HasTOCMarker: found}, nil
}

// normalizeLineEndings converts \r\n and \r to \n.
func normalizeLineEndings(content string) string {
	return crlfOrCR.ReplaceAllString(content, "\n")
}
