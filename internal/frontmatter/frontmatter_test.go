package frontmatter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		wantBody string
		wantMeta Metadata
	}{
		{
			name:     "no front matter",
			input:    "# Title\n\nBody\n",
			wantBody: "# Title\n\nBody\n",
		},
		{
			name:     "delimiter not on first line",
			input:    "intro\n---\ntitle: x\n---\n",
			wantBody: "intro\n---\ntitle: x\n---\n",
		},
		{
			name:     "title and body",
			input:    "---\ntitle: Demo\n---\n# Hello",
			wantBody: "# Hello",
			wantMeta: Metadata{Title: "Demo"},
		},
		{
			name:     "empty block",
			input:    "---\n---\nbody",
			wantBody: "body",
		},
		{
			name:     "whitespace block",
			input:    "---\n  \n---\nbody",
			wantBody: "body",
		},
		{
			name:     "crlf delimiters",
			input:    "---\r\nlang: zh\r\n---\r\nbody\r\n",
			wantBody: "body",
			wantMeta: Metadata{Lang: "zh"},
		},
		{
			name:     "byte order mark",
			input:    "\ufeff---\nauthor: Ann\n---\nbody",
			wantBody: "body",
			wantMeta: Metadata{Author: "Ann"},
		},
		{
			name:     "authors list",
			input:    "---\nauthors:\n  - Ann\n  - Bo\n---\n",
			wantBody: "",
			wantMeta: Metadata{Authors: Names{"Ann", "Bo"}},
		},
		{
			name:     "authors scalar",
			input:    "---\nauthors: Solo\n---\nx",
			wantBody: "x",
			wantMeta: Metadata{Authors: Names{"Solo"}},
		},
		{
			name:     "unknown keys ignored",
			input:    "---\ntitle: T\ntags: [a]\n---\nx",
			wantBody: "x",
			wantMeta: Metadata{Title: "T"},
		},
		{
			name:     "later delimiters stay in body",
			input:    "---\ntitle: T\n---\na\n---\nb",
			wantBody: "a\n---\nb",
			wantMeta: Metadata{Title: "T"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Split(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.wantBody, got.Body)
			assert.Equal(t, tt.wantMeta, got.Meta)
		})
	}
}

func TestSplit_TOC(t *testing.T) {
	t.Parallel()

	got, err := Split("---\ntoc: false\n---\nbody")
	require.NoError(t, err)
	require.NotNil(t, got.Meta.TOC)
	assert.False(t, *got.Meta.TOC)
	assert.Equal(t, "toc: false\n", got.Raw)
}

func TestSplit_Errors(t *testing.T) {
	t.Parallel()

	_, err := Split("---\ntitle: x\nbody without close\n")
	assert.ErrorIs(t, err, ErrUnterminated)

	_, err = Split("---\ntitle: [unclosed\n---\nbody")
	assert.ErrorIs(t, err, ErrInvalidYAML)
}
