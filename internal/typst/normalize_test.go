package typst

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeTokens(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
		found bool
	}{
		{"no marker", "# Title\ntext", "# Title\ntext\n", false},
		{"marker line", "[toc]\n\n# Title", TOCSentinel + "\n\n# Title\n", true},
		{"marker with spaces", "  [toc]  \n", TOCSentinel + "\n", true},
		{"marker inside text is kept", "see [toc] here\n", "see [toc] here\n", false},
		{"uppercase is not a marker", "[TOC]\n", "[TOC]\n", false},
		{"crlf line endings", "a\r\n[toc]\r\n", "a\n" + TOCSentinel + "\n", true},
		{"empty input", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, found := NormalizeTokens(tt.input)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.found, found)
		})
	}
}
