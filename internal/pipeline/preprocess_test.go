package pipeline

import (
	"context"
	"testing"

	"github.com/alnah/go-md2typst/internal/typst"
)

func TestPreprocess(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		input     string
		want      string
		wantToken bool
	}{
		{"plain", "a\nb", "a\nb\n", false},
		{"crlf", "a\r\nb\rc", "a\nb\nc\n", false},
		{"marker", "[toc]\n# A", typst.TOCSentinel + "\n# A\n", true},
		{"indented marker", "  [toc]\t\r\n", typst.TOCSentinel + "\n", true},
		{"marker in text", "see [toc] here", "see [toc] here\n", false},
		{"uppercase marker", "[TOC]", "[TOC]\n", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Preprocess(context.Background(), tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Source != tt.want {
				t.Errorf("Source = %q, want %q", got.Source, tt.want)
			}
			if got.HasTOCMarker != tt.wantToken {
				t.Errorf("HasTOCMarker = %v, want %v", got.HasTOCMarker, tt.wantToken)
			}
		})
	}
}

func TestPreprocess_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := Preprocess(ctx, "x"); err == nil {
		t.Fatal("expected error for cancelled context")
	}
}
