package assets

import (
	"errors"
	"strings"
	"testing"
)

func TestLoadStyle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		styleName string
		wantErr   error
	}{
		{name: "default style", styleName: DefaultStyle},
		{name: "classic editorial", styleName: "classic-editorial"},
		{name: "unknown style", styleName: "nonexistent", wantErr: ErrStyleNotFound},
		{name: "empty name", styleName: "", wantErr: ErrInvalidAssetName},
		{name: "traversal", styleName: "../secret", wantErr: ErrInvalidAssetName},
		{name: "extension included", styleName: "modern-tech.typ", wantErr: ErrInvalidAssetName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			content, err := LoadStyle(tt.styleName)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("LoadStyle(%q) error = %v, want %v", tt.styleName, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("LoadStyle(%q) unexpected error: %v", tt.styleName, err)
			}
			if content == "" {
				t.Errorf("LoadStyle(%q) returned empty content", tt.styleName)
			}
		})
	}
}

func TestBuiltinStylesDefineArticle(t *testing.T) {
	t.Parallel()

	for _, name := range ListStyles() {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			content, err := LoadStyle(name)
			if err != nil {
				t.Fatalf("LoadStyle(%q) error: %v", name, err)
			}
			want := `#let article(title: none, authors: (), lang: "en", toc: false, body)`
			if !strings.Contains(content, want) {
				t.Errorf("style %q should define %s", name, want)
			}
			if !strings.Contains(content, "outline(") {
				t.Errorf("style %q should render an outline when toc is set", name)
			}
		})
	}
}

func TestListStyles(t *testing.T) {
	t.Parallel()

	got := ListStyles()
	want := []string{"classic-editorial", "modern-tech"}
	if len(got) != len(want) {
		t.Fatalf("ListStyles() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("ListStyles()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestIsBuiltinStyle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		want bool
	}{
		{"modern-tech", true},
		{"classic-editorial", true},
		{"creative", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := IsBuiltinStyle(tt.name); got != tt.want {
			t.Errorf("IsBuiltinStyle(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}
