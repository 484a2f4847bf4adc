package md2typst

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/alnah/go-md2typst/internal/assets"
)

func TestNewAssetLoader_EmptyPath(t *testing.T) {
	t.Parallel()

	loader, err := NewAssetLoader("")
	if err != nil {
		t.Fatalf("NewAssetLoader(\"\") error = %v", err)
	}

	style, err := loader.LoadStyle(DefaultStyle)
	if err != nil {
		t.Fatalf("LoadStyle(%q) error = %v", DefaultStyle, err)
	}
	if !strings.Contains(style, "#let article(") {
		t.Error("default style does not define article")
	}
}

func TestNewAssetLoader_CustomPath(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	if err := os.MkdirAll(filepath.Join(base, "styles"), 0o750); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(base, "styles", "modern-tech.typ"), []byte("// override"), 0o600); err != nil {
		t.Fatal(err)
	}

	loader, err := NewAssetLoader(base)
	if err != nil {
		t.Fatalf("NewAssetLoader() error = %v", err)
	}

	got, err := loader.LoadStyle("modern-tech")
	if err != nil {
		t.Fatalf("LoadStyle() error = %v", err)
	}
	if got != "// override" {
		t.Errorf("LoadStyle() = %q, want custom override", got)
	}

	if _, err := loader.LoadStyle("classic-editorial"); err != nil {
		t.Errorf("LoadStyle(classic-editorial) should fall back to built-in, got %v", err)
	}
}

func TestNewAssetLoader_Errors(t *testing.T) {
	t.Parallel()

	file := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(file, nil, 0o600); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		basePath string
		wantErr  error
	}{
		{name: "missing directory", basePath: filepath.Join(t.TempDir(), "missing"), wantErr: ErrInvalidAssetPath},
		{name: "regular file", basePath: file, wantErr: ErrInvalidAssetPath},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := NewAssetLoader(tt.basePath)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("NewAssetLoader(%q) error = %v, want %v", tt.basePath, err, tt.wantErr)
			}
		})
	}
}

func TestAssetLoader_StyleErrors(t *testing.T) {
	t.Parallel()

	loader, err := NewAssetLoader("")
	if err != nil {
		t.Fatal(err)
	}

	for _, name := range []string{"nonexistent", "", "../secret", "a.b"} {
		if _, err := loader.LoadStyle(name); !errors.Is(err, ErrStyleNotFound) {
			t.Errorf("LoadStyle(%q) error = %v, want ErrStyleNotFound", name, err)
		}
	}
}

func TestListStyles(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	if err := os.MkdirAll(filepath.Join(base, "styles"), 0o750); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(base, "styles", "brand.typ"), []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}

	got, err := ListStyles(base)
	if err != nil {
		t.Fatalf("ListStyles() error = %v", err)
	}
	want := []string{"brand", "classic-editorial", "modern-tech"}
	if !slices.Equal(got, want) {
		t.Errorf("ListStyles() = %v, want %v", got, want)
	}
}

func TestConvertAssetError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		err     error
		wantErr error
	}{
		{name: "style not found", err: assets.ErrStyleNotFound, wantErr: ErrStyleNotFound},
		{name: "invalid name", err: assets.ErrInvalidAssetName, wantErr: ErrStyleNotFound},
		{name: "invalid base path", err: assets.ErrInvalidBasePath, wantErr: ErrInvalidAssetPath},
		{name: "path traversal", err: assets.ErrPathTraversal, wantErr: ErrInvalidAssetPath},
		{name: "read error passes through", err: assets.ErrAssetRead, wantErr: assets.ErrAssetRead},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := convertAssetError(tt.err)
			if !errors.Is(got, tt.wantErr) {
				t.Errorf("convertAssetError(%v) = %v, want match for %v", tt.err, got, tt.wantErr)
			}
			if got.Error() != tt.err.Error() {
				t.Errorf("message = %q, want original %q", got.Error(), tt.err.Error())
			}
		})
	}

	if convertAssetError(nil) != nil {
		t.Error("convertAssetError(nil) should be nil")
	}
}
