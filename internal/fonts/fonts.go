// Package fonts locates the fonts available to the Typst compiler and
// installs the Noto CJK faces needed for Chinese and Japanese documents.
package fonts

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// DirEnv overrides the user font directory.
const DirEnv = "MD2TYPST_FONT_DIR"

// ErrNoHomeDir is returned when the user font directory cannot be derived.
var ErrNoHomeDir = errors.New("cannot determine home directory")

// UserDir returns the directory md2typst installs fonts into:
// $MD2TYPST_FONT_DIR, or ~/.md2typst/fonts.
func UserDir() (string, error) {
	if dir := os.Getenv(DirEnv); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "", fmt.Errorf("%w: %v", ErrNoHomeDir, err)
	}
	return filepath.Join(home, ".md2typst", "fonts"), nil
}

// IsFontFile reports whether path has a font extension the compiler loads.
func IsFontFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".otf", ".ttf", ".ttc", ".otc":
		return true
	}
	return false
}

// List returns the font files under dir, recursively, sorted.
// A missing directory yields an empty list.
func List(dir string) ([]string, error) {
	if _, err := os.Stat(dir); errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}

	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && IsFontFile(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("listing fonts in %s: %w", dir, err)
	}
	sort.Strings(files)
	return files, nil
}

// HasCJK reports whether text contains CJK ideographs, kana, hangul
// or CJK punctuation.
func HasCJK(text string) bool {
	for _, r := range text {
		switch {
		case r >= 0x4E00 && r <= 0x9FFF, // unified ideographs
			r >= 0x3040 && r <= 0x309F, // hiragana
			r >= 0x30A0 && r <= 0x30FF, // katakana
			r >= 0xAC00 && r <= 0xD7AF, // hangul syllables
			r >= 0x3000 && r <= 0x303F: // CJK symbols and punctuation
			return true
		}
	}
	return false
}
