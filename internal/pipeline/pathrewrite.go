package pipeline

import (
	"net/url"
	"path/filepath"
	"strings"

	"github.com/alnah/go-md2typst/internal/document"
)

// RewriteRelativeURLs turns relative link, image and wikilink targets into
// absolute file:// URLs rooted at sourceDir, so they still resolve from the
// generated PDF. It does nothing when sourceDir is empty.
//
// Targets that are URLs, anchors or absolute paths are left alone, as are
// paths escaping sourceDir.
func RewriteRelativeURLs(root document.Node, sourceDir string) error {
	if sourceDir == "" {
		return nil
	}

	absSourceDir, err := filepath.Abs(sourceDir)
	if err != nil {
		return err
	}

	document.Walk(root, func(n document.Node) bool {
		switch n := n.(type) {
		case *document.Link:
			n.URL = rewriteTarget(n.URL, absSourceDir)
		case *document.Image:
			n.URL = rewriteTarget(n.URL, absSourceDir)
		case *document.WikiLink:
			n.URL = rewriteTarget(n.URL, absSourceDir)
		}
		return true
	})
	return nil
}

func rewriteTarget(target, sourceDir string) string {
	if !isRelativePath(target) {
		return target
	}

	absPath := filepath.Join(sourceDir, filepath.FromSlash(target))
	if !isPathUnderDir(absPath, sourceDir) {
		return target
	}
	return pathToFileURL(absPath)
}

// isRelativePath reports whether target names a file relative to the document.
func isRelativePath(target string) bool {
	if target == "" {
		return false
	}

	if strings.HasPrefix(target, "//") || strings.HasPrefix(target, "#") {
		return false
	}
	if u, err := url.Parse(target); err == nil && u.Scheme != "" {
		return false
	}
	return !filepath.IsAbs(target)
}

// isPathUnderDir checks if absPath is under dir (prevents path traversal).
func isPathUnderDir(absPath, dir string) bool {
	cleanPath := filepath.Clean(absPath)
	cleanDir := filepath.Clean(dir)

	if !strings.HasSuffix(cleanDir, string(filepath.Separator)) {
		cleanDir += string(filepath.Separator)
	}
	return strings.HasPrefix(cleanPath+string(filepath.Separator), cleanDir)
}

// pathToFileURL converts an absolute path to a file:// URL.
func pathToFileURL(absPath string) string {
	u := url.URL{
		Scheme: "file",
		Path:   filepath.ToSlash(absPath),
	}
	return u.String()
}
