package fonts

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/flopp/go-findfont"
	"golang.org/x/image/font/sfnt"
)

// Face is the metadata of one font file. Collections report their first face.
type Face struct {
	Path     string
	Family   string
	FullName string
}

// Book indexes font files by a stable numeric index. The file list is built
// on first use; face metadata is parsed on demand and cached per index.
type Book struct {
	dirs       []string
	listSystem func() []string

	once  sync.Once
	paths []string
	user  map[string]bool

	mu    sync.Mutex
	faces map[int]Face
}

// NewBook creates a book over dirs. When includeSystem is set, the system
// font directories are indexed too.
func NewBook(dirs []string, includeSystem bool) *Book {
	b := &Book{dirs: dirs, faces: make(map[int]Face)}
	if includeSystem {
		b.listSystem = findfont.List
	}
	return b
}

var (
	sharedMu sync.Mutex
	shared   = make(map[string]*Book)
)

// SharedBook returns the process-wide book over dirs and the system fonts.
// One book is kept per directory list, so the index is built once.
func SharedBook(dirs ...string) *Book {
	key := strings.Join(dirs, string(os.PathListSeparator))

	sharedMu.Lock()
	defer sharedMu.Unlock()
	if b, ok := shared[key]; ok {
		return b
	}
	b := NewBook(append([]string(nil), dirs...), true)
	shared[key] = b
	return b
}

func (b *Book) load() {
	b.once.Do(func() {
		seen := make(map[string]bool)
		b.user = make(map[string]bool)
		for _, dir := range b.dirs {
			files, err := List(dir)
			if err != nil {
				continue
			}
			for _, f := range files {
				if !seen[f] {
					seen[f] = true
					b.user[f] = true
					b.paths = append(b.paths, f)
				}
			}
		}
		if b.listSystem != nil {
			for _, f := range b.listSystem() {
				if IsFontFile(f) && !seen[f] {
					seen[f] = true
					b.paths = append(b.paths, f)
				}
			}
		}
		sort.Strings(b.paths)
	})
}

// Len returns the number of indexed font files.
func (b *Book) Len() int {
	b.load()
	return len(b.paths)
}

// Paths returns a copy of the indexed paths in index order.
func (b *Book) Paths() []string {
	b.load()
	return append([]string(nil), b.paths...)
}

// Face returns the metadata of the font at index i.
func (b *Book) Face(i int) (Face, error) {
	b.load()
	if i < 0 || i >= len(b.paths) {
		return Face{}, fmt.Errorf("font index %d out of range [0,%d)", i, len(b.paths))
	}

	b.mu.Lock()
	face, ok := b.faces[i]
	b.mu.Unlock()
	if ok {
		return face, nil
	}

	face, err := readFace(b.paths[i])
	if err != nil {
		return Face{}, err
	}

	b.mu.Lock()
	b.faces[i] = face
	b.mu.Unlock()
	return face, nil
}

// cjkFileHints are lower-cased file name fragments of common CJK fonts.
var cjkFileHints = []string{
	"cjk", "notosanssc", "notoserifsc", "sourcehan", "wqy", "droidsansfallback",
	"pingfang", "hiragino", "simsun", "simhei", "msyh", "msgothic", "yugoth",
	"malgun", "nanum", "stheiti", "songti",
}

// HasCJKFont reports whether any indexed font looks like it covers CJK.
// File names are checked for every font; family names are read only for
// fonts from the book's own directories.
func (b *Book) HasCJKFont() bool {
	b.load()
	for i, p := range b.paths {
		name := strings.ToLower(strings.ReplaceAll(filepath.Base(p), " ", ""))
		for _, hint := range cjkFileHints {
			if strings.Contains(name, hint) {
				return true
			}
		}
		if !b.user[p] {
			continue
		}
		face, err := b.Face(i)
		if err != nil {
			continue
		}
		family := strings.ToLower(face.Family)
		if strings.Contains(family, "cjk") || strings.Contains(family, "han ") {
			return true
		}
	}
	return false
}

func readFace(path string) (Face, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path comes from the font index
	if err != nil {
		return Face{}, fmt.Errorf("reading font: %w", err)
	}

	var f *sfnt.Font
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ttc", ".otc":
		c, err := sfnt.ParseCollection(data)
		if err != nil {
			return Face{}, fmt.Errorf("parsing font collection %s: %w", path, err)
		}
		f, err = c.Font(0)
		if err != nil {
			return Face{}, fmt.Errorf("parsing font collection %s: %w", path, err)
		}
	default:
		f, err = sfnt.Parse(data)
		if err != nil {
			return Face{}, fmt.Errorf("parsing font %s: %w", path, err)
		}
	}

	var buf sfnt.Buffer
	family, _ := f.Name(&buf, sfnt.NameIDFamily)
	full, _ := f.Name(&buf, sfnt.NameIDFull)
	return Face{Path: path, Family: family, FullName: full}, nil
}
