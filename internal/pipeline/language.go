package pipeline

import (
	"strings"

	"github.com/alecthomas/chroma/v2/lexers"
)

// LanguageNormalizer maps code block language tags to a canonical name, so
// "golang", "py3" or "c++" reach Typst as "go", "python" and "cpp".
type LanguageNormalizer struct {
	aliases map[string]string
}

// NewLanguageNormalizer creates a normalizer. Entries in aliases take
// precedence over the lexer registry. Keys are matched case-insensitively.
func NewLanguageNormalizer(aliases map[string]string) *LanguageNormalizer {
	n := &LanguageNormalizer{aliases: make(map[string]string, len(aliases))}
	for from, to := range aliases {
		n.aliases[strings.ToLower(strings.TrimSpace(from))] = strings.TrimSpace(to)
	}
	return n
}

// Normalize returns the canonical tag for lang, or lang unchanged when no
// lexer claims it.
func (n *LanguageNormalizer) Normalize(lang string) string {
	key := strings.ToLower(strings.TrimSpace(lang))
	if key == "" {
		return ""
	}
	if alias, ok := n.aliases[key]; ok {
		return alias
	}

	lexer := lexers.Get(key)
	if lexer == nil {
		return lang
	}
	if aliases := lexer.Config().Aliases; len(aliases) > 0 {
		return aliases[0]
	}
	return lang
}
