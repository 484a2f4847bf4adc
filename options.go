package md2typst

import (
	"log/slog"
	"time"

	"github.com/alnah/go-md2typst/internal/pipeline"
)

// Option configures a Converter.
type Option func(*Converter)

const defaultTimeout = 30 * time.Second

type converterConfig struct {
	timeout         time.Duration
	styleInput      string
	resolvedStyle   string
	assetPath       string
	fontPaths       []string
	languageAliases map[string]string
}

// WithTimeout bounds each conversion. Default: 30s.
// Panics if d <= 0.
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("md2typst: WithTimeout duration must be positive")
	}
	return func(c *Converter) {
		c.cfg.timeout = d
	}
}

// WithStyle selects the style template. The value is one of:
//   - a path to a .typ file (contains a path separator or ends in .typ),
//   - inline Typst source defining #let article(...),
//   - a style name resolved by the asset loader.
func WithStyle(style string) Option {
	return func(c *Converter) {
		c.cfg.styleInput = style
	}
}

// WithAssetPath adds a directory whose styles/{name}.typ files take
// precedence over the built-in styles.
func WithAssetPath(path string) Option {
	return func(c *Converter) {
		c.cfg.assetPath = path
	}
}

// WithAssetLoader replaces style lookup entirely. It wins over WithAssetPath.
func WithAssetLoader(loader AssetLoader) Option {
	return func(c *Converter) {
		c.assetLoader = loader
	}
}

// WithCompiler replaces the typst CLI compiler.
func WithCompiler(compiler Compiler) Option {
	return func(c *Converter) {
		c.compiler = compiler
	}
}

// WithFontPaths adds font directories passed to the compiler.
func WithFontPaths(paths ...string) Option {
	return func(c *Converter) {
		c.cfg.fontPaths = append(c.cfg.fontPaths, paths...)
	}
}

// WithLogger sets the diagnostic logger. Default: discard.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Converter) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithLanguageAliases normalizes code block language tags. Entries map a
// tag (case-insensitive) to its replacement. Tags without an entry are
// canonicalized through the syntax highlighter's lexer registry.
func WithLanguageAliases(aliases map[string]string) Option {
	return func(c *Converter) {
		if c.cfg.languageAliases == nil {
			c.cfg.languageAliases = make(map[string]string, len(aliases))
		}
		for from, to := range aliases {
			c.cfg.languageAliases[from] = to
		}
	}
}

// withTranspiler swaps the Markdown transpiler in tests.
func withTranspiler(t pipeline.Transpiler) Option {
	return func(c *Converter) {
		c.transpiler = t
	}
}
