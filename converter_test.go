package md2typst

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alnah/go-md2typst/internal/frontmatter"
	"github.com/alnah/go-md2typst/internal/pipeline"
)

const testStyle = "#let article(title: none, authors: (), lang: \"en\", toc: false, body) = body"

// ---------------------------------------------------------------------------
// Fakes
// ---------------------------------------------------------------------------

type fakeCompiler struct {
	mu     sync.Mutex
	calls  int
	source string
	opts   CompileOptions
	pdf    []byte
	err    error
	block  bool
	closed bool
}

func (f *fakeCompiler) Compile(ctx context.Context, source string, opts CompileOptions) ([]byte, error) {
	f.mu.Lock()
	f.calls++
	f.source = source
	f.opts = opts
	f.mu.Unlock()

	if f.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if f.err != nil {
		return nil, f.err
	}
	if f.pdf != nil {
		return f.pdf, nil
	}
	return []byte("%PDF-1.7 fake"), nil
}

func (f *fakeCompiler) Close() error {
	f.closed = true
	return nil
}

type fakeLoader struct {
	styles map[string]string
}

func (f *fakeLoader) LoadStyle(name string) (string, error) {
	if s, ok := f.styles[name]; ok {
		return s, nil
	}
	return "", ErrStyleNotFound
}

type panickingTranspiler struct{}

func (panickingTranspiler) Transpile(context.Context, string, frontmatter.Metadata, pipeline.TranspileOptions) (*pipeline.Converted, error) {
	panic("boom")
}

func newTestConverter(t *testing.T, opts ...Option) (*Converter, *fakeCompiler) {
	t.Helper()
	compiler := &fakeCompiler{}
	conv, err := NewConverter(append([]Option{WithCompiler(compiler)}, opts...)...)
	require.NoError(t, err)
	return conv, compiler
}

// ---------------------------------------------------------------------------
// NewConverter
// ---------------------------------------------------------------------------

func TestNewConverter_DefaultStyle(t *testing.T) {
	t.Parallel()

	conv, _ := newTestConverter(t)
	assert.Contains(t, conv.Style(), pipeline.ArticleSignature)
}

func TestNewConverter_StyleResolution(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	stylePath := filepath.Join(dir, "house.typ")
	require.NoError(t, os.WriteFile(stylePath, []byte(testStyle+"\n// house"), 0o600))

	tests := []struct {
		name    string
		style   string
		want    string
		wantErr error
	}{
		{name: "builtin name", style: "classic-editorial", want: "numbering"},
		{name: "file path", style: stylePath, want: "// house"},
		{name: "inline source", style: testStyle, want: testStyle},
		{name: "unknown name", style: "nope", wantErr: ErrStyleNotFound},
		{name: "invalid name", style: "bad.name", wantErr: ErrStyleNotFound},
		{name: "missing file", style: filepath.Join(dir, "missing.typ"), wantErr: os.ErrNotExist},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			conv, err := NewConverter(WithCompiler(&fakeCompiler{}), WithStyle(tt.style))
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Contains(t, conv.Style(), tt.want)
		})
	}
}

func TestNewConverter_InvalidTemplate(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "bad.typ")
	require.NoError(t, os.WriteFile(path, []byte("#set page(paper: \"a4\")"), 0o600))

	_, err := NewConverter(WithStyle(path))
	assert.ErrorIs(t, err, ErrInvalidTemplate)
}

func TestNewConverter_AssetLoader(t *testing.T) {
	t.Parallel()

	loader := &fakeLoader{styles: map[string]string{
		DefaultStyle: testStyle + "\n// default",
		"brand":      testStyle + "\n// brand",
	}}

	conv, err := NewConverter(WithAssetLoader(loader))
	require.NoError(t, err)
	assert.Contains(t, conv.Style(), "// default")

	conv, err = NewConverter(WithAssetLoader(loader), WithStyle("brand"))
	require.NoError(t, err)
	assert.Contains(t, conv.Style(), "// brand")
}

func TestNewConverter_AssetPath(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(base, "styles"), 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(base, "styles", "brand.typ"), []byte(testStyle+"\n// custom"), 0o600))

	conv, err := NewConverter(WithAssetPath(base), WithStyle("brand"))
	require.NoError(t, err)
	assert.Contains(t, conv.Style(), "// custom")

	_, err = NewConverter(WithAssetPath(filepath.Join(base, "missing")))
	assert.ErrorIs(t, err, ErrInvalidAssetPath)
}

func TestWithTimeout_PanicsOnNonPositive(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { WithTimeout(0) })
	assert.Panics(t, func() { WithTimeout(-time.Second) })
	assert.NotPanics(t, func() { WithTimeout(time.Second) })
}

// ---------------------------------------------------------------------------
// Convert
// ---------------------------------------------------------------------------

func TestConvert(t *testing.T) {
	t.Parallel()

	conv, compiler := newTestConverter(t, WithStyle(testStyle), WithFontPaths("/fonts/a", "/fonts/b"))

	result, err := conv.Convert(context.Background(), Input{
		Markdown: "---\ntitle: Front\nauthors: [Ada, Grace]\n---\n# Hello\n",
	})
	require.NoError(t, err)

	want := testStyle + "\n\n#article(title: \"Front\", authors: (\"Ada\", \"Grace\"), lang: \"en\", toc: false)[\n= Hello\n\n]\n"
	assert.Equal(t, want, string(result.Typst))
	assert.Equal(t, []byte("%PDF-1.7 fake"), result.PDF)
	assert.Equal(t, want, compiler.source)
	assert.Equal(t, []string{"/fonts/a", "/fonts/b"}, compiler.opts.FontPaths)
	assert.Equal(t, "Front", result.Document.Title)
}

func TestConvert_Overrides(t *testing.T) {
	t.Parallel()

	conv, _ := newTestConverter(t, WithStyle(testStyle))

	result, err := conv.Convert(context.Background(), Input{
		Markdown: "---\ntitle: Front\nauthor: Ada\nlang: fr\ntoc: false\n---\nBody\n",
		Title:    "Override",
		Author:   "Grace",
		Lang:     "de-DE",
		TOC:      Ptr(true),
	})
	require.NoError(t, err)

	doc := result.Document
	assert.Equal(t, "Override", doc.Title)
	assert.Equal(t, []string{"Grace"}, doc.Authors)
	assert.Equal(t, "de", doc.Lang)
	assert.True(t, doc.TOC)
	assert.Contains(t, string(result.Typst), `#article(title: "Override", authors: ("Grace",), lang: "de", toc: true)[`)
}

func TestConvert_TypstOnly(t *testing.T) {
	t.Parallel()

	conv, compiler := newTestConverter(t)

	result, err := conv.Convert(context.Background(), Input{Markdown: "text", TypstOnly: true})
	require.NoError(t, err)
	assert.Nil(t, result.PDF)
	assert.NotEmpty(t, result.Typst)
	assert.Zero(t, compiler.calls)
}

func TestConvert_Errors(t *testing.T) {
	t.Parallel()

	compileErr := &CompileError{ExitCode: 1, Diagnostics: "error: unknown variable"}

	tests := []struct {
		name     string
		input    Input
		compiler *fakeCompiler
		wantErr  error
	}{
		{
			name:     "empty markdown",
			input:    Input{Markdown: "  \n"},
			compiler: &fakeCompiler{},
			wantErr:  ErrEmptyMarkdown,
		},
		{
			name:     "unterminated front matter",
			input:    Input{Markdown: "---\ntitle: x\n"},
			compiler: &fakeCompiler{},
			wantErr:  ErrFrontMatter,
		},
		{
			name:     "invalid front matter yaml",
			input:    Input{Markdown: "---\ntitle: [x\n---\nbody"},
			compiler: &fakeCompiler{},
			wantErr:  ErrFrontMatterYAML,
		},
		{
			name:     "compile error",
			input:    Input{Markdown: "x"},
			compiler: &fakeCompiler{err: compileErr},
			wantErr:  ErrCompile,
		},
		{
			name:     "compiler missing",
			input:    Input{Markdown: "x"},
			compiler: &fakeCompiler{err: ErrCompilerNotFound},
			wantErr:  ErrCompilerNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			conv, err := NewConverter(WithCompiler(tt.compiler))
			require.NoError(t, err)

			_, err = conv.Convert(context.Background(), tt.input)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestConvert_CompileErrorDetails(t *testing.T) {
	t.Parallel()

	conv, err := NewConverter(WithCompiler(&fakeCompiler{err: &CompileError{ExitCode: 1, Diagnostics: "main.typ:3:1: error"}}))
	require.NoError(t, err)

	_, err = conv.Convert(context.Background(), Input{Markdown: "x"})
	var compileErr *CompileError
	require.ErrorAs(t, err, &compileErr)
	assert.Equal(t, "main.typ:3:1: error", compileErr.Diagnostics)
}

func TestConvert_Timeout(t *testing.T) {
	t.Parallel()

	conv, err := NewConverter(WithCompiler(&fakeCompiler{block: true}), WithTimeout(50*time.Millisecond))
	require.NoError(t, err)

	_, err = conv.Convert(context.Background(), Input{Markdown: "x"})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestConvert_Cancelled(t *testing.T) {
	t.Parallel()

	conv, compiler := newTestConverter(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := conv.Convert(ctx, Input{Markdown: "x"})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, compiler.calls)
}

func TestConvert_RecoversPanic(t *testing.T) {
	t.Parallel()

	conv, _ := newTestConverter(t, withTranspiler(panickingTranspiler{}))

	_, err := conv.Convert(context.Background(), Input{Markdown: "x"})
	require.ErrorIs(t, err, ErrInternal)
	assert.Contains(t, err.Error(), "boom")

	_, err = conv.Transpile(context.Background(), Input{Markdown: "x"})
	assert.ErrorIs(t, err, ErrInternal)
}

func TestConvert_LanguageAliases(t *testing.T) {
	t.Parallel()

	conv, _ := newTestConverter(t, WithLanguageAliases(map[string]string{"shell": "bash"}))

	doc, err := conv.Transpile(context.Background(), Input{Markdown: "```Shell\nls\n```\n\n```golang\nx\n```\n"})
	require.NoError(t, err)
	assert.Equal(t, "```bash\nls\n```\n\n```go\nx\n```\n", doc.Body)
}

func TestTranspile(t *testing.T) {
	t.Parallel()

	conv, compiler := newTestConverter(t)

	doc, err := conv.Transpile(context.Background(), Input{Markdown: "# 你好\n\n[toc]\n"})
	require.NoError(t, err)
	assert.Equal(t, "zh", doc.Lang)
	assert.False(t, doc.TOC, "an inline outline replaces the template one")
	assert.Contains(t, doc.Body, "#outline()")
	assert.Zero(t, compiler.calls)
}

func TestConverter_Close(t *testing.T) {
	t.Parallel()

	conv, compiler := newTestConverter(t)
	require.NoError(t, conv.Close())
	assert.True(t, compiler.closed)

	plain, err := NewConverter(WithCompiler(struct{ Compiler }{compiler}))
	require.NoError(t, err)
	assert.NoError(t, plain.Close())
}

func TestConvert_Concurrent(t *testing.T) {
	t.Parallel()

	conv, compiler := newTestConverter(t)

	var wg sync.WaitGroup
	errs := make(chan error, 16)
	for range 16 {
		wg.Go(func() {
			_, err := conv.Convert(context.Background(), Input{Markdown: "# concurrent"})
			if err != nil {
				errs <- err
			}
		})
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Error(err)
	}
	compiler.mu.Lock()
	defer compiler.mu.Unlock()
	assert.Equal(t, 16, compiler.calls)
}

func TestCompileError(t *testing.T) {
	t.Parallel()

	err := error(&CompileError{ExitCode: 2})
	assert.True(t, errors.Is(err, ErrCompile))
	assert.Contains(t, err.Error(), "exit code 2")

	err = &CompileError{ExitCode: 1, Diagnostics: "bad"}
	assert.Equal(t, "typst compilation failed:\nbad", err.Error())
}
