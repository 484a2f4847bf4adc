package md2typst

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/alnah/go-md2typst/internal/fileutil"
	"github.com/alnah/go-md2typst/internal/logging"
	"github.com/alnah/go-md2typst/internal/process"
)

// TypstBinEnv overrides the typst binary location.
const TypstBinEnv = "TYPST_BIN"

// Compiler turns a Typst source into PDF bytes.
type Compiler interface {
	Compile(ctx context.Context, source string, opts CompileOptions) ([]byte, error)
}

// CompileOptions are per-compilation settings.
type CompileOptions struct {
	// FontPaths are extra directories searched for fonts.
	FontPaths []string
}

// CompileError reports a non-zero typst exit. It matches ErrCompile.
type CompileError struct {
	ExitCode int
	// Diagnostics is typst's stderr, trimmed.
	Diagnostics string
}

func (e *CompileError) Error() string {
	if e.Diagnostics == "" {
		return fmt.Sprintf("%v (exit code %d)", ErrCompile, e.ExitCode)
	}
	return fmt.Sprintf("%v:\n%s", ErrCompile, e.Diagnostics)
}

func (e *CompileError) Unwrap() error {
	return ErrCompile
}

// FindTypst locates the typst binary: TYPST_BIN when set, else PATH.
func FindTypst() (string, error) {
	if bin := strings.TrimSpace(os.Getenv(TypstBinEnv)); bin != "" {
		info, err := os.Stat(bin)
		if err != nil || info.IsDir() {
			return "", fmt.Errorf("%w: %s=%s", ErrCompilerNotFound, TypstBinEnv, bin)
		}
		return bin, nil
	}

	bin, err := exec.LookPath("typst")
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrCompilerNotFound, err)
	}
	return bin, nil
}

// TypstCompiler runs the typst CLI. The binary is located on first use, so
// a converter used only for TypstOnly conversions works without typst.
type TypstCompiler struct {
	// Bin is the typst executable. Empty means FindTypst.
	Bin    string
	Logger *slog.Logger
}

// NewTypstCompiler creates a TypstCompiler using FindTypst.
func NewTypstCompiler(logger *slog.Logger) *TypstCompiler {
	if logger == nil {
		logger = logging.Discard()
	}
	return &TypstCompiler{Logger: logger}
}

func (c *TypstCompiler) binary() (string, error) {
	if c.Bin != "" {
		return c.Bin, nil
	}
	return FindTypst()
}

// Compile writes source to a private temp directory, which also serves as
// the typst project root, and returns the PDF typst produced there.
func (c *TypstCompiler) Compile(ctx context.Context, source string, opts CompileOptions) ([]byte, error) {
	bin, err := c.binary()
	if err != nil {
		return nil, err
	}

	dir, err := os.MkdirTemp("", fileutil.TempPrefix+"*")
	if err != nil {
		return nil, fmt.Errorf("creating work directory: %w", err)
	}
	defer func() { _ = os.RemoveAll(dir) }()

	in, cleanup, err := fileutil.WriteTempFileIn(dir, source, "typ")
	if err != nil {
		return nil, err
	}
	defer cleanup()

	out := filepath.Join(dir, "out.pdf")
	args := []string{"compile", "--root", dir, "--diagnostic-format", "short"}
	for _, p := range opts.FontPaths {
		args = append(args, "--font-path", p)
	}
	args = append(args, in, out)

	logger := logging.FromContext(ctx, c.Logger)
	logger.Debug("running typst", "bin", bin, "args", args)

	var stderr bytes.Buffer
	cmd := process.CommandContext(ctx, bin, args...)
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return nil, &CompileError{
				ExitCode:    exitErr.ExitCode(),
				Diagnostics: strings.TrimSpace(stderr.String()),
			}
		}
		return nil, fmt.Errorf("running typst: %w", err)
	}

	pdf, err := os.ReadFile(out) // #nosec G304 -- path inside our temp dir
	if err != nil {
		return nil, fmt.Errorf("reading typst output: %w", err)
	}
	return pdf, nil
}

// Version returns the first line of `typst --version`.
func (c *TypstCompiler) Version(ctx context.Context) (string, error) {
	bin, err := c.binary()
	if err != nil {
		return "", err
	}
	out, err := process.CommandContext(ctx, bin, "--version").Output()
	if err != nil {
		return "", fmt.Errorf("running %s --version: %w", bin, err)
	}
	line, _, _ := strings.Cut(strings.TrimSpace(string(out)), "\n")
	return line, nil
}

var _ Compiler = (*TypstCompiler)(nil)
