package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strconv"
	"time"

	"golang.org/x/term"
	"pkt.systems/version"

	md2typst "github.com/alnah/go-md2typst"
	"github.com/alnah/go-md2typst/internal/logging"
	"github.com/alnah/go-md2typst/internal/update"
)

const defaultWidth = 80

// Environment holds injectable dependencies for testability.
type Environment struct {
	Now    func() time.Time
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// StdinIsTerminal reports whether stdin is interactive. Piped input
	// is converted; an interactive stdin prints usage instead.
	StdinIsTerminal func() bool

	// Width returns the column count used to wrap notices.
	Width func() int

	Logger    *slog.Logger
	LogFormat logging.Format

	// EnvConfig holds the MD2TYPST_* values read at startup.
	EnvConfig *envConfig

	// NewPool builds the converter pool for a run.
	NewPool func(size int, opts ...md2typst.Option) Pool

	// CheckUpdate prints a notice when a newer release exists. Nil disables it.
	CheckUpdate func(ctx context.Context, w io.Writer, width int)
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	envCfg := loadEnvConfig()
	return &Environment{
		Now:    time.Now,
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		StdinIsTerminal: func() bool {
			return term.IsTerminal(int(os.Stdin.Fd())) // #nosec G115 -- fd fits in int
		},
		Width:     func() int { return terminalWidth(defaultWidth) },
		Logger:    logging.New(os.Stderr, envCfg.LogLevel, envCfg.LogFormat),
		LogFormat: envCfg.LogFormat,
		EnvConfig: envCfg,
		NewPool:   newConverterPool,
		CheckUpdate: func(ctx context.Context, w io.Writer, width int) {
			update.Check(ctx, update.NewChecker(), version.Current(), w, width)
		},
	}
}

// terminalWidth returns the width of stderr when it is a terminal, else
// $COLUMNS, else fallback.
func terminalWidth(fallback int) int {
	fd := int(os.Stderr.Fd()) // #nosec G115 -- fd fits in int
	if term.IsTerminal(fd) {
		if w, _, err := term.GetSize(fd); err == nil && w > 0 {
			return w
		}
	}
	if value := os.Getenv("COLUMNS"); value != "" {
		if w, err := strconv.Atoi(value); err == nil && w > 0 {
			return w
		}
	}
	return fallback
}
