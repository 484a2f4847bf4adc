package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-md2typst/internal/fonts"
)

const (
	fontsInstall = "install"
	fontsList    = "list"
)

// fontsFlags holds flags for the fonts command.
type fontsFlags struct {
	dir   string
	quiet bool
}

func newFontsFlagSet(f *fontsFlags, output io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(cmdFonts, flag.ContinueOnError)
	fs.SetOutput(output)
	fs.SortFlags = false
	fs.StringVar(&f.dir, "dir", "", "font directory (default ~/.md2typst/fonts)")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	return fs
}

// runFontsCmd runs "fonts install" or "fonts list".
func runFontsCmd(ctx context.Context, args []string, env *Environment) int {
	flags := &fontsFlags{}
	fs := newFontsFlagSet(flags, env.Stderr)
	fs.Usage = func() {}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			printFontsUsage(env.Stdout)
			return ExitSuccess
		}
		fmt.Fprintf(env.Stderr, "error: %v\n", err)
		printFontsUsage(env.Stderr)
		return ExitUsage
	}

	rest := fs.Args()
	if len(rest) != 1 {
		printFontsUsage(env.Stderr)
		return ExitUsage
	}

	target := flags.dir
	if target == "" {
		d, err := fonts.UserDir()
		if err != nil {
			fmt.Fprintf(env.Stderr, "error: %v\n", err)
			return ExitGeneral
		}
		target = d
	}

	var err error
	switch rest[0] {
	case fontsInstall:
		err = installFonts(ctx, target, flags.quiet, env)
	case fontsList:
		err = listFonts(target, env.Stdout)
	default:
		fmt.Fprintf(env.Stderr, "Unknown fonts action: %s\n", rest[0])
		printFontsUsage(env.Stderr)
		return ExitUsage
	}
	if err != nil {
		fmt.Fprintf(env.Stderr, "error: %v\n", err)
		return exitCodeFor(err)
	}
	return ExitSuccess
}

func installFonts(ctx context.Context, dir string, quiet bool, env *Environment) error {
	var progress fonts.Progress
	if !quiet {
		progress = progressPrinter(env.Stderr)
	}

	res, err := fonts.Install(ctx, dir, progress)
	if err != nil {
		return err
	}
	if quiet {
		return nil
	}

	for _, name := range res.Installed {
		fmt.Fprintf(env.Stdout, "Installed %s\n", filepath.Join(dir, name))
	}
	for _, name := range res.Skipped {
		fmt.Fprintf(env.Stdout, "Already installed %s\n", name)
	}
	return nil
}

// progressPrinter reports download progress on a single rewritten line.
func progressPrinter(w io.Writer) fonts.Progress {
	return func(name string, downloaded, total int64) {
		const mb = 1 << 20
		if total > 0 {
			fmt.Fprintf(w, "\r%s: %.1f/%.1f MB", name, float64(downloaded)/mb, float64(total)/mb)
		} else {
			fmt.Fprintf(w, "\r%s: %.1f MB", name, float64(downloaded)/mb)
		}
		if total > 0 && downloaded >= total {
			fmt.Fprintln(w)
		}
	}
}

func listFonts(dir string, w io.Writer) error {
	files, err := fonts.List(dir)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		fmt.Fprintf(w, "No fonts in %s\n", dir)
		return nil
	}
	for _, f := range files {
		fmt.Fprintln(w, f)
	}
	return nil
}
