package main

import (
	"io"
	"time"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// documentFlags override front matter metadata.
type documentFlags struct {
	title  string
	author string
	lang   string
	toc    bool
	noTOC  bool
}

// styleFlags select the template and fonts.
type styleFlags struct {
	style     string
	template  string
	assetPath string
	fontPaths []string
}

// runFlags control how conversions run.
type runFlags struct {
	workers int
	timeout time.Duration
	watch   bool
}

// convertFlags holds all flags for the convert command.
type convertFlags struct {
	common    commonFlags
	output    string
	keepTypst bool
	document  documentFlags
	style     styleFlags
	run       runFlags
}

func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show timing and debug logs")
}

func addDocumentFlags(fs *flag.FlagSet, f *documentFlags) {
	fs.StringVarP(&f.title, "title", "t", "", "document title (overrides front matter)")
	fs.StringVarP(&f.author, "author", "a", "", "document author (overrides front matter)")
	fs.StringVar(&f.lang, "lang", "", "document language tag, e.g. en, fr, zh")
	fs.BoolVar(&f.toc, "toc", false, "render a table of contents")
	fs.BoolVar(&f.noTOC, "no-toc", false, "never render a table of contents")
}

func addStyleFlags(fs *flag.FlagSet, f *styleFlags) {
	fs.StringVarP(&f.style, "style", "s", "", "style name or .typ file")
	fs.StringVar(&f.template, "template", "", "custom .typ template defining article()")
	fs.StringVar(&f.assetPath, "asset-path", "", "directory holding styles/{name}.typ")
	fs.StringArrayVar(&f.fontPaths, "font-path", nil, "extra font directory (repeatable)")
}

func addRunFlags(fs *flag.FlagSet, f *runFlags) {
	fs.IntVarP(&f.workers, "workers", "j", 0, "parallel workers (0 = auto)")
	fs.DurationVar(&f.timeout, "timeout", 0, "per-document timeout (e.g. 30s, 2m)")
	fs.BoolVarP(&f.watch, "watch", "w", false, "rebuild when inputs change")
}

// newConvertFlagSet registers every convert flag into f.
func newConvertFlagSet(f *convertFlags, output io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.SortFlags = false

	fs.StringVarP(&f.output, "output", "o", "", "output file or directory")
	fs.BoolVar(&f.keepTypst, "typst", false, "also write the .typ source next to the PDF")

	addDocumentFlags(fs, &f.document)
	addStyleFlags(fs, &f.style)
	addRunFlags(fs, &f.run)
	addCommonFlags(fs, &f.common)

	return fs
}

// parseConvertFlags parses convert command flags and returns positional args.
// Usage is printed by the caller, including for flag.ErrHelp.
func parseConvertFlags(args []string, stderr io.Writer) (*convertFlags, []string, error) {
	f := &convertFlags{}
	fs := newConvertFlagSet(f, stderr)
	fs.Usage = func() {}

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}
