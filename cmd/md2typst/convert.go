package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	flag "github.com/spf13/pflag"

	md2typst "github.com/alnah/go-md2typst"
	"github.com/alnah/go-md2typst/internal/config"
	"github.com/alnah/go-md2typst/internal/fonts"
	"github.com/alnah/go-md2typst/internal/hints"
	"github.com/alnah/go-md2typst/internal/logging"
	"github.com/alnah/go-md2typst/internal/watch"
)

// Sentinel errors for CLI operations.
var (
	ErrUsage           = errors.New("invalid usage")
	ErrConflictingTOC  = errors.New("--toc and --no-toc cannot be used together")
	ErrWatchNeedsFiles = errors.New("--watch requires file inputs, not stdin")
)

// runConvertCmd runs the convert command and returns the exit code.
func runConvertCmd(ctx context.Context, args []string, env *Environment) int {
	flags, positional, err := parseConvertFlags(args, env.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		printConvertUsage(env.Stdout)
		return ExitSuccess
	}
	if err != nil {
		fmt.Fprintf(env.Stderr, "error: %v\n", fmt.Errorf("%w: %v", ErrUsage, err))
		fmt.Fprintln(env.Stderr, "Run 'md2typst help convert' for usage.")
		return ExitUsage
	}

	// An interactive stdin with no inputs means the user wants help, not a
	// conversion waiting on the keyboard.
	if len(positional) == 0 && env.StdinIsTerminal != nil && env.StdinIsTerminal() {
		printConvertUsage(env.Stdout)
		return ExitSuccess
	}

	if err := runConvert(ctx, positional, flags, env); err != nil {
		fmt.Fprintf(env.Stderr, "error: %v%s\n", err, hintFor(err, flags))
		return exitCodeFor(err)
	}

	if !flags.common.quiet && env.CheckUpdate != nil {
		width := defaultWidth
		if env.Width != nil {
			width = env.Width()
		}
		env.CheckUpdate(ctx, env.Stderr, width)
	}
	return ExitSuccess
}

// runConvert orchestrates the conversion process.
func runConvert(ctx context.Context, positionalArgs []string, flags *convertFlags, env *Environment) error {
	if err := validateWorkers(flags.run.workers); err != nil {
		return err
	}

	envCfg := env.EnvConfig
	if envCfg == nil {
		envCfg = &envConfig{}
	}

	configName := flags.common.config
	if configName == "" {
		configName = envCfg.ConfigPath
	}
	cfg, err := loadConfig(configName)
	if err != nil {
		return err
	}

	// Precedence: flags > environment > config file > defaults.
	applyEnvConfig(envCfg, cfg)
	if err := mergeFlags(flags, cfg); err != nil {
		return err
	}
	if err := validateWorkers(cfg.Workers); err != nil {
		return err
	}

	logger := env.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	if flags.common.verbose {
		logger = logging.New(env.Stderr, logging.LevelDebug, env.LogFormat)
	}

	fontDirs := resolveFontDirs(cfg)
	newPool := env.NewPool
	if newPool == nil {
		newPool = newConverterPool
	}
	pool := newPool(md2typst.ResolvePoolSize(cfg.Workers), converterOptions(cfg, fontDirs, logger)...)
	defer func() { _ = pool.Close() }()

	// Build one converter up front so a bad style or template fails the run
	// once instead of once per file.
	conv, err := pool.Acquire()
	if err != nil {
		return err
	}
	pool.Release(conv)

	params := &conversionParams{
		title:     cfg.Document.Title,
		author:    cfg.Document.Author,
		lang:      cfg.Document.Lang,
		toc:       cfg.Document.TOC,
		keepTypst: cfg.Output.KeepTypst,
		cjk:       newCJKWarner(env.Stderr, fontDirs, flags.common.quiet),
	}

	if len(positionalArgs) == 0 {
		if flags.run.watch {
			return ErrWatchNeedsFiles
		}
		return convertStdin(ctx, pool, flags, cfg, params, env)
	}

	output, outputIsDir := resolveOutput(flags.output, cfg)
	files, err := discoverFiles(positionalArgs, output, outputIsDir)
	if err != nil {
		return fmt.Errorf("discovering files: %w", err)
	}
	logger.Debug("starting conversion", "files", len(files), "workers", pool.Size(), "style", cfg.Style)

	results := convertBatch(ctx, pool, files, params)
	if !flags.run.watch {
		return reportResults(results, flags, env)
	}

	printResults(results, flags.common.quiet, flags.common.verbose, env)
	return watchFiles(ctx, pool, files, params, flags, env, logger)
}

// reportResults prints batch results. A single failed file returns its own
// error so the exit code reflects the cause.
func reportResults(results []ConversionResult, flags *convertFlags, env *Environment) error {
	if len(results) == 1 && results[0].Err != nil {
		return results[0].Err
	}
	failed := printResults(results, flags.common.quiet, flags.common.verbose, env)
	if failed > 0 {
		return fmt.Errorf("%w: %d of %d", ErrBatchFailed, failed, len(results))
	}
	return nil
}

// convertStdin converts markdown read from stdin.
func convertStdin(ctx context.Context, pool Pool, flags *convertFlags, cfg *config.Config, params *conversionParams, env *Environment) error {
	content, err := io.ReadAll(env.Stdin)
	if err != nil {
		return fmt.Errorf("%w: stdin: %v", ErrReadMarkdown, err)
	}
	params.cjk.check(string(content))

	output, outputIsDir := resolveOutput(flags.output, cfg)
	switch {
	case output == "":
		output = stdinOutput
	case outputIsDir:
		output = filepath.Join(output, stdinOutput)
	}

	sourceDir, err := os.Getwd()
	if err != nil {
		sourceDir = ""
	}

	conv, err := pool.Acquire()
	if err != nil {
		return err
	}
	defer pool.Release(conv)

	res, err := conv.Convert(ctx, params.input(string(content), sourceDir))
	if err != nil {
		return err
	}
	if err := writeOutputs(output, res, params.keepTypst); err != nil {
		return err
	}

	if !flags.common.quiet {
		fmt.Fprintf(env.Stdout, "Created %s\n", output)
	}
	return nil
}

// watchFiles rebuilds each input when it changes, until ctx is done.
func watchFiles(ctx context.Context, pool Pool, files []FileToConvert, params *conversionParams, flags *convertFlags, env *Environment, logger *slog.Logger) error {
	byPath := make(map[string]FileToConvert, len(files))
	paths := make([]string, 0, len(files))
	for _, f := range files {
		abs, err := filepath.Abs(f.InputPath)
		if err != nil {
			return fmt.Errorf("resolving %s: %w", f.InputPath, err)
		}
		byPath[abs] = f
		paths = append(paths, f.InputPath)
	}

	if !flags.common.quiet {
		fmt.Fprintf(env.Stderr, "Watching %d file(s) for changes. Press Ctrl+C to stop.\n", len(files))
	}

	w := watch.New(logger)
	return w.Run(ctx, paths, func(ctx context.Context, path string) error {
		f, ok := byPath[path]
		if !ok {
			return nil
		}
		results := convertBatch(ctx, pool, []FileToConvert{f}, params)
		printResults(results, flags.common.quiet, flags.common.verbose, env)
		return results[0].Err
	})
}

// loadConfig loads the named config. With no name, the default config is
// used when present and built-in defaults otherwise.
func loadConfig(name string) (*config.Config, error) {
	if name == "" {
		cfg, err := config.LoadConfig(config.DefaultName)
		if errors.Is(err, config.ErrConfigNotFound) {
			return config.DefaultConfig(), nil
		}
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
		return cfg, nil
	}

	cfg, err := config.LoadConfig(name)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// mergeFlags overlays explicitly set flags on cfg.
func mergeFlags(flags *convertFlags, cfg *config.Config) error {
	if flags.document.toc && flags.document.noTOC {
		return ErrConflictingTOC
	}

	if flags.document.title != "" {
		cfg.Document.Title = flags.document.title
	}
	if flags.document.author != "" {
		cfg.Document.Author = flags.document.author
	}
	if flags.document.lang != "" {
		cfg.Document.Lang = flags.document.lang
	}
	if flags.document.toc {
		cfg.Document.TOC = md2typst.Ptr(true)
	}
	if flags.document.noTOC {
		cfg.Document.TOC = md2typst.Ptr(false)
	}

	if flags.style.style != "" {
		cfg.Style = flags.style.style
		cfg.Template = ""
	}
	if flags.style.template != "" {
		cfg.Template = flags.style.template
	}
	if flags.style.assetPath != "" {
		cfg.Assets.BasePath = flags.style.assetPath
	}
	cfg.Fonts.Paths = append(cfg.Fonts.Paths, flags.style.fontPaths...)

	if flags.run.workers > 0 {
		cfg.Workers = flags.run.workers
	}
	if flags.run.timeout > 0 {
		cfg.Timeout = flags.run.timeout.String()
	}
	if flags.keepTypst {
		cfg.Output.KeepTypst = true
	}
	return nil
}

// converterOptions builds the converter options for cfg.
func converterOptions(cfg *config.Config, fontDirs []string, logger *slog.Logger) []md2typst.Option {
	opts := []md2typst.Option{md2typst.WithLogger(logger)}

	if d := cfg.TimeoutDuration(); d > 0 {
		opts = append(opts, md2typst.WithTimeout(d))
	}

	style := cfg.Style
	if cfg.Template != "" {
		style = cfg.Template
	}
	if style != "" {
		opts = append(opts, md2typst.WithStyle(style))
	}

	if cfg.Assets.BasePath != "" {
		opts = append(opts, md2typst.WithAssetPath(cfg.Assets.BasePath))
	}
	if len(fontDirs) > 0 {
		opts = append(opts, md2typst.WithFontPaths(fontDirs...))
	}
	if len(cfg.Code.Languages) > 0 {
		opts = append(opts, md2typst.WithLanguageAliases(cfg.Code.Languages))
	}
	return opts
}

// resolveFontDirs returns the configured font directories plus the user
// font directory when it exists.
func resolveFontDirs(cfg *config.Config) []string {
	dirs := append([]string(nil), cfg.Fonts.Paths...)
	if dir, err := fonts.UserDir(); err == nil {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			dirs = append(dirs, dir)
		}
	}
	return dirs
}

// cjkWarner prints one warning per run when a document holds CJK text and
// no CJK font is available.
type cjkWarner struct {
	once    sync.Once
	w       io.Writer
	hasFont func() bool
}

func newCJKWarner(w io.Writer, fontDirs []string, quiet bool) *cjkWarner {
	if quiet {
		return nil
	}
	return &cjkWarner{
		w: w,
		hasFont: func() bool {
			return fonts.SharedBook(fontDirs...).HasCJKFont()
		},
	}
}

func (c *cjkWarner) check(text string) {
	if c == nil || !fonts.HasCJK(text) {
		return
	}
	c.once.Do(func() {
		if !c.hasFont() {
			fmt.Fprintf(c.w, "warning: document contains CJK text but no CJK font was found%s\n", hints.ForMissingCJKFont())
		}
	})
}

// hintFor returns an actionable hint for err, or "".
func hintFor(err error, flags *convertFlags) string {
	switch {
	case errors.Is(err, md2typst.ErrCompilerNotFound):
		return hints.ForCompilerNotFound()
	case errors.Is(err, md2typst.ErrCompile):
		if flags.keepTypst {
			return ""
		}
		return hints.ForCompileError()
	case errors.Is(err, context.DeadlineExceeded):
		return hints.ForTimeout()
	case errors.Is(err, config.ErrConfigNotFound):
		name := flags.common.config
		if name == "" {
			name = config.DefaultName
		}
		return hints.ForConfigNotFound(config.SearchPaths(name))
	case errors.Is(err, md2typst.ErrStyleNotFound):
		available, _ := md2typst.ListStyles(flags.style.assetPath)
		return hints.ForStyleNotFound(available)
	case errors.Is(err, md2typst.ErrInvalidTemplate):
		return hints.ForInvalidTemplate()
	case errors.Is(err, ErrMultipleInputsNeedDir):
		return hints.ForMultipleInputs()
	case errors.Is(err, ErrCreateOutputDir):
		return hints.ForOutputDirectory()
	}
	return ""
}
