package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-md2typst/internal/config"
	"github.com/alnah/go-md2typst/internal/fileutil"
)

// Sentinel errors for file discovery.
var (
	ErrInvalidExtension      = errors.New("file must have .md or .markdown extension")
	ErrInvalidWorkerCount    = errors.New("invalid worker count")
	ErrMultipleInputsNeedDir = errors.New("multiple inputs require --output to be a directory")
	ErrNoMarkdownFiles       = errors.New("no markdown files found")
)

// stdinOutput is the PDF written for stdin input when -o is absent.
const stdinOutput = "output.pdf"

// FileToConvert represents a single file to process.
type FileToConvert struct {
	InputPath  string
	OutputPath string
}

// discoverFiles expands inputs (files or directories) into the files to
// convert and their output paths.
//
// A single file input writes to output as given, or next to the input when
// output is empty. Several files, any directory, or outputIsDir treat output
// as a directory; directory inputs keep their relative layout below it.
func discoverFiles(inputs []string, output string, outputIsDir bool) ([]FileToConvert, error) {
	type found struct {
		path    string
		baseDir string
	}

	var (
		files   []found
		fromDir bool
	)
	for _, input := range inputs {
		info, err := os.Stat(input)
		if err != nil {
			return nil, err
		}

		if !info.IsDir() {
			if err := validateMarkdownExtension(input); err != nil {
				return nil, err
			}
			files = append(files, found{path: input})
			continue
		}

		fromDir = true
		err = filepath.WalkDir(input, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return fmt.Errorf("scanning %s: %w", path, err)
			}
			if !d.IsDir() && fileutil.IsMarkdown(path) {
				files = append(files, found{path: path, baseDir: input})
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoMarkdownFiles, strings.Join(inputs, ", "))
	}

	multiple := len(files) > 1 || fromDir
	if multiple && !outputIsDir && output != "" && filepath.Ext(output) != "" {
		return nil, fmt.Errorf("%w: got %q", ErrMultipleInputsNeedDir, output)
	}

	result := make([]FileToConvert, len(files))
	for i, f := range files {
		result[i] = FileToConvert{
			InputPath:  f.path,
			OutputPath: resolveOutputPath(f.path, output, f.baseDir, multiple || outputIsDir),
		}
	}
	return result, nil
}

// resolveOutputPath determines the PDF path for one input.
func resolveOutputPath(inputPath, output, baseInputDir string, multiple bool) string {
	pdfName := fileutil.ReplaceExt(filepath.Base(inputPath), ".pdf")

	switch {
	case output == "":
		return fileutil.ReplaceExt(inputPath, ".pdf")
	case !multiple:
		return output
	}

	if baseInputDir != "" {
		if rel, err := filepath.Rel(baseInputDir, inputPath); err == nil {
			return filepath.Join(output, filepath.Dir(rel), pdfName)
		}
	}
	return filepath.Join(output, pdfName)
}

// resolveOutput picks the -o flag, else the config default directory. The
// boolean reports whether the result must be treated as a directory.
func resolveOutput(flagOutput string, cfg *config.Config) (string, bool) {
	if flagOutput != "" {
		return flagOutput, false
	}
	return cfg.Output.DefaultDir, cfg.Output.DefaultDir != ""
}

// validateMarkdownExtension checks that the file has a .md or .markdown extension.
func validateMarkdownExtension(path string) error {
	if !fileutil.IsMarkdown(path) {
		return fmt.Errorf("%w: got %q", ErrInvalidExtension, filepath.Ext(path))
	}
	return nil
}

// validateWorkers checks that the worker count is within valid bounds.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", ErrInvalidWorkerCount, n)
	}
	if n > config.MaxWorkers {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, n, config.MaxWorkers)
	}
	return nil
}
