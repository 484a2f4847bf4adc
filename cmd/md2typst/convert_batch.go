package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	md2typst "github.com/alnah/go-md2typst"
	"github.com/alnah/go-md2typst/internal/fileutil"
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// Sentinel errors for batch operations.
var (
	ErrReadMarkdown    = errors.New("failed to read markdown file")
	ErrWritePDF        = errors.New("failed to write PDF file")
	ErrCreateOutputDir = errors.New("failed to create output directory")
	ErrBatchFailed     = errors.New("one or more conversions failed")
)

// CLIConverter is the interface for the conversion service.
type CLIConverter interface {
	Convert(ctx context.Context, input md2typst.Input) (*md2typst.ConvertResult, error)
}

// Compile-time interface implementation check.
var _ CLIConverter = (*md2typst.Converter)(nil)

// Pool abstracts converter pool operations for testability.
type Pool interface {
	Acquire() (CLIConverter, error)
	Release(CLIConverter)
	Size() int
	Close() error
}

// newConverterPool is the production Pool factory.
func newConverterPool(size int, opts ...md2typst.Option) Pool {
	return &poolAdapter{pool: md2typst.NewConverterPool(size, opts...)}
}

// poolAdapter exposes a *md2typst.ConverterPool as a Pool.
type poolAdapter struct {
	pool *md2typst.ConverterPool
}

var _ Pool = (*poolAdapter)(nil)

func (a *poolAdapter) Acquire() (CLIConverter, error) {
	conv, err := a.pool.Acquire()
	if err != nil {
		return nil, err
	}
	return conv, nil
}

func (a *poolAdapter) Release(c CLIConverter) {
	conv, ok := c.(*md2typst.Converter)
	if !ok {
		panic(fmt.Sprintf("poolAdapter.Release: unexpected type %T", c))
	}
	a.pool.Release(conv)
}

func (a *poolAdapter) Size() int {
	return a.pool.Size()
}

func (a *poolAdapter) Close() error {
	return a.pool.Close()
}

// conversionParams groups values shared by every file of a run.
type conversionParams struct {
	title     string
	author    string
	lang      string
	toc       *bool
	keepTypst bool
	cjk       *cjkWarner
}

// input builds the converter input for one file.
func (p *conversionParams) input(markdown, sourceDir string) md2typst.Input {
	return md2typst.Input{
		Markdown:  markdown,
		Title:     p.title,
		Author:    p.author,
		Lang:      p.lang,
		TOC:       p.toc,
		SourceDir: sourceDir,
	}
}

// ConversionResult holds the outcome of a single conversion.
type ConversionResult struct {
	InputPath  string
	OutputPath string
	Err        error
	Duration   time.Duration
}

// convertBatch processes files concurrently using the converter pool.
// Results keep the order of files.
func convertBatch(ctx context.Context, pool Pool, files []FileToConvert, params *conversionParams) []ConversionResult {
	if len(files) == 0 {
		return nil
	}

	concurrency := min(pool.Size(), len(files))

	results := make([]ConversionResult, len(files))
	jobs := make(chan int, len(files))
	for i := range files {
		jobs <- i
	}
	close(jobs)

	var wg sync.WaitGroup
	for range concurrency {
		wg.Go(func() {
			conv, err := pool.Acquire()
			if err != nil {
				for idx := range jobs {
					results[idx] = ConversionResult{InputPath: files[idx].InputPath, Err: err}
				}
				return
			}
			defer pool.Release(conv)

			for idx := range jobs {
				if ctx.Err() != nil {
					results[idx] = ConversionResult{InputPath: files[idx].InputPath, Err: ctx.Err()}
					continue
				}
				results[idx] = convertFile(ctx, conv, files[idx], params)
			}
		})
	}

	wg.Wait()
	return results
}

// convertFile processes a single file and returns the result.
func convertFile(ctx context.Context, conv CLIConverter, f FileToConvert, params *conversionParams) ConversionResult {
	start := time.Now()
	result := ConversionResult{InputPath: f.InputPath, OutputPath: f.OutputPath}

	content, err := os.ReadFile(f.InputPath) // #nosec G304 -- discovered path
	if err != nil {
		result.Err = fmt.Errorf("%w: %v", ErrReadMarkdown, err)
		result.Duration = time.Since(start)
		return result
	}

	params.cjk.check(string(content))

	sourceDir, err := filepath.Abs(filepath.Dir(f.InputPath))
	if err != nil {
		sourceDir = filepath.Dir(f.InputPath)
	}

	res, err := conv.Convert(ctx, params.input(string(content), sourceDir))
	if err != nil {
		result.Err = err
		result.Duration = time.Since(start)
		return result
	}

	result.Err = writeOutputs(f.OutputPath, res, params.keepTypst)
	result.Duration = time.Since(start)
	return result
}

// writeOutputs writes the PDF, and the Typst source when keepTypst is set.
func writeOutputs(pdfPath string, res *md2typst.ConvertResult, keepTypst bool) error {
	if err := os.MkdirAll(filepath.Dir(pdfPath), dirPermissions); err != nil {
		return fmt.Errorf("%w: %v", ErrCreateOutputDir, err)
	}

	if keepTypst {
		typPath := fileutil.ReplaceExt(pdfPath, ".typ")
		if err := fileutil.WriteFileAtomic(typPath, res.Typst, filePermissions); err != nil {
			return fmt.Errorf("writing Typst source: %w", err)
		}
	}

	if err := fileutil.WriteFileAtomic(pdfPath, res.PDF, filePermissions); err != nil {
		return fmt.Errorf("%w: %v", ErrWritePDF, err)
	}
	return nil
}

// ResultSummary holds the count of succeeded and failed conversions.
type ResultSummary struct {
	Succeeded int
	Failed    int
}

// countResults tallies succeeded and failed conversions.
func countResults(results []ConversionResult) ResultSummary {
	var summary ResultSummary
	for _, r := range results {
		if r.Err != nil {
			summary.Failed++
		} else {
			summary.Succeeded++
		}
	}
	return summary
}

// printResults writes one line per result and a summary for batches.
// It returns the number of failures.
func printResults(results []ConversionResult, quiet, verbose bool, env *Environment) int {
	summary := countResults(results)

	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(env.Stderr, "FAILED %s: %v\n", r.InputPath, r.Err)
			continue
		}

		if quiet {
			continue
		}

		if verbose {
			fmt.Fprintf(env.Stdout, "%s -> %s (%v)\n", r.InputPath, r.OutputPath, r.Duration.Round(time.Millisecond))
		} else {
			fmt.Fprintf(env.Stdout, "Created %s\n", r.OutputPath)
		}
	}

	if !quiet && len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed\n", summary.Succeeded, summary.Failed)
	}

	return summary.Failed
}
