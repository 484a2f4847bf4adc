package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestConvertBatch(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	var files []FileToConvert
	for i := range 6 {
		content := fmt.Sprintf("doc %d", i)
		if i == 3 {
			content = "broken"
		}
		in := writeFile(t, dir, fmt.Sprintf("doc%d.md", i), content)
		files = append(files, FileToConvert{InputPath: in, OutputPath: filepath.Join(dir, "out", fmt.Sprintf("doc%d.pdf", i))})
	}

	pool := newFakePool()
	pool.size = 3
	pool.conv.failOn = map[string]error{"broken": errFakeCompile}

	results := convertBatch(context.Background(), pool, files, &conversionParams{title: "Batch"})

	if len(results) != len(files) {
		t.Fatalf("results = %d, want %d", len(results), len(files))
	}
	for i, r := range results {
		if r.InputPath != files[i].InputPath {
			t.Errorf("result %d out of order: %s", i, r.InputPath)
		}
		if i == 3 {
			if !errors.Is(r.Err, errFakeCompile) {
				t.Errorf("result 3 error = %v, want fake failure", r.Err)
			}
			continue
		}
		if r.Err != nil {
			t.Errorf("result %d error = %v", i, r.Err)
		}
		if got := readFile(t, r.OutputPath); got != fakePDF {
			t.Errorf("%s = %q", r.OutputPath, got)
		}
	}

	for _, in := range pool.conv.calls() {
		if in.Title != "Batch" {
			t.Errorf("title = %q, want Batch", in.Title)
		}
	}
	if pool.acquired != pool.released {
		t.Errorf("acquired %d, released %d", pool.acquired, pool.released)
	}
}

func TestConvertBatch_AcquireError(t *testing.T) {
	t.Parallel()

	errBoom := errors.New("cannot build converter")
	pool := newFakePool()
	pool.acquireErr = errBoom

	files := []FileToConvert{{InputPath: "a.md"}, {InputPath: "b.md"}}
	results := convertBatch(context.Background(), pool, files, &conversionParams{})

	for _, r := range results {
		if !errors.Is(r.Err, errBoom) {
			t.Errorf("%s error = %v, want acquire error", r.InputPath, r.Err)
		}
	}
}

func TestConvertBatch_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	pool := newFakePool()
	files := []FileToConvert{{InputPath: "a.md"}, {InputPath: "b.md"}}
	results := convertBatch(ctx, pool, files, &conversionParams{})

	for _, r := range results {
		if !errors.Is(r.Err, context.Canceled) {
			t.Errorf("%s error = %v, want context.Canceled", r.InputPath, r.Err)
		}
	}
	if len(pool.conv.calls()) != 0 {
		t.Error("no conversion should start after cancellation")
	}
}

func TestConvertBatch_Empty(t *testing.T) {
	t.Parallel()

	if got := convertBatch(context.Background(), newFakePool(), nil, &conversionParams{}); got != nil {
		t.Errorf("convertBatch(nil) = %v, want nil", got)
	}
}

func TestConvertFile_ReadError(t *testing.T) {
	t.Parallel()

	f := FileToConvert{InputPath: filepath.Join(t.TempDir(), "gone.md"), OutputPath: "gone.pdf"}
	r := convertFile(context.Background(), &fakeConverter{}, f, &conversionParams{})
	if !errors.Is(r.Err, ErrReadMarkdown) {
		t.Errorf("error = %v, want ErrReadMarkdown", r.Err)
	}
}

func TestPrintResults(t *testing.T) {
	t.Parallel()

	results := []ConversionResult{
		{InputPath: "a.md", OutputPath: "a.pdf", Duration: 1500 * time.Microsecond},
		{InputPath: "b.md", Err: errFakeCompile},
	}

	tests := []struct {
		name       string
		quiet      bool
		verbose    bool
		wantStdout []string
		denyStdout []string
	}{
		{"default", false, false, []string{"Created a.pdf", "1 succeeded, 1 failed"}, nil},
		{"verbose", false, true, []string{"a.md -> a.pdf (2ms)"}, []string{"Created"}},
		{"quiet", true, false, nil, []string{"Created", "succeeded"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env, stdout, stderr := testEnv(nil)
			failed := printResults(results, tt.quiet, tt.verbose, env)
			if failed != 1 {
				t.Errorf("failed = %d, want 1", failed)
			}
			if !strings.Contains(stderr.String(), "FAILED b.md: fake failure") {
				t.Errorf("stderr = %q", stderr.String())
			}
			for _, s := range tt.wantStdout {
				if !strings.Contains(stdout.String(), s) {
					t.Errorf("stdout missing %q: %q", s, stdout.String())
				}
			}
			for _, s := range tt.denyStdout {
				if strings.Contains(stdout.String(), s) {
					t.Errorf("stdout should not contain %q: %q", s, stdout.String())
				}
			}
		})
	}
}

func TestCountResults(t *testing.T) {
	t.Parallel()

	got := countResults([]ConversionResult{{}, {Err: errFakeCompile}, {}})
	if got.Succeeded != 2 || got.Failed != 1 {
		t.Errorf("countResults() = %+v, want 2 succeeded, 1 failed", got)
	}
}
