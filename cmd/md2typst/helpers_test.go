package main

// Notes:
// - Test doubles shared by the convert, batch and main tests. A fakePool
//   hands out one fakeConverter; no typst binary is needed.

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	md2typst "github.com/alnah/go-md2typst"
)

const fakePDF = "%PDF-fake"

// fakeConverter records inputs and returns a fixed result. Markdown holding
// a key of failOn fails with the mapped error.
type fakeConverter struct {
	mu     sync.Mutex
	inputs []md2typst.Input
	failOn map[string]error
}

func (f *fakeConverter) Convert(_ context.Context, input md2typst.Input) (*md2typst.ConvertResult, error) {
	f.mu.Lock()
	f.inputs = append(f.inputs, input)
	f.mu.Unlock()

	for marker, err := range f.failOn {
		if strings.Contains(input.Markdown, marker) {
			return nil, err
		}
	}
	return &md2typst.ConvertResult{
		Typst: []byte("#show: article.with()\n" + input.Markdown),
		PDF:   []byte(fakePDF),
	}, nil
}

func (f *fakeConverter) calls() []md2typst.Input {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]md2typst.Input(nil), f.inputs...)
}

// fakePool serves a single converter and records how it was built.
type fakePool struct {
	conv       *fakeConverter
	acquireErr error

	mu       sync.Mutex
	size     int
	opts     int
	acquired int
	released int
	closed   bool
}

func newFakePool() *fakePool {
	return &fakePool{conv: &fakeConverter{}}
}

func (p *fakePool) Acquire() (CLIConverter, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.acquireErr != nil {
		return nil, p.acquireErr
	}
	p.acquired++
	return p.conv, nil
}

func (p *fakePool) Release(CLIConverter) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.released++
}

func (p *fakePool) Size() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.size < 1 {
		return 1
	}
	return p.size
}

func (p *fakePool) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	return nil
}

// factory returns a NewPool func handing out p.
func (p *fakePool) factory() func(int, ...md2typst.Option) Pool {
	return func(size int, opts ...md2typst.Option) Pool {
		p.mu.Lock()
		defer p.mu.Unlock()
		p.size = size
		p.opts = len(opts)
		return p
	}
}

// testEnv returns an Environment writing to buffers and using pool.
func testEnv(pool *fakePool) (*Environment, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	env := &Environment{
		Stdin:     strings.NewReader(""),
		Stdout:    &stdout,
		Stderr:    &stderr,
		EnvConfig: &envConfig{},
	}
	if pool != nil {
		env.NewPool = pool.factory()
	}
	return env, &stdout, &stderr
}

// writeFile creates path under dir with content and returns the full path.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

// readFile returns the content of path or fails the test.
func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}

var errFakeCompile = errors.New("fake failure")
