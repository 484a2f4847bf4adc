package yamlutil_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/alnah/go-md2typst/internal/yamlutil"
)

type sample struct {
	Title   string   `yaml:"title"`
	Authors []string `yaml:"authors"`
	TOC     *bool    `yaml:"toc"`
}

func TestDecode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		data    []byte
		dest    any
		wantErr error
		check   func(t *testing.T, v any)
	}{
		{
			name: "known keys",
			data: []byte("title: Report\nauthors: [Ann, Bo]\ntoc: true"),
			dest: &sample{},
			check: func(t *testing.T, v any) {
				s := v.(*sample)
				if s.Title != "Report" {
					t.Errorf("Title = %q, want %q", s.Title, "Report")
				}
				if len(s.Authors) != 2 || s.Authors[1] != "Bo" {
					t.Errorf("Authors = %v, want [Ann Bo]", s.Authors)
				}
				if s.TOC == nil || !*s.TOC {
					t.Errorf("TOC = %v, want true", s.TOC)
				}
			},
		},
		{
			name: "unknown keys are ignored",
			data: []byte("title: x\ntags: [a, b]\ndate: 2024-01-01"),
			dest: &sample{},
			check: func(t *testing.T, v any) {
				if got := v.(*sample).Title; got != "x" {
					t.Errorf("Title = %q, want %q", got, "x")
				}
			},
		},
		{
			name: "absent toc stays nil",
			data: []byte("title: x"),
			dest: &sample{},
			check: func(t *testing.T, v any) {
				if v.(*sample).TOC != nil {
					t.Error("TOC should be nil when absent")
				}
			},
		},
		{
			name: "cjk content",
			data: []byte("title: 中文标题"),
			dest: &sample{},
			check: func(t *testing.T, v any) {
				if got := v.(*sample).Title; got != "中文标题" {
					t.Errorf("Title = %q", got)
				}
			},
		},
		{
			name:    "empty input",
			data:    nil,
			dest:    &sample{},
			wantErr: yamlutil.ErrEmptyInput,
		},
		{
			name:    "nil destination",
			data:    []byte("title: x"),
			dest:    nil,
			wantErr: yamlutil.ErrNilDestination,
		},
		{
			name:    "syntax error",
			data:    []byte("title: [unclosed"),
			dest:    &sample{},
			wantErr: errors.New("yamlutil:"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := yamlutil.Decode(tt.data, tt.dest)
			if tt.wantErr != nil {
				if err == nil {
					t.Fatalf("expected error containing %q, got nil", tt.wantErr)
				}
				if errors.Is(err, tt.wantErr) {
					return
				}
				if !strings.Contains(err.Error(), tt.wantErr.Error()) {
					t.Fatalf("error = %q, want containing %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.check != nil {
				tt.check(t, tt.dest)
			}
		})
	}
}

func TestDecodeStrict(t *testing.T) {
	t.Parallel()

	t.Run("known keys", func(t *testing.T) {
		t.Parallel()
		var s sample
		if err := yamlutil.DecodeStrict([]byte("title: ok"), &s); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if s.Title != "ok" {
			t.Errorf("Title = %q, want %q", s.Title, "ok")
		}
	})

	t.Run("unknown key fails", func(t *testing.T) {
		t.Parallel()
		var s sample
		err := yamlutil.DecodeStrict([]byte("title: ok\nstlye: typo"), &s)
		if err == nil {
			t.Fatal("expected error for unknown key")
		}
		if !strings.HasPrefix(err.Error(), "yamlutil:") {
			t.Errorf("error = %q, want prefix 'yamlutil:'", err)
		}
	})

	t.Run("empty input", func(t *testing.T) {
		t.Parallel()
		var s sample
		if err := yamlutil.DecodeStrict(nil, &s); !errors.Is(err, yamlutil.ErrEmptyInput) {
			t.Errorf("error = %v, want ErrEmptyInput", err)
		}
	})
}

func TestDescribe(t *testing.T) {
	t.Parallel()

	if got := yamlutil.Describe(nil); got != "" {
		t.Errorf("Describe(nil) = %q, want empty", got)
	}

	plain := errors.New("boom")
	if got := yamlutil.Describe(plain); !strings.Contains(got, "boom") {
		t.Errorf("Describe(plain) = %q, want it to contain the message", got)
	}

	var s sample
	err := yamlutil.Decode([]byte("title: [unclosed"), &s)
	if err == nil {
		t.Fatal("expected syntax error")
	}
	if got := yamlutil.Describe(err); got == "" {
		t.Error("Describe should not be empty for a syntax error")
	}
}

// Not parallel: mutates MaxInputSize.
func TestInputSizeLimit(t *testing.T) {
	original := yamlutil.MaxInputSize
	t.Cleanup(func() { yamlutil.MaxInputSize = original })

	yamlutil.MaxInputSize = 50

	data := make([]byte, 100)
	copy(data, "title: x")
	var s sample

	err := yamlutil.Decode(data, &s)
	if !errors.Is(err, yamlutil.ErrInputTooLarge) {
		t.Fatalf("Decode error = %v, want ErrInputTooLarge", err)
	}
	if msg := err.Error(); !strings.Contains(msg, "100 bytes") || !strings.Contains(msg, "max 50") {
		t.Errorf("error should carry sizes, got: %s", msg)
	}

	if err := yamlutil.DecodeStrict(data, &s); !errors.Is(err, yamlutil.ErrInputTooLarge) {
		t.Errorf("DecodeStrict error = %v, want ErrInputTooLarge", err)
	}
}
