package main

import (
	"strings"
	"testing"

	flag "github.com/spf13/pflag"
)

func TestRunHelp(t *testing.T) {
	t.Parallel()

	tests := []struct {
		args     []string
		wantCode int
		want     string
	}{
		{nil, ExitSuccess, "Usage: md2typst [command]"},
		{[]string{"convert"}, ExitSuccess, "--template"},
		{[]string{"fonts"}, ExitSuccess, "fonts <install|list>"},
		{[]string{"doctor"}, ExitSuccess, "--json"},
		{[]string{"version"}, ExitSuccess, "md2typst version"},
		{[]string{"help"}, ExitSuccess, "md2typst help [command]"},
		{[]string{"completion"}, ExitSuccess, "md2typst completion <shell>"},
	}

	for _, tt := range tests {
		t.Run(strings.Join(tt.args, "_"), func(t *testing.T) {
			t.Parallel()

			env, stdout, _ := testEnv(nil)
			if code := runHelp(tt.args, env); code != tt.wantCode {
				t.Errorf("exit code = %d, want %d", code, tt.wantCode)
			}
			if !strings.Contains(stdout.String(), tt.want) {
				t.Errorf("stdout = %q, want substring %q", stdout.String(), tt.want)
			}
		})
	}
}

func TestRunHelp_UnknownCommand(t *testing.T) {
	t.Parallel()

	env, stdout, stderr := testEnv(nil)
	if code := runHelp([]string{"frobnicate"}, env); code != ExitUsage {
		t.Errorf("exit code = %d, want %d", code, ExitUsage)
	}
	if !strings.Contains(stderr.String(), "Unknown command: frobnicate") {
		t.Errorf("stderr = %q", stderr.String())
	}
	if stdout.Len() != 0 {
		t.Errorf("stdout should be empty, got %q", stdout.String())
	}
}

func TestConvertUsageListsEveryFlag(t *testing.T) {
	t.Parallel()

	env, stdout, _ := testEnv(nil)
	printConvertUsage(env.Stdout)
	usage := stdout.String()

	fs := newConvertFlagSet(&convertFlags{}, env.Stderr)
	fs.VisitAll(func(f *flag.Flag) {
		if !strings.Contains(usage, "--"+f.Name) {
			t.Errorf("usage does not document --%s", f.Name)
		}
	})
}
