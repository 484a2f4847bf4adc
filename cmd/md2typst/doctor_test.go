package main

// Notes:
// - Doctor results depend on the host (typst installed or not, fonts), so
//   the tests check structure and consistency, not specific findings.
// - Tests that change TYPST_BIN or container variables cannot run in parallel.

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func TestRunDoctorCmd_JSONOutput(t *testing.T) {
	t.Parallel()

	env, stdout, _ := testEnv(nil)
	exitCode := runDoctorCmd(context.Background(), []string{"--json"}, env)

	var result doctorResult
	if err := json.Unmarshal(stdout.Bytes(), &result); err != nil {
		t.Fatalf("invalid JSON output: %v\n%s", err, stdout.String())
	}

	valid := map[string]bool{statusReady: true, statusWarnings: true, statusErrors: true}
	if !valid[result.Status] {
		t.Errorf("invalid status %q", result.Status)
	}
	if result.Status == statusErrors && exitCode != ExitGeneral {
		t.Errorf("exit code = %d for errors status, want %d", exitCode, ExitGeneral)
	}
	if result.Status != statusErrors && exitCode != ExitSuccess {
		t.Errorf("exit code = %d for %s status, want %d", exitCode, result.Status, ExitSuccess)
	}
	if result.Env.OS != runtime.GOOS || result.Env.Arch != runtime.GOARCH {
		t.Errorf("platform = %s/%s, want %s/%s", result.Env.OS, result.Env.Arch, runtime.GOOS, runtime.GOARCH)
	}
	if result.Typst.Found != (result.Typst.Path != "") {
		t.Errorf("typst found = %v with path %q", result.Typst.Found, result.Typst.Path)
	}
}

func TestRunDoctorCmd_HumanOutput(t *testing.T) {
	t.Parallel()

	env, stdout, _ := testEnv(nil)
	runDoctorCmd(context.Background(), nil, env)

	out := stdout.String()
	for _, section := range []string{"md2typst doctor", "Typst", "Fonts", "Environment", "System", "Status:"} {
		if !strings.Contains(out, section) {
			t.Errorf("output missing %q:\n%s", section, out)
		}
	}
}

func TestRunDoctorCmd_BadFlag(t *testing.T) {
	t.Parallel()

	env, _, stderr := testEnv(nil)
	if code := runDoctorCmd(context.Background(), []string{"--yaml"}, env); code != ExitUsage {
		t.Errorf("exit code = %d, want %d", code, ExitUsage)
	}
	if !strings.Contains(stderr.String(), "Usage: md2typst doctor") {
		t.Errorf("stderr = %q", stderr.String())
	}
}

func TestRunDoctor_MissingTypst(t *testing.T) {
	t.Setenv("TYPST_BIN", filepath.Join(t.TempDir(), "no-typst"))

	result := runDoctor(context.Background())
	if result.Typst.Found {
		t.Fatal("typst should not be found")
	}
	if result.Status != statusErrors {
		t.Errorf("status = %q, want %q", result.Status, statusErrors)
	}
	if len(result.Errors) == 0 || !strings.Contains(result.Errors[0], "TYPST_BIN") {
		t.Errorf("errors = %v, want TYPST_BIN advice", result.Errors)
	}
}

func TestIsContainer(t *testing.T) {
	t.Run("explicit override", func(t *testing.T) {
		t.Setenv("MD2TYPST_CONTAINER", "1")

		got, hint := isContainer()
		if !got || hint != "MD2TYPST_CONTAINER=1" {
			t.Errorf("isContainer() = %v, %q", got, hint)
		}
	})

	t.Run("kubernetes", func(t *testing.T) {
		t.Setenv("MD2TYPST_CONTAINER", "")
		t.Setenv("container", "")
		t.Setenv("KUBERNETES_SERVICE_HOST", "10.0.0.1")

		got, _ := isContainer()
		if !got {
			t.Error("expected container detection")
		}
	})
}

func TestPrintDoctorResult_Statuses(t *testing.T) {
	t.Parallel()

	tests := []struct {
		result *doctorResult
		want   string
	}{
		{&doctorResult{Status: statusReady}, "Status: Ready to convert"},
		{&doctorResult{Status: statusWarnings, Warnings: []string{"w"}}, "[WARN] w"},
		{&doctorResult{Status: statusErrors, Errors: []string{"e"}}, "Status: Not ready"},
		{&doctorResult{Status: statusReady, Typst: typstInfo{Found: true, Path: "/bin/typst", Version: "typst 0.13.1"}}, "Version: typst 0.13.1"},
	}

	for _, tt := range tests {
		var buf bytes.Buffer
		printDoctorResult(&buf, tt.result)
		if !strings.Contains(buf.String(), tt.want) {
			t.Errorf("output missing %q:\n%s", tt.want, buf.String())
		}
	}
}
