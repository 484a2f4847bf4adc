package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"

	flag "github.com/spf13/pflag"

	md2typst "github.com/alnah/go-md2typst"
	"github.com/alnah/go-md2typst/internal/config"
	"github.com/alnah/go-md2typst/internal/fileutil"
	"github.com/alnah/go-md2typst/internal/fonts"
	"github.com/alnah/go-md2typst/internal/hints"
)

// Doctor statuses.
const (
	statusReady    = "ready"
	statusWarnings = "warnings"
	statusErrors   = "errors"
)

// doctorResult holds all diagnostic information.
type doctorResult struct {
	Status   string     `json:"status"`
	Typst    typstInfo  `json:"typst"`
	Fonts    fontInfo   `json:"fonts"`
	Env      envInfo    `json:"environment"`
	System   systemInfo `json:"system"`
	Warnings []string   `json:"warnings,omitempty"`
	Errors   []string   `json:"errors,omitempty"`
}

// typstInfo holds compiler detection results.
type typstInfo struct {
	Found   bool   `json:"found"`
	Path    string `json:"path,omitempty"`
	Version string `json:"version,omitempty"`
	Bin     string `json:"typst_bin,omitempty"`
}

// fontInfo holds font discovery results.
type fontInfo struct {
	UserDir     string `json:"user_dir,omitempty"`
	UserCount   int    `json:"user_count"`
	SystemCount int    `json:"system_count"`
	CJK         bool   `json:"cjk"`
}

// envInfo holds environment detection results.
type envInfo struct {
	OS            string `json:"os"`
	Arch          string `json:"arch"`
	Container     bool   `json:"container"`
	ContainerHint string `json:"container_hint,omitempty"`
	CI            bool   `json:"ci"`
}

// systemInfo holds system check results.
type systemInfo struct {
	TempWritable bool   `json:"temp_writable"`
	ConfigFile   string `json:"config_file,omitempty"`
}

func newDoctorFlagSet(jsonOutput *bool, output io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(cmdDoctor, flag.ContinueOnError)
	fs.SetOutput(output)
	fs.BoolVar(jsonOutput, "json", false, "print results as JSON")
	return fs
}

// runDoctorCmd executes the doctor command and returns an exit code.
// Exit codes: 0 = OK (including warnings), 1 = errors found.
func runDoctorCmd(ctx context.Context, args []string, env *Environment) int {
	var jsonOutput bool
	fs := newDoctorFlagSet(&jsonOutput, env.Stderr)
	fs.Usage = func() {}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			printDoctorUsage(env.Stdout)
			return ExitSuccess
		}
		fmt.Fprintf(env.Stderr, "error: %v\n", err)
		printDoctorUsage(env.Stderr)
		return ExitUsage
	}

	result := runDoctor(ctx)

	if jsonOutput {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(result)
	} else {
		printDoctorResult(env.Stdout, result)
	}

	if result.Status == statusErrors {
		return ExitGeneral
	}
	return ExitSuccess
}

// runDoctor performs all diagnostic checks.
func runDoctor(ctx context.Context) *doctorResult {
	result := &doctorResult{
		Status: statusReady,
		Env: envInfo{
			OS:   runtime.GOOS,
			Arch: runtime.GOARCH,
		},
	}

	checkTypst(ctx, result)
	checkFonts(result)
	checkEnvironment(result)
	checkSystem(result)

	if len(result.Errors) > 0 {
		result.Status = statusErrors
	} else if len(result.Warnings) > 0 {
		result.Status = statusWarnings
	}

	return result
}

// checkTypst locates typst and reads its version.
func checkTypst(ctx context.Context, result *doctorResult) {
	result.Typst.Bin = os.Getenv(md2typst.TypstBinEnv)

	path, err := md2typst.FindTypst()
	if err != nil {
		result.Errors = append(result.Errors, "typst not found. Install typst or set "+md2typst.TypstBinEnv)
		return
	}
	result.Typst.Found = true
	result.Typst.Path = path

	compiler := &md2typst.TypstCompiler{Bin: path}
	v, err := compiler.Version(ctx)
	if err != nil {
		result.Warnings = append(result.Warnings, fmt.Sprintf("Could not get typst version: %v", err))
		return
	}
	result.Typst.Version = v
}

// checkFonts counts user and system fonts and looks for a CJK face.
func checkFonts(result *doctorResult) {
	var dirs []string
	if dir, err := fonts.UserDir(); err == nil {
		result.Fonts.UserDir = dir
		if files, err := fonts.List(dir); err == nil {
			result.Fonts.UserCount = len(files)
			dirs = append(dirs, dir)
		}
	}

	book := fonts.SharedBook(dirs...)
	result.Fonts.SystemCount = book.Len() - result.Fonts.UserCount
	result.Fonts.CJK = book.HasCJKFont()

	if !result.Fonts.CJK {
		result.Warnings = append(result.Warnings,
			"No CJK font found. Chinese text will not render; run 'md2typst fonts install'")
	}
}

// checkEnvironment detects container and CI environments.
func checkEnvironment(result *doctorResult) {
	result.Env.Container, result.Env.ContainerHint = isContainer()

	ciVars := []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "CIRCLECI"}
	for _, v := range ciVars {
		if os.Getenv(v) != "" {
			result.Env.CI = true
			break
		}
	}
}

// isContainer detects if running in a container environment.
// Returns (isContainer, hint) where hint indicates which signal was detected.
func isContainer() (bool, string) {
	if os.Getenv("MD2TYPST_CONTAINER") == "1" {
		return true, "MD2TYPST_CONTAINER=1"
	}
	if hints.IsInContainer() {
		return true, "/.dockerenv"
	}
	// Podman / systemd-nspawn
	if v := os.Getenv("container"); v != "" {
		return true, "container=" + v
	}
	if os.Getenv("KUBERNETES_SERVICE_HOST") != "" {
		return true, "KUBERNETES_SERVICE_HOST"
	}
	return false, ""
}

// checkSystem verifies the temp directory and looks for a default config.
func checkSystem(result *doctorResult) {
	_, cleanup, err := fileutil.WriteTempFile("doctor", "typ")
	if err != nil {
		result.Errors = append(result.Errors,
			fmt.Sprintf("Temp directory not writable: %s", os.TempDir()))
	} else {
		cleanup()
		result.System.TempWritable = true
	}

	for _, p := range config.SearchPaths(config.DefaultName) {
		if fileutil.FileExists(p) {
			result.System.ConfigFile = p
			break
		}
	}
}

// printDoctorResult outputs human-readable diagnostic results.
func printDoctorResult(w io.Writer, r *doctorResult) {
	fmt.Fprintln(w, "md2typst doctor")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Typst")
	if r.Typst.Found {
		fmt.Fprintf(w, "  [OK] Found at %s\n", r.Typst.Path)
		if r.Typst.Version != "" {
			fmt.Fprintf(w, "  [OK] Version: %s\n", r.Typst.Version)
		}
	} else {
		fmt.Fprintln(w, "  [ERROR] Not found")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Fonts")
	if r.Fonts.UserDir != "" {
		fmt.Fprintf(w, "  [OK] User fonts: %d in %s\n", r.Fonts.UserCount, r.Fonts.UserDir)
	}
	fmt.Fprintf(w, "  [OK] System fonts: %d\n", r.Fonts.SystemCount)
	if r.Fonts.CJK {
		fmt.Fprintln(w, "  [OK] CJK font: available")
	} else {
		fmt.Fprintln(w, "  [WARN] CJK font: missing")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Environment")
	fmt.Fprintf(w, "  [OK] Platform: %s/%s\n", r.Env.OS, r.Env.Arch)
	if r.Env.Container {
		fmt.Fprintf(w, "  [OK] Container: detected (%s)\n", r.Env.ContainerHint)
	}
	if r.Env.CI {
		fmt.Fprintln(w, "  [OK] CI: detected")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "System")
	if r.System.TempWritable {
		fmt.Fprintln(w, "  [OK] Temp directory: writable")
	} else {
		fmt.Fprintln(w, "  [ERROR] Temp directory: not writable")
	}
	if r.System.ConfigFile != "" {
		fmt.Fprintf(w, "  [OK] Config: %s\n", r.System.ConfigFile)
	} else {
		fmt.Fprintln(w, "  [OK] Config: none (built-in defaults)")
	}
	fmt.Fprintln(w)

	if len(r.Warnings) > 0 {
		fmt.Fprintln(w, "Warnings:")
		for _, warn := range r.Warnings {
			fmt.Fprintf(w, "  [WARN] %s\n", warn)
		}
		fmt.Fprintln(w)
	}

	if len(r.Errors) > 0 {
		fmt.Fprintln(w, "Errors:")
		for _, err := range r.Errors {
			fmt.Fprintf(w, "  [ERROR] %s\n", err)
		}
		fmt.Fprintln(w)
	}

	switch r.Status {
	case statusReady:
		fmt.Fprintln(w, "Status: Ready to convert")
	case statusWarnings:
		fmt.Fprintln(w, "Status: Ready with warnings")
	case statusErrors:
		fmt.Fprintln(w, "Status: Not ready (see errors above)")
	}
}
