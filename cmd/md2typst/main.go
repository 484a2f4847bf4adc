package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/automaxprocs/maxprocs"
	"pkt.systems/version"

	"github.com/alnah/go-md2typst/internal/logging"
)

// Command names.
const (
	cmdConvert = "convert"
	cmdFonts   = "fonts"
	cmdDoctor  = "doctor"
	cmdVersion = "version"
	cmdHelp    = "help"

	cmdCompletion = "completion"
)

func init() {
	version.SetDefaultModule("github.com/alnah/go-md2typst")
}

func main() {
	// maxprocs.Set only fails on an invalid GOMAXPROCS, where runtime defaults apply.
	_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...any) {}))

	env := DefaultEnv()
	warnUnknownEnvVars(env.Stderr)

	ctx, stop := notifyContext(context.Background())
	code := runMain(ctx, os.Args[1:], env)
	stop()
	os.Exit(code)
}

// runMain dispatches to a command and returns the exit code. Anything that
// is not a command name is handed to convert.
func runMain(ctx context.Context, args []string, env *Environment) int {
	ctx = logging.WithRunID(ctx, logging.NewRunID())

	cmd, rest := splitCommand(args)
	switch cmd {
	case cmdVersion:
		fmt.Fprintln(env.Stdout, version.Module(), version.Current())
		return ExitSuccess
	case cmdHelp:
		return runHelp(rest, env)
	case cmdDoctor:
		return runDoctorCmd(ctx, rest, env)
	case cmdFonts:
		return runFontsCmd(ctx, rest, env)
	case cmdCompletion:
		return runCompletionCmd(rest, env)
	default:
		return runConvertCmd(ctx, rest, env)
	}
}

// isCommand reports whether arg names a command.
func isCommand(arg string) bool {
	switch arg {
	case cmdConvert, cmdFonts, cmdDoctor, cmdVersion, cmdHelp, cmdCompletion:
		return true
	}
	return false
}

func splitCommand(args []string) (string, []string) {
	if len(args) > 0 && isCommand(args[0]) {
		return args[0], args[1:]
	}
	return cmdConvert, args
}
