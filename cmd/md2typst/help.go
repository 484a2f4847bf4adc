package main

import (
	"fmt"
	"io"

	"pkt.systems/version"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, version.Module(), version.Current())
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage: md2typst [command] [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  convert    Convert markdown files to PDF (default)")
	fmt.Fprintln(w, "  fonts      Install or list fonts")
	fmt.Fprintln(w, "  doctor     Check the typst compiler and fonts")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  completion Generate shell completion script")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'md2typst help <command>' for details on a specific command.")
}

// printConvertUsage prints usage for the convert command.
func printConvertUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2typst [convert] [inputs...] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert markdown files to PDF through Typst. Inputs are .md/.markdown")
	fmt.Fprintln(w, "files or directories. With no input, markdown is read from stdin.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <path>       Output file, or directory for several inputs")
	fmt.Fprintln(w, "      --typst               Also write the .typ source next to the PDF")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Document:")
	fmt.Fprintln(w, "  -t, --title <s>           Title (overrides front matter)")
	fmt.Fprintln(w, "  -a, --author <s>          Author (overrides front matter)")
	fmt.Fprintln(w, "      --lang <tag>          Language tag, e.g. en, fr, zh")
	fmt.Fprintln(w, "      --toc                 Render a table of contents")
	fmt.Fprintln(w, "      --no-toc              Never render a table of contents")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Styling:")
	fmt.Fprintln(w, "  -s, --style <name|path>   Style: modern-tech, classic-editorial, or a .typ file")
	fmt.Fprintln(w, "      --template <path>     Custom template defining #let article(...)")
	fmt.Fprintln(w, "      --asset-path <dir>    Directory holding styles/{name}.typ")
	fmt.Fprintln(w, "      --font-path <dir>     Extra font directory (repeatable)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Execution:")
	fmt.Fprintln(w, "  -j, --workers <n>         Parallel workers (0 = auto)")
	fmt.Fprintln(w, "      --timeout <d>         Per-document timeout (default 30s)")
	fmt.Fprintln(w, "  -w, --watch               Rebuild when inputs change")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show timing and debug logs")
}

func printFontsUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2typst fonts <install|list> [--dir <path>] [-q]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  install    Download the Noto CJK fonts used for Chinese documents")
	fmt.Fprintln(w, "  list       List installed fonts")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Fonts go to ~/.md2typst/fonts unless --dir or MD2TYPST_FONT_DIR is set.")
}

func printDoctorUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2typst doctor [--json]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Check that typst is installed and fonts are available.")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return ExitSuccess
	}

	switch args[0] {
	case cmdConvert:
		printConvertUsage(env.Stdout)
	case cmdFonts:
		printFontsUsage(env.Stdout)
	case cmdDoctor:
		printDoctorUsage(env.Stdout)
	case cmdCompletion:
		printCompletionUsage(env.Stdout)
	case cmdVersion:
		fmt.Fprintln(env.Stdout, "Usage: md2typst version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case cmdHelp:
		fmt.Fprintln(env.Stdout, "Usage: md2typst help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
		return ExitUsage
	}
	return ExitSuccess
}
