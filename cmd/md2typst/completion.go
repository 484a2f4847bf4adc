package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-md2typst/internal/assets"
)

// Shell represents a supported shell for completion generation.
type Shell string

// Supported shells for completion.
const (
	ShellBash       Shell = "bash"
	ShellZsh        Shell = "zsh"
	ShellFish       Shell = "fish"
	ShellPowerShell Shell = "powershell"
)

var supportedShells = []Shell{ShellBash, ShellZsh, ShellFish, ShellPowerShell}

// ErrUnsupportedShell is returned when an unknown shell is requested.
var ErrUnsupportedShell = errors.New("unsupported shell")

const programName = "md2typst"

// flagType represents the completion type for a flag.
type flagType int

const (
	flagString flagType = iota // default
	flagBool
	flagInt
	flagEnum // has predefined values
	flagFile // file with glob pattern
	flagDir  // directory
)

// flagDef describes a flag for completion purposes.
type flagDef struct {
	Long     string   // --output
	Short    string   // -o (empty if none)
	Type     flagType // completion type
	Desc     string   // help text
	Values   []string // for enum flags
	FileGlob string   // for file flags, comma separated
}

// takesValue reports whether the flag consumes the next word.
func (f flagDef) takesValue() bool {
	return f.Type != flagBool
}

// commandDef describes a command for completion.
type commandDef struct {
	Name        string
	Desc        string
	Flags       []flagDef
	Args        []string // fixed words accepted as first argument
	FilePattern string   // glob for file arguments (e.g. "*.md"), empty if none
}

// completionMeta holds completion hints that a FlagSet cannot express.
type completionMeta struct {
	Values   []string
	FileGlob string
	IsDir    bool
}

// flagCompletionMeta maps flag names to their completion metadata. Names,
// types and descriptions come from the flag sets.
var flagCompletionMeta = map[string]completionMeta{
	"style":    {Values: assets.ListStyles()},
	"config":   {FileGlob: "*.yaml,*.yml"},
	"template": {FileGlob: "*.typ"},

	"output":     {IsDir: true},
	"asset-path": {IsDir: true},
	"font-path":  {IsDir: true},
	"dir":        {IsDir: true},
}

// extractFlagsFromFlagSet converts a FlagSet into completion definitions.
func extractFlagsFromFlagSet(fs *flag.FlagSet) []flagDef {
	var flags []flagDef

	fs.VisitAll(func(f *flag.Flag) {
		fd := flagDef{
			Long:  f.Name,
			Short: f.Shorthand,
			Desc:  f.Usage,
		}

		switch f.Value.Type() {
		case "bool":
			fd.Type = flagBool
		case "int", "int64", "uint", "uint64":
			fd.Type = flagInt
		default:
			fd.Type = flagString
		}

		if meta, ok := flagCompletionMeta[f.Name]; ok {
			switch {
			case len(meta.Values) > 0:
				fd.Type = flagEnum
				fd.Values = meta.Values
			case meta.FileGlob != "":
				fd.Type = flagFile
				fd.FileGlob = meta.FileGlob
			case meta.IsDir:
				fd.Type = flagDir
			}
		}

		flags = append(flags, fd)
	})

	return flags
}

func shellNames() []string {
	names := make([]string, len(supportedShells))
	for i, s := range supportedShells {
		names[i] = string(s)
	}
	return names
}

// getCommands returns the command registry. Flags are read from the same
// flag sets the commands parse with.
func getCommands() []commandDef {
	var jsonOutput bool
	return []commandDef{
		{
			Name:        cmdConvert,
			Desc:        "Convert markdown files to PDF",
			Flags:       extractFlagsFromFlagSet(newConvertFlagSet(&convertFlags{}, io.Discard)),
			FilePattern: "*.md,*.markdown",
		},
		{
			Name:  cmdFonts,
			Desc:  "Install or list fonts",
			Flags: extractFlagsFromFlagSet(newFontsFlagSet(&fontsFlags{}, io.Discard)),
			Args:  []string{fontsInstall, fontsList},
		},
		{
			Name:  cmdDoctor,
			Desc:  "Check the typst compiler and fonts",
			Flags: extractFlagsFromFlagSet(newDoctorFlagSet(&jsonOutput, io.Discard)),
		},
		{
			Name: cmdVersion,
			Desc: "Show version information",
		},
		{
			Name: cmdHelp,
			Desc: "Show help for a command",
			Args: []string{cmdConvert, cmdFonts, cmdDoctor, cmdVersion, cmdCompletion},
		},
		{
			Name: cmdCompletion,
			Desc: "Generate shell completion script",
			Args: shellNames(),
		},
	}
}

func commandNames(cmds []commandDef) string {
	names := make([]string, len(cmds))
	for i, c := range cmds {
		names[i] = c.Name
	}
	return strings.Join(names, " ")
}

// GenerateCompletion writes the completion script for shell to w.
func GenerateCompletion(w io.Writer, shell Shell) error {
	var script string
	switch shell {
	case ShellBash:
		script = generateBash(getCommands())
	case ShellZsh:
		script = generateZsh(getCommands())
	case ShellFish:
		script = generateFish(getCommands())
	case ShellPowerShell:
		script = generatePowerShell(getCommands())
	default:
		return fmt.Errorf("%w: %q (supported: %s)", ErrUnsupportedShell, shell, strings.Join(shellNames(), ", "))
	}
	_, err := io.WriteString(w, script)
	return err
}

// runCompletionCmd handles the completion command.
func runCompletionCmd(args []string, env *Environment) int {
	if len(args) == 0 {
		printCompletionUsage(env.Stdout)
		return ExitSuccess
	}
	if len(args) > 1 {
		printCompletionUsage(env.Stderr)
		return ExitUsage
	}

	if err := GenerateCompletion(env.Stdout, Shell(args[0])); err != nil {
		fmt.Fprintf(env.Stderr, "error: %v\n", err)
		return ExitUsage
	}
	return ExitSuccess
}

// printCompletionUsage prints help for the completion command.
func printCompletionUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2typst completion <shell>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Generate shell completion script for the specified shell.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Supported shells:")
	fmt.Fprintln(w, "  bash        Bash completion script")
	fmt.Fprintln(w, "  zsh         Zsh completion script")
	fmt.Fprintln(w, "  fish        Fish completion script")
	fmt.Fprintln(w, "  powershell  PowerShell completion script")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Installation:")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Bash:")
	fmt.Fprintln(w, "    # Add to ~/.bashrc:")
	fmt.Fprintln(w, "    eval \"$(md2typst completion bash)\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Zsh:")
	fmt.Fprintln(w, "    # Add to ~/.zshrc (after compinit):")
	fmt.Fprintln(w, "    eval \"$(md2typst completion zsh)\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Fish:")
	fmt.Fprintln(w, "    md2typst completion fish > ~/.config/fish/completions/md2typst.fish")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  PowerShell:")
	fmt.Fprintln(w, "    # Add to $PROFILE:")
	fmt.Fprintln(w, "    md2typst completion powershell | Out-String | Invoke-Expression")
}

// globs splits a comma separated glob list.
func globs(pattern string) []string {
	if pattern == "" {
		return nil
	}
	return strings.Split(pattern, ",")
}

// flagWords returns every spelling of the given flags ("--output", "-o").
func flagWords(flags []flagDef) []string {
	var words []string
	for _, f := range flags {
		words = append(words, "--"+f.Long)
		if f.Short != "" {
			words = append(words, "-"+f.Short)
		}
	}
	return words
}

func bashFileCompletion(pattern string) string {
	var parts []string
	for _, g := range globs(pattern) {
		parts = append(parts, fmt.Sprintf("$(compgen -f -X '!%s' -- \"$cur\")", g))
	}
	parts = append(parts, `$(compgen -d -- "$cur")`)
	return "COMPREPLY=(" + strings.Join(parts, " ") + ")"
}

func generateBash(cmds []commandDef) string {
	var b strings.Builder
	fn := "_" + programName + "_completions"

	fmt.Fprintf(&b, "# bash completion for %s\n\n", programName)
	fmt.Fprintf(&b, "%s() {\n", fn)
	b.WriteString("    local cur prev cmd i\n")
	b.WriteString("    cur=\"${COMP_WORDS[COMP_CWORD]}\"\n")
	b.WriteString("    prev=\"${COMP_WORDS[COMP_CWORD-1]}\"\n")
	b.WriteString("    cmd=\"\"\n")
	b.WriteString("    for ((i=1; i<COMP_CWORD; i++)); do\n")
	b.WriteString("        case \"${COMP_WORDS[i]}\" in\n")
	fmt.Fprintf(&b, "            %s)\n", strings.ReplaceAll(commandNames(cmds), " ", "|"))
	b.WriteString("                cmd=\"${COMP_WORDS[i]}\"\n")
	b.WriteString("                break\n")
	b.WriteString("                ;;\n")
	b.WriteString("        esac\n")
	b.WriteString("    done\n\n")

	b.WriteString("    if [[ -z \"$cmd\" && $COMP_CWORD -eq 1 && \"$cur\" != -* ]]; then\n")
	fmt.Fprintf(&b, "        COMPREPLY=($(compgen -W \"%s\" -- \"$cur\") %s)\n",
		commandNames(cmds), strings.TrimSuffix(strings.TrimPrefix(bashFileCompletion("*.md,*.markdown"), "COMPREPLY=("), ")"))
	b.WriteString("        return\n")
	b.WriteString("    fi\n")
	fmt.Fprintf(&b, "    [[ -z \"$cmd\" ]] && cmd=%s\n\n", cmdConvert)

	b.WriteString("    case \"$cmd\" in\n")
	for _, c := range cmds {
		fmt.Fprintf(&b, "        %s)\n", c.Name)

		var valueCases []string
		for _, f := range c.Flags {
			if !f.takesValue() {
				continue
			}
			names := "--" + f.Long
			if f.Short != "" {
				names += "|-" + f.Short
			}
			var action string
			switch f.Type {
			case flagEnum:
				action = fmt.Sprintf("COMPREPLY=($(compgen -W \"%s\" -- \"$cur\"))", strings.Join(f.Values, " "))
			case flagFile:
				action = bashFileCompletion(f.FileGlob)
			case flagDir:
				action = `COMPREPLY=($(compgen -d -- "$cur"))`
			default:
				action = "COMPREPLY=()"
			}
			valueCases = append(valueCases, fmt.Sprintf("                %s)\n                    %s\n                    return\n                    ;;\n", names, action))
		}
		if len(valueCases) > 0 {
			b.WriteString("            case \"$prev\" in\n")
			for _, vc := range valueCases {
				b.WriteString(vc)
			}
			b.WriteString("            esac\n")
		}

		if len(c.Flags) > 0 {
			b.WriteString("            if [[ \"$cur\" == -* ]]; then\n")
			fmt.Fprintf(&b, "                COMPREPLY=($(compgen -W \"%s\" -- \"$cur\"))\n", strings.Join(flagWords(c.Flags), " "))
			b.WriteString("                return\n")
			b.WriteString("            fi\n")
		}

		switch {
		case len(c.Args) > 0:
			fmt.Fprintf(&b, "            COMPREPLY=($(compgen -W \"%s\" -- \"$cur\"))\n", strings.Join(c.Args, " "))
		case c.FilePattern != "":
			fmt.Fprintf(&b, "            %s\n", bashFileCompletion(c.FilePattern))
		}
		b.WriteString("            ;;\n")
	}
	b.WriteString("    esac\n")
	b.WriteString("}\n\n")
	fmt.Fprintf(&b, "complete -F %s %s\n", fn, programName)
	return b.String()
}

// zshEscape escapes s for use inside a single quoted _arguments spec.
func zshEscape(s string) string {
	r := strings.NewReplacer(`'`, `'\''`, `[`, `\[`, `]`, `\]`, `:`, `\:`)
	return r.Replace(s)
}

func zshAction(f flagDef) string {
	switch f.Type {
	case flagEnum:
		return ":" + f.Long + ":(" + strings.Join(f.Values, " ") + ")"
	case flagFile:
		return ":" + f.Long + ":_files -g \"" + strings.ReplaceAll(f.FileGlob, ",", " ") + "\""
	case flagDir:
		return ":" + f.Long + ":_files -/"
	case flagBool:
		return ""
	default:
		return ":" + f.Long + ": "
	}
}

func zshFlagSpecs(f flagDef) []string {
	desc := "[" + zshEscape(f.Desc) + "]"
	action := zshAction(f)
	long, short := "--"+f.Long, "-"+f.Short
	if f.takesValue() {
		long += "="
		short += "+"
	}
	specs := []string{"'" + long + desc + action + "'"}
	if f.Short != "" {
		specs = append(specs, "'"+short+desc+action+"'")
	}
	return specs
}

func generateZsh(cmds []commandDef) string {
	var b strings.Builder
	fn := "_" + programName

	fmt.Fprintf(&b, "#compdef %s\n\n", programName)
	fmt.Fprintf(&b, "%s() {\n", fn)
	b.WriteString("    local -a commands\n")
	b.WriteString("    commands=(\n")
	for _, c := range cmds {
		fmt.Fprintf(&b, "        '%s:%s'\n", c.Name, zshEscape(c.Desc))
	}
	b.WriteString("    )\n\n")

	b.WriteString("    if (( CURRENT == 2 )) && [[ $words[2] != -* ]]; then\n")
	b.WriteString("        _describe -t commands 'md2typst command' commands\n")
	b.WriteString("        _files -g \"*.md *.markdown\"\n")
	b.WriteString("        return\n")
	b.WriteString("    fi\n\n")

	fmt.Fprintf(&b, "    local cmd=%s\n", cmdConvert)
	b.WriteString("    case $words[2] in\n")
	fmt.Fprintf(&b, "        %s)\n", strings.ReplaceAll(commandNames(cmds), " ", "|"))
	b.WriteString("            cmd=$words[2]\n")
	b.WriteString("            shift words\n")
	b.WriteString("            (( CURRENT-- ))\n")
	b.WriteString("            ;;\n")
	b.WriteString("    esac\n\n")

	b.WriteString("    case $cmd in\n")
	for _, c := range cmds {
		fmt.Fprintf(&b, "        %s)\n", c.Name)
		if len(c.Flags) == 0 && len(c.Args) == 0 && c.FilePattern == "" {
			b.WriteString("            _message 'no arguments'\n            ;;\n")
			continue
		}
		b.WriteString("            _arguments -s")
		for _, f := range c.Flags {
			for _, spec := range zshFlagSpecs(f) {
				b.WriteString(" \\\n                " + spec)
			}
		}
		switch {
		case len(c.Args) > 0:
			fmt.Fprintf(&b, " \\\n                '1:argument:(%s)'", strings.Join(c.Args, " "))
		case c.FilePattern != "":
			fmt.Fprintf(&b, " \\\n                '*:file:_files -g \"%s\"'", strings.ReplaceAll(c.FilePattern, ",", " "))
		}
		b.WriteString("\n            ;;\n")
	}
	b.WriteString("    esac\n")
	b.WriteString("}\n\n")
	fmt.Fprintf(&b, "compdef %s %s\n", fn, programName)
	return b.String()
}

// fishQuote single quotes s for fish.
func fishQuote(s string) string {
	return "'" + strings.NewReplacer(`\`, `\\`, `'`, `\'`).Replace(s) + "'"
}

func generateFish(cmds []commandDef) string {
	var b strings.Builder
	needs := "__fish_" + programName + "_needs_command"
	using := "__fish_" + programName + "_using_command"
	names := commandNames(cmds)

	fmt.Fprintf(&b, "# fish completion for %s\n\n", programName)
	fmt.Fprintf(&b, "function %s\n", needs)
	b.WriteString("    set -l cmd (commandline -opc)\n")
	b.WriteString("    test (count $cmd) -eq 1\n")
	b.WriteString("end\n\n")

	fmt.Fprintf(&b, "function %s\n", using)
	b.WriteString("    set -l cmd (commandline -opc)\n")
	fmt.Fprintf(&b, "    set -l current %s\n", cmdConvert)
	fmt.Fprintf(&b, "    if test (count $cmd) -gt 1; and contains -- $cmd[2] %s\n", names)
	b.WriteString("        set current $cmd[2]\n")
	b.WriteString("    end\n")
	b.WriteString("    test \"$current\" = $argv[1]\n")
	b.WriteString("end\n\n")

	for _, c := range cmds {
		fmt.Fprintf(&b, "complete -c %s -n %s -f -a %s -d %s\n", programName, needs, c.Name, fishQuote(c.Desc))
	}
	b.WriteString("\n")

	for _, c := range cmds {
		cond := fishQuote(using + " " + c.Name)
		for _, f := range c.Flags {
			fmt.Fprintf(&b, "complete -c %s -n %s -l %s", programName, cond, f.Long)
			if f.Short != "" {
				fmt.Fprintf(&b, " -s %s", f.Short)
			}
			switch f.Type {
			case flagBool:
			case flagEnum:
				fmt.Fprintf(&b, " -x -a %s", fishQuote(strings.Join(f.Values, " ")))
			case flagFile:
				b.WriteString(" -r -F")
			case flagDir:
				b.WriteString(" -x -a '(__fish_complete_directories)'")
			default:
				b.WriteString(" -x")
			}
			fmt.Fprintf(&b, " -d %s\n", fishQuote(f.Desc))
		}
		switch {
		case len(c.Args) > 0:
			fmt.Fprintf(&b, "complete -c %s -n %s -f -a %s\n", programName, cond, fishQuote(strings.Join(c.Args, " ")))
		case c.FilePattern != "":
			for _, g := range globs(c.FilePattern) {
				fmt.Fprintf(&b, "complete -c %s -n %s -k -a %s\n", programName, cond,
					fishQuote("(__fish_complete_suffix "+strings.TrimPrefix(g, "*")+")"))
			}
		}
	}
	return b.String()
}

// psQuote single quotes s for PowerShell.
func psQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

func psArray(words []string) string {
	quoted := make([]string, len(words))
	for i, w := range words {
		quoted[i] = psQuote(w)
	}
	return "@(" + strings.Join(quoted, ", ") + ")"
}

func generatePowerShell(cmds []commandDef) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# powershell completion for %s\n\n", programName)
	fmt.Fprintf(&b, "Register-ArgumentCompleter -Native -CommandName %s -ScriptBlock {\n", programName)
	b.WriteString("    param($wordToComplete, $commandAst, $cursorPosition)\n\n")

	b.WriteString("    $commands = [ordered]@{\n")
	for _, c := range cmds {
		fmt.Fprintf(&b, "        %s = %s\n", psQuote(c.Name), psQuote(c.Desc))
	}
	b.WriteString("    }\n")

	b.WriteString("    $flags = @{\n")
	for _, c := range cmds {
		fmt.Fprintf(&b, "        %s = %s\n", psQuote(c.Name), psArray(flagWords(c.Flags)))
	}
	b.WriteString("    }\n")

	b.WriteString("    $words = @{\n")
	for _, c := range cmds {
		if len(c.Args) > 0 {
			fmt.Fprintf(&b, "        %s = %s\n", psQuote(c.Name), psArray(c.Args))
		}
	}
	b.WriteString("    }\n\n")

	b.WriteString("    $elements = @($commandAst.CommandElements | Select-Object -Skip 1 | ForEach-Object { $_.ToString() })\n")
	b.WriteString("    if ($wordToComplete -ne '' -and $elements.Count -gt 0) {\n")
	b.WriteString("        $elements = @($elements | Select-Object -SkipLast 1)\n")
	b.WriteString("    }\n")
	fmt.Fprintf(&b, "    $cmd = %s\n", psQuote(cmdConvert))
	b.WriteString("    if ($elements.Count -gt 0 -and $commands.Contains($elements[0])) {\n")
	b.WriteString("        $cmd = $elements[0]\n")
	b.WriteString("    }\n\n")

	b.WriteString("    $candidates = @()\n")
	b.WriteString("    if ($wordToComplete -like '-*') {\n")
	b.WriteString("        $candidates = $flags[$cmd]\n")
	b.WriteString("    } elseif ($elements.Count -eq 0) {\n")
	b.WriteString("        $candidates = @($commands.Keys)\n")
	b.WriteString("    } elseif ($words.ContainsKey($cmd)) {\n")
	b.WriteString("        $candidates = $words[$cmd]\n")
	b.WriteString("    }\n\n")

	b.WriteString("    $candidates | Where-Object { $_ -like \"$wordToComplete*\" } | ForEach-Object {\n")
	b.WriteString("        $tip = $_\n")
	b.WriteString("        if ($commands.Contains($_)) { $tip = $commands[$_] }\n")
	b.WriteString("        [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $tip)\n")
	b.WriteString("    }\n")
	b.WriteString("}\n")
	return b.String()
}
