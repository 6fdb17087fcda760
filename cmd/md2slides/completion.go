package main

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	flag "github.com/spf13/pflag"
)

// Shell represents a supported shell for completion generation.
type Shell string

// Supported shells for completion.
const (
	ShellBash Shell = "bash"
	ShellZsh  Shell = "zsh"
	ShellFish Shell = "fish"
)

// ErrUnsupportedShell is returned when an unknown shell is requested.
var ErrUnsupportedShell = errors.New("unsupported shell")

// flagDef describes a flag for completion purposes.
type flagDef struct {
	Long     string
	Short    string
	Desc     string
	TakesArg bool
	Values   []string // enum values
	FileGlob string   // e.g. "*.yaml"
	IsDir    bool
}

// commandDef describes a command for completion.
type commandDef struct {
	Name       string
	Desc       string
	Flags      []flagDef
	TakesFiles bool // accepts markdown arguments
}

// completionMeta holds the completion hints pflag cannot express.
type completionMeta struct {
	Values   []string
	FileGlob string
	IsDir    bool
}

// flagCompletionMeta maps flag names to their completion metadata.
// Flag names, types and descriptions come from the FlagSets.
var flagCompletionMeta = map[string]completionMeta{
	"scene":  {Values: []string{"design", "slides"}},
	"theme":  {Values: []string{"clean-white", "corporate-blue", "daker-dark", "daker-light", "minimal"}},
	"config": {FileGlob: "*.yaml"},
	"css":    {FileGlob: "*.css"},
	"output": {IsDir: true},
	"assets": {IsDir: true},
}

// extractFlags reads flag definitions from fs, sorted by name.
func extractFlags(fs *flag.FlagSet) []flagDef {
	var flags []flagDef
	fs.VisitAll(func(f *flag.Flag) {
		fd := flagDef{
			Long:     f.Name,
			Short:    f.Shorthand,
			Desc:     f.Usage,
			TakesArg: f.Value.Type() != "bool",
		}
		if meta, ok := flagCompletionMeta[f.Name]; ok {
			fd.Values = meta.Values
			fd.FileGlob = meta.FileGlob
			fd.IsDir = meta.IsDir
		}
		flags = append(flags, fd)
	})
	sort.Slice(flags, func(i, j int) bool { return flags[i].Long < flags[j].Long })
	return flags
}

// getCommands returns the command registry for completion.
func getCommands() []commandDef {
	return []commandDef{
		{Name: "convert", Desc: "Convert markdown decks to SVG slides", Flags: extractFlags(newConvertFlagSet(&convertFlags{})), TakesFiles: true},
		{Name: "serve", Desc: "Serve a deck to the design plugin", Flags: extractFlags(newServeFlagSet(&serveFlags{})), TakesFiles: true},
		{Name: "themes", Desc: "List available themes", Flags: extractFlags(newThemesFlagSet(&themesFlags{}))},
		{Name: "doctor", Desc: "Check Chrome and environment", Flags: []flagDef{{Long: "json", Desc: "JSON output"}}},
		{Name: "completion", Desc: "Generate shell completion script"},
		{Name: "version", Desc: "Show version information"},
		{Name: "help", Desc: "Show help for a command"},
	}
}

// GenerateCompletion writes shell completion script to w.
func GenerateCompletion(w io.Writer, shell Shell) error {
	var script string
	switch shell {
	case ShellBash:
		script = bashCompletion(getCommands())
	case ShellZsh:
		script = zshCompletion(getCommands())
	case ShellFish:
		script = fishCompletion(getCommands())
	default:
		return fmt.Errorf("%w: %q (supported: bash, zsh, fish)", ErrUnsupportedShell, shell)
	}
	_, err := io.WriteString(w, script)
	return err
}

func bashCompletion(cmds []commandDef) string {
	var b strings.Builder
	names := commandNames(cmds)

	b.WriteString("# bash completion for md2slides\n")
	b.WriteString("_md2slides_completions() {\n")
	b.WriteString("    local cur prev cmd\n")
	b.WriteString("    cur=\"${COMP_WORDS[COMP_CWORD]}\"\n")
	b.WriteString("    prev=\"${COMP_WORDS[COMP_CWORD-1]}\"\n")
	b.WriteString("    cmd=\"${COMP_WORDS[1]}\"\n\n")
	b.WriteString("    if [[ ${COMP_CWORD} -eq 1 ]]; then\n")
	fmt.Fprintf(&b, "        COMPREPLY=($(compgen -W %q -- \"$cur\"))\n", strings.Join(names, " "))
	b.WriteString("        return\n    fi\n\n")
	b.WriteString("    case \"$cmd\" in\n")
	for _, c := range cmds {
		if len(c.Flags) == 0 && !c.TakesFiles {
			continue
		}
		fmt.Fprintf(&b, "    %s)\n", c.Name)
		b.WriteString("        case \"$prev\" in\n")
		for _, f := range c.Flags {
			if !f.TakesArg {
				continue
			}
			fmt.Fprintf(&b, "        %s)\n", flagPattern(f))
			switch {
			case len(f.Values) > 0:
				fmt.Fprintf(&b, "            COMPREPLY=($(compgen -W %q -- \"$cur\"))\n", strings.Join(f.Values, " "))
			case f.IsDir:
				b.WriteString("            COMPREPLY=($(compgen -d -- \"$cur\"))\n")
			default:
				b.WriteString("            COMPREPLY=($(compgen -f -- \"$cur\"))\n")
			}
			b.WriteString("            return;;\n")
		}
		b.WriteString("        esac\n")
		fmt.Fprintf(&b, "        COMPREPLY=($(compgen -W %q -f -- \"$cur\"))\n", strings.Join(flagWords(c.Flags), " "))
		b.WriteString("        ;;\n")
	}
	b.WriteString("    esac\n}\n")
	b.WriteString("complete -F _md2slides_completions md2slides\n")
	return b.String()
}

func zshCompletion(cmds []commandDef) string {
	var b strings.Builder

	b.WriteString("#compdef md2slides\n\n")
	b.WriteString("_md2slides() {\n")
	b.WriteString("    local -a commands\n")
	b.WriteString("    commands=(\n")
	for _, c := range cmds {
		fmt.Fprintf(&b, "        '%s:%s'\n", c.Name, zshEscape(c.Desc))
	}
	b.WriteString("    )\n\n")
	b.WriteString("    if (( CURRENT == 2 )); then\n")
	b.WriteString("        _describe 'command' commands\n")
	b.WriteString("        return\n    fi\n\n")
	b.WriteString("    case \"$words[2]\" in\n")
	for _, c := range cmds {
		if len(c.Flags) == 0 && !c.TakesFiles {
			continue
		}
		fmt.Fprintf(&b, "    %s)\n", c.Name)
		b.WriteString("        _arguments \\\n")
		for _, f := range c.Flags {
			fmt.Fprintf(&b, "            '--%s[%s]%s' \\\n", f.Long, zshEscape(f.Desc), zshAction(f))
		}
		if c.TakesFiles {
			b.WriteString("            '*:markdown:_files -g \"*.md\"'\n")
		} else {
			b.WriteString("            \n")
		}
		b.WriteString("        ;;\n")
	}
	b.WriteString("    esac\n}\n\n")
	b.WriteString("compdef _md2slides md2slides\n")
	return b.String()
}

func fishCompletion(cmds []commandDef) string {
	var b strings.Builder

	b.WriteString("# fish completion for md2slides\n")
	b.WriteString("function __fish_md2slides_needs_command\n")
	b.WriteString("    test (count (commandline -opc)) -eq 1\nend\n\n")
	b.WriteString("function __fish_md2slides_using_command\n")
	b.WriteString("    set -l cmd (commandline -opc)\n")
	b.WriteString("    test (count $cmd) -gt 1; and test $argv[1] = $cmd[2]\nend\n\n")
	b.WriteString("complete -c md2slides -f\n")
	for _, c := range cmds {
		fmt.Fprintf(&b, "complete -c md2slides -n __fish_md2slides_needs_command -a %s -d '%s'\n", c.Name, fishEscape(c.Desc))
	}
	for _, c := range cmds {
		for _, f := range c.Flags {
			fmt.Fprintf(&b, "complete -c md2slides -n '__fish_md2slides_using_command %s' -l %s", c.Name, f.Long)
			if f.Short != "" {
				fmt.Fprintf(&b, " -s %s", f.Short)
			}
			if f.TakesArg {
				b.WriteString(" -r")
			}
			if len(f.Values) > 0 {
				fmt.Fprintf(&b, " -a '%s'", strings.Join(f.Values, " "))
			}
			fmt.Fprintf(&b, " -d '%s'\n", fishEscape(f.Desc))
		}
		if c.TakesFiles {
			fmt.Fprintf(&b, "complete -c md2slides -n '__fish_md2slides_using_command %s' -F\n", c.Name)
		}
	}
	return b.String()
}

func commandNames(cmds []commandDef) []string {
	names := make([]string, len(cmds))
	for i, c := range cmds {
		names[i] = c.Name
	}
	return names
}

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

func flagPattern(f flagDef) string {
	if f.Short != "" {
		return "--" + f.Long + "|-" + f.Short
	}
	return "--" + f.Long
}

func zshAction(f flagDef) string {
	switch {
	case !f.TakesArg:
		return ""
	case len(f.Values) > 0:
		return ":" + f.Long + ":(" + strings.Join(f.Values, " ") + ")"
	case f.IsDir:
		return ":" + f.Long + ":_files -/"
	case f.FileGlob != "":
		return ":" + f.Long + ":_files -g \"" + f.FileGlob + "\""
	default:
		return ":" + f.Long + ":"
	}
}

func zshEscape(s string) string {
	r := strings.NewReplacer("'", "'\\''", "[", "\\[", "]", "\\]", ":", "\\:")
	return r.Replace(s)
}

func fishEscape(s string) string {
	return strings.ReplaceAll(s, "'", "\\'")
}

// runCompletion handles the completion command.
func runCompletion(args []string, env *Environment) error {
	if len(args) == 0 {
		printCompletionUsage(env.Stdout)
		return nil
	}
	return GenerateCompletion(env.Stdout, Shell(args[0]))
}

// printCompletionUsage prints help for the completion command.
func printCompletionUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2slides completion <shell>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Generate shell completion script for bash, zsh or fish.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Bash:  eval \"$(md2slides completion bash)\"")
	fmt.Fprintln(w, "  Zsh:   eval \"$(md2slides completion zsh)\"")
	fmt.Fprintln(w, "  Fish:  md2slides completion fish > ~/.config/fish/completions/md2slides.fish")
}
