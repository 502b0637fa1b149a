package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/agbru/limbcalc/internal/evaluator"
)

// FlagCompletion describes a flag for shell completion generation. Every
// generator reads flagRegistry, so a new flag only needs one entry there.
type FlagCompletion struct {
	Long      string   // long flag name without dashes (e.g. "engine")
	Short     string   // short flag without the dash (e.g. "q")
	Help      string   // description text
	Values    []string // suggested values (nil = boolean or free-form)
	ValueName string   // label for the value in zsh (e.g. "bits")
	IsFile    bool     // the flag takes a file path
	IsEngine  bool     // values come from the engine list
}

// flagRegistry lists every flag in the order the scripts present them.
var flagRegistry = []FlagCompletion{
	{Long: "help", Short: "h", Help: "Show help message"},
	{Long: "version", Short: "V", Help: "Show version information"},
	{Long: "op", Help: "Operation to evaluate", Values: operationNames(), ValueName: "operation"},
	{Short: "a", Help: "First operand", ValueName: "integer"},
	{Short: "b", Help: "Second operand of add and mul", ValueName: "integer"},
	{Short: "k", Help: "Shift amount or bit index", ValueName: "number"},
	{Long: "engine", Help: "Engine to use", IsEngine: true, ValueName: "engine"},
	{Long: "width", Help: "Limb width in bits", Values: []string{"1", "4", "8", "16", "32", "64"}, ValueName: "bits"},
	{Long: "capacity", Help: "Fixed-capacity engine size in bits", Values: []string{"64", "256", "1024", "4096"}, ValueName: "bits"},
	{Long: "max-limbs", Help: "Limb limit of growing engines", ValueName: "limbs"},
	{Long: "timeout", Help: "Maximum execution time", Values: []string{"10s", "1m", "5m", "10m"}, ValueName: "duration"},
	{Short: "v", Help: "Display the full result value"},
	{Long: "details", Short: "d", Help: "Show the limb map and resource usage"},
	{Long: "quiet", Short: "q", Help: "Quiet mode for scripts"},
	{Long: "output", Short: "o", Help: "Output file path", IsFile: true, ValueName: "file"},
	{Long: "interactive", Short: "i", Help: "Start an interactive session"},
	{Long: "no-color", Help: "Disable colored output"},
	{Long: "theme", Help: "Color theme", Values: []string{"dark", "light", "none"}, ValueName: "theme"},
	{Long: "metrics", Help: "Print Prometheus metrics after the run"},
	{Long: "log-level", Help: "Log level", Values: []string{"debug", "info", "warn", "error", "disabled"}, ValueName: "level"},
	{Long: "completion", Help: "Generate completion script", Values: []string{"bash", "zsh", "fish"}, ValueName: "shell"},
}

func operationNames() []string {
	ops := evaluator.Operations()
	names := make([]string, len(ops))
	for i, op := range ops {
		names[i] = string(op)
	}
	return names
}

// GenerateCompletion writes a completion script for shell. engines lists
// the names accepted by -engine besides "all".
//
// Parameters:
//   - out: The writer receiving the script.
//   - shell: One of "bash", "zsh" or "fish".
//   - engines: The registered engine names.
//
// Returns:
//   - error: An error for an unsupported shell or a failed write.
func GenerateCompletion(out io.Writer, shell string, engines []string) error {
	switch shell {
	case "bash":
		return generateBashCompletion(out, engines)
	case "zsh":
		return generateZshCompletion(out, engines)
	case "fish":
		return generateFishCompletion(out, engines)
	default:
		return fmt.Errorf("unsupported shell: %s (accepted values: bash, zsh, fish)", shell)
	}
}

// flagPatterns returns the spellings the Go flag package accepts for f.
func flagPatterns(f FlagCompletion) []string {
	var p []string
	for _, name := range []string{f.Long, f.Short} {
		if name != "" {
			p = append(p, "-"+name, "--"+name)
		}
	}
	return p
}

func generateBashCompletion(out io.Writer, engines []string) error {
	var opts []string
	for _, f := range flagRegistry {
		opts = append(opts, flagPatterns(f)...)
	}

	var cases strings.Builder
	writeCase := func(patterns []string, body string) {
		fmt.Fprintf(&cases, "        %s)\n            %s\n            return 0\n            ;;\n", strings.Join(patterns, "|"), body)
	}
	var filePatterns []string
	for _, f := range flagRegistry {
		switch {
		case f.IsEngine:
			writeCase(flagPatterns(f), `COMPREPLY=( $(compgen -W "${engines}" -- "${cur}") )`)
		case f.IsFile:
			filePatterns = append(filePatterns, flagPatterns(f)...)
		case len(f.Values) > 0:
			writeCase(flagPatterns(f), fmt.Sprintf(`COMPREPLY=( $(compgen -W "%s" -- "${cur}") )`, strings.Join(f.Values, " ")))
		}
	}
	if len(filePatterns) > 0 {
		writeCase(filePatterns, `COMPREPLY=( $(compgen -f -- "${cur}") )`)
	}

	script := fmt.Sprintf(`# Bash completion script for limbcalc
# Add this to your ~/.bashrc or ~/.bash_completion

_limbcalc_completions() {
    local cur prev opts engines
    COMPREPLY=()
    cur="${COMP_WORDS[COMP_CWORD]}"
    prev="${COMP_WORDS[COMP_CWORD-1]}"

    opts="%s"
    engines="%s all"

    case "${prev}" in
%s    esac

    if [[ "${cur}" == -* ]]; then
        COMPREPLY=( $(compgen -W "${opts}" -- "${cur}") )
        return 0
    fi
}

complete -F _limbcalc_completions limbcalc
`, strings.Join(opts, " "), strings.Join(engines, " "), cases.String())

	if _, err := fmt.Fprint(out, script); err != nil {
		return fmt.Errorf("completion bash generation failed: %w", err)
	}
	return nil
}

func generateZshCompletion(out io.Writer, engines []string) error {
	args := make([]string, 0, len(flagRegistry))
	for _, f := range flagRegistry {
		args = append(args, zshArgEntry(f))
	}

	script := fmt.Sprintf(`#compdef limbcalc

# Zsh completion script for limbcalc
# Add this to your ~/.zshrc or place in $fpath

_limbcalc() {
    local -a engines
    engines=(%s all)

    _arguments -s \
%s
}

_limbcalc "$@"
`, strings.Join(engines, " "), strings.Join(args, " \\\n"))

	if _, err := fmt.Fprint(out, script); err != nil {
		return fmt.Errorf("completion zsh generation failed: %w", err)
	}
	return nil
}

// zshArgEntry formats f as one _arguments spec.
func zshArgEntry(f FlagCompletion) string {
	valueSuffix := ""
	switch {
	case f.IsFile:
		valueSuffix = fmt.Sprintf(":%s:_files", f.ValueName)
	case f.IsEngine:
		valueSuffix = fmt.Sprintf(":%s:($engines)", f.ValueName)
	case len(f.Values) > 0:
		valueSuffix = fmt.Sprintf(":%s:(%s)", f.ValueName, strings.Join(f.Values, " "))
	case f.ValueName != "":
		valueSuffix = fmt.Sprintf(":%s:", f.ValueName)
	}

	if f.Long != "" && f.Short != "" {
		return fmt.Sprintf("        '(-%s --%s)'{-%s,--%s}'[%s]%s'",
			f.Short, f.Long, f.Short, f.Long, f.Help, valueSuffix)
	}
	if f.Long != "" {
		return fmt.Sprintf("        '--%s[%s]%s'", f.Long, f.Help, valueSuffix)
	}
	return fmt.Sprintf("        '-%s[%s]%s'", f.Short, f.Help, valueSuffix)
}

func generateFishCompletion(out io.Writer, engines []string) error {
	lines := []string{
		"# Fish completion script for limbcalc",
		"# Add this to ~/.config/fish/completions/limbcalc.fish",
		"",
		"# Disable file completion by default",
		"complete -c limbcalc -f",
		"",
	}
	engineList := strings.Join(engines, " ")
	for _, f := range flagRegistry {
		lines = append(lines, fishCompleteLine(f, engineList))
	}
	lines = append(lines, "")

	if _, err := fmt.Fprint(out, strings.Join(lines, "\n")); err != nil {
		return fmt.Errorf("completion fish generation failed: %w", err)
	}
	return nil
}

// fishCompleteLine formats f as one fish complete command. Fish spells
// single-dash long options with -o.
func fishCompleteLine(f FlagCompletion, engineList string) string {
	parts := []string{"complete -c limbcalc"}
	if f.Short != "" {
		parts = append(parts, "-s "+f.Short)
	}
	if f.Long != "" {
		parts = append(parts, "-o "+f.Long)
	}
	parts = append(parts, fmt.Sprintf("-d '%s'", f.Help))

	switch {
	case f.IsFile:
		parts = append(parts, "-rF")
	case f.IsEngine:
		parts = append(parts, fmt.Sprintf("-xa '%s all'", engineList))
	case len(f.Values) > 0:
		parts = append(parts, fmt.Sprintf("-xa '%s'", strings.Join(f.Values, " ")))
	case f.ValueName != "":
		parts = append(parts, "-x")
	}
	return strings.Join(parts, " ")
}
