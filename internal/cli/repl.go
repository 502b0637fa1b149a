package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/agbru/limbcalc/internal/config"
	"github.com/agbru/limbcalc/internal/evaluator"
	"github.com/agbru/limbcalc/internal/format"
	"github.com/agbru/limbcalc/internal/orchestration"
	"github.com/agbru/limbcalc/internal/ui"
)

// REPLConfig holds configuration for the interactive session.
type REPLConfig struct {
	// DefaultEngine is the engine used until "engine" changes it.
	DefaultEngine string
	// Timeout bounds each evaluation.
	Timeout time.Duration
	// HexOutput displays results in hexadecimal.
	HexOutput bool
}

// REPL is an interactive session that evaluates one request per line.
type REPL struct {
	config        REPLConfig
	factory       evaluator.Factory
	currentEngine string
	in            io.Reader
	out           io.Writer
}

// NewREPL creates a session over the engines of factory. An empty or "all"
// default engine selects the first registered name.
func NewREPL(factory evaluator.Factory, config REPLConfig) *REPL {
	current := config.DefaultEngine
	if current == "" || current == orchestration.EngineAll {
		if names := factory.List(); len(names) > 0 {
			current = names[0]
		}
	}
	return &REPL{
		config:        config,
		factory:       factory,
		currentEngine: current,
		in:            os.Stdin,
		out:           os.Stdout,
	}
}

// SetInput sets a custom input reader.
func (r *REPL) SetInput(in io.Reader) {
	r.in = in
}

// SetOutput sets a custom output writer.
func (r *REPL) SetOutput(out io.Writer) {
	r.out = out
}

// Start reads and runs commands until "exit", end of input, or ctx is
// canceled.
func (r *REPL) Start(ctx context.Context) {
	r.printBanner()
	r.printHelp()
	fmt.Fprintln(r.out)

	reader := bufio.NewReader(r.in)
	for ctx.Err() == nil {
		fmt.Fprint(r.out, ui.ColorGreen()+"limb> "+ui.ColorReset())

		input, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			fmt.Fprintf(r.out, "%sRead error: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
			return
		}
		if line := strings.TrimSpace(input); line != "" {
			if !r.processCommand(ctx, line) {
				return
			}
		}
		if err != nil {
			fmt.Fprintln(r.out, "\nGoodbye!")
			return
		}
	}
}

func (r *REPL) printBanner() {
	fmt.Fprintf(r.out, "\n%s╔══════════════════════════════════════════════════════════╗%s\n", ui.ColorCyan(), ui.ColorReset())
	fmt.Fprintf(r.out, "%s║%s     %s🔢 limbcalc - Interactive Mode%s                       %s║%s\n",
		ui.ColorCyan(), ui.ColorReset(), ui.ColorBold(), ui.ColorReset(), ui.ColorCyan(), ui.ColorReset())
	fmt.Fprintf(r.out, "%s╚══════════════════════════════════════════════════════════╝%s\n\n", ui.ColorCyan(), ui.ColorReset())
}

func (r *REPL) printHelp() {
	fmt.Fprintf(r.out, "%sAvailable commands:%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %s<op> <a> [b|k]%s      - Evaluate with the current engine (ops: %s)\n", ui.ColorYellow(), ui.ColorReset(), operationList())
	fmt.Fprintf(r.out, "  %scompare <op> ...%s    - Evaluate with every engine and check agreement\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sengine <name>%s       - Change engine (%s)\n", ui.ColorYellow(), ui.ColorReset(), strings.Join(r.factory.List(), ", "))
	fmt.Fprintf(r.out, "  %slist%s                - List available engines\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %shex%s                 - Toggle hexadecimal display\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sstatus%s              - Display current configuration\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %shelp%s                - Display this help\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sexit%s / %squit%s         - Exit interactive mode\n", ui.ColorYellow(), ui.ColorReset(), ui.ColorYellow(), ui.ColorReset())
}

func operationList() string {
	ops := evaluator.Operations()
	names := make([]string, len(ops))
	for i, op := range ops {
		names[i] = string(op)
	}
	return strings.Join(names, ", ")
}

// processCommand runs one line. It returns false when the session should
// end.
func (r *REPL) processCommand(ctx context.Context, input string) bool {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return true
	}
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "eval", "e":
		r.cmdEval(ctx, args)
	case "engine", "en":
		r.cmdEngine(args)
	case "compare", "cmp":
		r.cmdCompare(ctx, args)
	case "list", "ls":
		r.cmdList()
	case "hex":
		r.cmdHex()
	case "status", "st":
		r.cmdStatus()
	case "help", "h", "?":
		r.printHelp()
	case "exit", "quit", "q":
		fmt.Fprintf(r.out, "%sGoodbye!%s\n", ui.ColorGreen(), ui.ColorReset())
		return false
	default:
		if _, err := evaluator.ParseOperation(cmd); err == nil {
			r.cmdEval(ctx, parts)
			return true
		}
		fmt.Fprintf(r.out, "%sUnknown command: %s%s\n", ui.ColorRed(), cmd, ui.ColorReset())
		fmt.Fprintf(r.out, "Type %shelp%s to see available commands.\n", ui.ColorYellow(), ui.ColorReset())
	}
	return true
}

// ParseRequestArgs builds a request from "<op> <a> [b|k]". Binary operations
// take a second operand, bitlen takes none, the others take k.
func ParseRequestArgs(args []string) (evaluator.Request, error) {
	if len(args) == 0 {
		return evaluator.Request{}, errors.New("missing operation")
	}
	op, err := evaluator.ParseOperation(args[0])
	if err != nil {
		return evaluator.Request{}, err
	}
	want := 3
	if op == evaluator.OpBitLen {
		want = 2
	}
	if len(args) != want {
		return evaluator.Request{}, fmt.Errorf("%s takes %d argument(s), got %d", op, want-1, len(args)-1)
	}

	req := evaluator.Request{Op: op}
	if req.A, err = config.ParseOperand("a", args[1]); err != nil {
		return evaluator.Request{}, err
	}
	switch {
	case op.Binary():
		if req.B, err = config.ParseOperand("b", args[2]); err != nil {
			return evaluator.Request{}, err
		}
	case want == 3:
		k, err := strconv.ParseUint(args[2], 0, strconv.IntSize)
		if err != nil {
			return evaluator.Request{}, fmt.Errorf("invalid k %q", args[2])
		}
		req.K = uint(k)
	}
	return req, req.Validate()
}

func (r *REPL) cmdEval(ctx context.Context, args []string) {
	req, err := ParseRequestArgs(args)
	if err != nil {
		fmt.Fprintf(r.out, "%sError: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
		fmt.Fprintf(r.out, "%sUsage: <op> <a> [b|k]%s\n", ui.ColorYellow(), ui.ColorReset())
		return
	}
	ev, err := r.factory.Get(r.currentEngine)
	if err != nil {
		fmt.Fprintf(r.out, "%sEngine not available: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
		return
	}

	ctx, cancel := context.WithTimeout(ctx, r.config.Timeout)
	defer cancel()

	fmt.Fprintf(r.out, "Evaluating %s%s%s with %s%s%s...\n",
		ui.ColorMagenta(), req.String(), ui.ColorReset(), ui.ColorCyan(), ev.Name(), ui.ColorReset())

	progressChan := make(chan evaluator.ProgressUpdate, orchestration.ProgressBufferMultiplier)
	var wg sync.WaitGroup
	wg.Add(1)
	go DisplayProgress(&wg, progressChan, 1, r.out)

	start := time.Now()
	result, err := ev.Evaluate(ctx, progressChan, 0, req)
	duration := time.Since(start)
	close(progressChan)
	wg.Wait()

	if err != nil {
		fmt.Fprintf(r.out, "%sError: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
		return
	}

	fmt.Fprintf(r.out, "\n%sResult:%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(r.out, "  Time:   %s%s%s\n", ui.ColorGreen(), FormatDuration(duration), ui.ColorReset())
	fmt.Fprintf(r.out, "  Bits:   %s%d%s\n", ui.ColorCyan(), result.BitLen(), ui.ColorReset())
	fmt.Fprintf(r.out, "  Set:    %s%d%s\n", ui.ColorCyan(), PopCount(result), ui.ColorReset())
	if r.config.HexOutput {
		fmt.Fprintf(r.out, "  %s = %s0x%s%s\n", req.String(), ui.ColorGreen(), result.Text(16), ui.ColorReset())
	} else {
		digits := format.TruncateMiddle(result.String(), TruncationLimit, DisplayEdges)
		fmt.Fprintf(r.out, "  %s = %s%s%s\n", req.String(), ui.ColorGreen(), digits, ui.ColorReset())
	}
	fmt.Fprintln(r.out)
}

func (r *REPL) cmdEngine(args []string) {
	if len(args) == 0 {
		fmt.Fprintf(r.out, "%sUsage: engine <name>%s\n", ui.ColorRed(), ui.ColorReset())
		fmt.Fprintf(r.out, "Available engines: %s\n", strings.Join(r.factory.List(), ", "))
		return
	}
	name := strings.ToLower(args[0])
	if !r.factory.Has(name) {
		fmt.Fprintf(r.out, "%sUnknown engine: %s%s\n", ui.ColorRed(), name, ui.ColorReset())
		fmt.Fprintf(r.out, "Available engines: %s\n", strings.Join(r.factory.List(), ", "))
		return
	}
	ev, err := r.factory.Get(name)
	if err != nil {
		fmt.Fprintf(r.out, "%sError: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
		return
	}
	r.currentEngine = name
	fmt.Fprintf(r.out, "Engine changed to: %s%s%s\n", ui.ColorGreen(), ev.Name(), ui.ColorReset())
}

func (r *REPL) cmdCompare(ctx context.Context, args []string) {
	req, err := ParseRequestArgs(args)
	if err != nil {
		fmt.Fprintf(r.out, "%sError: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
		fmt.Fprintf(r.out, "%sUsage: compare <op> <a> [b|k]%s\n", ui.ColorYellow(), ui.ColorReset())
		return
	}
	evaluators := orchestration.GetEvaluatorsToRun(orchestration.EngineAll, r.factory)

	ctx, cancel := context.WithTimeout(ctx, r.config.Timeout)
	defer cancel()
	results := orchestration.ExecuteEvaluations(ctx, evaluators, req, orchestration.NullProgressReporter{}, r.out)

	fmt.Fprintf(r.out, "\n%sComparison for %s:%s\n", ui.ColorBold(), req.String(), ui.ColorReset())
	fmt.Fprintf(r.out, "%s─────────────────────────────────────────────%s\n", ui.ColorCyan(), ui.ColorReset())
	var first *orchestration.EvaluationResult
	for i, res := range results {
		if res.Err != nil {
			fmt.Fprintf(r.out, "  %s%-28s%s: %sError - %v%s\n",
				ui.ColorYellow(), res.Name, ui.ColorReset(), ui.ColorRed(), res.Err, ui.ColorReset())
			continue
		}
		if first == nil {
			first = &results[i]
		}
		status := ui.ColorGreen() + "✓" + ui.ColorReset()
		if res.Result.Cmp(first.Result) != 0 {
			status = ui.ColorRed() + "✗ INCONSISTENT" + ui.ColorReset()
		}
		fmt.Fprintf(r.out, "  %s%-28s%s: %s%12s%s %s\n",
			ui.ColorYellow(), res.Name, ui.ColorReset(),
			ui.ColorCyan(), FormatDuration(res.Duration), ui.ColorReset(), status)
	}
	fmt.Fprintf(r.out, "%s─────────────────────────────────────────────%s\n\n", ui.ColorCyan(), ui.ColorReset())
}

func (r *REPL) cmdList() {
	fmt.Fprintf(r.out, "\n%sAvailable engines:%s\n", ui.ColorBold(), ui.ColorReset())
	for _, name := range r.factory.List() {
		marker := "  "
		if name == r.currentEngine {
			marker = ui.ColorGreen() + "► " + ui.ColorReset()
		}
		display := "unavailable"
		if ev, err := r.factory.Get(name); err == nil {
			display = ev.Name()
		}
		fmt.Fprintf(r.out, "%s%s%-12s%s - %s\n", marker, ui.ColorYellow(), name, ui.ColorReset(), display)
	}
	fmt.Fprintln(r.out)
}

func (r *REPL) cmdHex() {
	r.config.HexOutput = !r.config.HexOutput
	status := "disabled"
	if r.config.HexOutput {
		status = "enabled"
	}
	fmt.Fprintf(r.out, "Hexadecimal display: %s%s%s\n", ui.ColorGreen(), status, ui.ColorReset())
}

func (r *REPL) cmdStatus() {
	fmt.Fprintf(r.out, "\n%sCurrent configuration:%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(r.out, "  Engine:       %s%s%s\n", ui.ColorCyan(), r.currentEngine, ui.ColorReset())
	fmt.Fprintf(r.out, "  Timeout:      %s%s%s\n", ui.ColorCyan(), r.config.Timeout, ui.ColorReset())
	hexStatus := "no"
	if r.config.HexOutput {
		hexStatus = "yes"
	}
	fmt.Fprintf(r.out, "  Hexadecimal:  %s%s%s\n", ui.ColorCyan(), hexStatus, ui.ColorReset())
	fmt.Fprintln(r.out)
}
