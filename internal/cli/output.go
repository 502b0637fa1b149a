// # Naming Conventions
//
// Functions in this package follow consistent naming patterns based on their
// behavior:
//
//   - Display* functions write formatted output to an [io.Writer].
//     Examples: [DisplayResult], [DisplayQuietResult], [DisplayProgress].
//
//   - Format* functions return a formatted string without performing I/O.
//     Examples: [FormatQuietResult], [FormatDuration].
//
//   - Write* functions write data to files on the filesystem.
//     Examples: [WriteResultToFile].

package cli

import (
	"fmt"
	"io"
	"math/big"
	"os"
	"path/filepath"
	"time"

	"github.com/agbru/limbcalc/internal/evaluator"
	"github.com/agbru/limbcalc/internal/orchestration"
	"github.com/agbru/limbcalc/internal/ui"
)

// OutputConfig holds configuration for result output.
type OutputConfig struct {
	// OutputFile is the path to save the result (empty for no file output).
	OutputFile string
	// Quiet prints the bare value only.
	Quiet bool
	// Verbose shows the full value.
	Verbose bool
	// Details adds the hexadecimal form and the limb map.
	Details bool
	// Width is the limb width used for the limb map.
	Width uint
}

// WriteResultToFile writes the result of req to config.OutputFile with a
// commented header. It does nothing when no file is configured.
//
// Parameters:
//   - result: The evaluated value.
//   - req: The request that produced it.
//   - duration: The evaluation duration.
//   - engine: The display name of the engine.
//   - config: Output configuration.
//
// Returns:
//   - error: An error if the file cannot be created or written.
func WriteResultToFile(result *big.Int, req evaluator.Request, duration time.Duration, engine string, config OutputConfig) error {
	if config.OutputFile == "" {
		return nil
	}

	dir := filepath.Dir(config.OutputFile)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	file, err := os.Create(config.OutputFile)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	fmt.Fprintf(file, "# limbcalc result\n")
	fmt.Fprintf(file, "# Generated: %s\n", time.Now().Format(time.RFC3339))
	fmt.Fprintf(file, "# Engine: %s\n", engine)
	fmt.Fprintf(file, "# Duration: %s\n", duration)
	fmt.Fprintf(file, "# Request: %s\n", req.String())
	fmt.Fprintf(file, "# Bits: %d\n", result.BitLen())
	fmt.Fprintf(file, "# Digits: %d\n", len(result.String()))
	fmt.Fprintf(file, "\n")
	fmt.Fprintf(file, "%s =\n%s\n", req.String(), result.String())

	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}

// FormatQuietResult returns the bare decimal value, for scripts.
func FormatQuietResult(result *big.Int) string {
	return result.String()
}

// DisplayQuietResult prints the bare decimal value on one line.
func DisplayQuietResult(out io.Writer, result *big.Int) {
	fmt.Fprintln(out, FormatQuietResult(result))
}

// DisplayResultWithConfig prints a result in quiet or standard form and
// saves it when an output file is configured.
//
// Parameters:
//   - out: The output writer.
//   - result: The evaluated value.
//   - req: The request that produced it.
//   - duration: The evaluation duration.
//   - engine: The display name of the engine.
//   - config: Output configuration.
//
// Returns:
//   - error: An error if the output file cannot be written.
func DisplayResultWithConfig(out io.Writer, result *big.Int, req evaluator.Request, duration time.Duration, engine string, config OutputConfig) error {
	if config.Quiet {
		DisplayQuietResult(out, result)
	} else {
		DisplayResult(result, duration, orchestration.PresentationOptions{
			Request: req,
			Width:   config.Width,
			Verbose: config.Verbose,
			Details: config.Details,
		}, out)
	}

	if config.OutputFile != "" {
		if err := WriteResultToFile(result, req, duration, engine, config); err != nil {
			return err
		}
		if !config.Quiet {
			fmt.Fprintf(out, "\n%s✓ Result saved to: %s%s%s\n",
				ui.ColorGreen(), ui.ColorCyan(), config.OutputFile, ui.ColorReset())
		}
	}
	return nil
}
