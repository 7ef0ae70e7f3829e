package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"gd32test/internal/builder"
	"gd32test/internal/color"
)

const separator = "======================================================================"

// PrintResultLine writes the one-line live status for a finished build.
func PrintResultLine(w io.Writer, r builder.Result) {
	if r.Success {
		fmt.Fprintf(w, "%s %s :: %s (%.1fs)\n",
			color.Pass("✓"), r.Board, r.Testcase, r.Duration.Seconds())
		return
	}
	message := r.Message
	if len(message) > 100 {
		message = message[:100]
	}
	fmt.Fprintf(w, "%s %s :: %s - %s\n",
		color.Fail("✗"), r.Board, r.Testcase, strings.ReplaceAll(message, "\n", " "))
}

// PrintSummary writes the end-of-run console summary, including diagnostics
// for every failed build.
func PrintSummary(w io.Writer, results []builder.Result) {
	total := len(results)
	passed := 0
	var duration time.Duration
	for _, r := range results {
		if r.Success {
			passed++
		}
		duration += r.Duration
	}
	failed := total - passed

	fmt.Fprintln(w, separator)
	fmt.Fprintln(w, "Build summary:")
	fmt.Fprintf(w, "  Total:    %d\n", total)
	fmt.Fprintf(w, "  Passed:   %s\n", color.Pass(fmt.Sprintf("%d", passed)))
	if failed > 0 {
		fmt.Fprintf(w, "  Failed:   %s\n", color.Fail(fmt.Sprintf("%d", failed)))
	}
	fmt.Fprintf(w, "  Duration: %.1fs\n", duration.Seconds())
	fmt.Fprintln(w, separator)

	if failed == 0 {
		return
	}

	fmt.Fprintln(w, "Failed builds:")
	for _, r := range results {
		if r.Success {
			continue
		}
		fmt.Fprintf(w, "  - %s :: %s\n", r.Board, r.Testcase)
		fmt.Fprintf(w, "    %s\n", strings.ReplaceAll(r.Message, "\n", "\n    "))
		if r.LogOutput != "" {
			fmt.Fprintln(w, "    Build output (tail):")
			fmt.Fprintf(w, "    %s\n", strings.ReplaceAll(r.LogOutput, "\n", "\n    "))
		}
	}
}
