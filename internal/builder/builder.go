package builder

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"gd32test/internal/discovery"
	"gd32test/pkg/logging"
)

// Pristine is the build-cleanliness policy handed to west.
type Pristine string

const (
	PristineNever  Pristine = "never"
	PristineAuto   Pristine = "auto"
	PristineAlways Pristine = "always"
)

// Valid reports whether the pristine mode is one west understands.
func (p Pristine) Valid() bool {
	switch p {
	case PristineNever, PristineAuto, PristineAlways:
		return true
	}
	return false
}

const (
	// BuildDirPrefix namespaces the per-task build directories.
	BuildDirPrefix = "gd32_build_"

	// DefaultTimeout bounds a single west invocation.
	DefaultTimeout = 10 * time.Minute

	// maxLogLength caps the captured output kept on a Result. Applied
	// uniformly to every failure type.
	maxLogLength = 1000
	// error extraction keeps the last few marker lines, or the output tail
	// when west printed no explicit error markers
	maxErrorLines  = 5
	maxOutputLines = 10
)

// Result records the outcome of one west build invocation.
type Result struct {
	Board     string
	Testcase  string
	Success   bool
	Message   string
	Duration  time.Duration
	BuildDir  string
	LogOutput string
}

// WestBuilder drives `west build` for single board/test combinations. The
// zero value is not usable; construct it with an explicit Zephyr base path
// (there is deliberately no ambient ZEPHYR_BASE lookup at this layer).
type WestBuilder struct {
	ZephyrBase string
	Pristine   Pristine
	Timeout    time.Duration
}

// For stubbing the subprocess in tests.
var runCommand = func(cmd *exec.Cmd) ([]byte, error) {
	return cmd.CombinedOutput()
}

// Build compiles one test case for one board, bounded by the configured
// timeout. All failure modes (timeout, non-zero exit, invocation error) are
// folded into a failed Result; Build itself never returns an error so a bad
// combination cannot abort the surrounding run.
func (b *WestBuilder) Build(ctx context.Context, board string, tc discovery.Case, buildDir string) Result {
	timeout := b.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	args := []string{"build"}
	if b.Pristine != PristineNever && b.Pristine != "" {
		args = append(args, "-p", string(b.Pristine))
	}
	args = append(args, "-b", strings.TrimSpace(board), "-d", strings.TrimSpace(buildDir), b.testPathArg(tc))

	cmd := exec.CommandContext(ctx, "west", args...)
	cmd.Dir = b.ZephyrBase
	cmd.Env = os.Environ()

	logging.Debug("builder", "command: west %s", strings.Join(args, " "))

	start := time.Now()
	output, err := runCommand(cmd)
	duration := time.Since(start)

	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return Result{
			Board:     board,
			Testcase:  tc.Name,
			Success:   false,
			Message:   fmt.Sprintf("Build timeout after %s", timeout),
			Duration:  timeout,
			BuildDir:  buildDir,
			LogOutput: "Build timed out",
		}
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return Result{
				Board:     board,
				Testcase:  tc.Name,
				Success:   false,
				Message:   "Build failed:\n" + extractErrorMessage(string(output)),
				Duration:  duration,
				BuildDir:  buildDir,
				LogOutput: truncateOutput(string(output)),
			}
		}
		// west could not be started at all
		return Result{
			Board:     board,
			Testcase:  tc.Name,
			Success:   false,
			Message:   fmt.Sprintf("Build error: %v", err),
			Duration:  duration,
			BuildDir:  buildDir,
			LogOutput: err.Error(),
		}
	}

	return Result{
		Board:     board,
		Testcase:  tc.Name,
		Success:   true,
		Message:   "Build successful",
		Duration:  duration,
		BuildDir:  buildDir,
		LogOutput: truncateOutput(string(output)),
	}
}

// testPathArg hands west a path relative to the Zephyr base when the test
// lives inside the tree, and the absolute path otherwise.
func (b *WestBuilder) testPathArg(tc discovery.Case) string {
	if rel, err := filepath.Rel(b.ZephyrBase, tc.Path); err == nil && !strings.HasPrefix(rel, "..") {
		return strings.TrimSpace(rel)
	}
	return strings.TrimSpace(tc.Path)
}

// BuildDirFor derives the per-task build directory under workDir. Path
// separators and dots in the test name are flattened so the directory name
// stays a single component.
func BuildDirFor(workDir, board, testName string) string {
	safe := strings.NewReplacer("/", "_", ".", "_").Replace(testName)
	return filepath.Join(workDir, BuildDirPrefix+board+"_"+safe)
}

// extractErrorMessage pulls the most relevant lines out of a failed build's
// output: explicit compiler error lines when present, otherwise the tail of
// the output.
func extractErrorMessage(output string) string {
	var errorLines []string
	for _, line := range strings.Split(output, "\n") {
		lower := strings.ToLower(line)
		if strings.Contains(lower, "error:") || strings.Contains(lower, "fatal error:") {
			errorLines = append(errorLines, line)
		}
	}

	if len(errorLines) > 0 {
		if len(errorLines) > maxErrorLines {
			errorLines = errorLines[len(errorLines)-maxErrorLines:]
		}
		return strings.Join(errorLines, "\n")
	}

	outputLines := strings.Split(strings.TrimSpace(output), "\n")
	if len(outputLines) > maxOutputLines {
		outputLines = outputLines[len(outputLines)-maxOutputLines:]
	}
	return strings.Join(outputLines, "\n")
}

func truncateOutput(output string) string {
	if len(output) > maxLogLength {
		return output[len(output)-maxLogLength:]
	}
	return output
}
