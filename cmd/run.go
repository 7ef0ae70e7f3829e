package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gd32test/internal/builder"
	"gd32test/internal/discovery"
	"gd32test/internal/report"
	"gd32test/internal/runner"
	"gd32test/pkg/logging"

	"github.com/spf13/cobra"
)

var (
	runTestsRoot  string
	runPlatforms  []string
	runTags       []string
	runPristine   string
	runJobs       int
	runTimeout    time.Duration
	runBuildDir   string
	runJSONReport string
	runJUnitXML   string
	runZephyrBase string
	runListBoards bool
)

// runCmd discovers tests and drives west build for each combination
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Discover tests and build them for every matching GD32 board",
	Long: `Discovers testcase.yaml and sample.yaml definitions under the given test
root, expands them into a build matrix against the discovered GD32 boards and
runs 'west build' for every combination.

The Zephyr tree is located through --zephyr-base, or the ZEPHYR_BASE
environment variable when the flag is not given (a .env file in the working
directory is honored). Builds run in parallel when -j is greater than one;
each build is bounded by --timeout and a timed-out build counts as failed
without retries.

Examples:
  # Build blinky for all GD32 boards
  gd32test run -T samples/basic/blinky

  # Build for specific boards with 4 parallel jobs
  gd32test run -T samples/basic/blinky -p gd32f407v_start -p gd32e507z_eval -j 4

  # Only tests tagged "kernel", with reports
  gd32test run -T tests/kernel -t kernel --json-report report.json --junit-xml report.xml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		pristine := builder.Pristine(runPristine)
		if !pristine.Valid() {
			return fmt.Errorf("invalid pristine mode %q (want never, auto or always)", runPristine)
		}

		zephyrBase := runZephyrBase
		if zephyrBase == "" {
			zephyrBase = os.Getenv("ZEPHYR_BASE")
		}
		if zephyrBase == "" {
			return fmt.Errorf("Zephyr base not configured: pass --zephyr-base or set ZEPHYR_BASE (source zephyr-env.sh first)")
		}
		if _, err := os.Stat(zephyrBase); err != nil {
			return fmt.Errorf("Zephyr base path does not exist: %s", zephyrBase)
		}

		logging.Info("run", "discovering GD32 boards in %s", zephyrBase)
		boards, err := discovery.DiscoverBoards(zephyrBase)
		if err != nil {
			return err
		}
		if len(boards) == 0 {
			return fmt.Errorf("no GD32 boards found under %s", filepath.Join(zephyrBase, discovery.GD32BoardsSubdir))
		}
		logging.Info("run", "found %d GD32 board(s)", len(boards))

		if runListBoards {
			cmd.Println("\nAvailable GD32 boards:")
			for _, board := range boards {
				cmd.Printf("  - %s\n", board)
			}
			return nil
		}

		testRoot := filepath.Join(zephyrBase, runTestsRoot)
		if _, err := os.Stat(testRoot); err != nil {
			return fmt.Errorf("test root does not exist: %s", testRoot)
		}

		logging.Info("run", "discovering tests and samples in %s", testRoot)
		cases, err := discovery.DiscoverCases(testRoot)
		if err != nil {
			return err
		}
		if len(cases) == 0 {
			return fmt.Errorf("no testcase.yaml or sample.yaml found under %s", testRoot)
		}
		logging.Info("run", "found %d test(s)/sample(s)", len(cases))

		cases = discovery.FilterByTags(cases, runTags)
		if len(runTags) > 0 {
			logging.Info("run", "after tag filter: %d test(s)", len(cases))
		}
		if len(cases) == 0 {
			logging.Warn("run", "no tests match the specified filters")
			return nil
		}

		workDir := runBuildDir
		if workDir == "" {
			workDir = filepath.Join(zephyrBase, discovery.GD32BoardsSubdir, "scripts", "build")
		}
		if err := os.MkdirAll(workDir, 0755); err != nil {
			return fmt.Errorf("failed to create build directory %s: %w", workDir, err)
		}
		logging.Info("run", "build directory: %s", workDir)

		tasks := runner.BuildMatrix(cases, boards, runPlatforms)
		if len(tasks) == 0 {
			logging.Warn("run", "no builds to execute (empty build matrix)")
			return nil
		}
		logging.Info("run", "build matrix: %d build(s), %d parallel job(s)", len(tasks), runJobs)

		west := &builder.WestBuilder{
			ZephyrBase: zephyrBase,
			Pristine:   pristine,
			Timeout:    runTimeout,
		}

		out := cmd.OutOrStdout()
		results := runner.Run(cmd.Context(), tasks, runJobs, func(ctx context.Context, task runner.Task) builder.Result {
			logging.Info("run", "building %s :: %s", task.Board, task.Case.Name)
			buildDir := builder.BuildDirFor(workDir, task.Board, task.Case.Name)
			result := west.Build(ctx, task.Board, task.Case, buildDir)
			report.PrintResultLine(out, result)
			return result
		})

		jsonPath := runJSONReport
		if jsonPath == "" {
			jsonPath = filepath.Join(workDir, "gd32_test_report.json")
		}
		if _, err := report.WriteJSON(results, jsonPath); err != nil {
			return err
		}
		logging.Info("run", "JSON report: %s", jsonPath)

		if runJUnitXML != "" {
			if err := report.WriteJUnitXML(results, runJUnitXML); err != nil {
				return err
			}
			logging.Info("run", "JUnit XML report: %s", runJUnitXML)
		}

		report.PrintSummary(out, results)

		for _, r := range results {
			if !r.Success {
				return fmt.Errorf("%d of %d builds failed", countFailed(results), len(results))
			}
		}
		return nil
	},
}

func countFailed(results []builder.Result) int {
	failed := 0
	for _, r := range results {
		if !r.Success {
			failed++
		}
	}
	return failed
}

func newRunCmd() *cobra.Command {
	runCmd.Flags().StringVarP(&runTestsRoot, "tests-root", "T", "", "Root directory to search for tests/samples, relative to the Zephyr base")
	runCmd.Flags().StringArrayVarP(&runPlatforms, "platform", "p", nil, "Board/platform filter (can be specified multiple times)")
	runCmd.Flags().StringArrayVarP(&runTags, "tag", "t", nil, "Tag filter (can be specified multiple times)")
	runCmd.Flags().StringVar(&runPristine, "pristine", string(builder.PristineAuto), "Pristine build mode: never, auto or always")
	runCmd.Flags().IntVarP(&runJobs, "jobs", "j", 1, "Number of parallel build jobs")
	runCmd.Flags().DurationVar(&runTimeout, "timeout", builder.DefaultTimeout, "Timeout for a single build")
	runCmd.Flags().StringVar(&runBuildDir, "build-dir", "", "Base directory for builds (default: boards/gd/scripts/build under the Zephyr base)")
	runCmd.Flags().StringVar(&runJSONReport, "json-report", "", "JSON report output file (default: gd32_test_report.json in the build directory)")
	runCmd.Flags().StringVar(&runJUnitXML, "junit-xml", "", "JUnit XML report output file (disabled when empty)")
	runCmd.Flags().StringVar(&runZephyrBase, "zephyr-base", "", "Path to the Zephyr tree (default: ZEPHYR_BASE environment variable)")
	runCmd.Flags().BoolVar(&runListBoards, "list-boards", false, "List discovered GD32 boards and exit")

	if err := runCmd.MarkFlagRequired("tests-root"); err != nil {
		panic(err)
	}
	return runCmd
}
