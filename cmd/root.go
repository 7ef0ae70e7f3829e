package cmd

import (
	"os"

	"gd32test/pkg/logging"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootVerbose bool

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "gd32test",
	Short: "Plan and run Zephyr build tests for GD32 boards",
	Long: `gd32test is a lightweight build-test tool for GD32 boards on Zephyr RTOS.

It generates peripheral-aware test plans from the GD32 peripheral matrix,
discovers testcase.yaml and sample.yaml definitions in a Zephyr tree, drives
'west build' for every selected board/test combination and aggregates the
results into JSON and JUnit XML reports.`,
	// SilenceUsage is set to true to prevent printing usage message on errors
	// handled by us (e.g. invalid arguments, failed builds)
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// A .env next to the working directory may carry ZEPHYR_BASE and
		// friends; absence is fine.
		_ = godotenv.Load()

		level := logging.LevelInfo
		if rootVerbose {
			level = logging.LevelDebug
		}
		logging.InitForCLI(level, os.Stderr)
	},
}

// SetVersion sets the version for the root command
func SetVersion(v string) {
	rootCmd.Version = v
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "gd32test version %s\n" .Version}}`)

	err := rootCmd.Execute()
	if err != nil {
		// Cobra prints the error, we just exit non-zero
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&rootVerbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(newPlanCmd())
	rootCmd.AddCommand(newRunCmd())
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newSelfUpdateCmd())
}
