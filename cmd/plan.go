package cmd

import (
	"fmt"
	"strings"

	"gd32test/internal/matrix"
	"gd32test/internal/plan"

	"github.com/spf13/cobra"
)

var (
	planConfigPath string
	planPlatforms  []string
	planGroup      string
	planOutput     string
	planListBoards bool
	planListGroups bool
)

// planCmd generates peripheral-aware test plans from the matrix
var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Generate a peripheral-aware test plan from the GD32 peripheral matrix",
	Long: `Reads the GD32 peripheral matrix and generates a test plan: the list of
(board, test) combinations whose inferred peripheral requirements the board
can satisfy. The plan is printed as a summary and exported as JSON for
downstream CI tooling.

Selection modes:
  default        plan for every board in the matrix
  -p/--platform  plan for the given boards only (repeatable, order preserved)
  -g/--group     plan for a named test group from the matrix

Examples:
  # Plan for all boards
  gd32test plan -o test_plan.json

  # Plan for specific boards
  gd32test plan -p gd32f407v_start -p gd32e507z_eval

  # Plan for the "essential" test group
  gd32test plan -g essential

  # Inspect the matrix
  gd32test plan --list-boards
  gd32test plan --list-groups`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := matrix.Load(planConfigPath)
		if err != nil {
			return err
		}

		if planListBoards {
			printBoards(cmd, cfg)
			return nil
		}
		if planListGroups {
			printGroups(cmd, cfg)
			return nil
		}

		generator := plan.NewGenerator(cfg)

		var entries []plan.Entry
		switch {
		case planGroup != "":
			cmd.Printf("Generating test plan for group %q...\n", planGroup)
			entries = generator.ByGroup(planGroup)
		case len(planPlatforms) > 0:
			cmd.Printf("Generating test plan for %d board(s)...\n", len(planPlatforms))
			entries = generator.ForAllBoards(planPlatforms)
		default:
			cmd.Println("Generating test plan for all GD32 boards...")
			entries = generator.ForAllBoards(nil)
		}

		plan.PrintSummary(cmd.OutOrStdout(), entries)

		if err := plan.Export(entries, planOutput); err != nil {
			return err
		}
		cmd.Printf("Test plan exported to %s\n", planOutput)
		return nil
	},
}

func printBoards(cmd *cobra.Command, cfg *matrix.Config) {
	cmd.Println("\nSupported GD32 boards:")
	cmd.Println("----------------------------------------")
	for _, name := range cfg.BoardNames() {
		board, _ := cfg.Board(name)
		cmd.Printf("  %-25s (%s, %s)\n", name, strings.ToUpper(board.Series), board.Arch)
		cmd.Printf("    peripherals: %s\n", strings.Join(board.Peripherals, ", "))
	}
	cmd.Println()
}

func printGroups(cmd *cobra.Command, cfg *matrix.Config) {
	cmd.Println("\nAvailable test groups:")
	cmd.Println("----------------------------------------")
	for _, name := range cfg.GroupNames() {
		group, _ := cfg.Group(name)
		description := group.Description
		if description == "" {
			description = "N/A"
		}
		boards := fmt.Sprintf("%d board(s)", len(group.Boards.Boards))
		if group.Boards.All {
			boards = "all boards"
		}
		cmd.Printf("  %s:\n", name)
		cmd.Printf("    description: %s\n", description)
		cmd.Printf("    tests: %d, %s\n", len(group.Tests), boards)
	}
	cmd.Println()
}

func newPlanCmd() *cobra.Command {
	planCmd.Flags().StringVarP(&planConfigPath, "config", "c", matrix.DefaultConfigName, "Peripheral matrix YAML file")
	planCmd.Flags().StringArrayVarP(&planPlatforms, "platform", "p", nil, "Board to plan for (can be specified multiple times)")
	planCmd.Flags().StringVarP(&planGroup, "group", "g", "", "Generate the plan for a named test group")
	planCmd.Flags().StringVarP(&planOutput, "output", "o", "gd32_test_plan.json", "Output JSON file for the plan")
	planCmd.Flags().BoolVar(&planListBoards, "list-boards", false, "List boards from the matrix and exit")
	planCmd.Flags().BoolVar(&planListGroups, "list-groups", false, "List test groups from the matrix and exit")
	return planCmd
}
