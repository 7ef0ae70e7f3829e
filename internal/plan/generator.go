package plan

import (
	"gd32test/internal/matrix"
	"gd32test/pkg/logging"
)

// Entry pairs one board with one test it should build. Entries are produced
// by the Generator and consumed as-is by the reporters; they are never
// mutated after creation.
type Entry struct {
	Board               string   `json:"board"`
	TestPath            string   `json:"test_path"`
	Category            string   `json:"category"`
	RequiredPeripherals []string `json:"required_peripherals"`
}

// Generator produces build plans by matching declared test suites against
// board peripheral capabilities.
type Generator struct {
	cfg *matrix.Config
}

// NewGenerator creates a plan generator over a loaded peripheral matrix.
func NewGenerator(cfg *matrix.Config) *Generator {
	return &Generator{cfg: cfg}
}

// ForBoard generates the plan for a single board. Every (category, test)
// pair declared in the board's test suites is considered in declared order,
// and a pair is included only when the board supports every peripheral the
// test is inferred to require. An unknown board name yields an empty plan
// rather than an error.
func (g *Generator) ForBoard(boardName string) []Entry {
	board, ok := g.cfg.Board(boardName)
	if !ok {
		logging.Warn("plan", "unknown board %q, skipping", boardName)
		return nil
	}

	var entries []Entry
	for _, suite := range board.TestSuites {
		for _, testPath := range suite.Tests {
			required := InferPeripherals(testPath)
			if !board.SupportsAll(required) {
				logging.Debug("plan", "%s: skipping %s (requires %v)", boardName, testPath, required)
				continue
			}
			entries = append(entries, Entry{
				Board:               boardName,
				TestPath:            testPath,
				Category:            suite.Category,
				RequiredPeripherals: required,
			})
		}
	}
	return entries
}

// ForAllBoards concatenates per-board plans. With a nil or empty filter it
// covers every known board in sorted name order; with a filter it preserves
// the caller-supplied board order.
func (g *Generator) ForAllBoards(boardFilter []string) []Entry {
	boards := boardFilter
	if len(boards) == 0 {
		boards = g.cfg.BoardNames()
	}

	var entries []Entry
	for _, boardName := range boards {
		entries = append(entries, g.ForBoard(boardName)...)
	}
	return entries
}

// ByGroup generates the plan for a named test group. The group's board
// selector is resolved first ("all" expands to every known board, in sorted
// name order), then every (board, test) combination is emitted with the
// group name as category. An unknown group yields an empty plan.
//
// Note: unlike ForBoard, group plans are not filtered by peripheral
// compatibility. The peripheral list is still inferred and recorded on each
// entry, but a board missing a required peripheral keeps its entry. This
// asymmetry is long-standing observable behavior that downstream group plans
// rely on, so it is preserved as-is.
func (g *Generator) ByGroup(groupName string) []Entry {
	group, ok := g.cfg.Group(groupName)
	if !ok {
		logging.Warn("plan", "unknown test group %q, skipping", groupName)
		return nil
	}

	boards := group.Boards.Boards
	if group.Boards.All {
		boards = g.cfg.BoardNames()
	}

	var entries []Entry
	for _, boardName := range boards {
		for _, testPath := range group.Tests {
			entries = append(entries, Entry{
				Board:               boardName,
				TestPath:            testPath,
				Category:            groupName,
				RequiredPeripherals: InferPeripherals(testPath),
			})
		}
	}
	return entries
}
