package plan

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
)

// Summary aggregates distinct counts over a generated plan.
type Summary struct {
	TotalTests  int `json:"total_tests"`
	Boards      int `json:"boards"`
	UniqueTests int `json:"unique_tests"`
}

// Document is the exported plan layout. Field names and nesting are consumed
// by downstream CI tooling and must stay stable.
type Document struct {
	TestPlans []Entry `json:"test_plans"`
	Summary   Summary `json:"summary"`
}

// Summarize computes entry, distinct-board and distinct-test counts.
func Summarize(entries []Entry) Summary {
	boards := make(map[string]struct{})
	tests := make(map[string]struct{})
	for _, e := range entries {
		boards[e.Board] = struct{}{}
		tests[e.TestPath] = struct{}{}
	}
	return Summary{
		TotalTests:  len(entries),
		Boards:      len(boards),
		UniqueTests: len(tests),
	}
}

// GroupByBoard maps each board to its test paths in plan order.
func GroupByBoard(entries []Entry) map[string][]string {
	grouped := make(map[string][]string)
	for _, e := range entries {
		grouped[e.Board] = append(grouped[e.Board], e.TestPath)
	}
	return grouped
}

// NewDocument assembles the export document for a plan. Entries keep their
// generation order; nothing is dropped or reordered.
func NewDocument(entries []Entry) Document {
	doc := Document{
		TestPlans: entries,
		Summary:   Summarize(entries),
	}
	if doc.TestPlans == nil {
		doc.TestPlans = []Entry{}
	}
	for i := range doc.TestPlans {
		if doc.TestPlans[i].RequiredPeripherals == nil {
			doc.TestPlans[i].RequiredPeripherals = []string{}
		}
	}
	return doc
}

// Export writes the plan document as indented JSON.
func Export(entries []Entry, path string) error {
	data, err := json.MarshalIndent(NewDocument(entries), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal test plan: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write test plan to %s: %w", path, err)
	}
	return nil
}

// ReadDocument loads a previously exported plan document.
func ReadDocument(path string) (Document, error) {
	var doc Document
	data, err := os.ReadFile(path)
	if err != nil {
		return doc, fmt.Errorf("failed to read test plan %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return doc, fmt.Errorf("failed to parse test plan %s: %w", path, err)
	}
	return doc, nil
}

// PrintSummary writes a human-readable plan summary, including the per-board
// test distribution in board name order.
func PrintSummary(w io.Writer, entries []Entry) {
	summary := Summarize(entries)

	fmt.Fprintln(w)
	fmt.Fprintln(w, "============================================================")
	fmt.Fprintln(w, "GD32 test plan summary")
	fmt.Fprintln(w, "============================================================")
	fmt.Fprintf(w, "Total build tasks:  %d\n", summary.TotalTests)
	fmt.Fprintf(w, "Boards covered:     %d\n", summary.Boards)
	fmt.Fprintf(w, "Unique test cases:  %d\n", summary.UniqueTests)
	fmt.Fprintln(w)

	grouped := GroupByBoard(entries)
	boards := make([]string, 0, len(grouped))
	for board := range grouped {
		boards = append(boards, board)
	}
	sort.Strings(boards)

	if len(boards) > 0 {
		fmt.Fprintln(w, "Per-board distribution:")
		for _, board := range boards {
			fmt.Fprintf(w, "  %-25s %3d test(s)\n", board, len(grouped[board]))
		}
	}
	fmt.Fprintln(w, "============================================================")
	fmt.Fprintln(w)
}
