package report

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"gd32test/internal/builder"
)

// truncation limits for the JUnit rendering, applied uniformly to every
// failed result
const (
	maxFailureMessageLen = 200
	maxFailureOutputLen  = 500
)

// Summary holds the aggregate counts of one run.
type Summary struct {
	Total    int     `json:"total"`
	Passed   int     `json:"passed"`
	Failed   int     `json:"failed"`
	Duration float64 `json:"duration"`
}

// ResultRecord is the serialized form of one build result.
type ResultRecord struct {
	Board    string  `json:"board"`
	Testcase string  `json:"testcase"`
	Success  bool    `json:"success"`
	Message  string  `json:"message"`
	Duration float64 `json:"duration"`
}

// JSONReport is the machine-readable run report consumed by CI pipelines.
// The field names and nesting are stable.
type JSONReport struct {
	Timestamp string         `json:"timestamp"`
	Summary   Summary        `json:"summary"`
	Results   []ResultRecord `json:"results"`
}

// For deterministic timestamps in tests.
var timeNow = time.Now

// NewJSONReport assembles the report document for a set of build results.
func NewJSONReport(results []builder.Result) JSONReport {
	report := JSONReport{
		Timestamp: timeNow().Format(time.RFC3339),
		Results:   make([]ResultRecord, 0, len(results)),
	}
	for _, r := range results {
		report.Summary.Total++
		if r.Success {
			report.Summary.Passed++
		} else {
			report.Summary.Failed++
		}
		report.Summary.Duration += r.Duration.Seconds()
		report.Results = append(report.Results, ResultRecord{
			Board:    r.Board,
			Testcase: r.Testcase,
			Success:  r.Success,
			Message:  r.Message,
			Duration: r.Duration.Seconds(),
		})
	}
	return report
}

// WriteJSON writes the JSON run report to path.
func WriteJSON(results []builder.Result, path string) (JSONReport, error) {
	report := NewJSONReport(results)
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return report, fmt.Errorf("failed to marshal JSON report: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return report, fmt.Errorf("failed to write JSON report to %s: %w", path, err)
	}
	return report, nil
}
