package report

import (
	"encoding/xml"
	"fmt"
	"os"

	"gd32test/internal/builder"
)

type junitTestsuites struct {
	XMLName  xml.Name         `xml:"testsuites"`
	Tests    int              `xml:"tests,attr"`
	Failures int              `xml:"failures,attr"`
	Time     string           `xml:"time,attr"`
	Suites   []junitTestsuite `xml:"testsuite"`
}

type junitTestsuite struct {
	Name  string          `xml:"name,attr"`
	Cases []junitTestcase `xml:"testcase"`
}

type junitTestcase struct {
	Name    string        `xml:"name,attr"`
	Time    string        `xml:"time,attr"`
	Failure *junitFailure `xml:"failure,omitempty"`
}

type junitFailure struct {
	Message string `xml:"message,attr"`
	Content string `xml:",chardata"`
}

// WriteJUnitXML renders the run as JUnit XML for CI integration: one
// testcase per result, named "<board>.<testcase>", with a failure element
// carrying the truncated message and captured output for failed builds.
func WriteJUnitXML(results []builder.Result, path string) error {
	suites := junitTestsuites{
		Suites: []junitTestsuite{{Name: "GD32 Build Tests"}},
	}

	var totalTime float64
	for _, r := range results {
		suites.Tests++
		totalTime += r.Duration.Seconds()

		tc := junitTestcase{
			Name: fmt.Sprintf("%s.%s", r.Board, r.Testcase),
			Time: fmt.Sprintf("%.2f", r.Duration.Seconds()),
		}
		if !r.Success {
			suites.Failures++
			tc.Failure = &junitFailure{
				Message: truncate(r.Message, maxFailureMessageLen),
				Content: truncate(r.LogOutput, maxFailureOutputLen),
			}
		}
		suites.Suites[0].Cases = append(suites.Suites[0].Cases, tc)
	}
	suites.Time = fmt.Sprintf("%.2f", totalTime)

	data, err := xml.MarshalIndent(suites, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JUnit XML: %w", err)
	}
	data = append([]byte(xml.Header), data...)
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write JUnit XML to %s: %w", path, err)
	}
	return nil
}

func truncate(s string, max int) string {
	if len(s) > max {
		return s[:max]
	}
	return s
}
