package plan

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func samplePlan() []Entry {
	return []Entry{
		{Board: "gd32f407v_start", TestPath: "samples/basic/blinky", Category: "basic", RequiredPeripherals: []string{"gpio"}},
		{Board: "gd32f407v_start", TestPath: "samples/hello_world", Category: "basic", RequiredPeripherals: []string{}},
		{Board: "gd32e507z_eval", TestPath: "samples/basic/blinky", Category: "basic", RequiredPeripherals: []string{"gpio"}},
	}
}

func TestSummarize(t *testing.T) {
	summary := Summarize(samplePlan())

	assert.Equal(t, 3, summary.TotalTests)
	assert.Equal(t, 2, summary.Boards)
	assert.Equal(t, 2, summary.UniqueTests)
}

func TestSummarizeEmpty(t *testing.T) {
	assert.Equal(t, Summary{}, Summarize(nil))
}

func TestGroupByBoard(t *testing.T) {
	grouped := GroupByBoard(samplePlan())

	require.Len(t, grouped, 2)
	assert.Equal(t, []string{"samples/basic/blinky", "samples/hello_world"}, grouped["gd32f407v_start"])
	assert.Equal(t, []string{"samples/basic/blinky"}, grouped["gd32e507z_eval"])
}

func TestExportRoundTrip(t *testing.T) {
	entries := samplePlan()
	path := filepath.Join(t.TempDir(), "test_plan.json")

	require.NoError(t, Export(entries, path))

	doc, err := ReadDocument(path)
	require.NoError(t, err)

	assert.Equal(t, entries, doc.TestPlans)
	assert.Equal(t, Summarize(entries), doc.Summary)
}

func TestExportEmptyPlan(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty_plan.json")
	require.NoError(t, Export(nil, path))

	doc, err := ReadDocument(path)
	require.NoError(t, err)
	assert.Empty(t, doc.TestPlans)
	assert.Equal(t, Summary{}, doc.Summary)
}

func TestNewDocumentNormalizesNilSlices(t *testing.T) {
	doc := NewDocument([]Entry{{Board: "b", TestPath: "t", Category: "c"}})

	require.Len(t, doc.TestPlans, 1)
	assert.NotNil(t, doc.TestPlans[0].RequiredPeripherals,
		"required_peripherals must serialize as [] rather than null")
}

func TestPrintSummary(t *testing.T) {
	var buf bytes.Buffer
	PrintSummary(&buf, samplePlan())

	out := buf.String()
	assert.Contains(t, out, "Total build tasks:  3")
	assert.Contains(t, out, "Boards covered:     2")
	assert.Contains(t, out, "Unique test cases:  2")
	assert.Contains(t, out, "gd32f407v_start")
}
