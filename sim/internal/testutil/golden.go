// Package testutil provides shared test infrastructure for the scheduling simulator.
// It holds the golden scenario types and assertion helpers used across
// sim/ and its sub-package tests.
package testutil

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// GoldenDataset represents the structure of testdata/goldenscenarios.json.
type GoldenDataset struct {
	Scenarios []GoldenScenario `json:"scenarios"`
}

// GoldenJob is one input job of a scenario.
type GoldenJob struct {
	ID      string `json:"id"`
	Arrival int64  `json:"arrival"`
	Burst   int64  `json:"burst"`
}

// GoldenSegment is one expected trace segment.
type GoldenSegment struct {
	Label string `json:"label"`
	Start int64  `json:"start"`
	End   int64  `json:"end"`
}

// GoldenScenario is a job set, a policy and the exact expected outcome.
type GoldenScenario struct {
	Name    string          `json:"name"`
	Policy  string          `json:"policy"`
	Quantum int64           `json:"quantum"`
	Jobs    []GoldenJob     `json:"jobs"`
	Trace   []GoldenSegment `json:"trace"`

	// Per-job expectations; absent IDs are not checked.
	Completion map[string]int64 `json:"completion"`
	Turnaround map[string]int64 `json:"turnaround"`
	Waiting    map[string]int64 `json:"waiting"`
	Response   map[string]int64 `json:"response"`

	// CPUUtilization as "num/den"; empty means not checked.
	CPUUtilization string `json:"cpu_utilization"`
}

// LoadGoldenDataset loads the golden dataset from the testdata directory.
// The path is resolved relative to this source file: sim/internal/testutil/ → testdata/.
func LoadGoldenDataset(t *testing.T) *GoldenDataset {
	t.Helper()

	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("Failed to get current file path")
	}
	// Navigate from sim/internal/testutil/ to repo root testdata/
	path := filepath.Join(filepath.Dir(thisFile), "..", "..", "..", "testdata", "goldenscenarios.json")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read golden dataset: %v", err)
	}

	var dataset GoldenDataset
	if err := json.Unmarshal(data, &dataset); err != nil {
		t.Fatalf("Failed to parse golden dataset: %v", err)
	}
	if len(dataset.Scenarios) == 0 {
		t.Fatal("Golden dataset has no scenarios")
	}
	return &dataset
}

// FormatTrace renders segments as "A[0,5) B[5,8)" for readable diffs.
func FormatTrace(segments []GoldenSegment) string {
	parts := make([]string, len(segments))
	for i, s := range segments {
		parts[i] = fmt.Sprintf("%s[%d,%d)", s.Label, s.Start, s.End)
	}
	return strings.Join(parts, " ")
}
