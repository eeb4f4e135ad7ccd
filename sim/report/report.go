// Package report renders a scheduling Result for people and machines:
// an ASCII Gantt chart, a per-job metrics table and JSON/YAML exports.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"gopkg.in/yaml.v3"

	"github.com/procsched/procsched/sim"
	"github.com/procsched/procsched/sim/trace"
)

// Format selects the output encoding of a result.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// IsValidFormat returns true if the given string names a supported output format.
func IsValidFormat(f string) bool {
	switch Format(f) {
	case FormatText, FormatJSON, FormatYAML:
		return true
	}
	return false
}

// Export is the envelope written for machine-readable output.
type Export struct {
	RunID  string      `json:"run_id" yaml:"run_id"`
	Result *sim.Result `json:"result" yaml:"result"`
}

// Write renders res to w in the requested format.
func Write(w io.Writer, format Format, runID string, res *sim.Result) error {
	switch format {
	case FormatText, "":
		return Text(w, res)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(Export{RunID: runID, Result: res}); err != nil {
			return fmt.Errorf("encoding result as json: %w", err)
		}
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(Export{RunID: runID, Result: res}); err != nil {
			return fmt.Errorf("encoding result as yaml: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

// Text writes the title, Gantt chart, metrics table and summary.
func Text(w io.Writer, res *sim.Result) error {
	title := res.Policy.String()
	_, _ = fmt.Fprintln(w, strings.Repeat("-", len(title)+4))
	_, _ = fmt.Fprintln(w, " ", title)
	_, _ = fmt.Fprintln(w, strings.Repeat("-", len(title)+4))
	if len(res.Jobs) == 0 {
		_, _ = fmt.Fprintln(w, "No jobs.")
		return nil
	}
	_, _ = fmt.Fprintln(w, "Gantt chart")
	Gantt(w, res)
	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintln(w, "Schedule table")
	MetricsTable(w, res)
	_, _ = fmt.Fprintln(w)
	Summary(w, res)
	return nil
}

// Gantt draws one cell per trace segment with the segment boundaries beneath.
//
//	|  A  |  Idle  |  B  |
//	0     2        5     8
func Gantt(w io.Writer, res *sim.Result) {
	if len(res.Trace) == 0 {
		return
	}
	var bar, axis strings.Builder
	bar.WriteString("|")
	for _, seg := range res.Trace {
		start := strconv.FormatInt(seg.Start, 10)
		width := max(len(seg.Label)+4, len(start)+1)
		left := (width - len(seg.Label)) / 2
		bar.WriteString(strings.Repeat(" ", left))
		bar.WriteString(seg.Label)
		bar.WriteString(strings.Repeat(" ", width-left-len(seg.Label)))
		bar.WriteString("|")
		axis.WriteString(start)
		axis.WriteString(strings.Repeat(" ", width+1-len(start)))
	}
	axis.WriteString(strconv.FormatInt(res.Trace[len(res.Trace)-1].End, 10))
	_, _ = fmt.Fprintln(w, bar.String())
	_, _ = fmt.Fprintln(w, axis.String())
}

// MetricsTable writes the per-job metrics with averages in the footer.
func MetricsTable(w io.Writer, res *sim.Result) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"ID", "Priority", "Arrival", "Burst", "Start", "Exit", "Turnaround", "Wait", "Response", "Slices"})
	table.SetAutoFormatHeaders(false)
	table.SetAlignment(tablewriter.ALIGN_RIGHT)
	for _, m := range res.Jobs {
		table.Append([]string{
			m.ID,
			fmt.Sprint(m.Priority),
			fmt.Sprint(m.Arrival),
			fmt.Sprint(m.Burst),
			fmt.Sprint(m.FirstStart),
			fmt.Sprint(m.Completion),
			fmt.Sprint(m.Turnaround),
			fmt.Sprint(m.Waiting),
			fmt.Sprint(m.Response),
			fmt.Sprint(m.Slices),
		})
	}
	agg := res.Aggregate
	table.SetFooter([]string{"", "", "", "", "", "Average",
		formatRatio(agg.AverageTurnaround),
		formatRatio(agg.AverageWaiting),
		formatRatio(agg.AverageResponse), ""})
	table.Render()
}

// Summary writes the aggregate metrics.
func Summary(w io.Writer, res *sim.Result) {
	agg := res.Aggregate
	_, _ = fmt.Fprintf(w, "Jobs             : %d\n", agg.JobCount)
	_, _ = fmt.Fprintf(w, "Makespan         : %d ticks\n", agg.Makespan)
	_, _ = fmt.Fprintf(w, "Idle ticks       : %d\n", agg.IdleTicks)
	_, _ = fmt.Fprintf(w, "CPU utilization  : %s\n", formatRatio(agg.CPUUtilization))
	_, _ = fmt.Fprintf(w, "Throughput       : %s jobs/tick\n", formatRatio(agg.Throughput))
	_, _ = fmt.Fprintf(w, "Context switches : %d\n", agg.ContextSwitches)
	_, _ = fmt.Fprintf(w, "Turnaround       : min %d, p50 %.1f, p95 %.1f, max %d\n",
		agg.Turnaround.Min, agg.Turnaround.P50, agg.Turnaround.P95, agg.Turnaround.Max)
	_, _ = fmt.Fprintf(w, "Waiting          : min %d, p50 %.1f, p95 %.1f, max %d\n",
		agg.Waiting.Min, agg.Waiting.P50, agg.Waiting.P95, agg.Waiting.Max)
	_, _ = fmt.Fprintf(w, "Completion order : %s\n", strings.Join(res.CompletionOrder(), ", "))
	_, _ = fmt.Fprintf(w, "Decisions        : %d\n", res.Steps)
	if len(res.Decisions) > 0 {
		ds := trace.SummarizeDecisions(&trace.DecisionLog{Level: trace.TraceLevelDecisions, Decisions: res.Decisions})
		_, _ = fmt.Fprintf(w, "  dispatches %d, preemptions %d, rotations %d, idle waits %d\n",
			ds.Dispatches, ds.Preemptions, ds.Rotations, ds.IdleWaits)
	}
}

// formatRatio prints an exact ratio with its decimal value, e.g. "5/8 (0.62)".
func formatRatio(r sim.Ratio) string {
	if r.Den <= 1 {
		return r.String()
	}
	return fmt.Sprintf("%s (%.2f)", r, r.Float64())
}
