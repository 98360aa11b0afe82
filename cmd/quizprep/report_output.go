package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"quizprep/internal/stage"
	"quizprep/internal/workflow"
)

func printReport(cmd *cobra.Command, report workflow.Report) {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, renderTable(resultTable(report.Results)))
	fmt.Fprintln(out, renderStatusLine("Run "+shortID(report.RunID), statusOK,
		fmt.Sprintf("%d stage(s) in %s", len(report.Results), formatDuration(report.Duration)),
		shouldColorize(out)))
}

func resultTable(results []stage.Result) tableSpec {
	spec := tableSpec{
		headers: []string{"Stage", "Records", "Matched", "Unmatched", "Duplicates", "Repaired", "Output", "Duration"},
		aligns:  []columnAlignment{alignLeft, alignRight, alignRight, alignRight, alignRight, alignRight, alignLeft, alignRight},
	}
	for _, r := range results {
		spec.rows = append(spec.rows, []string{
			r.Stage,
			strconv.Itoa(r.Records),
			countCell(r, r.Matched),
			countCell(r, r.Unmatched),
			countCell(r, r.Duplicates),
			strconv.Itoa(r.Repaired),
			r.Output,
			formatDuration(r.Duration),
		})
	}
	return spec
}

// countCell renders join statistics, which only the join and export stages produce.
func countCell(r stage.Result, value int) string {
	if r.Stage != stage.NameJoin && r.Stage != stage.NameExport {
		return "-"
	}
	return strconv.Itoa(value)
}

func formatDuration(d time.Duration) string {
	if d < time.Millisecond {
		return d.Round(time.Microsecond).String()
	}
	return d.Round(time.Millisecond).String()
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
