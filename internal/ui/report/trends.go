package report

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"libdeps/internal/data/history"
)

// WriteTrendTable prints the recorded runs as an aligned table with the
// change in coverage against the previous run.
func WriteTrendTable(w io.Writer, runs []history.Run) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Timestamp\tRoot\tModules\tFiles\tEdges\tCycles\tUnresolved\tMissing\tMaxLevel\tCoverage\tDelta")
	prev := -1.0
	for _, run := range runs {
		coverage := run.Coverage() * 100
		delta := "-"
		if prev >= 0 {
			delta = fmt.Sprintf("%+.1f", coverage-prev)
		}
		prev = coverage
		root := run.RootModule
		if root == "" {
			root = "*"
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%d\t%d\t%d\t%d\t%d\t%.1f%%\t%s\n",
			run.Timestamp.UTC().Format(time.RFC3339),
			root,
			run.ModuleCount,
			run.FileCount,
			run.EdgeCount,
			run.CycleCount,
			run.UnresolvedCount,
			run.MissingDescriptors,
			run.MaxLevel,
			coverage,
			delta,
		)
	}
	return tw.Flush()
}

func RenderTrendJSON(runs []history.Run) ([]byte, error) {
	return json.MarshalIndent(runs, "", "  ")
}
