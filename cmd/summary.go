package cmd

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/pb33f/reqgrid/motor"
	"github.com/pb33f/reqgrid/motor/model"
	"github.com/pb33f/reqgrid/tui"
	"github.com/spf13/cobra"
)

const summaryBarWidth = 20

var (
	summarySort  string
	summaryDesc  bool
	summaryLimit int
)

var summaryCmd = &cobra.Command{
	Use:   "summary [data-file]",
	Short: "Print a dataset summary and a sorted request listing",
	Long: `Load a request dataset and print its summary followed by a plain listing,
sorted the same way the grid sorts. Useful without a terminal UI.`,
	Args: cobra.MaximumNArgs(1),
	Example: `  reqgrid summary
  reqgrid summary requests.json --sort latency --desc --limit 20
  reqgrid summary capture.har --sort region`,
	RunE: runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)

	summaryCmd.Flags().StringVar(&summarySort, "sort", "", "Column to sort by (date, status, method, timing-phase, pathname, latency, region)")
	summaryCmd.Flags().BoolVar(&summaryDesc, "desc", false, "Sort descending")
	summaryCmd.Flags().IntVarP(&summaryLimit, "limit", "l", 10, "Number of requests to list (0 lists all)")
}

func runSummary(cmd *cobra.Command, args []string) error {
	logger := GetLogger()

	opts, err := viewerOptions(args)
	if err != nil {
		return err
	}

	columns := motor.DefaultColumns()
	var sortModel []motor.SortModelItem
	if summarySort != "" {
		col, err := resolveColumn(summarySort)
		if err != nil {
			return err
		}
		sortModel = motor.ActivateHeader(nil, col)
		if summaryDesc {
			sortModel = motor.ActivateHeader(sortModel, col)
		}
	}

	ds, err := InitializeDataset(cmd.Context(), opts, logger)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	s := ds.Summary()

	fmt.Fprintln(out, "=== Request Summary ===")
	fmt.Fprintf(out, "Source: %s\n", s.Source)
	fmt.Fprintf(out, "Total Requests: %s\n", humanize.Comma(int64(s.TotalRecords)))
	fmt.Fprintf(out, "Unique Regions: %d\n", s.UniqueRegions)
	fmt.Fprintf(out, "Unique Paths: %d\n", s.UniquePaths)
	if s.TotalRecords > 0 {
		fmt.Fprintf(out, "Time Range: %s to %s\n",
			s.TimeRange.Start.Format(model.TimestampLayout),
			s.TimeRange.End.Format(model.TimestampLayout))
		fmt.Fprintf(out, "Latency: %s to %s\n",
			tui.FormatMilliseconds(s.MinLatency),
			tui.FormatMilliseconds(s.MaxLatency))
	}

	rows := motor.SortRows(ds.Rows(), sortModel, columns)
	if summaryLimit > 0 && len(rows) > summaryLimit {
		rows = rows[:summaryLimit]
	}
	if len(rows) == 0 {
		return nil
	}

	fmt.Fprintln(out)
	if len(sortModel) > 0 {
		direction := "ascending"
		if sortModel[0].Descending {
			direction = "descending"
		}
		col, _ := motor.FindColumn(columns, sortModel[0].ColumnID)
		fmt.Fprintf(out, "Sorted by %s, %s\n", col.Title(), direction)
	}
	for _, row := range rows {
		fmt.Fprintln(out, formatListingRow(row.Data))
	}

	return nil
}

func formatListingRow(rec *model.Record) string {
	b := motor.ComputeBreakdown(rec.Timing)
	return fmt.Sprintf("%s  %3d  %-6s  %8s  %-4s  %s  %s",
		rec.Timestamp.String(),
		rec.Status,
		rec.Method,
		tui.FormatMilliseconds(rec.Latency),
		rec.Region.Short,
		tui.TimingBar(b, summaryBarWidth),
		rec.Path)
}

// resolveColumn finds a grid column by id or display name, ignoring case.
func resolveColumn(name string) (motor.Column, error) {
	columns := motor.DefaultColumns()
	for _, col := range columns {
		if strings.EqualFold(col.ID, name) || strings.EqualFold(col.Title(), name) {
			return col, nil
		}
	}

	ids := make([]string, len(columns))
	for i, col := range columns {
		ids[i] = strings.ToLower(col.ID)
	}
	return motor.Column{}, fmt.Errorf("unknown column %q, expected one of: %s", name, strings.Join(ids, ", "))
}
