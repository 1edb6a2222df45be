package cmd

import (
	"fmt"

	"github.com/pb33f/reqgrid/stats"
	"github.com/spf13/cobra"
)

var exportOutput string

var exportCmd = &cobra.Command{
	Use:   "export [data-file]",
	Short: "Export dataset metrics in the Prometheus text format",
	Long: `Load a request dataset and write request counts, latency histograms and
timing phase shares as a Prometheus textfile, ready for the node exporter's
textfile collector.`,
	Args: cobra.MaximumNArgs(1),
	Example: `  reqgrid export -o reqgrid.prom
  reqgrid export capture.har --region-code fra --region-name Frankfurt -o /var/lib/node_exporter/reqgrid.prom`,
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "reqgrid.prom", "Output file path")
}

func runExport(cmd *cobra.Command, args []string) error {
	logger := GetLogger()

	opts, err := viewerOptions(args)
	if err != nil {
		return err
	}

	ds, err := InitializeDataset(cmd.Context(), opts, logger)
	if err != nil {
		return err
	}

	collector := stats.NewCollector()
	collector.Observe(ds)

	if err := collector.WriteTextfile(exportOutput); err != nil {
		return err
	}

	logger.Debug("metrics written", "path", exportOutput)
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote metrics for %d requests to %s\n", ds.Len(), exportOutput)
	return nil
}
