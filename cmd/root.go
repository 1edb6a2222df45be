package cmd

import (
    "context"
    "fmt"
    "log/slog"
    "os"

    "github.com/pb33f/reqgrid/motor"
    "github.com/pb33f/reqgrid/motor/model"
    "github.com/spf13/cobra"
)

var (
    verbose     bool
    groupBy     string
    initialSort string
    regionCode  string
    regionName  string
    Logger      *slog.Logger

    rootCmd = &cobra.Command{
        Use:   "reqgrid [data-file]",
        Short: "A terminal grid for exploring HTTP request timings",
        Long: `reqgrid is a terminal user interface for browsing recorded HTTP requests.
Requests can be sorted by any column, grouped by region, and opened to show
how their latency splits across DNS, TLS, connection, TTFB and transfer.

With no data file the embedded sample requests are shown. JSON record files
and HAR captures are both accepted.`,
        Args: cobra.MaximumNArgs(1),
        Example: `  reqgrid
  reqgrid requests.json --group
  reqgrid capture.har --region-code fra --region-name Frankfurt
  reqgrid requests.json --sort latency -v`,
        PersistentPreRun: func(cmd *cobra.Command, args []string) {
            setupLogger()
        },
        RunE: runReqgrid,
    }
)

// Execute runs the root command
func Execute() error {
    return rootCmd.Execute()
}

func init() {
    rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
    rootCmd.PersistentFlags().StringVar(&regionCode, "region-code", motor.DefaultHARRegion.Short, "Region code stamped on HAR entries")
    rootCmd.PersistentFlags().StringVar(&regionName, "region-name", motor.DefaultHARRegion.Full, "Region name stamped on HAR entries")

    rootCmd.Flags().StringVarP(&groupBy, "group", "g", "", "Start grouped by region or method")
    rootCmd.Flags().Lookup("group").NoOptDefVal = "region"
    rootCmd.Flags().StringVar(&initialSort, "sort", "", "Column to sort ascending on open")

    // will be reconfigured in PersistentPreRun based on flags
    setupLogger()
}

func runReqgrid(cmd *cobra.Command, args []string) error {
    opts, err := viewerOptions(args)
    if err != nil {
        return err
    }

    if opts.GroupBy != "" && opts.GroupKey() == nil {
        return fmt.Errorf("unknown grouping %q, use region or method", opts.GroupBy)
    }

    if err := LaunchTUI(opts); err != nil {
        return fmt.Errorf("failed to launch TUI: %w", err)
    }

    return nil
}

// viewerOptions builds the dataset options shared by every command from the
// optional data file argument and the persistent flags.
func viewerOptions(args []string) (motor.ViewerOptions, error) {
    opts := motor.DefaultViewerOptions()
    opts.HARRegion = model.Region{Short: regionCode, Full: regionName}
    opts.GroupBy = groupBy

    if len(args) > 0 {
        if err := ValidateDataFile(args[0]); err != nil {
            return opts, fmt.Errorf("invalid data file: %w", err)
        }
        opts.DataPath = args[0]
    }

    if initialSort != "" {
        col, err := resolveColumn(initialSort)
        if err != nil {
            return opts, err
        }
        opts.InitialSort = col.ID
    }

    return opts, nil
}

// setupLogger configures the global slog logger based on the verbose flag
func setupLogger() {
    var opts *slog.HandlerOptions

    if verbose {
        opts = &slog.HandlerOptions{
            Level:     slog.LevelDebug,
            AddSource: true,
        }
    } else {
        opts = &slog.HandlerOptions{
            Level: slog.LevelInfo,
        }
    }

    handler := slog.NewTextHandler(os.Stderr, opts)
    Logger = slog.New(handler)
    slog.SetDefault(Logger)

    if verbose {
        Logger.Debug("verbose logging enabled",
            "level", slog.LevelDebug.String(),
            "pid", os.Getpid())
    }
}

// GetLogger returns the global logger instance
func GetLogger() *slog.Logger {
    if Logger == nil {
        setupLogger()
    }
    return Logger
}

// ValidateDataFile checks the data file exists and is not a directory.
func ValidateDataFile(dataFile string) error {
    if dataFile == "" {
        return fmt.Errorf("data file path is required")
    }

    info, err := os.Stat(dataFile)
    if err != nil {
        if os.IsNotExist(err) {
            return fmt.Errorf("data file does not exist: %s", dataFile)
        }
        return fmt.Errorf("error accessing data file: %w", err)
    }

    if info.IsDir() {
        return fmt.Errorf("provided path is a directory, not a file: %s", dataFile)
    }

    return nil
}

// InitializeDataset loads the configured source and logs what was found.
func InitializeDataset(ctx context.Context, opts motor.ViewerOptions, logger *slog.Logger) (*motor.Dataset, error) {
    src := opts.Source()

    logger.Debug("loading requests...", "source", src.Name())
    ds, err := motor.LoadDataset(ctx, src)
    if err != nil {
        return nil, err
    }

    summary := ds.Summary()
    logger.Info("requests loaded",
        "source", summary.Source,
        "records", summary.TotalRecords,
        "unique_regions", summary.UniqueRegions,
        "unique_paths", summary.UniquePaths,
        "load_time", summary.LoadTime,
        "time_range", fmt.Sprintf("%s to %s",
            summary.TimeRange.Start.Format(model.TimestampLayout),
            summary.TimeRange.End.Format(model.TimestampLayout)))

    if verbose {
        count := min(3, ds.Len())
        for i := 0; i < count; i++ {
            rec, _ := ds.Record(i)
            logger.Debug("record",
                "index", i,
                "method", rec.Method,
                "path", rec.Path,
                "status", rec.Status,
                "region", rec.Region.Short)
        }
    }

    return ds, nil
}
