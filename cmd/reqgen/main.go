package main

import (
	"fmt"
	"os"

	"github.com/pb33f/reqgrid/reqgen"
	"github.com/spf13/cobra"
)

var (
	recordCount int
	outputFile  string
	seed        int64
	dictPath    string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "reqgen",
		Short: "Generate synthetic request records",
		Long: `reqgen writes JSON files of synthetic request records, each with timing
phases that add up to its latency. The output loads straight into reqgrid.`,
		RunE: runGenerate,
	}

	rootCmd.Flags().IntVarP(&recordCount, "records", "n", reqgen.DefaultGenerateOptions.RecordCount, "Number of records to generate")
	rootCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file path (default: a temp file)")
	rootCmd.Flags().Int64VarP(&seed, "seed", "s", 0, "Random seed for reproducibility (0 = use current time)")
	rootCmd.Flags().StringVarP(&dictPath, "dict", "d", "", "Dictionary file for path slugs (default: built-in words)")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runGenerate(cmd *cobra.Command, args []string) error {
	opts := reqgen.DefaultGenerateOptions
	opts.RecordCount = recordCount
	opts.Seed = seed
	opts.DictionaryPath = dictPath

	fmt.Printf("Generating %d request records...\n", recordCount)

	var result *reqgen.GenerateResult
	var err error
	if outputFile != "" {
		result, err = reqgen.GenerateToFile(outputFile, opts)
	} else {
		result, err = reqgen.Generate(opts)
	}
	if err != nil {
		return fmt.Errorf("failed to generate records: %w", err)
	}

	fmt.Printf("\n✓ Generated records file: %s\n", result.FilePath)
	fmt.Printf("  Total records: %d\n", result.TotalRecords)
	return nil
}
