package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pb33f/reqgrid/motor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetFlags puts the package flag variables back to their defaults, flags
// parsed by an earlier command run would otherwise leak into the next.
func resetFlags() {
	verbose = false
	groupBy = ""
	initialSort = ""
	regionCode = motor.DefaultHARRegion.Short
	regionName = motor.DefaultHARRegion.Full
	summarySort = ""
	summaryDesc = false
	summaryLimit = 10
	exportOutput = "reqgrid.prom"
	genRecordCount = 100
	genOutputFile = ""
	genSeed = 0
	genDictPath = ""
	genRegions = []string{}
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags()
	t.Cleanup(resetFlags)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return out.String(), err
}

func listingLines(output string) []string {
	_, listing, found := strings.Cut(output, "Sorted by")
	if !found {
		return nil
	}
	lines := strings.Split(strings.TrimSpace(listing), "\n")
	return lines[1:]
}

func TestSummaryCommand(t *testing.T) {
	out, err := execute(t, "summary", "--sort", "latency", "--limit", "3")
	require.NoError(t, err)

	assert.Contains(t, out, "Source: sample requests")
	assert.Contains(t, out, "Total Requests: 100")
	assert.Contains(t, out, "Unique Regions: 10")
	assert.Contains(t, out, "Sorted by Latency, ascending")

	lines := listingLines(out)
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "20ms")
}

func TestSummaryCommand_Descending(t *testing.T) {
	out, err := execute(t, "summary", "--sort", "Latency", "--desc", "--limit", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Sorted by Latency, descending")
	assert.Len(t, listingLines(out), 1)
}

func TestSummaryCommand_Errors(t *testing.T) {
	_, err := execute(t, "summary", "--sort", "bytes")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown column")

	_, err = execute(t, "summary", filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not exist")
}

func TestGenerateThenSummary(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "requests.json")

	out, err := execute(t, "generate", "-n", "12", "-s", "42", "-o", path, "--regions", "sin,syd")
	require.NoError(t, err)
	assert.Contains(t, out, "Generated records file: "+path)
	assert.Contains(t, out, "Total records: 12")

	ds, err := motor.LoadDataset(t.Context(), motor.OpenSource(path, motor.DefaultHARRegion))
	require.NoError(t, err)
	assert.Equal(t, 12, ds.Len())
	assert.LessOrEqual(t, ds.Summary().UniqueRegions, 2)

	out, err = execute(t, "summary", path, "--limit", "0", "--sort", "date")
	require.NoError(t, err)
	assert.Contains(t, out, "Total Requests: 12")
	assert.Len(t, listingLines(out), 12)
}

func TestGenerateCommand_UnknownRegion(t *testing.T) {
	_, err := execute(t, "generate", "-n", "1", "--regions", "mars")
	assert.EqualError(t, err, "unknown region code: mars")
}

func TestExportCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reqgrid.prom")

	out, err := execute(t, "export", "-o", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote metrics for 100 requests")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)
	assert.Contains(t, text, "reqgrid_dataset_records 100")
	assert.Contains(t, text, "reqgrid_requests_total{")
	assert.Contains(t, text, `reqgrid_phase_share_percent{phase="transfer"}`)
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "Version:    dev")
	assert.Contains(t, out, "https://pb33f.io/reqgrid/")
}
