package reqgen

import (
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/pb33f/reqgrid/motor/model"
)

// GenerateOptions configures record generation
type GenerateOptions struct {
	RecordCount    int            // number of records to generate
	Seed           int64          // random seed for reproducibility (0 = use time)
	DictionaryPath string         // word list for article slugs (empty = built-in words)
	Regions        []model.Region // regions to draw from (empty = Regions)
	Start          time.Time      // earliest timestamp
	Span           time.Duration  // timestamps fall in [Start, Start+Span)
}

// DefaultGenerateOptions mirrors the shape of the bundled sample requests
var DefaultGenerateOptions = GenerateOptions{
	RecordCount: 100,
	Start:       time.Date(2025, 7, 29, 0, 0, 0, 0, time.UTC),
	Span:        14 * 24 * time.Hour,
}

// GenerateResult describes a generated file
type GenerateResult struct {
	FilePath     string
	TotalRecords int
}

// Generate writes generated records to a temp file
func Generate(opts GenerateOptions) (*GenerateResult, error) {
	records, err := GenerateInMemory(opts)
	if err != nil {
		return nil, err
	}

	tmpFile, err := os.CreateTemp("", "reqgen-*.json")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp file: %w", err)
	}
	defer tmpFile.Close()

	if err := WriteRecords(tmpFile, records); err != nil {
		os.Remove(tmpFile.Name())
		return nil, err
	}

	return &GenerateResult{
		FilePath:     tmpFile.Name(),
		TotalRecords: len(records),
	}, nil
}

// GenerateInMemory creates records without writing to disk. A zero
// RecordCount yields an empty slice.
func GenerateInMemory(opts GenerateOptions) ([]model.Record, error) {
	if opts.RecordCount < 0 {
		return nil, fmt.Errorf("record count must not be negative: %d", opts.RecordCount)
	}
	if opts.Start.IsZero() {
		opts.Start = DefaultGenerateOptions.Start
	}
	if opts.Span <= 0 {
		opts.Span = DefaultGenerateOptions.Span
	}

	// local rng, the global source stays untouched
	var rng *rand.Rand
	if opts.Seed != 0 {
		rng = rand.New(rand.NewSource(opts.Seed))
	} else {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	dict, err := LoadDictionary(opts.DictionaryPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load dictionary: %w", err)
	}

	gen := NewRecordGenerator(dict, rng, opts.Regions, opts.Start, opts.Span)

	records := make([]model.Record, opts.RecordCount)
	for i := range records {
		records[i] = gen.GenerateRecord()
	}

	return records, nil
}

// GenerateToFile generates records and writes them to path, creating parent
// directories as needed.
func GenerateToFile(path string, opts GenerateOptions) (*GenerateResult, error) {
	records, err := GenerateInMemory(opts)
	if err != nil {
		return nil, err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	if err := WriteRecords(file, records); err != nil {
		return nil, err
	}

	return &GenerateResult{
		FilePath:     path,
		TotalRecords: len(records),
	}, nil
}

// WriteRecords encodes records as an indented JSON array
func WriteRecords(w io.Writer, records []model.Record) error {
	if records == nil {
		records = []model.Record{}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(records); err != nil {
		return fmt.Errorf("failed to write records: %w", err)
	}
	return nil
}
