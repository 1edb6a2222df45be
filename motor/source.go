package motor

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pb33f/reqgrid/motor/model"
)

//go:embed fixtures/requests.json
var fixtureRequests []byte

// FixtureName names the embedded sample dataset.
const FixtureName = "sample requests"

// FixtureSource serves the embedded sample request log.
type FixtureSource struct{}

func (FixtureSource) Name() string {
	return FixtureName
}

func (FixtureSource) Load(ctx context.Context) ([]model.Record, error) {
	return decodeRecords(ctx, bytes.NewReader(fixtureRequests))
}

// JSONFileSource reads a JSON array of records from disk.
type JSONFileSource struct {
	Path string
}

func (s JSONFileSource) Name() string {
	return filepath.Base(s.Path)
}

func (s JSONFileSource) Load(ctx context.Context) ([]model.Record, error) {
	file, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return decodeRecords(ctx, file)
}

// OpenSource picks a source for path: the fixture when path is empty, a HAR
// import for .har files, JSON records otherwise.
func OpenSource(path string, region model.Region) RecordSource {
	switch {
	case path == "":
		return FixtureSource{}
	case strings.EqualFold(filepath.Ext(path), ".har"):
		return HARSource{Path: path, Region: region}
	default:
		return JSONFileSource{Path: path}
	}
}

// decodeRecords streams a JSON array of records, validating each one.
func decodeRecords(ctx context.Context, r io.Reader) ([]model.Record, error) {
	decoder := newRecordDecoder(r)

	if err := helper.expectDelim(decoder, '['); err != nil {
		return nil, fmt.Errorf("failed to read records: %w", err)
	}

	records := make([]model.Record, 0, 128)
	for i := 0; decoder.More(); i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var rec model.Record
		if err := decoder.Decode(&rec); err != nil {
			return nil, fmt.Errorf("failed to decode record %d: %w", i, err)
		}
		if err := rec.Validate(); err != nil {
			return nil, fmt.Errorf("invalid record %d: %w", i, err)
		}
		records = append(records, rec)
	}

	if err := helper.expectDelim(decoder, ']'); err != nil {
		return nil, fmt.Errorf("failed to read records: %w", err)
	}

	return records, nil
}
