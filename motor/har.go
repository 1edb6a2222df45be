package motor

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"

	"github.com/pb33f/harhar"
	"github.com/pb33f/reqgrid/motor/model"
)

const (
	keyLog     = "log"
	keyEntries = "entries"
)

// DefaultHARRegion is assigned to imported entries when no region is configured.
var DefaultHARRegion = model.Region{Short: "loc", Full: "Local"}

// HARSource imports the entries of a HAR file as request records.
// HAR carries no region, so every entry gets Region.
type HARSource struct {
	Path   string
	Region model.Region
}

func (s HARSource) Name() string {
	return filepath.Base(s.Path)
}

func (s HARSource) Load(ctx context.Context) ([]model.Record, error) {
	file, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	region := s.Region
	if region.Short == "" || region.Full == "" {
		region = DefaultHARRegion
	}

	imp := &harImporter{region: region}
	if err := imp.parseHAR(ctx, file); err != nil {
		return nil, fmt.Errorf("failed to parse har file: %w", err)
	}

	return imp.records, nil
}

type harImporter struct {
	region  model.Region
	records []model.Record
}

func (h *harImporter) parseHAR(ctx context.Context, reader io.Reader) error {
	decoder := newRecordDecoder(reader)

	if err := helper.expectDelim(decoder, '{'); err != nil {
		return err
	}

	for decoder.More() {
		token, err := decoder.Token()
		if err != nil {
			return err
		}

		key, ok := token.(string)
		if !ok {
			continue
		}

		switch key {
		case keyLog:
			if err := h.parseLog(ctx, decoder); err != nil {
				return err
			}
		default:
			if err := helper.skipValue(decoder); err != nil {
				return err
			}
		}
	}

	return nil
}

func (h *harImporter) parseLog(ctx context.Context, decoder RecordDecoder) error {
	if err := helper.expectDelim(decoder, '{'); err != nil {
		return err
	}

	for decoder.More() {
		token, err := decoder.Token()
		if err != nil {
			return err
		}

		key, ok := token.(string)
		if !ok {
			continue
		}

		if key == keyEntries {
			if err := h.parseEntries(ctx, decoder); err != nil {
				return err
			}
			continue
		}
		if err := helper.skipValue(decoder); err != nil {
			return err
		}
	}

	_, err := decoder.Token()
	return err
}

func (h *harImporter) parseEntries(ctx context.Context, decoder RecordDecoder) error {
	if err := helper.expectDelim(decoder, '['); err != nil {
		return err
	}

	for entryIndex := 0; decoder.More(); entryIndex++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		var entry harhar.Entry
		if err := decoder.Decode(&entry); err != nil {
			return fmt.Errorf("failed to parse entry %d: %w", entryIndex, err)
		}

		rec, err := recordFromEntry(&entry, h.region)
		if err != nil {
			return fmt.Errorf("failed to convert entry %d: %w", entryIndex, err)
		}
		h.records = append(h.records, rec)
	}

	_, err := decoder.Token()
	return err
}

// recordFromEntry maps HAR timings onto the five request phases. SSL time is
// included in HAR's connect time, so it is taken out of the connection phase.
func recordFromEntry(entry *harhar.Entry, region model.Region) (model.Record, error) {
	rec := model.Record{
		Status:  entry.Response.StatusCode,
		Method:  entry.Request.Method,
		Path:    pathOf(entry.Request.URL),
		Latency: harTime(entry.Time),
		Region:  region,
	}

	if entry.Start != "" {
		ts, err := model.ParseTimestamp(entry.Start)
		if err != nil {
			return model.Record{}, err
		}
		rec.Timestamp = ts
	}

	t := entry.Timings
	ssl := harTime(t.SSL)
	rec.Timing = model.TimingPhases{
		DNS:        harTime(t.DNS),
		TLS:        ssl,
		Connection: max(harTime(t.Connect)-ssl, 0),
		TTFB:       harTime(t.Wait),
		Transfer:   harTime(t.Send) + harTime(t.Receive),
	}

	if rec.Method == "" {
		rec.Method = "GET"
	}

	if err := rec.Validate(); err != nil {
		return model.Record{}, err
	}
	return rec, nil
}

// harTime turns HAR's -1 (not applicable) into zero.
func harTime(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}

func pathOf(rawURL string) string {
	if rawURL == "" {
		return "/"
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}

	path := u.Path
	if path == "" {
		path = "/"
	}
	if u.RawQuery != "" {
		path = path + "?" + u.RawQuery
	}
	return path
}
