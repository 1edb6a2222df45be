package motor

import (
	"testing"

	"github.com/pb33f/reqgrid/motor/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleHAR = `{
  "log": {
    "version": "1.2",
    "creator": {"name": "test", "version": "1.0"},
    "pages": [{"startedDateTime": "2025-08-01T10:12:00Z", "id": "page_1", "title": "home", "pageTimings": {}}],
    "entries": [
      {
        "startedDateTime": "2025-08-01T10:12:04.000Z",
        "time": 51,
        "request": {"method": "GET", "url": "https://api.example.com/users?page=2", "httpVersion": "HTTP/1.1",
                    "cookies": [], "headers": [], "queryString": [], "headersSize": -1, "bodySize": 0},
        "response": {"status": 200, "statusText": "OK", "httpVersion": "HTTP/1.1", "cookies": [], "headers": [],
                     "content": {"size": 10, "mimeType": "application/json"}, "redirectURL": "", "headersSize": -1, "bodySize": 10},
        "timings": {"blocked": -1, "dns": 0, "connect": 33, "ssl": 10, "send": 1, "wait": 9, "receive": 8}
      },
      {
        "startedDateTime": "2025-08-01T10:12:05.000Z",
        "time": 20,
        "request": {"method": "POST", "url": "https://api.example.com", "httpVersion": "HTTP/1.1",
                    "cookies": [], "headers": [], "queryString": [], "headersSize": -1, "bodySize": 0},
        "response": {"status": 503, "statusText": "Service Unavailable", "httpVersion": "HTTP/1.1", "cookies": [], "headers": [],
                     "content": {"size": 0, "mimeType": "text/plain"}, "redirectURL": "", "headersSize": -1, "bodySize": 0},
        "timings": {"dns": -1, "connect": -1, "ssl": -1, "send": 0, "wait": 15, "receive": 5}
      }
    ]
  }
}`

func TestHARSource_Load(t *testing.T) {
	path := writeTemp(t, "capture.har", sampleHAR)

	records, err := HARSource{Path: path}.Load(t.Context())
	require.NoError(t, err)
	require.Len(t, records, 2)

	first := records[0]
	assert.Equal(t, "GET", first.Method)
	assert.Equal(t, "/users?page=2", first.Path)
	assert.Equal(t, 200, first.Status)
	assert.Equal(t, 51.0, first.Latency)
	assert.Equal(t, DefaultHARRegion, first.Region)
	assert.Equal(t, "2025-08-01 10:12:04", first.Timestamp.String())
	assert.Equal(t, model.TimingPhases{DNS: 0, TLS: 10, Connection: 23, TTFB: 9, Transfer: 9}, first.Timing)

	second := records[1]
	assert.Equal(t, "/", second.Path)
	assert.Equal(t, 503, second.Status)
	// -1 means not applicable
	assert.Equal(t, model.TimingPhases{TTFB: 15, Transfer: 5}, second.Timing)
}

func TestHARSource_Region(t *testing.T) {
	path := writeTemp(t, "capture.har", sampleHAR)
	region := model.Region{Short: "fra", Full: "Frankfurt"}

	records, err := HARSource{Path: path, Region: region}.Load(t.Context())
	require.NoError(t, err)
	for _, rec := range records {
		assert.Equal(t, region, rec.Region)
	}
}

func TestHARSource_Errors(t *testing.T) {
	_, err := HARSource{Path: writeTemp(t, "bad.har", `{"log": {"entries": [{"startedDateTime": "later"}]}}`)}.Load(t.Context())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "entry 0")

	_, err = HARSource{Path: writeTemp(t, "array.har", `[]`)}.Load(t.Context())
	assert.Error(t, err)

	_, err = HARSource{Path: "/does/not/exist.har"}.Load(t.Context())
	assert.Error(t, err)
}

func TestHARSource_LoadsAsDataset(t *testing.T) {
	path := writeTemp(t, "capture.har", sampleHAR)

	ds, err := LoadDataset(t.Context(), OpenSource(path, DefaultHARRegion))
	require.NoError(t, err)
	assert.Equal(t, "capture.har", ds.Name)
	assert.Equal(t, 2, ds.Len())

	b := ComputeBreakdown(ds.Rows()[0].Data.Timing)
	assert.InDelta(t, 45.1, b.Share(PhaseConnection).Percent, 0.05)
}
