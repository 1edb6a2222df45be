package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// TimestampLayout is the naive wall-clock layout used by request log fixtures.
const TimestampLayout = "2006-01-02 15:04:05"

// Record describes one synthetic HTTP request.
type Record struct {
	// Timestamp of the request, naive wall-clock time.
	Timestamp Timestamp `json:"timestamp"`

	// Status is the HTTP status code of the response.
	Status int `json:"status"`

	// Method of the HTTP request, in caps, GET/POST/etc
	Method string `json:"method"`

	// Path is the URL path of the request.
	Path string `json:"path"`

	// Latency is the total request time in milliseconds.
	Latency float64 `json:"latency"`

	// Region that served the request.
	Region Region `json:"region"`

	// Timing contains the per-phase breakdown of Latency.
	Timing TimingPhases `json:"timing"`
}

// Region pairs a short region code with its display name.
type Region struct {
	// Short code, e.g. "sin"
	Short string `json:"short"`
	// Full display name, e.g. "Singapore"
	Full string `json:"full"`
}

// String returns "code name".
func (r Region) String() string {
	return r.Short + " " + r.Full
}

// TimingPhases contains the five timing phases of a request, in milliseconds.
// The sum is expected to approximate Record.Latency but nothing enforces it.
type TimingPhases struct {
	// DNS is the domain name resolution time.
	DNS float64 `json:"dns"`
	// TLS is the time required to negotiate the TLS session.
	TLS float64 `json:"tls"`
	// Connection is the time required to create the TCP connection.
	Connection float64 `json:"connection"`
	// TTFB is the time to first byte, waiting on the server.
	TTFB float64 `json:"ttfb"`
	// Transfer is the time spent reading the response.
	Transfer float64 `json:"transfer"`
}

// Sum adds all five phases.
func (t TimingPhases) Sum() float64 {
	return t.DNS + t.TLS + t.Connection + t.TTFB + t.Transfer
}

// Validate checks the record for the required fields and non-negative durations.
func (r *Record) Validate() error {
	if r.Method == "" {
		return fmt.Errorf("method is required")
	}
	if r.Path == "" {
		return fmt.Errorf("path is required")
	}
	if r.Latency < 0 {
		return fmt.Errorf("latency must not be negative, got %v", r.Latency)
	}
	if r.Region.Short == "" || r.Region.Full == "" {
		return fmt.Errorf("region requires both short and full names, got %q/%q", r.Region.Short, r.Region.Full)
	}

	phases := []struct {
		name  string
		value float64
	}{
		{"dns", r.Timing.DNS},
		{"tls", r.Timing.TLS},
		{"connection", r.Timing.Connection},
		{"ttfb", r.Timing.TTFB},
		{"transfer", r.Timing.Transfer},
	}
	for _, p := range phases {
		if p.value < 0 {
			return fmt.Errorf("timing phase %s must not be negative, got %v", p.name, p.value)
		}
	}

	return nil
}

// Timestamp is a naive wall-clock time. It is stored in UTC and never converted.
type Timestamp struct {
	time.Time
}

// NewTimestamp wraps t, dropping its location while keeping the wall clock.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)}
}

// ParseTimestamp accepts TimestampLayout and RFC3339.
func ParseTimestamp(s string) (Timestamp, error) {
	if t, err := time.ParseInLocation(TimestampLayout, s, time.UTC); err == nil {
		return Timestamp{t}, nil
	}

	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return Timestamp{}, fmt.Errorf("invalid timestamp %q: %w", s, err)
	}

	return NewTimestamp(t), nil
}

// String formats using TimestampLayout.
func (ts Timestamp) String() string {
	return ts.Format(TimestampLayout)
}

func (ts Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(ts.String())
}

func (ts *Timestamp) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return fmt.Errorf("timestamp is required")
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("timestamp must be a string: %w", err)
	}

	parsed, err := ParseTimestamp(s)
	if err != nil {
		return err
	}

	*ts = parsed
	return nil
}
