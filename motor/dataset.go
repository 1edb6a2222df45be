package motor

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/pb33f/reqgrid/motor/model"
)

// Dataset is an immutable, in-memory set of request records.
// Records are never mutated after construction; Rows hands out pointers into it for reading only.
type Dataset struct {
	Name     string
	records  []model.Record
	rowIDs   []string
	summary  Summary
	strShard [256]*stringTableShard
	shardMu  sync.Mutex
}

// Summary describes a loaded dataset.
type Summary struct {
	Source        string
	TotalRecords  int
	UniqueRegions int
	UniquePaths   int
	TimeRange     TimeRange
	MinLatency    float64
	MaxLatency    float64
	LoadTime      time.Duration
}

type TimeRange struct {
	Start time.Time
	End   time.Time
}

type stringTableShard struct {
	table map[string]string
	mu    sync.RWMutex
}

// NewDataset copies records into a new dataset, interning repeated strings.
func NewDataset(name string, records []model.Record) *Dataset {
	ds := &Dataset{
		Name:    name,
		records: make([]model.Record, len(records)),
		rowIDs:  make([]string, len(records)),
	}

	regions := make(map[string]struct{})
	paths := make(map[string]struct{})

	for i, rec := range records {
		rec.Method = ds.Intern(rec.Method)
		rec.Path = ds.Intern(rec.Path)
		rec.Region.Short = ds.Intern(rec.Region.Short)
		rec.Region.Full = ds.Intern(rec.Region.Full)
		ds.records[i] = rec
		ds.rowIDs[i] = rowID(i, &rec)

		regions[rec.Region.Full] = struct{}{}
		paths[rec.Path] = struct{}{}
	}

	ds.summary = summarize(name, ds.records)
	ds.summary.UniqueRegions = len(regions)
	ds.summary.UniquePaths = len(paths)

	return ds
}

// LoadDataset loads every record from src.
func LoadDataset(ctx context.Context, src RecordSource) (*Dataset, error) {
	start := time.Now()

	records, err := src.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", src.Name(), err)
	}

	ds := NewDataset(src.Name(), records)
	ds.summary.LoadTime = time.Since(start)
	return ds, nil
}

func summarize(name string, records []model.Record) Summary {
	s := Summary{Source: name, TotalRecords: len(records)}
	if len(records) == 0 {
		return s
	}

	s.MinLatency = math.Inf(1)
	s.MaxLatency = math.Inf(-1)
	for _, rec := range records {
		ts := rec.Timestamp.Time
		if s.TimeRange.Start.IsZero() || ts.Before(s.TimeRange.Start) {
			s.TimeRange.Start = ts
		}
		if ts.After(s.TimeRange.End) {
			s.TimeRange.End = ts
		}
		s.MinLatency = math.Min(s.MinLatency, rec.Latency)
		s.MaxLatency = math.Max(s.MaxLatency, rec.Latency)
	}

	return s
}

// rowID hashes a record's position and canonical fields into a stable row id.
func rowID(pos int, rec *model.Record) string {
	d := xxhash.New()
	_, _ = d.WriteString(strconv.Itoa(pos))
	_, _ = d.WriteString(rec.Timestamp.String())
	_, _ = d.WriteString(rec.Method)
	_, _ = d.WriteString(rec.Path)
	_, _ = d.WriteString(rec.Region.Short)
	_, _ = d.WriteString(strconv.Itoa(rec.Status))
	return strconv.FormatUint(d.Sum64(), 16)
}

// Len returns the number of records.
func (ds *Dataset) Len() int {
	return len(ds.records)
}

// Records returns a copy of the records in load order.
func (ds *Dataset) Records() []model.Record {
	out := make([]model.Record, len(ds.records))
	copy(out, ds.records)
	return out
}

// Record returns the record at i.
func (ds *Dataset) Record(i int) (model.Record, error) {
	if i < 0 || i >= len(ds.records) {
		return model.Record{}, fmt.Errorf("index %d out of range [0, %d)", i, len(ds.records))
	}
	return ds.records[i], nil
}

// Rows returns one leaf row per record, in load order.
func (ds *Dataset) Rows() []model.Row {
	rows := make([]model.Row, len(ds.records))
	for i := range ds.records {
		rows[i] = model.LeafRow(ds.rowIDs[i], &ds.records[i])
	}
	return rows
}

// Summary describes the dataset.
func (ds *Dataset) Summary() Summary {
	return ds.summary
}

// Intern deduplicates strings using 256 shards with xxhash distribution.
func (ds *Dataset) Intern(s string) string {
	if s == "" {
		return ""
	}

	h := xxhash.Sum64String(s)
	shardIdx := h % 256
	shard := ds.shard(shardIdx)

	shard.mu.RLock()
	if interned, exists := shard.table[s]; exists {
		shard.mu.RUnlock()
		return interned
	}
	shard.mu.RUnlock()

	// double-checked locking: check without write lock first, then with write lock to prevent race
	shard.mu.Lock()
	defer shard.mu.Unlock()

	if interned, exists := shard.table[s]; exists {
		return interned
	}

	shard.table[s] = s
	return s
}

func (ds *Dataset) shard(shardIdx uint64) *stringTableShard {
	ds.shardMu.Lock()
	defer ds.shardMu.Unlock()

	if ds.strShard[shardIdx] == nil {
		ds.strShard[shardIdx] = &stringTableShard{
			table: make(map[string]string),
		}
	}
	return ds.strShard[shardIdx]
}
