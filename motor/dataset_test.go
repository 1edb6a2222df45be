package motor

import (
	"context"
	"errors"
	"testing"

	"github.com/pb33f/reqgrid/motor/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDataset_Intern(t *testing.T) {
	ds := NewDataset("test", nil)

	s1 := ds.Intern("hello")
	s2 := ds.Intern("hello")
	assert.Equal(t, s1, s2)
	assert.Equal(t, "", ds.Intern(""))
	assert.NotEqual(t, s1, ds.Intern("world"))
}

func TestDataset_InternConcurrent(t *testing.T) {
	ds := NewDataset("test", nil)

	done := make(chan bool)
	for i := 0; i < 10; i++ {
		go func() {
			for j := 0; j < 100; j++ {
				ds.Intern("concurrent-test")
			}
			done <- true
		}()
	}

	for i := 0; i < 10; i++ {
		<-done
	}
}

func TestLoadDataset_Fixture(t *testing.T) {
	ds, err := LoadDataset(t.Context(), FixtureSource{})
	require.NoError(t, err)

	assert.Equal(t, FixtureName, ds.Name)
	assert.Equal(t, 100, ds.Len())

	summary := ds.Summary()
	assert.Equal(t, 100, summary.TotalRecords)
	assert.Equal(t, 10, summary.UniqueRegions)
	assert.True(t, summary.TimeRange.Start.Before(summary.TimeRange.End))
	assert.LessOrEqual(t, summary.MinLatency, summary.MaxLatency)

	first, err := ds.Record(0)
	require.NoError(t, err)
	assert.Equal(t, "GET", first.Method)
	assert.Equal(t, 51.0, first.Latency)
	assert.Equal(t, model.Region{Short: "sin", Full: "Singapore"}, first.Region)
	assert.Equal(t, "2025-08-01 10:12:04", first.Timestamp.String())

	_, err = ds.Record(100)
	assert.Error(t, err)
}

func TestDataset_Rows(t *testing.T) {
	ds, err := LoadDataset(t.Context(), FixtureSource{})
	require.NoError(t, err)

	rows := ds.Rows()
	require.Len(t, rows, ds.Len())

	seen := make(map[string]struct{}, len(rows))
	for _, row := range rows {
		assert.True(t, row.IsLeaf())
		require.NotNil(t, row.Data)
		assert.NotEmpty(t, row.ID)
		seen[row.ID] = struct{}{}
	}
	assert.Len(t, seen, len(rows), "row ids must be unique")

	// ids are stable across loads
	again, err := LoadDataset(t.Context(), FixtureSource{})
	require.NoError(t, err)
	assert.Equal(t, rows[5].ID, again.Rows()[5].ID)
}

func TestDataset_RecordsIsACopy(t *testing.T) {
	ds, err := LoadDataset(t.Context(), FixtureSource{})
	require.NoError(t, err)

	records := ds.Records()
	records[0].Latency = 9999

	first, _ := ds.Record(0)
	assert.Equal(t, 51.0, first.Latency)
}

func TestDataset_Empty(t *testing.T) {
	ds := NewDataset("empty", nil)
	assert.Equal(t, 0, ds.Len())
	assert.Empty(t, ds.Rows())
	assert.Equal(t, 0, ds.Summary().TotalRecords)
	assert.True(t, ds.Summary().TimeRange.Start.IsZero())
}

type failingSource struct{}

func (failingSource) Name() string { return "broken" }

func (failingSource) Load(ctx context.Context) ([]model.Record, error) {
	return nil, errors.New("boom")
}

func TestLoadDataset_Error(t *testing.T) {
	_, err := LoadDataset(t.Context(), failingSource{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken")
	assert.Contains(t, err.Error(), "boom")
}
