package motor

import (
	"testing"

	"github.com/pb33f/reqgrid/motor/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func column(t *testing.T, id string) Column {
	t.Helper()
	col, ok := FindColumn(DefaultColumns(), id)
	require.True(t, ok, "column %s", id)
	return col
}

func TestNewSortItem_Kinds(t *testing.T) {
	tests := []struct {
		column      string
		kind        SortKind
		includeTime bool
	}{
		{ColumnRegion, SortCustom, false},
		{ColumnTimingPhase, SortCustom, false},
		{ColumnDate, SortDate, true},
		{ColumnLatency, SortNumber, false},
		{ColumnStatus, SortString, false},
		{ColumnMethod, SortString, false},
		{ColumnPathname, SortString, false},
	}

	for _, tt := range tests {
		t.Run(tt.column, func(t *testing.T) {
			item := NewSortItem(column(t, tt.column))
			assert.Equal(t, tt.column, item.ColumnID)
			assert.Equal(t, tt.kind, item.Kind)
			assert.Equal(t, tt.includeTime, item.IncludeTime)
			assert.False(t, item.Descending)
			assert.Equal(t, tt.kind == SortCustom, item.Comparator != nil)
		})
	}
}

func TestActivateHeader_Cycle(t *testing.T) {
	latency := column(t, ColumnLatency)

	var sortModel []SortModelItem

	sortModel = ActivateHeader(sortModel, latency)
	require.Len(t, sortModel, 1)
	assert.Equal(t, ColumnLatency, sortModel[0].ColumnID)
	assert.False(t, sortModel[0].Descending)

	sortModel = ActivateHeader(sortModel, latency)
	require.Len(t, sortModel, 1)
	assert.True(t, sortModel[0].Descending)

	sortModel = ActivateHeader(sortModel, latency)
	assert.Empty(t, sortModel)

	sortModel = ActivateHeader(sortModel, latency)
	require.Len(t, sortModel, 1)
	assert.False(t, sortModel[0].Descending)
}

func TestActivateHeader_OtherColumnReplaces(t *testing.T) {
	sortModel := ActivateHeader(nil, column(t, ColumnLatency))
	sortModel = ActivateHeader(sortModel, column(t, ColumnLatency))
	require.True(t, sortModel[0].Descending)

	sortModel = ActivateHeader(sortModel, column(t, ColumnRegion))
	require.Len(t, sortModel, 1)
	assert.Equal(t, ColumnRegion, sortModel[0].ColumnID)
	assert.False(t, sortModel[0].Descending)
	assert.Equal(t, SortCustom, sortModel[0].Kind)

	_, found := SortForColumn(sortModel, ColumnLatency)
	assert.False(t, found)
}

func TestActivateHeader_DoesNotMutateInput(t *testing.T) {
	current := ActivateHeader(nil, column(t, ColumnDate))
	next := ActivateHeader(current, column(t, ColumnDate))

	assert.False(t, current[0].Descending)
	assert.True(t, next[0].Descending)
}

func latencies(rows []model.Row) []float64 {
	out := make([]float64, 0, len(rows))
	for _, r := range rows {
		if r.HasData() {
			out = append(out, r.Data.Latency)
		}
	}
	return out
}

func TestSortRows_Directions(t *testing.T) {
	rows := []model.Row{latencyLeaf(90), latencyLeaf(20), latencyLeaf(51)}
	cols := DefaultColumns()

	asc := []SortModelItem{NewSortItem(column(t, ColumnLatency))}
	assert.Equal(t, []float64{20, 51, 90}, latencies(SortRows(rows, asc, cols)))

	desc := ActivateHeader(asc, column(t, ColumnLatency))
	assert.Equal(t, []float64{90, 51, 20}, latencies(SortRows(rows, desc, cols)))

	// timing phase sorts by latency too
	phase := []SortModelItem{NewSortItem(column(t, ColumnTimingPhase))}
	assert.Equal(t, []float64{20, 51, 90}, latencies(SortRows(rows, phase, cols)))

	// input untouched, empty model keeps source order
	assert.Equal(t, []float64{90, 20, 51}, latencies(rows))
	assert.Equal(t, []float64{90, 20, 51}, latencies(SortRows(rows, nil, cols)))
}

func TestSortRows_Stable(t *testing.T) {
	rows := []model.Row{
		leafFor("first", func(r *model.Record) { r.Region.Full = "Sydney" }),
		leafFor("second", func(r *model.Record) { r.Region.Full = "Chicago" }),
		leafFor("third", func(r *model.Record) { r.Region.Full = "Sydney" }),
	}

	sorted := SortRows(rows, []SortModelItem{NewSortItem(column(t, ColumnRegion))}, DefaultColumns())

	var ids []string
	for _, r := range sorted {
		ids = append(ids, r.ID)
	}
	assert.Equal(t, []string{"second", "first", "third"}, ids)
}

func TestSortRows_Grouped(t *testing.T) {
	chicago := leafFor("c", func(r *model.Record) {
		r.Region.Full = "Chicago"
		r.Latency = 40
	})
	ds := NewDataset("test", []model.Record{
		*latencyLeaf(70).Data,
		*chicago.Data,
		*latencyLeaf(10).Data,
	})

	grouped := GroupRows(ds.Rows(), GroupByRegion)
	require.Len(t, grouped, 2)

	sorted := SortRows(grouped, []SortModelItem{NewSortItem(column(t, ColumnLatency))}, DefaultColumns())

	// branches compare equal, so groups keep their order; children are sorted
	assert.Equal(t, "Singapore", sorted[0].Key)
	assert.Equal(t, "Chicago", sorted[1].Key)
	assert.Equal(t, []float64{10, 70}, latencies(sorted[0].Children))
	assert.Equal(t, []float64{70, 10}, latencies(grouped[0].Children))
}

func TestSortRows_MixedKinds(t *testing.T) {
	rows := []model.Row{
		latencyLeaf(30),
		model.LeafRow("empty", nil),
		model.BranchRow("group:a", "a", nil),
		latencyLeaf(5),
	}

	sorted := SortRows(rows, []SortModelItem{NewSortItem(column(t, ColumnTimingPhase))}, DefaultColumns())

	require.Len(t, sorted, 4)
	assert.True(t, sorted[0].IsBranch())
	assert.Equal(t, 5.0, sorted[1].Data.Latency)
	assert.Equal(t, 30.0, sorted[2].Data.Latency)
	assert.Equal(t, "empty", sorted[3].ID)
}

func TestSortRows_UnknownColumnIgnored(t *testing.T) {
	rows := []model.Row{latencyLeaf(3), latencyLeaf(1)}
	sorted := SortRows(rows, []SortModelItem{{ColumnID: "nope", Kind: SortNumber}}, DefaultColumns())
	assert.Equal(t, []float64{3, 1}, latencies(sorted))
}
