package tui

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/pb33f/reqgrid/motor"
	"github.com/pb33f/reqgrid/motor/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func literalRecord() *model.Record {
	return &model.Record{
		Timestamp: model.NewTimestamp(time.Date(2025, 8, 1, 10, 12, 4, 0, time.UTC)),
		Status:    200,
		Method:    "GET",
		Path:      "/",
		Latency:   51,
		Region:    model.Region{Short: "sin", Full: "Singapore"},
		Timing:    model.TimingPhases{DNS: 0, TLS: 10, Connection: 23, TTFB: 9, Transfer: 9},
	}
}

func renderCells(t *testing.T, rec *model.Record) map[string]string {
	t.Helper()
	columns := motor.DefaultColumns()
	renderers := BindRenderers(columns)
	require.Len(t, renderers, len(columns))

	row := model.LeafRow("r", rec)
	out := make(map[string]string, len(columns))
	for i, col := range columns {
		out[col.ID] = renderers[i](motor.ColumnField(col, row), 51)
	}
	return out
}

func TestBindRenderers_Formats(t *testing.T) {
	rec := literalRecord()
	rec.Latency = 1234.4
	cells := renderCells(t, rec)

	assert.Equal(t, "Aug 01, 2025 10:12:04", cells[motor.ColumnDate])
	assert.Equal(t, "200", cells[motor.ColumnStatus])
	assert.Equal(t, "GET", cells[motor.ColumnMethod])
	assert.Equal(t, "/", cells[motor.ColumnPathname])
	assert.Equal(t, "1,234ms", cells[motor.ColumnLatency])
	assert.Equal(t, "sin Singapore", cells[motor.ColumnRegion])
	assert.Equal(t, 51, utf8.RuneCountInString(cells[motor.ColumnTimingPhase]))
}

func TestBindRenderers_RowWithoutData(t *testing.T) {
	columns := motor.DefaultColumns()
	renderers := BindRenderers(columns)

	for i, col := range columns {
		assert.Empty(t, renderers[i](motor.ColumnField(col, model.LeafRow("x", nil)), 20), col.ID)
	}
}

func TestRenderers_TypeMismatch(t *testing.T) {
	assert.Empty(t, renderDate("2025-08-01", 30))
	assert.Empty(t, renderDate(time.Time{}, 30))
	assert.Empty(t, renderStatus("200", 10))
	assert.Empty(t, renderLatency(51, 10))
	assert.Empty(t, renderRegion("sin", 20))
	assert.Empty(t, renderText(42, 20))
	assert.Empty(t, renderNumber("42", 20))
	assert.Empty(t, renderTimingBar(nil, 20))
}

func TestRenderNumber(t *testing.T) {
	assert.Equal(t, "12,345", renderNumber(12345, 10))
	assert.Equal(t, "1,234.5", renderNumber(1234.5, 10))
}

func TestTimingBar_LiteralRecord(t *testing.T) {
	b := motor.ComputeBreakdown(literalRecord().Timing)
	bar := TimingBar(b, 51)

	expected := strings.Repeat(string(PhaseGlyph(motor.PhaseTransfer)), 9) +
		strings.Repeat(string(PhaseGlyph(motor.PhaseConnection)), 23) +
		strings.Repeat(string(PhaseGlyph(motor.PhaseTTFB)), 9) +
		strings.Repeat(string(PhaseGlyph(motor.PhaseTLS)), 10)
	assert.Equal(t, expected, bar)
}

func TestTimingBar_AlwaysFullWidth(t *testing.T) {
	b := motor.ComputeBreakdown(literalRecord().Timing)
	for _, width := range []int{1, 7, 10, 33, 80} {
		assert.Equal(t, width, utf8.RuneCountInString(TimingBar(b, width)), "width %d", width)
	}

	assert.Empty(t, TimingBar(motor.ComputeBreakdown(model.TimingPhases{}), 20))
}

func TestFormatMilliseconds(t *testing.T) {
	assert.Equal(t, "0ms", FormatMilliseconds(0))
	assert.Equal(t, "51ms", FormatMilliseconds(51))
	assert.Equal(t, "52ms", FormatMilliseconds(51.6))
	assert.Equal(t, "1,000,000ms", FormatMilliseconds(1e6))
}

func TestTruncateString(t *testing.T) {
	assert.Equal(t, "short", truncateString("short", 10))
	assert.Equal(t, "/api/us...", truncateString("/api/users/1599", 10))
	assert.Equal(t, "ab", truncateString("abcdef", 2))
	assert.Equal(t, "whole", truncateString("whole", 0))
	assert.Equal(t, "Örebro...", truncateString("Örebro Sweden", 9))
}

func TestPhaseGlyphs_Distinct(t *testing.T) {
	seen := make(map[rune]motor.Phase)
	for _, p := range motor.PhaseOrder {
		g := PhaseGlyph(p)
		_, dup := seen[g]
		assert.False(t, dup, "glyph %q reused", g)
		seen[g] = p

		back, ok := phaseForGlyph(g)
		assert.True(t, ok)
		assert.Equal(t, p, back)
	}
	assert.Equal(t, ' ', PhaseGlyph(motor.Phase(9)))
}
