package tui

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/pb33f/reqgrid/motor"
	"github.com/pb33f/reqgrid/motor/model"
)

// DateLayout is how timestamps appear in the grid.
const DateLayout = "Jan 02, 2006 15:04:05"

// CellRenderer turns a column value into plain cell text no wider than width.
// A value of the wrong type renders as an empty cell.
type CellRenderer func(value any, width int) string

// BindRenderers picks a renderer for every column once, when the grid is declared.
func BindRenderers(columns []motor.Column) []CellRenderer {
	renderers := make([]CellRenderer, len(columns))
	for i, col := range columns {
		renderers[i] = rendererFor(col)
	}
	return renderers
}

func rendererFor(col motor.Column) CellRenderer {
	switch col.ID {
	case motor.ColumnDate:
		return renderDate
	case motor.ColumnStatus:
		return renderStatus
	case motor.ColumnLatency:
		return renderLatency
	case motor.ColumnRegion:
		return renderRegion
	case motor.ColumnTimingPhase:
		return renderTimingBar
	}

	switch col.Type {
	case motor.TypeDateTime:
		return renderDate
	case motor.TypeNumber:
		return renderNumber
	default:
		return renderText
	}
}

func renderDate(value any, width int) string {
	t, ok := value.(time.Time)
	if !ok || t.IsZero() {
		return ""
	}
	return truncateString(t.Format(DateLayout), width)
}

func renderStatus(value any, width int) string {
	status, ok := value.(int)
	if !ok {
		return ""
	}
	return truncateString(strconv.Itoa(status), width)
}

// FormatMilliseconds renders ms as "1,234ms".
func FormatMilliseconds(ms float64) string {
	return humanize.Comma(int64(math.Round(ms))) + "ms"
}

func renderLatency(value any, width int) string {
	ms, ok := value.(float64)
	if !ok {
		return ""
	}
	return truncateString(FormatMilliseconds(ms), width)
}

func renderNumber(value any, width int) string {
	switch v := value.(type) {
	case int:
		return truncateString(humanize.Comma(int64(v)), width)
	case float64:
		return truncateString(humanize.Commaf(v), width)
	default:
		return ""
	}
}

func renderRegion(value any, width int) string {
	region, ok := value.(model.Region)
	if !ok {
		return ""
	}
	return truncateString(region.String(), width)
}

func renderText(value any, width int) string {
	s, ok := value.(string)
	if !ok {
		return ""
	}
	return truncateString(s, width)
}

// renderTimingBar draws the phases as one stacked bar exactly width cells wide.
func renderTimingBar(value any, width int) string {
	timing, ok := value.(model.TimingPhases)
	if !ok {
		return ""
	}
	return TimingBar(motor.ComputeBreakdown(timing), width)
}

// TimingBar draws b as a run of phase glyphs. A zero breakdown draws nothing.
func TimingBar(b motor.Breakdown, width int) string {
	widths := b.Widths(width)

	var bar strings.Builder
	bar.Grow(width * 3)
	for i, share := range b.Shares {
		bar.WriteString(strings.Repeat(string(PhaseGlyph(share.Phase)), widths[i]))
	}
	return bar.String()
}

// truncateString shortens s to maxLen runes, ending in "..." when there is room.
// A non-positive maxLen leaves s whole.
func truncateString(s string, maxLen int) string {
	if maxLen <= 0 {
		return s
	}

	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}

	if maxLen <= 3 {
		return string(runes[:maxLen])
	}

	return string(runes[:maxLen-3]) + "..."
}
