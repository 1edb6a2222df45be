package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/v2/table"
	"github.com/pb33f/reqgrid/motor"
	"github.com/pb33f/reqgrid/motor/model"
)

// layoutColumns sizes the declared columns for a terminal width. Columns with a
// declared width keep it; the region column is fixed; the timing bar and the
// path share whatever is left.
func layoutColumns(columns []motor.Column, terminalWidth int) []int {
	widths := make([]int, len(columns))
	remaining := terminalWidth - borderPadding

	flexible := make([]int, 0, 2)
	for i, col := range columns {
		switch {
		case col.Width > 0:
			widths[i] = col.Width
		case col.ID == motor.ColumnRegion:
			widths[i] = regionColumnWidth
		default:
			flexible = append(flexible, i)
			remaining -= cellPadding
			continue
		}
		remaining -= widths[i] + cellPadding
	}

	for _, i := range flexible {
		switch columns[i].ID {
		case motor.ColumnTimingPhase:
			widths[i] = clamp(remaining/3, minTimingColumnWidth, maxTimingColumnWidth)
		default:
			widths[i] = minPathColumnWidth
		}
	}

	// the path takes the rest
	for _, i := range flexible {
		if columns[i].ID == motor.ColumnTimingPhase {
			remaining -= widths[i]
		}
	}
	for _, i := range flexible {
		if columns[i].ID != motor.ColumnTimingPhase {
			widths[i] = clamp(remaining, minPathColumnWidth, maxPathColumnWidth)
			remaining -= widths[i]
		}
	}

	return widths
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// headerTitle decorates a column title with its sort direction and header focus.
func headerTitle(col motor.Column, sortModel []motor.SortModelItem, focused bool) string {
	title := col.Title()

	if item, ok := motor.SortForColumn(sortModel, col.ID); ok {
		if item.Descending {
			title += " " + sortDescendingArrow
		} else {
			title += " " + sortAscendingArrow
		}
	}

	if focused {
		title = "[" + title + "]"
	}
	return title
}

func buildTableColumns(columns []motor.Column, widths []int, sortModel []motor.SortModelItem, focused int) []table.Column {
	out := make([]table.Column, len(columns))
	for i, col := range columns {
		out[i] = table.Column{
			Title: headerTitle(col, sortModel, i == focused),
			Width: widths[i],
		}
	}
	return out
}

// buildTableRows renders the visible grid rows to plain cell text.
func buildTableRows(rows []model.Row, columns []motor.Column, renderers []CellRenderer, widths []int, expanded func(id string) bool) []table.Row {
	out := make([]table.Row, 0, len(rows))
	for _, row := range rows {
		out = append(out, formatGridRow(row, columns, renderers, widths, expanded))
	}
	return out
}

func formatGridRow(row model.Row, columns []motor.Column, renderers []CellRenderer, widths []int, expanded func(id string) bool) table.Row {
	cells := make(table.Row, len(columns))

	if row.IsBranch() {
		marker := branchCollapsedMarker
		if expanded != nil && expanded(row.ID) {
			marker = branchExpandedMarker
		}
		if len(cells) > 0 {
			cells[0] = truncateString(branchLabel(marker, row), widths[0])
		}
		return cells
	}

	for i, col := range columns {
		cells[i] = renderers[i](motor.ColumnField(col, row), widths[i])
	}
	return cells
}

func branchLabel(marker string, row model.Row) string {
	key := row.Key
	if key == "" {
		key = "(no data)"
	}
	return fmt.Sprintf("%s %s (%d)", marker, key, motor.LeafCount(row))
}
