package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/pb33f/reqgrid/motor"
)

func (m *GridViewModel) render() string {
	var builder strings.Builder

	builder.WriteString(m.renderTitle())
	builder.WriteString("\n")

	// post-process the table to add colour, the cells themselves stay plain text
	builder.WriteString(ColorizeGridOutput(m.table.View(), m.table.Cursor(), m.rows))
	builder.WriteString("\n")

	if m.detailOpen {
		builder.WriteString(m.renderDetailPanel())
		builder.WriteString("\n")
	}

	builder.WriteString(m.renderStatusBar())
	return builder.String()
}

func (m *GridViewModel) renderTitle() string {
	titleStyle := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		Padding(0, 1).
		Width(m.width).
		BorderForeground(RGBBlue).
		BorderTop(false).
		BorderLeft(false).
		BorderRight(false).
		BorderBottom(true)

	titleText := lipgloss.NewStyle().
		Bold(true).
		Render(fmt.Sprintf("reqgrid: %s | ", m.dataset.Name))

	count := fmt.Sprintf("(%d requests", m.dataset.Len())
	if m.loadTime > 0 {
		count += fmt.Sprintf(", loaded in %v", m.loadTime.Round(time.Millisecond))
	}
	count += ")"

	if desc := m.sortDescription(); desc != "" {
		count += " | " + desc
	}
	if m.groupKey != nil {
		count += " | grouped"
	}

	return titleStyle.Render(titleText + lipgloss.NewStyle().Faint(true).Render(count))
}

func (m *GridViewModel) sortDescription() string {
	if len(m.sortModel) == 0 {
		return ""
	}

	item := m.sortModel[0]
	col, ok := motor.FindColumn(m.columns, item.ColumnID)
	if !ok {
		return ""
	}

	direction := "ascending"
	if item.Descending {
		direction = "descending"
	}
	return fmt.Sprintf("sorted by %s, %s", col.Title(), direction)
}

func (m *GridViewModel) renderDetailPanel() string {
	panelStyle := lipgloss.NewStyle().
		Width(m.width - borderPadding).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(RGBBlue)

	return panelStyle.Render(m.detailViewport.View())
}

func (m *GridViewModel) renderStatusBar() string {
	parts := []string{
		"↑/↓: Navigate",
		"←/→: Column",
		"s/1-7: Sort",
	}

	if m.detailOpen {
		parts = append(parts, "Shift+↑/↓: Scroll Details", "Esc: Close Details")
	} else {
		parts = append(parts, "Enter: Details")
	}

	if m.groupKey != nil {
		parts = append(parts, "g: Ungroup")
	} else {
		parts = append(parts, "g: Group")
	}

	parts = append(parts, "q: Quit")

	if len(m.visible) > 0 {
		parts = append(parts, fmt.Sprintf("Row %d/%d", m.table.Cursor()+1, len(m.visible)))
	}

	return lipgloss.NewStyle().Faint(true).Render(strings.Join(parts, " | "))
}
