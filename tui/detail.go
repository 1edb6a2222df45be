package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/pb33f/reqgrid/motor"
	"github.com/pb33f/reqgrid/motor/model"
)

const (
	pieStartDegrees = 180
	pieEndDegrees   = 0
)

var (
	detailTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(RGBGrey)

	phaseLabelStyle = lipgloss.NewStyle().Width(detailLabelWidth)

	noTimingText = lipgloss.NewStyle().Faint(true).Render("no timing recorded")
)

// renderDetail draws the detail panel of a request: its summary, the timing
// phase table and a half-pie of the phases side by side.
func renderDetail(rec *model.Record, width int) string {
	if rec == nil {
		return ""
	}

	b := motor.ComputeBreakdown(rec.Timing)

	pie := renderHalfPie(b, pieRadius)
	pieWidth := 4*pieRadius + 1
	leftWidth := width - pieWidth - 4
	if leftWidth < 30 {
		leftWidth = 30
	}

	summary := renderSections(buildRequestSections(rec), RenderOptions{
		Width:    leftWidth,
		Truncate: true,
		KeyWidth: detailLabelWidth - 2,
	})

	var left strings.Builder
	left.WriteString(summary)
	left.WriteString("\n")
	left.WriteString(detailTitleStyle.Render("Timing Phases"))
	left.WriteString("\n")
	left.WriteString(renderPhaseRows(b))

	var right string
	if b.Total == 0 {
		right = noTimingText
	} else {
		lines := make([]string, len(pie))
		for i, line := range pie {
			lines[i] = colorizeTimingGlyphs(line)
		}
		right = strings.Join(lines, "\n")
	}

	return lipgloss.JoinHorizontal(lipgloss.Bottom,
		lipgloss.NewStyle().Width(leftWidth).Render(left.String()),
		"    ",
		right,
	)
}

// renderPhaseRows lists each phase with its share, its duration and a bar
// proportional to the duration.
func renderPhaseRows(b motor.Breakdown) string {
	var longest float64
	for _, s := range b.Shares {
		longest = math.Max(longest, s.Value)
	}

	var out strings.Builder
	for _, s := range b.Shares {
		out.WriteString(phaseLabelStyle.Render(s.Phase.Label()))
		out.WriteString(fmt.Sprintf("%*s", detailPercentWidth, fmt.Sprintf("%.2f%%", s.Percent)))
		out.WriteString(fmt.Sprintf("%*s", detailValueWidth, FormatMilliseconds(s.Value)))
		out.WriteString("  ")

		bar := strings.Repeat(string(PhaseGlyph(s.Phase)), phaseBarCells(s.Value, longest))
		out.WriteString(PhaseStyle(s.Phase).Render(bar))
		out.WriteString("\n")
	}
	return out.String()
}

// phaseBarCells scales value against the longest phase. Any time at all gets a cell.
func phaseBarCells(value, longest float64) int {
	if value <= 0 || longest <= 0 {
		return 0
	}
	return max(1, int(math.Round(value/longest*maxPhaseBarWidth)))
}

// renderHalfPie rasterises the phases as a half disc sweeping from the left
// (180°) to the right (0°), one glyph per cell. Cells are twice as tall as
// they are wide, so the disc is 4r+1 cells across and r+1 lines high.
// The bottom line is the diameter.
func renderHalfPie(b motor.Breakdown, radius int) []string {
	arcs := b.Arcs(pieStartDegrees, pieEndDegrees)
	lines := make([]string, 0, radius+1)

	for y := radius; y >= 0; y-- {
		var line strings.Builder
		for x := -2 * radius; x <= 2*radius; x++ {
			dx := float64(x) / 2
			dy := float64(y)
			if math.Hypot(dx, dy) > float64(radius)+0.5 {
				line.WriteRune(' ')
				continue
			}
			line.WriteRune(arcGlyph(arcs, math.Atan2(dy, dx)*180/math.Pi))
		}
		lines = append(lines, line.String())
	}

	return lines
}

func arcGlyph(arcs []motor.Arc, deg float64) rune {
	for _, arc := range arcs {
		if arc.Contains(deg) {
			return PhaseGlyph(arc.Phase)
		}
	}
	return ' '
}
