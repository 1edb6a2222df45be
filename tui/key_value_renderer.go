package tui

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/pb33f/reqgrid/motor/model"
)

// pre-computed styles, shared by every detail render
var (
	keyStyleBase = lipgloss.NewStyle().
		Foreground(RGBGrey).
		Align(lipgloss.Right)

	sectionHeaderStyleBase = lipgloss.NewStyle().
		Bold(true).
		Foreground(RGBPink)

	emptyValueText = lipgloss.NewStyle().Faint(true).Render("(empty)")
)

// KeyValuePair represents a single key-value pair
type KeyValuePair struct {
	Key   string
	Value string
}

// Section represents a grouped section of key-value pairs
type Section struct {
	Title string
	Pairs []KeyValuePair
}

// RenderOptions configures key-value rendering
type RenderOptions struct {
	Width    int  // total available width
	Truncate bool // whether to truncate long values
	KeyWidth int  // key column width (0 = auto-calculate)
}

// renderSections renders multiple sections as formatted key-value output
func renderSections(sections []Section, opts RenderOptions) string {
	if len(sections) == 0 {
		return ""
	}

	// calculate column widths
	keyWidth := opts.KeyWidth
	if keyWidth == 0 {
		keyWidth = opts.Width * 3 / 10 // 30% for keys
		if keyWidth > 25 {
			keyWidth = 25 // cap at 25 chars
		}
		if keyWidth < 15 {
			keyWidth = 15 // minimum 15 chars
		}
	}
	valueWidth := opts.Width - keyWidth - 3 // -3 for spacing

	var output strings.Builder

	for i, section := range sections {
		// section header
		if section.Title != "" {
			output.WriteString(renderSectionHeader(section.Title, opts.Width))
			output.WriteString("\n")
		}

		// render pairs
		for _, pair := range section.Pairs {
			row := renderKeyValueRow(pair, keyWidth, valueWidth, opts.Truncate)
			output.WriteString(row)
			output.WriteString("\n")
		}

		// add spacing between sections (except after last)
		if i < len(sections)-1 {
			output.WriteString("\n")
		}
	}

	return output.String()
}

// renderSectionHeader renders a section title
func renderSectionHeader(title string, width int) string {
	return sectionHeaderStyleBase.Width(width).Render(title)
}

// renderKeyValueRow renders a single key-value pair
func renderKeyValueRow(pair KeyValuePair, keyWidth, valueWidth int, truncate bool) string {
	keyStyle := keyStyleBase.Width(keyWidth)

	value := pair.Value
	if value == "" {
		value = emptyValueText
	} else if truncate && valueWidth > 3 {
		value = truncateString(value, valueWidth)
	}

	return keyStyle.Render(pair.Key) + "  " + value
}

// buildRequestSections describes a request record as key-value sections
func buildRequestSections(rec *model.Record) []Section {
	return []Section{
		{
			Title: "Request",
			Pairs: []KeyValuePair{
				{"Date", rec.Timestamp.Format(DateLayout)},
				{"Method", rec.Method},
				{"Path", rec.Path},
				{"Status", strings.TrimSpace(fmt.Sprintf("%d %s", rec.Status, http.StatusText(rec.Status)))},
				{"Region", rec.Region.String()},
				{"Latency", FormatMilliseconds(rec.Latency)},
			},
		},
	}
}
