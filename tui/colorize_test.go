package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/v2/table"
	"github.com/pb33f/reqgrid/motor"
	"github.com/stretchr/testify/assert"
)

func TestColorizeHTTPMethods(t *testing.T) {
	tests := []struct {
		method   string
		rendered string
	}{
		{"GET", renderedGET},
		{"POST", renderedPOST},
		{"PUT", renderedPUT},
		{"PATCH", renderedPATCH},
		{"DELETE", renderedDELETE},
	}

	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			line := colorizeHTTPMethods(" 200  " + tt.method + "  /api ")
			assert.Contains(t, line, tt.rendered)
		})
	}

	assert.Equal(t, " HEAD /", colorizeHTTPMethods(" HEAD /"))
	assert.Equal(t, StyleMethodBlue.Render("GET"), renderedGET)
	assert.Equal(t, StyleMethodYellow.Render("POST"), renderedPOST)
	assert.Equal(t, StyleMethodRed.Render("DELETE"), renderedDELETE)
}

func TestColorizeStatusCodes(t *testing.T) {
	assert.Equal(t, " "+StyleStatusOK.Render("204")+" GET", colorizeStatusCodes(" 204 GET"))
	assert.Equal(t, " "+StyleStatus4xx.Render("429")+" GET", colorizeStatusCodes(" 429 GET"))
	assert.Equal(t, " "+StyleStatus5xx.Render("503")+" GET", colorizeStatusCodes(" 503 GET"))

	// years and ids are not statuses
	assert.Equal(t, "Aug 01, 2025 10:12:04", colorizeStatusCodes("Aug 01, 2025 10:12:04"))
	assert.Equal(t, " /api/orders/513 ", colorizeStatusCodes(" /api/orders/513 "))
}

func TestColorizeLatency(t *testing.T) {
	assert.Equal(t, "a "+StyleLatencyFaint.Render("1,234ms")+" b", colorizeLatency("a 1,234ms b"))
	assert.Equal(t, StyleLatencyFaint.Render("51ms"), colorizeLatency("51ms"))
	assert.Equal(t, " /api/ms ", colorizeLatency(" /api/ms "))

	assert.True(t, isLatency("51ms"))
	assert.True(t, isLatency("1,234ms"))
	assert.False(t, isLatency("ms"))
	assert.False(t, isLatency(",5ms"))
	assert.False(t, isLatency("5s"))
	assert.False(t, isLatency("5x6ms"))
}

func TestColorizeTimingGlyphs(t *testing.T) {
	transfer := string(PhaseGlyph(motor.PhaseTransfer))
	conn := string(PhaseGlyph(motor.PhaseConnection))

	line := " " + transfer + transfer + conn + " "
	expected := " " + PhaseStyle(motor.PhaseTransfer).Render(transfer+transfer) +
		PhaseStyle(motor.PhaseConnection).Render(conn) + " "
	assert.Equal(t, expected, colorizeTimingGlyphs(line))

	assert.Equal(t, "plain", colorizeTimingGlyphs("plain"))
}

func TestColorizeGridOutput_SkipsHeaderAndSelection(t *testing.T) {
	columns := []table.Column{
		{Title: "Date", Width: 22},
		{Title: "Status", Width: 8},
		{Title: "Method", Width: 8},
		{Title: "Latency", Width: 10},
	}

	rows := []table.Row{
		{"Aug 01, 2025 10:12:04", "200", "GET", "51ms"},
		{"Aug 02, 2025 11:00:00", "404", "GET", "62ms"},
		{"Aug 03, 2025 12:30:00", "503", "GET", "90ms"},
	}

	tbl := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(10),
		table.WithWidth(60),
	)
	tbl = ApplyTableStyles(tbl)
	tbl.SetCursor(1)

	colorized := ColorizeGridOutput(tbl.View(), 1, rows)
	lines := strings.Split(colorized, "\n")

	colorizedGET := 0
	for _, line := range lines {
		if strings.Contains(line, renderedGET) {
			colorizedGET++
			assert.NotContains(t, line, "Aug 02, 2025 11:00:00", "selected row must stay untouched")
		}
	}
	assert.Equal(t, 2, colorizedGET)

	assert.Contains(t, colorized, StyleStatus5xx.Render("503"))
	assert.NotContains(t, lines[0], renderedGET)
}

func TestColorizeGridOutput_NoCursor(t *testing.T) {
	view := "Date\n----\n 200  GET  51ms "
	out := ColorizeGridOutput(view, -1, nil)
	assert.Contains(t, out, renderedGET)
	assert.Contains(t, out, StyleStatusOK.Render("200"))
}
