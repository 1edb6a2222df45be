package tui

import (
	"github.com/charmbracelet/bubbles/v2/table"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/pb33f/reqgrid/motor"
)

var (
	RGBBlue       = lipgloss.Color("45")
	RGBPink       = lipgloss.Color("201")
	RGBRed        = lipgloss.Color("196")
	RGBYellow     = lipgloss.Color("220")
	RGBGreen      = lipgloss.Color("46")
	RGBGrey       = lipgloss.Color("246")
	RGBPurple     = lipgloss.Color("141")
	RGBOrange     = lipgloss.Color("214")
	RGBSubtlePink = lipgloss.Color("#2a1a2a")
)

// General styles
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(RGBPink)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(RGBGrey)

	HelpStyle = lipgloss.NewStyle().
			Foreground(RGBGrey)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(RGBRed).
			Bold(true)
)

// Table colorization styles for methods, status codes and latency
var (
	StyleMethodBlue   = lipgloss.NewStyle().Foreground(RGBBlue)   // GET
	StyleMethodYellow = lipgloss.NewStyle().Foreground(RGBYellow) // PATCH, PUT, POST
	StyleMethodRed    = lipgloss.NewStyle().Foreground(RGBRed)    // DELETE

	StyleStatusOK  = lipgloss.NewStyle().Foreground(RGBBlue)
	StyleStatus4xx = lipgloss.NewStyle().Foreground(RGBYellow)
	StyleStatus5xx = lipgloss.NewStyle().Foreground(RGBRed)

	StyleLatencyFaint = lipgloss.NewStyle().Faint(true)

	StyleBranch = lipgloss.NewStyle().Bold(true).Foreground(RGBPink)
)

// phase identity: a glyph that survives without colour, and its colour
var (
	phaseGlyphs = [motor.PhaseCount]rune{
		motor.PhaseTransfer:   '█',
		motor.PhaseDNS:        '▓',
		motor.PhaseConnection: '▒',
		motor.PhaseTTFB:       '░',
		motor.PhaseTLS:        '▚',
	}

	phaseStyles = [motor.PhaseCount]lipgloss.Style{
		motor.PhaseTransfer:   lipgloss.NewStyle().Foreground(RGBBlue),
		motor.PhaseDNS:        lipgloss.NewStyle().Foreground(RGBGreen),
		motor.PhaseConnection: lipgloss.NewStyle().Foreground(RGBOrange),
		motor.PhaseTTFB:       lipgloss.NewStyle().Foreground(RGBPurple),
		motor.PhaseTLS:        lipgloss.NewStyle().Foreground(RGBPink),
	}
)

// PhaseGlyph returns the glyph that draws p in bars and pies.
func PhaseGlyph(p motor.Phase) rune {
	if p < 0 || int(p) >= motor.PhaseCount {
		return ' '
	}
	return phaseGlyphs[p]
}

// PhaseStyle returns the colour style of p.
func PhaseStyle(p motor.Phase) lipgloss.Style {
	if p < 0 || int(p) >= motor.PhaseCount {
		return lipgloss.NewStyle()
	}
	return phaseStyles[p]
}

func phaseForGlyph(r rune) (motor.Phase, bool) {
	for i, g := range phaseGlyphs {
		if g == r {
			return motor.Phase(i), true
		}
	}
	return 0, false
}

// ApplyTableStyles applies the grid theme
func ApplyTableStyles(t table.Model) table.Model {
	s := table.DefaultStyles()

	s.Header = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(RGBPink).
		BorderBottom(true).
		BorderLeft(false).
		BorderRight(false).
		BorderTop(false).
		Foreground(RGBPink).
		Bold(true).
		Padding(0, 1)

	s.Selected = lipgloss.NewStyle().
		Bold(true).
		Foreground(RGBPink).
		Background(RGBSubtlePink).
		Padding(0, 0)

	s.Cell = lipgloss.NewStyle().
		Padding(0, 1)

	t.SetStyles(s)
	return t
}
