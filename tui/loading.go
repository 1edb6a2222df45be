package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/v2/spinner"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/pb33f/reqgrid/motor"
)

type LoadState int

const (
	LoadStateLoading LoadState = iota
	LoadStateLoaded
	LoadStateError
)

type datasetLoadedMsg struct {
	dataset  *motor.Dataset
	duration time.Duration
}

type datasetErrorMsg struct {
	err error
}

// loadDataset reads the configured source off the update loop and hands the
// finished, immutable dataset back as a message.
func (m *GridViewModel) loadDataset() tea.Cmd {
	src := m.opts.Source()
	return func() tea.Msg {
		start := time.Now()

		ds, err := motor.LoadDataset(context.Background(), src)
		if err != nil {
			return datasetErrorMsg{err: err}
		}

		return datasetLoadedMsg{
			dataset:  ds,
			duration: time.Since(start),
		}
	}
}

func (m *GridViewModel) renderLoadingView() string {
	spinnerStyle := lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center)

	title := TitleStyle.Render("Loading requests")
	sourceInfo := SubtitleStyle.Render(fmt.Sprintf("\n%s", m.opts.Source().Name()))

	return spinnerStyle.Render(fmt.Sprintf("%s %s%s", m.loadingSpinner.View(), title, sourceInfo))
}

func (m *GridViewModel) renderErrorView() string {
	errorStyle := lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(RGBRed).
		Bold(true)

	errorMsg := fmt.Sprintf("❌ Error loading requests\n\n%v\n\nPress 'q' to quit", m.err)
	return errorStyle.Render(errorMsg)
}

func createLoadingSpinner() spinner.Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(RGBPink)
	return s
}
