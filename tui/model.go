package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/v2/spinner"
	"github.com/charmbracelet/bubbles/v2/table"
	"github.com/charmbracelet/bubbles/v2/viewport"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/pb33f/reqgrid/motor"
	"github.com/pb33f/reqgrid/motor/model"
)

// GridViewModel is the request grid: a sortable, optionally grouped table of
// requests with a detail panel for the selected row.
type GridViewModel struct {
	opts      motor.ViewerOptions
	dataset   *motor.Dataset
	columns   []motor.Column
	renderers []CellRenderer
	widths    []int

	sortModel []motor.SortModelItem
	groupKey  motor.GroupKey
	expanded  map[string]bool
	baseRows  []model.Row
	visible   []model.Row

	table         table.Model
	rows          []table.Row
	focusedColumn int

	detailOpen     bool
	detailRowID    string
	detailRecord   *model.Record
	detailViewport viewport.Model

	width    int
	height   int
	ready    bool
	quitting bool

	loadState      LoadState
	loadingSpinner spinner.Model
	loadTime       time.Duration

	err error
}

func NewGridViewModel(opts motor.ViewerOptions) *GridViewModel {
	columns := motor.DefaultColumns()

	m := &GridViewModel{
		opts:           opts,
		columns:        columns,
		renderers:      BindRenderers(columns),
		groupKey:       opts.GroupKey(),
		expanded:       make(map[string]bool),
		loadState:      LoadStateLoading,
		loadingSpinner: createLoadingSpinner(),
	}

	if col, ok := motor.FindColumn(columns, opts.InitialSort); ok {
		m.sortModel = []motor.SortModelItem{motor.NewSortItem(col)}
	}

	return m
}

// Err returns the error that stopped the dataset from loading, if any.
func (m *GridViewModel) Err() error {
	return m.err
}

func (m *GridViewModel) Init() tea.Cmd {
	return tea.Batch(
		m.loadingSpinner.Tick,
		m.loadDataset(),
	)
}

func (m *GridViewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var cmds []tea.Cmd

	if m.loadState == LoadStateLoading {
		m.loadingSpinner, cmd = m.loadingSpinner.Update(msg)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
	}

	switch msg := msg.(type) {
	case datasetLoadedMsg:
		m.setDataset(msg.dataset, msg.duration)
		return m, nil

	case datasetErrorMsg:
		m.loadState = LoadStateError
		m.err = msg.err
		return m, nil

	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyPressMsg:
		if handled, cmd := m.handleKey(msg.String()); handled {
			return m, cmd
		}
	}

	if m.loadState == LoadStateLoaded && m.ready {
		m.table, cmd = m.table.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m *GridViewModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.loadState {
	case LoadStateLoading:
		return m.renderLoadingView()
	case LoadStateError:
		return m.renderErrorView()
	case LoadStateLoaded:
		if !m.ready {
			return "Initializing..."
		}
		return m.render()
	default:
		return "Unknown state"
	}
}

// setDataset installs a loaded dataset. The table is built once the terminal size is known.
func (m *GridViewModel) setDataset(ds *motor.Dataset, loadTime time.Duration) {
	m.dataset = ds
	m.loadTime = loadTime
	m.loadState = LoadStateLoaded
	m.regroup()

	if m.width > 0 && m.height > 0 {
		m.initializeTable()
	}
}

func (m *GridViewModel) resize(width, height int) {
	m.width = width
	m.height = height

	if m.loadState != LoadStateLoaded {
		return
	}
	if !m.ready {
		m.initializeTable()
		return
	}
	m.updateDimensions()
	m.refreshTable()
}

// handleKey applies grid key bindings. Keys it does not claim fall through to
// the table for cursor movement.
func (m *GridViewModel) handleKey(key string) (bool, tea.Cmd) {
	switch key {
	case "q", "ctrl+c":
		m.quitting = true
		return true, tea.Quit
	}

	if m.loadState != LoadStateLoaded || !m.ready {
		return false, nil
	}

	switch key {
	case "left":
		m.moveFocus(-1)
		return true, nil

	case "right":
		m.moveFocus(1)
		return true, nil

	case "s":
		m.activateColumn(m.focusedColumn)
		return true, nil

	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		m.activateColumn(int(key[0] - '1'))
		return true, nil

	case "g":
		m.toggleGrouping()
		return true, nil

	case "enter":
		m.activateSelectedRow()
		return true, nil

	case "esc":
		if m.detailOpen {
			m.closeDetail()
		}
		return true, nil

	case "shift+up":
		if m.detailOpen {
			m.detailViewport.LineUp(1)
		}
		return true, nil

	case "shift+down":
		if m.detailOpen {
			m.detailViewport.LineDown(1)
		}
		return true, nil
	}

	return false, nil
}

func (m *GridViewModel) moveFocus(delta int) {
	m.focusedColumn = clamp(m.focusedColumn+delta, 0, len(m.columns)-1)
	m.table.SetColumns(buildTableColumns(m.columns, m.widths, m.sortModel, m.focusedColumn))
}

// activateColumn clicks the header of column i, cycling its sort direction.
func (m *GridViewModel) activateColumn(i int) {
	if i < 0 || i >= len(m.columns) {
		return
	}
	m.focusedColumn = i
	m.sortModel = motor.ActivateHeader(m.sortModel, m.columns[i])
	m.refreshTable()
}

func (m *GridViewModel) toggleGrouping() {
	if m.groupKey != nil {
		m.groupKey = nil
	} else if key := m.opts.GroupKey(); key != nil {
		m.groupKey = key
	} else {
		m.groupKey = motor.GroupByRegion
	}
	m.regroup()
	m.refreshTable()
}

// activateSelectedRow expands or collapses a branch, or toggles the detail
// panel of a request.
func (m *GridViewModel) activateSelectedRow() {
	row, ok := m.selectedRow()
	if !ok {
		return
	}

	if row.IsBranch() {
		m.expanded[row.ID] = !m.expanded[row.ID]
		m.refreshTable()
		return
	}

	if !row.HasData() {
		return
	}

	if m.detailOpen && m.detailRowID == row.ID {
		m.closeDetail()
		return
	}
	m.openDetail(row)
}

func (m *GridViewModel) openDetail(row model.Row) {
	m.detailOpen = true
	m.detailRowID = row.ID
	m.detailRecord = row.Data
	m.updateDimensions()
	m.updateDetailContent()
}

func (m *GridViewModel) closeDetail() {
	m.detailOpen = false
	m.detailRowID = ""
	m.detailRecord = nil
	m.updateDimensions()
}

func (m *GridViewModel) regroup() {
	if m.dataset == nil {
		return
	}
	rows := m.dataset.Rows()
	if m.groupKey != nil {
		rows = motor.GroupRows(rows, m.groupKey)
	}
	m.baseRows = rows
}

func (m *GridViewModel) isExpanded(id string) bool {
	return m.expanded[id]
}

// rebuild derives the visible rows: sort the base rows, then flatten the open branches.
func (m *GridViewModel) rebuild() {
	sorted := motor.SortRows(m.baseRows, m.sortModel, m.columns)
	m.visible = motor.Flatten(sorted, m.isExpanded)
	m.rows = buildTableRows(m.visible, m.columns, m.renderers, m.widths, m.isExpanded)
}

func (m *GridViewModel) initializeTable() {
	m.widths = layoutColumns(m.columns, m.width)
	m.rebuild()

	m.table = table.New(
		table.WithColumns(buildTableColumns(m.columns, m.widths, m.sortModel, m.focusedColumn)),
		table.WithRows(m.rows),
		table.WithFocused(true),
		table.WithHeight(m.tableHeight()),
		table.WithWidth(m.width),
	)
	m.table = ApplyTableStyles(m.table)
	m.ready = true
}

// refreshTable re-derives rows and headers, keeping the cursor on the same row.
func (m *GridViewModel) refreshTable() {
	if !m.ready {
		return
	}

	selectedID := ""
	if row, ok := m.selectedRow(); ok {
		selectedID = row.ID
	}

	m.widths = layoutColumns(m.columns, m.width)
	m.rebuild()
	m.table.SetRows(m.rows)
	m.table.SetColumns(buildTableColumns(m.columns, m.widths, m.sortModel, m.focusedColumn))

	cursor := 0
	for i, row := range m.visible {
		if row.ID == selectedID {
			cursor = i
			break
		}
	}
	m.table.SetCursor(cursor)

	if m.detailOpen {
		m.updateDetailContent()
	}
}

func (m *GridViewModel) selectedRow() (model.Row, bool) {
	cursor := m.table.Cursor()
	if cursor < 0 || cursor >= len(m.visible) {
		return model.Row{}, false
	}
	return m.visible[cursor], true
}

func (m *GridViewModel) detailHeight() int {
	return max(minDetailHeight, int(float64(m.height)*detailHeightRatio))
}

func (m *GridViewModel) tableHeight() int {
	h := m.height - tableVerticalPadding
	if m.detailOpen {
		h -= m.detailHeight() + borderPadding
	}
	return max(h, 3)
}

func (m *GridViewModel) updateDimensions() {
	if !m.ready {
		return
	}
	m.table.SetHeight(m.tableHeight())
	m.table.SetWidth(m.width)

	if !m.detailOpen {
		return
	}

	detailWidth := m.width - borderPadding
	if m.detailViewport.Width() == 0 {
		m.detailViewport = viewport.New(viewport.WithWidth(detailWidth), viewport.WithHeight(m.detailHeight()))
	} else {
		m.detailViewport.SetWidth(detailWidth)
		m.detailViewport.SetHeight(m.detailHeight())
	}
}

func (m *GridViewModel) updateDetailContent() {
	if m.detailRecord == nil {
		return
	}
	m.detailViewport.SetContent(renderDetail(m.detailRecord, m.detailViewport.Width()))
}
