package tui

const (
	tableVerticalPadding = 4
	borderPadding        = 2
	cellPadding          = 2 // table cells pad one space either side

	minPathColumnWidth   = 16
	maxPathColumnWidth   = 60
	minTimingColumnWidth = 10
	maxTimingColumnWidth = 30
	regionColumnWidth    = 22

	// detail panel
	detailHeightRatio  = 0.45
	minDetailHeight    = 12
	pieRadius          = 6
	maxPhaseBarWidth   = 24
	detailLabelWidth   = 12
	detailPercentWidth = 8
	detailValueWidth   = 8

	branchCollapsedMarker = "▸"
	branchExpandedMarker  = "▾"
	sortAscendingArrow    = "↑"
	sortDescendingArrow   = "↓"
)
