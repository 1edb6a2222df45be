package model

// RowKind discriminates the rows a grid can display.
type RowKind int

const (
	// RowLeaf is bound to one Record (which may still be absent).
	RowLeaf RowKind = iota
	// RowBranch is a grouping boundary and carries no Record.
	RowBranch
	// RowFullWidth spans every column; it may carry a Record.
	RowFullWidth
)

func (k RowKind) String() string {
	switch k {
	case RowLeaf:
		return "leaf"
	case RowBranch:
		return "branch"
	case RowFullWidth:
		return "full-width"
	default:
		return "unknown"
	}
}

// Row is a single grid row.
type Row struct {
	ID   string
	Kind RowKind

	// Data is set for leaf and full-width rows, nil for branches.
	Data *Record

	// Key is the group key of a branch row.
	Key string

	// Children of a branch row.
	Children []Row
}

// LeafRow creates a row bound to rec.
func LeafRow(id string, rec *Record) Row {
	return Row{ID: id, Kind: RowLeaf, Data: rec}
}

// BranchRow creates a grouping row.
func BranchRow(id, key string, children []Row) Row {
	return Row{ID: id, Kind: RowBranch, Key: key, Children: children}
}

// FullWidthRow creates a row spanning every column.
func FullWidthRow(id string, rec *Record) Row {
	return Row{ID: id, Kind: RowFullWidth, Data: rec}
}

func (r Row) IsLeaf() bool {
	return r.Kind == RowLeaf
}

func (r Row) IsBranch() bool {
	return r.Kind == RowBranch
}

// HasData reports whether the row carries a record.
func (r Row) HasData() bool {
	return r.Kind != RowBranch && r.Data != nil
}
