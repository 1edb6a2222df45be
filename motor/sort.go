package motor

import (
	"sort"

	"github.com/pb33f/reqgrid/motor/model"
)

// SortKind selects how a column is compared.
type SortKind int

const (
	SortString SortKind = iota
	SortNumber
	SortDate
	SortCustom
)

func (k SortKind) String() string {
	switch k {
	case SortNumber:
		return "number"
	case SortDate:
		return "date"
	case SortCustom:
		return "custom"
	default:
		return "string"
	}
}

// SortModelItem is the sort applied to a single column.
type SortModelItem struct {
	ColumnID    string
	Kind        SortKind
	IncludeTime bool       // date sorts only
	Comparator  Comparator // custom sorts only
	Descending  bool
}

// NewSortItem builds the ascending sort for col: its custom comparator when one is
// registered, otherwise a comparator picked from the column type.
func NewSortItem(col Column) SortModelItem {
	if cmp, ok := CustomComparators()[col.ID]; ok {
		return SortModelItem{ColumnID: col.ID, Kind: SortCustom, Comparator: cmp}
	}

	switch col.Type {
	case TypeDateTime:
		return SortModelItem{ColumnID: col.ID, Kind: SortDate, IncludeTime: true}
	case TypeNumber:
		return SortModelItem{ColumnID: col.ID, Kind: SortNumber}
	default:
		return SortModelItem{ColumnID: col.ID, Kind: SortString}
	}
}

// SortForColumn finds the sort currently applied to a column.
func SortForColumn(sortModel []SortModelItem, columnID string) (SortModelItem, bool) {
	for _, item := range sortModel {
		if item.ColumnID == columnID {
			return item, true
		}
	}
	return SortModelItem{}, false
}

// ActivateHeader advances the sort model after a header activation on col.
// The same column cycles unsorted -> ascending -> descending -> unsorted.
// Any other column replaces the model with a single ascending sort.
func ActivateHeader(current []SortModelItem, col Column) []SortModelItem {
	item, ok := SortForColumn(current, col.ID)
	if !ok {
		return []SortModelItem{NewSortItem(col)}
	}

	if !item.Descending {
		item.Descending = true
		return []SortModelItem{item}
	}

	return nil
}

// comparatorFor resolves the comparator of a sort item against the declared columns.
func (item SortModelItem) comparatorFor(columns []Column) Comparator {
	if item.Kind == SortCustom && item.Comparator != nil {
		return item.Comparator
	}

	col, ok := FindColumn(columns, item.ColumnID)
	if !ok {
		return nil
	}

	switch item.Kind {
	case SortDate:
		return DateComparator(col, item.IncludeTime)
	case SortNumber:
		return NumberComparator(col)
	case SortCustom:
		// custom sort without a comparator falls back to the column type
		return NewSortItem(col).comparatorFor(columns)
	default:
		return StringComparator(col)
	}
}

// SortRows returns a sorted copy of rows. Sorting is stable, applies to the children of
// every branch, and leaves the input untouched. An empty model keeps source order.
func SortRows(rows []model.Row, sortModel []SortModelItem, columns []Column) []model.Row {
	type resolved struct {
		cmp  Comparator
		desc bool
	}

	var chain []resolved
	for _, item := range sortModel {
		if cmp := item.comparatorFor(columns); cmp != nil {
			chain = append(chain, resolved{cmp: cmp, desc: item.Descending})
		}
	}

	var sortLevel func(level []model.Row) []model.Row
	sortLevel = func(level []model.Row) []model.Row {
		out := make([]model.Row, len(level))
		copy(out, level)

		for i := range out {
			if out[i].IsBranch() && len(out[i].Children) > 0 {
				out[i].Children = sortLevel(out[i].Children)
			}
		}

		if len(chain) == 0 {
			return out
		}

		sort.SliceStable(out, func(i, j int) bool {
			for _, r := range chain {
				c := r.cmp(out[i], out[j])
				if r.desc {
					c = -c
				}
				if c != 0 {
					return c < 0
				}
			}
			return false
		})

		return out
	}

	return sortLevel(rows)
}
