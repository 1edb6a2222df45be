package motor

import (
	"github.com/pb33f/reqgrid/motor/model"
)

// GroupKey extracts the grouping key of a record.
type GroupKey func(rec *model.Record) string

// GroupByRegion groups requests by region display name.
func GroupByRegion(rec *model.Record) string {
	return rec.Region.Full
}

// GroupByMethod groups requests by HTTP method.
func GroupByMethod(rec *model.Record) string {
	return rec.Method
}

const branchIDPrefix = "group:"

// GroupRows wraps rows in one branch per key, in first-seen key order.
// Rows without data are collected under an empty key at the end.
func GroupRows(rows []model.Row, key GroupKey) []model.Row {
	order := make([]string, 0)
	groups := make(map[string][]model.Row)
	var orphans []model.Row

	for _, row := range rows {
		if !row.HasData() {
			orphans = append(orphans, row)
			continue
		}

		k := key(row.Data)
		if _, seen := groups[k]; !seen {
			order = append(order, k)
		}
		groups[k] = append(groups[k], row)
	}

	out := make([]model.Row, 0, len(order)+1)
	for _, k := range order {
		out = append(out, model.BranchRow(branchIDPrefix+k, k, groups[k]))
	}
	if len(orphans) > 0 {
		out = append(out, model.BranchRow(branchIDPrefix, "", orphans))
	}

	return out
}

// Flatten lists the rows the grid shows: every top-level row, plus the children
// of branches that expanded reports as open.
func Flatten(rows []model.Row, expanded func(id string) bool) []model.Row {
	out := make([]model.Row, 0, len(rows))

	var walk func(level []model.Row)
	walk = func(level []model.Row) {
		for _, row := range level {
			out = append(out, row)
			if row.IsBranch() && expanded != nil && expanded(row.ID) {
				walk(row.Children)
			}
		}
	}
	walk(rows)

	return out
}

// LeafCount counts the leaf rows under a row, itself included.
func LeafCount(row model.Row) int {
	if !row.IsBranch() {
		return 1
	}

	n := 0
	for _, child := range row.Children {
		n += LeafCount(child)
	}
	return n
}
