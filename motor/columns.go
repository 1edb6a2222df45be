package motor

import (
	"github.com/pb33f/reqgrid/motor/model"
)

// ColumnType is the semantic type tag of a column. It selects the default comparator.
type ColumnType int

const (
	TypeDefault ColumnType = iota
	TypeDateTime
	TypeNumber
)

func (ct ColumnType) String() string {
	switch ct {
	case TypeDateTime:
		return "datetime"
	case TypeNumber:
		return "number"
	default:
		return "string"
	}
}

// Column ids of the request grid.
const (
	ColumnDate        = "Date"
	ColumnStatus      = "Status"
	ColumnMethod      = "Method"
	ColumnTimingPhase = "timing-phase"
	ColumnPathname    = "Pathname"
	ColumnLatency     = "Latency"
	ColumnRegion      = "region"
)

// FieldFunc reads a column's value out of a record.
type FieldFunc func(rec *model.Record) any

// Column declares one grid column.
type Column struct {
	ID    string
	Name  string
	Type  ColumnType
	Width int // 0 lets the view size the column
	Field FieldFunc
}

// Title returns the display name, falling back to the id.
func (c Column) Title() string {
	if c.Name != "" {
		return c.Name
	}
	return c.ID
}

// DefaultColumns declares the request grid columns.
func DefaultColumns() []Column {
	return []Column{
		{
			ID:    ColumnDate,
			Name:  "Date",
			Type:  TypeDateTime,
			Width: 22,
			Field: func(rec *model.Record) any { return rec.Timestamp.Time },
		},
		{
			ID:    ColumnStatus,
			Name:  "Status",
			Width: 8,
			Field: func(rec *model.Record) any { return rec.Status },
		},
		{
			ID:    ColumnMethod,
			Name:  "Method",
			Width: 8,
			Field: func(rec *model.Record) any { return rec.Method },
		},
		{
			ID:    ColumnTimingPhase,
			Name:  "Timing Phase",
			Field: func(rec *model.Record) any { return rec.Timing },
		},
		{
			ID:    ColumnPathname,
			Name:  "Pathname",
			Field: func(rec *model.Record) any { return rec.Path },
		},
		{
			ID:    ColumnLatency,
			Name:  "Latency",
			Type:  TypeNumber,
			Width: 10,
			Field: func(rec *model.Record) any { return rec.Latency },
		},
		{
			ID:    ColumnRegion,
			Name:  "Region",
			Field: func(rec *model.Record) any { return rec.Region },
		},
	}
}

// ColumnField reads col's value for row. Branch rows, rows without data and
// columns without an accessor yield nil.
func ColumnField(col Column, row model.Row) any {
	if !row.HasData() || col.Field == nil {
		return nil
	}
	return col.Field(row.Data)
}

// FindColumn looks a column up by id.
func FindColumn(columns []Column, id string) (Column, bool) {
	for _, c := range columns {
		if c.ID == id {
			return c, true
		}
	}
	return Column{}, false
}
