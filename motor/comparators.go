package motor

import (
	"sync"
	"time"

	"github.com/pb33f/reqgrid/motor/model"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Comparator is a three-way ordering of two grid rows.
type Comparator func(left, right model.Row) int

// RecordComparator orders two records that are both present.
type RecordComparator func(left, right *model.Record) int

// withRowRules applies the grid ordering rules before cmp sees any record:
// branches sort before everything else and compare equal to each other,
// then rows without data sort after rows that have it.
func withRowRules(cmp RecordComparator) Comparator {
	return func(left, right model.Row) int {
		if left.IsBranch() || right.IsBranch() {
			switch {
			case left.IsBranch() && right.IsBranch():
				return 0
			case left.IsBranch():
				return -1
			default:
				return 1
			}
		}

		if left.Data == nil || right.Data == nil {
			if left.Data == nil && right.Data == nil {
				return 0
			}
			if left.Data == nil {
				return 1
			}
			return -1
		}

		return cmp(left.Data, right.Data)
	}
}

// localeCollator serialises access to a collator, which keeps internal buffers.
type localeCollator struct {
	mu sync.Mutex
	c  *collate.Collator
}

func newLocaleCollator(tag language.Tag) *localeCollator {
	return &localeCollator{c: collate.New(tag)}
}

func (lc *localeCollator) compare(a, b string) int {
	lc.mu.Lock()
	defer lc.mu.Unlock()
	return lc.c.CompareString(a, b)
}

var defaultCollator = newLocaleCollator(language.English)

// NewRegionComparator orders rows by region display name using the collation rules of tag.
func NewRegionComparator(tag language.Tag) Comparator {
	lc := newLocaleCollator(tag)
	return withRowRules(func(left, right *model.Record) int {
		return lc.compare(left.Region.Full, right.Region.Full)
	})
}

// CompareRegion orders rows by region display name (never the short code).
var CompareRegion Comparator = withRowRules(func(left, right *model.Record) int {
	return defaultCollator.compare(left.Region.Full, right.Region.Full)
})

// CompareTimingPhase orders the timing phase column by overall latency.
var CompareTimingPhase Comparator = withRowRules(func(left, right *model.Record) int {
	return compareFloat(left.Latency, right.Latency)
})

// CustomComparators returns the comparators that replace the type-based defaults, keyed by column id.
func CustomComparators() map[string]Comparator {
	return map[string]Comparator{
		ColumnRegion:      CompareRegion,
		ColumnTimingPhase: CompareTimingPhase,
	}
}

// DateComparator orders a datetime column. Without includeTime only the calendar date counts.
func DateComparator(col Column, includeTime bool) Comparator {
	return fieldComparator(col, func(a, b any) (int, bool) {
		at, ok1 := a.(time.Time)
		bt, ok2 := b.(time.Time)
		if !ok1 || !ok2 {
			return 0, false
		}
		if !includeTime {
			at = truncateToDate(at)
			bt = truncateToDate(bt)
		}
		return at.Compare(bt), true
	})
}

// NumberComparator orders a numeric column.
func NumberComparator(col Column) Comparator {
	return fieldComparator(col, func(a, b any) (int, bool) {
		af, ok1 := toFloat(a)
		bf, ok2 := toFloat(b)
		if !ok1 || !ok2 {
			return 0, false
		}
		return compareFloat(af, bf), true
	})
}

// StringComparator orders a column by its string value, with English collation.
func StringComparator(col Column) Comparator {
	return fieldComparator(col, func(a, b any) (int, bool) {
		as, ok1 := toString(a)
		bs, ok2 := toString(b)
		if !ok1 || !ok2 {
			return 0, false
		}
		return defaultCollator.compare(as, bs), true
	})
}

// fieldComparator reads col from both rows. A value of the wrong type counts as missing data.
func fieldComparator(col Column, cmp func(a, b any) (int, bool)) Comparator {
	return withRowRules(func(left, right *model.Record) int {
		if col.Field == nil {
			return 0
		}

		a := col.Field(left)
		b := col.Field(right)
		if result, ok := cmp(a, b); ok {
			return result
		}

		_, leftOK := cmp(a, a)
		_, rightOK := cmp(b, b)
		switch {
		case leftOK == rightOK:
			return 0
		case !leftOK:
			return 1
		default:
			return -1
		}
	})
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	default:
		return 0, false
	}
}

func toString(v any) (string, bool) {
	switch s := v.(type) {
	case string:
		return s, true
	case interface{ String() string }:
		return s.String(), true
	default:
		return "", false
	}
}
