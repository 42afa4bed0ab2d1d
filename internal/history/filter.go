package history

import (
	"time"

	"github.com/samber/lo"

	"github.com/arthadash/artha/internal/domain"
)

// Filter returns the items whose dates fall inside the window, preserving
// the input (ascending chronological) order.
func Filter(items []domain.HistoryItem, w Window) []domain.HistoryItem {
	if w.All() {
		return items
	}
	return lo.Filter(items, func(it domain.HistoryItem, _ int) bool {
		return w.Contains(it.Date)
	})
}

// ReferenceDate returns the most recent date among the items, falling back
// to now when there is no history yet.
func ReferenceDate(items []domain.HistoryItem, now time.Time) time.Time {
	ref := time.Time{}
	for _, it := range items {
		if it.Date.After(ref) {
			ref = it.Date
		}
	}
	if ref.IsZero() {
		return now
	}
	return ref
}

// DisplayDate renders a history date in the short dashboard form, e.g.
// "Mar 7, 14:30", using a 24-hour clock.
func DisplayDate(d time.Time, loc *time.Location) string {
	if loc != nil {
		d = d.In(loc)
	}
	return d.Format(DisplayFormat)
}
