// Package history resolves portfolio-history range descriptors and filters
// timelines with them. A descriptor is one of the relative keywords
// (1W, 1M, 3M, YTD, 1Y, ALL), an explicit "start,end" date pair, or a single
// exact date. Both repository variants share this resolution logic so the
// SQL-side and in-memory filters cannot drift apart.
package history

import (
	"strings"
	"time"
)

// DisplayFormat is the short form history dates are rendered in.
const DisplayFormat = "Jan 2, 15:04"

const dateLayout = "2006-01-02"

// Window is a resolved range descriptor. A nil Start or End leaves that side
// unbounded. Exact windows match a single calendar date; an invalid exact
// descriptor matches nothing.
type Window struct {
	Start *time.Time
	End   *time.Time
	Exact *time.Time
	empty bool
}

// All reports whether the window applies no filter.
func (w Window) All() bool {
	return w.Start == nil && w.End == nil && w.Exact == nil && !w.empty
}

// Resolve turns a range descriptor into a window anchored at ref, the most
// recent recorded history date (or now when no history exists). Relative
// keywords subtract calendar intervals from ref; YTD starts at January 1 of
// ref's year.
func Resolve(desc string, ref time.Time) Window {
	desc = strings.TrimSpace(desc)

	switch desc {
	case "", "ALL":
		return Window{}
	case "1W":
		return sinceWindow(ref.AddDate(0, 0, -7))
	case "1M":
		return sinceWindow(ref.AddDate(0, -1, 0))
	case "3M":
		return sinceWindow(ref.AddDate(0, -3, 0))
	case "YTD":
		return sinceWindow(time.Date(ref.Year(), time.January, 1, 0, 0, 0, 0, ref.Location()))
	case "1Y":
		return sinceWindow(ref.AddDate(-1, 0, 0))
	}

	if start, end, ok := strings.Cut(desc, ","); ok {
		from, errFrom := time.Parse(dateLayout, strings.TrimSpace(start))
		to, errTo := time.Parse(dateLayout, strings.TrimSpace(end))
		if errFrom != nil || errTo != nil {
			return Window{empty: true}
		}
		// Inclusive on both sides: the end boundary covers the whole end day.
		endExclusive := to.AddDate(0, 0, 1)
		return Window{Start: &from, End: &endExclusive}
	}

	exact, err := time.Parse(dateLayout, desc)
	if err != nil {
		return Window{empty: true}
	}
	return Window{Exact: &exact}
}

// Contains reports whether a history date falls inside the window.
func (w Window) Contains(d time.Time) bool {
	if w.empty {
		return false
	}
	if w.Exact != nil {
		y1, m1, d1 := d.Date()
		y2, m2, d2 := w.Exact.Date()
		return y1 == y2 && m1 == m2 && d1 == d2
	}
	if w.Start != nil && d.Before(*w.Start) {
		return false
	}
	if w.End != nil && !d.Before(*w.End) {
		return false
	}
	return true
}

func sinceWindow(start time.Time) Window {
	return Window{Start: &start}
}
