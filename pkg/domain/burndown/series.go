package burndown

import (
	"time"

	"github.com/felixgeelhaar/burndown/pkg/domain/sprint"
)

// Day is one working day of the series. Before normalization Remaining holds
// the day's delta (negative on closure days); afterwards it is the running total.
type Day struct {
	Date      time.Time
	Remaining int
	Closed    []string

	// CarriedForward marks a value copied from the previous day (or the
	// sprint total) because no closure had been recorded yet.
	CarriedForward bool
}

// DaySeries is ordered by strictly increasing date.
type DaySeries []Day

// seedSeries creates an empty bucket for every working day of w up to today.
func seedSeries(w sprint.Window, today time.Time) DaySeries {
	today = sprint.Truncate(today)
	var series DaySeries
	for _, d := range w.WorkingDays() {
		if d.After(today) {
			break
		}
		series = append(series, Day{Date: d})
	}
	return series
}

// Index returns the position of date in the series, or -1.
func (s DaySeries) Index(date time.Time) int {
	date = sprint.Truncate(date)
	for i, d := range s {
		if d.Date.Equal(date) {
			return i
		}
	}
	return -1
}

// Values returns the Remaining column.
func (s DaySeries) Values() []int {
	out := make([]int, len(s))
	for i, d := range s {
		out[i] = d.Remaining
	}
	return out
}

// Last returns the most recent day; ok is false for an empty series.
func (s DaySeries) Last() (Day, bool) {
	if len(s) == 0 {
		return Day{}, false
	}
	return s[len(s)-1], true
}
