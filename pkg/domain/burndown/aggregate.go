package burndown

import (
	"time"

	"github.com/felixgeelhaar/burndown/pkg/domain/sprint"
)

// Result is the aggregated burndown of one sprint.
type Result struct {
	TotalPoints int
	Series      DaySeries
	Tickets     []Ticket
}

// EffectiveCloseDay maps a close timestamp to the working day it burns down on.
// A ticket closed the night before the sprint counts on day one, and weekend
// closures move to the following Monday.
func EffectiveCloseDay(closedOn time.Time, w sprint.Window) time.Time {
	day := sprint.Truncate(closedOn)
	if day.Equal(dayBefore(w.Start)) {
		day = w.Start
	}
	switch day.Weekday() {
	case time.Saturday:
		day = day.AddDate(0, 0, 2)
	case time.Sunday:
		day = day.AddDate(0, 0, 1)
	}
	return day
}

// Aggregate buckets in-scope tickets into per-day deltas. Every ticket adds to
// TotalPoints; only delivered tickets subtract from their close day.
func Aggregate(tickets []Ticket, w sprint.Window, today time.Time) Result {
	res := Result{
		Series:  seedSeries(w, today),
		Tickets: tickets,
	}

	for _, t := range tickets {
		points := t.PointValue()
		res.TotalPoints += points

		if !t.Status.IsDelivered() || t.ClosedOn == nil {
			continue
		}
		i := res.Series.bucketFor(EffectiveCloseDay(*t.ClosedOn, w))
		if i < 0 {
			continue
		}
		res.Series[i].Remaining -= points
		res.Series[i].Closed = append(res.Series[i].Closed, t.ClosedLine())
	}
	return res
}

// bucketFor finds the day a closure lands on. Closures past the last seeded
// day (a weekend closure seen before Monday) land on the last seeded day.
func (s DaySeries) bucketFor(day time.Time) int {
	if i := s.Index(day); i >= 0 {
		return i
	}
	if len(s) == 0 {
		return -1
	}
	if day.After(s[len(s)-1].Date) {
		return len(s) - 1
	}
	for i, d := range s {
		if d.Date.After(day) {
			return i
		}
	}
	return -1
}

func dayBefore(t time.Time) time.Time {
	return t.AddDate(0, 0, -1)
}
