// Package sprint computes fixed-cadence sprint windows counted from an epoch.
package sprint

import (
	"errors"
	"fmt"
	"time"
)

// DefaultCadence is the length of a sprint in calendar days.
const DefaultCadence = 14

// DateFormat is the layout used for sprint dates in labels and logs.
const DateFormat = "2006-01-02"

var (
	// ErrBeforeEpoch indicates the requested date precedes the first sprint.
	ErrBeforeEpoch = errors.New("date is not after the sprint epoch")

	// ErrInvalidSprint indicates a sprint number below 1.
	ErrInvalidSprint = errors.New("sprint number must be at least 1")

	// ErrFutureSprint indicates the requested sprint has not started yet.
	ErrFutureSprint = errors.New("sprint has not started yet")
)

// Window is one sprint: an inclusive range of Cadence calendar days.
type Window struct {
	Number int
	Start  time.Time
	Due    time.Time
}

// Calendar partitions time into contiguous sprints after Epoch, the due date of sprint 0.
type Calendar struct {
	Epoch   time.Time
	Cadence int
}

// DefaultCalendar returns the team calendar: sprint 0 ended on 2017-09-26.
func DefaultCalendar() Calendar {
	return Calendar{
		Epoch:   time.Date(2017, 9, 26, 0, 0, 0, 0, time.UTC),
		Cadence: DefaultCadence,
	}
}

// Truncate drops the time of day, keeping the date in UTC.
func Truncate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (c Calendar) cadence() int {
	if c.Cadence <= 0 {
		return DefaultCadence
	}
	return c.Cadence
}

// Window returns the n-th sprint counted from the epoch.
func (c Calendar) Window(n int) Window {
	epoch := Truncate(c.Epoch)
	due := epoch.AddDate(0, 0, n*c.cadence())
	return Window{
		Number: n,
		Start:  due.AddDate(0, 0, 1-c.cadence()),
		Due:    due,
	}
}

// Current returns the sprint containing now. The epoch day itself is the due
// date of sprint 0 and is rejected with ErrBeforeEpoch like any earlier date.
func (c Calendar) Current(now time.Time) (Window, error) {
	today := Truncate(now)
	if !today.After(Truncate(c.Epoch)) {
		return Window{}, fmt.Errorf("%w: %s", ErrBeforeEpoch, today.Format(DateFormat))
	}

	w := c.Window(1)
	for w.Due.Before(today) {
		w = c.Window(w.Number + 1)
	}
	return w, nil
}

// Numbered returns sprint n together with the effective "now" for reporting on it.
// A sprint that is already over is reported as of its due date.
func (c Calendar) Numbered(n int, now time.Time) (Window, time.Time, error) {
	if n < 1 {
		return Window{}, time.Time{}, fmt.Errorf("%w: %d", ErrInvalidSprint, n)
	}

	today := Truncate(now)
	w := c.Window(n)
	if today.Before(w.Start) {
		return Window{}, time.Time{}, fmt.Errorf("%w: sprint %d starts %s", ErrFutureSprint, n, w.Start.Format(DateFormat))
	}
	if !w.Due.After(today) {
		today = w.Due
	}
	return w, today, nil
}

// Contains reports whether t falls on one of the window's dates.
func (w Window) Contains(t time.Time) bool {
	day := Truncate(t)
	return !day.Before(w.Start) && !day.After(w.Due)
}

// Days returns every calendar date of the window in order.
func (w Window) Days() []time.Time {
	var days []time.Time
	for d := w.Start; !d.After(w.Due); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// WorkingDays returns the Monday to Friday dates of the window in order.
func (w Window) WorkingDays() []time.Time {
	var days []time.Time
	for _, d := range w.Days() {
		if IsWorkingDay(d) {
			days = append(days, d)
		}
	}
	return days
}

// IsWorkingDay reports whether t is a weekday.
func IsWorkingDay(t time.Time) bool {
	wd := t.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}

func (w Window) String() string {
	return fmt.Sprintf("sprint %d (%s..%s)", w.Number, w.Start.Format(DateFormat), w.Due.Format(DateFormat))
}
