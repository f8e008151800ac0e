package burndown

import (
	"errors"
	"fmt"
	"time"

	"github.com/felixgeelhaar/burndown/pkg/domain/sprint"
)

// ErrTodayOutsideWindow indicates there is no working day of the sprint to report as today.
var ErrTodayOutsideWindow = errors.New("today is outside the sprint window")

// Normalize converts per-day deltas into the remaining-points curve and
// patches today's value when it reads 0.
//
// A zero today is taken to mean "no data yet": it becomes the sprint total on
// the first day and yesterday's value otherwise. A sprint that genuinely
// reached 0 today is indistinguishable and gets patched too; such days are
// flagged with CarriedForward.
func Normalize(res Result, w sprint.Window, now time.Time) (Result, error) {
	if !w.Contains(now) || len(res.Series) == 0 {
		return Result{}, fmt.Errorf("%w: %s not in %s", ErrTodayOutsideWindow, sprint.Truncate(now).Format(sprint.DateFormat), w)
	}

	series := make(DaySeries, len(res.Series))
	copy(series, res.Series)

	remaining := res.TotalPoints
	for i := range series {
		remaining += series[i].Remaining
		series[i].Remaining = remaining
	}

	// Series is seeded up to now, so its last day is today's reporting day.
	today := len(series) - 1
	if series[today].Remaining == 0 {
		if today == 0 {
			series[today].Remaining = res.TotalPoints
		} else {
			series[today].Remaining = series[today-1].Remaining
		}
		series[today].CarriedForward = true
	}

	res.Series = series
	return res, nil
}

// IdealCurve is the straight-line burn from total to 0 across n working days.
func IdealCurve(total, n int) []float64 {
	if n <= 0 {
		return nil
	}
	curve := make([]float64, n)
	if n == 1 {
		curve[0] = float64(total)
		return curve
	}
	steps := float64(n - 1)
	for i := range curve {
		curve[i] = float64(total) * (steps - float64(i)) / steps
	}
	return curve
}
