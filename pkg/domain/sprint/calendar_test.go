package sprint

import (
	"errors"
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestCalendar_Current(t *testing.T) {
	cal := DefaultCalendar()

	tests := []struct {
		name   string
		now    time.Time
		number int
		start  time.Time
		due    time.Time
	}{
		{"mid first sprint", time.Date(2017, 10, 5, 15, 30, 0, 0, time.UTC), 1, date(2017, 9, 27), date(2017, 10, 10)},
		{"first day", date(2017, 9, 27), 1, date(2017, 9, 27), date(2017, 10, 10)},
		{"due day", date(2017, 10, 10), 1, date(2017, 9, 27), date(2017, 10, 10)},
		{"day after due starts next sprint", date(2017, 10, 11), 2, date(2017, 10, 11), date(2017, 10, 24)},
		{"start of a later sprint", date(2018, 1, 3), 8, date(2018, 1, 3), date(2018, 1, 16)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, err := cal.Current(tt.now)
			if err != nil {
				t.Fatalf("Current: %v", err)
			}
			if w.Number != tt.number {
				t.Errorf("number = %d, want %d", w.Number, tt.number)
			}
			if !w.Start.Equal(tt.start) || !w.Due.Equal(tt.due) {
				t.Errorf("window = %s, want %s..%s", w, tt.start.Format(DateFormat), tt.due.Format(DateFormat))
			}
			if !w.Contains(tt.now) {
				t.Errorf("window %s does not contain %s", w, tt.now)
			}
		})
	}
}

func TestCalendar_Current_BeforeEpoch(t *testing.T) {
	cal := DefaultCalendar()
	epochEvening := time.Date(2017, 9, 26, 23, 59, 0, 0, time.UTC)
	for _, now := range []time.Time{date(2017, 9, 26), epochEvening, date(2016, 1, 1)} {
		if _, err := cal.Current(now); !errors.Is(err, ErrBeforeEpoch) {
			t.Errorf("Current(%s) error = %v, want ErrBeforeEpoch", now.Format(DateFormat), err)
		}
	}
}

func TestCalendar_WindowsAreContiguous(t *testing.T) {
	cal := DefaultCalendar()
	prev := cal.Window(0)
	for n := 1; n <= 300; n++ {
		w := cal.Window(n)
		if w.Number != prev.Number+1 {
			t.Fatalf("sprint %d follows %d", w.Number, prev.Number)
		}
		if got := w.Due.Sub(w.Start); got != 13*24*time.Hour {
			t.Fatalf("sprint %d spans %v", n, got)
		}
		if !w.Start.Equal(prev.Due.AddDate(0, 0, 1)) {
			t.Fatalf("sprint %d starts %s, previous due %s", n, w.Start, prev.Due)
		}
		prev = w
	}
}

func TestCalendar_CurrentAlwaysMatchesWindow(t *testing.T) {
	cal := DefaultCalendar()
	for now := date(2017, 9, 27); now.Before(date(2019, 1, 1)); now = now.AddDate(0, 0, 5) {
		w, err := cal.Current(now)
		if err != nil {
			t.Fatalf("Current(%s): %v", now, err)
		}
		if w != cal.Window(w.Number) {
			t.Fatalf("Current(%s) = %s, Window(%d) = %s", now, w, w.Number, cal.Window(w.Number))
		}
		if !w.Contains(now) {
			t.Fatalf("%s not in %s", now, w)
		}
	}
}

func TestCalendar_Numbered(t *testing.T) {
	cal := DefaultCalendar()
	now := date(2017, 11, 15)

	t.Run("past sprint replays as of its due date", func(t *testing.T) {
		w, today, err := cal.Numbered(2, now)
		if err != nil {
			t.Fatalf("Numbered: %v", err)
		}
		if w.Number != 2 || !w.Start.Equal(date(2017, 10, 11)) {
			t.Errorf("unexpected window %s", w)
		}
		if !today.Equal(w.Due) {
			t.Errorf("today = %s, want due %s", today, w.Due)
		}
	})

	t.Run("current sprint keeps now", func(t *testing.T) {
		w, today, err := cal.Numbered(4, now)
		if err != nil {
			t.Fatalf("Numbered: %v", err)
		}
		if !w.Contains(now) {
			t.Errorf("window %s should contain %s", w, now)
		}
		if !today.Equal(now) {
			t.Errorf("today = %s, want %s", today, now)
		}
	})

	t.Run("future sprint", func(t *testing.T) {
		if _, _, err := cal.Numbered(5, now); !errors.Is(err, ErrFutureSprint) {
			t.Errorf("error = %v, want ErrFutureSprint", err)
		}
	})

	t.Run("invalid number", func(t *testing.T) {
		if _, _, err := cal.Numbered(0, now); !errors.Is(err, ErrInvalidSprint) {
			t.Errorf("error = %v, want ErrInvalidSprint", err)
		}
	})
}

func TestWindow_WorkingDays(t *testing.T) {
	w := DefaultCalendar().Window(1)
	days := w.WorkingDays()
	if len(days) != 10 {
		t.Fatalf("expected 10 working days, got %d", len(days))
	}
	want := []int{0, 1, 2, 5, 6, 7, 8, 9, 12, 13}
	for i, offset := range want {
		if !days[i].Equal(w.Start.AddDate(0, 0, offset)) {
			t.Errorf("working day %d = %s, want start+%d", i, days[i].Format(DateFormat), offset)
		}
	}
	if len(w.Days()) != 14 {
		t.Errorf("expected 14 calendar days, got %d", len(w.Days()))
	}
}
