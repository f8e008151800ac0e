package application

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/felixgeelhaar/burndown/pkg/domain/burndown"
	"github.com/felixgeelhaar/burndown/pkg/domain/sprint"
	"github.com/google/uuid"
)

// BurndownConfig scopes the tickets a team reports on.
type BurndownConfig struct {
	Projects []string
	TeamTag  string
	TeamName string
	Policy   burndown.Policy
	Calendar sprint.Calendar
}

// ReportRequest selects the sprint to report. Sprint 0 means the current one.
type ReportRequest struct {
	Sprint int
	Now    time.Time
}

// Report is the burndown of one sprint as of Today.
type Report struct {
	RunID       string
	TeamName    string
	Window      sprint.Window
	Today       time.Time
	TotalPoints int
	Series      burndown.DaySeries
	WorkingDays []time.Time
	Ideal       []float64
	Tickets     []burndown.Ticket
}

// Delivered returns the points burnt down so far.
func (r Report) Delivered() int {
	last, ok := r.Series.Last()
	if !ok {
		return 0
	}
	return r.TotalPoints - last.Remaining
}

// BurndownService runs the calendar, fetch, aggregate and normalize stages.
type BurndownService struct {
	source burndown.TicketSource
	cfg    BurndownConfig
	logger *slog.Logger
	clock  func() time.Time
}

// NewBurndownService creates a new burndown service.
func NewBurndownService(source burndown.TicketSource, cfg BurndownConfig, logger *slog.Logger) *BurndownService {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Calendar.Epoch.IsZero() {
		cfg.Calendar = sprint.DefaultCalendar()
	}
	return &BurndownService{
		source: source,
		cfg:    cfg,
		logger: logger,
		clock:  time.Now,
	}
}

// ResolveWindow returns the sprint to report together with the effective today.
func (s *BurndownService) ResolveWindow(req ReportRequest) (sprint.Window, time.Time, error) {
	now := req.Now
	if now.IsZero() {
		now = s.clock()
	}
	now = sprint.Truncate(now)

	if req.Sprint != 0 {
		return s.cfg.Calendar.Numbered(req.Sprint, now)
	}
	w, err := s.cfg.Calendar.Current(now)
	if err != nil {
		return sprint.Window{}, time.Time{}, err
	}
	return w, now, nil
}

// Report builds the burndown for the requested sprint.
func (s *BurndownService) Report(ctx context.Context, req ReportRequest) (*Report, error) {
	window, today, err := s.ResolveWindow(req)
	if err != nil {
		return nil, fmt.Errorf("resolve sprint: %w", err)
	}

	runID := uuid.NewString()
	logger := s.logger.With("run_id", runID, "sprint", window.Number)
	logger.Info("sprint window",
		"start", window.Start.Format(sprint.DateFormat),
		"due", window.Due.Format(sprint.DateFormat),
		"today", today.Format(sprint.DateFormat))

	fetched, err := s.source.FetchTickets(ctx, burndown.Query{
		Projects:   s.cfg.Projects,
		DueFrom:    window.Start,
		DueTo:      window.Due,
		SubjectTag: s.cfg.TeamTag,
	})
	if err != nil {
		return nil, fmt.Errorf("fetch tickets: %w", err)
	}

	tickets := burndown.Filter(fetched, window, s.cfg.Policy)
	logger.Debug("filtered tickets", "fetched", len(fetched), "in_scope", len(tickets))
	for i, t := range tickets {
		logger.Debug(fmt.Sprintf("[%2d] %s -> %d", i+1, t.Subject, t.PointValue()), "status", t.Status.String())
	}
	s.warnRejected(logger, tickets)

	result, err := burndown.Normalize(burndown.Aggregate(tickets, window, today), window, today)
	if err != nil {
		return nil, err
	}

	days := window.WorkingDays()
	return &Report{
		RunID:       runID,
		TeamName:    s.cfg.TeamName,
		Window:      window,
		Today:       today,
		TotalPoints: result.TotalPoints,
		Series:      result.Series,
		WorkingDays: days,
		Ideal:       burndown.IdealCurve(result.TotalPoints, len(days)),
		Tickets:     result.Tickets,
	}, nil
}

// warnRejected reports points that count towards the total but can never burn down.
func (s *BurndownService) warnRejected(logger *slog.Logger, tickets []burndown.Ticket) {
	points, count := 0, 0
	for _, t := range tickets {
		if t.Status == burndown.StatusRejected {
			points += t.PointValue()
			count++
		}
	}
	if points > 0 {
		logger.Warn("rejected tickets keep the burndown above zero",
			"tickets", count,
			"points", points)
	}
}
