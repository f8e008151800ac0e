package burndown

import (
	"context"
	"time"
)

// Query selects the candidate tickets of a sprint on the tracker side.
type Query struct {
	Projects   []string
	DueFrom    time.Time
	DueTo      time.Time
	SubjectTag string
}

// TicketSource fetches tickets from an issue tracker.
type TicketSource interface {
	FetchTickets(ctx context.Context, q Query) ([]Ticket, error)
}
