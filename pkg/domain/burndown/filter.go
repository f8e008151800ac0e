package burndown

import (
	"github.com/felixgeelhaar/burndown/pkg/domain/sprint"
)

// Policy tunes which tickets count towards a sprint.
type Policy struct {
	// ExcludeRejected drops rejected tickets from scope so they no longer
	// inflate the total without ever burning down.
	ExcludeRejected bool
}

// Filter returns the tickets in scope for the window, preserving order.
// Closed tickets must have closed between the sprint start and its due date.
func Filter(tickets []Ticket, w sprint.Window, p Policy) []Ticket {
	var out []Ticket
	for _, t := range tickets {
		if InScope(t, w, p) {
			out = append(out, t)
		}
	}
	return out
}

// InScope applies the sprint scoping rules to a single ticket.
// A ticket without a due date is trusted to match the tracker query.
func InScope(t Ticket, w sprint.Window, p Policy) bool {
	if t.IsGrouping() || t.Status == StatusBlocked {
		return false
	}
	if t.DueDate != nil && !w.Contains(*t.DueDate) {
		return false
	}
	if p.ExcludeRejected && t.Status == StatusRejected {
		return false
	}
	if t.Status.IsOpen() {
		return true
	}
	if t.ClosedOn == nil {
		return false
	}
	return w.Contains(*t.ClosedOn)
}
