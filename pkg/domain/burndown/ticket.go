// Package burndown turns a sprint's tickets into a remaining-story-points series.
package burndown

import (
	"fmt"
	"strings"
	"time"
)

// Status is the tracker status name of a ticket.
type Status string

const (
	StatusOpen     Status = "Open"
	StatusResolved Status = "Resolved"
	StatusRejected Status = "Rejected"
	StatusBlocked  Status = "Blocked"
)

// IsOpen returns true unless the ticket was resolved or rejected.
func (s Status) IsOpen() bool {
	return s != StatusResolved && s != StatusRejected
}

// IsDelivered returns true if the ticket's points burn down when it closes.
func (s Status) IsDelivered() bool {
	return s == StatusResolved
}

func (s Status) String() string {
	return string(s)
}

// excludedTags mark grouping tickets that carry no deliverable work.
var excludedTags = []string{"[epic]", "[saga]"}

// Ticket is an issue as fetched from the tracker. Points is nil when the
// tracker has no estimate for it.
type Ticket struct {
	ID       int
	Subject  string
	Points   *int
	Status   Status
	ClosedOn *time.Time
	Assignee string
	DueDate  *time.Time
}

// PointValue returns the story point estimate, 0 when unavailable.
func (t Ticket) PointValue() int {
	if t.Points == nil {
		return 0
	}
	return *t.Points
}

// ClosedLine describes the ticket in a day's list of closed work.
func (t Ticket) ClosedLine() string {
	return fmt.Sprintf("[%d] @%s: %s", t.PointValue(), t.Assignee, t.Subject)
}

// IsGrouping reports whether the subject marks the ticket as an epic or saga.
func (t Ticket) IsGrouping() bool {
	subject := strings.ToLower(t.Subject)
	for _, tag := range excludedTags {
		if strings.Contains(subject, tag) {
			return true
		}
	}
	return false
}
