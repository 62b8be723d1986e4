// Package notify publishes intern lifecycle notifications.
//
// Notifications are fire-and-forget side effects of the workflow: a failed
// publish is reported to the caller, who logs it and carries on.
package notify

import (
	"context"
	"time"
)

// Routing keys for intern lifecycle events.
const (
	KeyInternAdded      = "intern.added"
	KeyInternAssigned   = "intern.assigned"
	KeyInternReassigned = "intern.reassigned"
)

// Event is the JSON body of a notification.
type Event struct {
	Type       string    `json:"type"`
	InternID   string    `json:"internId"`
	Email      string    `json:"email"`
	Name       string    `json:"name,omitempty"`
	MentorID   string    `json:"mentorId,omitempty"`
	Skills     []string  `json:"skills,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}

// Publisher delivers events under a routing key.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, e Event) error
	Close() error
}
