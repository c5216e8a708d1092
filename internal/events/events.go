package events

import "context"

// Stream carrying all job lifecycle events.
const StreamJob = "events:job"

// Event types
const (
	EventUserRegistered      = "user_registered"
	EventJobPosted           = "job_posted"
	EventApplicationCreated  = "application_created"
	EventApplicationApproved = "application_approved"
	EventWorkSubmitted       = "work_submitted"
	EventFundsReleased       = "funds_released"
)

type Event struct {
	Type    string         `json:"type"`
	Payload map[string]any `json:"payload"`
}

type Publisher interface {
	Publish(ctx context.Context, stream string, event Event) error
}

type Subscriber interface {
	Subscribe(ctx context.Context, stream string, handler func(Event)) error
}
