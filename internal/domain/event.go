package domain

import (
	"context"
	"time"
)

// Event subjects
const (
	SubjectApplicationStatusChanged = "simhire.application.status_changed"
	SubjectApplicationCreated       = "simhire.application.created"
	SubjectApplicationWithdrawn     = "simhire.application.withdrawn"
	SubjectSimulasiSubmitted        = "simhire.simulasi.submitted"
)

// Event is a domain notification published after a successful write
type Event struct {
	Subject    string            `json:"subject"`
	Kind       string            `json:"kind"` // job | internship | simulasi
	EntityID   string            `json:"entityId"`
	ActorID    string            `json:"actorId"`
	Attributes map[string]string `json:"attributes,omitempty"`
	OccurredAt time.Time         `json:"occurredAt"`
}

// EventPublisher delivers domain events. Publishing is best effort: callers log failures
// and never fail the originating write.
type EventPublisher interface {
	Publish(ctx context.Context, event Event) error
	Close()
}
