package domain

import (
	"context"
	"time"
)

type EventType string

const (
	EventApplicationSubmitted     EventType = "application.submitted"
	EventApplicationStatusChanged EventType = "application.status_changed"
)

type ApplicationEvent struct {
	Type          EventType         `json:"type"`
	ApplicationID string            `json:"applicationId"`
	JobID         string            `json:"jobId"`
	CandidateID   string            `json:"candidateId"`
	Status        ApplicationStatus `json:"status"`
	OccurredAt    time.Time         `json:"occurredAt"`
}

// EventPublisher delivers application events. Publishing is best-effort.
type EventPublisher interface {
	Publish(ctx context.Context, event ApplicationEvent) error
}
