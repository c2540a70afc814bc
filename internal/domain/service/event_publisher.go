package service

import (
	"context"
)

// AlertEvent represents a fan-out job to be processed by the alert worker
type AlertEvent struct {
	RequestID    string   `json:"request_id,omitempty"` // For distributed tracing
	AlertID      string   `json:"alert_id"`
	CreatorType  string   `json:"creator_type"`
	Title        string   `json:"title"`
	City         string   `json:"city"`
	PositionType string   `json:"position_type"`
	CandidateIDs []string `json:"candidate_ids"` // Pre-filtered eligible candidate user IDs
}

// EventPublisher defines the interface for publishing events to a message queue
type EventPublisher interface {
	// PublishAlertEvent publishes an alert fan-out event for async processing
	PublishAlertEvent(ctx context.Context, event *AlertEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
