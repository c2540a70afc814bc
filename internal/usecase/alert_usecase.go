// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"
	"time"

	"pharmalink/internal/domain/entity"
	"pharmalink/internal/domain/service"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// CreateAlertInput defines the data required to publish an urgent alert.
// RequiredSpecialties is only meaningful for laboratory alerts.
type CreateAlertInput struct {
	Title               string
	Description         string
	PositionType        entity.PositionType
	RequiredSpecialties []string
	StartDate           time.Time
	EndDate             time.Time
	Latitude            float64
	Longitude           float64
	RadiusKm            float64
	City                string
	HourlyRate          *float64
}

// UpdateAlertInput carries the descriptive fields a creator may edit on an
// active alert. Nil fields are left untouched.
type UpdateAlertInput struct {
	Title       *string
	Description *string
	HourlyRate  *float64
}

// AlertListFilter narrows a creator's alert listing.
type AlertListFilter struct {
	Statuses []entity.AlertStatus
	Limit    int
}

// RespondInput defines the data of a candidate response to an alert.
type RespondInput struct {
	Message string
}

// --- Output DTOs ---

// AlertWithDistance bundles an alert with its distance from the requesting
// candidate's stored location, rounded to one decimal.
type AlertWithDistance struct {
	Alert      *entity.UrgentAlert `json:"alert"`
	DistanceKm float64             `json:"distance_km"`
}

// AlertUsecase defines the interface for the urgent-alert matching engine.
type AlertUsecase interface {
	// CreateAlert validates and persists an alert for a recruiter, then fans
	// out notifications to every eligible candidate. Fan-out failures are
	// logged and never fail the creation.
	CreateAlert(ctx context.Context, creatorID uuid.UUID, input CreateAlertInput) (*entity.UrgentAlert, error)

	// GetAlert retrieves a single alert by ID.
	GetAlert(ctx context.Context, alertID uuid.UUID) (*entity.UrgentAlert, error)

	// UpdateAlert edits the descriptive fields of an active alert, restricted
	// to its creator. Schedule, location and position are immutable after
	// publication; only the patched fields change.
	UpdateAlert(ctx context.Context, alertID, creatorID uuid.UUID, input UpdateAlertInput) (*entity.UrgentAlert, error)

	// GetCreatorAlerts retrieves the alerts published by a recruiter,
	// optionally narrowed by status and capped in size.
	GetCreatorAlerts(ctx context.Context, creatorID uuid.UUID, filter AlertListFilter) ([]*entity.UrgentAlert, error)

	// GetCandidateAlerts retrieves the open alerts a candidate is eligible
	// for, with distances from the candidate's stored location.
	GetCandidateAlerts(ctx context.Context, candidateID uuid.UUID) ([]*AlertWithDistance, error)

	// RespondToAlert records a candidate's interest in an alert. Expired or
	// non-active alerts are refused even before the sweeper has run.
	RespondToAlert(ctx context.Context, alertID, candidateID uuid.UUID, input RespondInput) (*entity.AlertResponse, error)

	// HasResponded reports whether the candidate already responded to the
	// alert, so clients can render the response button accordingly.
	HasResponded(ctx context.Context, alertID, candidateID uuid.UUID) (bool, error)

	// GetAlertResponses retrieves the responses to an alert, restricted to
	// its creator.
	GetAlertResponses(ctx context.Context, alertID, creatorID uuid.UUID) ([]*entity.AlertResponse, error)

	// AcceptCandidate arbitrates an alert: the given candidate's response
	// becomes accepted, every other interested response becomes rejected, and
	// the alert flips to filled. Runs in one transaction; a concurrent accept
	// loses cleanly with a retryable conflict error.
	AcceptCandidate(ctx context.Context, alertID, creatorID, candidateID uuid.UUID) error

	// RejectCandidate sets one interested response to rejected without
	// touching the alert status, restricted to the alert's creator.
	RejectCandidate(ctx context.Context, alertID, creatorID, candidateID uuid.UUID) error

	// CancelAlert withdraws an active alert, restricted to its creator.
	CancelAlert(ctx context.Context, alertID, creatorID uuid.UUID) error

	// MarkAsFilled flips an active alert to filled without naming a winner,
	// for creators who staffed the need outside the platform. Restricted to
	// the alert's creator.
	MarkAsFilled(ctx context.Context, alertID, creatorID uuid.UUID) error

	// GenerateAlertQR renders a QR code deep-linking to an alert.
	GenerateAlertQR(ctx context.Context, alertID uuid.UUID) ([]byte, error)

	// SendAlertPush delivers push notifications for a fan-out event. Invoked
	// by the worker when an alert event arrives from the queue.
	SendAlertPush(ctx context.Context, event *service.AlertEvent) (sent, failed int, err error)

	// SweepExpiredAlerts flips every active alert past its expiry to expired
	// and returns the number of rows affected.
	SweepExpiredAlerts(ctx context.Context) (int64, error)
}
