// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"
	"time"

	"pharmalink/internal/domain/entity"
	"pharmalink/internal/errors"

	"github.com/google/uuid"
)

// Domain-specific errors for alert persistence.
var (
	// ErrAlertNotFound is returned when an alert is not found.
	ErrAlertNotFound = errors.New("alert not found")
	// ErrDuplicateResponse is returned when a candidate already responded to an
	// alert. Backed by the unique constraint on (alert_id, candidate_id).
	ErrDuplicateResponse = errors.New("response already exists for this alert and candidate")
	// ErrResponseNotFound is returned when a response row is not found.
	ErrResponseNotFound = errors.New("alert response not found")
	// ErrResponseStateConflict is returned when a conditional response update
	// matched no row: the response left the expected status concurrently.
	ErrResponseStateConflict = errors.New("response is no longer in the expected status")
	// ErrAlertStateConflict is returned when a conditional status update
	// matched no row: the alert left the expected state concurrently.
	ErrAlertStateConflict = errors.New("alert is no longer in the expected status")
)

// AlertFilter narrows creator-side alert listings.
type AlertFilter struct {
	Statuses []entity.AlertStatus
	Limit    int
}

// AlertPatch carries the descriptive fields a creator may edit on an active
// alert. Nil fields are left untouched.
type AlertPatch struct {
	Title       *string
	Description *string
	HourlyRate  *float64
}

// AlertRepository defines the interface for urgent-alert database operations.
// Responses belong to the alert aggregate and are managed here as well.
type AlertRepository interface {
	// CreateAlert persists a new urgent alert.
	CreateAlert(ctx context.Context, alert *entity.UrgentAlert) error

	// FindAlertByID retrieves an alert by its unique ID.
	FindAlertByID(ctx context.Context, id uuid.UUID) (*entity.UrgentAlert, error)

	// FindAlertsByCreator retrieves alerts for a creator, newest first.
	FindAlertsByCreator(ctx context.Context, creatorID uuid.UUID, filter AlertFilter) ([]*entity.UrgentAlert, error)

	// FindActiveAlertsForCandidate runs the geographic eligibility query in
	// reverse: all active, unexpired alerts whose effective radius
	// (LEAST(alert radius, candidate preference)) covers the candidate's
	// stored location, restricted to the candidate's position and, for
	// laboratory alerts, to overlapping specialties.
	FindActiveAlertsForCandidate(ctx context.Context, candidateID uuid.UUID) ([]*entity.UrgentAlert, error)

	// UpdateAlertStatus transitions an alert conditionally: the row is only
	// updated when its current status equals from. Returns
	// ErrAlertStateConflict when the row exists but the condition failed.
	UpdateAlertStatus(ctx context.Context, id uuid.UUID, from, to entity.AlertStatus, filledAt *time.Time) error

	// UpdateAlertDetails applies a descriptive-field patch to an alert,
	// conditionally on the alert still being active. Returns
	// ErrAlertStateConflict when the row exists but is no longer active.
	UpdateAlertDetails(ctx context.Context, id uuid.UUID, patch AlertPatch) error

	// UpdateNotifiedCount records how many recipients were notified at fan-out.
	UpdateNotifiedCount(ctx context.Context, id uuid.UUID, count int) error

	// ExpireOverdueAlerts flips every active alert past its expires_at to
	// expired and returns the number of rows affected.
	ExpireOverdueAlerts(ctx context.Context, now time.Time) (int64, error)

	// FindEligibleCandidates runs the geographic eligibility query for an
	// alert: candidates with alerts enabled, matching position, within
	// LEAST(alert radius, candidate preference) kilometers (inclusive bound),
	// and for laboratory alerts with at least one required specialty in
	// common. Distances are returned alongside each candidate.
	FindEligibleCandidates(ctx context.Context, alert *entity.UrgentAlert) ([]*entity.EligibleCandidate, error)

	// CreateResponse persists a candidate response. Returns
	// ErrDuplicateResponse when the (alert, candidate) pair already exists.
	CreateResponse(ctx context.Context, response *entity.AlertResponse) error

	// FindResponsesByAlert retrieves all responses for an alert, newest first.
	FindResponsesByAlert(ctx context.Context, alertID uuid.UUID) ([]*entity.AlertResponse, error)

	// FindResponse retrieves the response of one candidate to one alert.
	FindResponse(ctx context.Context, alertID, candidateID uuid.UUID) (*entity.AlertResponse, error)

	// HasResponded reports whether the candidate already responded.
	HasResponded(ctx context.Context, alertID, candidateID uuid.UUID) (bool, error)

	// UpdateResponseStatus moves one candidate's response conditionally: the
	// row is only written when its current status equals from. Returns
	// ErrResponseStateConflict when the row exists but already left that
	// status, so arbitration never overwrites a settled response.
	UpdateResponseStatus(ctx context.Context, alertID, candidateID uuid.UUID, from, to entity.ResponseStatus) error

	// RejectSiblingResponses flips every interested response on the alert,
	// except the given candidate's, to rejected. Returns the number of rows
	// affected.
	RejectSiblingResponses(ctx context.Context, alertID, acceptedCandidateID uuid.UUID) (int64, error)
}
