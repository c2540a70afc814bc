// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// ResponseStatus is the state of a candidate's response to an urgent alert.
type ResponseStatus string

const (
	// ResponseStatusInterested is the initial state of every response.
	ResponseStatusInterested ResponseStatus = "interested"
	// ResponseStatusAccepted marks the single winning response of an alert.
	ResponseStatusAccepted ResponseStatus = "accepted"
	// ResponseStatusRejected marks a declined response.
	ResponseStatusRejected ResponseStatus = "rejected"
)

// String returns the string representation of the ResponseStatus.
func (s ResponseStatus) String() string {
	return string(s)
}

// IsValid checks if the ResponseStatus is a valid value.
func (s ResponseStatus) IsValid() bool {
	switch s {
	case ResponseStatusInterested, ResponseStatusAccepted, ResponseStatusRejected:
		return true
	default:
		return false
	}
}

// AlertResponse is a candidate's expression of interest in an urgent alert.
// At most one response exists per (alert, candidate) pair, and at most one
// response per alert ever reaches accepted.
type AlertResponse struct {
	ID           uuid.UUID      `json:"id"`
	AlertID      uuid.UUID      `json:"alert_id"`
	CandidateID  uuid.UUID      `json:"candidate_id"`
	Message      string         `json:"message,omitempty"`
	Status       ResponseStatus `json:"status"`
	ResponseTime time.Time      `json:"response_time"`
	UpdatedAt    time.Time      `json:"updated_at"`
}
