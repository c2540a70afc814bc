// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// MissionStatus is the lifecycle state of a mission.
type MissionStatus string

const (
	// MissionStatusDraft indicates the mission is being prepared by its client.
	MissionStatusDraft MissionStatus = "draft"
	// MissionStatusOpen indicates the mission is published and animators may be proposed.
	MissionStatusOpen MissionStatus = "open"
	// MissionStatusProposalSent indicates a proposal is awaiting an animator's answer.
	MissionStatusProposalSent MissionStatus = "proposal_sent"
	// MissionStatusAnimatorAccepted indicates the animator accepted and the client must confirm.
	MissionStatusAnimatorAccepted MissionStatus = "animator_accepted"
	// MissionStatusConfirmed indicates the client confirmed and the connection fee is settled.
	MissionStatusConfirmed MissionStatus = "confirmed"
	// MissionStatusAssigned is a legacy alias of confirmed kept for older records.
	MissionStatusAssigned MissionStatus = "assigned"
	// MissionStatusInProgress indicates the engagement has started.
	MissionStatusInProgress MissionStatus = "in_progress"
	// MissionStatusCompleted indicates the engagement finished; unlocks mutual reviews.
	MissionStatusCompleted MissionStatus = "completed"
	// MissionStatusCancelled indicates the mission was cancelled before completion.
	MissionStatusCancelled MissionStatus = "cancelled"
)

// String returns the string representation of the MissionStatus.
func (s MissionStatus) String() string {
	return string(s)
}

// IsValid checks if the MissionStatus is a valid value.
func (s MissionStatus) IsValid() bool {
	switch s {
	case MissionStatusDraft, MissionStatusOpen, MissionStatusProposalSent,
		MissionStatusAnimatorAccepted, MissionStatusConfirmed, MissionStatusAssigned,
		MissionStatusInProgress, MissionStatusCompleted, MissionStatusCancelled:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether the status ends the mission lifecycle.
func (s MissionStatus) IsTerminal() bool {
	return s == MissionStatusCompleted || s == MissionStatusCancelled
}

// missionTransitions is the closed transition table of the mission state
// machine. Cancellation from any non-terminal state is handled separately.
var missionTransitions = map[MissionStatus][]MissionStatus{
	MissionStatusDraft:            {MissionStatusOpen},
	MissionStatusOpen:             {MissionStatusProposalSent},
	MissionStatusProposalSent:     {MissionStatusAnimatorAccepted, MissionStatusOpen},
	MissionStatusAnimatorAccepted: {MissionStatusConfirmed},
	MissionStatusConfirmed:        {MissionStatusInProgress},
	MissionStatusAssigned:         {MissionStatusInProgress},
	MissionStatusInProgress:       {MissionStatusCompleted},
}

// CanTransitionTo reports whether the status machine permits moving to next.
func (s MissionStatus) CanTransitionTo(next MissionStatus) bool {
	if next == MissionStatusCancelled {
		return !s.IsTerminal()
	}

	for _, allowed := range missionTransitions[s] {
		if allowed == next {
			return true
		}
	}

	return false
}

// Mission is a structured paid engagement between a recruiter (pharmacy or
// laboratory) and a freelance animator.
type Mission struct {
	ID                  uuid.UUID     `json:"id"`
	ClientID            uuid.UUID     `json:"client_id"`
	ClientType          CreatorType   `json:"client_type"`
	AnimatorID          *uuid.UUID    `json:"animator_id,omitempty"` // set no later than proposal_sent
	Title               string        `json:"title"`
	Description         string        `json:"description"`
	SpecialtiesRequired []string      `json:"specialties_required,omitempty"`
	City                string        `json:"city"`
	Department          string        `json:"department"`
	Region              string        `json:"region"`
	Latitude            float64       `json:"latitude"`
	Longitude           float64       `json:"longitude"`
	StartDate           time.Time     `json:"start_date"`
	EndDate             time.Time     `json:"end_date"`
	DailyRateMin        float64       `json:"daily_rate_min"`
	DailyRateMax        float64       `json:"daily_rate_max"`
	ProposedDailyRate   *float64      `json:"proposed_daily_rate,omitempty"` // bound at sendProposal, immutable after
	Status              MissionStatus `json:"status"`
	ConfirmedAt         *time.Time    `json:"confirmed_at,omitempty"`
	CompletedAt         *time.Time    `json:"completed_at,omitempty"` // review-gate anchor
	CreatedAt           time.Time     `json:"created_at"`
	UpdatedAt           time.Time     `json:"updated_at"`
}

// DurationDays returns the inclusive day count of the mission schedule.
// Whole days only: 2025-06-10 through 2025-06-12 is 3 days.
func (m *Mission) DurationDays() int {
	return InclusiveDays(m.StartDate, m.EndDate)
}

// TotalPayout returns dailyRate multiplied by the inclusive day count. This
// arithmetic must stay exact wherever duration or payout is shown or billed.
func (m *Mission) TotalPayout(dailyRate float64) float64 {
	return dailyRate * float64(m.DurationDays())
}

// InclusiveDays counts whole days between two dates, both ends included.
// Time-of-day components are truncated before counting.
func InclusiveDays(start, end time.Time) int {
	startDay := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	endDay := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)
	if endDay.Before(startDay) {
		return 0
	}

	return int(endDay.Sub(startDay)/(24*time.Hour)) + 1
}
