// Package entity contains the core business objects of the project.
package entity

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// AlertStatus is the lifecycle state of an urgent alert.
type AlertStatus string

const (
	// AlertStatusActive indicates the alert is open for responses.
	AlertStatusActive AlertStatus = "active"
	// AlertStatusFilled indicates a candidate has been accepted.
	AlertStatusFilled AlertStatus = "filled"
	// AlertStatusExpired indicates the alert passed its expiry without being filled.
	AlertStatusExpired AlertStatus = "expired"
	// AlertStatusCancelled indicates the creator withdrew the alert.
	AlertStatusCancelled AlertStatus = "cancelled"
)

// String returns the string representation of the AlertStatus.
func (s AlertStatus) String() string {
	return string(s)
}

// IsValid checks if the AlertStatus is a valid value.
func (s AlertStatus) IsValid() bool {
	switch s {
	case AlertStatusActive, AlertStatusFilled, AlertStatusExpired, AlertStatusCancelled:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether no further transition may leave this status.
func (s AlertStatus) IsTerminal() bool {
	return s != AlertStatusActive
}

// CanTransitionTo reports whether the status machine permits moving to next.
// Transitions only go forward: active is the sole non-terminal state.
func (s AlertStatus) CanTransitionTo(next AlertStatus) bool {
	if s != AlertStatusActive {
		return false
	}

	switch next {
	case AlertStatusFilled, AlertStatusExpired, AlertStatusCancelled:
		return true
	default:
		return false
	}
}

// AlertExpiryDelay is the window past end_date during which an alert is still
// considered open. expires_at = end_date + AlertExpiryDelay.
const AlertExpiryDelay = 24 * time.Hour

// UrgentAlert is a time-boxed, geographically scoped call for a replacement
// worker (pharmacy alerts) or a freelance animator (laboratory alerts).
type UrgentAlert struct {
	ID                  uuid.UUID    `json:"id"`
	CreatorID           uuid.UUID    `json:"creator_id"`
	CreatorType         CreatorType  `json:"creator_type"`
	Title               string       `json:"title"`
	Description         string       `json:"description"`
	PositionType        PositionType `json:"position_type"`
	RequiredSpecialties []string     `json:"required_specialties,omitempty"` // laboratory alerts only
	StartDate           time.Time    `json:"start_date"`
	EndDate             time.Time    `json:"end_date"`
	ExpiresAt           time.Time    `json:"expires_at"` // derived: EndDate + AlertExpiryDelay
	Latitude            float64      `json:"latitude"`
	Longitude           float64      `json:"longitude"`
	RadiusKm            float64      `json:"radius_km"`
	City                string       `json:"city"`
	HourlyRate          *float64     `json:"hourly_rate,omitempty"`
	Status              AlertStatus  `json:"status"`
	NotifiedCount       int          `json:"notified_count"`
	FilledAt            *time.Time   `json:"filled_at,omitempty"`
	CreatedAt           time.Time    `json:"created_at"`
	UpdatedAt           time.Time    `json:"updated_at"`
}

// IsExpiredAt reports whether the alert is past its expiry at the given
// instant, regardless of the stored status. Storage may lag behind the clock
// until the sweeper runs, so callers gate responses on this, not on Status
// alone.
func (a *UrgentAlert) IsExpiredAt(now time.Time) bool {
	return now.After(a.ExpiresAt)
}

// IsOpenAt reports whether the alert can still meaningfully receive
// responses at the given instant.
func (a *UrgentAlert) IsOpenAt(now time.Time) bool {
	return a.Status == AlertStatusActive && !a.IsExpiredAt(now)
}

// MatchesSpecialties reports whether a candidate with the given specialty set
// is eligible for this alert. Empty requirements match everyone; otherwise at
// least one common specialty is required (OR semantics).
func (a *UrgentAlert) MatchesSpecialties(candidateSpecialties []string) bool {
	if len(a.RequiredSpecialties) == 0 {
		return true
	}

	for _, required := range a.RequiredSpecialties {
		if slices.Contains(candidateSpecialties, required) {
			return true
		}
	}

	return false
}
