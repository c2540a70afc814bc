// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the core identity entity. It carries only the data shared across
// both sides of the marketplace; role-specific data lives in the profiles.
type User struct {
	ID               uuid.UUID         `json:"id"`
	Email            string            `json:"email"`
	Name             string            `json:"name"`
	PasswordHash     string            `json:"-"`
	CandidateProfile *CandidateProfile `json:"candidate_profile,omitempty"` // nil unless the user works candidate-side
	RecruiterProfile *RecruiterProfile `json:"recruiter_profile,omitempty"` // nil unless the user recruits
	CreatedAt        time.Time         `json:"created_at"`
	UpdatedAt        time.Time         `json:"updated_at"`
}

// CandidateProfile holds the worker-side data that alert eligibility
// depends on.
type CandidateProfile struct {
	UserID        uuid.UUID    `json:"user_id"`
	Position      PositionType `json:"position"`
	Specialties   []string     `json:"specialties,omitempty"` // animators only
	City          string       `json:"city"`
	Latitude      float64      `json:"latitude"`
	Longitude     float64      `json:"longitude"`
	AlertRadiusKm float64      `json:"alert_radius_km"` // how far the candidate wants to be alerted
	AlertsEnabled bool         `json:"alerts_enabled"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

// RecruiterProfile holds the recruiter-side data.
type RecruiterProfile struct {
	UserID      uuid.UUID   `json:"user_id"`
	Type        CreatorType `json:"type"`
	CompanyName string      `json:"company_name"`
	City        string      `json:"city"`
	Latitude    float64     `json:"latitude"`
	Longitude   float64     `json:"longitude"`
	UpdatedAt   time.Time   `json:"updated_at"`
}
