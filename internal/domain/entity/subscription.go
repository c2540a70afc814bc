// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// SubscriptionTier identifies a recruiter subscription plan.
type SubscriptionTier string

const (
	// TierFree is the default plan: every connection fee is payable.
	TierFree SubscriptionTier = "free"
	// TierEssentiel includes a small monthly contact quota.
	TierEssentiel SubscriptionTier = "essentiel"
	// TierPremium includes a larger monthly contact quota.
	TierPremium SubscriptionTier = "premium"
	// TierIllimite includes unlimited monthly contacts.
	TierIllimite SubscriptionTier = "illimite"
)

// String returns the string representation of the SubscriptionTier.
func (t SubscriptionTier) String() string {
	return string(t)
}

// IsValid checks if the SubscriptionTier is a valid value.
func (t SubscriptionTier) IsValid() bool {
	switch t {
	case TierFree, TierEssentiel, TierPremium, TierIllimite:
		return true
	default:
		return false
	}
}

// UnlimitedContacts marks a plan whose monthly contact quota is unbounded.
const UnlimitedContacts = -1

// SubscriptionPlan describes what a tier includes.
type SubscriptionPlan struct {
	Tier          SubscriptionTier `json:"tier"`
	ContactsMax   int              `json:"contacts_max"` // UnlimitedContacts for unbounded plans
	ConnectionFee float64          `json:"connection_fee"`
}

// IsUnlimited reports whether the plan has no monthly contact cap.
func (p SubscriptionPlan) IsUnlimited() bool {
	return p.ContactsMax == UnlimitedContacts
}

// RecruiterSubscription links a recruiter to their current plan.
type RecruiterSubscription struct {
	ID          uuid.UUID        `json:"id"`
	RecruiterID uuid.UUID        `json:"recruiter_id"`
	Tier        SubscriptionTier `json:"tier"`
	StartedAt   time.Time        `json:"started_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// MonthlyUsage counts connection-fee consumptions for one recruiter in one
// calendar month. Mutated only by mission confirmation, never by ad-hoc
// patches.
type MonthlyUsage struct {
	ID           uuid.UUID `json:"id"`
	RecruiterID  uuid.UUID `json:"recruiter_id"`
	Month        string    `json:"month"` // "2026-08"
	ContactsUsed int       `json:"contacts_used"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// FeeStatus is the computed (never persisted) answer to "does confirming this
// mission cost anything right now?".
type FeeStatus struct {
	IncludedInSubscription bool     `json:"included_in_subscription"`
	ContactsRemaining      *int     `json:"contacts_remaining,omitempty"` // nil on unlimited plans
	Amount                 *float64 `json:"amount,omitempty"`             // set when payable
}
