package usecase

import (
	"context"

	"pharmalink/internal/domain/entity"

	"github.com/google/uuid"
)

// SubscriptionStatus bundles a recruiter's plan with the current month's
// consumption.
type SubscriptionStatus struct {
	Subscription      *entity.RecruiterSubscription `json:"subscription"`
	Plan              *entity.SubscriptionPlan      `json:"plan"`
	ContactsUsed      int                           `json:"contacts_used"`
	ContactsRemaining *int                          `json:"contacts_remaining,omitempty"` // nil on unlimited plans
}

// SubscriptionUsecase defines the interface for recruiter subscription management.
type SubscriptionUsecase interface {
	// GetSubscriptionStatus retrieves the recruiter's plan and this month's
	// usage. Recruiters without a subscription row are on the free tier.
	GetSubscriptionStatus(ctx context.Context, recruiterID uuid.UUID) (*SubscriptionStatus, error)

	// ChangeTier switches the recruiter to another plan, effective immediately.
	ChangeTier(ctx context.Context, recruiterID uuid.UUID, tier entity.SubscriptionTier) (*entity.RecruiterSubscription, error)
}
