// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"

	"pharmalink/internal/domain/entity"
	"pharmalink/internal/errors"

	"github.com/google/uuid"
)

// Domain-specific errors for subscription persistence.
var (
	// ErrSubscriptionNotFound is returned when a recruiter has no subscription row.
	ErrSubscriptionNotFound = errors.New("subscription not found")
	// ErrPlanNotFound is returned when a tier has no configured plan.
	ErrPlanNotFound = errors.New("subscription plan not found")
)

// SubscriptionRepository defines the interface for subscription and usage accounting operations.
type SubscriptionRepository interface {
	// FindPlanByTier retrieves the plan definition for a tier.
	FindPlanByTier(ctx context.Context, tier entity.SubscriptionTier) (*entity.SubscriptionPlan, error)

	// FindSubscriptionByRecruiter retrieves the current subscription of a recruiter.
	// Recruiters without a row are on the free tier.
	FindSubscriptionByRecruiter(ctx context.Context, recruiterID uuid.UUID) (*entity.RecruiterSubscription, error)

	// UpsertSubscription creates or replaces the subscription of a recruiter.
	UpsertSubscription(ctx context.Context, subscription *entity.RecruiterSubscription) error

	// FindMonthlyUsage retrieves the usage counter for a recruiter and month.
	// A missing row means zero contacts used.
	FindMonthlyUsage(ctx context.Context, recruiterID uuid.UUID, month string) (*entity.MonthlyUsage, error)

	// IncrementMonthlyUsage adds one contact to the recruiter's counter for the
	// month, creating the row when absent. Runs as a single upsert so
	// concurrent confirmations never lose an increment.
	IncrementMonthlyUsage(ctx context.Context, recruiterID uuid.UUID, month string) error
}
