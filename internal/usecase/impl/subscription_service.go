package impl

import (
	"context"
	"time"

	"pharmalink/internal/domain/entity"
	domainerrors "pharmalink/internal/domain/errors"
	"pharmalink/internal/domain/repository"
	"pharmalink/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

type subscriptionService struct {
	subscriptionRepo repository.SubscriptionRepository
}

// NewSubscriptionService creates a new subscription service instance
func NewSubscriptionService(subscriptionRepo repository.SubscriptionRepository) usecase.SubscriptionUsecase {
	return &subscriptionService{
		subscriptionRepo: subscriptionRepo,
	}
}

// GetSubscriptionStatus retrieves the recruiter's plan and this month's
// usage. Recruiters without a subscription row are on the free tier.
func (s *subscriptionService) GetSubscriptionStatus(ctx context.Context, recruiterID uuid.UUID) (*usecase.SubscriptionStatus, error) {
	tier := entity.TierFree
	subscription, err := s.subscriptionRepo.FindSubscriptionByRecruiter(ctx, recruiterID)
	if err != nil {
		if !errors.Is(err, repository.ErrSubscriptionNotFound) {
			return nil, errors.Wrap(err, "failed to find subscription")
		}
		subscription = nil
	} else {
		tier = subscription.Tier
	}

	plan, err := s.subscriptionRepo.FindPlanByTier(ctx, tier)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find plan")
	}

	usage, err := s.subscriptionRepo.FindMonthlyUsage(ctx, recruiterID, monthKey(time.Now()))
	if err != nil {
		return nil, errors.Wrap(err, "failed to find monthly usage")
	}

	status := &usecase.SubscriptionStatus{
		Subscription: subscription,
		Plan:         plan,
		ContactsUsed: usage.ContactsUsed,
	}
	if !plan.IsUnlimited() {
		remaining := max(plan.ContactsMax-usage.ContactsUsed, 0)
		status.ContactsRemaining = &remaining
	}

	return status, nil
}

// ChangeTier switches the recruiter to another plan, effective immediately.
func (s *subscriptionService) ChangeTier(ctx context.Context, recruiterID uuid.UUID, tier entity.SubscriptionTier) (*entity.RecruiterSubscription, error) {
	if !tier.IsValid() {
		return nil, domainerrors.ErrValidationFailed.WithDetails("unknown subscription tier")
	}

	// Make sure the tier actually has a plan before binding it.
	if _, err := s.subscriptionRepo.FindPlanByTier(ctx, tier); err != nil {
		if errors.Is(err, repository.ErrPlanNotFound) {
			return nil, domainerrors.ErrValidationFailed.WithDetails("tier has no configured plan")
		}

		return nil, errors.Wrap(err, "failed to find plan")
	}

	now := time.Now()
	subscription := &entity.RecruiterSubscription{
		RecruiterID: recruiterID,
		Tier:        tier,
		StartedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.subscriptionRepo.UpsertSubscription(ctx, subscription); err != nil {
		return nil, errors.Wrap(err, "failed to upsert subscription")
	}

	return subscription, nil
}
