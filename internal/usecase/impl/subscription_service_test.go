package impl

import (
	"context"
	"testing"
	"time"

	"pharmalink/internal/domain/entity"
	"pharmalink/internal/domain/repository"
	mockRepo "pharmalink/internal/mocks/repository"
	"pharmalink/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// subscriptionServiceFixtures holds all test dependencies for subscription
// service tests.
type subscriptionServiceFixtures struct {
	service          usecase.SubscriptionUsecase
	subscriptionRepo *mockRepo.MockSubscriptionRepository
}

func createTestSubscriptionService(t *testing.T) subscriptionServiceFixtures {
	subscriptionRepo := mockRepo.NewMockSubscriptionRepository(t)

	return subscriptionServiceFixtures{
		service:          NewSubscriptionService(subscriptionRepo),
		subscriptionRepo: subscriptionRepo,
	}
}

func TestSubscriptionService_GetSubscriptionStatus_FreeByDefault(t *testing.T) {
	fx := createTestSubscriptionService(t)

	ctx := context.Background()
	recruiterID := uuid.New()
	month := monthKey(time.Now())

	fx.subscriptionRepo.On("FindSubscriptionByRecruiter", ctx, recruiterID).
		Return(nil, repository.ErrSubscriptionNotFound)
	fx.subscriptionRepo.On("FindPlanByTier", ctx, entity.TierFree).
		Return(&entity.SubscriptionPlan{Tier: entity.TierFree, ContactsMax: 0, ConnectionFee: 19.9}, nil)
	fx.subscriptionRepo.On("FindMonthlyUsage", ctx, recruiterID, month).
		Return(&entity.MonthlyUsage{RecruiterID: recruiterID, Month: month, ContactsUsed: 0}, nil)

	status, err := fx.service.GetSubscriptionStatus(ctx, recruiterID)

	require.NoError(t, err)
	assert.Nil(t, status.Subscription)
	assert.Equal(t, entity.TierFree, status.Plan.Tier)
	require.NotNil(t, status.ContactsRemaining)
	assert.Equal(t, 0, *status.ContactsRemaining)
}

func TestSubscriptionService_GetSubscriptionStatus_RemainingNeverNegative(t *testing.T) {
	fx := createTestSubscriptionService(t)

	ctx := context.Background()
	recruiterID := uuid.New()
	month := monthKey(time.Now())

	fx.subscriptionRepo.On("FindSubscriptionByRecruiter", ctx, recruiterID).
		Return(&entity.RecruiterSubscription{RecruiterID: recruiterID, Tier: entity.TierEssentiel}, nil)
	fx.subscriptionRepo.On("FindPlanByTier", ctx, entity.TierEssentiel).
		Return(&entity.SubscriptionPlan{Tier: entity.TierEssentiel, ContactsMax: 5, ConnectionFee: 8}, nil)
	// Over-consumption can happen after a downgrade mid-month.
	fx.subscriptionRepo.On("FindMonthlyUsage", ctx, recruiterID, month).
		Return(&entity.MonthlyUsage{RecruiterID: recruiterID, Month: month, ContactsUsed: 7}, nil)

	status, err := fx.service.GetSubscriptionStatus(ctx, recruiterID)

	require.NoError(t, err)
	assert.Equal(t, 7, status.ContactsUsed)
	require.NotNil(t, status.ContactsRemaining)
	assert.Equal(t, 0, *status.ContactsRemaining)
}

func TestSubscriptionService_GetSubscriptionStatus_Unlimited(t *testing.T) {
	fx := createTestSubscriptionService(t)

	ctx := context.Background()
	recruiterID := uuid.New()
	month := monthKey(time.Now())

	fx.subscriptionRepo.On("FindSubscriptionByRecruiter", ctx, recruiterID).
		Return(&entity.RecruiterSubscription{RecruiterID: recruiterID, Tier: entity.TierIllimite}, nil)
	fx.subscriptionRepo.On("FindPlanByTier", ctx, entity.TierIllimite).
		Return(&entity.SubscriptionPlan{Tier: entity.TierIllimite, ContactsMax: entity.UnlimitedContacts}, nil)
	fx.subscriptionRepo.On("FindMonthlyUsage", ctx, recruiterID, month).
		Return(&entity.MonthlyUsage{RecruiterID: recruiterID, Month: month, ContactsUsed: 42}, nil)

	status, err := fx.service.GetSubscriptionStatus(ctx, recruiterID)

	require.NoError(t, err)
	assert.Nil(t, status.ContactsRemaining)
}

func TestSubscriptionService_ChangeTier_Success(t *testing.T) {
	fx := createTestSubscriptionService(t)

	ctx := context.Background()
	recruiterID := uuid.New()

	fx.subscriptionRepo.On("FindPlanByTier", ctx, entity.TierPremium).
		Return(&entity.SubscriptionPlan{Tier: entity.TierPremium, ContactsMax: 15, ConnectionFee: 5}, nil)
	fx.subscriptionRepo.On("UpsertSubscription", ctx, mock.MatchedBy(func(s *entity.RecruiterSubscription) bool {
		return s.RecruiterID == recruiterID && s.Tier == entity.TierPremium
	})).Return(nil)

	subscription, err := fx.service.ChangeTier(ctx, recruiterID, entity.TierPremium)

	require.NoError(t, err)
	assert.Equal(t, entity.TierPremium, subscription.Tier)
}

func TestSubscriptionService_ChangeTier_UnknownTier(t *testing.T) {
	fx := createTestSubscriptionService(t)

	subscription, err := fx.service.ChangeTier(context.Background(), uuid.New(), "platine")

	assert.Nil(t, subscription)
	assertErrorCode(t, err, "VALIDATION_FAILED")
}

func TestSubscriptionService_ChangeTier_TierWithoutPlan(t *testing.T) {
	fx := createTestSubscriptionService(t)

	ctx := context.Background()

	fx.subscriptionRepo.On("FindPlanByTier", ctx, entity.TierPremium).
		Return(nil, repository.ErrPlanNotFound)

	subscription, err := fx.service.ChangeTier(ctx, uuid.New(), entity.TierPremium)

	assert.Nil(t, subscription)
	assertErrorCode(t, err, "VALIDATION_FAILED")
}
