package impl

import (
	"context"
	"testing"
	"time"

	"pharmalink/internal/domain/entity"
	domainerrors "pharmalink/internal/domain/errors"
	"pharmalink/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestMissionService_ConfirmMission_WithinQuota(t *testing.T) {
	fx := createTestMissionService(t)

	ctx := context.Background()
	clientID := uuid.New()
	animatorID := uuid.New()
	accepted := withAnimator(testMission(clientID, entity.MissionStatusAnimatorAccepted), animatorID, 250)
	confirmed := withAnimator(testMission(clientID, entity.MissionStatusConfirmed), animatorID, 250)
	confirmed.ID = accepted.ID
	month := monthKey(time.Now())

	fx.expectFind(ctx, accepted)

	fx.subscriptionRepo.On("FindSubscriptionByRecruiter", ctx, clientID).
		Return(&entity.RecruiterSubscription{RecruiterID: clientID, Tier: entity.TierEssentiel}, nil)
	fx.subscriptionRepo.On("FindPlanByTier", ctx, entity.TierEssentiel).
		Return(&entity.SubscriptionPlan{Tier: entity.TierEssentiel, ContactsMax: 5, ConnectionFee: 8}, nil)
	fx.subscriptionRepo.On("FindMonthlyUsage", ctx, clientID, month).
		Return(&entity.MonthlyUsage{RecruiterID: clientID, Month: month, ContactsUsed: 2}, nil)
	fx.subscriptionRepo.On("IncrementMonthlyUsage", ctx, clientID, month).Return(nil)

	fx.missionRepo.On("TransitionMission", ctx, accepted.ID, entity.MissionStatusAnimatorAccepted,
		entity.MissionStatusConfirmed, mock.MatchedBy(func(patch repository.MissionPatch) bool {
			return patch.SetConfirmedAt != nil
		})).Return(nil)

	fx.notificationRepo.On("CreateNotification", ctx, mock.MatchedBy(func(n *entity.Notification) bool {
		return n.UserID == animatorID
	})).Return(nil)
	fx.expectFind(ctx, confirmed)

	output, err := fx.service.ConfirmMission(ctx, accepted.ID, clientID)

	require.NoError(t, err)
	assert.Equal(t, entity.MissionStatusConfirmed, output.Mission.Status)
	assert.True(t, output.FeeStatus.IncludedInSubscription)
	require.NotNil(t, output.FeeStatus.ContactsRemaining)
	// 5 allowed, 2 already used, one consumed by this confirmation.
	assert.Equal(t, 2, *output.FeeStatus.ContactsRemaining)
	assert.Nil(t, output.FeeStatus.Amount)
}

func TestMissionService_ConfirmMission_QuotaExhausted(t *testing.T) {
	fx := createTestMissionService(t)

	ctx := context.Background()
	clientID := uuid.New()
	animatorID := uuid.New()
	accepted := withAnimator(testMission(clientID, entity.MissionStatusAnimatorAccepted), animatorID, 250)
	confirmed := withAnimator(testMission(clientID, entity.MissionStatusConfirmed), animatorID, 250)
	confirmed.ID = accepted.ID
	month := monthKey(time.Now())

	fx.expectFind(ctx, accepted)

	// No subscription row: the recruiter is on the free tier.
	fx.subscriptionRepo.On("FindSubscriptionByRecruiter", ctx, clientID).
		Return(nil, repository.ErrSubscriptionNotFound)
	fx.subscriptionRepo.On("FindPlanByTier", ctx, entity.TierFree).
		Return(&entity.SubscriptionPlan{Tier: entity.TierFree, ContactsMax: 0, ConnectionFee: 19.9}, nil)
	fx.subscriptionRepo.On("FindMonthlyUsage", ctx, clientID, month).
		Return(&entity.MonthlyUsage{RecruiterID: clientID, Month: month, ContactsUsed: 0}, nil)

	fx.missionRepo.On("TransitionMission", ctx, accepted.ID, entity.MissionStatusAnimatorAccepted,
		entity.MissionStatusConfirmed, mock.MatchedBy(func(patch repository.MissionPatch) bool {
			return patch.SetConfirmedAt != nil
		})).Return(nil)

	fx.notificationRepo.On("CreateNotification", ctx, mock.AnythingOfType("*entity.Notification")).Return(nil)
	fx.expectFind(ctx, confirmed)

	output, err := fx.service.ConfirmMission(ctx, accepted.ID, clientID)

	require.NoError(t, err)
	assert.False(t, output.FeeStatus.IncludedInSubscription)
	require.NotNil(t, output.FeeStatus.ContactsRemaining)
	assert.Equal(t, 0, *output.FeeStatus.ContactsRemaining)
	require.NotNil(t, output.FeeStatus.Amount)
	assert.InDelta(t, 19.9, *output.FeeStatus.Amount, 0.001)
	// No quota to consume on a payable confirmation.
	fx.subscriptionRepo.AssertNotCalled(t, "IncrementMonthlyUsage", ctx, clientID, month)
}

func TestMissionService_ConfirmMission_UnlimitedPlan(t *testing.T) {
	fx := createTestMissionService(t)

	ctx := context.Background()
	clientID := uuid.New()
	animatorID := uuid.New()
	accepted := withAnimator(testMission(clientID, entity.MissionStatusAnimatorAccepted), animatorID, 250)
	confirmed := withAnimator(testMission(clientID, entity.MissionStatusConfirmed), animatorID, 250)
	confirmed.ID = accepted.ID

	fx.expectFind(ctx, accepted)

	fx.subscriptionRepo.On("FindSubscriptionByRecruiter", ctx, clientID).
		Return(&entity.RecruiterSubscription{RecruiterID: clientID, Tier: entity.TierIllimite}, nil)
	fx.subscriptionRepo.On("FindPlanByTier", ctx, entity.TierIllimite).
		Return(&entity.SubscriptionPlan{Tier: entity.TierIllimite, ContactsMax: entity.UnlimitedContacts}, nil)

	fx.missionRepo.On("TransitionMission", ctx, accepted.ID, entity.MissionStatusAnimatorAccepted,
		entity.MissionStatusConfirmed, mock.AnythingOfType("repository.MissionPatch")).Return(nil)

	fx.notificationRepo.On("CreateNotification", ctx, mock.AnythingOfType("*entity.Notification")).Return(nil)
	fx.expectFind(ctx, confirmed)

	output, err := fx.service.ConfirmMission(ctx, accepted.ID, clientID)

	require.NoError(t, err)
	assert.True(t, output.FeeStatus.IncludedInSubscription)
	assert.Nil(t, output.FeeStatus.ContactsRemaining)
	assert.Nil(t, output.FeeStatus.Amount)
	// Unlimited plans never touch the usage counters.
	fx.subscriptionRepo.AssertNotCalled(t, "FindMonthlyUsage", mock.Anything, mock.Anything, mock.Anything)
}

func TestMissionService_ConfirmMission_LostRaceRollsBack(t *testing.T) {
	fx := createTestMissionService(t)

	ctx := context.Background()
	clientID := uuid.New()
	accepted := withAnimator(testMission(clientID, entity.MissionStatusAnimatorAccepted), uuid.New(), 250)
	month := monthKey(time.Now())

	fx.expectFind(ctx, accepted)

	fx.subscriptionRepo.On("FindSubscriptionByRecruiter", ctx, clientID).
		Return(&entity.RecruiterSubscription{RecruiterID: clientID, Tier: entity.TierEssentiel}, nil)
	fx.subscriptionRepo.On("FindPlanByTier", ctx, entity.TierEssentiel).
		Return(&entity.SubscriptionPlan{Tier: entity.TierEssentiel, ContactsMax: 5, ConnectionFee: 8}, nil)
	fx.subscriptionRepo.On("FindMonthlyUsage", ctx, clientID, month).
		Return(&entity.MonthlyUsage{RecruiterID: clientID, Month: month, ContactsUsed: 2}, nil)
	fx.subscriptionRepo.On("IncrementMonthlyUsage", ctx, clientID, month).Return(nil)

	fx.missionRepo.On("TransitionMission", ctx, accepted.ID, entity.MissionStatusAnimatorAccepted,
		entity.MissionStatusConfirmed, mock.AnythingOfType("repository.MissionPatch")).
		Return(repository.ErrMissionStateConflict)

	output, err := fx.service.ConfirmMission(ctx, accepted.ID, clientID)

	assert.Nil(t, output)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidTransition))
}

func TestMissionService_ConfirmMission_NotClient(t *testing.T) {
	fx := createTestMissionService(t)

	ctx := context.Background()
	accepted := withAnimator(testMission(uuid.New(), entity.MissionStatusAnimatorAccepted), uuid.New(), 250)

	fx.expectFind(ctx, accepted)

	output, err := fx.service.ConfirmMission(ctx, accepted.ID, uuid.New())

	assert.Nil(t, output)
	assert.True(t, errors.Is(err, domainerrors.ErrNotMissionClient))
}

func TestMissionService_CheckFeeStatus_ReadOnly(t *testing.T) {
	fx := createTestMissionService(t)

	ctx := context.Background()
	clientID := uuid.New()
	accepted := withAnimator(testMission(clientID, entity.MissionStatusAnimatorAccepted), uuid.New(), 250)
	month := monthKey(time.Now())

	fx.expectFind(ctx, accepted)

	fx.subscriptionRepo.On("FindSubscriptionByRecruiter", ctx, clientID).
		Return(&entity.RecruiterSubscription{RecruiterID: clientID, Tier: entity.TierPremium}, nil)
	fx.subscriptionRepo.On("FindPlanByTier", ctx, entity.TierPremium).
		Return(&entity.SubscriptionPlan{Tier: entity.TierPremium, ContactsMax: 15, ConnectionFee: 5}, nil)
	fx.subscriptionRepo.On("FindMonthlyUsage", ctx, clientID, month).
		Return(&entity.MonthlyUsage{RecruiterID: clientID, Month: month, ContactsUsed: 14}, nil)

	status, err := fx.service.CheckFeeStatus(ctx, accepted.ID, clientID)

	require.NoError(t, err)
	assert.True(t, status.IncludedInSubscription)
	require.NotNil(t, status.ContactsRemaining)
	assert.Equal(t, 1, *status.ContactsRemaining)
	// Checking never consumes anything.
	fx.subscriptionRepo.AssertNotCalled(t, "IncrementMonthlyUsage", mock.Anything, mock.Anything, mock.Anything)
}
