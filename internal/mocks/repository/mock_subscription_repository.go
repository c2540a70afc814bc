package repository

import (
	"context"
	"testing"

	"pharmalink/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockSubscriptionRepository is a mock implementation of repository.SubscriptionRepository.
type MockSubscriptionRepository struct {
	mock.Mock
}

// NewMockSubscriptionRepository creates a mock wired to the test lifecycle.
func NewMockSubscriptionRepository(t *testing.T) *MockSubscriptionRepository {
	m := &MockSubscriptionRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockSubscriptionRepository) FindPlanByTier(ctx context.Context, tier entity.SubscriptionTier) (*entity.SubscriptionPlan, error) {
	args := m.Called(ctx, tier)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.SubscriptionPlan), args.Error(1)
}

func (m *MockSubscriptionRepository) FindSubscriptionByRecruiter(ctx context.Context, recruiterID uuid.UUID) (*entity.RecruiterSubscription, error) {
	args := m.Called(ctx, recruiterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.RecruiterSubscription), args.Error(1)
}

func (m *MockSubscriptionRepository) UpsertSubscription(ctx context.Context, subscription *entity.RecruiterSubscription) error {
	args := m.Called(ctx, subscription)

	return args.Error(0)
}

func (m *MockSubscriptionRepository) FindMonthlyUsage(ctx context.Context, recruiterID uuid.UUID, month string) (*entity.MonthlyUsage, error) {
	args := m.Called(ctx, recruiterID, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.MonthlyUsage), args.Error(1)
}

func (m *MockSubscriptionRepository) IncrementMonthlyUsage(ctx context.Context, recruiterID uuid.UUID, month string) error {
	args := m.Called(ctx, recruiterID, month)

	return args.Error(0)
}
