package repository

import (
	"context"
	"testing"

	"pharmalink/internal/domain/entity"
	"pharmalink/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockMissionRepository is a mock implementation of repository.MissionRepository.
type MockMissionRepository struct {
	mock.Mock
}

// NewMockMissionRepository creates a mock wired to the test lifecycle.
func NewMockMissionRepository(t *testing.T) *MockMissionRepository {
	m := &MockMissionRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockMissionRepository) CreateMission(ctx context.Context, mission *entity.Mission) error {
	args := m.Called(ctx, mission)

	return args.Error(0)
}

func (m *MockMissionRepository) FindMissionByID(ctx context.Context, id uuid.UUID) (*entity.Mission, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Mission), args.Error(1)
}

func (m *MockMissionRepository) FindMissionsByClient(ctx context.Context, clientID uuid.UUID) ([]*entity.Mission, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.Mission), args.Error(1)
}

func (m *MockMissionRepository) FindMissionsByAnimator(ctx context.Context, animatorID uuid.UUID) ([]*entity.Mission, error) {
	args := m.Called(ctx, animatorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.Mission), args.Error(1)
}

func (m *MockMissionRepository) TransitionMission(ctx context.Context, id uuid.UUID, from, to entity.MissionStatus, patch repository.MissionPatch) error {
	args := m.Called(ctx, id, from, to, patch)

	return args.Error(0)
}
