// Package repository contains hand-written testify mocks for the persistence interfaces.
package repository

import (
	"context"
	"testing"
	"time"

	"pharmalink/internal/domain/entity"
	"pharmalink/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockAlertRepository is a mock implementation of repository.AlertRepository.
type MockAlertRepository struct {
	mock.Mock
}

// NewMockAlertRepository creates a mock wired to the test lifecycle.
func NewMockAlertRepository(t *testing.T) *MockAlertRepository {
	m := &MockAlertRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockAlertRepository) CreateAlert(ctx context.Context, alert *entity.UrgentAlert) error {
	args := m.Called(ctx, alert)

	return args.Error(0)
}

func (m *MockAlertRepository) FindAlertByID(ctx context.Context, id uuid.UUID) (*entity.UrgentAlert, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.UrgentAlert), args.Error(1)
}

func (m *MockAlertRepository) FindAlertsByCreator(ctx context.Context, creatorID uuid.UUID, filter repository.AlertFilter) ([]*entity.UrgentAlert, error) {
	args := m.Called(ctx, creatorID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.UrgentAlert), args.Error(1)
}

func (m *MockAlertRepository) FindActiveAlertsForCandidate(ctx context.Context, candidateID uuid.UUID) ([]*entity.UrgentAlert, error) {
	args := m.Called(ctx, candidateID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.UrgentAlert), args.Error(1)
}

func (m *MockAlertRepository) UpdateAlertStatus(ctx context.Context, id uuid.UUID, from, to entity.AlertStatus, filledAt *time.Time) error {
	args := m.Called(ctx, id, from, to, filledAt)

	return args.Error(0)
}

func (m *MockAlertRepository) UpdateAlertDetails(ctx context.Context, id uuid.UUID, patch repository.AlertPatch) error {
	args := m.Called(ctx, id, patch)

	return args.Error(0)
}

func (m *MockAlertRepository) UpdateNotifiedCount(ctx context.Context, id uuid.UUID, count int) error {
	args := m.Called(ctx, id, count)

	return args.Error(0)
}

func (m *MockAlertRepository) ExpireOverdueAlerts(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)

	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAlertRepository) FindEligibleCandidates(ctx context.Context, alert *entity.UrgentAlert) ([]*entity.EligibleCandidate, error) {
	args := m.Called(ctx, alert)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.EligibleCandidate), args.Error(1)
}

func (m *MockAlertRepository) CreateResponse(ctx context.Context, response *entity.AlertResponse) error {
	args := m.Called(ctx, response)

	return args.Error(0)
}

func (m *MockAlertRepository) FindResponsesByAlert(ctx context.Context, alertID uuid.UUID) ([]*entity.AlertResponse, error) {
	args := m.Called(ctx, alertID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.AlertResponse), args.Error(1)
}

func (m *MockAlertRepository) FindResponse(ctx context.Context, alertID, candidateID uuid.UUID) (*entity.AlertResponse, error) {
	args := m.Called(ctx, alertID, candidateID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.AlertResponse), args.Error(1)
}

func (m *MockAlertRepository) HasResponded(ctx context.Context, alertID, candidateID uuid.UUID) (bool, error) {
	args := m.Called(ctx, alertID, candidateID)

	return args.Bool(0), args.Error(1)
}

func (m *MockAlertRepository) UpdateResponseStatus(ctx context.Context, alertID, candidateID uuid.UUID, from, to entity.ResponseStatus) error {
	args := m.Called(ctx, alertID, candidateID, from, to)

	return args.Error(0)
}

func (m *MockAlertRepository) RejectSiblingResponses(ctx context.Context, alertID, acceptedCandidateID uuid.UUID) (int64, error) {
	args := m.Called(ctx, alertID, acceptedCandidateID)

	return args.Get(0).(int64), args.Error(1)
}
