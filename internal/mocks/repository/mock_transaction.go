package repository

import (
	"context"
	"testing"

	"pharmalink/internal/domain/repository"
)

// MockRepositoryFactory hands out the repository mocks configured on it.
// Tests assign the mocks they need; unused accessors return nil.
type MockRepositoryFactory struct {
	AlertRepo        repository.AlertRepository
	MissionRepo      repository.MissionRepository
	SubscriptionRepo repository.SubscriptionRepository
}

func (f *MockRepositoryFactory) NewAlertRepository() repository.AlertRepository {
	return f.AlertRepo
}

func (f *MockRepositoryFactory) NewMissionRepository() repository.MissionRepository {
	return f.MissionRepo
}

func (f *MockRepositoryFactory) NewSubscriptionRepository() repository.SubscriptionRepository {
	return f.SubscriptionRepo
}

// MockTransactionManager runs the transactional function synchronously against
// the supplied factory, so tests can assert the in-transaction repository calls.
type MockTransactionManager struct {
	Factory *MockRepositoryFactory

	// Err short-circuits Execute without invoking fn when set.
	Err error
}

// NewMockTransactionManager creates a transaction manager backed by the given factory.
func NewMockTransactionManager(t *testing.T, factory *MockRepositoryFactory) *MockTransactionManager {
	t.Helper()

	return &MockTransactionManager{Factory: factory}
}

func (m *MockTransactionManager) Execute(_ context.Context, fn func(txRepoFactory repository.RepositoryFactory) error) error {
	if m.Err != nil {
		return m.Err
	}

	return fn(m.Factory)
}
