package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
)

// MockPushService is a mock implementation of service.PushService.
type MockPushService struct {
	mock.Mock
}

// NewMockPushService creates a mock wired to the test lifecycle.
func NewMockPushService(t *testing.T) *MockPushService {
	m := &MockPushService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockPushService) SendBatchNotification(ctx context.Context, tokens []string, title, body string, data map[string]string) (int, int, []string, error) {
	args := m.Called(ctx, tokens, title, body, data)

	var invalid []string
	if args.Get(2) != nil {
		invalid = args.Get(2).([]string)
	}

	return args.Int(0), args.Int(1), invalid, args.Error(3)
}

func (m *MockPushService) SendSingleNotification(ctx context.Context, token, title, body string, data map[string]string) error {
	args := m.Called(ctx, token, title, body, data)

	return args.Error(0)
}
