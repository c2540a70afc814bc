package impl

import (
	"context"
	"testing"

	"pharmalink/internal/domain/entity"
	domainerrors "pharmalink/internal/domain/errors"
	"pharmalink/internal/domain/repository"
	mockRepo "pharmalink/internal/mocks/repository"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotificationService_GetUserNotifications_PaginationDefaults(t *testing.T) {
	notificationRepo := mockRepo.NewMockNotificationRepository(t)
	service := NewNotificationService(notificationRepo)

	ctx := context.Background()
	userID := uuid.New()

	// Zero limit falls back to the default page size, negative offset to 0.
	notificationRepo.On("FindNotificationsByUser", ctx, userID, 20, 0).
		Return([]*entity.Notification{}, nil)

	_, err := service.GetUserNotifications(ctx, userID, 0, -5)

	assert.NoError(t, err)
}

func TestNotificationService_GetUserNotifications_LimitClamped(t *testing.T) {
	notificationRepo := mockRepo.NewMockNotificationRepository(t)
	service := NewNotificationService(notificationRepo)

	ctx := context.Background()
	userID := uuid.New()

	notificationRepo.On("FindNotificationsByUser", ctx, userID, 100, 40).
		Return([]*entity.Notification{}, nil)

	_, err := service.GetUserNotifications(ctx, userID, 500, 40)

	assert.NoError(t, err)
}

func TestNotificationService_CountUnread(t *testing.T) {
	notificationRepo := mockRepo.NewMockNotificationRepository(t)
	service := NewNotificationService(notificationRepo)

	ctx := context.Background()
	userID := uuid.New()

	notificationRepo.On("CountUnread", ctx, userID).Return(int64(4), nil)

	count, err := service.CountUnread(ctx, userID)

	require.NoError(t, err)
	assert.Equal(t, int64(4), count)
}

func TestNotificationService_MarkRead_NotFound(t *testing.T) {
	notificationRepo := mockRepo.NewMockNotificationRepository(t)
	service := NewNotificationService(notificationRepo)

	ctx := context.Background()
	notificationID := uuid.New()
	userID := uuid.New()

	notificationRepo.On("MarkRead", ctx, notificationID, userID).
		Return(repository.ErrNotificationNotFound)

	err := service.MarkRead(ctx, notificationID, userID)

	assert.True(t, errors.Is(err, domainerrors.ErrNotificationNotFound))
}

func TestNotificationService_MarkAllRead(t *testing.T) {
	notificationRepo := mockRepo.NewMockNotificationRepository(t)
	service := NewNotificationService(notificationRepo)

	ctx := context.Background()
	userID := uuid.New()

	notificationRepo.On("MarkAllRead", ctx, userID).Return(nil)

	assert.NoError(t, service.MarkAllRead(ctx, userID))
}
