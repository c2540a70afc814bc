package usecase

import (
	"context"

	"pharmalink/internal/domain/entity"

	"github.com/google/uuid"
)

// NotificationUsecase defines the interface for in-app notification use cases
type NotificationUsecase interface {
	// GetUserNotifications retrieves notifications for a user with pagination
	GetUserNotifications(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Notification, error)

	// CountUnread returns the number of unread notifications for a user
	CountUnread(ctx context.Context, userID uuid.UUID) (int64, error)

	// MarkRead marks a single notification as read
	MarkRead(ctx context.Context, notificationID, userID uuid.UUID) error

	// MarkAllRead marks every unread notification of a user as read
	MarkAllRead(ctx context.Context, userID uuid.UUID) error
}
