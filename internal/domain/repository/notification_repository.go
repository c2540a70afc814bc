// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"

	"pharmalink/internal/domain/entity"
	"pharmalink/internal/errors"

	"github.com/google/uuid"
)

// ErrNotificationNotFound is returned when a notification is not found.
var ErrNotificationNotFound = errors.New("notification not found")

// NotificationRepository defines the interface for in-app notification database operations.
type NotificationRepository interface {
	// CreateNotification persists a single notification.
	CreateNotification(ctx context.Context, notification *entity.Notification) error

	// BatchCreateNotifications persists multiple notifications in a batch for better performance.
	// Fan-out writes one row per eligible candidate.
	BatchCreateNotifications(ctx context.Context, notifications []*entity.Notification) error

	// FindNotificationsByUser retrieves notifications for a user, newest first.
	FindNotificationsByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Notification, error)

	// CountUnread returns the number of unread notifications for a user.
	CountUnread(ctx context.Context, userID uuid.UUID) (int64, error)

	// MarkRead marks a single notification as read. Scoped to the owner so a
	// user cannot flip someone else's row.
	MarkRead(ctx context.Context, id, userID uuid.UUID) error

	// MarkAllRead marks every unread notification of a user as read.
	MarkAllRead(ctx context.Context, userID uuid.UUID) error
}
