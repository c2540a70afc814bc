package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"pharmalink/internal/delivery/http/response"
	"pharmalink/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// NotificationHandler holds dependencies for in-app notification handlers.
type NotificationHandler struct {
	uc     usecase.NotificationUsecase
	logger *slog.Logger
}

// NewNotificationHandler is the constructor for NotificationHandler.
func NewNotificationHandler(uc usecase.NotificationUsecase, logger *slog.Logger) *NotificationHandler {
	return &NotificationHandler{
		uc:     uc,
		logger: logger,
	}
}

// GetNotifications handles retrieving the caller's notifications with pagination.
func (h *NotificationHandler) GetNotifications(c echo.Context) error {
	userID, err := GetUserID(c)
	if err != nil {
		return err
	}

	limit := 20
	offset := 0
	if limitStr := c.QueryParam("limit"); limitStr != "" {
		if parsedLimit, err := strconv.Atoi(limitStr); err == nil && parsedLimit > 0 {
			limit = parsedLimit
		}
	}
	if offsetStr := c.QueryParam("offset"); offsetStr != "" {
		if parsedOffset, err := strconv.Atoi(offsetStr); err == nil && parsedOffset >= 0 {
			offset = parsedOffset
		}
	}

	notifications, err := h.uc.GetUserNotifications(c.Request().Context(), userID, limit, offset)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, notifications, "Notifications retrieved successfully")
}

// CountUnread handles the unread badge counter.
func (h *NotificationHandler) CountUnread(c echo.Context) error {
	userID, err := GetUserID(c)
	if err != nil {
		return err
	}

	count, err := h.uc.CountUnread(c.Request().Context(), userID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, map[string]int64{"unread": count}, "Unread count retrieved successfully")
}

// MarkRead handles marking a single notification as read.
func (h *NotificationHandler) MarkRead(c echo.Context) error {
	userID, err := GetUserID(c)
	if err != nil {
		return err
	}

	notificationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid notification ID")
	}

	if err := h.uc.MarkRead(c.Request().Context(), notificationID, userID); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"status": "read"}, "Notification marked as read")
}

// MarkAllRead handles marking every unread notification as read.
func (h *NotificationHandler) MarkAllRead(c echo.Context) error {
	userID, err := GetUserID(c)
	if err != nil {
		return err
	}

	if err := h.uc.MarkAllRead(c.Request().Context(), userID); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"status": "read"}, "Notifications marked as read")
}
