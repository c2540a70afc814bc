package handler

import (
	"log/slog"
	"net/http"

	"pharmalink/internal/delivery/http/response"
	"pharmalink/internal/domain/entity"
	"pharmalink/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// SubscriptionHandlerParams holds dependencies for SubscriptionHandler, injected by Fx.
type SubscriptionHandlerParams struct {
	fx.In

	SubscriptionUC usecase.SubscriptionUsecase
	Logger         *slog.Logger
}

// SubscriptionHandler holds dependencies for subscription-related handlers.
type SubscriptionHandler struct {
	subscriptionUC usecase.SubscriptionUsecase
	logger         *slog.Logger
}

// NewSubscriptionHandler is the constructor for SubscriptionHandler.
func NewSubscriptionHandler(params SubscriptionHandlerParams) *SubscriptionHandler {
	return &SubscriptionHandler{
		subscriptionUC: params.SubscriptionUC,
		logger:         params.Logger,
	}
}

// ChangeTierRequest represents the request body for switching plans.
type ChangeTierRequest struct {
	Tier string `json:"tier" validate:"required,oneof=free essentiel premium illimite"`
}

// GetStatus handles retrieving the caller's plan and monthly usage.
func (h *SubscriptionHandler) GetStatus(c echo.Context) error {
	userID, err := GetUserID(c)
	if err != nil {
		return err
	}

	status, err := h.subscriptionUC.GetSubscriptionStatus(c.Request().Context(), userID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, status, "Subscription status retrieved successfully")
}

// ChangeTier handles switching the caller to another plan.
func (h *SubscriptionHandler) ChangeTier(c echo.Context) error {
	userID, err := GetUserID(c)
	if err != nil {
		return err
	}

	var req ChangeTierRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid tier input")
	}
	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	subscription, err := h.subscriptionUC.ChangeTier(c.Request().Context(), userID, entity.SubscriptionTier(req.Tier))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, subscription, "Subscription updated successfully")
}
