package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"pharmalink/internal/delivery/http/response"
	"pharmalink/internal/domain/entity"
	"pharmalink/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// AlertHandlerParams holds dependencies for AlertHandler, injected by Fx.
type AlertHandlerParams struct {
	fx.In

	AlertUC usecase.AlertUsecase
	Logger  *slog.Logger
}

// AlertHandler holds dependencies for urgent alert handlers.
type AlertHandler struct {
	alertUC usecase.AlertUsecase
	logger  *slog.Logger
}

// NewAlertHandler is the constructor for AlertHandler.
func NewAlertHandler(params AlertHandlerParams) *AlertHandler {
	return &AlertHandler{
		alertUC: params.AlertUC,
		logger:  params.Logger,
	}
}

// CreateAlertRequest represents the request body for publishing an alert.
type CreateAlertRequest struct {
	Title               string    `json:"title" validate:"required"`
	Description         string    `json:"description"`
	PositionType        string    `json:"position_type" validate:"required"`
	RequiredSpecialties []string  `json:"required_specialties,omitempty"`
	StartDate           time.Time `json:"start_date" validate:"required"`
	EndDate             time.Time `json:"end_date" validate:"required"`
	Latitude            float64   `json:"latitude" validate:"min=-90,max=90"`
	Longitude           float64   `json:"longitude" validate:"min=-180,max=180"`
	RadiusKm            float64   `json:"radius_km"`
	City                string    `json:"city" validate:"required"`
	HourlyRate          *float64  `json:"hourly_rate,omitempty"`
}

// UpdateAlertRequest represents the request body for editing an alert.
// Absent fields are left untouched.
type UpdateAlertRequest struct {
	Title       *string  `json:"title,omitempty"`
	Description *string  `json:"description,omitempty"`
	HourlyRate  *float64 `json:"hourly_rate,omitempty"`
}

// RespondRequest represents the request body for responding to an alert.
type RespondRequest struct {
	Message string `json:"message"`
}

// CreateAlert handles publishing a new urgent alert.
func (h *AlertHandler) CreateAlert(c echo.Context) error {
	userID, err := GetUserID(c)
	if err != nil {
		return err
	}

	var req CreateAlertRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid alert input")
	}
	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	alert, err := h.alertUC.CreateAlert(c.Request().Context(), userID, h.toCreateInput(req))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, alert, "Alert published successfully")
}

func (h *AlertHandler) toCreateInput(req CreateAlertRequest) usecase.CreateAlertInput {
	return usecase.CreateAlertInput{
		Title:               req.Title,
		Description:         req.Description,
		PositionType:        entity.PositionType(req.PositionType),
		RequiredSpecialties: req.RequiredSpecialties,
		StartDate:           req.StartDate,
		EndDate:             req.EndDate,
		Latitude:            req.Latitude,
		Longitude:           req.Longitude,
		RadiusKm:            req.RadiusKm,
		City:                req.City,
		HourlyRate:          req.HourlyRate,
	}
}

// GetAlert handles retrieving a single alert.
func (h *AlertHandler) GetAlert(c echo.Context) error {
	alertID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid alert ID")
	}

	alert, err := h.alertUC.GetAlert(c.Request().Context(), alertID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, alert, "Alert retrieved successfully")
}

// UpdateAlert handles editing the descriptive fields of an alert.
func (h *AlertHandler) UpdateAlert(c echo.Context) error {
	userID, err := GetUserID(c)
	if err != nil {
		return err
	}

	alertID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid alert ID")
	}

	var req UpdateAlertRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid alert input")
	}

	alert, err := h.alertUC.UpdateAlert(c.Request().Context(), alertID, userID, usecase.UpdateAlertInput{
		Title:       req.Title,
		Description: req.Description,
		HourlyRate:  req.HourlyRate,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, alert, "Alert updated successfully")
}

// GetMyAlerts handles retrieving the alerts published by the caller. The
// listing accepts repeated status query parameters and a limit.
func (h *AlertHandler) GetMyAlerts(c echo.Context) error {
	userID, err := GetUserID(c)
	if err != nil {
		return err
	}

	filter := usecase.AlertListFilter{}
	for _, status := range c.QueryParams()["status"] {
		filter.Statuses = append(filter.Statuses, entity.AlertStatus(status))
	}
	if raw := c.QueryParam("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			return response.BadRequest(c, "INVALID_INPUT", "Invalid limit")
		}
		filter.Limit = limit
	}

	alerts, err := h.alertUC.GetCreatorAlerts(c.Request().Context(), userID, filter)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, alerts, "Alerts retrieved successfully")
}

// GetEligibleAlerts handles retrieving the open alerts the caller may respond to.
func (h *AlertHandler) GetEligibleAlerts(c echo.Context) error {
	userID, err := GetUserID(c)
	if err != nil {
		return err
	}

	alerts, err := h.alertUC.GetCandidateAlerts(c.Request().Context(), userID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, alerts, "Eligible alerts retrieved successfully")
}

// Respond handles a candidate's response to an alert.
func (h *AlertHandler) Respond(c echo.Context) error {
	userID, err := GetUserID(c)
	if err != nil {
		return err
	}

	alertID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid alert ID")
	}

	var req RespondRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid response input")
	}

	resp, err := h.alertUC.RespondToAlert(c.Request().Context(), alertID, userID, usecase.RespondInput{
		Message: req.Message,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, resp, "Response recorded successfully")
}

// HasResponded reports whether the caller already responded to an alert.
func (h *AlertHandler) HasResponded(c echo.Context) error {
	userID, err := GetUserID(c)
	if err != nil {
		return err
	}

	alertID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid alert ID")
	}

	responded, err := h.alertUC.HasResponded(c.Request().Context(), alertID, userID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, map[string]bool{"responded": responded}, "Response status retrieved successfully")
}

// GetResponses handles retrieving the responses to an alert, creator only.
func (h *AlertHandler) GetResponses(c echo.Context) error {
	userID, err := GetUserID(c)
	if err != nil {
		return err
	}

	alertID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid alert ID")
	}

	responses, err := h.alertUC.GetAlertResponses(c.Request().Context(), alertID, userID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, responses, "Responses retrieved successfully")
}

// AcceptCandidate handles accepting one candidate's response.
func (h *AlertHandler) AcceptCandidate(c echo.Context) error {
	userID, err := GetUserID(c)
	if err != nil {
		return err
	}

	alertID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid alert ID")
	}

	candidateID, err := uuid.Parse(c.Param("candidateId"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid candidate ID")
	}

	if err := h.alertUC.AcceptCandidate(c.Request().Context(), alertID, userID, candidateID); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"status": "filled"}, "Candidate accepted successfully")
}

// RejectCandidate handles turning down one candidate's response.
func (h *AlertHandler) RejectCandidate(c echo.Context) error {
	userID, err := GetUserID(c)
	if err != nil {
		return err
	}

	alertID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid alert ID")
	}

	candidateID, err := uuid.Parse(c.Param("candidateId"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid candidate ID")
	}

	if err := h.alertUC.RejectCandidate(c.Request().Context(), alertID, userID, candidateID); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"status": "rejected"}, "Candidate rejected successfully")
}

// MarkFilled handles flipping an alert to filled without naming a winner.
func (h *AlertHandler) MarkFilled(c echo.Context) error {
	userID, err := GetUserID(c)
	if err != nil {
		return err
	}

	alertID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid alert ID")
	}

	if err := h.alertUC.MarkAsFilled(c.Request().Context(), alertID, userID); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"status": "filled"}, "Alert marked as filled successfully")
}

// Cancel handles withdrawing an active alert.
func (h *AlertHandler) Cancel(c echo.Context) error {
	userID, err := GetUserID(c)
	if err != nil {
		return err
	}

	alertID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid alert ID")
	}

	if err := h.alertUC.CancelAlert(c.Request().Context(), alertID, userID); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"status": "cancelled"}, "Alert cancelled successfully")
}

// GetQRCode handles rendering the QR code that deep-links to an alert.
func (h *AlertHandler) GetQRCode(c echo.Context) error {
	alertID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid alert ID")
	}

	png, err := h.alertUC.GenerateAlertQR(c.Request().Context(), alertID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return c.Blob(http.StatusOK, "image/png", png)
}
