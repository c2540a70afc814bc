package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"pharmalink/internal/delivery/http/response"
	"pharmalink/internal/domain/entity"
	"pharmalink/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// MissionHandlerParams holds dependencies for MissionHandler, injected by Fx.
type MissionHandlerParams struct {
	fx.In

	MissionUC usecase.MissionUsecase
	Logger    *slog.Logger
}

// MissionHandler holds dependencies for mission lifecycle handlers.
type MissionHandler struct {
	missionUC usecase.MissionUsecase
	logger    *slog.Logger
}

// NewMissionHandler is the constructor for MissionHandler.
func NewMissionHandler(params MissionHandlerParams) *MissionHandler {
	return &MissionHandler{
		missionUC: params.MissionUC,
		logger:    params.Logger,
	}
}

// CreateMissionRequest represents the request body for creating a mission draft.
type CreateMissionRequest struct {
	Title               string    `json:"title" validate:"required"`
	Description         string    `json:"description"`
	SpecialtiesRequired []string  `json:"specialties_required,omitempty"`
	City                string    `json:"city" validate:"required"`
	Department          string    `json:"department"`
	Region              string    `json:"region"`
	Latitude            float64   `json:"latitude" validate:"min=-90,max=90"`
	Longitude           float64   `json:"longitude" validate:"min=-180,max=180"`
	StartDate           time.Time `json:"start_date" validate:"required"`
	EndDate             time.Time `json:"end_date" validate:"required"`
	DailyRateMin        float64   `json:"daily_rate_min" validate:"min=0"`
	DailyRateMax        float64   `json:"daily_rate_max" validate:"min=0"`
}

// SendProposalRequest represents the request body for sending a proposal.
// Every term is required: the animator answers a complete offer.
type SendProposalRequest struct {
	AnimatorID  uuid.UUID `json:"animator_id" validate:"required"`
	DailyRate   float64   `json:"daily_rate" validate:"required,gt=0"`
	StartDate   time.Time `json:"start_date" validate:"required"`
	EndDate     time.Time `json:"end_date" validate:"required"`
	Location    string    `json:"location" validate:"required"`
	Description string    `json:"description" validate:"required"`
}

// CreateMission handles creating a mission draft.
func (h *MissionHandler) CreateMission(c echo.Context) error {
	userID, err := GetUserID(c)
	if err != nil {
		return err
	}

	var req CreateMissionRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid mission input")
	}
	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	mission, err := h.missionUC.CreateMission(c.Request().Context(), userID, usecase.CreateMissionInput{
		Title:               req.Title,
		Description:         req.Description,
		SpecialtiesRequired: req.SpecialtiesRequired,
		City:                req.City,
		Department:          req.Department,
		Region:              req.Region,
		Latitude:            req.Latitude,
		Longitude:           req.Longitude,
		StartDate:           req.StartDate,
		EndDate:             req.EndDate,
		DailyRateMin:        req.DailyRateMin,
		DailyRateMax:        req.DailyRateMax,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, mission, "Mission created successfully")
}

// Publish handles moving a draft mission to open.
func (h *MissionHandler) Publish(c echo.Context) error {
	return h.clientAction(c, h.missionUC.PublishMission, "Mission published successfully")
}

// SendProposal handles binding an animator and a rate to an open mission.
func (h *MissionHandler) SendProposal(c echo.Context) error {
	userID, err := GetUserID(c)
	if err != nil {
		return err
	}

	missionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid mission ID")
	}

	var req SendProposalRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid proposal input")
	}
	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	mission, err := h.missionUC.SendProposal(c.Request().Context(), missionID, userID, usecase.ProposalInput{
		AnimatorID:  req.AnimatorID,
		DailyRate:   req.DailyRate,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Location:    req.Location,
		Description: req.Description,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, mission, "Proposal sent successfully")
}

// AcceptProposal handles the animator's acceptance.
func (h *MissionHandler) AcceptProposal(c echo.Context) error {
	return h.clientAction(c, h.missionUC.AcceptProposal, "Proposal accepted successfully")
}

// DeclineProposal handles the animator's refusal; the mission reopens.
func (h *MissionHandler) DeclineProposal(c echo.Context) error {
	return h.clientAction(c, h.missionUC.DeclineProposal, "Proposal declined, mission reopened")
}

// Confirm handles the client's confirmation and the fee settlement.
func (h *MissionHandler) Confirm(c echo.Context) error {
	userID, err := GetUserID(c)
	if err != nil {
		return err
	}

	missionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid mission ID")
	}

	output, err := h.missionUC.ConfirmMission(c.Request().Context(), missionID, userID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, output, "Mission confirmed successfully")
}

// Start handles moving a confirmed mission to in_progress.
func (h *MissionHandler) Start(c echo.Context) error {
	return h.clientAction(c, h.missionUC.StartMission, "Mission started successfully")
}

// Complete handles closing the engagement.
func (h *MissionHandler) Complete(c echo.Context) error {
	return h.clientAction(c, h.missionUC.CompleteMission, "Mission completed successfully")
}

// Cancel handles cancelling a mission from any non-terminal state.
func (h *MissionHandler) Cancel(c echo.Context) error {
	return h.clientAction(c, h.missionUC.CancelMission, "Mission cancelled successfully")
}

// GetMission handles retrieving a mission with its schedule arithmetic.
func (h *MissionHandler) GetMission(c echo.Context) error {
	missionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid mission ID")
	}

	summary, err := h.missionUC.GetMission(c.Request().Context(), missionID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, summary, "Mission retrieved successfully")
}

// GetMyMissions handles retrieving the missions created by the caller.
func (h *MissionHandler) GetMyMissions(c echo.Context) error {
	userID, err := GetUserID(c)
	if err != nil {
		return err
	}

	missions, err := h.missionUC.GetClientMissions(c.Request().Context(), userID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, missions, "Missions retrieved successfully")
}

// GetAssignedMissions handles retrieving the missions bound to the caller as animator.
func (h *MissionHandler) GetAssignedMissions(c echo.Context) error {
	userID, err := GetUserID(c)
	if err != nil {
		return err
	}

	missions, err := h.missionUC.GetAnimatorMissions(c.Request().Context(), userID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, missions, "Missions retrieved successfully")
}

// CheckFee handles the read-only fee preview before confirmation.
func (h *MissionHandler) CheckFee(c echo.Context) error {
	userID, err := GetUserID(c)
	if err != nil {
		return err
	}

	missionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid mission ID")
	}

	feeStatus, err := h.missionUC.CheckFeeStatus(c.Request().Context(), missionID, userID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, feeStatus, "Fee status retrieved successfully")
}

// clientAction factors the shared shape of single-ID transition endpoints.
func (h *MissionHandler) clientAction(c echo.Context, action func(ctx context.Context, missionID, userID uuid.UUID) (*entity.Mission, error), message string) error {
	userID, err := GetUserID(c)
	if err != nil {
		return err
	}

	missionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid mission ID")
	}

	mission, err := action(c.Request().Context(), missionID, userID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, mission, message)
}
