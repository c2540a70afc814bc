// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"
	"time"

	"pharmalink/internal/delivery/http/response"
	"pharmalink/internal/domain/entity"
	"pharmalink/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// UserHandler holds dependencies for user-related handlers.
type UserHandler struct {
	uc     usecase.UserUsecase
	logger *slog.Logger
}

// NewUserHandler is the constructor for UserHandler, injected by Fx.
func NewUserHandler(uc usecase.UserUsecase, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		uc:     uc,
		logger: logger,
	}
}

// RegisterRequest represents the request body for user registration.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// LoginRequest represents the request body for login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// CandidateProfileRequest represents the worker-side profile payload.
type CandidateProfileRequest struct {
	Position      string   `json:"position" validate:"required"`
	Specialties   []string `json:"specialties,omitempty"`
	City          string   `json:"city" validate:"required"`
	Latitude      float64  `json:"latitude" validate:"min=-90,max=90"`
	Longitude     float64  `json:"longitude" validate:"min=-180,max=180"`
	AlertRadiusKm float64  `json:"alert_radius_km"`
	AlertsEnabled bool     `json:"alerts_enabled"`
}

// RecruiterProfileRequest represents the recruiter-side profile payload.
type RecruiterProfileRequest struct {
	Type        string  `json:"type" validate:"required,oneof=pharmacy laboratory"`
	CompanyName string  `json:"company_name" validate:"required"`
	City        string  `json:"city" validate:"required"`
	Latitude    float64 `json:"latitude" validate:"min=-90,max=90"`
	Longitude   float64 `json:"longitude" validate:"min=-180,max=180"`
}

// Register handles the user registration request.
func (h *UserHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid registration input")
	}
	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	output, err := h.uc.Register(c.Request().Context(), usecase.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, output.User, "User registered successfully")
}

// Login handles the user login request.
func (h *UserHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid login input")
	}
	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	output, err := h.uc.Login(c.Request().Context(), usecase.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, output, "Login successful")
}

// GetProfile handles the request to get the current user's profile.
func (h *UserHandler) GetProfile(c echo.Context) error {
	userID, err := GetUserID(c)
	if err != nil {
		return err
	}

	user, err := h.uc.GetProfile(c.Request().Context(), userID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, user, "Profile retrieved successfully")
}

// UpsertCandidateProfile creates or replaces the worker-side profile.
func (h *UserHandler) UpsertCandidateProfile(c echo.Context) error {
	userID, err := GetUserID(c)
	if err != nil {
		return err
	}

	var req CandidateProfileRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid profile input")
	}
	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	profile, err := h.uc.UpsertCandidateProfile(c.Request().Context(), userID, usecase.CandidateProfileInput{
		Position:      entity.PositionType(req.Position),
		Specialties:   req.Specialties,
		City:          req.City,
		Latitude:      req.Latitude,
		Longitude:     req.Longitude,
		AlertRadiusKm: req.AlertRadiusKm,
		AlertsEnabled: req.AlertsEnabled,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, profile, "Candidate profile saved successfully")
}

// UpsertRecruiterProfile creates or replaces the recruiter-side profile.
func (h *UserHandler) UpsertRecruiterProfile(c echo.Context) error {
	userID, err := GetUserID(c)
	if err != nil {
		return err
	}

	var req RecruiterProfileRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid profile input")
	}
	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	profile, err := h.uc.UpsertRecruiterProfile(c.Request().Context(), userID, usecase.RecruiterProfileInput{
		Type:        entity.CreatorType(req.Type),
		CompanyName: req.CompanyName,
		City:        req.City,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, profile, "Recruiter profile saved successfully")
}

// GetUserID extracts the authenticated user ID from the echo context.
func GetUserID(c echo.Context) (uuid.UUID, error) {
	userIDVal := c.Get("userID")
	userID, ok := userIDVal.(uuid.UUID)
	if !ok {
		return uuid.Nil, response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	return userID, nil
}

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	}, "Service is healthy")
}
