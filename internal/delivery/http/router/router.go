// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"pharmalink/internal/delivery/http/middleware"
	"pharmalink/internal/delivery/http/router/handler"
	"pharmalink/internal/domain/entity"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	UserHandler         *handler.UserHandler
	AlertHandler        *handler.AlertHandler
	MissionHandler      *handler.MissionHandler
	SubscriptionHandler *handler.SubscriptionHandler
	NotificationHandler *handler.NotificationHandler
	DeviceHandler       *handler.DeviceHandler
	AuthMiddleware      *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	userHandler         *handler.UserHandler
	alertHandler        *handler.AlertHandler
	missionHandler      *handler.MissionHandler
	subscriptionHandler *handler.SubscriptionHandler
	notificationHandler *handler.NotificationHandler
	deviceHandler       *handler.DeviceHandler
	authMiddleware      *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		userHandler:         params.UserHandler,
		alertHandler:        params.AlertHandler,
		missionHandler:      params.MissionHandler,
		subscriptionHandler: params.SubscriptionHandler,
		notificationHandler: params.NotificationHandler,
		deviceHandler:       params.DeviceHandler,
		authMiddleware:      params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Auth routes
	authGroup := e.Group("/auth")
	{
		authGroup.POST("/register", r.userHandler.Register)
		authGroup.POST("/login", r.userHandler.Login)
	}

	// User routes that require authentication
	userGroup := e.Group("/user")
	userGroup.Use(r.authMiddleware.Authenticate)
	{
		userGroup.GET("/profile", r.userHandler.GetProfile)
		userGroup.PUT("/profile/candidate", r.userHandler.UpsertCandidateProfile)
		userGroup.PUT("/profile/recruiter", r.userHandler.UpsertRecruiterProfile)
	}

	// Urgent alert routes
	alertGroup := e.Group("/alerts")
	alertGroup.Use(r.authMiddleware.Authenticate)
	{
		alertGroup.POST("", r.alertHandler.CreateAlert, r.authMiddleware.RequireRole(entity.RoleRecruiter.String()))
		alertGroup.GET("/mine", r.alertHandler.GetMyAlerts, r.authMiddleware.RequireRole(entity.RoleRecruiter.String()))
		alertGroup.GET("/eligible", r.alertHandler.GetEligibleAlerts, r.authMiddleware.RequireRole(entity.RoleCandidate.String()))
		alertGroup.GET("/:id", r.alertHandler.GetAlert)
		alertGroup.PUT("/:id", r.alertHandler.UpdateAlert, r.authMiddleware.RequireRole(entity.RoleRecruiter.String()))
		alertGroup.GET("/:id/qr", r.alertHandler.GetQRCode)
		alertGroup.POST("/:id/respond", r.alertHandler.Respond, r.authMiddleware.RequireRole(entity.RoleCandidate.String()))
		alertGroup.GET("/:id/responded", r.alertHandler.HasResponded, r.authMiddleware.RequireRole(entity.RoleCandidate.String()))
		alertGroup.GET("/:id/responses", r.alertHandler.GetResponses)
		alertGroup.POST("/:id/accept/:candidateId", r.alertHandler.AcceptCandidate)
		alertGroup.POST("/:id/reject/:candidateId", r.alertHandler.RejectCandidate)
		alertGroup.POST("/:id/fill", r.alertHandler.MarkFilled)
		alertGroup.POST("/:id/cancel", r.alertHandler.Cancel)
	}

	// Mission lifecycle routes
	missionGroup := e.Group("/missions")
	missionGroup.Use(r.authMiddleware.Authenticate)
	{
		missionGroup.POST("", r.missionHandler.CreateMission, r.authMiddleware.RequireRole(entity.RoleRecruiter.String()))
		missionGroup.GET("/mine", r.missionHandler.GetMyMissions)
		missionGroup.GET("/assigned", r.missionHandler.GetAssignedMissions)
		missionGroup.GET("/:id", r.missionHandler.GetMission)
		missionGroup.POST("/:id/publish", r.missionHandler.Publish)
		missionGroup.POST("/:id/proposal", r.missionHandler.SendProposal)
		missionGroup.POST("/:id/proposal/accept", r.missionHandler.AcceptProposal)
		missionGroup.POST("/:id/proposal/decline", r.missionHandler.DeclineProposal)
		missionGroup.GET("/:id/fee", r.missionHandler.CheckFee)
		missionGroup.POST("/:id/confirm", r.missionHandler.Confirm)
		missionGroup.POST("/:id/start", r.missionHandler.Start)
		missionGroup.POST("/:id/complete", r.missionHandler.Complete)
		missionGroup.POST("/:id/cancel", r.missionHandler.Cancel)
	}

	// Subscription routes, recruiter side
	subscriptionGroup := e.Group("/subscription")
	subscriptionGroup.Use(r.authMiddleware.Authenticate)
	subscriptionGroup.Use(r.authMiddleware.RequireRole(entity.RoleRecruiter.String()))
	{
		subscriptionGroup.GET("", r.subscriptionHandler.GetStatus)
		subscriptionGroup.PUT("", r.subscriptionHandler.ChangeTier)
	}

	// In-app notification routes
	notificationGroup := e.Group("/notifications")
	notificationGroup.Use(r.authMiddleware.Authenticate)
	{
		notificationGroup.GET("", r.notificationHandler.GetNotifications)
		notificationGroup.GET("/unread", r.notificationHandler.CountUnread)
		notificationGroup.POST("/:id/read", r.notificationHandler.MarkRead)
		notificationGroup.POST("/read-all", r.notificationHandler.MarkAllRead)
	}

	// Device routes for push registration
	deviceGroup := e.Group("/devices")
	deviceGroup.Use(r.authMiddleware.Authenticate)
	{
		deviceGroup.POST("", r.deviceHandler.RegisterDevice)
		deviceGroup.GET("", r.deviceHandler.GetUserDevices)
		deviceGroup.DELETE("/:id", r.deviceHandler.RemoveDevice)
	}
}
