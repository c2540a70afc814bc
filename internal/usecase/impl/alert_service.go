// Package impl contains the concrete implementations of the use case interfaces.
package impl

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"pharmalink/config"
	deliverycontext "pharmalink/internal/delivery/context"
	"pharmalink/internal/domain/constants"
	"pharmalink/internal/domain/entity"
	domainerrors "pharmalink/internal/domain/errors"
	"pharmalink/internal/domain/repository"
	"pharmalink/internal/domain/service"
	"pharmalink/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
	"gorm.io/datatypes"
)

const (
	// Firebase batch size limit
	firebaseBatchSize = 500

	defaultAlertRadiusKm = 30.0
	maxAlertRadiusKm     = 200.0
)

type alertService struct {
	alertRepo        repository.AlertRepository
	userRepo         repository.UserRepository
	notificationRepo repository.NotificationRepository
	deviceRepo       repository.DeviceRepository
	txManager        repository.TransactionManager
	pushService      service.PushService
	eventPublisher   service.EventPublisher
	qrcodeService    service.QRCodeService
	distance         usecase.DistanceUsecase
	config           *config.Config
	logger           *slog.Logger
}

// AlertServiceParams holds dependencies for AlertService, injected by Fx.
type AlertServiceParams struct {
	fx.In

	AlertRepo        repository.AlertRepository
	UserRepo         repository.UserRepository
	NotificationRepo repository.NotificationRepository
	DeviceRepo       repository.DeviceRepository
	TxManager        repository.TransactionManager
	PushService      service.PushService
	EventPublisher   service.EventPublisher
	QRCodeService    service.QRCodeService
	Distance         usecase.DistanceUsecase
	Config           *config.Config
	Logger           *slog.Logger
}

// NewAlertService creates a new alert service instance
func NewAlertService(params AlertServiceParams) usecase.AlertUsecase {
	return &alertService{
		alertRepo:        params.AlertRepo,
		userRepo:         params.UserRepo,
		notificationRepo: params.NotificationRepo,
		deviceRepo:       params.DeviceRepo,
		txManager:        params.TxManager,
		pushService:      params.PushService,
		eventPublisher:   params.EventPublisher,
		qrcodeService:    params.QRCodeService,
		distance:         params.Distance,
		config:           params.Config,
		logger:           params.Logger,
	}
}

// CreateAlert validates and persists an alert, then fans out notifications.
func (s *alertService) CreateAlert(ctx context.Context, creatorID uuid.UUID, input usecase.CreateAlertInput) (*entity.UrgentAlert, error) {
	profile, err := s.userRepo.FindRecruiterProfile(ctx, creatorID)
	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return nil, domainerrors.ErrForbidden.WrapMessage("recruiter profile required to publish alerts")
		}

		return nil, errors.Wrap(err, "failed to load recruiter profile")
	}

	// Laboratory alerts are always animator searches.
	if profile.Type == entity.CreatorTypeLaboratory {
		input.PositionType = entity.PositionAnimateur
	}

	if err := s.validateAlertInput(profile.Type, input); err != nil {
		return nil, err
	}

	radius := input.RadiusKm
	if radius <= 0 {
		radius = s.defaultRadiusKm()
	}

	now := time.Now()
	alert := &entity.UrgentAlert{
		CreatorID:           creatorID,
		CreatorType:         profile.Type,
		Title:               input.Title,
		Description:         input.Description,
		PositionType:        input.PositionType,
		RequiredSpecialties: input.RequiredSpecialties,
		StartDate:           input.StartDate,
		EndDate:             input.EndDate,
		ExpiresAt:           input.EndDate.Add(entity.AlertExpiryDelay),
		Latitude:            input.Latitude,
		Longitude:           input.Longitude,
		RadiusKm:            radius,
		City:                input.City,
		HourlyRate:          input.HourlyRate,
		Status:              entity.AlertStatusActive,
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	if err := s.alertRepo.CreateAlert(ctx, alert); err != nil {
		return nil, err
	}

	// Fan-out is best effort: a created alert is never rolled back because
	// notification delivery failed.
	s.fanOut(ctx, alert)

	return alert, nil
}

// validateAlertInput checks schedule and geometry before persisting anything.
func (s *alertService) validateAlertInput(creatorType entity.CreatorType, input usecase.CreateAlertInput) error {
	if input.Title == "" {
		return domainerrors.ErrValidationFailed.WithDetails("title is required")
	}
	if !input.PositionType.IsValid() {
		return domainerrors.ErrValidationFailed.WithDetails("unknown position type")
	}
	if input.StartDate.IsZero() || input.EndDate.IsZero() {
		return domainerrors.ErrValidationFailed.WithDetails("start and end dates are required")
	}
	if input.EndDate.Before(input.StartDate) {
		return domainerrors.ErrValidationFailed.WithDetails("end date precedes start date")
	}
	if input.Latitude < -90 || input.Latitude > 90 || input.Longitude < -180 || input.Longitude > 180 {
		return domainerrors.ErrValidationFailed.WithDetails("coordinates out of range")
	}
	if input.RadiusKm > s.maxRadiusKm() {
		return domainerrors.ErrValidationFailed.WithDetails("radius exceeds the allowed maximum")
	}
	if creatorType != entity.CreatorTypeLaboratory && len(input.RequiredSpecialties) > 0 {
		return domainerrors.ErrValidationFailed.WithDetails("specialties only apply to laboratory alerts")
	}

	return nil
}

// fanOut finds eligible candidates, writes their in-app notifications, and
// hands push delivery to the worker through the event queue. Every failure
// here is swallowed after logging.
func (s *alertService) fanOut(ctx context.Context, alert *entity.UrgentAlert) {
	candidates, err := s.alertRepo.FindEligibleCandidates(ctx, alert)
	if err != nil {
		s.logger.ErrorContext(ctx, "alert fan-out: eligibility query failed",
			slog.String("alert_id", alert.ID.String()),
			slog.Any("error", err),
		)

		return
	}

	if len(candidates) == 0 {
		return
	}

	notifications := make([]*entity.Notification, 0, len(candidates))
	candidateIDs := make([]string, 0, len(candidates))
	for _, candidate := range candidates {
		candidateIDs = append(candidateIDs, candidate.UserID.String())
		notifications = append(notifications, &entity.Notification{
			UserID:  candidate.UserID,
			Type:    constants.NotificationTypeUrgentAlert,
			Title:   alert.Title,
			Content: fmt.Sprintf("Alerte urgente à %s (%.1f km)", alert.City, candidate.DistanceKm),
			Data: datatypes.JSONMap{
				"alert_id":    alert.ID.String(),
				"distance_km": candidate.DistanceKm,
			},
		})
	}

	if err := s.notificationRepo.BatchCreateNotifications(ctx, notifications); err != nil {
		s.logger.ErrorContext(ctx, "alert fan-out: in-app notifications failed",
			slog.String("alert_id", alert.ID.String()),
			slog.Any("error", err),
		)
	}

	event := &service.AlertEvent{
		RequestID:    deliverycontext.GetRequestIDFromContext(ctx),
		AlertID:      alert.ID.String(),
		CreatorType:  alert.CreatorType.String(),
		Title:        alert.Title,
		City:         alert.City,
		PositionType: alert.PositionType.String(),
		CandidateIDs: candidateIDs,
	}
	if err := s.eventPublisher.PublishAlertEvent(ctx, event); err != nil {
		s.logger.ErrorContext(ctx, "alert fan-out: event publish failed",
			slog.String("alert_id", alert.ID.String()),
			slog.Any("error", err),
		)
	}

	if err := s.alertRepo.UpdateNotifiedCount(ctx, alert.ID, len(candidates)); err != nil {
		s.logger.ErrorContext(ctx, "alert fan-out: notified count update failed",
			slog.String("alert_id", alert.ID.String()),
			slog.Any("error", err),
		)
	} else {
		alert.NotifiedCount = len(candidates)
	}
}

// GetAlert retrieves a single alert by ID.
func (s *alertService) GetAlert(ctx context.Context, alertID uuid.UUID) (*entity.UrgentAlert, error) {
	alert, err := s.alertRepo.FindAlertByID(ctx, alertID)
	if err != nil {
		if errors.Is(err, repository.ErrAlertNotFound) {
			return nil, domainerrors.ErrAlertNotFound
		}

		return nil, errors.Wrap(err, "failed to find alert")
	}

	return alert, nil
}

// UpdateAlert edits the descriptive fields of an active alert, creator only.
func (s *alertService) UpdateAlert(ctx context.Context, alertID, creatorID uuid.UUID, input usecase.UpdateAlertInput) (*entity.UrgentAlert, error) {
	alert, err := s.alertRepo.FindAlertByID(ctx, alertID)
	if err != nil {
		if errors.Is(err, repository.ErrAlertNotFound) {
			return nil, domainerrors.ErrAlertNotFound
		}

		return nil, errors.Wrap(err, "failed to find alert")
	}

	if alert.CreatorID != creatorID {
		return nil, domainerrors.ErrNotAlertCreator
	}
	if input.Title != nil && *input.Title == "" {
		return nil, domainerrors.ErrValidationFailed.WithDetails("title is required")
	}

	patch := repository.AlertPatch{
		Title:       input.Title,
		Description: input.Description,
		HourlyRate:  input.HourlyRate,
	}
	if err := s.alertRepo.UpdateAlertDetails(ctx, alertID, patch); err != nil {
		if errors.Is(err, repository.ErrAlertStateConflict) {
			return nil, domainerrors.ErrAlertNotActive
		}

		return nil, errors.Wrap(err, "failed to update alert")
	}

	if input.Title != nil {
		alert.Title = *input.Title
	}
	if input.Description != nil {
		alert.Description = *input.Description
	}
	if input.HourlyRate != nil {
		alert.HourlyRate = input.HourlyRate
	}

	return alert, nil
}

// GetCreatorAlerts retrieves the alerts published by a recruiter.
func (s *alertService) GetCreatorAlerts(ctx context.Context, creatorID uuid.UUID, filter usecase.AlertListFilter) ([]*entity.UrgentAlert, error) {
	for _, status := range filter.Statuses {
		if !status.IsValid() {
			return nil, domainerrors.ErrValidationFailed.WithDetails("unknown alert status")
		}
	}

	alerts, err := s.alertRepo.FindAlertsByCreator(ctx, creatorID, repository.AlertFilter{
		Statuses: filter.Statuses,
		Limit:    filter.Limit,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to find alerts by creator")
	}

	return alerts, nil
}

// GetCandidateAlerts retrieves the open alerts a candidate is eligible for.
// The database decides eligibility; the distance here is display only.
func (s *alertService) GetCandidateAlerts(ctx context.Context, candidateID uuid.UUID) ([]*usecase.AlertWithDistance, error) {
	profile, err := s.userRepo.FindCandidateProfile(ctx, candidateID)
	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return nil, domainerrors.ErrForbidden.WrapMessage("candidate profile required")
		}

		return nil, errors.Wrap(err, "failed to load candidate profile")
	}

	alerts, err := s.alertRepo.FindActiveAlertsForCandidate(ctx, candidateID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find alerts for candidate")
	}

	from := usecase.Coordinates{Latitude: profile.Latitude, Longitude: profile.Longitude}
	result := make([]*usecase.AlertWithDistance, 0, len(alerts))
	for _, alert := range alerts {
		result = append(result, &usecase.AlertWithDistance{
			Alert:      alert,
			DistanceKm: s.distance.DistanceKm(from, usecase.Coordinates{Latitude: alert.Latitude, Longitude: alert.Longitude}),
		})
	}

	return result, nil
}

// RespondToAlert records a candidate's interest in an alert.
func (s *alertService) RespondToAlert(ctx context.Context, alertID, candidateID uuid.UUID, input usecase.RespondInput) (*entity.AlertResponse, error) {
	alert, err := s.alertRepo.FindAlertByID(ctx, alertID)
	if err != nil {
		if errors.Is(err, repository.ErrAlertNotFound) {
			return nil, domainerrors.ErrAlertNotFound
		}

		return nil, errors.Wrap(err, "failed to find alert")
	}

	now := time.Now()
	// Expiry is enforced at call time: storage may lag behind the clock
	// until the sweeper runs.
	if alert.IsExpiredAt(now) {
		return nil, domainerrors.ErrAlertExpired
	}
	if alert.Status != entity.AlertStatusActive {
		return nil, domainerrors.ErrAlertNotActive
	}

	response := &entity.AlertResponse{
		AlertID:      alertID,
		CandidateID:  candidateID,
		Message:      input.Message,
		Status:       entity.ResponseStatusInterested,
		ResponseTime: now,
	}

	if err := s.alertRepo.CreateResponse(ctx, response); err != nil {
		if errors.Is(err, repository.ErrDuplicateResponse) {
			return nil, domainerrors.ErrAlreadyResponded
		}

		return nil, errors.Wrap(err, "failed to create response")
	}

	// Tell the creator someone is interested. Best effort.
	if err := s.notificationRepo.CreateNotification(ctx, &entity.Notification{
		UserID:  alert.CreatorID,
		Type:    constants.NotificationTypeUrgentAlert,
		Title:   "Nouvelle réponse à votre alerte",
		Content: fmt.Sprintf("Un candidat s'est déclaré intéressé par « %s »", alert.Title),
		Data: datatypes.JSONMap{
			"alert_id":     alertID.String(),
			"candidate_id": candidateID.String(),
		},
	}); err != nil {
		s.logger.WarnContext(ctx, "creator notification failed",
			slog.String("alert_id", alertID.String()),
			slog.Any("error", err),
		)
	}

	return response, nil
}

// HasResponded reports whether the candidate already responded to the alert.
func (s *alertService) HasResponded(ctx context.Context, alertID, candidateID uuid.UUID) (bool, error) {
	responded, err := s.alertRepo.HasResponded(ctx, alertID, candidateID)
	if err != nil {
		return false, errors.Wrap(err, "failed to check existing response")
	}

	return responded, nil
}

// GetAlertResponses retrieves the responses to an alert, creator only.
func (s *alertService) GetAlertResponses(ctx context.Context, alertID, creatorID uuid.UUID) ([]*entity.AlertResponse, error) {
	alert, err := s.alertRepo.FindAlertByID(ctx, alertID)
	if err != nil {
		if errors.Is(err, repository.ErrAlertNotFound) {
			return nil, domainerrors.ErrAlertNotFound
		}

		return nil, errors.Wrap(err, "failed to find alert")
	}

	if alert.CreatorID != creatorID {
		return nil, domainerrors.ErrNotAlertCreator
	}

	responses, err := s.alertRepo.FindResponsesByAlert(ctx, alertID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find responses")
	}

	return responses, nil
}

// AcceptCandidate arbitrates the alert in a single transaction: accept the
// winner, reject the siblings, flip the alert to filled. The conditional flip
// serializes concurrent accepts on the database row.
func (s *alertService) AcceptCandidate(ctx context.Context, alertID, creatorID, candidateID uuid.UUID) error {
	alert, err := s.alertRepo.FindAlertByID(ctx, alertID)
	if err != nil {
		if errors.Is(err, repository.ErrAlertNotFound) {
			return domainerrors.ErrAlertNotFound
		}

		return errors.Wrap(err, "failed to find alert")
	}

	if alert.CreatorID != creatorID {
		return domainerrors.ErrNotAlertCreator
	}

	now := time.Now()
	// Expiry is enforced at call time, exactly as for responses: an overdue
	// alert cannot be filled even before the sweeper flips its status.
	if alert.IsExpiredAt(now) {
		return domainerrors.ErrAlertExpired
	}
	if alert.Status != entity.AlertStatusActive {
		return domainerrors.ErrAlertNotActive
	}

	err = s.txManager.Execute(ctx, func(txRepoFactory repository.RepositoryFactory) error {
		txAlertRepo := txRepoFactory.NewAlertRepository()

		if err := txAlertRepo.UpdateResponseStatus(ctx, alertID, candidateID,
			entity.ResponseStatusInterested, entity.ResponseStatusAccepted); err != nil {
			return err
		}

		if _, err := txAlertRepo.RejectSiblingResponses(ctx, alertID, candidateID); err != nil {
			return err
		}

		return txAlertRepo.UpdateAlertStatus(ctx, alertID, entity.AlertStatusActive, entity.AlertStatusFilled, &now)
	})

	if err != nil {
		switch {
		case errors.Is(err, repository.ErrResponseNotFound):
			return domainerrors.ErrResponseNotFound
		case errors.Is(err, repository.ErrResponseStateConflict):
			return domainerrors.ErrResponseStateConflict
		case errors.Is(err, repository.ErrAlertStateConflict):
			return domainerrors.ErrArbitrationConflict
		default:
			return errors.Wrap(err, "arbitration transaction failed")
		}
	}

	// Tell the winner. Best effort.
	if err := s.notificationRepo.CreateNotification(ctx, &entity.Notification{
		UserID:  candidateID,
		Type:    constants.NotificationTypeUrgentAlert,
		Title:   "Votre candidature a été retenue",
		Content: fmt.Sprintf("Vous avez été retenu pour « %s »", alert.Title),
		Data: datatypes.JSONMap{
			"alert_id": alertID.String(),
		},
	}); err != nil {
		s.logger.WarnContext(ctx, "winner notification failed",
			slog.String("alert_id", alertID.String()),
			slog.Any("error", err),
		)
	}

	return nil
}

// RejectCandidate turns down one response without touching the alert status,
// so the creator can keep the alert open for other candidates.
func (s *alertService) RejectCandidate(ctx context.Context, alertID, creatorID, candidateID uuid.UUID) error {
	alert, err := s.alertRepo.FindAlertByID(ctx, alertID)
	if err != nil {
		if errors.Is(err, repository.ErrAlertNotFound) {
			return domainerrors.ErrAlertNotFound
		}

		return errors.Wrap(err, "failed to find alert")
	}

	if alert.CreatorID != creatorID {
		return domainerrors.ErrNotAlertCreator
	}

	if err := s.alertRepo.UpdateResponseStatus(ctx, alertID, candidateID,
		entity.ResponseStatusInterested, entity.ResponseStatusRejected); err != nil {
		switch {
		case errors.Is(err, repository.ErrResponseNotFound):
			return domainerrors.ErrResponseNotFound
		case errors.Is(err, repository.ErrResponseStateConflict):
			return domainerrors.ErrResponseStateConflict
		default:
			return errors.Wrap(err, "failed to reject response")
		}
	}

	return nil
}

// CancelAlert withdraws an active alert, creator only.
func (s *alertService) CancelAlert(ctx context.Context, alertID, creatorID uuid.UUID) error {
	alert, err := s.alertRepo.FindAlertByID(ctx, alertID)
	if err != nil {
		if errors.Is(err, repository.ErrAlertNotFound) {
			return domainerrors.ErrAlertNotFound
		}

		return errors.Wrap(err, "failed to find alert")
	}

	if alert.CreatorID != creatorID {
		return domainerrors.ErrNotAlertCreator
	}

	if err := s.alertRepo.UpdateAlertStatus(ctx, alertID, entity.AlertStatusActive, entity.AlertStatusCancelled, nil); err != nil {
		if errors.Is(err, repository.ErrAlertStateConflict) {
			return domainerrors.ErrAlertNotActive
		}

		return errors.Wrap(err, "failed to cancel alert")
	}

	return nil
}

// MarkAsFilled flips an active alert to filled without naming a winner.
func (s *alertService) MarkAsFilled(ctx context.Context, alertID, creatorID uuid.UUID) error {
	alert, err := s.alertRepo.FindAlertByID(ctx, alertID)
	if err != nil {
		if errors.Is(err, repository.ErrAlertNotFound) {
			return domainerrors.ErrAlertNotFound
		}

		return errors.Wrap(err, "failed to find alert")
	}

	if alert.CreatorID != creatorID {
		return domainerrors.ErrNotAlertCreator
	}

	now := time.Now()
	if err := s.alertRepo.UpdateAlertStatus(ctx, alertID, entity.AlertStatusActive, entity.AlertStatusFilled, &now); err != nil {
		if errors.Is(err, repository.ErrAlertStateConflict) {
			return domainerrors.ErrAlertNotActive
		}

		return errors.Wrap(err, "failed to mark alert as filled")
	}

	return nil
}

// GenerateAlertQR renders a QR code deep-linking to an alert.
func (s *alertService) GenerateAlertQR(ctx context.Context, alertID uuid.UUID) ([]byte, error) {
	if _, err := s.GetAlert(ctx, alertID); err != nil {
		return nil, err
	}

	qrCode, err := s.qrcodeService.GenerateAlertQR(alertID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate alert QR")
	}

	return qrCode, nil
}

// SendAlertPush delivers push notifications for a fan-out event, batching
// tokens under the Firebase limit and retiring invalid ones.
func (s *alertService) SendAlertPush(ctx context.Context, event *service.AlertEvent) (sent, failed int, err error) {
	userIDs := make([]uuid.UUID, 0, len(event.CandidateIDs))
	for _, raw := range event.CandidateIDs {
		id, parseErr := uuid.Parse(raw)
		if parseErr != nil {
			s.logger.WarnContext(ctx, "skipping malformed candidate ID",
				slog.String("candidate_id", raw),
			)

			continue
		}
		userIDs = append(userIDs, id)
	}

	devices, err := s.deviceRepo.FindDevicesForUsers(ctx, userIDs)
	if err != nil {
		return 0, 0, errors.Wrap(err, "failed to fetch devices")
	}
	if len(devices) == 0 {
		return 0, 0, nil
	}

	tokens := make([]string, 0, len(devices))
	for _, device := range devices {
		tokens = append(tokens, device.FCMToken)
	}

	title := "Alerte urgente"
	body := fmt.Sprintf("%s recherche un %s à %s", event.Title, event.PositionType, event.City)
	data := map[string]string{
		"type":     constants.NotificationTypeUrgentAlert,
		"alert_id": event.AlertID,
	}

	var invalidTokens []string
	for i := 0; i < len(tokens); i += firebaseBatchSize {
		end := min(i+firebaseBatchSize, len(tokens))
		batch := tokens[i:end]

		successCount, failureCount, batchInvalid, sendErr := s.pushService.SendBatchNotification(ctx, batch, title, body, data)
		if sendErr != nil {
			// Log and keep going with the remaining batches.
			s.logger.ErrorContext(ctx, "push batch failed",
				slog.String("alert_id", event.AlertID),
				slog.Any("error", sendErr),
			)
			failed += len(batch)

			continue
		}

		sent += successCount
		failed += failureCount
		invalidTokens = append(invalidTokens, batchInvalid...)
	}

	if len(invalidTokens) > 0 {
		if _, err := s.deviceRepo.DeactivateByTokens(ctx, invalidTokens); err != nil {
			s.logger.WarnContext(ctx, "failed to retire invalid tokens",
				slog.Int("token_count", len(invalidTokens)),
				slog.Any("error", err),
			)
		}
	}

	return sent, failed, nil
}

// SweepExpiredAlerts flips every active alert past its expiry to expired.
func (s *alertService) SweepExpiredAlerts(ctx context.Context) (int64, error) {
	expired, err := s.alertRepo.ExpireOverdueAlerts(ctx, time.Now())
	if err != nil {
		return 0, errors.Wrap(err, "failed to sweep expired alerts")
	}

	if expired > 0 {
		s.logger.InfoContext(ctx, "expired overdue alerts",
			slog.Int64("count", expired),
		)
	}

	return expired, nil
}

func (s *alertService) defaultRadiusKm() float64 {
	if s.config.Alert != nil && s.config.Alert.DefaultRadiusKm > 0 {
		return s.config.Alert.DefaultRadiusKm
	}

	return defaultAlertRadiusKm
}

func (s *alertService) maxRadiusKm() float64 {
	if s.config.Alert != nil && s.config.Alert.MaxRadiusKm > 0 {
		return s.config.Alert.MaxRadiusKm
	}

	return maxAlertRadiusKm
}
