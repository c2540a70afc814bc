package impl

import (
	"context"
	"testing"
	"time"

	"pharmalink/config"
	"pharmalink/internal/domain/entity"
	domainerrors "pharmalink/internal/domain/errors"
	"pharmalink/internal/domain/repository"
	"pharmalink/internal/domain/service"
	mockRepo "pharmalink/internal/mocks/repository"
	mockSvc "pharmalink/internal/mocks/service"
	"pharmalink/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// alertServiceFixtures holds all test dependencies for alert service tests.
type alertServiceFixtures struct {
	service          usecase.AlertUsecase
	alertRepo        *mockRepo.MockAlertRepository
	userRepo         *mockRepo.MockUserRepository
	notificationRepo *mockRepo.MockNotificationRepository
	deviceRepo       *mockRepo.MockDeviceRepository
	pushService      *mockSvc.MockPushService
	eventPublisher   *mockSvc.MockEventPublisher
	qrcodeService    *mockSvc.MockQRCodeService
}

func createTestAlertService(t *testing.T) alertServiceFixtures {
	alertRepo := mockRepo.NewMockAlertRepository(t)
	userRepo := mockRepo.NewMockUserRepository(t)
	notificationRepo := mockRepo.NewMockNotificationRepository(t)
	deviceRepo := mockRepo.NewMockDeviceRepository(t)
	pushService := mockSvc.NewMockPushService(t)
	eventPublisher := mockSvc.NewMockEventPublisher(t)
	qrcodeService := mockSvc.NewMockQRCodeService(t)

	// The transactional factory hands back the same alert repo mock, so
	// in-transaction expectations are set on fx.alertRepo directly.
	txManager := mockRepo.NewMockTransactionManager(t, &mockRepo.MockRepositoryFactory{
		AlertRepo: alertRepo,
	})

	service := NewAlertService(AlertServiceParams{
		AlertRepo:        alertRepo,
		UserRepo:         userRepo,
		NotificationRepo: notificationRepo,
		DeviceRepo:       deviceRepo,
		TxManager:        txManager,
		PushService:      pushService,
		EventPublisher:   eventPublisher,
		QRCodeService:    qrcodeService,
		Distance:         NewDistanceService(),
		Config:           &config.Config{},
		Logger:           newTestLogger(),
	})

	return alertServiceFixtures{
		service:          service,
		alertRepo:        alertRepo,
		userRepo:         userRepo,
		notificationRepo: notificationRepo,
		deviceRepo:       deviceRepo,
		pushService:      pushService,
		eventPublisher:   eventPublisher,
		qrcodeService:    qrcodeService,
	}
}

func validCreateAlertInput() usecase.CreateAlertInput {
	start := time.Now().Add(24 * time.Hour)

	return usecase.CreateAlertInput{
		Title:        "Remplacement préparateur",
		Description:  "Remplacement urgent pour le week-end",
		PositionType: entity.PositionPreparateur,
		StartDate:    start,
		EndDate:      start.Add(48 * time.Hour),
		Latitude:     48.8566,
		Longitude:    2.3522,
		City:         "Paris",
	}
}

func activeAlert(creatorID uuid.UUID) *entity.UrgentAlert {
	now := time.Now()

	return &entity.UrgentAlert{
		ID:           uuid.New(),
		CreatorID:    creatorID,
		CreatorType:  entity.CreatorTypePharmacy,
		Title:        "Remplacement préparateur",
		PositionType: entity.PositionPreparateur,
		StartDate:    now.Add(24 * time.Hour),
		EndDate:      now.Add(72 * time.Hour),
		ExpiresAt:    now.Add(96 * time.Hour),
		Latitude:     48.8566,
		Longitude:    2.3522,
		RadiusKm:     30,
		City:         "Paris",
		Status:       entity.AlertStatusActive,
	}
}

func TestAlertService_CreateAlert_Success(t *testing.T) {
	fx := createTestAlertService(t)

	ctx := context.Background()
	creatorID := uuid.New()
	input := validCreateAlertInput()

	fx.userRepo.On("FindRecruiterProfile", ctx, creatorID).
		Return(&entity.RecruiterProfile{UserID: creatorID, Type: entity.CreatorTypePharmacy}, nil)

	fx.alertRepo.On("CreateAlert", ctx, mock.AnythingOfType("*entity.UrgentAlert")).
		Run(func(args mock.Arguments) {
			alert := args.Get(1).(*entity.UrgentAlert)
			alert.ID = uuid.New()
		}).
		Return(nil)

	candidates := []*entity.EligibleCandidate{
		{UserID: uuid.New(), Position: entity.PositionPreparateur, DistanceKm: 3.2},
		{UserID: uuid.New(), Position: entity.PositionPreparateur, DistanceKm: 11.8},
	}
	fx.alertRepo.On("FindEligibleCandidates", ctx, mock.AnythingOfType("*entity.UrgentAlert")).
		Return(candidates, nil)

	fx.notificationRepo.On("BatchCreateNotifications", ctx, mock.MatchedBy(func(notifications []*entity.Notification) bool {
		return len(notifications) == 2 && notifications[0].UserID == candidates[0].UserID
	})).Return(nil)

	fx.eventPublisher.On("PublishAlertEvent", ctx, mock.MatchedBy(func(event *service.AlertEvent) bool {
		return len(event.CandidateIDs) == 2 && event.City == "Paris"
	})).Return(nil)

	fx.alertRepo.On("UpdateNotifiedCount", ctx, mock.AnythingOfType("uuid.UUID"), 2).Return(nil)

	alert, err := fx.service.CreateAlert(ctx, creatorID, input)

	require.NoError(t, err)
	require.NotNil(t, alert)
	assert.Equal(t, entity.AlertStatusActive, alert.Status)
	assert.Equal(t, entity.CreatorTypePharmacy, alert.CreatorType)
	assert.InDelta(t, 30.0, alert.RadiusKm, 0.001) // default radius when none given
	assert.Equal(t, input.EndDate.Add(entity.AlertExpiryDelay), alert.ExpiresAt)
	assert.Equal(t, 2, alert.NotifiedCount)
}

func TestAlertService_CreateAlert_NoRecruiterProfile(t *testing.T) {
	fx := createTestAlertService(t)

	ctx := context.Background()
	creatorID := uuid.New()

	fx.userRepo.On("FindRecruiterProfile", ctx, creatorID).
		Return(nil, repository.ErrProfileNotFound)

	alert, err := fx.service.CreateAlert(ctx, creatorID, validCreateAlertInput())

	assert.Nil(t, alert)
	assert.True(t, errors.Is(err, domainerrors.ErrForbidden))
}

func TestAlertService_CreateAlert_Validation(t *testing.T) {
	tests := []struct {
		name        string
		creatorType entity.CreatorType
		mutate      func(*usecase.CreateAlertInput)
	}{
		{
			name:        "missing title",
			creatorType: entity.CreatorTypePharmacy,
			mutate:      func(in *usecase.CreateAlertInput) { in.Title = "" },
		},
		{
			name:        "unknown position",
			creatorType: entity.CreatorTypePharmacy,
			mutate:      func(in *usecase.CreateAlertInput) { in.PositionType = "plombier" },
		},
		{
			name:        "end before start",
			creatorType: entity.CreatorTypePharmacy,
			mutate:      func(in *usecase.CreateAlertInput) { in.EndDate = in.StartDate.Add(-time.Hour) },
		},
		{
			name:        "missing start date",
			creatorType: entity.CreatorTypePharmacy,
			mutate:      func(in *usecase.CreateAlertInput) { in.StartDate = time.Time{} },
		},
		{
			name:        "missing both dates",
			creatorType: entity.CreatorTypePharmacy,
			mutate: func(in *usecase.CreateAlertInput) {
				in.StartDate = time.Time{}
				in.EndDate = time.Time{}
			},
		},
		{
			name:        "latitude out of range",
			creatorType: entity.CreatorTypePharmacy,
			mutate:      func(in *usecase.CreateAlertInput) { in.Latitude = 91 },
		},
		{
			name:        "radius above maximum",
			creatorType: entity.CreatorTypePharmacy,
			mutate:      func(in *usecase.CreateAlertInput) { in.RadiusKm = 250 },
		},
		{
			name:        "specialties on a pharmacy alert",
			creatorType: entity.CreatorTypePharmacy,
			mutate:      func(in *usecase.CreateAlertInput) { in.RequiredSpecialties = []string{"dermo"} },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := createTestAlertService(t)

			ctx := context.Background()
			creatorID := uuid.New()

			fx.userRepo.On("FindRecruiterProfile", ctx, creatorID).
				Return(&entity.RecruiterProfile{UserID: creatorID, Type: tt.creatorType}, nil)

			input := validCreateAlertInput()
			tt.mutate(&input)

			alert, err := fx.service.CreateAlert(ctx, creatorID, input)

			assert.Nil(t, alert)
			assertErrorCode(t, err, "VALIDATION_FAILED")
		})
	}
}

func TestAlertService_CreateAlert_LaboratoryAllowsSpecialties(t *testing.T) {
	fx := createTestAlertService(t)

	ctx := context.Background()
	creatorID := uuid.New()

	fx.userRepo.On("FindRecruiterProfile", ctx, creatorID).
		Return(&entity.RecruiterProfile{UserID: creatorID, Type: entity.CreatorTypeLaboratory}, nil)

	input := validCreateAlertInput()
	input.PositionType = entity.PositionAnimateur
	input.RequiredSpecialties = []string{"dermo-cosmétique"}

	fx.alertRepo.On("CreateAlert", ctx, mock.AnythingOfType("*entity.UrgentAlert")).Return(nil)
	fx.alertRepo.On("FindEligibleCandidates", ctx, mock.AnythingOfType("*entity.UrgentAlert")).
		Return([]*entity.EligibleCandidate{}, nil)

	alert, err := fx.service.CreateAlert(ctx, creatorID, input)

	require.NoError(t, err)
	assert.Equal(t, entity.CreatorTypeLaboratory, alert.CreatorType)
	assert.Equal(t, []string{"dermo-cosmétique"}, alert.RequiredSpecialties)
}

func TestAlertService_CreateAlert_FanOutFailureDoesNotFailCreation(t *testing.T) {
	fx := createTestAlertService(t)

	ctx := context.Background()
	creatorID := uuid.New()

	fx.userRepo.On("FindRecruiterProfile", ctx, creatorID).
		Return(&entity.RecruiterProfile{UserID: creatorID, Type: entity.CreatorTypePharmacy}, nil)
	fx.alertRepo.On("CreateAlert", ctx, mock.AnythingOfType("*entity.UrgentAlert")).Return(nil)
	fx.alertRepo.On("FindEligibleCandidates", ctx, mock.AnythingOfType("*entity.UrgentAlert")).
		Return(nil, errors.New("postgis down"))

	alert, err := fx.service.CreateAlert(ctx, creatorID, validCreateAlertInput())

	require.NoError(t, err)
	require.NotNil(t, alert)
	assert.Equal(t, 0, alert.NotifiedCount)
}

func TestAlertService_GetCandidateAlerts_ComputesDistances(t *testing.T) {
	fx := createTestAlertService(t)

	ctx := context.Background()
	candidateID := uuid.New()

	fx.userRepo.On("FindCandidateProfile", ctx, candidateID).
		Return(&entity.CandidateProfile{
			UserID:    candidateID,
			Position:  entity.PositionPreparateur,
			Latitude:  48.8566,
			Longitude: 2.3522,
		}, nil)

	alert := activeAlert(uuid.New())
	fx.alertRepo.On("FindActiveAlertsForCandidate", ctx, candidateID).
		Return([]*entity.UrgentAlert{alert}, nil)

	result, err := fx.service.GetCandidateAlerts(ctx, candidateID)

	require.NoError(t, err)
	require.Len(t, result, 1)
	// The alert sits on the candidate's own coordinates.
	assert.InDelta(t, 0.0, result[0].DistanceKm, 0.001)
}

func TestAlertService_RespondToAlert_Success(t *testing.T) {
	fx := createTestAlertService(t)

	ctx := context.Background()
	creatorID := uuid.New()
	candidateID := uuid.New()
	alert := activeAlert(creatorID)

	fx.alertRepo.On("FindAlertByID", ctx, alert.ID).Return(alert, nil)
	fx.alertRepo.On("CreateResponse", ctx, mock.AnythingOfType("*entity.AlertResponse")).Return(nil)
	fx.notificationRepo.On("CreateNotification", ctx, mock.MatchedBy(func(n *entity.Notification) bool {
		return n.UserID == creatorID
	})).Return(nil)

	response, err := fx.service.RespondToAlert(ctx, alert.ID, candidateID, usecase.RespondInput{Message: "Disponible"})

	require.NoError(t, err)
	require.NotNil(t, response)
	assert.Equal(t, entity.ResponseStatusInterested, response.Status)
	assert.Equal(t, candidateID, response.CandidateID)
}

func TestAlertService_RespondToAlert_ExpiredBeforeSweep(t *testing.T) {
	fx := createTestAlertService(t)

	ctx := context.Background()
	alert := activeAlert(uuid.New())
	// Still stored as active: the sweeper has not run yet.
	alert.ExpiresAt = time.Now().Add(-time.Minute)

	fx.alertRepo.On("FindAlertByID", ctx, alert.ID).Return(alert, nil)

	response, err := fx.service.RespondToAlert(ctx, alert.ID, uuid.New(), usecase.RespondInput{})

	assert.Nil(t, response)
	assert.True(t, errors.Is(err, domainerrors.ErrAlertExpired))
}

func TestAlertService_RespondToAlert_NotActive(t *testing.T) {
	fx := createTestAlertService(t)

	ctx := context.Background()
	alert := activeAlert(uuid.New())
	alert.Status = entity.AlertStatusFilled

	fx.alertRepo.On("FindAlertByID", ctx, alert.ID).Return(alert, nil)

	response, err := fx.service.RespondToAlert(ctx, alert.ID, uuid.New(), usecase.RespondInput{})

	assert.Nil(t, response)
	assert.True(t, errors.Is(err, domainerrors.ErrAlertNotActive))
}

func TestAlertService_RespondToAlert_Duplicate(t *testing.T) {
	fx := createTestAlertService(t)

	ctx := context.Background()
	alert := activeAlert(uuid.New())
	candidateID := uuid.New()

	fx.alertRepo.On("FindAlertByID", ctx, alert.ID).Return(alert, nil)
	fx.alertRepo.On("CreateResponse", ctx, mock.AnythingOfType("*entity.AlertResponse")).
		Return(repository.ErrDuplicateResponse)

	response, err := fx.service.RespondToAlert(ctx, alert.ID, candidateID, usecase.RespondInput{})

	assert.Nil(t, response)
	assert.True(t, errors.Is(err, domainerrors.ErrAlreadyResponded))
}

func TestAlertService_AcceptCandidate_Success(t *testing.T) {
	fx := createTestAlertService(t)

	ctx := context.Background()
	creatorID := uuid.New()
	candidateID := uuid.New()
	alert := activeAlert(creatorID)

	fx.alertRepo.On("FindAlertByID", ctx, alert.ID).Return(alert, nil)
	fx.alertRepo.On("UpdateResponseStatus", ctx, alert.ID, candidateID,
		entity.ResponseStatusInterested, entity.ResponseStatusAccepted).Return(nil)
	fx.alertRepo.On("RejectSiblingResponses", ctx, alert.ID, candidateID).Return(int64(3), nil)
	fx.alertRepo.On("UpdateAlertStatus", ctx, alert.ID, entity.AlertStatusActive, entity.AlertStatusFilled,
		mock.AnythingOfType("*time.Time")).Return(nil)
	fx.notificationRepo.On("CreateNotification", ctx, mock.MatchedBy(func(n *entity.Notification) bool {
		return n.UserID == candidateID
	})).Return(nil)

	err := fx.service.AcceptCandidate(ctx, alert.ID, creatorID, candidateID)

	assert.NoError(t, err)
}

func TestAlertService_AcceptCandidate_NotCreator(t *testing.T) {
	fx := createTestAlertService(t)

	ctx := context.Background()
	alert := activeAlert(uuid.New())

	fx.alertRepo.On("FindAlertByID", ctx, alert.ID).Return(alert, nil)

	err := fx.service.AcceptCandidate(ctx, alert.ID, uuid.New(), uuid.New())

	assert.True(t, errors.Is(err, domainerrors.ErrNotAlertCreator))
}

func TestAlertService_AcceptCandidate_ResponseNotFound(t *testing.T) {
	fx := createTestAlertService(t)

	ctx := context.Background()
	creatorID := uuid.New()
	candidateID := uuid.New()
	alert := activeAlert(creatorID)

	fx.alertRepo.On("FindAlertByID", ctx, alert.ID).Return(alert, nil)
	fx.alertRepo.On("UpdateResponseStatus", ctx, alert.ID, candidateID,
		entity.ResponseStatusInterested, entity.ResponseStatusAccepted).
		Return(repository.ErrResponseNotFound)

	err := fx.service.AcceptCandidate(ctx, alert.ID, creatorID, candidateID)

	assert.True(t, errors.Is(err, domainerrors.ErrResponseNotFound))
}

func TestAlertService_AcceptCandidate_ExpiredBeforeSweep(t *testing.T) {
	fx := createTestAlertService(t)

	ctx := context.Background()
	creatorID := uuid.New()
	alert := activeAlert(creatorID)
	// Past expiry but the sweeper has not flipped the status yet.
	alert.ExpiresAt = time.Now().Add(-2 * time.Hour)

	fx.alertRepo.On("FindAlertByID", ctx, alert.ID).Return(alert, nil)

	err := fx.service.AcceptCandidate(ctx, alert.ID, creatorID, uuid.New())

	assert.True(t, errors.Is(err, domainerrors.ErrAlertExpired))
	fx.alertRepo.AssertNotCalled(t, "UpdateResponseStatus",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	fx.alertRepo.AssertNotCalled(t, "UpdateAlertStatus",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAlertService_AcceptCandidate_ResponseAlreadySettled(t *testing.T) {
	fx := createTestAlertService(t)

	ctx := context.Background()
	creatorID := uuid.New()
	candidateID := uuid.New()
	alert := activeAlert(creatorID)

	fx.alertRepo.On("FindAlertByID", ctx, alert.ID).Return(alert, nil)
	// The target response already left interested: the conditional accept
	// matches no row and the transaction rolls back.
	fx.alertRepo.On("UpdateResponseStatus", ctx, alert.ID, candidateID,
		entity.ResponseStatusInterested, entity.ResponseStatusAccepted).
		Return(repository.ErrResponseStateConflict)

	err := fx.service.AcceptCandidate(ctx, alert.ID, creatorID, candidateID)

	assert.True(t, errors.Is(err, domainerrors.ErrResponseStateConflict))
	fx.alertRepo.AssertNotCalled(t, "UpdateAlertStatus",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAlertService_AcceptCandidate_LostRace(t *testing.T) {
	fx := createTestAlertService(t)

	ctx := context.Background()
	creatorID := uuid.New()
	candidateID := uuid.New()
	alert := activeAlert(creatorID)

	fx.alertRepo.On("FindAlertByID", ctx, alert.ID).Return(alert, nil)
	fx.alertRepo.On("UpdateResponseStatus", ctx, alert.ID, candidateID,
		entity.ResponseStatusInterested, entity.ResponseStatusAccepted).Return(nil)
	fx.alertRepo.On("RejectSiblingResponses", ctx, alert.ID, candidateID).Return(int64(0), nil)
	// A concurrent accept filled the alert first: the conditional flip
	// matches no row.
	fx.alertRepo.On("UpdateAlertStatus", ctx, alert.ID, entity.AlertStatusActive, entity.AlertStatusFilled,
		mock.AnythingOfType("*time.Time")).Return(repository.ErrAlertStateConflict)

	err := fx.service.AcceptCandidate(ctx, alert.ID, creatorID, candidateID)

	assert.True(t, errors.Is(err, domainerrors.ErrArbitrationConflict))
}

func TestAlertService_CancelAlert_Success(t *testing.T) {
	fx := createTestAlertService(t)

	ctx := context.Background()
	creatorID := uuid.New()
	alert := activeAlert(creatorID)

	fx.alertRepo.On("FindAlertByID", ctx, alert.ID).Return(alert, nil)
	fx.alertRepo.On("UpdateAlertStatus", ctx, alert.ID, entity.AlertStatusActive, entity.AlertStatusCancelled,
		(*time.Time)(nil)).Return(nil)

	err := fx.service.CancelAlert(ctx, alert.ID, creatorID)

	assert.NoError(t, err)
}

func TestAlertService_CancelAlert_AlreadyFilled(t *testing.T) {
	fx := createTestAlertService(t)

	ctx := context.Background()
	creatorID := uuid.New()
	alert := activeAlert(creatorID)

	fx.alertRepo.On("FindAlertByID", ctx, alert.ID).Return(alert, nil)
	fx.alertRepo.On("UpdateAlertStatus", ctx, alert.ID, entity.AlertStatusActive, entity.AlertStatusCancelled,
		(*time.Time)(nil)).Return(repository.ErrAlertStateConflict)

	err := fx.service.CancelAlert(ctx, alert.ID, creatorID)

	assert.True(t, errors.Is(err, domainerrors.ErrAlertNotActive))
}

func TestAlertService_GetAlertResponses_CreatorOnly(t *testing.T) {
	fx := createTestAlertService(t)

	ctx := context.Background()
	alert := activeAlert(uuid.New())

	fx.alertRepo.On("FindAlertByID", ctx, alert.ID).Return(alert, nil)

	responses, err := fx.service.GetAlertResponses(ctx, alert.ID, uuid.New())

	assert.Nil(t, responses)
	assert.True(t, errors.Is(err, domainerrors.ErrNotAlertCreator))
}

func TestAlertService_GenerateAlertQR(t *testing.T) {
	fx := createTestAlertService(t)

	ctx := context.Background()
	alert := activeAlert(uuid.New())

	fx.alertRepo.On("FindAlertByID", ctx, alert.ID).Return(alert, nil)
	fx.qrcodeService.On("GenerateAlertQR", alert.ID).Return([]byte{0x89, 0x50, 0x4e, 0x47}, nil)

	png, err := fx.service.GenerateAlertQR(ctx, alert.ID)

	require.NoError(t, err)
	assert.NotEmpty(t, png)
}

func TestAlertService_SweepExpiredAlerts(t *testing.T) {
	fx := createTestAlertService(t)

	ctx := context.Background()

	fx.alertRepo.On("ExpireOverdueAlerts", ctx, mock.AnythingOfType("time.Time")).Return(int64(3), nil)

	count, err := fx.service.SweepExpiredAlerts(ctx)

	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}
