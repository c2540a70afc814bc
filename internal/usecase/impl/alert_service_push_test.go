package impl

import (
	"context"
	"fmt"
	"testing"

	"pharmalink/internal/domain/entity"
	"pharmalink/internal/domain/service"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testAlertEvent(candidateIDs ...string) *service.AlertEvent {
	return &service.AlertEvent{
		AlertID:      uuid.New().String(),
		CreatorType:  entity.CreatorTypePharmacy.String(),
		Title:        "Remplacement préparateur",
		City:         "Paris",
		PositionType: entity.PositionPreparateur.String(),
		CandidateIDs: candidateIDs,
	}
}

func TestAlertService_SendAlertPush_Success(t *testing.T) {
	fx := createTestAlertService(t)

	ctx := context.Background()
	event := testAlertEvent(uuid.New().String(), uuid.New().String())

	devices := []*entity.UserDevice{
		{ID: uuid.New(), FCMToken: "token-a", IsActive: true},
		{ID: uuid.New(), FCMToken: "token-b", IsActive: true},
		{ID: uuid.New(), FCMToken: "token-c", IsActive: true},
	}
	fx.deviceRepo.On("FindDevicesForUsers", ctx, mock.AnythingOfType("[]uuid.UUID")).Return(devices, nil)

	fx.pushService.On("SendBatchNotification", ctx, []string{"token-a", "token-b", "token-c"},
		"Alerte urgente", mock.AnythingOfType("string"), mock.AnythingOfType("map[string]string")).
		Return(2, 1, []string{"token-c"}, nil)

	fx.deviceRepo.On("DeactivateByTokens", ctx, []string{"token-c"}).Return(int64(1), nil)

	sent, failed, err := fx.service.SendAlertPush(ctx, event)

	require.NoError(t, err)
	assert.Equal(t, 2, sent)
	assert.Equal(t, 1, failed)
}

func TestAlertService_SendAlertPush_SkipsMalformedCandidateIDs(t *testing.T) {
	fx := createTestAlertService(t)

	ctx := context.Background()
	validID := uuid.New()
	event := testAlertEvent("not-a-uuid", validID.String())

	fx.deviceRepo.On("FindDevicesForUsers", ctx, []uuid.UUID{validID}).
		Return([]*entity.UserDevice{}, nil)

	sent, failed, err := fx.service.SendAlertPush(ctx, event)

	require.NoError(t, err)
	assert.Equal(t, 0, sent)
	assert.Equal(t, 0, failed)
}

func TestAlertService_SendAlertPush_NoDevices(t *testing.T) {
	fx := createTestAlertService(t)

	ctx := context.Background()
	event := testAlertEvent(uuid.New().String())

	fx.deviceRepo.On("FindDevicesForUsers", ctx, mock.AnythingOfType("[]uuid.UUID")).
		Return([]*entity.UserDevice{}, nil)

	sent, failed, err := fx.service.SendAlertPush(ctx, event)

	require.NoError(t, err)
	assert.Zero(t, sent)
	assert.Zero(t, failed)
}

func TestAlertService_SendAlertPush_BatchesUnderFirebaseLimit(t *testing.T) {
	fx := createTestAlertService(t)

	ctx := context.Background()
	event := testAlertEvent(uuid.New().String())

	devices := make([]*entity.UserDevice, 0, 750)
	for i := range 750 {
		devices = append(devices, &entity.UserDevice{
			ID:       uuid.New(),
			FCMToken: fmt.Sprintf("token-%04d", i),
			IsActive: true,
		})
	}
	fx.deviceRepo.On("FindDevicesForUsers", ctx, mock.AnythingOfType("[]uuid.UUID")).Return(devices, nil)

	// First batch of 500 fails outright, the remaining 250 go through.
	fx.pushService.On("SendBatchNotification", ctx, mock.MatchedBy(func(batch []string) bool {
		return len(batch) == 500
	}), "Alerte urgente", mock.AnythingOfType("string"), mock.AnythingOfType("map[string]string")).
		Return(0, 0, nil, errors.New("fcm unavailable"))

	fx.pushService.On("SendBatchNotification", ctx, mock.MatchedBy(func(batch []string) bool {
		return len(batch) == 250
	}), "Alerte urgente", mock.AnythingOfType("string"), mock.AnythingOfType("map[string]string")).
		Return(250, 0, nil, nil)

	sent, failed, err := fx.service.SendAlertPush(ctx, event)

	require.NoError(t, err)
	assert.Equal(t, 250, sent)
	assert.Equal(t, 500, failed)
}

func TestAlertService_SendAlertPush_DeviceLookupFailure(t *testing.T) {
	fx := createTestAlertService(t)

	ctx := context.Background()
	event := testAlertEvent(uuid.New().String())

	fx.deviceRepo.On("FindDevicesForUsers", ctx, mock.AnythingOfType("[]uuid.UUID")).
		Return(nil, errors.New("db down"))

	sent, failed, err := fx.service.SendAlertPush(ctx, event)

	assert.Error(t, err)
	assert.Zero(t, sent)
	assert.Zero(t, failed)
}
