package impl

import (
	"context"
	"testing"

	"pharmalink/internal/domain/entity"
	mockRepo "pharmalink/internal/mocks/repository"
	"pharmalink/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestDeviceService_RegisterDevice_Success(t *testing.T) {
	deviceRepo := mockRepo.NewMockDeviceRepository(t)
	service := NewDeviceService(deviceRepo)

	ctx := context.Background()
	userID := uuid.New()

	deviceRepo.On("UpsertDevice", ctx, mock.MatchedBy(func(d *entity.UserDevice) bool {
		return d.UserID == userID && d.IsActive
	})).Return(nil)

	device, err := service.RegisterDevice(ctx, userID, &usecase.DeviceInfo{
		FCMToken: "fcm-token",
		DeviceID: "device-1",
		Platform: "ios",
	})

	require.NoError(t, err)
	assert.True(t, device.IsActive)
}

func TestDeviceService_RegisterDevice_Validation(t *testing.T) {
	tests := []struct {
		name string
		info *usecase.DeviceInfo
	}{
		{name: "nil info", info: nil},
		{name: "missing token", info: &usecase.DeviceInfo{DeviceID: "device-1", Platform: "ios"}},
		{name: "missing device id", info: &usecase.DeviceInfo{FCMToken: "fcm-token", Platform: "ios"}},
		{name: "unknown platform", info: &usecase.DeviceInfo{FCMToken: "fcm-token", DeviceID: "device-1", Platform: "windows"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deviceRepo := mockRepo.NewMockDeviceRepository(t)
			service := NewDeviceService(deviceRepo)

			device, err := service.RegisterDevice(context.Background(), uuid.New(), tt.info)

			assert.Nil(t, device)
			assertErrorCode(t, err, "VALIDATION_FAILED")
		})
	}
}

func TestDeviceService_RemoveDevice_Owned(t *testing.T) {
	deviceRepo := mockRepo.NewMockDeviceRepository(t)
	service := NewDeviceService(deviceRepo)

	ctx := context.Background()
	userID := uuid.New()
	deviceID := uuid.New()

	deviceRepo.On("FindActiveDevicesByUser", ctx, userID).
		Return([]*entity.UserDevice{{ID: deviceID, UserID: userID}}, nil)
	deviceRepo.On("DeleteDevice", ctx, deviceID).Return(nil)

	assert.NoError(t, service.RemoveDevice(ctx, userID, deviceID))
}

func TestDeviceService_RemoveDevice_NotOwned(t *testing.T) {
	deviceRepo := mockRepo.NewMockDeviceRepository(t)
	service := NewDeviceService(deviceRepo)

	ctx := context.Background()
	userID := uuid.New()

	deviceRepo.On("FindActiveDevicesByUser", ctx, userID).
		Return([]*entity.UserDevice{{ID: uuid.New(), UserID: userID}}, nil)

	err := service.RemoveDevice(ctx, userID, uuid.New())

	assertErrorCode(t, err, "NOT_FOUND")
}
