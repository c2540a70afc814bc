package impl

import (
	"context"
	"testing"

	"pharmalink/internal/domain/entity"
	domainerrors "pharmalink/internal/domain/errors"
	"pharmalink/internal/domain/repository"
	mockRepo "pharmalink/internal/mocks/repository"
	mockSvc "pharmalink/internal/mocks/service"
	"pharmalink/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// userServiceFixtures holds all test dependencies for user service tests.
type userServiceFixtures struct {
	service      usecase.UserUsecase
	userRepo     *mockRepo.MockUserRepository
	hasher       *mockSvc.MockPasswordHasher
	tokenService *mockSvc.MockTokenService
}

func createTestUserService(t *testing.T) userServiceFixtures {
	userRepo := mockRepo.NewMockUserRepository(t)
	hasher := mockSvc.NewMockPasswordHasher(t)
	tokenService := mockSvc.NewMockTokenService(t)

	service := NewUserService(UserServiceParams{
		UserRepo:       userRepo,
		PasswordHasher: hasher,
		TokenService:   tokenService,
	})

	return userServiceFixtures{
		service:      service,
		userRepo:     userRepo,
		hasher:       hasher,
		tokenService: tokenService,
	}
}

func TestUserService_Register_Success(t *testing.T) {
	fx := createTestUserService(t)

	ctx := context.Background()

	fx.hasher.On("Hash", "Password123!").Return("hashed_password", nil)
	fx.userRepo.On("Create", ctx, mock.MatchedBy(func(user *entity.User) bool {
		return user.Email == "marie@example.com" && user.PasswordHash == "hashed_password"
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*entity.User).ID = uuid.New()
	}).Return(nil)

	output, err := fx.service.Register(ctx, usecase.RegisterInput{
		Name:     "Marie Dupont",
		Email:    "  Marie@Example.com ",
		Password: "Password123!",
	})

	require.NoError(t, err)
	assert.Equal(t, "marie@example.com", output.User.Email)
	assert.NotEqual(t, uuid.Nil, output.User.ID)
}

func TestUserService_Register_DuplicateEmail(t *testing.T) {
	fx := createTestUserService(t)

	ctx := context.Background()

	fx.hasher.On("Hash", "Password123!").Return("hashed_password", nil)
	fx.userRepo.On("Create", ctx, mock.AnythingOfType("*entity.User")).
		Return(repository.ErrDuplicateEmail)

	output, err := fx.service.Register(ctx, usecase.RegisterInput{
		Name:     "Marie Dupont",
		Email:    "marie@example.com",
		Password: "Password123!",
	})

	assert.Nil(t, output)
	assert.True(t, errors.Is(err, domainerrors.ErrUserAlreadyExists))
}

func TestUserService_Register_Validation(t *testing.T) {
	tests := []struct {
		name  string
		input usecase.RegisterInput
	}{
		{
			name:  "email without at sign",
			input: usecase.RegisterInput{Name: "Marie", Email: "marie.example.com", Password: "Password123!"},
		},
		{
			name:  "password too short",
			input: usecase.RegisterInput{Name: "Marie", Email: "marie@example.com", Password: "court"},
		},
		{
			name:  "missing name",
			input: usecase.RegisterInput{Email: "marie@example.com", Password: "Password123!"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := createTestUserService(t)

			output, err := fx.service.Register(context.Background(), tt.input)

			assert.Nil(t, output)
			assertErrorCode(t, err, "VALIDATION_FAILED")
		})
	}
}

func TestUserService_Login_Success(t *testing.T) {
	fx := createTestUserService(t)

	ctx := context.Background()
	userID := uuid.New()
	user := &entity.User{
		ID:           userID,
		Email:        "marie@example.com",
		PasswordHash: "hashed_password",
		CandidateProfile: &entity.CandidateProfile{
			UserID:   userID,
			Position: entity.PositionAnimateur,
		},
	}

	fx.userRepo.On("FindByEmail", ctx, "marie@example.com").Return(user, nil)
	fx.hasher.On("Check", "Password123!", "hashed_password").Return(true)
	fx.tokenService.On("GenerateTokens", userID, []string{"candidate"}).
		Return("access-token", "refresh-token", nil)

	output, err := fx.service.Login(ctx, usecase.LoginInput{
		Email:    "Marie@Example.com",
		Password: "Password123!",
	})

	require.NoError(t, err)
	assert.Equal(t, "access-token", output.AccessToken)
	assert.Equal(t, "refresh-token", output.RefreshToken)
}

func TestUserService_Login_RolesFollowProfiles(t *testing.T) {
	fx := createTestUserService(t)

	ctx := context.Background()
	userID := uuid.New()
	user := &entity.User{
		ID:               userID,
		Email:            "pharma@example.com",
		PasswordHash:     "hashed_password",
		CandidateProfile: &entity.CandidateProfile{UserID: userID},
		RecruiterProfile: &entity.RecruiterProfile{UserID: userID, Type: entity.CreatorTypePharmacy},
	}

	fx.userRepo.On("FindByEmail", ctx, "pharma@example.com").Return(user, nil)
	fx.hasher.On("Check", "Password123!", "hashed_password").Return(true)
	fx.tokenService.On("GenerateTokens", userID, []string{"candidate", "recruiter"}).
		Return("access-token", "refresh-token", nil)

	_, err := fx.service.Login(ctx, usecase.LoginInput{
		Email:    "pharma@example.com",
		Password: "Password123!",
	})

	assert.NoError(t, err)
}

func TestUserService_Login_UnknownEmail(t *testing.T) {
	fx := createTestUserService(t)

	ctx := context.Background()

	fx.userRepo.On("FindByEmail", ctx, "inconnu@example.com").
		Return(nil, repository.ErrUserNotFound)

	output, err := fx.service.Login(ctx, usecase.LoginInput{
		Email:    "inconnu@example.com",
		Password: "Password123!",
	})

	assert.Nil(t, output)
	// Same error as a wrong password: no account enumeration.
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))
}

func TestUserService_Login_WrongPassword(t *testing.T) {
	fx := createTestUserService(t)

	ctx := context.Background()
	user := &entity.User{ID: uuid.New(), Email: "marie@example.com", PasswordHash: "hashed_password"}

	fx.userRepo.On("FindByEmail", ctx, "marie@example.com").Return(user, nil)
	fx.hasher.On("Check", "mauvais", "hashed_password").Return(false)

	output, err := fx.service.Login(ctx, usecase.LoginInput{
		Email:    "marie@example.com",
		Password: "mauvais",
	})

	assert.Nil(t, output)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))
}

func TestUserService_UpsertCandidateProfile_Success(t *testing.T) {
	fx := createTestUserService(t)

	ctx := context.Background()
	userID := uuid.New()

	fx.userRepo.On("UpsertCandidateProfile", ctx, mock.MatchedBy(func(p *entity.CandidateProfile) bool {
		return p.UserID == userID && p.Position == entity.PositionAnimateur
	})).Return(nil)

	profile, err := fx.service.UpsertCandidateProfile(ctx, userID, usecase.CandidateProfileInput{
		Position:      entity.PositionAnimateur,
		Specialties:   []string{"dermo-cosmétique"},
		City:          "Paris",
		Latitude:      48.8566,
		Longitude:     2.3522,
		AlertRadiusKm: 25,
		AlertsEnabled: true,
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"dermo-cosmétique"}, profile.Specialties)
}

func TestUserService_UpsertCandidateProfile_SpecialtiesRequireAnimator(t *testing.T) {
	fx := createTestUserService(t)

	profile, err := fx.service.UpsertCandidateProfile(context.Background(), uuid.New(), usecase.CandidateProfileInput{
		Position:    entity.PositionPreparateur,
		Specialties: []string{"dermo-cosmétique"},
		Latitude:    48.8566,
		Longitude:   2.3522,
	})

	assert.Nil(t, profile)
	assertErrorCode(t, err, "VALIDATION_FAILED")
}

func TestUserService_UpsertRecruiterProfile_UnknownType(t *testing.T) {
	fx := createTestUserService(t)

	profile, err := fx.service.UpsertRecruiterProfile(context.Background(), uuid.New(), usecase.RecruiterProfileInput{
		Type: "clinique",
	})

	assert.Nil(t, profile)
	assertErrorCode(t, err, "VALIDATION_FAILED")
}

func TestUserService_GetProfile_NotFound(t *testing.T) {
	fx := createTestUserService(t)

	ctx := context.Background()
	userID := uuid.New()

	fx.userRepo.On("FindByID", ctx, userID).Return(nil, repository.ErrUserNotFound)

	user, err := fx.service.GetProfile(ctx, userID)

	assert.Nil(t, user)
	assert.True(t, errors.Is(err, domainerrors.ErrUserNotFound))
}
