package impl

import (
	"context"
	"strings"
	"time"

	"pharmalink/internal/domain/entity"
	domainerrors "pharmalink/internal/domain/errors"
	"pharmalink/internal/domain/repository"
	"pharmalink/internal/domain/service"
	"pharmalink/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

type userService struct {
	userRepo       repository.UserRepository
	passwordHasher service.PasswordHasher
	tokenService   service.TokenService
}

// UserServiceParams holds dependencies for UserService, injected by Fx.
type UserServiceParams struct {
	fx.In

	UserRepo       repository.UserRepository
	PasswordHasher service.PasswordHasher
	TokenService   service.TokenService
}

// NewUserService creates a new user service instance
func NewUserService(params UserServiceParams) usecase.UserUsecase {
	return &userService{
		userRepo:       params.UserRepo,
		passwordHasher: params.PasswordHasher,
		tokenService:   params.TokenService,
	}
}

// Register creates a new user account.
func (s *userService) Register(ctx context.Context, input usecase.RegisterInput) (*usecase.RegisterOutput, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, domainerrors.ErrValidationFailed.WithDetails("invalid email address")
	}
	if len(input.Password) < 8 {
		return nil, domainerrors.ErrValidationFailed.WithDetails("password must be at least 8 characters")
	}
	if input.Name == "" {
		return nil, domainerrors.ErrValidationFailed.WithDetails("name is required")
	}

	hash, err := s.passwordHasher.Hash(input.Password)
	if err != nil {
		return nil, errors.Wrap(err, "failed to hash password")
	}

	now := time.Now()
	user := &entity.User{
		Email:        email,
		Name:         input.Name,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, domainerrors.ErrUserAlreadyExists
		}

		return nil, errors.Wrap(err, "failed to create user")
	}

	return &usecase.RegisterOutput{User: user}, nil
}

// Login verifies credentials and issues a token pair.
func (s *userService) Login(ctx context.Context, input usecase.LoginInput) (*usecase.LoginOutput, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			// Indistinguishable from a wrong password on purpose.
			return nil, domainerrors.ErrInvalidCredentials
		}

		return nil, errors.Wrap(err, "failed to find user")
	}

	if !s.passwordHasher.Check(input.Password, user.PasswordHash) {
		return nil, domainerrors.ErrInvalidCredentials
	}

	accessToken, refreshToken, err := s.tokenService.GenerateTokens(user.ID, s.rolesOf(user))
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate tokens")
	}

	return &usecase.LoginOutput{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         user,
	}, nil
}

// rolesOf derives the role claims from which profiles the user carries.
func (s *userService) rolesOf(user *entity.User) []string {
	roles := make(entity.Roles, 0, 2)
	if user.CandidateProfile != nil {
		roles = append(roles, entity.RoleCandidate)
	}
	if user.RecruiterProfile != nil {
		roles = append(roles, entity.RoleRecruiter)
	}

	return roles.ToStrings()
}

// GetProfile retrieves a user with both profiles preloaded.
func (s *userService) GetProfile(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user")
	}

	return user, nil
}

// UpsertCandidateProfile creates or replaces the worker-side profile.
func (s *userService) UpsertCandidateProfile(ctx context.Context, userID uuid.UUID, input usecase.CandidateProfileInput) (*entity.CandidateProfile, error) {
	if !input.Position.IsValid() {
		return nil, domainerrors.ErrValidationFailed.WithDetails("unknown position type")
	}
	if input.Latitude < -90 || input.Latitude > 90 || input.Longitude < -180 || input.Longitude > 180 {
		return nil, domainerrors.ErrValidationFailed.WithDetails("coordinates out of range")
	}
	if len(input.Specialties) > 0 && input.Position != entity.PositionAnimateur {
		return nil, domainerrors.ErrValidationFailed.WithDetails("specialties only apply to animators")
	}

	profile := &entity.CandidateProfile{
		UserID:        userID,
		Position:      input.Position,
		Specialties:   input.Specialties,
		City:          input.City,
		Latitude:      input.Latitude,
		Longitude:     input.Longitude,
		AlertRadiusKm: input.AlertRadiusKm,
		AlertsEnabled: input.AlertsEnabled,
		UpdatedAt:     time.Now(),
	}

	if err := s.userRepo.UpsertCandidateProfile(ctx, profile); err != nil {
		return nil, errors.Wrap(err, "failed to upsert candidate profile")
	}

	return profile, nil
}

// UpsertRecruiterProfile creates or replaces the recruiter-side profile.
func (s *userService) UpsertRecruiterProfile(ctx context.Context, userID uuid.UUID, input usecase.RecruiterProfileInput) (*entity.RecruiterProfile, error) {
	if !input.Type.IsValid() {
		return nil, domainerrors.ErrValidationFailed.WithDetails("unknown recruiter type")
	}
	if input.Latitude < -90 || input.Latitude > 90 || input.Longitude < -180 || input.Longitude > 180 {
		return nil, domainerrors.ErrValidationFailed.WithDetails("coordinates out of range")
	}

	profile := &entity.RecruiterProfile{
		UserID:      userID,
		Type:        input.Type,
		CompanyName: input.CompanyName,
		City:        input.City,
		Latitude:    input.Latitude,
		Longitude:   input.Longitude,
		UpdatedAt:   time.Now(),
	}

	if err := s.userRepo.UpsertRecruiterProfile(ctx, profile); err != nil {
		return nil, errors.Wrap(err, "failed to upsert recruiter profile")
	}

	return profile, nil
}
