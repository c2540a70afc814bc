package usecase

import (
	"context"

	"pharmalink/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a new user.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// LoginInput defines the data required for a user to log in.
type LoginInput struct {
	Email    string
	Password string
}

// CandidateProfileInput defines the worker-side profile data.
type CandidateProfileInput struct {
	Position      entity.PositionType
	Specialties   []string
	City          string
	Latitude      float64
	Longitude     float64
	AlertRadiusKm float64
	AlertsEnabled bool
}

// RecruiterProfileInput defines the recruiter-side profile data.
type RecruiterProfileInput struct {
	Type        entity.CreatorType
	CompanyName string
	City        string
	Latitude    float64
	Longitude   float64
}

// --- Output DTOs ---

// RegisterOutput returns the newly created user's basic information.
type RegisterOutput struct {
	User *entity.User
}

// LoginOutput returns the generated tokens after a successful login.
type LoginOutput struct {
	AccessToken  string
	RefreshToken string
	User         *entity.User
}

// UserUsecase defines the interface for user-related business operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type UserUsecase interface {
	Register(ctx context.Context, input RegisterInput) (*RegisterOutput, error)
	Login(ctx context.Context, input LoginInput) (*LoginOutput, error)

	// GetProfile retrieves a user with both profiles preloaded.
	GetProfile(ctx context.Context, userID uuid.UUID) (*entity.User, error)

	// UpsertCandidateProfile creates or replaces the worker-side profile.
	UpsertCandidateProfile(ctx context.Context, userID uuid.UUID, input CandidateProfileInput) (*entity.CandidateProfile, error)

	// UpsertRecruiterProfile creates or replaces the recruiter-side profile.
	UpsertRecruiterProfile(ctx context.Context, userID uuid.UUID, input RecruiterProfileInput) (*entity.RecruiterProfile, error)
}
