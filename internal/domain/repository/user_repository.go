// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"

	"pharmalink/internal/domain/entity"
	"pharmalink/internal/errors"

	"github.com/google/uuid"
)

// Domain-specific errors for user persistence.
var (
	// ErrUserNotFound is returned when a user is not found.
	ErrUserNotFound = errors.New("user not found")
	// ErrDuplicateEmail is returned when trying to register an email that already exists.
	ErrDuplicateEmail = errors.New("email already registered")
	// ErrProfileNotFound is returned when a user has no profile for the requested role.
	ErrProfileNotFound = errors.New("profile not found")
)

// UserRepository defines the standard operations for user persistence.
// The application layer will depend on this interface, not the concrete implementation.
type UserRepository interface {
	// FindByID retrieves a single user by their unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// FindByEmail retrieves a single user by their email address.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// Create persists a new user entity to the storage.
	Create(ctx context.Context, user *entity.User) error

	// Update modifies an existing user entity in the storage.
	Update(ctx context.Context, user *entity.User) error

	// FindCandidateProfile retrieves the candidate profile for a user.
	FindCandidateProfile(ctx context.Context, userID uuid.UUID) (*entity.CandidateProfile, error)

	// UpsertCandidateProfile creates or replaces the candidate profile for a user.
	UpsertCandidateProfile(ctx context.Context, profile *entity.CandidateProfile) error

	// FindRecruiterProfile retrieves the recruiter profile for a user.
	FindRecruiterProfile(ctx context.Context, userID uuid.UUID) (*entity.RecruiterProfile, error)

	// UpsertRecruiterProfile creates or replaces the recruiter profile for a user.
	UpsertRecruiterProfile(ctx context.Context, profile *entity.RecruiterProfile) error
}
