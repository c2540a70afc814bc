// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"
	"time"

	"pharmalink/internal/domain/entity"
	"pharmalink/internal/errors"

	"github.com/google/uuid"
)

// Domain-specific errors for mission persistence.
var (
	// ErrMissionNotFound is returned when a mission is not found.
	ErrMissionNotFound = errors.New("mission not found")
	// ErrMissionStateConflict is returned when a conditional status update
	// matched no row: the mission left the expected state concurrently. The
	// loser of a transition race observes this, never a partial write.
	ErrMissionStateConflict = errors.New("mission is no longer in the expected status")
)

// MissionPatch carries the optional fields a transition writes alongside the
// status word. Nil pointers leave columns untouched.
type MissionPatch struct {
	AnimatorID        *uuid.UUID
	ClearAnimator     bool
	ProposedDailyRate *float64
	ClearRate         bool
	StartDate         *time.Time
	EndDate           *time.Time
	City              *string
	Description       *string
	SetConfirmedAt    *time.Time
	SetCompletedAt    *time.Time
}

// MissionRepository defines the interface for mission database operations.
type MissionRepository interface {
	// CreateMission persists a new mission in draft status.
	CreateMission(ctx context.Context, mission *entity.Mission) error

	// FindMissionByID retrieves a mission by its unique ID.
	FindMissionByID(ctx context.Context, id uuid.UUID) (*entity.Mission, error)

	// FindMissionsByClient retrieves missions for a client, newest first.
	FindMissionsByClient(ctx context.Context, clientID uuid.UUID) ([]*entity.Mission, error)

	// FindMissionsByAnimator retrieves missions bound to an animator.
	FindMissionsByAnimator(ctx context.Context, animatorID uuid.UUID) ([]*entity.Mission, error)

	// TransitionMission updates status conditionally: the row is only written
	// when its current status equals from. Returns ErrMissionStateConflict
	// when the row exists but the condition failed, so concurrent transitions
	// serialize on the database row.
	TransitionMission(ctx context.Context, id uuid.UUID, from, to entity.MissionStatus, patch MissionPatch) error
}
