package usecase

import (
	"context"
	"time"

	"pharmalink/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// CreateMissionInput defines the data required to create a mission draft.
type CreateMissionInput struct {
	Title               string
	Description         string
	SpecialtiesRequired []string
	City                string
	Department          string
	Region              string
	Latitude            float64
	Longitude           float64
	StartDate           time.Time
	EndDate             time.Time
	DailyRateMin        float64
	DailyRateMax        float64
}

// ProposalInput defines the terms bound to a mission when a proposal is sent:
// the animator, the rate, the engagement dates, the location and the work
// description. All terms are required and the rate becomes immutable once the
// proposal is out; dates, location and description overwrite the mission's
// own fields so the animator answers the exact terms on record.
type ProposalInput struct {
	AnimatorID  uuid.UUID
	DailyRate   float64
	StartDate   time.Time
	EndDate     time.Time
	Location    string
	Description string
}

// --- Output DTOs ---

// MissionSummary bundles a mission with its derived schedule arithmetic.
type MissionSummary struct {
	Mission      *entity.Mission `json:"mission"`
	DurationDays int             `json:"duration_days"`
	TotalPayout  *float64        `json:"total_payout,omitempty"` // nil until a rate is bound
}

// ConfirmOutput reports the fee settlement that accompanied a confirmation.
type ConfirmOutput struct {
	Mission   *entity.Mission   `json:"mission"`
	FeeStatus *entity.FeeStatus `json:"fee_status"`
}

// MissionUsecase defines the interface for the mission lifecycle controller.
// Every transition is guarded by the closed state machine and serialized on
// the database row, so a lost race surfaces as a conflict, never as a
// partial write.
type MissionUsecase interface {
	// CreateMission creates a mission in draft status for a client.
	CreateMission(ctx context.Context, clientID uuid.UUID, input CreateMissionInput) (*entity.Mission, error)

	// PublishMission moves a draft mission to open.
	PublishMission(ctx context.Context, missionID, clientID uuid.UUID) (*entity.Mission, error)

	// SendProposal binds an animator and a daily rate to an open mission and
	// moves it to proposal_sent.
	SendProposal(ctx context.Context, missionID, clientID uuid.UUID, input ProposalInput) (*entity.Mission, error)

	// AcceptProposal records the animator's acceptance, moving the mission to
	// animator_accepted. Restricted to the proposed animator.
	AcceptProposal(ctx context.Context, missionID, animatorID uuid.UUID) (*entity.Mission, error)

	// DeclineProposal reopens the mission: the animator binding and the
	// proposed rate are cleared and the status returns to open.
	DeclineProposal(ctx context.Context, missionID, animatorID uuid.UUID) (*entity.Mission, error)

	// ConfirmMission finalizes the engagement and settles the connection fee
	// in the same transaction: within-quota confirmations consume one contact,
	// over-quota confirmations carry a payable fee.
	ConfirmMission(ctx context.Context, missionID, clientID uuid.UUID) (*ConfirmOutput, error)

	// StartMission moves a confirmed mission to in_progress.
	StartMission(ctx context.Context, missionID, clientID uuid.UUID) (*entity.Mission, error)

	// CompleteMission closes the engagement, anchoring the review gate.
	CompleteMission(ctx context.Context, missionID, clientID uuid.UUID) (*entity.Mission, error)

	// CancelMission cancels a mission from any non-terminal state.
	CancelMission(ctx context.Context, missionID, clientID uuid.UUID) (*entity.Mission, error)

	// GetMission retrieves a mission with its schedule arithmetic.
	GetMission(ctx context.Context, missionID uuid.UUID) (*MissionSummary, error)

	// GetClientMissions retrieves the missions created by a client.
	GetClientMissions(ctx context.Context, clientID uuid.UUID) ([]*entity.Mission, error)

	// GetAnimatorMissions retrieves the missions bound to an animator.
	GetAnimatorMissions(ctx context.Context, animatorID uuid.UUID) ([]*entity.Mission, error)

	// CheckFeeStatus computes, without mutating anything, what confirming a
	// mission would cost the client right now.
	CheckFeeStatus(ctx context.Context, missionID, clientID uuid.UUID) (*entity.FeeStatus, error)
}
