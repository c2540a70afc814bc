package impl

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"pharmalink/internal/domain/constants"
	"pharmalink/internal/domain/entity"
	domainerrors "pharmalink/internal/domain/errors"
	"pharmalink/internal/domain/repository"
	"pharmalink/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
	"gorm.io/datatypes"
)

// monthKey formats the calendar month used for quota accounting. UTC keeps
// the boundary identical for every caller regardless of server locale.
func monthKey(t time.Time) string {
	return t.UTC().Format("2006-01")
}

type missionService struct {
	missionRepo      repository.MissionRepository
	subscriptionRepo repository.SubscriptionRepository
	notificationRepo repository.NotificationRepository
	userRepo         repository.UserRepository
	txManager        repository.TransactionManager
	logger           *slog.Logger
}

// MissionServiceParams holds dependencies for MissionService, injected by Fx.
type MissionServiceParams struct {
	fx.In

	MissionRepo      repository.MissionRepository
	SubscriptionRepo repository.SubscriptionRepository
	NotificationRepo repository.NotificationRepository
	UserRepo         repository.UserRepository
	TxManager        repository.TransactionManager
	Logger           *slog.Logger
}

// NewMissionService creates a new mission service instance
func NewMissionService(params MissionServiceParams) usecase.MissionUsecase {
	return &missionService{
		missionRepo:      params.MissionRepo,
		subscriptionRepo: params.SubscriptionRepo,
		notificationRepo: params.NotificationRepo,
		userRepo:         params.UserRepo,
		txManager:        params.TxManager,
		logger:           params.Logger,
	}
}

// CreateMission creates a mission in draft status for a client.
func (s *missionService) CreateMission(ctx context.Context, clientID uuid.UUID, input usecase.CreateMissionInput) (*entity.Mission, error) {
	if input.Title == "" {
		return nil, domainerrors.ErrValidationFailed.WithDetails("title is required")
	}
	if input.EndDate.Before(input.StartDate) {
		return nil, domainerrors.ErrValidationFailed.WithDetails("end date precedes start date")
	}
	if input.DailyRateMin < 0 || input.DailyRateMax < input.DailyRateMin {
		return nil, domainerrors.ErrValidationFailed.WithDetails("invalid daily rate range")
	}

	profile, err := s.userRepo.FindRecruiterProfile(ctx, clientID)
	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return nil, domainerrors.ErrForbidden.WrapMessage("recruiter profile required to create missions")
		}

		return nil, errors.Wrap(err, "failed to load recruiter profile")
	}

	now := time.Now()
	mission := &entity.Mission{
		ClientID:            clientID,
		ClientType:          profile.Type,
		Title:               input.Title,
		Description:         input.Description,
		SpecialtiesRequired: input.SpecialtiesRequired,
		City:                input.City,
		Department:          input.Department,
		Region:              input.Region,
		Latitude:            input.Latitude,
		Longitude:           input.Longitude,
		StartDate:           input.StartDate,
		EndDate:             input.EndDate,
		DailyRateMin:        input.DailyRateMin,
		DailyRateMax:        input.DailyRateMax,
		Status:              entity.MissionStatusDraft,
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	if err := s.missionRepo.CreateMission(ctx, mission); err != nil {
		return nil, err
	}

	return mission, nil
}

// PublishMission moves a draft mission to open.
func (s *missionService) PublishMission(ctx context.Context, missionID, clientID uuid.UUID) (*entity.Mission, error) {
	return s.clientTransition(ctx, missionID, clientID, entity.MissionStatusOpen, repository.MissionPatch{})
}

// SendProposal binds the full term set to an open mission: the animator, the
// daily rate, the engagement dates, the location and the work description.
func (s *missionService) SendProposal(ctx context.Context, missionID, clientID uuid.UUID, input usecase.ProposalInput) (*entity.Mission, error) {
	mission, err := s.findMission(ctx, missionID)
	if err != nil {
		return nil, err
	}
	if mission.ClientID != clientID {
		return nil, domainerrors.ErrNotMissionClient
	}
	if err := validateProposalInput(mission, input); err != nil {
		return nil, err
	}
	if !mission.Status.CanTransitionTo(entity.MissionStatusProposalSent) {
		return nil, domainerrors.ErrInvalidTransition
	}

	rate := input.DailyRate
	animatorID := input.AnimatorID
	startDate := input.StartDate
	endDate := input.EndDate
	location := input.Location
	description := input.Description
	patch := repository.MissionPatch{
		AnimatorID:        &animatorID,
		ProposedDailyRate: &rate,
		StartDate:         &startDate,
		EndDate:           &endDate,
		City:              &location,
		Description:       &description,
	}
	if err := s.transition(ctx, missionID, mission.Status, entity.MissionStatusProposalSent, patch); err != nil {
		return nil, err
	}

	s.notify(ctx, animatorID, "Nouvelle proposition de mission",
		fmt.Sprintf("On vous propose la mission « %s » à %.2f € par jour", mission.Title, rate), missionID)

	return s.findMission(ctx, missionID)
}

// validateProposalInput requires every proposal term: the animator answers a
// complete offer, never a partial one.
func validateProposalInput(mission *entity.Mission, input usecase.ProposalInput) error {
	if input.StartDate.IsZero() || input.EndDate.IsZero() {
		return domainerrors.ErrValidationFailed.WithDetails("proposal dates are required")
	}
	if input.EndDate.Before(input.StartDate) {
		return domainerrors.ErrValidationFailed.WithDetails("proposal end date precedes start date")
	}
	if input.Location == "" {
		return domainerrors.ErrValidationFailed.WithDetails("proposal location is required")
	}
	if input.Description == "" {
		return domainerrors.ErrValidationFailed.WithDetails("proposal description is required")
	}
	if input.DailyRate < mission.DailyRateMin || input.DailyRate > mission.DailyRateMax {
		return domainerrors.ErrValidationFailed.WithDetails("proposed rate outside the mission's range")
	}

	return nil
}

// AcceptProposal records the animator's acceptance.
func (s *missionService) AcceptProposal(ctx context.Context, missionID, animatorID uuid.UUID) (*entity.Mission, error) {
	mission, err := s.findMission(ctx, missionID)
	if err != nil {
		return nil, err
	}
	if mission.AnimatorID == nil || *mission.AnimatorID != animatorID {
		return nil, domainerrors.ErrNotProposedAnimator
	}
	if !mission.Status.CanTransitionTo(entity.MissionStatusAnimatorAccepted) {
		return nil, domainerrors.ErrInvalidTransition
	}

	if err := s.transition(ctx, missionID, mission.Status, entity.MissionStatusAnimatorAccepted, repository.MissionPatch{}); err != nil {
		return nil, err
	}

	s.notify(ctx, mission.ClientID, "Proposition acceptée",
		fmt.Sprintf("L'animateur a accepté la mission « %s », confirmez pour finaliser", mission.Title), missionID)

	return s.findMission(ctx, missionID)
}

// DeclineProposal reopens the mission: the animator binding and the proposed
// rate are cleared together so the reopened mission carries no stale
// per-animator terms. Dates, location and description stay: they are the
// mission's own fields, re-bound by the next proposal.
func (s *missionService) DeclineProposal(ctx context.Context, missionID, animatorID uuid.UUID) (*entity.Mission, error) {
	mission, err := s.findMission(ctx, missionID)
	if err != nil {
		return nil, err
	}
	if mission.AnimatorID == nil || *mission.AnimatorID != animatorID {
		return nil, domainerrors.ErrNotProposedAnimator
	}
	if !mission.Status.CanTransitionTo(entity.MissionStatusOpen) {
		return nil, domainerrors.ErrInvalidTransition
	}

	patch := repository.MissionPatch{
		ClearAnimator: true,
		ClearRate:     true,
	}
	if err := s.transition(ctx, missionID, mission.Status, entity.MissionStatusOpen, patch); err != nil {
		return nil, err
	}

	s.notify(ctx, mission.ClientID, "Proposition déclinée",
		fmt.Sprintf("L'animateur a décliné la mission « %s », elle est de nouveau ouverte", mission.Title), missionID)

	return s.findMission(ctx, missionID)
}

// ConfirmMission finalizes the engagement and settles the connection fee in
// the same transaction. Quota consumption and the status flip commit or roll
// back together.
func (s *missionService) ConfirmMission(ctx context.Context, missionID, clientID uuid.UUID) (*usecase.ConfirmOutput, error) {
	mission, err := s.findMission(ctx, missionID)
	if err != nil {
		return nil, err
	}
	if mission.ClientID != clientID {
		return nil, domainerrors.ErrNotMissionClient
	}
	if !mission.Status.CanTransitionTo(entity.MissionStatusConfirmed) {
		return nil, domainerrors.ErrInvalidTransition
	}

	now := time.Now()
	var feeStatus *entity.FeeStatus

	err = s.txManager.Execute(ctx, func(txRepoFactory repository.RepositoryFactory) error {
		txSubscriptionRepo := txRepoFactory.NewSubscriptionRepository()
		txMissionRepo := txRepoFactory.NewMissionRepository()

		status, feeErr := s.computeFeeStatus(ctx, txSubscriptionRepo, clientID, now)
		if feeErr != nil {
			return feeErr
		}

		if status.IncludedInSubscription && status.ContactsRemaining != nil {
			// Bounded plan within quota: consume one contact atomically.
			if err := txSubscriptionRepo.IncrementMonthlyUsage(ctx, clientID, monthKey(now)); err != nil {
				return err
			}
			remaining := *status.ContactsRemaining - 1
			status.ContactsRemaining = &remaining
		}

		feeStatus = status

		return txMissionRepo.TransitionMission(ctx, missionID, mission.Status, entity.MissionStatusConfirmed,
			repository.MissionPatch{SetConfirmedAt: &now})
	})

	if err != nil {
		return nil, s.mapTransitionError(err, "confirmation transaction failed")
	}

	if mission.AnimatorID != nil {
		s.notify(ctx, *mission.AnimatorID, "Mission confirmée",
			fmt.Sprintf("La mission « %s » est confirmée", mission.Title), missionID)
	}

	confirmed, err := s.findMission(ctx, missionID)
	if err != nil {
		return nil, err
	}

	return &usecase.ConfirmOutput{
		Mission:   confirmed,
		FeeStatus: feeStatus,
	}, nil
}

// StartMission moves a confirmed mission to in_progress.
func (s *missionService) StartMission(ctx context.Context, missionID, clientID uuid.UUID) (*entity.Mission, error) {
	return s.clientTransition(ctx, missionID, clientID, entity.MissionStatusInProgress, repository.MissionPatch{})
}

// CompleteMission closes the engagement, anchoring the review gate.
func (s *missionService) CompleteMission(ctx context.Context, missionID, clientID uuid.UUID) (*entity.Mission, error) {
	now := time.Now()

	mission, err := s.clientTransition(ctx, missionID, clientID, entity.MissionStatusCompleted,
		repository.MissionPatch{SetCompletedAt: &now})
	if err != nil {
		return nil, err
	}

	if mission.AnimatorID != nil {
		s.notify(ctx, *mission.AnimatorID, "Mission terminée",
			fmt.Sprintf("La mission « %s » est terminée, vous pouvez laisser un avis", mission.Title), missionID)
	}

	return mission, nil
}

// CancelMission cancels a mission from any non-terminal state.
func (s *missionService) CancelMission(ctx context.Context, missionID, clientID uuid.UUID) (*entity.Mission, error) {
	mission, err := s.clientTransition(ctx, missionID, clientID, entity.MissionStatusCancelled, repository.MissionPatch{})
	if err != nil {
		return nil, err
	}

	if mission.AnimatorID != nil {
		s.notify(ctx, *mission.AnimatorID, "Mission annulée",
			fmt.Sprintf("La mission « %s » a été annulée", mission.Title), missionID)
	}

	return mission, nil
}

// GetMission retrieves a mission with its schedule arithmetic.
func (s *missionService) GetMission(ctx context.Context, missionID uuid.UUID) (*usecase.MissionSummary, error) {
	mission, err := s.findMission(ctx, missionID)
	if err != nil {
		return nil, err
	}

	summary := &usecase.MissionSummary{
		Mission:      mission,
		DurationDays: mission.DurationDays(),
	}
	if mission.ProposedDailyRate != nil {
		payout := mission.TotalPayout(*mission.ProposedDailyRate)
		summary.TotalPayout = &payout
	}

	return summary, nil
}

// GetClientMissions retrieves the missions created by a client.
func (s *missionService) GetClientMissions(ctx context.Context, clientID uuid.UUID) ([]*entity.Mission, error) {
	missions, err := s.missionRepo.FindMissionsByClient(ctx, clientID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find client missions")
	}

	return missions, nil
}

// GetAnimatorMissions retrieves the missions bound to an animator.
func (s *missionService) GetAnimatorMissions(ctx context.Context, animatorID uuid.UUID) ([]*entity.Mission, error) {
	missions, err := s.missionRepo.FindMissionsByAnimator(ctx, animatorID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find animator missions")
	}

	return missions, nil
}

// CheckFeeStatus computes what confirming would cost right now. Read only:
// nothing is consumed until the confirmation itself.
func (s *missionService) CheckFeeStatus(ctx context.Context, missionID, clientID uuid.UUID) (*entity.FeeStatus, error) {
	mission, err := s.findMission(ctx, missionID)
	if err != nil {
		return nil, err
	}
	if mission.ClientID != clientID {
		return nil, domainerrors.ErrNotMissionClient
	}

	return s.computeFeeStatus(ctx, s.subscriptionRepo, clientID, time.Now())
}

// computeFeeStatus resolves the client's plan and this month's consumption
// into a fee decision. A recruiter without a subscription row is on the free
// tier.
func (s *missionService) computeFeeStatus(ctx context.Context, subscriptionRepo repository.SubscriptionRepository, clientID uuid.UUID, now time.Time) (*entity.FeeStatus, error) {
	tier := entity.TierFree
	subscription, err := subscriptionRepo.FindSubscriptionByRecruiter(ctx, clientID)
	if err != nil {
		if !errors.Is(err, repository.ErrSubscriptionNotFound) {
			return nil, errors.Wrap(err, "failed to find subscription")
		}
	} else {
		tier = subscription.Tier
	}

	plan, err := subscriptionRepo.FindPlanByTier(ctx, tier)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find plan")
	}

	if plan.IsUnlimited() {
		return &entity.FeeStatus{IncludedInSubscription: true}, nil
	}

	usage, err := subscriptionRepo.FindMonthlyUsage(ctx, clientID, monthKey(now))
	if err != nil {
		return nil, errors.Wrap(err, "failed to find monthly usage")
	}

	if usage.ContactsUsed < plan.ContactsMax {
		remaining := plan.ContactsMax - usage.ContactsUsed

		return &entity.FeeStatus{
			IncludedInSubscription: true,
			ContactsRemaining:      &remaining,
		}, nil
	}

	amount := plan.ConnectionFee
	zero := 0

	return &entity.FeeStatus{
		IncludedInSubscription: false,
		ContactsRemaining:      &zero,
		Amount:                 &amount,
	}, nil
}

// clientTransition is the shared guard for transitions only the client may
// trigger: ownership, then the state machine, then the conditional write.
func (s *missionService) clientTransition(ctx context.Context, missionID, clientID uuid.UUID, to entity.MissionStatus, patch repository.MissionPatch) (*entity.Mission, error) {
	mission, err := s.findMission(ctx, missionID)
	if err != nil {
		return nil, err
	}
	if mission.ClientID != clientID {
		return nil, domainerrors.ErrNotMissionClient
	}
	if !mission.Status.CanTransitionTo(to) {
		return nil, domainerrors.ErrInvalidTransition
	}

	if err := s.transition(ctx, missionID, mission.Status, to, patch); err != nil {
		return nil, err
	}

	return s.findMission(ctx, missionID)
}

func (s *missionService) findMission(ctx context.Context, missionID uuid.UUID) (*entity.Mission, error) {
	mission, err := s.missionRepo.FindMissionByID(ctx, missionID)
	if err != nil {
		if errors.Is(err, repository.ErrMissionNotFound) {
			return nil, domainerrors.ErrMissionNotFound
		}

		return nil, errors.Wrap(err, "failed to find mission")
	}

	return mission, nil
}

func (s *missionService) transition(ctx context.Context, missionID uuid.UUID, from, to entity.MissionStatus, patch repository.MissionPatch) error {
	if err := s.missionRepo.TransitionMission(ctx, missionID, from, to, patch); err != nil {
		return s.mapTransitionError(err, "failed to transition mission")
	}

	return nil
}

func (s *missionService) mapTransitionError(err error, message string) error {
	switch {
	case errors.Is(err, repository.ErrMissionNotFound):
		return domainerrors.ErrMissionNotFound
	case errors.Is(err, repository.ErrMissionStateConflict):
		return domainerrors.ErrInvalidTransition
	default:
		return errors.Wrap(err, message)
	}
}

// notify writes a best-effort in-app notification for a mission event.
func (s *missionService) notify(ctx context.Context, userID uuid.UUID, title, content string, missionID uuid.UUID) {
	if err := s.notificationRepo.CreateNotification(ctx, &entity.Notification{
		UserID:  userID,
		Type:    constants.NotificationTypeMission,
		Title:   title,
		Content: content,
		Data: datatypes.JSONMap{
			"mission_id": missionID.String(),
		},
	}); err != nil {
		s.logger.WarnContext(ctx, "mission notification failed",
			slog.String("mission_id", missionID.String()),
			slog.Any("error", err),
		)
	}
}
