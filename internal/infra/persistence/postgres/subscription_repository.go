// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"

	"pharmalink/config"
	"pharmalink/internal/domain/entity"
	domainerrors "pharmalink/internal/domain/errors"
	"pharmalink/internal/domain/repository"
	"pharmalink/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// subscriptionRepository implements the repository.SubscriptionRepository interface.
type subscriptionRepository struct {
	db    *gorm.DB
	plans map[string]config.PlanConfig
}

// NewSubscriptionRepository is the constructor for subscriptionRepository.
// Plans configured under billing serve as a fallback for tiers that have no
// database row yet, so a fresh deployment works before any seeding.
func NewSubscriptionRepository(db *gorm.DB, cfg *config.Config) repository.SubscriptionRepository {
	repo := &subscriptionRepository{db: db}
	if cfg != nil && cfg.Billing != nil {
		repo.plans = cfg.Billing.Plans
	}

	return repo
}

// FindPlanByTier retrieves the plan definition for a tier. The database row
// wins; configured plans back it up.
func (repo *subscriptionRepository) FindPlanByTier(ctx context.Context, tier entity.SubscriptionTier) (*entity.SubscriptionPlan, error) {
	var planM model.SubscriptionPlanModel

	if err := repo.db.WithContext(ctx).
		Where("tier = ?", tier.String()).
		First(&planM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if configured, ok := repo.plans[tier.String()]; ok {
				return &entity.SubscriptionPlan{
					Tier:          tier,
					ContactsMax:   configured.ContactsMax,
					ConnectionFee: configured.ConnectionFee,
				}, nil
			}

			return nil, repository.ErrPlanNotFound
		}

		return nil, errors.Wrap(err, "failed to find plan by tier")
	}

	return &entity.SubscriptionPlan{
		Tier:          entity.SubscriptionTier(planM.Tier),
		ContactsMax:   planM.ContactsMax,
		ConnectionFee: planM.ConnectionFee,
	}, nil
}

// FindSubscriptionByRecruiter retrieves the current subscription of a recruiter.
func (repo *subscriptionRepository) FindSubscriptionByRecruiter(ctx context.Context, recruiterID uuid.UUID) (*entity.RecruiterSubscription, error) {
	var subscriptionM model.RecruiterSubscriptionModel

	if err := repo.db.WithContext(ctx).
		Where("recruiter_id = ?", recruiterID).
		First(&subscriptionM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrSubscriptionNotFound
		}

		return nil, errors.Wrap(err, "failed to find subscription by recruiter")
	}

	return &entity.RecruiterSubscription{
		ID:          subscriptionM.ID,
		RecruiterID: subscriptionM.RecruiterID,
		Tier:        entity.SubscriptionTier(subscriptionM.Tier),
		StartedAt:   subscriptionM.StartedAt,
		UpdatedAt:   subscriptionM.UpdatedAt,
	}, nil
}

// UpsertSubscription creates or replaces the subscription of a recruiter.
func (repo *subscriptionRepository) UpsertSubscription(ctx context.Context, subscription *entity.RecruiterSubscription) error {
	subscriptionM := &model.RecruiterSubscriptionModel{
		ID:          subscription.ID,
		RecruiterID: subscription.RecruiterID,
		Tier:        subscription.Tier.String(),
		StartedAt:   subscription.StartedAt,
		UpdatedAt:   subscription.UpdatedAt,
	}

	if err := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "recruiter_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"tier", "started_at", "updated_at"}),
		}).
		Create(subscriptionM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrSubscriptionNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to upsert subscription")
	}

	subscription.ID = subscriptionM.ID

	return nil
}

// FindMonthlyUsage retrieves the usage counter for a recruiter and month.
func (repo *subscriptionRepository) FindMonthlyUsage(ctx context.Context, recruiterID uuid.UUID, month string) (*entity.MonthlyUsage, error) {
	var usageM model.MonthlyUsageModel

	if err := repo.db.WithContext(ctx).
		Where("recruiter_id = ? AND month = ?", recruiterID, month).
		First(&usageM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// A missing row means nothing consumed yet this month.
			return &entity.MonthlyUsage{
				RecruiterID:  recruiterID,
				Month:        month,
				ContactsUsed: 0,
			}, nil
		}

		return nil, errors.Wrap(err, "failed to find monthly usage")
	}

	return &entity.MonthlyUsage{
		ID:           usageM.ID,
		RecruiterID:  usageM.RecruiterID,
		Month:        usageM.Month,
		ContactsUsed: usageM.ContactsUsed,
		UpdatedAt:    usageM.UpdatedAt,
	}, nil
}

// IncrementMonthlyUsage adds one contact to the recruiter's counter for the month.
// A single upsert keeps concurrent confirmations from losing increments.
func (repo *subscriptionRepository) IncrementMonthlyUsage(ctx context.Context, recruiterID uuid.UUID, month string) error {
	query := `
		INSERT INTO monthly_usages (recruiter_id, month, contacts_used, updated_at)
		VALUES (?, ?, 1, NOW())
		ON CONFLICT (recruiter_id, month)
		DO UPDATE SET contacts_used = monthly_usages.contacts_used + 1, updated_at = NOW()
	`

	if err := repo.db.WithContext(ctx).Exec(query, recruiterID, month).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to increment monthly usage")
	}

	return nil
}
