// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"

	"pharmalink/internal/domain/entity"
	domainerrors "pharmalink/internal/domain/errors"
	"pharmalink/internal/domain/repository"
	"pharmalink/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// missionRepository implements the repository.MissionRepository interface.
type missionRepository struct {
	db *gorm.DB
}

// NewMissionRepository is the constructor for missionRepository.
func NewMissionRepository(db *gorm.DB) repository.MissionRepository {
	return &missionRepository{
		db: db,
	}
}

// CreateMission persists a new mission.
func (repo *missionRepository) CreateMission(ctx context.Context, mission *entity.Mission) error {
	missionM := fromMissionDomain(mission)

	if err := repo.db.WithContext(ctx).Create(missionM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("invalid client reference")
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required mission information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create mission")
	}

	// Update the entity with generated values
	mission.ID = missionM.ID
	mission.CreatedAt = missionM.CreatedAt
	mission.UpdatedAt = missionM.UpdatedAt

	return nil
}

// FindMissionByID retrieves a mission by its unique ID.
func (repo *missionRepository) FindMissionByID(ctx context.Context, id uuid.UUID) (*entity.Mission, error) {
	var missionM model.MissionModel

	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&missionM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrMissionNotFound
		}

		return nil, errors.Wrap(err, "failed to find mission by ID")
	}

	return toMissionDomain(&missionM), nil
}

// FindMissionsByClient retrieves missions for a client, newest first.
func (repo *missionRepository) FindMissionsByClient(ctx context.Context, clientID uuid.UUID) ([]*entity.Mission, error) {
	var missionModels []*model.MissionModel

	if err := repo.db.WithContext(ctx).
		Where("client_id = ?", clientID).
		Order("created_at DESC").
		Find(&missionModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find missions by client")
	}

	missions := make([]*entity.Mission, 0, len(missionModels))
	for _, missionM := range missionModels {
		missions = append(missions, toMissionDomain(missionM))
	}

	return missions, nil
}

// FindMissionsByAnimator retrieves missions bound to an animator, newest first.
func (repo *missionRepository) FindMissionsByAnimator(ctx context.Context, animatorID uuid.UUID) ([]*entity.Mission, error) {
	var missionModels []*model.MissionModel

	if err := repo.db.WithContext(ctx).
		Where("animator_id = ?", animatorID).
		Order("created_at DESC").
		Find(&missionModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find missions by animator")
	}

	missions := make([]*entity.Mission, 0, len(missionModels))
	for _, missionM := range missionModels {
		missions = append(missions, toMissionDomain(missionM))
	}

	return missions, nil
}

// TransitionMission updates the mission status conditionally on its current
// status, applying the patch fields in the same statement. A lost race on the
// condition surfaces as ErrMissionStateConflict, never as a partial write.
func (repo *missionRepository) TransitionMission(ctx context.Context, id uuid.UUID, from, to entity.MissionStatus, patch repository.MissionPatch) error {
	updates := map[string]any{
		"status": to.String(),
	}
	if patch.AnimatorID != nil {
		updates["animator_id"] = *patch.AnimatorID
	}
	if patch.ClearAnimator {
		updates["animator_id"] = nil
	}
	if patch.ProposedDailyRate != nil {
		updates["proposed_daily_rate"] = *patch.ProposedDailyRate
	}
	if patch.ClearRate {
		updates["proposed_daily_rate"] = nil
	}
	if patch.StartDate != nil {
		updates["start_date"] = *patch.StartDate
	}
	if patch.EndDate != nil {
		updates["end_date"] = *patch.EndDate
	}
	if patch.City != nil {
		updates["city"] = *patch.City
	}
	if patch.Description != nil {
		updates["description"] = *patch.Description
	}
	if patch.SetConfirmedAt != nil {
		updates["confirmed_at"] = *patch.SetConfirmedAt
	}
	if patch.SetCompletedAt != nil {
		updates["completed_at"] = *patch.SetCompletedAt
	}

	result := repo.db.WithContext(ctx).
		Model(&model.MissionModel{}).
		Where("id = ? AND status = ?", id, from.String()).
		Updates(updates)

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to transition mission")
	}

	if result.RowsAffected == 0 {
		// Distinguish a missing row from a lost race on the status condition.
		var count int64
		if err := repo.db.WithContext(ctx).
			Model(&model.MissionModel{}).
			Where("id = ?", id).
			Count(&count).Error; err != nil {
			return errors.Wrap(err, "failed to check mission existence")
		}
		if count == 0 {
			return repository.ErrMissionNotFound
		}

		return repository.ErrMissionStateConflict
	}

	return nil
}

// --- Mapper Functions ---

// toMissionDomain converts a GORM MissionModel to a domain Mission entity.
func toMissionDomain(data *model.MissionModel) *entity.Mission {
	if data == nil {
		return nil
	}

	return &entity.Mission{
		ID:                  data.ID,
		ClientID:            data.ClientID,
		ClientType:          entity.CreatorType(data.ClientType),
		AnimatorID:          data.AnimatorID,
		Title:               data.Title,
		Description:         data.Description,
		SpecialtiesRequired: data.SpecialtiesRequired,
		City:                data.City,
		Department:          data.Department,
		Region:              data.Region,
		Latitude:            data.Latitude,
		Longitude:           data.Longitude,
		StartDate:           data.StartDate,
		EndDate:             data.EndDate,
		DailyRateMin:        data.DailyRateMin,
		DailyRateMax:        data.DailyRateMax,
		ProposedDailyRate:   data.ProposedDailyRate,
		Status:              entity.MissionStatus(data.Status),
		ConfirmedAt:         data.ConfirmedAt,
		CompletedAt:         data.CompletedAt,
		CreatedAt:           data.CreatedAt,
		UpdatedAt:           data.UpdatedAt,
	}
}

// fromMissionDomain converts a domain Mission entity to a GORM MissionModel.
func fromMissionDomain(data *entity.Mission) *model.MissionModel {
	if data == nil {
		return nil
	}

	return &model.MissionModel{
		ID:                  data.ID,
		ClientID:            data.ClientID,
		ClientType:          data.ClientType.String(),
		AnimatorID:          data.AnimatorID,
		Title:               data.Title,
		Description:         data.Description,
		SpecialtiesRequired: data.SpecialtiesRequired,
		City:                data.City,
		Department:          data.Department,
		Region:              data.Region,
		Latitude:            data.Latitude,
		Longitude:           data.Longitude,
		StartDate:           data.StartDate,
		EndDate:             data.EndDate,
		DailyRateMin:        data.DailyRateMin,
		DailyRateMax:        data.DailyRateMax,
		ProposedDailyRate:   data.ProposedDailyRate,
		Status:              data.Status.String(),
		ConfirmedAt:         data.ConfirmedAt,
		CompletedAt:         data.CompletedAt,
		CreatedAt:           data.CreatedAt,
		UpdatedAt:           data.UpdatedAt,
	}
}
