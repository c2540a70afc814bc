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
	"gorm.io/gorm/clause"
)

// userRepository implements the repository.UserRepository interface.
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository is the constructor for userRepository.
func NewUserRepository(db *gorm.DB) repository.UserRepository {
	return &userRepository{
		db: db,
	}
}

// FindByID retrieves a single user by their unique ID, with profiles preloaded.
func (repo *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	var userM model.UserModel

	if err := repo.db.WithContext(ctx).
		Preload("CandidateProfile").
		Preload("RecruiterProfile").
		Where("id = ?", id).
		First(&userM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by ID")
	}

	return toUserDomain(&userM), nil
}

// FindByEmail retrieves a single user by their email address.
func (repo *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var userM model.UserModel

	if err := repo.db.WithContext(ctx).
		Preload("CandidateProfile").
		Preload("RecruiterProfile").
		Where("email = ?", email).
		First(&userM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by email")
	}

	return toUserDomain(&userM), nil
}

// Create persists a new user entity to the storage.
func (repo *userRepository) Create(ctx context.Context, user *entity.User) error {
	userM := fromUserDomain(user)

	if err := repo.db.WithContext(ctx).Create(userM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrDuplicateEmail
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required user information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create user")
	}

	user.ID = userM.ID
	user.CreatedAt = userM.CreatedAt
	user.UpdatedAt = userM.UpdatedAt

	return nil
}

// Update modifies an existing user entity in the storage.
func (repo *userRepository) Update(ctx context.Context, user *entity.User) error {
	result := repo.db.WithContext(ctx).
		Model(&model.UserModel{}).
		Where("id = ?", user.ID).
		Updates(map[string]any{
			"email": user.Email,
			"name":  user.Name,
		})

	if result.Error != nil {
		if isUniqueConstraintViolation(result.Error) {
			return repository.ErrDuplicateEmail
		}

		return errors.Wrap(result.Error, "failed to update user")
	}

	if result.RowsAffected == 0 {
		return repository.ErrUserNotFound
	}

	return nil
}

// FindCandidateProfile retrieves the candidate profile for a user.
func (repo *userRepository) FindCandidateProfile(ctx context.Context, userID uuid.UUID) (*entity.CandidateProfile, error) {
	var profileM model.CandidateProfileModel

	if err := repo.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&profileM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrProfileNotFound
		}

		return nil, errors.Wrap(err, "failed to find candidate profile")
	}

	return toCandidateProfileDomain(&profileM), nil
}

// UpsertCandidateProfile creates or replaces the candidate profile for a user.
func (repo *userRepository) UpsertCandidateProfile(ctx context.Context, profile *entity.CandidateProfile) error {
	profileM := fromCandidateProfileDomain(profile)

	if err := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"position", "specialties", "city", "latitude", "longitude",
				"alert_radius_km", "alerts_enabled", "updated_at",
			}),
		}).
		Create(profileM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrUserNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to upsert candidate profile")
	}

	return nil
}

// FindRecruiterProfile retrieves the recruiter profile for a user.
func (repo *userRepository) FindRecruiterProfile(ctx context.Context, userID uuid.UUID) (*entity.RecruiterProfile, error) {
	var profileM model.RecruiterProfileModel

	if err := repo.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&profileM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrProfileNotFound
		}

		return nil, errors.Wrap(err, "failed to find recruiter profile")
	}

	return toRecruiterProfileDomain(&profileM), nil
}

// UpsertRecruiterProfile creates or replaces the recruiter profile for a user.
func (repo *userRepository) UpsertRecruiterProfile(ctx context.Context, profile *entity.RecruiterProfile) error {
	profileM := fromRecruiterProfileDomain(profile)

	if err := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"type", "company_name", "city", "latitude", "longitude", "updated_at",
			}),
		}).
		Create(profileM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrUserNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to upsert recruiter profile")
	}

	return nil
}

// --- Mapper Functions ---

// toUserDomain converts a GORM UserModel to a domain User entity.
func toUserDomain(data *model.UserModel) *entity.User {
	if data == nil {
		return nil
	}

	return &entity.User{
		ID:               data.ID,
		Email:            data.Email,
		Name:             data.Name,
		PasswordHash:     data.PasswordHash,
		CandidateProfile: toCandidateProfileDomain(data.CandidateProfile),
		RecruiterProfile: toRecruiterProfileDomain(data.RecruiterProfile),
		CreatedAt:        data.CreatedAt,
		UpdatedAt:        data.UpdatedAt,
	}
}

// fromUserDomain converts a domain User entity to a GORM UserModel.
func fromUserDomain(data *entity.User) *model.UserModel {
	if data == nil {
		return nil
	}

	return &model.UserModel{
		ID:           data.ID,
		Email:        data.Email,
		Name:         data.Name,
		PasswordHash: data.PasswordHash,
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}
}

// toCandidateProfileDomain converts a GORM CandidateProfileModel to a domain CandidateProfile.
func toCandidateProfileDomain(data *model.CandidateProfileModel) *entity.CandidateProfile {
	if data == nil {
		return nil
	}

	return &entity.CandidateProfile{
		UserID:        data.UserID,
		Position:      entity.PositionType(data.Position),
		Specialties:   data.Specialties,
		City:          data.City,
		Latitude:      data.Latitude,
		Longitude:     data.Longitude,
		AlertRadiusKm: data.AlertRadiusKm,
		AlertsEnabled: data.AlertsEnabled,
		UpdatedAt:     data.UpdatedAt,
	}
}

// fromCandidateProfileDomain converts a domain CandidateProfile to a GORM CandidateProfileModel.
func fromCandidateProfileDomain(data *entity.CandidateProfile) *model.CandidateProfileModel {
	if data == nil {
		return nil
	}

	return &model.CandidateProfileModel{
		UserID:        data.UserID,
		Position:      data.Position.String(),
		Specialties:   data.Specialties,
		City:          data.City,
		Latitude:      data.Latitude,
		Longitude:     data.Longitude,
		AlertRadiusKm: data.AlertRadiusKm,
		AlertsEnabled: data.AlertsEnabled,
		UpdatedAt:     data.UpdatedAt,
	}
}

// toRecruiterProfileDomain converts a GORM RecruiterProfileModel to a domain RecruiterProfile.
func toRecruiterProfileDomain(data *model.RecruiterProfileModel) *entity.RecruiterProfile {
	if data == nil {
		return nil
	}

	return &entity.RecruiterProfile{
		UserID:      data.UserID,
		Type:        entity.CreatorType(data.Type),
		CompanyName: data.CompanyName,
		City:        data.City,
		Latitude:    data.Latitude,
		Longitude:   data.Longitude,
		UpdatedAt:   data.UpdatedAt,
	}
}

// fromRecruiterProfileDomain converts a domain RecruiterProfile to a GORM RecruiterProfileModel.
func fromRecruiterProfileDomain(data *entity.RecruiterProfile) *model.RecruiterProfileModel {
	if data == nil {
		return nil
	}

	return &model.RecruiterProfileModel{
		UserID:      data.UserID,
		Type:        data.Type.String(),
		CompanyName: data.CompanyName,
		City:        data.City,
		Latitude:    data.Latitude,
		Longitude:   data.Longitude,
		UpdatedAt:   data.UpdatedAt,
	}
}
