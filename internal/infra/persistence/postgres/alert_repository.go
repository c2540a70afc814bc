// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"
	"encoding/json"
	"time"

	"pharmalink/internal/domain/entity"
	domainerrors "pharmalink/internal/domain/errors"
	"pharmalink/internal/domain/repository"
	"pharmalink/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// alertRepository implements the repository.AlertRepository interface.
type alertRepository struct {
	db *gorm.DB
}

// NewAlertRepository is the constructor for alertRepository.
func NewAlertRepository(db *gorm.DB) repository.AlertRepository {
	return &alertRepository{
		db: db,
	}
}

// CreateAlert persists a new urgent alert.
func (repo *alertRepository) CreateAlert(ctx context.Context, alert *entity.UrgentAlert) error {
	alertM := fromAlertDomain(alert)

	if err := repo.db.WithContext(ctx).Create(alertM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("invalid creator reference")
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required alert information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create alert")
	}

	// Update the entity with generated values
	alert.ID = alertM.ID
	alert.CreatedAt = alertM.CreatedAt
	alert.UpdatedAt = alertM.UpdatedAt

	return nil
}

// FindAlertByID retrieves an alert by its unique ID.
func (repo *alertRepository) FindAlertByID(ctx context.Context, id uuid.UUID) (*entity.UrgentAlert, error) {
	var alertM model.UrgentAlertModel

	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&alertM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrAlertNotFound
		}

		return nil, errors.Wrap(err, "failed to find alert by ID")
	}

	return toAlertDomain(&alertM), nil
}

// FindAlertsByCreator retrieves alerts for a creator, newest first.
func (repo *alertRepository) FindAlertsByCreator(ctx context.Context, creatorID uuid.UUID, filter repository.AlertFilter) ([]*entity.UrgentAlert, error) {
	var alertModels []*model.UrgentAlertModel

	query := repo.db.WithContext(ctx).
		Where("creator_id = ?", creatorID).
		Order("created_at DESC")

	if len(filter.Statuses) > 0 {
		statuses := make([]string, 0, len(filter.Statuses))
		for _, status := range filter.Statuses {
			statuses = append(statuses, status.String())
		}
		query = query.Where("status IN ?", statuses)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	if err := query.Find(&alertModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find alerts by creator")
	}

	alerts := make([]*entity.UrgentAlert, 0, len(alertModels))
	for _, alertM := range alertModels {
		alerts = append(alerts, toAlertDomain(alertM))
	}

	return alerts, nil
}

// FindActiveAlertsForCandidate performs the eligibility query in reverse: all
// active alerts whose effective radius covers the candidate's stored location.
// The effective radius is LEAST(alert radius, candidate preference), and the
// boundary is inclusive (ST_DWithin uses <=).
func (repo *alertRepository) FindActiveAlertsForCandidate(ctx context.Context, candidateID uuid.UUID) ([]*entity.UrgentAlert, error) {
	var alertModels []*model.UrgentAlertModel

	query := `
		SELECT a.*
		FROM urgent_alerts a
		JOIN candidate_profiles p ON p.user_id = ?
		WHERE a.status = 'active'
		  AND a.expires_at > NOW()
		  AND a.position_type = p.position
		  AND ST_DWithin(
		    a.location::geography,
		    p.location::geography,
		    LEAST(a.radius_km, p.alert_radius_km) * 1000.0
		  )
		  AND (
		    a.creator_type <> 'laboratory'
		    OR jsonb_array_length(COALESCE(a.required_specialties, '[]'::jsonb)) = 0
		    OR EXISTS (
		      SELECT 1
		      FROM jsonb_array_elements_text(a.required_specialties) AS rs
		      WHERE rs IN (SELECT cs FROM jsonb_array_elements_text(COALESCE(p.specialties, '[]'::jsonb)) AS cs)
		    )
		  )
		ORDER BY a.created_at DESC
	`

	if err := repo.db.WithContext(ctx).
		Raw(query, candidateID).
		Scan(&alertModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find active alerts for candidate")
	}

	alerts := make([]*entity.UrgentAlert, 0, len(alertModels))
	for _, alertM := range alertModels {
		alerts = append(alerts, toAlertDomain(alertM))
	}

	return alerts, nil
}

// UpdateAlertStatus transitions an alert conditionally on its current status.
func (repo *alertRepository) UpdateAlertStatus(ctx context.Context, id uuid.UUID, from, to entity.AlertStatus, filledAt *time.Time) error {
	updates := map[string]any{
		"status": to.String(),
	}
	if filledAt != nil {
		updates["filled_at"] = *filledAt
	}

	result := repo.db.WithContext(ctx).
		Model(&model.UrgentAlertModel{}).
		Where("id = ? AND status = ?", id, from.String()).
		Updates(updates)

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update alert status")
	}

	if result.RowsAffected == 0 {
		// Distinguish a missing row from a lost race on the status condition.
		var count int64
		if err := repo.db.WithContext(ctx).
			Model(&model.UrgentAlertModel{}).
			Where("id = ?", id).
			Count(&count).Error; err != nil {
			return errors.Wrap(err, "failed to check alert existence")
		}
		if count == 0 {
			return repository.ErrAlertNotFound
		}

		return repository.ErrAlertStateConflict
	}

	return nil
}

// UpdateAlertDetails applies a descriptive-field patch to an active alert.
func (repo *alertRepository) UpdateAlertDetails(ctx context.Context, id uuid.UUID, patch repository.AlertPatch) error {
	updates := map[string]any{}
	if patch.Title != nil {
		updates["title"] = *patch.Title
	}
	if patch.Description != nil {
		updates["description"] = *patch.Description
	}
	if patch.HourlyRate != nil {
		updates["hourly_rate"] = *patch.HourlyRate
	}
	if len(updates) == 0 {
		return nil
	}

	result := repo.db.WithContext(ctx).
		Model(&model.UrgentAlertModel{}).
		Where("id = ? AND status = ?", id, entity.AlertStatusActive.String()).
		Updates(updates)

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update alert details")
	}

	if result.RowsAffected == 0 {
		var count int64
		if err := repo.db.WithContext(ctx).
			Model(&model.UrgentAlertModel{}).
			Where("id = ?", id).
			Count(&count).Error; err != nil {
			return errors.Wrap(err, "failed to check alert existence")
		}
		if count == 0 {
			return repository.ErrAlertNotFound
		}

		return repository.ErrAlertStateConflict
	}

	return nil
}

// UpdateNotifiedCount records how many recipients were notified at fan-out.
func (repo *alertRepository) UpdateNotifiedCount(ctx context.Context, id uuid.UUID, count int) error {
	result := repo.db.WithContext(ctx).
		Model(&model.UrgentAlertModel{}).
		Where("id = ?", id).
		Update("notified_count", count)

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update notified count")
	}

	if result.RowsAffected == 0 {
		return repository.ErrAlertNotFound
	}

	return nil
}

// ExpireOverdueAlerts flips every active alert past its expiry to expired.
func (repo *alertRepository) ExpireOverdueAlerts(ctx context.Context, now time.Time) (int64, error) {
	result := repo.db.WithContext(ctx).
		Model(&model.UrgentAlertModel{}).
		Where("status = ? AND expires_at <= ?", entity.AlertStatusActive.String(), now).
		Update("status", entity.AlertStatusExpired.String())

	if result.Error != nil {
		return 0, errors.Wrap(result.Error, "failed to expire overdue alerts")
	}

	return result.RowsAffected, nil
}

// eligibleCandidateRow is the scan target for the eligibility query.
type eligibleCandidateRow struct {
	UserID     uuid.UUID
	Position   string
	Latitude   float64
	Longitude  float64
	DistanceKm float64
}

// FindEligibleCandidates performs the PostGIS eligibility query for an alert.
// The effective radius is LEAST(alert radius, candidate preference) and the
// boundary is inclusive. For laboratory alerts with required specialties, at
// least one specialty must overlap (OR semantics).
func (repo *alertRepository) FindEligibleCandidates(ctx context.Context, alert *entity.UrgentAlert) ([]*entity.EligibleCandidate, error) {
	query := `
		SELECT
		  p.user_id,
		  p.position,
		  p.latitude,
		  p.longitude,
		  ROUND((ST_Distance(
		    p.location::geography,
		    ST_SetSRID(ST_MakePoint(?, ?), 4326)::geography
		  ) / 1000.0)::numeric, 1) AS distance_km
		FROM candidate_profiles p
		WHERE p.alerts_enabled = true
		  AND p.position = ?
		  AND ST_DWithin(
		    p.location::geography,
		    ST_SetSRID(ST_MakePoint(?, ?), 4326)::geography,
		    LEAST(?, p.alert_radius_km) * 1000.0
		  )
	`
	args := []any{
		alert.Longitude, alert.Latitude,
		alert.PositionType.String(),
		alert.Longitude, alert.Latitude,
		alert.RadiusKm,
	}

	// Laboratory alerts additionally require at least one common specialty.
	if alert.CreatorType == entity.CreatorTypeLaboratory && len(alert.RequiredSpecialties) > 0 {
		required, err := json.Marshal(alert.RequiredSpecialties)
		if err != nil {
			return nil, errors.Wrap(err, "failed to marshal required specialties")
		}

		query += `
		  AND EXISTS (
		    SELECT 1
		    FROM jsonb_array_elements_text(?::jsonb) AS rs
		    WHERE rs IN (SELECT cs FROM jsonb_array_elements_text(COALESCE(p.specialties, '[]'::jsonb)) AS cs)
		  )
		`
		args = append(args, string(required))
	}

	query += ` ORDER BY distance_km ASC`

	var rows []eligibleCandidateRow
	if err := repo.db.WithContext(ctx).
		Raw(query, args...).
		Scan(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find eligible candidates")
	}

	candidates := make([]*entity.EligibleCandidate, 0, len(rows))
	for _, row := range rows {
		candidates = append(candidates, &entity.EligibleCandidate{
			UserID:     row.UserID,
			Position:   entity.PositionType(row.Position),
			Latitude:   row.Latitude,
			Longitude:  row.Longitude,
			DistanceKm: row.DistanceKm,
		})
	}

	return candidates, nil
}

// CreateResponse persists a candidate response to an alert.
func (repo *alertRepository) CreateResponse(ctx context.Context, response *entity.AlertResponse) error {
	responseM := fromResponseDomain(response)

	if err := repo.db.WithContext(ctx).Create(responseM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrDuplicateResponse
		}
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrAlertNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create alert response")
	}

	response.ID = responseM.ID
	response.ResponseTime = responseM.ResponseTime
	response.UpdatedAt = responseM.UpdatedAt

	return nil
}

// FindResponsesByAlert retrieves all responses for an alert, newest first.
func (repo *alertRepository) FindResponsesByAlert(ctx context.Context, alertID uuid.UUID) ([]*entity.AlertResponse, error) {
	var responseModels []*model.AlertResponseModel

	if err := repo.db.WithContext(ctx).
		Where("alert_id = ?", alertID).
		Order("response_time DESC").
		Find(&responseModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find responses by alert")
	}

	responses := make([]*entity.AlertResponse, 0, len(responseModels))
	for _, responseM := range responseModels {
		responses = append(responses, toResponseDomain(responseM))
	}

	return responses, nil
}

// FindResponse retrieves the response of one candidate to one alert.
func (repo *alertRepository) FindResponse(ctx context.Context, alertID, candidateID uuid.UUID) (*entity.AlertResponse, error) {
	var responseM model.AlertResponseModel

	if err := repo.db.WithContext(ctx).
		Where("alert_id = ? AND candidate_id = ?", alertID, candidateID).
		First(&responseM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrResponseNotFound
		}

		return nil, errors.Wrap(err, "failed to find alert response")
	}

	return toResponseDomain(&responseM), nil
}

// HasResponded reports whether the candidate already responded to the alert.
func (repo *alertRepository) HasResponded(ctx context.Context, alertID, candidateID uuid.UUID) (bool, error) {
	var count int64

	if err := repo.db.WithContext(ctx).
		Model(&model.AlertResponseModel{}).
		Where("alert_id = ? AND candidate_id = ?", alertID, candidateID).
		Count(&count).Error; err != nil {
		return false, errors.Wrap(err, "failed to check existing response")
	}

	return count > 0, nil
}

// UpdateResponseStatus moves one candidate's response conditionally on its
// current status, so a settled response is never overwritten.
func (repo *alertRepository) UpdateResponseStatus(ctx context.Context, alertID, candidateID uuid.UUID, from, to entity.ResponseStatus) error {
	result := repo.db.WithContext(ctx).
		Model(&model.AlertResponseModel{}).
		Where("alert_id = ? AND candidate_id = ? AND status = ?", alertID, candidateID, from.String()).
		Update("status", to.String())

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update response status")
	}

	if result.RowsAffected == 0 {
		// Distinguish a missing row from a lost race on the status condition.
		var count int64
		if err := repo.db.WithContext(ctx).
			Model(&model.AlertResponseModel{}).
			Where("alert_id = ? AND candidate_id = ?", alertID, candidateID).
			Count(&count).Error; err != nil {
			return errors.Wrap(err, "failed to check response existence")
		}
		if count == 0 {
			return repository.ErrResponseNotFound
		}

		return repository.ErrResponseStateConflict
	}

	return nil
}

// RejectSiblingResponses flips every other interested response on the alert to rejected.
func (repo *alertRepository) RejectSiblingResponses(ctx context.Context, alertID, acceptedCandidateID uuid.UUID) (int64, error) {
	result := repo.db.WithContext(ctx).
		Model(&model.AlertResponseModel{}).
		Where("alert_id = ? AND candidate_id <> ? AND status = ?",
			alertID, acceptedCandidateID, entity.ResponseStatusInterested.String()).
		Update("status", entity.ResponseStatusRejected.String())

	if result.Error != nil {
		return 0, errors.Wrap(result.Error, "failed to reject sibling responses")
	}

	return result.RowsAffected, nil
}

// --- Mapper Functions ---

// toAlertDomain converts a GORM UrgentAlertModel to a domain UrgentAlert entity.
func toAlertDomain(data *model.UrgentAlertModel) *entity.UrgentAlert {
	if data == nil {
		return nil
	}

	return &entity.UrgentAlert{
		ID:                  data.ID,
		CreatorID:           data.CreatorID,
		CreatorType:         entity.CreatorType(data.CreatorType),
		Title:               data.Title,
		Description:         data.Description,
		PositionType:        entity.PositionType(data.PositionType),
		RequiredSpecialties: data.RequiredSpecialties,
		StartDate:           data.StartDate,
		EndDate:             data.EndDate,
		ExpiresAt:           data.ExpiresAt,
		Latitude:            data.Latitude,
		Longitude:           data.Longitude,
		RadiusKm:            data.RadiusKm,
		City:                data.City,
		HourlyRate:          data.HourlyRate,
		Status:              entity.AlertStatus(data.Status),
		NotifiedCount:       data.NotifiedCount,
		FilledAt:            data.FilledAt,
		CreatedAt:           data.CreatedAt,
		UpdatedAt:           data.UpdatedAt,
	}
}

// fromAlertDomain converts a domain UrgentAlert entity to a GORM UrgentAlertModel.
func fromAlertDomain(data *entity.UrgentAlert) *model.UrgentAlertModel {
	if data == nil {
		return nil
	}

	return &model.UrgentAlertModel{
		ID:                  data.ID,
		CreatorID:           data.CreatorID,
		CreatorType:         data.CreatorType.String(),
		Title:               data.Title,
		Description:         data.Description,
		PositionType:        data.PositionType.String(),
		RequiredSpecialties: data.RequiredSpecialties,
		StartDate:           data.StartDate,
		EndDate:             data.EndDate,
		ExpiresAt:           data.ExpiresAt,
		Latitude:            data.Latitude,
		Longitude:           data.Longitude,
		RadiusKm:            data.RadiusKm,
		City:                data.City,
		HourlyRate:          data.HourlyRate,
		Status:              data.Status.String(),
		NotifiedCount:       data.NotifiedCount,
		FilledAt:            data.FilledAt,
		CreatedAt:           data.CreatedAt,
		UpdatedAt:           data.UpdatedAt,
	}
}

// toResponseDomain converts a GORM AlertResponseModel to a domain AlertResponse entity.
func toResponseDomain(data *model.AlertResponseModel) *entity.AlertResponse {
	if data == nil {
		return nil
	}

	return &entity.AlertResponse{
		ID:           data.ID,
		AlertID:      data.AlertID,
		CandidateID:  data.CandidateID,
		Message:      data.Message,
		Status:       entity.ResponseStatus(data.Status),
		ResponseTime: data.ResponseTime,
		UpdatedAt:    data.UpdatedAt,
	}
}

// fromResponseDomain converts a domain AlertResponse entity to a GORM AlertResponseModel.
func fromResponseDomain(data *entity.AlertResponse) *model.AlertResponseModel {
	if data == nil {
		return nil
	}

	return &model.AlertResponseModel{
		ID:           data.ID,
		AlertID:      data.AlertID,
		CandidateID:  data.CandidateID,
		Message:      data.Message,
		Status:       data.Status.String(),
		ResponseTime: data.ResponseTime,
		UpdatedAt:    data.UpdatedAt,
	}
}
