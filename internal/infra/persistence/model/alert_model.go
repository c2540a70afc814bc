package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// UrgentAlertModel is the GORM-specific struct for the 'urgent_alerts' table.
type UrgentAlertModel struct {
	ID                  uuid.UUID                   `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	CreatorID           uuid.UUID                   `gorm:"type:uuid;not null;index"`
	CreatorType         string                      `gorm:"type:varchar(32);not null"`
	Title               string                      `gorm:"type:text;not null"`
	Description         string                      `gorm:"type:text"`
	PositionType        string                      `gorm:"type:varchar(32);not null;index"`
	RequiredSpecialties datatypes.JSONSlice[string] `gorm:"type:jsonb"`
	StartDate           time.Time                   `gorm:"not null"`
	EndDate             time.Time                   `gorm:"not null"`
	ExpiresAt           time.Time                   `gorm:"not null;index"`
	Latitude            float64                     `gorm:"type:decimal(10,8);not null"`
	Longitude           float64                     `gorm:"type:decimal(11,8);not null"`
	// Note: location GEOMETRY(POINT, 4326) column exists in database but is not mapped here.
	// It is automatically calculated from Latitude/Longitude via database trigger.
	// Use raw SQL queries with PostGIS functions (ST_Distance, ST_DWithin) for geospatial operations.
	RadiusKm      float64  `gorm:"type:decimal(6,2);not null"`
	City          string   `gorm:"type:varchar(100)"`
	HourlyRate    *float64 `gorm:"type:decimal(8,2)"`
	Status        string   `gorm:"type:varchar(16);not null;default:'active';index"`
	NotifiedCount int      `gorm:"not null;default:0"`
	FilledAt      *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TableName explicitly sets the table name for GORM.
func (UrgentAlertModel) TableName() string {
	return "urgent_alerts"
}

// AlertResponseModel is the GORM-specific struct for the 'alert_responses' table.
// The unique index on (alert_id, candidate_id) enforces one response per candidate.
type AlertResponseModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	AlertID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_alert_candidate"`
	CandidateID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_alert_candidate"`
	Message      string    `gorm:"type:text"`
	Status       string    `gorm:"type:varchar(16);not null;default:'interested'"`
	ResponseTime time.Time
	UpdatedAt    time.Time
}

// TableName explicitly sets the table name for GORM.
func (AlertResponseModel) TableName() string {
	return "alert_responses"
}
