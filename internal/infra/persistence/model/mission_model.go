package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// MissionModel is the GORM-specific struct for the 'missions' table.
type MissionModel struct {
	ID                  uuid.UUID                   `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	ClientID            uuid.UUID                   `gorm:"type:uuid;not null;index"`
	ClientType          string                      `gorm:"type:varchar(32);not null"`
	AnimatorID          *uuid.UUID                  `gorm:"type:uuid;index"`
	Title               string                      `gorm:"type:text;not null"`
	Description         string                      `gorm:"type:text"`
	SpecialtiesRequired datatypes.JSONSlice[string] `gorm:"type:jsonb"`
	City                string                      `gorm:"type:varchar(100)"`
	Department          string                      `gorm:"type:varchar(100)"`
	Region              string                      `gorm:"type:varchar(100)"`
	Latitude            float64                     `gorm:"type:decimal(10,8)"`
	Longitude           float64                     `gorm:"type:decimal(11,8)"`
	StartDate           time.Time                   `gorm:"not null"`
	EndDate             time.Time                   `gorm:"not null"`
	DailyRateMin        float64                     `gorm:"type:decimal(8,2)"`
	DailyRateMax        float64                     `gorm:"type:decimal(8,2)"`
	ProposedDailyRate   *float64                    `gorm:"type:decimal(8,2)"`
	Status              string                      `gorm:"type:varchar(32);not null;default:'draft';index"`
	ConfirmedAt         *time.Time
	CompletedAt         *time.Time
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// TableName explicitly sets the table name for GORM.
func (MissionModel) TableName() string {
	return "missions"
}
