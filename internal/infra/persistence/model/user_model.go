package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// UserModel mirrors the 'users' table. PostgreSQL generates UUIDs via uuid_generate_v7().
type UserModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Email        string    `gorm:"type:varchar(255);unique;not null"`
	Name         string    `gorm:"type:varchar(100)"`
	PasswordHash string    `gorm:"type:varchar(255);not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    *time.Time `gorm:"index"`

	CandidateProfile *CandidateProfileModel `gorm:"foreignKey:UserID"`
	RecruiterProfile *RecruiterProfileModel `gorm:"foreignKey:UserID"`
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}

// CandidateProfileModel mirrors the 'candidate_profiles' table. UserID references users.id (UUID).
type CandidateProfileModel struct {
	UserID      uuid.UUID                   `gorm:"primaryKey"`
	Position    string                      `gorm:"type:varchar(32);not null;index"`
	Specialties datatypes.JSONSlice[string] `gorm:"type:jsonb"`
	City        string                      `gorm:"type:varchar(100)"`
	Latitude    float64                     `gorm:"type:decimal(10,8);not null"`
	Longitude   float64                     `gorm:"type:decimal(11,8);not null"`
	// Note: location GEOMETRY(POINT, 4326) column exists in database but is not mapped here.
	// It is automatically calculated from Latitude/Longitude via database trigger.
	// Use raw SQL queries with PostGIS functions (ST_Distance, ST_DWithin) for geospatial operations.
	AlertRadiusKm float64 `gorm:"type:decimal(6,2);not null;default:30.0"`
	AlertsEnabled bool    `gorm:"not null;default:true"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TableName explicitly sets the table name for GORM.
func (CandidateProfileModel) TableName() string {
	return "candidate_profiles"
}

// RecruiterProfileModel mirrors the 'recruiter_profiles' table. UserID references users.id (UUID).
type RecruiterProfileModel struct {
	UserID      uuid.UUID `gorm:"primaryKey"`
	Type        string    `gorm:"type:varchar(32);not null"`
	CompanyName string    `gorm:"type:varchar(100);not null"`
	City        string    `gorm:"type:varchar(100)"`
	Latitude    float64   `gorm:"type:decimal(10,8);not null"`
	Longitude   float64   `gorm:"type:decimal(11,8);not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName explicitly sets the table name for GORM.
func (RecruiterProfileModel) TableName() string {
	return "recruiter_profiles"
}
