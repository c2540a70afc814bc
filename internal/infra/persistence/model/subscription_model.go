package model

import (
	"time"

	"github.com/google/uuid"
)

// SubscriptionPlanModel is the GORM-specific struct for the 'subscription_plans' table.
// One row per tier; contacts_max = -1 marks an unlimited plan.
type SubscriptionPlanModel struct {
	Tier          string  `gorm:"type:varchar(32);primaryKey"`
	ContactsMax   int     `gorm:"not null"`
	ConnectionFee float64 `gorm:"type:decimal(8,2);not null"`
	UpdatedAt     time.Time
}

// TableName explicitly sets the table name for GORM.
func (SubscriptionPlanModel) TableName() string {
	return "subscription_plans"
}

// RecruiterSubscriptionModel is the GORM-specific struct for the 'recruiter_subscriptions' table.
type RecruiterSubscriptionModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	RecruiterID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	Tier        string    `gorm:"type:varchar(32);not null;default:'free'"`
	StartedAt   time.Time
	UpdatedAt   time.Time
}

// TableName explicitly sets the table name for GORM.
func (RecruiterSubscriptionModel) TableName() string {
	return "recruiter_subscriptions"
}

// MonthlyUsageModel is the GORM-specific struct for the 'monthly_usages' table.
// The unique index on (recruiter_id, month) backs the ON CONFLICT upsert used
// by the usage counter.
type MonthlyUsageModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	RecruiterID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_recruiter_month"`
	Month        string    `gorm:"type:char(7);not null;uniqueIndex:idx_recruiter_month"`
	ContactsUsed int       `gorm:"not null;default:0"`
	UpdatedAt    time.Time
}

// TableName explicitly sets the table name for GORM.
func (MonthlyUsageModel) TableName() string {
	return "monthly_usages"
}
