package models

import (
	"time"

	"github.com/google/uuid"
)

// Vendor is a market seller. Referenced, never mutated, by the order core.
type Vendor struct {
	ID           uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	BusinessName string    `gorm:"column:business_name;not null"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
}
