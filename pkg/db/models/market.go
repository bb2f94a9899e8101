package models

import (
	"time"

	"github.com/google/uuid"
)

// Market is a farmers-market location. Read-only for this service.
type Market struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name      string    `gorm:"column:name;not null"`
	Location  string    `gorm:"column:location;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}
