package models

import (
	"time"

	"github.com/google/uuid"
)

// Customer is the session-scoped identity record created on first checkout.
// Rows are never updated or deleted by this subsystem.
type Customer struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name      string    `gorm:"column:name;not null"`
	Email     string    `gorm:"column:email;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}
