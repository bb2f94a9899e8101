package models

import (
	"time"

	"github.com/google/uuid"
)

// VendorMarket links a vendor to a market it attends, with its schedule.
type VendorMarket struct {
	VendorID      uuid.UUID  `gorm:"column:vendor_id;type:uuid;primaryKey"`
	MarketID      uuid.UUID  `gorm:"column:market_id;type:uuid;primaryKey"`
	DateAvailable *time.Time `gorm:"column:date_available"`
	StartTime     string     `gorm:"column:start_time"`
	EndTime       string     `gorm:"column:end_time"`
	CreatedAt     time.Time  `gorm:"column:created_at;autoCreateTime"`
}
