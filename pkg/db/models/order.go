package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Order is the committed order header. TotalPrice is computed once at commit
// from the captured line prices and stored; it is never recomputed from items.
// PickupDate is the only field amended after creation.
type Order struct {
	ID         uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CustomerID uuid.UUID       `gorm:"column:customer_id;type:uuid;not null"`
	VendorID   uuid.UUID       `gorm:"column:vendor_id;type:uuid;not null"`
	OrderDate  time.Time       `gorm:"column:order_date;not null"`
	PickupDate time.Time       `gorm:"column:pickup_date;not null"`
	TotalPrice decimal.Decimal `gorm:"column:total_price;type:numeric(10,2);not null"`
	Items      []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt  time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
