package orders

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mnmarket/marketlink-backend/internal/cart"
)

// CommitInput carries everything needed to turn a cart into a durable order.
type CommitInput struct {
	CustomerID uuid.UUID
	VendorID   uuid.UUID
	PickupAt   time.Time
	Lines      []cart.Line
}

// OrderSummary is an order header as shown in a customer's history.
type OrderSummary struct {
	ID         uuid.UUID       `json:"id"`
	VendorID   uuid.UUID       `json:"vendor_id"`
	OrderDate  time.Time       `json:"order_date"`
	PickupDate time.Time       `json:"pickup_date"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

// ItemDetail is an order line joined with its product name.
type ItemDetail struct {
	ID          uuid.UUID       `json:"id"`
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
}
