package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MarketDTO is a browsable market.
type MarketDTO struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Location string    `json:"location"`
}

// VendorSummary is a vendor's presence at a specific market.
type VendorSummary struct {
	VendorID      uuid.UUID  `json:"vendor_id"`
	BusinessName  string     `json:"business_name"`
	ProductCount  int        `json:"product_count"`
	DateAvailable *time.Time `json:"date_available,omitempty"`
	StartTime     string     `json:"start_time,omitempty"`
	EndTime       string     `json:"end_time,omitempty"`
}

// ProductSummary is a vendor's catalog entry with its current list price.
type ProductSummary struct {
	ID    uuid.UUID       `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// SearchResult is a keyword match joined with its vendor and market.
type SearchResult struct {
	ProductID  uuid.UUID       `json:"product_id"`
	Name       string          `json:"name"`
	Price      decimal.Decimal `json:"price"`
	VendorName string          `json:"vendor_name"`
	MarketName string          `json:"market_name"`
	Location   string          `json:"location"`
}
