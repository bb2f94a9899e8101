package catalog

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mnmarket/marketlink-backend/pkg/db/models"
)

// Repository runs the read-only catalog queries. Rows are decoded into typed
// records once, at this boundary.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a catalog repository bound to the provided DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListMarkets returns all markets ordered by name.
func (r *Repository) ListMarkets(ctx context.Context) ([]MarketDTO, error) {
	var rows []MarketDTO
	err := r.db.WithContext(ctx).
		Model(&models.Market{}).
		Select("id", "name", "location").
		Order("name ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// ListVendorsForMarket returns the vendors attending a market, with their
// schedule and current product count.
func (r *Repository) ListVendorsForMarket(ctx context.Context, marketID uuid.UUID) ([]VendorSummary, error) {
	var rows []VendorSummary
	err := r.db.WithContext(ctx).
		Table("vendor_markets").
		Select(`vendors.id AS vendor_id,
			vendors.business_name,
			(SELECT COUNT(*) FROM products WHERE products.vendor_id = vendors.id) AS product_count,
			vendor_markets.date_available,
			vendor_markets.start_time,
			vendor_markets.end_time`).
		Joins("JOIN vendors ON vendor_markets.vendor_id = vendors.id").
		Where("vendor_markets.market_id = ?", marketID).
		Order("vendors.business_name ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// ListProductsForVendor returns a vendor's catalog ordered by name.
func (r *Repository) ListProductsForVendor(ctx context.Context, vendorID uuid.UUID) ([]ProductSummary, error) {
	var rows []ProductSummary
	err := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Select("id", "name", "price").
		Where("vendor_id = ?", vendorID).
		Order("name ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// SearchProducts matches product names case-insensitively ("contains"
// semantics) across all markets.
func (r *Repository) SearchProducts(ctx context.Context, keyword string) ([]SearchResult, error) {
	pattern := "%" + strings.ToLower(keyword) + "%"
	var rows []SearchResult
	err := r.db.WithContext(ctx).
		Table("products").
		Select(`products.id AS product_id,
			products.name,
			products.price,
			vendors.business_name AS vendor_name,
			markets.name AS market_name,
			markets.location`).
		Joins("JOIN vendors ON products.vendor_id = vendors.id").
		Joins("JOIN vendor_markets ON vendors.id = vendor_markets.vendor_id").
		Joins("JOIN markets ON vendor_markets.market_id = markets.id").
		Where("LOWER(products.name) LIKE ?", pattern).
		Order("products.name ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// FindProduct loads a single product row; used by the cart to capture price.
func (r *Repository) FindProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}
