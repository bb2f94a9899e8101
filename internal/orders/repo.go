package orders

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mnmarket/marketlink-backend/pkg/db/models"
)

// Repository exposes the ledger's persistence operations.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	CreateOrder(ctx context.Context, order *models.Order) error
	CreateOrderItems(ctx context.Context, items []models.OrderItem) error
	FindOrder(ctx context.Context, orderID uuid.UUID) (*models.Order, error)
	UpdatePickupDate(ctx context.Context, orderID uuid.UUID, pickupAt time.Time) (int64, error)
	FindOrdersByCustomer(ctx context.Context, customerID uuid.UUID) ([]OrderSummary, error)
	FindItemsByOrder(ctx context.Context, orderID uuid.UUID) ([]ItemDetail, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds an orders repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) CreateOrder(ctx context.Context, order *models.Order) error {
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *repository) CreateOrderItems(ctx context.Context, items []models.OrderItem) error {
	if len(items) == 0 {
		return nil
	}
	for i := range items {
		if items[i].ID == uuid.Nil {
			items[i].ID = uuid.New()
		}
	}
	return r.db.WithContext(ctx).Create(&items).Error
}

func (r *repository) FindOrder(ctx context.Context, orderID uuid.UUID) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Where("id = ?", orderID).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// UpdatePickupDate writes only the pickup_date column and reports how many
// rows were touched so the caller can tell a missing order from a clean write.
func (r *repository) UpdatePickupDate(ctx context.Context, orderID uuid.UUID, pickupAt time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ?", orderID).
		Update("pickup_date", pickupAt)
	return res.RowsAffected, res.Error
}

func (r *repository) FindOrdersByCustomer(ctx context.Context, customerID uuid.UUID) ([]OrderSummary, error) {
	var rows []OrderSummary
	err := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Select("id", "vendor_id", "order_date", "pickup_date", "total_price").
		Where("customer_id = ?", customerID).
		Order("order_date DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) FindItemsByOrder(ctx context.Context, orderID uuid.UUID) ([]ItemDetail, error) {
	var rows []ItemDetail
	err := r.db.WithContext(ctx).
		Table("order_items").
		Select(`order_items.id,
			order_items.product_id,
			products.name AS product_name,
			order_items.quantity,
			order_items.price`).
		Joins("JOIN products ON order_items.product_id = products.id").
		Where("order_items.order_id = ?", orderID).
		Order("order_items.created_at ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
