package orders

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/mnmarket/marketlink-backend/pkg/db/models"
)

func setupOrdersTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	ordersTable := `
CREATE TABLE IF NOT EXISTS orders (
  id TEXT PRIMARY KEY,
  customer_id TEXT NOT NULL,
  vendor_id TEXT NOT NULL,
  order_date DATETIME NOT NULL,
  pickup_date DATETIME NOT NULL,
  total_price TEXT NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`
	orderItems := `
CREATE TABLE IF NOT EXISTS order_items (
  id TEXT PRIMARY KEY,
  order_id TEXT NOT NULL,
  product_id TEXT NOT NULL,
  quantity INTEGER NOT NULL,
  price TEXT NOT NULL,
  created_at DATETIME
);`
	products := `
CREATE TABLE IF NOT EXISTS products (
  id TEXT PRIMARY KEY,
  vendor_id TEXT NOT NULL,
  name TEXT NOT NULL,
  price TEXT NOT NULL,
  created_at DATETIME
);`
	require.NoError(t, db.Exec(ordersTable).Error)
	require.NoError(t, db.Exec(orderItems).Error)
	require.NoError(t, db.Exec(products).Error)
	return db
}

func seedProduct(t *testing.T, db *gorm.DB, name, price string) *models.Product {
	t.Helper()

	p := &models.Product{
		ID:       uuid.New(),
		VendorID: uuid.New(),
		Name:     name,
		Price:    decimal.RequireFromString(price),
	}
	require.NoError(t, db.Create(p).Error)
	return p
}

func seedOrder(t *testing.T, repo Repository, customerID uuid.UUID, total string) *models.Order {
	t.Helper()

	order := &models.Order{
		CustomerID: customerID,
		VendorID:   uuid.New(),
		OrderDate:  time.Now().UTC(),
		PickupDate: time.Date(2026, time.May, 16, 9, 30, 0, 0, time.UTC),
		TotalPrice: decimal.RequireFromString(total),
	}
	require.NoError(t, repo.CreateOrder(context.Background(), order))
	return order
}

func TestRepositoryCreateAndFindOrder(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)

	order := seedOrder(t, repo, uuid.New(), "13.50")
	require.NotEqual(t, uuid.Nil, order.ID)

	found, err := repo.FindOrder(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.ID, found.ID)
	assert.Equal(t, order.CustomerID, found.CustomerID)
	assert.True(t, found.TotalPrice.Equal(decimal.RequireFromString("13.50")))
}

func TestRepositoryFindOrderMissing(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)

	_, err := repo.FindOrder(context.Background(), uuid.New())
	require.Error(t, err)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestRepositoryUpdatePickupDate(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)

	order := seedOrder(t, repo, uuid.New(), "8.00")

	newPickup := time.Date(2026, time.May, 16, 13, 0, 0, 0, time.UTC)
	affected, err := repo.UpdatePickupDate(context.Background(), order.ID, newPickup)
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	affected, err = repo.UpdatePickupDate(context.Background(), uuid.New(), newPickup)
	require.NoError(t, err)
	assert.Equal(t, int64(0), affected)
}

func TestRepositoryFindOrdersByCustomer(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)

	customerID := uuid.New()
	seedOrder(t, repo, customerID, "5.00")
	seedOrder(t, repo, customerID, "7.25")
	seedOrder(t, repo, uuid.New(), "99.00")

	rows, err := repo.FindOrdersByCustomer(context.Background(), customerID)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	for _, row := range rows {
		assert.False(t, row.TotalPrice.Equal(decimal.RequireFromString("99.00")))
	}
}

func TestRepositoryFindItemsByOrder(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)

	apples := seedProduct(t, db, "Apples", "2.50")
	jam := seedProduct(t, db, "Jam", "6.00")
	order := seedOrder(t, repo, uuid.New(), "13.50")

	items := []models.OrderItem{
		{OrderID: order.ID, ProductID: apples.ID, Quantity: 3, Price: apples.Price},
		{OrderID: order.ID, ProductID: jam.ID, Quantity: 1, Price: jam.Price},
	}
	require.NoError(t, repo.CreateOrderItems(context.Background(), items))

	rows, err := repo.FindItemsByOrder(context.Background(), order.ID)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	byName := map[string]ItemDetail{}
	for _, row := range rows {
		byName[row.ProductName] = row
	}
	assert.Equal(t, 3, byName["Apples"].Quantity)
	assert.True(t, byName["Apples"].Price.Equal(decimal.RequireFromString("2.50")))
	assert.Equal(t, 1, byName["Jam"].Quantity)
}

// A failure after the order insert must leave no order row behind.
func TestRepositoryCommitRollsBack(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)

	var orderID uuid.UUID
	err := db.Transaction(func(tx *gorm.DB) error {
		txRepo := repo.WithTx(tx)

		order := &models.Order{
			CustomerID: uuid.New(),
			VendorID:   uuid.New(),
			OrderDate:  time.Now().UTC(),
			PickupDate: time.Date(2026, time.May, 16, 9, 30, 0, 0, time.UTC),
			TotalPrice: decimal.RequireFromString("13.50"),
		}
		if err := txRepo.CreateOrder(context.Background(), order); err != nil {
			return err
		}
		orderID = order.ID
		return errors.New("item insert failed")
	})
	require.Error(t, err)

	var count int64
	require.NoError(t, db.Table("orders").Where("id = ?", orderID).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}
