package cart

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mnmarket/marketlink-backend/pkg/db/models"
	pkgerrors "github.com/mnmarket/marketlink-backend/pkg/errors"
)

func product(vendorID uuid.UUID, name string, price string) *models.Product {
	return &models.Product{
		ID:       uuid.New(),
		VendorID: vendorID,
		Name:     name,
		Price:    decimal.RequireFromString(price),
	}
}

func TestAddItemMergesByProduct(t *testing.T) {
	c := New()
	vendorID := uuid.New()
	apples := product(vendorID, "Apples", "2.50")

	if err := c.AddItem(apples, 1); err != nil {
		t.Fatalf("add item: %v", err)
	}
	if err := c.AddItem(apples, 2); err != nil {
		t.Fatalf("add item again: %v", err)
	}

	lines := c.Lines()
	if len(lines) != 1 {
		t.Fatalf("expected 1 merged line got %d", len(lines))
	}
	if lines[0].Quantity != 3 {
		t.Fatalf("expected quantity 3 got %d", lines[0].Quantity)
	}
	if !lines[0].UnitPrice.Equal(decimal.RequireFromString("2.50")) {
		t.Fatalf("expected captured price preserved, got %s", lines[0].UnitPrice)
	}
}

func TestAddItemRejectsBadQuantity(t *testing.T) {
	c := New()
	p := product(uuid.New(), "Bread", "4.00")

	for _, qty := range []int{0, -1} {
		err := c.AddItem(p, qty)
		if err == nil {
			t.Fatalf("expected error for quantity %d", qty)
		}
		if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
			t.Fatalf("expected validation code, got %v", err)
		}
	}
	if !c.IsEmpty() {
		t.Fatal("expected cart untouched after rejected add")
	}
}

func TestAddItemBindsToSingleVendor(t *testing.T) {
	c := New()
	first := product(uuid.New(), "Honey", "8.00")
	other := product(uuid.New(), "Eggs", "5.00")

	if err := c.AddItem(first, 1); err != nil {
		t.Fatalf("add item: %v", err)
	}
	if c.VendorID != first.VendorID {
		t.Fatalf("expected cart bound to vendor %s got %s", first.VendorID, c.VendorID)
	}

	err := c.AddItem(other, 1)
	if err == nil {
		t.Fatal("expected cross-vendor add to fail")
	}
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation code, got %v", err)
	}
	if len(c.Lines()) != 1 {
		t.Fatal("expected cart unchanged after rejected add")
	}
}

func TestTotal(t *testing.T) {
	c := New()
	vendorID := uuid.New()

	if !c.Total().Equal(decimal.Zero) {
		t.Fatalf("expected zero total for empty cart, got %s", c.Total())
	}

	if err := c.AddItem(product(vendorID, "Apples", "2.50"), 3); err != nil {
		t.Fatalf("add item: %v", err)
	}
	if err := c.AddItem(product(vendorID, "Jam", "6.00"), 1); err != nil {
		t.Fatalf("add item: %v", err)
	}

	want := decimal.RequireFromString("13.50")
	if !c.Total().Equal(want) {
		t.Fatalf("expected total %s got %s", want, c.Total())
	}
}

func TestClearUnbindsVendor(t *testing.T) {
	c := New()
	first := product(uuid.New(), "Honey", "8.00")
	second := product(uuid.New(), "Eggs", "5.00")

	if err := c.AddItem(first, 2); err != nil {
		t.Fatalf("add item: %v", err)
	}
	c.Clear()

	if !c.IsEmpty() {
		t.Fatal("expected empty cart after clear")
	}
	if err := c.AddItem(second, 1); err != nil {
		t.Fatalf("expected cleared cart to accept a new vendor: %v", err)
	}
	if c.VendorID != second.VendorID {
		t.Fatalf("expected rebind to %s got %s", second.VendorID, c.VendorID)
	}
}

func TestLinesReturnsCopy(t *testing.T) {
	c := New()
	if err := c.AddItem(product(uuid.New(), "Apples", "2.50"), 1); err != nil {
		t.Fatalf("add item: %v", err)
	}

	lines := c.Lines()
	lines[0].Quantity = 99
	if c.Lines()[0].Quantity != 1 {
		t.Fatal("expected snapshot mutation not to leak into cart")
	}
}
