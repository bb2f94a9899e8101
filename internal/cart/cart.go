package cart

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mnmarket/marketlink-backend/pkg/db/models"
	pkgerrors "github.com/mnmarket/marketlink-backend/pkg/errors"
)

// Line is one product entry in a cart. UnitPrice is captured from the catalog
// at the moment the product is first added and never re-fetched.
type Line struct {
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int             `json:"quantity"`
}

// Subtotal is the line's unit price times its quantity.
func (l Line) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart accumulates candidate order lines before a transactional commit. It is
// a plain in-memory value owned by exactly one session; the session layer is
// responsible for carrying it between requests. A cart binds to the vendor of
// its first line: one order covers one vendor, so ordering from a second
// vendor takes a fresh cart/checkout cycle.
type Cart struct {
	VendorID uuid.UUID `json:"vendor_id"`
	Items    []Line    `json:"items"`
}

// New returns an empty, unbound cart.
func New() *Cart {
	return &Cart{}
}

// AddItem appends a product to the cart, merging into an existing line when
// the product is already present (quantity accumulates; the originally
// captured price wins). There is deliberately no removal or decrement
// operation.
func (c *Cart) AddItem(p *models.Product, quantity int) error {
	if p == nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "product required")
	}
	if quantity < 1 {
		return pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}
	if len(c.Items) > 0 && c.VendorID != p.VendorID {
		return pkgerrors.New(pkgerrors.CodeValidation, "cart holds items from another vendor; check out or clear it first")
	}

	for i := range c.Items {
		if c.Items[i].ProductID == p.ID {
			c.Items[i].Quantity += quantity
			return nil
		}
	}

	c.VendorID = p.VendorID
	c.Items = append(c.Items, Line{
		ProductID:   p.ID,
		ProductName: p.Name,
		UnitPrice:   p.Price,
		Quantity:    quantity,
	})
	return nil
}

// Lines returns an insertion-ordered snapshot of the cart.
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.Items))
	copy(out, c.Items)
	return out
}

// Total sums unit price times quantity over all lines. Zero for an empty cart.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.Items {
		total = total.Add(l.Subtotal())
	}
	return total
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// Clear empties all lines and unbinds the vendor. Called after a successful
// commit; a failed commit leaves the cart untouched so the customer can retry.
func (c *Cart) Clear() {
	c.Items = nil
	c.VendorID = uuid.Nil
}
