package orders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/mnmarket/marketlink-backend/internal/pickup"
	"github.com/mnmarket/marketlink-backend/pkg/db/models"
	pkgerrors "github.com/mnmarket/marketlink-backend/pkg/errors"
	"github.com/mnmarket/marketlink-backend/pkg/metrics"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Ledger is the transactional core: it turns a cart into a durable order plus
// its items in one indivisible unit, and later amends pickup times.
type Ledger interface {
	Commit(ctx context.Context, input CommitInput) (*models.Order, error)
	AmendPickupTime(ctx context.Context, customerID, orderID uuid.UUID, pickupAt time.Time) error
	ListForCustomer(ctx context.Context, customerID uuid.UUID) ([]OrderSummary, error)
	ListItems(ctx context.Context, customerID, orderID uuid.UUID) ([]ItemDetail, error)
}

type ledger struct {
	repo    Repository
	tx      txRunner
	policy  *pickup.Policy
	metrics *metrics.OrderMetrics
	now     func() time.Time
}

// NewLedger builds the order ledger with the required dependencies.
func NewLedger(repo Repository, tx txRunner, policy *pickup.Policy, m *metrics.OrderMetrics) (Ledger, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if policy == nil {
		return nil, fmt.Errorf("pickup policy required")
	}
	return &ledger{
		repo:    repo,
		tx:      tx,
		policy:  policy,
		metrics: m,
		now:     time.Now,
	}, nil
}

// Commit persists one order header and one item per cart line atomically.
// The caller observes either the full order or nothing: any insert failure
// rolls back every row written in this unit of work. The cart itself is not
// touched here; callers clear it only after a successful return.
func (l *ledger) Commit(ctx context.Context, input CommitInput) (*models.Order, error) {
	start := l.now()

	if input.CustomerID == uuid.Nil {
		return nil, l.failCommit(start, pkgerrors.New(pkgerrors.CodeValidation, "customer id required"))
	}
	if input.VendorID == uuid.Nil {
		return nil, l.failCommit(start, pkgerrors.New(pkgerrors.CodeValidation, "vendor id required"))
	}
	if len(input.Lines) == 0 {
		return nil, l.failCommit(start, pkgerrors.New(pkgerrors.CodeEmptyCart, "cannot place an order with an empty cart"))
	}
	for _, line := range input.Lines {
		if line.Quantity < 1 {
			return nil, l.failCommit(start, pkgerrors.New(pkgerrors.CodeValidation,
				fmt.Sprintf("line %q has quantity %d", line.ProductName, line.Quantity)))
		}
	}
	if !l.policy.IsValid(input.PickupAt) {
		return nil, l.failCommit(start, pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("pickup time %s is not an offered slot", pickup.Format(input.PickupAt))))
	}

	total := decimal.Zero
	for _, line := range input.Lines {
		total = total.Add(line.Subtotal())
	}

	order := &models.Order{
		CustomerID: input.CustomerID,
		VendorID:   input.VendorID,
		OrderDate:  l.now(),
		PickupDate: input.PickupAt,
		TotalPrice: total,
	}

	err := l.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := l.repo.WithTx(tx)

		if err := repo.CreateOrder(ctx, order); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodePersistence, err, "insert order")
		}

		items := make([]models.OrderItem, len(input.Lines))
		for i, line := range input.Lines {
			items[i] = models.OrderItem{
				OrderID:   order.ID,
				ProductID: line.ProductID,
				Quantity:  line.Quantity,
				Price:     line.UnitPrice,
			}
		}
		if err := repo.CreateOrderItems(ctx, items); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodePersistence, err, "insert order items")
		}
		order.Items = items
		return nil
	})
	if err != nil {
		if pkgerrors.As(err) == nil {
			err = pkgerrors.Wrap(pkgerrors.CodePersistence, err, "commit order")
		}
		return nil, l.failCommit(start, err)
	}

	l.metrics.IncCommitted(input.VendorID.String())
	l.metrics.ObserveCommit("success", l.now().Sub(start))
	return order, nil
}

// AmendPickupTime updates only the pickup date of an existing order. The
// amending session's customer must own the order; the new time must sit on
// the slot grid.
func (l *ledger) AmendPickupTime(ctx context.Context, customerID, orderID uuid.UUID, pickupAt time.Time) error {
	if customerID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeForbidden, "no customer bound to this session")
	}
	if orderID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	if !l.policy.IsValid(pickupAt) {
		return pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("pickup time %s is not an offered slot", pickup.Format(pickupAt)))
	}

	order, err := l.repo.FindOrder(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodePersistence, err, "load order")
	}
	if order.CustomerID != customerID {
		return pkgerrors.New(pkgerrors.CodeForbidden, "order does not belong to this customer")
	}

	affected, err := l.repo.UpdatePickupDate(ctx, orderID, pickupAt)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodePersistence, err, "update pickup date")
	}
	if affected != 1 {
		return pkgerrors.New(pkgerrors.CodePersistence,
			fmt.Sprintf("pickup update touched %d rows", affected))
	}

	l.metrics.IncAmendment()
	return nil
}

func (l *ledger) ListForCustomer(ctx context.Context, customerID uuid.UUID) ([]OrderSummary, error) {
	if customerID == uuid.Nil {
		return []OrderSummary{}, nil
	}
	rows, err := l.repo.FindOrdersByCustomer(ctx, customerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodePersistence, err, "list orders")
	}
	return rows, nil
}

func (l *ledger) ListItems(ctx context.Context, customerID, orderID uuid.UUID) ([]ItemDetail, error) {
	if orderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}

	order, err := l.repo.FindOrder(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodePersistence, err, "load order")
	}
	if order.CustomerID != customerID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "order does not belong to this customer")
	}

	rows, err := l.repo.FindItemsByOrder(ctx, orderID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodePersistence, err, "list order items")
	}
	return rows, nil
}

func (l *ledger) failCommit(start time.Time, err error) error {
	code := string(pkgerrors.CodeInternal)
	if typed := pkgerrors.As(err); typed != nil {
		code = string(typed.Code())
	}
	l.metrics.IncCommitFailure(code)
	l.metrics.ObserveCommit("failure", l.now().Sub(start))
	return err
}
