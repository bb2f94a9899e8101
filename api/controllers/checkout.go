package controllers

import (
	"net/http"
	"time"

	"github.com/mnmarket/marketlink-backend/api/responses"
	"github.com/mnmarket/marketlink-backend/api/validators"
	"github.com/mnmarket/marketlink-backend/internal/customers"
	"github.com/mnmarket/marketlink-backend/internal/orders"
	"github.com/mnmarket/marketlink-backend/internal/pickup"
	pkgerrors "github.com/mnmarket/marketlink-backend/pkg/errors"
	"github.com/mnmarket/marketlink-backend/pkg/logger"
)

type checkoutRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	PickupAt string `json:"pickup_at" validate:"omitempty"`
}

// Checkout resolves the session customer, commits the cart as an order, and
// clears the cart only after the commit succeeds. A commit failure leaves the
// cart intact so the customer can retry.
func Checkout(directory *customers.Directory, ledger orders.Ledger, policy *pickup.Policy, sessions sessionSaver, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if directory == nil || ledger == nil || policy == nil || sessions == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout dependencies unavailable"))
			return
		}

		state, err := sessionFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload checkoutRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if state.Cart.IsEmpty() {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeEmptyCart, "cart is empty"))
			return
		}

		pickupAt, err := resolvePickupAt(policy, payload.PickupAt)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		customerID, err := directory.Resolve(r.Context(), state, payload.Name, payload.Email)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := ledger.Commit(r.Context(), orders.CommitInput{
			CustomerID: customerID,
			VendorID:   state.Cart.VendorID,
			PickupAt:   pickupAt,
			Lines:      state.Cart.Lines(),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		state.Cart.Clear()
		if err := sessions.Save(r.Context(), state); err != nil {
			// The order is already durable; a stale cart in the session is
			// recoverable, so log and report the order anyway.
			logg.Error(r.Context(), "clear cart after commit", err)
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, map[string]any{
			"order_id":     order.ID,
			"pickup_date":  order.PickupDate,
			"pickup_label": pickup.Format(order.PickupDate),
			"total_price":  order.TotalPrice,
		})
	}
}

// resolvePickupAt parses the optional pickup time. An absent value takes the
// fallback slot on the current day; a present value must parse as RFC 3339.
// Grid validation itself belongs to the ledger.
func resolvePickupAt(policy *pickup.Policy, raw string) (time.Time, error) {
	if raw == "" {
		return pickup.Fallback.On(time.Now()), nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, pkgerrors.New(pkgerrors.CodeValidation, "pickup_at must be an RFC 3339 timestamp")
	}
	return t, nil
}
