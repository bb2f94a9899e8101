package controllers

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/mnmarket/marketlink-backend/api/responses"
	"github.com/mnmarket/marketlink-backend/api/validators"
	"github.com/mnmarket/marketlink-backend/internal/orders"
	"github.com/mnmarket/marketlink-backend/internal/pickup"
	pkgerrors "github.com/mnmarket/marketlink-backend/pkg/errors"
	"github.com/mnmarket/marketlink-backend/pkg/logger"
)

type amendPickupRequest struct {
	PickupAt string `json:"pickup_at" validate:"required"`
}

// OrdersList returns the session customer's order history.
func OrdersList(ledger orders.Ledger, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		customerID, err := sessionCustomerID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		summaries, err := ledger.ListForCustomer(r.Context(), customerID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, summaries)
	}
}

// OrderItems returns the line items of one of the session customer's orders.
func OrderItems(ledger orders.Ledger, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		customerID, err := sessionCustomerID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		orderID, err := parseIDParam(r, "orderID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		items, err := ledger.ListItems(r.Context(), customerID, orderID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, items)
	}
}

// OrderAmendPickup moves an existing order of the session customer to a new
// pickup slot.
func OrderAmendPickup(ledger orders.Ledger, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		customerID, err := sessionCustomerID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		orderID, err := parseIDParam(r, "orderID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload amendPickupRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		pickupAt, err := time.Parse(time.RFC3339, payload.PickupAt)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "pickup_at must be an RFC 3339 timestamp"))
			return
		}

		if err := ledger.AmendPickupTime(r.Context(), customerID, orderID, pickupAt); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{
			"order_id":     orderID,
			"pickup_date":  pickupAt,
			"pickup_label": pickup.Format(pickupAt),
		})
	}
}

// sessionCustomerID requires a session that has already been through checkout
// at least once; anonymous sessions have no order history to show or amend.
func sessionCustomerID(r *http.Request) (uuid.UUID, error) {
	state, err := sessionFromRequest(r)
	if err != nil {
		return uuid.Nil, err
	}
	if state.CustomerID == nil || *state.CustomerID == uuid.Nil {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeForbidden, "no customer bound to this session")
	}
	return *state.CustomerID, nil
}
