package controllers

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mnmarket/marketlink-backend/api/middleware"
	"github.com/mnmarket/marketlink-backend/api/responses"
	"github.com/mnmarket/marketlink-backend/api/validators"
	cartpkg "github.com/mnmarket/marketlink-backend/internal/cart"
	"github.com/mnmarket/marketlink-backend/internal/catalog"
	"github.com/mnmarket/marketlink-backend/internal/session"
	pkgerrors "github.com/mnmarket/marketlink-backend/pkg/errors"
	"github.com/mnmarket/marketlink-backend/pkg/logger"
)

type sessionSaver interface {
	Save(ctx context.Context, state *session.State) error
}

type cartView struct {
	VendorID *uuid.UUID      `json:"vendor_id,omitempty"`
	Items    []cartpkg.Line  `json:"items"`
	Total    decimal.Decimal `json:"total"`
}

func newCartView(c *cartpkg.Cart) cartView {
	view := cartView{
		Items: c.Lines(),
		Total: c.Total(),
	}
	if !c.IsEmpty() {
		vendorID := c.VendorID
		view.VendorID = &vendorID
	}
	return view
}

type addCartItemRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Quantity  int       `json:"quantity" validate:"required,min=1"`
}

// CartFetch shows the session's current cart.
func CartFetch(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		state, err := sessionFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCartView(state.Cart))
	}
}

// CartAddItem loads the product (capturing its current price) and adds it to
// the session cart.
func CartAddItem(catalogSvc *catalog.Service, sessions sessionSaver, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if catalogSvc == nil || sessions == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart dependencies unavailable"))
			return
		}

		state, err := sessionFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload addCartItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := catalogSvc.GetProduct(r.Context(), payload.ProductID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := state.Cart.AddItem(product, payload.Quantity); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := sessions.Save(r.Context(), state); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodePersistence, err, "save session"))
			return
		}

		responses.WriteSuccess(w, newCartView(state.Cart))
	}
}

// CartClear empties the session cart.
func CartClear(sessions sessionSaver, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if sessions == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart dependencies unavailable"))
			return
		}

		state, err := sessionFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		state.Cart.Clear()
		if err := sessions.Save(r.Context(), state); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodePersistence, err, "save session"))
			return
		}

		responses.WriteSuccess(w, newCartView(state.Cart))
	}
}

func sessionFromRequest(r *http.Request) (*session.State, error) {
	state, ok := middleware.SessionFromContext(r.Context())
	if !ok || state == nil || state.Cart == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "session missing from request")
	}
	return state, nil
}
