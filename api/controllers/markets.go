package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mnmarket/marketlink-backend/api/responses"
	"github.com/mnmarket/marketlink-backend/internal/catalog"
	pkgerrors "github.com/mnmarket/marketlink-backend/pkg/errors"
	"github.com/mnmarket/marketlink-backend/pkg/logger"
)

// MarketsList returns all markets ordered by name.
func MarketsList(svc *catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		markets, err := svc.ListMarkets(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, markets)
	}
}

// MarketVendors returns the vendors attending a market.
func MarketVendors(svc *catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		marketID, err := parseIDParam(r, "marketID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		vendors, err := svc.ListVendorsForMarket(r.Context(), marketID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, vendors)
	}
}

func parseIDParam(r *http.Request, name string) (uuid.UUID, error) {
	raw := strings.TrimSpace(chi.URLParam(r, name))
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, name+" is required")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid "+name)
	}
	return id, nil
}
