package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mnmarket/marketlink-backend/internal/catalog"
)

func withMarketID(req *http.Request, marketID string) *http.Request {
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add("marketID", marketID)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
}

func TestMarketsList(t *testing.T) {
	svc := newCatalogService(t, &stubCatalogRepo{
		markets: []catalog.MarketDTO{{ID: uuid.New(), Name: "Riverside", Location: "Main Square"}},
	})

	rec := httptest.NewRecorder()
	MarketsList(svc, testLogger()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/markets", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}

	var envelope struct {
		Data []catalog.MarketDTO `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(envelope.Data) != 1 || envelope.Data[0].Name != "Riverside" {
		t.Fatalf("unexpected payload %+v", envelope.Data)
	}
}

func TestMarketVendorsInvalidID(t *testing.T) {
	svc := newCatalogService(t, &stubCatalogRepo{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/markets/nope/vendors", nil)
	req = withMarketID(req, "not-a-uuid")
	rec := httptest.NewRecorder()
	MarketVendors(svc, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}

func TestMarketVendorsSuccess(t *testing.T) {
	svc := newCatalogService(t, &stubCatalogRepo{
		vendors: []catalog.VendorSummary{{VendorID: uuid.New(), BusinessName: "Berry Farm", ProductCount: 4}},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/markets/x/vendors", nil)
	req = withMarketID(req, uuid.NewString())
	rec := httptest.NewRecorder()
	MarketVendors(svc, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}

	var envelope struct {
		Data []catalog.VendorSummary `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(envelope.Data) != 1 || envelope.Data[0].BusinessName != "Berry Farm" {
		t.Fatalf("unexpected payload %+v", envelope.Data)
	}
}
