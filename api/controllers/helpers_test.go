package controllers

import (
	"context"
	"io"
	"testing"

	"github.com/google/uuid"

	"github.com/mnmarket/marketlink-backend/internal/catalog"
	"github.com/mnmarket/marketlink-backend/internal/session"
	"github.com/mnmarket/marketlink-backend/pkg/db/models"
	"github.com/mnmarket/marketlink-backend/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Level: logger.ParseLevel("debug"), Output: io.Discard})
}

func testSession(t *testing.T) *session.State {
	t.Helper()
	state, err := session.NewState()
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	return state
}

type stubSessionSaver struct {
	saves int
	err   error
}

func (s *stubSessionSaver) Save(context.Context, *session.State) error {
	if s.err != nil {
		return s.err
	}
	s.saves++
	return nil
}

// stubCatalogRepo backs a real catalog.Service in handler tests.
type stubCatalogRepo struct {
	product    *models.Product
	productErr error
	markets    []catalog.MarketDTO
	vendors    []catalog.VendorSummary
	products   []catalog.ProductSummary
	results    []catalog.SearchResult
	err        error
}

func (s *stubCatalogRepo) ListMarkets(context.Context) ([]catalog.MarketDTO, error) {
	return s.markets, s.err
}

func (s *stubCatalogRepo) ListVendorsForMarket(context.Context, uuid.UUID) ([]catalog.VendorSummary, error) {
	return s.vendors, s.err
}

func (s *stubCatalogRepo) ListProductsForVendor(context.Context, uuid.UUID) ([]catalog.ProductSummary, error) {
	return s.products, s.err
}

func (s *stubCatalogRepo) SearchProducts(context.Context, string) ([]catalog.SearchResult, error) {
	return s.results, s.err
}

func (s *stubCatalogRepo) FindProduct(context.Context, uuid.UUID) (*models.Product, error) {
	if s.productErr != nil {
		return nil, s.productErr
	}
	return s.product, nil
}

func newCatalogService(t *testing.T, repo *stubCatalogRepo) *catalog.Service {
	t.Helper()
	svc, err := catalog.NewService(repo)
	if err != nil {
		t.Fatalf("new catalog service: %v", err)
	}
	return svc
}
