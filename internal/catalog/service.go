package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mnmarket/marketlink-backend/pkg/db/models"
	pkgerrors "github.com/mnmarket/marketlink-backend/pkg/errors"
)

type catalogReader interface {
	ListMarkets(ctx context.Context) ([]MarketDTO, error)
	ListVendorsForMarket(ctx context.Context, marketID uuid.UUID) ([]VendorSummary, error)
	ListProductsForVendor(ctx context.Context, vendorID uuid.UUID) ([]ProductSummary, error)
	SearchProducts(ctx context.Context, keyword string) ([]SearchResult, error)
	FindProduct(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

// Service is the read-only catalog collaborator: market, vendor, and product
// lookups with no transactional requirements.
type Service struct {
	repo catalogReader
}

// NewService builds the catalog service.
func NewService(repo catalogReader) (*Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	return &Service{repo: repo}, nil
}

func (s *Service) ListMarkets(ctx context.Context) ([]MarketDTO, error) {
	rows, err := s.repo.ListMarkets(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodePersistence, err, "list markets")
	}
	return rows, nil
}

func (s *Service) ListVendorsForMarket(ctx context.Context, marketID uuid.UUID) ([]VendorSummary, error) {
	if marketID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "market id required")
	}
	rows, err := s.repo.ListVendorsForMarket(ctx, marketID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodePersistence, err, "list vendors for market")
	}
	return rows, nil
}

func (s *Service) ListProductsForVendor(ctx context.Context, vendorID uuid.UUID) ([]ProductSummary, error) {
	if vendorID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "vendor id required")
	}
	rows, err := s.repo.ListProductsForVendor(ctx, vendorID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodePersistence, err, "list products for vendor")
	}
	return rows, nil
}

func (s *Service) SearchProducts(ctx context.Context, keyword string) ([]SearchResult, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "search keyword required")
	}
	rows, err := s.repo.SearchProducts(ctx, keyword)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodePersistence, err, "search products")
	}
	return rows, nil
}

// GetProduct loads the product a cart line is being built from.
func (s *Service) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id required")
	}
	product, err := s.repo.FindProduct(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodePersistence, err, "load product")
	}
	return product, nil
}
