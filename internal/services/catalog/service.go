// Package catalog serves the jewelry, gift and investment-bar listings plus
// the merchant and designer directories, and seeds a starter catalog on an
// empty database.
package catalog

import (
	"context"
	"errors"
	"log/slog"

	"khazina/internal/models"
	"khazina/internal/repositories"
)

var ErrProductNotFound = errors.New("product not found")

type Service interface {
	ListProducts(ctx context.Context, productType, category string) ([]models.Product, error)
	GetProduct(ctx context.Context, productID string) (*models.Product, error)
	ListMerchants(ctx context.Context) ([]models.Merchant, error)
	ListDesigners(ctx context.Context) ([]models.Designer, error)

	// SeedIfEmpty populates the starter catalog when no products exist yet.
	SeedIfEmpty(ctx context.Context) error
}

type service struct {
	products  repositories.ProductRepository
	merchants repositories.MerchantRepository
	designers repositories.DesignerRepository
}

func NewService(
	products repositories.ProductRepository,
	merchants repositories.MerchantRepository,
	designers repositories.DesignerRepository,
) Service {
	if products == nil {
		panic("product repository is required")
	}
	if merchants == nil {
		panic("merchant repository is required")
	}
	if designers == nil {
		panic("designer repository is required")
	}
	return &service{products: products, merchants: merchants, designers: designers}
}

func (s *service) ListProducts(ctx context.Context, productType, category string) ([]models.Product, error) {
	return s.products.List(ctx, productType, category)
}

func (s *service) GetProduct(ctx context.Context, productID string) (*models.Product, error) {
	product, err := s.products.GetByProductID(ctx, productID)
	if errors.Is(err, repositories.ErrProductNotFound) {
		return nil, ErrProductNotFound
	}
	return product, err
}

func (s *service) ListMerchants(ctx context.Context) ([]models.Merchant, error) {
	return s.merchants.ListActive(ctx)
}

func (s *service) ListDesigners(ctx context.Context) ([]models.Designer, error) {
	return s.designers.ListActive(ctx)
}

func (s *service) SeedIfEmpty(ctx context.Context) error {
	count, err := s.products.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	if err := s.products.BulkCreate(ctx, seedProducts()); err != nil {
		return err
	}
	if err := s.merchants.BulkCreate(ctx, seedMerchants()); err != nil {
		return err
	}
	if err := s.designers.BulkCreate(ctx, seedDesigners()); err != nil {
		return err
	}
	slog.Info("seeded starter catalog")
	return nil
}
