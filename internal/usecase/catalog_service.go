package usecase

import (
	"context"
	"fmt"
	"strings"

	"storefront/internal/domain"
	"storefront/pkg/logger"
)

type CreateProductInput struct {
	Name         string
	Description  string
	PriceInCents int64
}

type CatalogService struct {
	products ProductRepository
	logger   *logger.Logger
}

func NewCatalogService(products ProductRepository, logger *logger.Logger) *CatalogService {
	return &CatalogService{products: products, logger: logger}
}

// Create adds a product that is immediately available for purchase
func (s *CatalogService) Create(ctx context.Context, in CreateProductInput) (*domain.Product, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}
	if in.PriceInCents < 1 {
		return nil, fmt.Errorf("%w: price must be at least 1 cent", domain.ErrInvalidInput)
	}

	product := &domain.Product{
		Name:                   in.Name,
		Description:            strings.TrimSpace(in.Description),
		PriceInCents:           in.PriceInCents,
		IsAvailableForPurchase: true,
	}
	if err := s.products.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	s.logger.WithContext(ctx).WithFields(map[string]any{
		"id":    product.ID,
		"price": product.PriceInCents,
	}).Info("Product created")
	return product, nil
}

func (s *CatalogService) Get(ctx context.Context, id string) (*domain.Product, error) {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load product %s: %w", id, err)
	}
	return product, nil
}

func (s *CatalogService) List(ctx context.Context) ([]domain.Product, error) {
	products, err := s.products.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

func (s *CatalogService) SetAvailable(ctx context.Context, id string, available bool) error {
	if err := s.products.SetAvailable(ctx, id, available); err != nil {
		return fmt.Errorf("failed to update product %s: %w", id, err)
	}
	s.logger.WithContext(ctx).WithFields(map[string]any{"id": id, "available": available}).Info("Product availability changed")
	return nil
}
