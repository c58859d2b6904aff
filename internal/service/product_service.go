package service

import (
	"context"
	"strings"

	"github.com/spec-kit/cafeteria-service/internal/domain"
	"github.com/spec-kit/cafeteria-service/internal/repository"
	apperrors "github.com/spec-kit/cafeteria-service/pkg/util/errorutil"
)

// ProductService coordinates menu product management.
type ProductService struct {
	products repository.ProductRepository
}

// NewProductService builds the service.
func NewProductService(products repository.ProductRepository) *ProductService {
	return &ProductService{products: products}
}

// Create validates and persists a new product.
func (s *ProductService) Create(ctx context.Context, name, description string, priceCents int64) (*domain.Product, error) {
	if strings.TrimSpace(name) == "" {
		return nil, apperrors.NewValidationError("name required", nil)
	}
	if priceCents < 0 {
		return nil, apperrors.NewValidationError("price must not be negative", nil)
	}

	product := &domain.Product{
		Name:        name,
		Description: description,
		PriceCents:  priceCents,
	}
	if err := s.products.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// Update modifies an existing product.
func (s *ProductService) Update(ctx context.Context, id, name, description string, priceCents int64) (*domain.Product, error) {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if strings.TrimSpace(name) != "" {
		product.Name = name
	}
	product.Description = description
	if priceCents >= 0 {
		product.PriceCents = priceCents
	}
	if err := s.products.Update(ctx, product); err != nil {
		return nil, apperrors.MapError(err)
	}
	return product, nil
}

// Delete removes a product.
func (s *ProductService) Delete(ctx context.Context, id string) error {
	return apperrors.MapError(s.products.Delete(ctx, id))
}

// Get returns one product.
func (s *ProductService) Get(ctx context.Context, id string) (*domain.Product, error) {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return product, nil
}

// List returns the menu.
func (s *ProductService) List(ctx context.Context) ([]*domain.Product, error) {
	return s.products.List(ctx)
}
