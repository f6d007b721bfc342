package repository

import (
	"context"

	"storefront/internal/product/domain"
)

// Repository defines persistence for products.
type Repository interface {
	Create(ctx context.Context, p *domain.Product) error
	// GetByProductID returns the product for the public id, or nil if not found.
	GetByProductID(ctx context.Context, productID string) (*domain.Product, error)
	Update(ctx context.Context, p *domain.Product) error
	Delete(ctx context.Context, productID string) error
}
