// Package service owns product rules: public id assignment and ownership.
package service

import (
	"context"
	"errors"

	"storefront/internal/product/domain"
	"storefront/internal/product/repository"
)

// Sentinel errors for the product service; handlers map them to HTTP statuses.
var (
	ErrProductNotFound = errors.New("product not found")
	ErrNotOwner        = errors.New("not the product owner")
)

// Input carries the writable product fields.
type Input struct {
	Title       string
	Description string
	Price       float64
	Image       string
}

type Service struct {
	products repository.Repository
}

func NewService(products repository.Repository) *Service {
	return &Service{products: products}
}

// Create stores a new product owned by userID and assigns its public id.
func (s *Service) Create(ctx context.Context, userID string, in Input) (*domain.Product, error) {
	p := &domain.Product{
		ProductID:   domain.NewProductID(),
		UserID:      userID,
		Title:       in.Title,
		Description: in.Description,
		Price:       in.Price,
		Image:       in.Image,
	}
	if err := s.products.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Get returns the product for the public id. Reads are not ownership-gated.
func (s *Service) Get(ctx context.Context, productID string) (*domain.Product, error) {
	p, err := s.products.GetByProductID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrProductNotFound
	}
	return p, nil
}

// Update replaces the writable fields of the product. Only the owner may
// update; existence is checked before ownership so a missing product is a
// not-found, not a forbidden.
func (s *Service) Update(ctx context.Context, userID, productID string, in Input) (*domain.Product, error) {
	p, err := s.Get(ctx, productID)
	if err != nil {
		return nil, err
	}
	if p.UserID != userID {
		return nil, ErrNotOwner
	}
	p.Title = in.Title
	p.Description = in.Description
	p.Price = in.Price
	p.Image = in.Image
	if err := s.products.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Delete removes the product. Only the owner may delete.
func (s *Service) Delete(ctx context.Context, userID, productID string) error {
	p, err := s.Get(ctx, productID)
	if err != nil {
		return err
	}
	if p.UserID != userID {
		return ErrNotOwner
	}
	return s.products.Delete(ctx, productID)
}
