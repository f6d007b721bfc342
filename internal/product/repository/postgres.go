package repository

import (
	"context"
	"database/sql"
	"errors"

	"storefront/internal/product/domain"
)

type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository returns a product repository that uses the given db for persistence.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create persists the product. The row id and timestamps are assigned by the
// database and written back onto p; ProductID must already be set.
func (r *PostgresRepository) Create(ctx context.Context, p *domain.Product) error {
	const query = `
		INSERT INTO products (product_id, user_id, title, description, price, image)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at`
	return r.db.QueryRowContext(ctx, query,
		p.ProductID, p.UserID, p.Title, p.Description, p.Price, p.Image,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

// GetByProductID returns the product for the public id, or nil if not found.
// It returns an error only for database failures, not for missing rows.
func (r *PostgresRepository) GetByProductID(ctx context.Context, productID string) (*domain.Product, error) {
	const query = `
		SELECT id, product_id, user_id, title, description, price, image, created_at, updated_at
		FROM products
		WHERE product_id = $1`
	var p domain.Product
	err := r.db.QueryRowContext(ctx, query, productID).Scan(
		&p.ID, &p.ProductID, &p.UserID, &p.Title, &p.Description, &p.Price, &p.Image, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

// Update rewrites the mutable fields and bumps updated_at.
func (r *PostgresRepository) Update(ctx context.Context, p *domain.Product) error {
	const query = `
		UPDATE products
		SET title = $2, description = $3, price = $4, image = $5, updated_at = now()
		WHERE product_id = $1
		RETURNING updated_at`
	return r.db.QueryRowContext(ctx, query,
		p.ProductID, p.Title, p.Description, p.Price, p.Image,
	).Scan(&p.UpdatedAt)
}

// Delete removes the product. A missing row is not an error.
func (r *PostgresRepository) Delete(ctx context.Context, productID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE product_id = $1`, productID)
	return err
}
