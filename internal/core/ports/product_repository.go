package ports

import (
	"context"
	"time"

	"github.com/example/user-product-api/internal/core/domain"
)

// ProductRepository defines persistence operations for products. Read methods
// exclude soft-deleted rows and resolve the creator's name with an explicit
// join against the users table.
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) (*domain.Product, error)
	FindByID(ctx context.Context, id int64) (*domain.Product, error)
	List(ctx context.Context, filter ListFilter) ([]*domain.Product, int64, error)
	// Update overwrites name, description, price and stock, and refreshes
	// updated_at. The owner reference is never touched.
	Update(ctx context.Context, product *domain.Product) (*domain.Product, error)
	SoftDelete(ctx context.Context, id int64, at time.Time) error
}
