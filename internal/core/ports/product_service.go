package ports

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/example/user-product-api/internal/core/domain"
)

// CreateProductInput carries the fields accepted when creating a product.
type CreateProductInput struct {
	Name        string
	Description string
	Price       decimal.Decimal
	Stock       int
}

// UpdateProductInput carries the mutable product fields; all four overwrite
// unconditionally on update.
type UpdateProductInput struct {
	Name        string
	Description string
	Price       decimal.Decimal
	Stock       int
}

// ProductView is the public representation of a product.
type ProductView struct {
	ID            int64           `json:"id"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price"`
	Stock         int             `json:"stock"`
	CreatedByID   int64           `json:"createdById"`
	CreatedByName string          `json:"createdByName"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// ProductService implements the product lifecycle. Create records the caller
// as the immutable owner, which is why it takes the resolved identity.
type ProductService interface {
	Create(ctx context.Context, identity domain.Identity, in CreateProductInput) (*ProductView, error)
	GetByID(ctx context.Context, id int64) (*ProductView, error)
	List(ctx context.Context, in ListInput) (*Page[ProductView], error)
	Update(ctx context.Context, id int64, in UpdateProductInput) (*ProductView, error)
	Delete(ctx context.Context, id int64) error
}
