package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/example/user-product-api/internal/core/domain"
	"github.com/example/user-product-api/internal/core/ports"
)

const (
	insertProduct = `
		INSERT INTO products (name, description, price, stock, created_by)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at;`

	selectProductByID = `
		SELECT p.id, p.name, p.description, p.price, p.stock,
		       p.created_by, u.name, p.created_at, p.updated_at
		FROM products p
		JOIN users u ON u.id = p.created_by
		WHERE p.id = $1 AND p.deleted_at IS NULL;`

	updateProduct = `
		UPDATE products
		SET name = $1, description = $2, price = $3, stock = $4, updated_at = now()
		WHERE id = $5 AND deleted_at IS NULL
		RETURNING created_at, updated_at;`

	softDeleteProduct = `
		UPDATE products
		SET deleted_at = $2
		WHERE id = $1 AND deleted_at IS NULL;`
)

// productRepository is the PostgreSQL-backed implementation of
// ports.ProductRepository. The creator's display name is resolved with an
// explicit join against the users table; soft-deleted creators keep their row
// so the join never dangles.
type productRepository struct {
	db  *sql.DB
	log zerolog.Logger
}

func NewProductRepository(db *sql.DB, log zerolog.Logger) ports.ProductRepository {
	return &productRepository{db: db, log: log}
}

func (r *productRepository) Create(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	row := r.db.QueryRowContext(ctx, insertProduct,
		product.Name, product.Description, product.Price, product.Stock, product.CreatedByID)
	if err := row.Scan(&product.ID, &product.CreatedAt, &product.UpdatedAt); err != nil {
		r.log.Error().Err(err).Str("name", product.Name).Msg("insert product failed")
		return nil, fmt.Errorf("insert product: %w", err)
	}
	return product, nil
}

func (r *productRepository) FindByID(ctx context.Context, id int64) (*domain.Product, error) {
	var product domain.Product
	row := r.db.QueryRowContext(ctx, selectProductByID, id)
	err := row.Scan(&product.ID, &product.Name, &product.Description, &product.Price,
		&product.Stock, &product.CreatedByID, &product.CreatedByName,
		&product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProductNotFound
		}
		return nil, fmt.Errorf("query product: %w", err)
	}
	return &product, nil
}

func (r *productRepository) List(ctx context.Context, filter ports.ListFilter) ([]*domain.Product, int64, error) {
	query, args, err := buildListProductsQuery(filter)
	if err != nil {
		return nil, 0, fmt.Errorf("build list products query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.log.Error().Err(err).Msg("list products query failed")
		return nil, 0, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	var products []*domain.Product
	for rows.Next() {
		var product domain.Product
		if err := rows.Scan(&product.ID, &product.Name, &product.Description, &product.Price,
			&product.Stock, &product.CreatedByID, &product.CreatedByName,
			&product.CreatedAt, &product.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan product row: %w", err)
		}
		products = append(products, &product)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate product rows: %w", err)
	}

	countQuery, countArgs, err := buildCountProductsQuery(filter)
	if err != nil {
		return nil, 0, fmt.Errorf("build count products query: %w", err)
	}
	var total int64
	if err := r.db.QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}

	return products, total, nil
}

// Update overwrites the four mutable columns unconditionally; created_by is
// never part of the statement.
func (r *productRepository) Update(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	row := r.db.QueryRowContext(ctx, updateProduct,
		product.Name, product.Description, product.Price, product.Stock, product.ID)
	if err := row.Scan(&product.CreatedAt, &product.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProductNotFound
		}
		return nil, fmt.Errorf("update product: %w", err)
	}
	return product, nil
}

func (r *productRepository) SoftDelete(ctx context.Context, id int64, at time.Time) error {
	res, err := r.db.ExecContext(ctx, softDeleteProduct, id, at)
	if err != nil {
		return fmt.Errorf("soft delete product: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("soft delete product: %w", err)
	}
	if affected == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}
