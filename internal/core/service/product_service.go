package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/example/user-product-api/internal/core/domain"
	"github.com/example/user-product-api/internal/core/ports"
)

// ProductCatalogService implements the product lifecycle. The creating user
// becomes the immutable owner of the product.
type ProductCatalogService struct {
	products ports.ProductRepository
	logger   zerolog.Logger
}

func NewProductCatalogService(products ports.ProductRepository, logger zerolog.Logger) *ProductCatalogService {
	return &ProductCatalogService{products: products, logger: logger}
}

func (s *ProductCatalogService) Create(ctx context.Context, identity domain.Identity, in ports.CreateProductInput) (*ports.ProductView, error) {
	product := &domain.Product{
		Name:          in.Name,
		Description:   in.Description,
		Price:         in.Price,
		Stock:         in.Stock,
		CreatedByID:   identity.UserID,
		CreatedByName: identity.Name,
	}

	created, err := s.products.Create(ctx, product)
	if err != nil {
		s.logger.Error().Err(err).Str("name", in.Name).Msg("failed to create product")
		return nil, err
	}

	s.logger.Info().Int64("product_id", created.ID).Int64("created_by", identity.UserID).Msg("product created")
	return productView(created), nil
}

func (s *ProductCatalogService) GetByID(ctx context.Context, id int64) (*ports.ProductView, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return productView(product), nil
}

func (s *ProductCatalogService) List(ctx context.Context, in ports.ListInput) (*ports.Page[ports.ProductView], error) {
	page, size := normalizePaging(in.Page, in.Size)

	products, total, err := s.products.List(ctx, ports.ListFilter{Search: in.Search, Page: page, Size: size})
	if err != nil {
		return nil, err
	}

	views := make([]ports.ProductView, 0, len(products))
	for _, p := range products {
		views = append(views, *productView(p))
	}
	return ports.NewPage(views, page, size, total), nil
}

// Update overwrites all four mutable fields unconditionally; the owner
// reference is never touched.
func (s *ProductCatalogService) Update(ctx context.Context, id int64, in ports.UpdateProductInput) (*ports.ProductView, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	product.Name = in.Name
	product.Description = in.Description
	product.Price = in.Price
	product.Stock = in.Stock

	updated, err := s.products.Update(ctx, product)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("product_id", id).Msg("product updated")
	return productView(updated), nil
}

func (s *ProductCatalogService) Delete(ctx context.Context, id int64) error {
	if err := s.products.SoftDelete(ctx, id, time.Now().UTC()); err != nil {
		return err
	}
	s.logger.Info().Int64("product_id", id).Msg("product deleted")
	return nil
}

func productView(p *domain.Product) *ports.ProductView {
	return &ports.ProductView{
		ID:            p.ID,
		Name:          p.Name,
		Description:   p.Description,
		Price:         p.Price,
		Stock:         p.Stock,
		CreatedByID:   p.CreatedByID,
		CreatedByName: p.CreatedByName,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}
