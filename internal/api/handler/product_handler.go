package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/example/user-product-api/internal/core/domain"
	"github.com/example/user-product-api/internal/core/ports"
)

// ProductHandler handles the product endpoints. Reads and creation are open
// to any authenticated user; mutation is admin-only, which the route table
// enforces before the handler runs.
type ProductHandler struct {
	productService ports.ProductService
}

func NewProductHandler(productService ports.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

type productRequest struct {
	Name        string          `json:"name" validate:"required"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock" validate:"gte=0"`
}

// checkPrice rejects negative prices; zero is allowed, matching the stock
// floor of zero.
func (r *productRequest) checkPrice() error {
	if r.Price.IsNegative() {
		return &domain.ValidationError{Fields: map[string]string{
			"price": "price must not be negative",
		}}
	}
	return nil
}

// List returns a page of non-deleted products.
//
// @Summary      List products
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        page    query     int     false  "0-based page index"
// @Param        size    query     int     false  "page size (default 10)"
// @Param        search  query     string  false  "substring filter on name or description"
// @Success      200     {object}  Response
// @Failure      401     {object}  Response
// @Router       /api/products [get]
func (h *ProductHandler) List(c echo.Context) error {
	page, err := h.productService.List(c.Request().Context(), listInput(c))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Success", page)
}

// Get returns a single product by id.
//
// @Summary      Get a product by id
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Product id"
// @Success      200  {object}  Response
// @Failure      404  {object}  Response
// @Router       /api/products/{id} [get]
func (h *ProductHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	view, err := h.productService.GetByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Success", view)
}

// Create creates a product owned by the authenticated caller.
//
// @Summary      Create a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      productRequest  true  "Product details"
// @Success      200   {object}  Response
// @Failure      400   {object}  Response
// @Failure      401   {object}  Response
// @Router       /api/products [post]
func (h *ProductHandler) Create(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req productRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	if err := req.checkPrice(); err != nil {
		return err
	}

	view, err := h.productService.Create(c.Request().Context(), identity, ports.CreateProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Product created successfully", view)
}

// Update overwrites all mutable product fields.
//
// @Summary      Update a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int             true  "Product id"
// @Param        body  body      productRequest  true  "Updated fields"
// @Success      200   {object}  Response
// @Failure      403   {object}  Response
// @Failure      404   {object}  Response
// @Router       /api/products/{id} [put]
func (h *ProductHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req productRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	if err := req.checkPrice(); err != nil {
		return err
	}

	view, err := h.productService.Update(c.Request().Context(), id, ports.UpdateProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Product updated successfully", view)
}

// Delete soft-deletes a product.
//
// @Summary      Delete a product
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Product id"
// @Success      200  {object}  Response
// @Failure      403  {object}  Response
// @Failure      404  {object}  Response
// @Router       /api/products/{id} [delete]
func (h *ProductHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.productService.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Product deleted successfully", nil)
}
