package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/cafeteria-service/internal/api/dto"
	"github.com/spec-kit/cafeteria-service/internal/service"
)

// ProductsHandler exposes the menu under /api/products, read-only. Menu
// management happens through the staff web console.
type ProductsHandler struct {
	products *service.ProductService
}

// NewProductsHandler constructs handler.
func NewProductsHandler(products *service.ProductService) *ProductsHandler {
	return &ProductsHandler{products: products}
}

// List handles GET /api/products.
func (h *ProductsHandler) List(c *fiber.Ctx) error {
	products, err := h.products.List(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"products": dto.FromProducts(products)}})
}

// Get handles GET /api/products/:id.
func (h *ProductsHandler) Get(c *fiber.Ctx) error {
	product, err := h.products.Get(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"product": dto.FromProduct(product)}})
}
