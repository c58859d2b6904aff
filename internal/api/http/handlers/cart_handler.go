package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/cafeteria-service/internal/api/http/web"
	"github.com/spec-kit/cafeteria-service/internal/auth"
	"github.com/spec-kit/cafeteria-service/internal/domain"
	"github.com/spec-kit/cafeteria-service/internal/service"
)

// CartHandler serves the cart pages under /cart. The routes are gated to
// clients by the authorization policy.
type CartHandler struct {
	cart  *service.CartService
	views *web.View
}

// NewCartHandler constructs handler.
func NewCartHandler(cart *service.CartService, views *web.View) *CartHandler {
	return &CartHandler{cart: cart, views: views}
}

// View handles GET /cart.
func (h *CartHandler) View(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return c.Redirect("/login", fiber.StatusFound)
	}

	items, err := h.cart.Items(c.Context(), principal.UserID)
	if err != nil {
		return err
	}
	var total int64
	for _, item := range items {
		total += item.SubtotalCents()
	}
	return h.views.Render(c, "cart", fiber.Map{
		"Title":      "Cart",
		"Items":      items,
		"TotalCents": total,
	})
}

// Add handles POST /cart/add.
func (h *CartHandler) Add(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return c.Redirect("/login", fiber.StatusFound)
	}

	quantity, err := strconv.Atoi(c.FormValue("quantity"))
	if err != nil || quantity < 1 {
		quantity = 1
	}
	if err := h.cart.Add(c.Context(), principal.UserID, c.FormValue("product_id"), quantity); err != nil {
		return err
	}
	return c.Redirect("/cart", fiber.StatusFound)
}

// Update handles POST /cart/update.
func (h *CartHandler) Update(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return c.Redirect("/login", fiber.StatusFound)
	}

	quantity, err := strconv.Atoi(c.FormValue("quantity"))
	if err != nil {
		return c.Redirect("/cart", fiber.StatusFound)
	}
	if err := h.cart.UpdateQuantity(c.Context(), principal.UserID, c.FormValue("product_id"), quantity); err != nil {
		return err
	}
	return c.Redirect("/cart", fiber.StatusFound)
}

// Remove handles POST /cart/remove.
func (h *CartHandler) Remove(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return c.Redirect("/login", fiber.StatusFound)
	}
	if err := h.cart.Remove(c.Context(), principal.UserID, c.FormValue("product_id")); err != nil {
		return err
	}
	return c.Redirect("/cart", fiber.StatusFound)
}

// Checkout handles POST /cart/checkout.
func (h *CartHandler) Checkout(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return c.Redirect("/login", fiber.StatusFound)
	}

	user := &domain.User{
		ID:    principal.UserID,
		Name:  principal.Name,
		Email: principal.Email,
		Role:  principal.Role,
	}
	if _, err := h.cart.Checkout(c.Context(), user); err != nil {
		// An empty cart is the only expected failure here.
		return c.Redirect("/cart", fiber.StatusFound)
	}
	return c.Redirect("/orders?placed=true", fiber.StatusFound)
}
