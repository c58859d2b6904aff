package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/cafeteria-service/internal/api/http/web"
	"github.com/spec-kit/cafeteria-service/internal/auth"
	"github.com/spec-kit/cafeteria-service/internal/domain"
	"github.com/spec-kit/cafeteria-service/internal/service"
	apperrors "github.com/spec-kit/cafeteria-service/pkg/util/errorutil"
)

var orderStatuses = []domain.OrderStatus{
	domain.OrderStatusPending,
	domain.OrderStatusPreparing,
	domain.OrderStatusReady,
	domain.OrderStatusDelivered,
	domain.OrderStatusCancelled,
}

// AdminHandler serves the staff console under /admin.
type AdminHandler struct {
	products *service.ProductService
	orders   *service.OrderService
	views    *web.View
}

// NewAdminHandler constructs handler.
func NewAdminHandler(products *service.ProductService, orders *service.OrderService, views *web.View) *AdminHandler {
	return &AdminHandler{products: products, orders: orders, views: views}
}

// Dashboard handles GET /admin/dashboard.
func (h *AdminHandler) Dashboard(c *fiber.Ctx) error {
	stats, err := h.orders.Dashboard(c.Context())
	if err != nil {
		return err
	}
	return h.views.Render(c, "admin_dashboard", fiber.Map{
		"Title": "Dashboard",
		"Stats": stats,
	})
}

// Products handles GET /admin/products.
func (h *AdminHandler) Products(c *fiber.Ctx) error {
	products, err := h.products.List(c.Context())
	if err != nil {
		return err
	}
	return h.views.Render(c, "admin_products", fiber.Map{
		"Title":    "Products",
		"Products": products,
		"Error":    c.Query("error"),
	})
}

// ProductCreate handles POST /admin/products.
func (h *AdminHandler) ProductCreate(c *fiber.Ctx) error {
	price, err := strconv.ParseInt(c.FormValue("price_cents"), 10, 64)
	if err != nil {
		return c.Redirect("/admin/products?error=price+must+be+a+number", fiber.StatusFound)
	}
	if _, err := h.products.Create(c.Context(), c.FormValue("name"), c.FormValue("description"), price); err != nil {
		return c.Redirect("/admin/products?error=name+and+a+non-negative+price+are+required", fiber.StatusFound)
	}
	return c.Redirect("/admin/products", fiber.StatusFound)
}

// ProductUpdate handles POST /admin/products/:id.
func (h *AdminHandler) ProductUpdate(c *fiber.Ctx) error {
	price, err := strconv.ParseInt(c.FormValue("price_cents"), 10, 64)
	if err != nil {
		return c.Redirect("/admin/products?error=price+must+be+a+number", fiber.StatusFound)
	}
	if _, err := h.products.Update(c.Context(), c.Params("id"), c.FormValue("name"), c.FormValue("description"), price); err != nil {
		return err
	}
	return c.Redirect("/admin/products", fiber.StatusFound)
}

// ProductDelete handles POST /admin/products/:id/delete.
func (h *AdminHandler) ProductDelete(c *fiber.Ctx) error {
	if err := h.products.Delete(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.Redirect("/admin/products", fiber.StatusFound)
}

// Orders handles GET /admin/orders.
func (h *AdminHandler) Orders(c *fiber.Ctx) error {
	filter := domain.OrderStatus(c.Query("status"))
	orders, err := h.orders.List(c.Context(), filter)
	if err != nil {
		return err
	}
	return h.views.Render(c, "admin_orders", fiber.Map{
		"Title":    "Orders",
		"Orders":   orders,
		"Statuses": orderStatuses,
		"Filter":   filter,
	})
}

// OrderStatus handles POST /admin/orders/:id/status.
func (h *AdminHandler) OrderStatus(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	actor := &domain.User{ID: principal.UserID, Role: principal.Role}
	status := domain.OrderStatus(c.FormValue("status"))
	if err := h.orders.UpdateStatus(c.Context(), actor, c.Params("id"), status); err != nil {
		return err
	}
	return c.Redirect("/admin/orders", fiber.StatusFound)
}

// OrderDelete handles POST /admin/orders/:id/delete.
func (h *AdminHandler) OrderDelete(c *fiber.Ctx) error {
	if err := h.orders.Delete(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.Redirect("/admin/orders", fiber.StatusFound)
}
