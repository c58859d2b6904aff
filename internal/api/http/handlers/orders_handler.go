package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/cafeteria-service/internal/api/dto"
	"github.com/spec-kit/cafeteria-service/internal/auth"
	"github.com/spec-kit/cafeteria-service/internal/domain"
	"github.com/spec-kit/cafeteria-service/internal/service"
	apperrors "github.com/spec-kit/cafeteria-service/pkg/util/errorutil"
)

// OrdersHandler exposes order history under /api/orders.
type OrdersHandler struct {
	orders *service.OrderService
}

// NewOrdersHandler constructs handler.
func NewOrdersHandler(orders *service.OrderService) *OrdersHandler {
	return &OrdersHandler{orders: orders}
}

// List handles GET /api/orders. Clients see their own orders; staff see all,
// optionally filtered by ?status=.
func (h *OrdersHandler) List(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	if principal.Role == domain.RoleStaff {
		orders, err := h.orders.List(c.Context(), domain.OrderStatus(c.Query("status")))
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{"data": fiber.Map{"orders": dto.FromOrders(orders)}})
	}

	orders, err := h.orders.ListForUser(c.Context(), principal.UserID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"orders": dto.FromOrders(orders)}})
}

// Dashboard handles GET /api/admin/dashboard. The route is staff-gated by
// the authorization policy.
func (h *OrdersHandler) Dashboard(c *fiber.Ctx) error {
	stats, err := h.orders.Dashboard(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{
		"total_products":      stats.TotalProducts,
		"total_orders":        stats.TotalOrders,
		"pending_orders":      stats.PendingOrders,
		"revenue_total_cents": stats.RevenueTotalCents,
		"revenue_month_cents": stats.RevenueMonthCents,
		"orders_today":        stats.OrdersToday,
		"items_sold_today":    stats.ItemsSoldToday,
		"recent_orders":       dto.FromOrders(stats.RecentOrders),
	}})
}

// Get handles GET /api/orders/:id. Clients can only read their own orders.
func (h *OrdersHandler) Get(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	order, err := h.orders.GetForRequester(c.Context(), c.Params("id"), principal.UserID, principal.Role)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"order": dto.FromOrder(order)}})
}
