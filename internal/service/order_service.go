package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/cafeteria-service/internal/domain"
	"github.com/spec-kit/cafeteria-service/internal/events"
	"github.com/spec-kit/cafeteria-service/internal/repository"
	apperrors "github.com/spec-kit/cafeteria-service/pkg/util/errorutil"
)

// OrderService coordinates order listing, status transitions and the admin
// dashboard aggregates.
type OrderService struct {
	orders     repository.OrderRepository
	products   repository.ProductRepository
	dispatcher events.Dispatcher
}

// OrderDependencies bundles repositories for the order service.
type OrderDependencies struct {
	OrderRepo   repository.OrderRepository
	ProductRepo repository.ProductRepository
	Dispatcher  events.Dispatcher
}

// NewOrderService builds the service.
func NewOrderService(deps OrderDependencies) *OrderService {
	return &OrderService{
		orders:     deps.OrderRepo,
		products:   deps.ProductRepo,
		dispatcher: deps.Dispatcher,
	}
}

// ListForUser returns the user's own orders, newest first.
func (s *OrderService) ListForUser(ctx context.Context, userID string) ([]*domain.Order, error) {
	return s.orders.ListByUser(ctx, userID)
}

// GetForRequester returns one order, visible only to its owner or to staff.
func (s *OrderService) GetForRequester(ctx context.Context, orderID, requesterID string, role domain.Role) (*domain.Order, error) {
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if order.UserID != requesterID && role != domain.RoleStaff {
		return nil, apperrors.NewForbidden("not your order")
	}
	return order, nil
}

// List returns all orders, optionally filtered by status.
func (s *OrderService) List(ctx context.Context, status domain.OrderStatus) ([]*domain.Order, error) {
	if status == "" {
		return s.orders.ListAll(ctx)
	}
	if !status.Valid() {
		return nil, apperrors.NewValidationError("unknown order status", map[string]any{"status": status})
	}
	return s.orders.ListByStatus(ctx, status)
}

// UpdateStatus transitions an order and publishes the change.
func (s *OrderService) UpdateStatus(ctx context.Context, actor *domain.User, orderID string, status domain.OrderStatus) error {
	if !status.Valid() {
		return apperrors.NewValidationError("unknown order status", map[string]any{"status": status})
	}

	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return apperrors.MapError(err)
	}
	// The repository may hand back an aliased object whose Status mutates
	// with the update, so snapshot it before transitioning.
	oldStatus := order.Status
	if err := s.orders.UpdateStatus(ctx, orderID, status); err != nil {
		return apperrors.MapError(err)
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventOrderStatusChanged,
			OrderID:   orderID,
			Actor:     events.Actor{UserID: actor.ID, Role: actor.Role},
			Timestamp: time.Now(),
			Payload: events.OrderStatusChangedPayload{
				OldStatus: oldStatus,
				NewStatus: status,
			},
		})
	}
	return nil
}

// Delete removes an order.
func (s *OrderService) Delete(ctx context.Context, orderID string) error {
	return apperrors.MapError(s.orders.Delete(ctx, orderID))
}

// DashboardStats aggregates figures for the admin dashboard.
type DashboardStats struct {
	TotalProducts     int64
	TotalOrders       int
	PendingOrders     int
	RevenueTotalCents int64
	RevenueMonthCents int64
	OrdersToday       int
	ItemsSoldToday    int
	RecentOrders      []*domain.Order
}

// Dashboard computes the admin dashboard aggregates.
func (s *OrderService) Dashboard(ctx context.Context) (*DashboardStats, error) {
	totalProducts, err := s.products.Count(ctx)
	if err != nil {
		return nil, err
	}
	orders, err := s.orders.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	stats := &DashboardStats{
		TotalProducts: totalProducts,
		TotalOrders:   len(orders),
	}
	for _, order := range orders {
		stats.RevenueTotalCents += order.TotalCents
		if order.Status == domain.OrderStatusPending {
			stats.PendingOrders++
		}
		if !order.CreatedAt.Before(monthStart) {
			stats.RevenueMonthCents += order.TotalCents
		}
		if !order.CreatedAt.Before(today) {
			stats.OrdersToday++
			for _, item := range order.Items {
				stats.ItemsSoldToday += item.Quantity
			}
		}
	}

	recent := orders
	if len(recent) > 10 {
		recent = recent[:10]
	}
	stats.RecentOrders = recent
	return stats, nil
}
