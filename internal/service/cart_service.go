package service

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/spec-kit/cafeteria-service/internal/domain"
	"github.com/spec-kit/cafeteria-service/internal/events"
	"github.com/spec-kit/cafeteria-service/internal/repository"
	apperrors "github.com/spec-kit/cafeteria-service/pkg/util/errorutil"
)

const cartKeyPrefix = "cart:"

// CartItem is a cart line joined with its product.
type CartItem struct {
	Product  *domain.Product
	Quantity int
}

// SubtotalCents is the line total.
func (i CartItem) SubtotalCents() int64 {
	return i.Product.PriceCents * int64(i.Quantity)
}

// CartService keeps per-user carts in Redis, one hash per user keyed by
// product id. Redis hash operations are atomic per key, which is all the
// isolation a single user's cart needs.
type CartService struct {
	client     *redis.Client
	products   repository.ProductRepository
	orders     repository.OrderRepository
	dispatcher events.Dispatcher
}

// CartDependencies bundles requirements for the cart service.
type CartDependencies struct {
	Redis       *redis.Client
	ProductRepo repository.ProductRepository
	OrderRepo   repository.OrderRepository
	Dispatcher  events.Dispatcher
}

// NewCartService builds the service.
func NewCartService(deps CartDependencies) *CartService {
	return &CartService{
		client:     deps.Redis,
		products:   deps.ProductRepo,
		orders:     deps.OrderRepo,
		dispatcher: deps.Dispatcher,
	}
}

// Add puts quantity units of a product into the user's cart, summing with any
// existing quantity.
func (s *CartService) Add(ctx context.Context, userID, productID string, quantity int) error {
	if quantity <= 0 {
		return apperrors.NewValidationError("quantity must be positive", nil)
	}
	if _, err := s.products.GetByID(ctx, productID); err != nil {
		return apperrors.NewNotFound("product", map[string]any{"product_id": productID})
	}
	return s.client.HIncrBy(ctx, cartKey(userID), productID, int64(quantity)).Err()
}

// UpdateQuantity replaces the quantity of a cart line. Non-positive
// quantities are ignored, matching the add-only posture of the cart.
func (s *CartService) UpdateQuantity(ctx context.Context, userID, productID string, quantity int) error {
	if quantity <= 0 {
		return nil
	}
	exists, err := s.client.HExists(ctx, cartKey(userID), productID).Result()
	if err != nil {
		return err
	}
	if !exists {
		return apperrors.NewNotFound("cart item", map[string]any{"product_id": productID})
	}
	return s.client.HSet(ctx, cartKey(userID), productID, quantity).Err()
}

// Remove drops a product from the cart.
func (s *CartService) Remove(ctx context.Context, userID, productID string) error {
	return s.client.HDel(ctx, cartKey(userID), productID).Err()
}

// Clear empties the user's cart.
func (s *CartService) Clear(ctx context.Context, userID string) error {
	return s.client.Del(ctx, cartKey(userID)).Err()
}

// Items returns the cart lines joined with product data.
func (s *CartService) Items(ctx context.Context, userID string) ([]CartItem, error) {
	raw, err := s.client.HGetAll(ctx, cartKey(userID)).Result()
	if err != nil {
		return nil, err
	}

	items := make([]CartItem, 0, len(raw))
	for productID, qtyStr := range raw {
		quantity, err := strconv.Atoi(qtyStr)
		if err != nil || quantity <= 0 {
			continue
		}
		product, err := s.products.GetByID(ctx, productID)
		if err != nil {
			// Product removed from the menu since it was carted; skip it.
			continue
		}
		items = append(items, CartItem{Product: product, Quantity: quantity})
	}
	return items, nil
}

// TotalCents sums the cart lines.
func (s *CartService) TotalCents(ctx context.Context, userID string) (int64, error) {
	items, err := s.Items(ctx, userID)
	if err != nil {
		return 0, err
	}
	var total int64
	for _, item := range items {
		total += item.SubtotalCents()
	}
	return total, nil
}

// ItemCount returns the summed quantities across cart lines.
func (s *CartService) ItemCount(ctx context.Context, userID string) (int, error) {
	items, err := s.Items(ctx, userID)
	if err != nil {
		return 0, err
	}
	var count int
	for _, item := range items {
		count += item.Quantity
	}
	return count, nil
}

// Checkout converts the cart into a persisted order and empties the cart.
func (s *CartService) Checkout(ctx context.Context, user *domain.User) (*domain.Order, error) {
	items, err := s.Items(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, apperrors.NewValidationError("cart is empty", nil)
	}

	order := &domain.Order{
		UserID: user.ID,
		Status: domain.OrderStatusPending,
	}
	for _, item := range items {
		order.Items = append(order.Items, domain.OrderItem{
			ProductID:      item.Product.ID,
			Name:           item.Product.Name,
			Quantity:       item.Quantity,
			UnitPriceCents: item.Product.PriceCents,
		})
	}
	order.ComputeTotal()

	if err := s.orders.Create(ctx, order); err != nil {
		return nil, err
	}
	if err := s.Clear(ctx, user.ID); err != nil {
		return nil, err
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventOrderCreated,
			OrderID:   order.ID,
			Actor:     events.Actor{UserID: user.ID, Role: user.Role},
			Timestamp: time.Now(),
			Payload: events.OrderCreatedPayload{
				ItemCount:  len(order.Items),
				TotalCents: order.TotalCents,
			},
		})
	}
	return order, nil
}

func cartKey(userID string) string {
	return cartKeyPrefix + userID
}
