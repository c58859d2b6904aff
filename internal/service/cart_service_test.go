package service

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/cafeteria-service/internal/domain"
	"github.com/spec-kit/cafeteria-service/internal/events"
)

type cartFixture struct {
	cart     *CartService
	products *fakeProductRepo
	orders   *fakeOrderRepo
	events   []events.Event
}

func newCartFixture(t *testing.T) *cartFixture {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	products := newFakeProductRepo()
	orders := newFakeOrderRepo()

	f := &cartFixture{products: products, orders: orders}
	dispatcher := events.NewInMemoryDispatcher()
	dispatcher.Subscribe(events.EventOrderCreated, func(ctx context.Context, e events.Event) error {
		f.events = append(f.events, e)
		return nil
	})

	f.cart = NewCartService(CartDependencies{
		Redis:       client,
		ProductRepo: products,
		OrderRepo:   orders,
		Dispatcher:  dispatcher,
	})

	require.NoError(t, products.Create(context.Background(), &domain.Product{Name: "Espresso", PriceCents: 250}))
	require.NoError(t, products.Create(context.Background(), &domain.Product{Name: "Sandwich", PriceCents: 650}))

	return f
}

func (f *cartFixture) productID(t *testing.T, name string) string {
	t.Helper()
	for id, p := range f.products.products {
		if p.Name == name {
			return id
		}
	}
	t.Fatalf("product %q not seeded", name)
	return ""
}

func TestCartAddAndItems(t *testing.T) {
	f := newCartFixture(t)
	ctx := context.Background()
	espresso := f.productID(t, "Espresso")

	require.NoError(t, f.cart.Add(ctx, "u1", espresso, 2))
	require.NoError(t, f.cart.Add(ctx, "u1", espresso, 1))

	items, err := f.cart.Items(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 3, items[0].Quantity)
	assert.Equal(t, int64(750), items[0].SubtotalCents())
}

func TestCartAddValidation(t *testing.T) {
	f := newCartFixture(t)
	ctx := context.Background()

	assert.Error(t, f.cart.Add(ctx, "u1", f.productID(t, "Espresso"), 0))
	assert.Error(t, f.cart.Add(ctx, "u1", "missing-product", 1))
}

func TestCartsAreIsolatedPerUser(t *testing.T) {
	f := newCartFixture(t)
	ctx := context.Background()
	espresso := f.productID(t, "Espresso")

	require.NoError(t, f.cart.Add(ctx, "u1", espresso, 1))

	items, err := f.cart.Items(ctx, "u2")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestCartUpdateQuantity(t *testing.T) {
	f := newCartFixture(t)
	ctx := context.Background()
	espresso := f.productID(t, "Espresso")

	require.NoError(t, f.cart.Add(ctx, "u1", espresso, 1))
	require.NoError(t, f.cart.UpdateQuantity(ctx, "u1", espresso, 5))

	items, err := f.cart.Items(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 5, items[0].Quantity)

	// Updating a line that is not in the cart fails.
	assert.Error(t, f.cart.UpdateQuantity(ctx, "u1", f.productID(t, "Sandwich"), 2))

	// Non-positive quantities leave the line untouched.
	require.NoError(t, f.cart.UpdateQuantity(ctx, "u1", espresso, 0))
	items, err = f.cart.Items(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 5, items[0].Quantity)
}

func TestCartRemove(t *testing.T) {
	f := newCartFixture(t)
	ctx := context.Background()
	espresso := f.productID(t, "Espresso")

	require.NoError(t, f.cart.Add(ctx, "u1", espresso, 1))
	require.NoError(t, f.cart.Remove(ctx, "u1", espresso))

	items, err := f.cart.Items(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestCartSkipsProductsRemovedFromMenu(t *testing.T) {
	f := newCartFixture(t)
	ctx := context.Background()
	espresso := f.productID(t, "Espresso")
	sandwich := f.productID(t, "Sandwich")

	require.NoError(t, f.cart.Add(ctx, "u1", espresso, 1))
	require.NoError(t, f.cart.Add(ctx, "u1", sandwich, 1))
	require.NoError(t, f.products.Delete(ctx, sandwich))

	items, err := f.cart.Items(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, espresso, items[0].Product.ID)
}

func TestCheckoutEmptyCart(t *testing.T) {
	f := newCartFixture(t)

	user := &domain.User{ID: "u1", Role: domain.RoleClient}
	_, err := f.cart.Checkout(context.Background(), user)
	assert.Error(t, err)
	assert.Empty(t, f.orders.orders)
}

func TestCheckoutCreatesOrderAndClearsCart(t *testing.T) {
	f := newCartFixture(t)
	ctx := context.Background()
	espresso := f.productID(t, "Espresso")
	sandwich := f.productID(t, "Sandwich")

	require.NoError(t, f.cart.Add(ctx, "u1", espresso, 2))
	require.NoError(t, f.cart.Add(ctx, "u1", sandwich, 1))

	user := &domain.User{ID: "u1", Role: domain.RoleClient}
	order, err := f.cart.Checkout(ctx, user)
	require.NoError(t, err)

	assert.Equal(t, domain.OrderStatusPending, order.Status)
	assert.Equal(t, int64(2*250+650), order.TotalCents)
	assert.Len(t, order.Items, 2)
	require.Len(t, f.orders.orders, 1)

	// Cart should now be empty.
	items, err := f.cart.Items(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, items)

	// Unit prices are frozen at checkout time.
	for _, item := range order.Items {
		if item.ProductID == espresso {
			assert.Equal(t, int64(250), item.UnitPriceCents)
		}
	}

	require.Len(t, f.events, 1)
	assert.Equal(t, events.EventOrderCreated, f.events[0].Type)
	assert.Equal(t, order.ID, f.events[0].OrderID)
}
