package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductCreateValidation(t *testing.T) {
	svc := NewProductService(newFakeProductRepo())
	ctx := context.Background()

	_, err := svc.Create(ctx, "", "no name", 100)
	assert.Error(t, err)

	_, err = svc.Create(ctx, "Espresso", "", -1)
	assert.Error(t, err)

	product, err := svc.Create(ctx, "Espresso", "double shot", 250)
	require.NoError(t, err)
	assert.NotEmpty(t, product.ID)
	assert.Equal(t, int64(250), product.PriceCents)
}

func TestProductUpdateAndDelete(t *testing.T) {
	repo := newFakeProductRepo()
	svc := NewProductService(repo)
	ctx := context.Background()

	product, err := svc.Create(ctx, "Espresso", "", 250)
	require.NoError(t, err)

	updated, err := svc.Update(ctx, product.ID, "Double Espresso", "two shots", 350)
	require.NoError(t, err)
	assert.Equal(t, "Double Espresso", updated.Name)
	assert.Equal(t, int64(350), updated.PriceCents)

	require.NoError(t, svc.Delete(ctx, product.ID))
	_, err = svc.Get(ctx, product.ID)
	assert.Error(t, err)
}
