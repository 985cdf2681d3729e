package util

import (
	"context"
	"testing"
	"time"

	"reviewhub/internal/app/reviewhub/entity"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) (*RedisClient, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)

	client, err := NewRedisClient(mr.Addr(), "", 0)
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })

	return client, mr
}

func TestRedisClient_ProductsRoundTrip(t *testing.T) {
	client, _ := newTestRedis(t)
	ctx := context.Background()

	products := []entity.Product{
		{ID: uuid.New(), Name: "Laptop", Description: "Fast one"},
		{ID: uuid.New(), Name: "Phone"},
	}

	err := client.SetProducts(ctx, products, time.Hour)
	assert.NoError(t, err)

	cached, err := client.GetProducts(ctx)
	assert.NoError(t, err)
	assert.Len(t, cached, 2)
	assert.Equal(t, products[0].ID, cached[0].ID)
	assert.Equal(t, "Laptop", cached[0].Name)
}

func TestRedisClient_ProductsMiss(t *testing.T) {
	client, _ := newTestRedis(t)

	products, err := client.GetProducts(context.Background())

	assert.NoError(t, err)
	assert.Nil(t, products)
}

func TestRedisClient_DeleteProducts(t *testing.T) {
	client, _ := newTestRedis(t)
	ctx := context.Background()

	err := client.SetProducts(ctx, []entity.Product{{ID: uuid.New(), Name: "Laptop"}}, time.Hour)
	assert.NoError(t, err)

	err = client.DeleteProducts(ctx)
	assert.NoError(t, err)

	products, err := client.GetProducts(ctx)
	assert.NoError(t, err)
	assert.Nil(t, products)
}

func TestRedisClient_ProductCommentsRoundTrip(t *testing.T) {
	client, _ := newTestRedis(t)
	ctx := context.Background()
	productID := uuid.New()

	comments := []entity.Comment{
		{ID: uuid.New(), ProductID: productID, Username: "alice", Content: "Great phone", IsApproved: true},
	}

	err := client.SetProductComments(ctx, productID, comments, 10*time.Minute)
	assert.NoError(t, err)

	cached, err := client.GetProductComments(ctx, productID)
	assert.NoError(t, err)
	assert.Len(t, cached, 1)
	assert.Equal(t, comments[0].ID, cached[0].ID)
	assert.True(t, cached[0].IsApproved)
}

func TestRedisClient_ProductCommentsKeyedByProduct(t *testing.T) {
	client, _ := newTestRedis(t)
	ctx := context.Background()
	productID := uuid.New()

	comments := []entity.Comment{{ID: uuid.New(), ProductID: productID, IsApproved: true}}
	err := client.SetProductComments(ctx, productID, comments, 10*time.Minute)
	assert.NoError(t, err)

	// Кеш другого товара не затронут
	cached, err := client.GetProductComments(ctx, uuid.New())
	assert.NoError(t, err)
	assert.Nil(t, cached)
}

func TestRedisClient_DeleteProductComments(t *testing.T) {
	client, _ := newTestRedis(t)
	ctx := context.Background()
	productID := uuid.New()

	comments := []entity.Comment{{ID: uuid.New(), ProductID: productID, IsApproved: true}}
	err := client.SetProductComments(ctx, productID, comments, 10*time.Minute)
	assert.NoError(t, err)

	err = client.DeleteProductComments(ctx, productID)
	assert.NoError(t, err)

	cached, err := client.GetProductComments(ctx, productID)
	assert.NoError(t, err)
	assert.Nil(t, cached)
}

func TestRedisClient_TTLExpiry(t *testing.T) {
	client, mr := newTestRedis(t)
	ctx := context.Background()

	err := client.SetProducts(ctx, []entity.Product{{ID: uuid.New(), Name: "Laptop"}}, time.Minute)
	assert.NoError(t, err)

	mr.FastForward(2 * time.Minute)

	products, err := client.GetProducts(ctx)
	assert.NoError(t, err)
	assert.Nil(t, products)
}
