package util

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"reviewhub/internal/app/reviewhub/entity"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	productsCacheKey          = "products:all"
	productCommentsCachePrefx = "product_comments:"
)

type RedisClient struct {
	client *redis.Client
}

func NewRedisClient(addr, password string, db int) (*RedisClient, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisClient{client: client}, nil
}

// SetProducts кеширует полный список товаров
func (r *RedisClient) SetProducts(ctx context.Context, products []entity.Product, ttl time.Duration) error {
	data, err := json.Marshal(products)
	if err != nil {
		return fmt.Errorf("failed to marshal products: %w", err)
	}

	if err := r.client.Set(ctx, productsCacheKey, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set products in cache: %w", err)
	}

	return nil
}

// GetProducts возвращает список товаров из кеша, nil при cache miss
func (r *RedisClient) GetProducts(ctx context.Context) ([]entity.Product, error) {
	data, err := r.client.Get(ctx, productsCacheKey).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get products from cache: %w", err)
	}

	var products []entity.Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, fmt.Errorf("failed to unmarshal products: %w", err)
	}

	return products, nil
}

// DeleteProducts инвалидирует кеш списка товаров
func (r *RedisClient) DeleteProducts(ctx context.Context) error {
	if err := r.client.Del(ctx, productsCacheKey).Err(); err != nil {
		return fmt.Errorf("failed to delete products from cache: %w", err)
	}
	return nil
}

// SetProductComments кеширует одобренные комментарии товара
func (r *RedisClient) SetProductComments(ctx context.Context, productID uuid.UUID, comments []entity.Comment, ttl time.Duration) error {
	data, err := json.Marshal(comments)
	if err != nil {
		return fmt.Errorf("failed to marshal comments: %w", err)
	}

	key := productCommentsCachePrefx + productID.String()
	if err := r.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set comments in cache: %w", err)
	}

	return nil
}

// GetProductComments возвращает одобренные комментарии товара из кеша, nil при cache miss
func (r *RedisClient) GetProductComments(ctx context.Context, productID uuid.UUID) ([]entity.Comment, error) {
	key := productCommentsCachePrefx + productID.String()
	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get comments from cache: %w", err)
	}

	var comments []entity.Comment
	if err := json.Unmarshal(data, &comments); err != nil {
		return nil, fmt.Errorf("failed to unmarshal comments: %w", err)
	}

	return comments, nil
}

// DeleteProductComments инвалидирует кеш комментариев товара
// Вызывается при approve/reject/update/delete комментария этого товара
func (r *RedisClient) DeleteProductComments(ctx context.Context, productID uuid.UUID) error {
	key := productCommentsCachePrefx + productID.String()
	if err := r.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to delete comments from cache: %w", err)
	}
	return nil
}

func (r *RedisClient) Close() error {
	return r.client.Close()
}
