package util

import (
	"context"
	"time"

	"reviewhub/internal/app/reviewhub/entity"

	"github.com/google/uuid"
)

// Cache интерфейс для работы с Redis кешем
// Используется для dependency injection и упрощения тестирования
type Cache interface {
	SetProducts(ctx context.Context, products []entity.Product, ttl time.Duration) error
	GetProducts(ctx context.Context) ([]entity.Product, error)
	DeleteProducts(ctx context.Context) error
	SetProductComments(ctx context.Context, productID uuid.UUID, comments []entity.Comment, ttl time.Duration) error
	GetProductComments(ctx context.Context, productID uuid.UUID) ([]entity.Comment, error)
	DeleteProductComments(ctx context.Context, productID uuid.UUID) error
	Close() error
}

// MessagePublisher интерфейс для отправки сообщений в очередь (Kafka)
// Используется для dependency injection и упрощения тестирования
type MessagePublisher interface {
	PublishMessage(ctx context.Context, key string, value []byte) error
	Close() error
}
