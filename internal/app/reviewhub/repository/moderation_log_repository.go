package repository

import (
	"context"
	"fmt"
	"time"

	"reviewhub/internal/app/reviewhub/entity"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type moderationLogRepository struct {
	collection *mongo.Collection
}

// NewModerationLogRepository создает репозиторий журнала модерации
// Автоматически создает индекс по comment_id для выборки истории комментария
func NewModerationLogRepository(db *mongo.Database) ModerationLogRepository {
	collection := db.Collection("moderation_log")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModel := mongo.IndexModel{
		Keys: bson.D{
			{Key: "comment_id", Value: 1},
		},
		Options: options.Index().SetName("comment_id_idx"),
	}

	if _, err := collection.Indexes().CreateOne(ctx, indexModel); err != nil {
		// Логируем ошибку, но не прерываем работу - индекс может уже существовать
		fmt.Printf("Warning: failed to create index on comment_id: %v\n", err)
	}

	return &moderationLogRepository{
		collection: collection,
	}
}

// Insert добавляет запись о действии модератора
func (r *moderationLogRepository) Insert(ctx context.Context, record *entity.ModerationRecord) error {
	record.CreatedAt = time.Now()

	result, err := r.collection.InsertOne(ctx, record)
	if err != nil {
		return fmt.Errorf("failed to insert moderation record: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		record.ID = oid
	}

	return nil
}

// GetRecent возвращает последние записи журнала, новые первыми
func (r *moderationLogRepository) GetRecent(ctx context.Context, limit int64) ([]entity.ModerationRecord, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit)

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find moderation records: %w", err)
	}
	defer cursor.Close(ctx)

	var records []entity.ModerationRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("failed to decode moderation records: %w", err)
	}

	return records, nil
}
