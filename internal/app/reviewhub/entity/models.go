package entity

import (
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User представляет пользователя платформы
type User struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"` // не возвращаем в JSON
	IsAdmin      bool      `json:"is_admin" db:"is_admin"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// Product представляет товар, к которому привязываются комментарии
type Product struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Name        string    `json:"name" gorm:"size:200;not null"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Comment представляет комментарий пользователя к товару
// IsApproved всегда false при создании, меняется только действиями модератора
type Comment struct {
	ID         uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	ProductID  uuid.UUID `json:"product_id" gorm:"type:uuid;not null;index"`
	UserID     uuid.UUID `json:"user_id" gorm:"type:uuid;not null;index"`
	Username   string    `json:"username" gorm:"size:150"`
	Content    string    `json:"content" gorm:"not null"`
	IsApproved bool      `json:"is_approved" gorm:"not null;default:false"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// ModerationRecord - запись аудита модерации в MongoDB
// Создается при каждом approve/reject
type ModerationRecord struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	CommentID   string             `json:"comment_id" bson:"comment_id"`
	ProductID   string             `json:"product_id" bson:"product_id"`
	ModeratorID string             `json:"moderator_id" bson:"moderator_id"`
	Action      string             `json:"action" bson:"action"` // approve или reject
	CreatedAt   time.Time          `json:"created_at" bson:"created_at"`
}

// CommentEvent представляет событие о комментарии для Kafka
type CommentEvent struct {
	EventType string    `json:"event_type"` // COMMENT_CREATED, COMMENT_APPROVED, COMMENT_REJECTED
	CommentID string    `json:"comment_id"`
	ProductID string    `json:"product_id"`
	UserID    string    `json:"user_id"`
	Timestamp time.Time `json:"timestamp"`
}

// Действия модерации для аудита и событий
const (
	ModerationActionApprove = "approve"
	ModerationActionReject  = "reject"
)
