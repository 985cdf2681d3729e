package repository

import (
	"context"

	"reviewhub/internal/app/reviewhub/entity"

	"github.com/google/uuid"
)

// UserRepository определяет методы для работы с пользователями в PostgreSQL
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
}

// ProductRepository определяет методы для работы с товарами в PostgreSQL
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	GetAll(ctx context.Context) ([]entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// CommentRepository определяет методы для работы с комментариями в PostgreSQL
type CommentRepository interface {
	Create(ctx context.Context, comment *entity.Comment) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Comment, error)
	GetAll(ctx context.Context) ([]entity.Comment, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) ([]entity.Comment, error)
	GetByApproval(ctx context.Context, approved bool) ([]entity.Comment, error)
	GetApprovedByProductID(ctx context.Context, productID uuid.UUID) ([]entity.Comment, error)
	CountByApproval(ctx context.Context, approved bool) (int64, error)
	Update(ctx context.Context, comment *entity.Comment) error
	SetApproval(ctx context.Context, id uuid.UUID, approved bool) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByProductID(ctx context.Context, productID uuid.UUID) error
}

// ModerationLogRepository определяет методы для журнала модерации в MongoDB
type ModerationLogRepository interface {
	Insert(ctx context.Context, record *entity.ModerationRecord) error
	GetRecent(ctx context.Context, limit int64) ([]entity.ModerationRecord, error)
}
