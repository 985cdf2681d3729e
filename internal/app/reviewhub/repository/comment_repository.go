package repository

import (
	"context"
	"errors"

	"reviewhub/internal/app/reviewhub/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrCommentNotFound = errors.New("comment not found")
)

type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository создает новый репозиторий комментариев
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

// Create создает новый комментарий
func (r *commentRepository) Create(ctx context.Context, comment *entity.Comment) error {
	result := r.db.WithContext(ctx).Create(comment)
	return result.Error
}

// GetByID получает комментарий по ID
func (r *commentRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Comment, error) {
	var comment entity.Comment
	result := r.db.WithContext(ctx).First(&comment, "id = ?", id)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, result.Error
	}

	return &comment, nil
}

// GetAll получает все комментарии, новые первыми
func (r *commentRepository) GetAll(ctx context.Context) ([]entity.Comment, error) {
	var comments []entity.Comment
	result := r.db.WithContext(ctx).Order("created_at DESC").Find(&comments)

	if result.Error != nil {
		return nil, result.Error
	}

	return comments, nil
}

// GetByUserID получает все комментарии автора, новые первыми
func (r *commentRepository) GetByUserID(ctx context.Context, userID uuid.UUID) ([]entity.Comment, error) {
	var comments []entity.Comment
	result := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at DESC").Find(&comments)

	if result.Error != nil {
		return nil, result.Error
	}

	return comments, nil
}

// GetByApproval получает комментарии по состоянию флага одобрения, новые первыми
func (r *commentRepository) GetByApproval(ctx context.Context, approved bool) ([]entity.Comment, error) {
	var comments []entity.Comment
	result := r.db.WithContext(ctx).Where("is_approved = ?", approved).Order("created_at DESC").Find(&comments)

	if result.Error != nil {
		return nil, result.Error
	}

	return comments, nil
}

// GetApprovedByProductID получает одобренные комментарии товара, новые первыми
func (r *commentRepository) GetApprovedByProductID(ctx context.Context, productID uuid.UUID) ([]entity.Comment, error) {
	var comments []entity.Comment
	result := r.db.WithContext(ctx).
		Where("product_id = ? AND is_approved = ?", productID, true).
		Order("created_at DESC").
		Find(&comments)

	if result.Error != nil {
		return nil, result.Error
	}

	return comments, nil
}

// CountByApproval считает комментарии по состоянию флага одобрения
func (r *commentRepository) CountByApproval(ctx context.Context, approved bool) (int64, error) {
	var count int64
	result := r.db.WithContext(ctx).Model(&entity.Comment{}).Where("is_approved = ?", approved).Count(&count)

	if result.Error != nil {
		return 0, result.Error
	}

	return count, nil
}

// Update обновляет текст комментария
func (r *commentRepository) Update(ctx context.Context, comment *entity.Comment) error {
	result := r.db.WithContext(ctx).Model(comment).Where("id = ?", comment.ID).Updates(map[string]interface{}{
		"content": comment.Content,
	})

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrCommentNotFound
	}

	return nil
}

// SetApproval выставляет флаг одобрения одной атомарной записью
// Идемпотентно: повторное выставление того же значения тоже успешно,
// PostgreSQL считает строку затронутой даже при записи того же значения
func (r *commentRepository) SetApproval(ctx context.Context, id uuid.UUID, approved bool) error {
	result := r.db.WithContext(ctx).Model(&entity.Comment{}).Where("id = ?", id).Update("is_approved", approved)

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrCommentNotFound
	}

	return nil
}

// DeleteByProductID удаляет все комментарии товара
// Вызывается при удалении товара: комментарий не может ссылаться
// на несуществующий товар
func (r *commentRepository) DeleteByProductID(ctx context.Context, productID uuid.UUID) error {
	// Товар без комментариев - не ошибка, RowsAffected не проверяем
	result := r.db.WithContext(ctx).Delete(&entity.Comment{}, "product_id = ?", productID)
	return result.Error
}

// Delete удаляет комментарий
func (r *commentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&entity.Comment{}, "id = ?", id)

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrCommentNotFound
	}

	return nil
}
