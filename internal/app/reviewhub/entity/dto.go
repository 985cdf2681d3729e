package entity

import (
	"time"

	"github.com/google/uuid"
)

// RegisterRequest - запрос на регистрацию пользователя
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=150"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// LoginRequest - запрос на вход
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// TokenResponse - ответ с access токеном
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"` // время жизни access token в секундах
}

// CreateProductRequest - запрос на создание товара (только администратор)
type CreateProductRequest struct {
	Name        string `json:"name" validate:"required,max=200"`
	Description string `json:"description" validate:"omitempty,max=2000"`
}

// UpdateProductRequest - запрос на обновление товара (только администратор)
type UpdateProductRequest struct {
	Name        string `json:"name" validate:"omitempty,max=200"`
	Description string `json:"description" validate:"omitempty,max=2000"`
}

// CreateCommentRequest - запрос на создание комментария
// Автор и флаг одобрения назначаются сервером и не принимаются от клиента
type CreateCommentRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Content   string    `json:"content" validate:"required,min=1,max=2000"`
}

// UpdateCommentRequest - запрос на обновление комментария (только автор)
type UpdateCommentRequest struct {
	Content string `json:"content" validate:"required,min=1,max=2000"`
}

// CommentResponse - общая схема комментария для ответов
// TimeAgo вычисляется в момент сериализации из CreatedAt
type CommentResponse struct {
	ID         uuid.UUID `json:"id"`
	ProductID  uuid.UUID `json:"product_id"`
	UserID     uuid.UUID `json:"user_id"`
	Username   string    `json:"username"`
	Content    string    `json:"content"`
	IsApproved bool      `json:"is_approved"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	TimeAgo    string    `json:"time_ago"`
}

// CommentListResponse - ответ со списком комментариев
type CommentListResponse struct {
	Comments []CommentResponse `json:"comments"`
	Total    int               `json:"total"`
}

// ErrorResponse - стандартный ответ об ошибке
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// SuccessResponse - стандартный ответ об успехе
type SuccessResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}
