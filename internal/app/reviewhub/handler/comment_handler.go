package handler

import (
	"context"
	"errors"
	"net/http"

	"reviewhub/internal/app/reviewhub/entity"
	"reviewhub/internal/app/reviewhub/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

const moderationLogDefaultLimit = 100

type CommentServiceInterface interface {
	CreateComment(ctx context.Context, principal entity.Principal, req *entity.CreateCommentRequest) (*entity.Comment, error)
	ListComments(ctx context.Context, principal entity.Principal) ([]entity.Comment, error)
	GetComment(ctx context.Context, principal entity.Principal, id uuid.UUID) (*entity.Comment, error)
	UpdateComment(ctx context.Context, principal entity.Principal, id uuid.UUID, req *entity.UpdateCommentRequest) (*entity.Comment, error)
	DeleteComment(ctx context.Context, principal entity.Principal, id uuid.UUID) error
	ApproveComment(ctx context.Context, principal entity.Principal, id uuid.UUID) (*entity.Comment, error)
	RejectComment(ctx context.Context, principal entity.Principal, id uuid.UUID) (*entity.Comment, error)
	ListPending(ctx context.Context, principal entity.Principal) ([]entity.Comment, error)
	ListApproved(ctx context.Context, principal entity.Principal) ([]entity.Comment, error)
	GetModerationLog(ctx context.Context, principal entity.Principal, limit int64) ([]entity.ModerationRecord, error)
}

type CommentHandler struct {
	commentService CommentServiceInterface
	validator      *validator.Validate
}

func NewCommentHandler(commentService CommentServiceInterface) *CommentHandler {
	return &CommentHandler{
		commentService: commentService,
		validator:      validator.New(),
	}
}

// CreateComment создает комментарий от имени аутентифицированного пользователя
// Автор и флаг одобрения назначаются сервером
func (h *CommentHandler) CreateComment(c *gin.Context) {
	principal, ok := principalFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req entity.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	comment, err := h.commentService.CreateComment(c.Request.Context(), principal, &req)
	if err != nil {
		// Ссылка на несуществующий товар - ошибка данных запроса
		if errors.Is(err, service.ErrProductNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Product does not exist"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create comment"})
		return
	}

	c.JSON(http.StatusCreated, toCommentResponse(comment))
}

// ListComments возвращает комментарии, видимые текущему пользователю
func (h *CommentHandler) ListComments(c *gin.Context) {
	principal, ok := principalFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	comments, err := h.commentService.ListComments(c.Request.Context(), principal)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list comments"})
		return
	}

	c.JSON(http.StatusOK, toCommentListResponse(comments))
}

// GetComment возвращает один комментарий, если он видим текущему пользователю
func (h *CommentHandler) GetComment(c *gin.Context) {
	principal, ok := principalFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	id, err := uuid.Parse(c.Param("comment_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid comment ID"})
		return
	}

	comment, err := h.commentService.GetComment(c.Request.Context(), principal, id)
	if err != nil {
		if errors.Is(err, service.ErrCommentNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Comment not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get comment"})
		return
	}

	c.JSON(http.StatusOK, toCommentResponse(comment))
}

// UpdateComment обновляет текст комментария (только автор)
func (h *CommentHandler) UpdateComment(c *gin.Context) {
	principal, ok := principalFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	id, err := uuid.Parse(c.Param("comment_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid comment ID"})
		return
	}

	var req entity.UpdateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	comment, err := h.commentService.UpdateComment(c.Request.Context(), principal, id, &req)
	if err != nil {
		if errors.Is(err, service.ErrCommentNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Comment not found"})
			return
		}
		if errors.Is(err, service.ErrForbidden) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update comment"})
		return
	}

	c.JSON(http.StatusOK, toCommentResponse(comment))
}

// DeleteComment удаляет комментарий (автор или администратор)
func (h *CommentHandler) DeleteComment(c *gin.Context) {
	principal, ok := principalFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	id, err := uuid.Parse(c.Param("comment_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid comment ID"})
		return
	}

	if err := h.commentService.DeleteComment(c.Request.Context(), principal, id); err != nil {
		if errors.Is(err, service.ErrCommentNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Comment not found"})
			return
		}
		if errors.Is(err, service.ErrForbidden) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete comment"})
		return
	}

	c.JSON(http.StatusOK, entity.SuccessResponse{
		Message: "Comment deleted successfully",
	})
}

// ApproveComment одобряет комментарий (только администратор)
func (h *CommentHandler) ApproveComment(c *gin.Context) {
	h.moderate(c, h.commentService.ApproveComment)
}

// RejectComment отклоняет комментарий (только администратор)
func (h *CommentHandler) RejectComment(c *gin.Context) {
	h.moderate(c, h.commentService.RejectComment)
}

func (h *CommentHandler) moderate(c *gin.Context, action func(context.Context, entity.Principal, uuid.UUID) (*entity.Comment, error)) {
	principal, ok := principalFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	id, err := uuid.Parse(c.Param("comment_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid comment ID"})
		return
	}

	comment, err := action(c.Request.Context(), principal, id)
	if err != nil {
		if errors.Is(err, service.ErrForbidden) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
			return
		}
		if errors.Is(err, service.ErrCommentNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Comment not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to moderate comment"})
		return
	}

	c.JSON(http.StatusOK, toCommentResponse(comment))
}

// ListPending возвращает очередь модерации (только администратор)
func (h *CommentHandler) ListPending(c *gin.Context) {
	h.listModerated(c, h.commentService.ListPending)
}

// ListApproved возвращает все одобренные комментарии (только администратор)
func (h *CommentHandler) ListApproved(c *gin.Context) {
	h.listModerated(c, h.commentService.ListApproved)
}

func (h *CommentHandler) listModerated(c *gin.Context, list func(context.Context, entity.Principal) ([]entity.Comment, error)) {
	principal, ok := principalFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	comments, err := list(c.Request.Context(), principal)
	if err != nil {
		if errors.Is(err, service.ErrForbidden) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list comments"})
		return
	}

	c.JSON(http.StatusOK, toCommentListResponse(comments))
}

// GetModerationLog возвращает журнал модерации (только администратор)
func (h *CommentHandler) GetModerationLog(c *gin.Context) {
	principal, ok := principalFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	records, err := h.commentService.GetModerationLog(c.Request.Context(), principal, moderationLogDefaultLimit)
	if err != nil {
		if errors.Is(err, service.ErrForbidden) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get moderation log"})
		return
	}

	c.JSON(http.StatusOK, records)
}
