package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"reviewhub/internal/app/reviewhub/entity"
	"reviewhub/internal/app/reviewhub/repository"
	"reviewhub/internal/app/reviewhub/util"
	"reviewhub/pkg/logger"
	"reviewhub/pkg/metrics"

	"github.com/google/uuid"
)

const productCommentsCacheTTL = 10 * time.Minute

// CommentService обрабатывает бизнес-логику комментариев и их модерации
// Координирует работу репозиториев, Redis кеша, журнала модерации и Kafka
type CommentService struct {
	commentRepo   repository.CommentRepository
	productRepo   repository.ProductRepository
	moderationLog repository.ModerationLogRepository
	cache         util.Cache
	kafkaProducer util.MessagePublisher
}

// NewCommentService создает новый сервис комментариев с внедрением зависимостей
func NewCommentService(
	commentRepo repository.CommentRepository,
	productRepo repository.ProductRepository,
	moderationLog repository.ModerationLogRepository,
	cache util.Cache,
	kafkaProducer util.MessagePublisher,
) *CommentService {
	return &CommentService{
		commentRepo:   commentRepo,
		productRepo:   productRepo,
		moderationLog: moderationLog,
		cache:         cache,
		kafkaProducer: kafkaProducer,
	}
}

// CreateComment создает новый комментарий
// Автор берется из principal, флаг одобрения принудительно false -
// что бы клиент ни прислал, комментарий рождается неодобренным
func (s *CommentService) CreateComment(ctx context.Context, principal entity.Principal, req *entity.CreateCommentRequest) (*entity.Comment, error) {
	// Комментарий всегда ссылается на существующий товар
	if _, err := s.productRepo.GetByID(ctx, req.ProductID); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to verify product: %w", err)
	}

	now := time.Now()
	comment := &entity.Comment{
		ID:         uuid.New(),
		ProductID:  req.ProductID,
		UserID:     principal.UserID,
		Username:   principal.Username,
		Content:    req.Content,
		IsApproved: false,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	metrics.CommentsCreated.Inc()

	s.publishCommentEvent(ctx, "COMMENT_CREATED", comment)

	return comment, nil
}

// ListComments возвращает комментарии, видимые principal
// Администратор видит все комментарии, обычный пользователь - только свои,
// чужие одобренные комментарии в этот список намеренно не входят:
// они доступны только через выборку по товару
func (s *CommentService) ListComments(ctx context.Context, principal entity.Principal) ([]entity.Comment, error) {
	var (
		comments []entity.Comment
		err      error
	)

	if principal.Admin {
		comments, err = s.commentRepo.GetAll(ctx)
	} else {
		comments, err = s.commentRepo.GetByUserID(ctx, principal.UserID)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}

	return comments, nil
}

// GetComment получает комментарий по ID с проверкой видимости
// Невидимый комментарий неотличим от несуществующего
func (s *CommentService) GetComment(ctx context.Context, principal entity.Principal, id uuid.UUID) (*entity.Comment, error) {
	comment, err := s.commentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCommentNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, fmt.Errorf("failed to get comment: %w", err)
	}

	if !principal.CanObserve(comment) {
		return nil, ErrCommentNotFound
	}

	return comment, nil
}

// UpdateComment обновляет текст комментария, правки доступны только автору
func (s *CommentService) UpdateComment(ctx context.Context, principal entity.Principal, id uuid.UUID, req *entity.UpdateCommentRequest) (*entity.Comment, error) {
	comment, err := s.commentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCommentNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, fmt.Errorf("failed to get comment: %w", err)
	}

	if !principal.Owns(comment) {
		return nil, ErrForbidden
	}

	comment.Content = req.Content
	comment.UpdatedAt = time.Now()

	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, fmt.Errorf("failed to update comment: %w", err)
	}

	// Одобренный комментарий виден в публичной выборке товара
	if comment.IsApproved {
		s.invalidateProductComments(ctx, comment.ProductID)
	}

	return comment, nil
}

// DeleteComment удаляет комментарий, доступно автору и администратору
func (s *CommentService) DeleteComment(ctx context.Context, principal entity.Principal, id uuid.UUID) error {
	comment, err := s.commentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCommentNotFound) {
			return ErrCommentNotFound
		}
		return fmt.Errorf("failed to get comment: %w", err)
	}

	if !principal.CanDelete(comment) {
		return ErrForbidden
	}

	if err := s.commentRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}

	s.invalidateProductComments(ctx, comment.ProductID)

	return nil
}

// ApproveComment выставляет флаг одобрения (только администратор)
// Идемпотентно: повторное одобрение успешно и возвращает текущее состояние
func (s *CommentService) ApproveComment(ctx context.Context, principal entity.Principal, id uuid.UUID) (*entity.Comment, error) {
	return s.moderate(ctx, principal, id, true)
}

// RejectComment снимает флаг одобрения (только администратор)
// Идемпотентно: повторное отклонение успешно и возвращает текущее состояние
func (s *CommentService) RejectComment(ctx context.Context, principal entity.Principal, id uuid.UUID) (*entity.Comment, error) {
	return s.moderate(ctx, principal, id, false)
}

// moderate выполняет approve/reject одной атомарной записью флага
// Проверка роли идет до поиска комментария, чтобы не-администратор
// не мог выяснить существование комментария по коду ответа
func (s *CommentService) moderate(ctx context.Context, principal entity.Principal, id uuid.UUID, approved bool) (*entity.Comment, error) {
	if !principal.CanModerate() {
		return nil, ErrForbidden
	}

	comment, err := s.commentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCommentNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, fmt.Errorf("failed to get comment: %w", err)
	}

	if err := s.commentRepo.SetApproval(ctx, id, approved); err != nil {
		if errors.Is(err, repository.ErrCommentNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, fmt.Errorf("failed to set approval: %w", err)
	}

	comment.IsApproved = approved

	action := entity.ModerationActionReject
	eventType := "COMMENT_REJECTED"
	if approved {
		action = entity.ModerationActionApprove
		eventType = "COMMENT_APPROVED"
	}

	metrics.CommentsModerated.WithLabelValues(action).Inc()

	// Журнал модерации и событие не критичны для самой операции
	record := &entity.ModerationRecord{
		CommentID:   comment.ID.String(),
		ProductID:   comment.ProductID.String(),
		ModeratorID: principal.UserID.String(),
		Action:      action,
	}
	if err := s.moderationLog.Insert(ctx, record); err != nil {
		logger.Error().Err(err).Str("comment_id", id.String()).Msg("failed to write moderation log")
	}

	s.publishCommentEvent(ctx, eventType, comment)

	s.invalidateProductComments(ctx, comment.ProductID)

	return comment, nil
}

// ListPending возвращает все неодобренные комментарии (только администратор)
func (s *CommentService) ListPending(ctx context.Context, principal entity.Principal) ([]entity.Comment, error) {
	return s.listByApproval(ctx, principal, false)
}

// ListApproved возвращает все одобренные комментарии (только администратор)
func (s *CommentService) ListApproved(ctx context.Context, principal entity.Principal) ([]entity.Comment, error) {
	return s.listByApproval(ctx, principal, true)
}

func (s *CommentService) listByApproval(ctx context.Context, principal entity.Principal, approved bool) ([]entity.Comment, error) {
	if !principal.CanModerate() {
		return nil, ErrForbidden
	}

	comments, err := s.commentRepo.GetByApproval(ctx, approved)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}

	return comments, nil
}

// GetApprovedByProduct возвращает одобренные комментарии товара
// Единственный путь, которым чужой комментарий виден не-администратору
// Доступно без аутентификации, ответ кешируется в Redis
func (s *CommentService) GetApprovedByProduct(ctx context.Context, productID uuid.UUID) ([]entity.Comment, error) {
	if _, err := s.productRepo.GetByID(ctx, productID); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to verify product: %w", err)
	}

	comments, err := s.cache.GetProductComments(ctx, productID)
	if err == nil && comments != nil {
		metrics.RecordCacheHit("reviewhub", "product_comments")
		return comments, nil
	}
	metrics.RecordCacheMiss("reviewhub", "product_comments")

	comments, err = s.commentRepo.GetApprovedByProductID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to get comments: %w", err)
	}

	if err := s.cache.SetProductComments(ctx, productID, comments, productCommentsCacheTTL); err != nil {
		logger.Warn().Err(err).Str("product_id", productID.String()).Msg("failed to cache product comments")
	}

	return comments, nil
}

// GetModerationLog возвращает последние записи журнала модерации (только администратор)
func (s *CommentService) GetModerationLog(ctx context.Context, principal entity.Principal, limit int64) ([]entity.ModerationRecord, error) {
	if !principal.CanModerate() {
		return nil, ErrForbidden
	}

	records, err := s.moderationLog.GetRecent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get moderation log: %w", err)
	}

	return records, nil
}

// CountPending считает неодобренные комментарии, используется для метрики очереди модерации
func (s *CommentService) CountPending(ctx context.Context) (int64, error) {
	count, err := s.commentRepo.CountByApproval(ctx, false)
	if err != nil {
		return 0, fmt.Errorf("failed to count pending comments: %w", err)
	}
	return count, nil
}

// publishCommentEvent отправляет событие о комментарии в Kafka
// Ошибка отправки логируется, но не прерывает операцию
func (s *CommentService) publishCommentEvent(ctx context.Context, eventType string, comment *entity.Comment) {
	event := entity.CommentEvent{
		EventType: eventType,
		CommentID: comment.ID.String(),
		ProductID: comment.ProductID.String(),
		UserID:    comment.UserID.String(),
		Timestamp: time.Now(),
	}

	eventData, err := json.Marshal(event)
	if err != nil {
		logger.Error().Err(err).Msg("failed to marshal comment event")
		return
	}

	// Ключ = CommentID для сохранения порядка событий одного комментария
	if err := s.kafkaProducer.PublishMessage(ctx, event.CommentID, eventData); err != nil {
		logger.Error().Err(err).Str("event_type", eventType).Msg("failed to publish comment event")
	}
}

func (s *CommentService) invalidateProductComments(ctx context.Context, productID uuid.UUID) {
	if err := s.cache.DeleteProductComments(ctx, productID); err != nil {
		logger.Warn().Err(err).Str("product_id", productID.String()).Msg("failed to invalidate product comments cache")
	}
}
