package service

import (
	"context"
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

const productsCacheTTL = time.Hour

// CatalogService обрабатывает бизнес-логику каталога товаров
// Координирует работу репозиториев и Redis кеша
type CatalogService struct {
	productRepo repository.ProductRepository
	commentRepo repository.CommentRepository
	cache       util.Cache
}

// NewCatalogService создает новый сервис каталога с внедрением зависимостей
func NewCatalogService(productRepo repository.ProductRepository, commentRepo repository.CommentRepository, cache util.Cache) *CatalogService {
	return &CatalogService{
		productRepo: productRepo,
		commentRepo: commentRepo,
		cache:       cache,
	}
}

// GetAllProducts получает все товары с кешированием в Redis
// Сначала проверяет кеш, если нет - загружает из БД и кеширует
func (s *CatalogService) GetAllProducts(ctx context.Context) ([]entity.Product, error) {
	products, err := s.cache.GetProducts(ctx)
	if err == nil && products != nil {
		metrics.RecordCacheHit("reviewhub", "products")
		return products, nil
	}
	metrics.RecordCacheMiss("reviewhub", "products")

	products, err = s.productRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get products: %w", err)
	}

	if err := s.cache.SetProducts(ctx, products, productsCacheTTL); err != nil {
		// Данные получены из БД, проблемы с кешем не критичны
		logger.Warn().Err(err).Msg("failed to cache products")
	}

	return products, nil
}

// GetProduct получает товар по ID
func (s *CatalogService) GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	return product, nil
}

// CreateProduct создает новый товар и инвалидирует кеш списка
func (s *CatalogService) CreateProduct(ctx context.Context, req *entity.CreateProductRequest) (*entity.Product, error) {
	now := time.Now()
	product := &entity.Product{
		ID:          uuid.New(),
		Name:        req.Name,
		Description: req.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	s.invalidateProducts(ctx)

	return product, nil
}

// UpdateProduct обновляет имя/описание товара и инвалидирует кеш списка
func (s *CatalogService) UpdateProduct(ctx context.Context, id uuid.UUID, req *entity.UpdateProductRequest) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	// Обновляем только переданные поля (частичное обновление)
	if req.Name != "" {
		product.Name = req.Name
	}
	if req.Description != "" {
		product.Description = req.Description
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	s.invalidateProducts(ctx)

	return product, nil
}

// DeleteProduct удаляет товар вместе с его комментариями и инвалидирует оба кеша
// Комментарии удаляются каскадно: комментарий всегда ссылается на существующий товар
func (s *CatalogService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if err := s.productRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return ErrProductNotFound
		}
		return fmt.Errorf("failed to delete product: %w", err)
	}

	if err := s.commentRepo.DeleteByProductID(ctx, id); err != nil {
		return fmt.Errorf("failed to delete product comments: %w", err)
	}

	s.invalidateProducts(ctx)

	if err := s.cache.DeleteProductComments(ctx, id); err != nil {
		logger.Warn().Err(err).Str("product_id", id.String()).Msg("failed to invalidate product comments cache")
	}

	return nil
}

func (s *CatalogService) invalidateProducts(ctx context.Context) {
	if err := s.cache.DeleteProducts(ctx); err != nil {
		// Товар уже записан, проблемы с кешем не критичны
		logger.Warn().Err(err).Msg("failed to invalidate products cache")
	}
}
