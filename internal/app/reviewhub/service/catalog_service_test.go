package service

import (
	"context"
	"errors"
	"testing"

	"reviewhub/internal/app/reviewhub/entity"
	"reviewhub/internal/app/reviewhub/repository"
	"reviewhub/internal/app/reviewhub/repository/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newCatalogService() (*CatalogService, *mocks.MockProductRepository, *mocks.MockCommentRepository, *mocks.MockCache) {
	productRepo := new(mocks.MockProductRepository)
	commentRepo := new(mocks.MockCommentRepository)
	cache := new(mocks.MockCache)
	return NewCatalogService(productRepo, commentRepo, cache), productRepo, commentRepo, cache
}

func TestGetAllProducts_CacheMiss(t *testing.T) {
	svc, productRepo, _, cache := newCatalogService()
	ctx := context.Background()

	products := []entity.Product{
		{ID: uuid.New(), Name: "Laptop"},
		{ID: uuid.New(), Name: "Phone"},
	}

	cache.On("GetProducts", ctx).Return(nil, nil)
	productRepo.On("GetAll", ctx).Return(products, nil)
	cache.On("SetProducts", ctx, products, mock.AnythingOfType("time.Duration")).Return(nil)

	result, err := svc.GetAllProducts(ctx)

	assert.NoError(t, err)
	assert.Len(t, result, 2)
	cache.AssertCalled(t, "SetProducts", ctx, products, mock.AnythingOfType("time.Duration"))
}

func TestGetAllProducts_CacheHit(t *testing.T) {
	svc, productRepo, _, cache := newCatalogService()
	ctx := context.Background()

	cached := []entity.Product{{ID: uuid.New(), Name: "Laptop"}}
	cache.On("GetProducts", ctx).Return(cached, nil)

	result, err := svc.GetAllProducts(ctx)

	assert.NoError(t, err)
	assert.Len(t, result, 1)
	productRepo.AssertNotCalled(t, "GetAll", mock.Anything)
}

func TestGetAllProducts_CacheErrorFallsThrough(t *testing.T) {
	svc, productRepo, _, cache := newCatalogService()
	ctx := context.Background()

	products := []entity.Product{{ID: uuid.New(), Name: "Laptop"}}

	cache.On("GetProducts", ctx).Return(nil, errors.New("redis down"))
	productRepo.On("GetAll", ctx).Return(products, nil)
	cache.On("SetProducts", ctx, products, mock.AnythingOfType("time.Duration")).Return(errors.New("redis down"))

	result, err := svc.GetAllProducts(ctx)

	assert.NoError(t, err)
	assert.Len(t, result, 1)
}

func TestGetProduct_NotFound(t *testing.T) {
	svc, productRepo, _, _ := newCatalogService()
	ctx := context.Background()
	productID := uuid.New()

	productRepo.On("GetByID", ctx, productID).Return(nil, repository.ErrProductNotFound)

	product, err := svc.GetProduct(ctx, productID)

	assert.Nil(t, product)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestCreateProduct_InvalidatesCache(t *testing.T) {
	svc, productRepo, _, cache := newCatalogService()
	ctx := context.Background()

	productRepo.On("Create", ctx, mock.AnythingOfType("*entity.Product")).Return(nil)
	cache.On("DeleteProducts", ctx).Return(nil)

	product, err := svc.CreateProduct(ctx, &entity.CreateProductRequest{
		Name:        "Laptop",
		Description: "Fast one",
	})

	assert.NoError(t, err)
	assert.Equal(t, "Laptop", product.Name)
	assert.NotEqual(t, uuid.Nil, product.ID)
	cache.AssertCalled(t, "DeleteProducts", ctx)
}

func TestUpdateProduct_PartialUpdate(t *testing.T) {
	svc, productRepo, _, cache := newCatalogService()
	ctx := context.Background()
	productID := uuid.New()

	existing := &entity.Product{ID: productID, Name: "Laptop", Description: "Old"}
	productRepo.On("GetByID", ctx, productID).Return(existing, nil)
	productRepo.On("Update", ctx, mock.AnythingOfType("*entity.Product")).Return(nil)
	cache.On("DeleteProducts", ctx).Return(nil)

	// Пустое имя не затирает существующее
	product, err := svc.UpdateProduct(ctx, productID, &entity.UpdateProductRequest{
		Description: "New",
	})

	assert.NoError(t, err)
	assert.Equal(t, "Laptop", product.Name)
	assert.Equal(t, "New", product.Description)
}

func TestDeleteProduct_CascadesToComments(t *testing.T) {
	svc, productRepo, commentRepo, cache := newCatalogService()
	ctx := context.Background()
	productID := uuid.New()

	productRepo.On("Delete", ctx, productID).Return(nil)
	commentRepo.On("DeleteByProductID", ctx, productID).Return(nil)
	cache.On("DeleteProducts", ctx).Return(nil)
	cache.On("DeleteProductComments", ctx, productID).Return(nil)

	err := svc.DeleteProduct(ctx, productID)

	// Комментарии удаленного товара не должны пережить товар:
	// иначе они остаются видимыми в списках и очереди модерации
	assert.NoError(t, err)
	commentRepo.AssertCalled(t, "DeleteByProductID", ctx, productID)
}

func TestDeleteProduct_CommentCascadeFailure(t *testing.T) {
	svc, productRepo, commentRepo, _ := newCatalogService()
	ctx := context.Background()
	productID := uuid.New()

	productRepo.On("Delete", ctx, productID).Return(nil)
	commentRepo.On("DeleteByProductID", ctx, productID).Return(errors.New("db down"))

	err := svc.DeleteProduct(ctx, productID)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to delete product comments")
}

func TestDeleteProduct_InvalidatesBothCaches(t *testing.T) {
	svc, productRepo, commentRepo, cache := newCatalogService()
	ctx := context.Background()
	productID := uuid.New()

	productRepo.On("Delete", ctx, productID).Return(nil)
	commentRepo.On("DeleteByProductID", ctx, productID).Return(nil)
	cache.On("DeleteProducts", ctx).Return(nil)
	cache.On("DeleteProductComments", ctx, productID).Return(nil)

	err := svc.DeleteProduct(ctx, productID)

	assert.NoError(t, err)
	cache.AssertCalled(t, "DeleteProducts", ctx)
	cache.AssertCalled(t, "DeleteProductComments", ctx, productID)
}

func TestDeleteProduct_NotFound(t *testing.T) {
	svc, productRepo, commentRepo, _ := newCatalogService()
	ctx := context.Background()
	productID := uuid.New()

	productRepo.On("Delete", ctx, productID).Return(repository.ErrProductNotFound)

	err := svc.DeleteProduct(ctx, productID)

	assert.ErrorIs(t, err, ErrProductNotFound)
	commentRepo.AssertNotCalled(t, "DeleteByProductID", mock.Anything, mock.Anything)
}
