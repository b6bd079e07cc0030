package services_test

import (
	"testing"

	"katalog/internal/repositories"
	"katalog/internal/services"
	"katalog/internal/validation"

	"github.com/stretchr/testify/assert"
)

func TestCategoryService_CreateAndGet(t *testing.T) {
	repo := repositories.NewMockCategoryRepository()
	svc := services.NewCategoryService(repo)

	created, err := svc.CreateCategory(validation.CategoryPayload{Name: "Fiction", ImageURL: "http://img/fiction.png"})
	assert.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Fiction", created.Name)

	got, err := svc.GetCategoryByID(created.ID)
	assert.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "http://img/fiction.png", got.ImageURL)

	_, err = svc.GetCategoryByID("missing")
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestCategoryService_GetAllCategories(t *testing.T) {
	repo := repositories.NewMockCategoryRepository()
	svc := services.NewCategoryService(repo)

	all, err := svc.GetAllCategories()
	assert.NoError(t, err)
	assert.Empty(t, all)

	_, err = svc.CreateCategory(validation.CategoryPayload{Name: "Fiction"})
	assert.NoError(t, err)
	_, err = svc.CreateCategory(validation.CategoryPayload{Name: "History"})
	assert.NoError(t, err)

	all, err = svc.GetAllCategories()
	assert.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestCategoryService_UpdateCategory(t *testing.T) {
	repo := repositories.NewMockCategoryRepository()
	svc := services.NewCategoryService(repo)

	created, err := svc.CreateCategory(validation.CategoryPayload{Name: "Fiction", ImageURL: "http://img/fiction.png"})
	assert.NoError(t, err)

	updated, err := svc.UpdateCategory(created.ID, validation.CategoryPayload{Name: "Science Fiction", ImageURL: "http://img/other.png"})
	assert.NoError(t, err)
	assert.Equal(t, "Science Fiction", updated.Name)
	// Only the name is overwritten, the stored image url stays.
	assert.Equal(t, "http://img/fiction.png", updated.ImageURL)

	_, err = svc.UpdateCategory("missing", validation.CategoryPayload{Name: "Whatever"})
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestCategoryService_DeleteCategory(t *testing.T) {
	repo := repositories.NewMockCategoryRepository()
	svc := services.NewCategoryService(repo)

	created, err := svc.CreateCategory(validation.CategoryPayload{Name: "Fiction"})
	assert.NoError(t, err)

	deleted, err := svc.DeleteCategory(created.ID)
	assert.NoError(t, err)
	assert.Equal(t, "Fiction", deleted.Name)

	_, err = svc.GetCategoryByID(created.ID)
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	_, err = svc.DeleteCategory(created.ID)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}
