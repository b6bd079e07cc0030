package services

import (
	"katalog/internal/models"
	"katalog/internal/repositories"
	"katalog/internal/validation"
)

// CategoryService handles business logic related to categories.
type CategoryService struct {
	repo repositories.CategoryRepository
}

// NewCategoryService creates a new CategoryService.
func NewCategoryService(repo repositories.CategoryRepository) *CategoryService {
	return &CategoryService{
		repo: repo,
	}
}

// GetAllCategories retrieves all categories.
func (s *CategoryService) GetAllCategories() ([]models.Category, error) {
	return s.repo.GetAll()
}

// GetCategoryByID retrieves a single category by its ID.
func (s *CategoryService) GetCategoryByID(id string) (*models.Category, error) {
	return s.repo.GetByID(id)
}

// CreateCategory creates a new category from a validated payload.
func (s *CategoryService) CreateCategory(payload validation.CategoryPayload) (*models.Category, error) {
	category := &models.Category{
		Name:     payload.Name,
		ImageURL: payload.ImageURL,
	}
	if err := s.repo.Create(category); err != nil {
		return nil, err
	}
	return category, nil
}

// UpdateCategory overwrites the name of an existing category. Only the name
// is touched; the image url keeps its stored value.
func (s *CategoryService) UpdateCategory(id string, payload validation.CategoryPayload) (*models.Category, error) {
	category, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	category.Name = payload.Name

	if err := s.repo.Update(category); err != nil {
		return nil, err
	}
	return category, nil
}

// DeleteCategory removes a category and returns the removed snapshot.
func (s *CategoryService) DeleteCategory(id string) (*models.Category, error) {
	category, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Delete(id); err != nil {
		return nil, err
	}
	return category, nil
}
