package repositories

import (
	"katalog/internal/models"
)

// CategoryRepository defines the interface for category data access.
type CategoryRepository interface {
	GetAll() ([]models.Category, error)
	GetByID(id string) (*models.Category, error)
	// GetByIDs fetches the categories for a set of ids in one call; ids
	// without a matching document are silently skipped.
	GetByIDs(ids []string) ([]models.Category, error)
	Create(category *models.Category) error
	Update(category *models.Category) error
	Delete(id string) error
}
