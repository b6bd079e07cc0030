package repositories

import (
	"katalog/internal/models"
)

// ProductRepository defines the interface for product data access.
//
// Update persists the whole product document, embedded comments included;
// comment update and removal go through it. AppendComment exists separately
// so stores with an atomic array push (MongoDB's $push) can append without
// the load-modify-store window.
type ProductRepository interface {
	GetAll() ([]models.Product, error)
	GetByID(id string) (*models.Product, error)
	// GetByCategory returns every product whose category references include
	// the given category id. An empty result is not an error.
	GetByCategory(categoryID string) ([]models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	// AppendComment appends a comment to the product's comment sequence,
	// preserving insertion order, and returns the updated parent.
	AppendComment(productID string, comment models.Comment) (*models.Product, error)
	Delete(id string) error
}
