package repositories

import (
	"fmt"

	"katalog/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMProductRepository is a GORM implementation of ProductRepository.
// Category refs and embedded comments live in JSON-serialized columns, so a
// product row is one document the same way a Mongo product is.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

// GetAll retrieves all products from the database.
func (r *GORMProductRepository) GetAll() ([]models.Product, error) {
	var products []models.Product
	if err := r.db.Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to get all products: %w", err)
	}
	return products, nil
}

// GetByID retrieves a single product by its ID from the database.
func (r *GORMProductRepository) GetByID(id string) (*models.Product, error) {
	var product models.Product
	if err := r.db.First(&product, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("product with ID %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get product by ID %s: %w", id, err)
	}
	return &product, nil
}

// GetByCategory retrieves all products referencing the given category.
// The refs sit inside a JSON column and there is no containment query that
// works on both sqlite and postgres, so the filter runs in Go.
func (r *GORMProductRepository) GetByCategory(categoryID string) ([]models.Product, error) {
	products, err := r.GetAll()
	if err != nil {
		return nil, err
	}

	matches := make([]models.Product, 0)
	for _, p := range products {
		for _, cid := range p.CategoryIDs {
			if cid == categoryID {
				matches = append(matches, p)
				break
			}
		}
	}
	return matches, nil
}

// Create creates a new product in the database.
func (r *GORMProductRepository) Create(product *models.Product) error {
	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	if err := r.db.Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// Update overwrites all fields of an existing product, including zero
// values; Select("*") keeps cleared fields from being skipped.
func (r *GORMProductRepository) Update(product *models.Product) error {
	res := r.db.Model(&models.Product{}).Where("id = ?", product.ID).Select("*").Updates(product)
	if res.Error != nil {
		return fmt.Errorf("failed to update product: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("product with ID %s not found for update: %w", product.ID, ErrNotFound)
	}
	return nil
}

// AppendComment loads the product, appends to its comment sequence and
// writes the row back. Relational backends have no atomic array push, so
// this carries the documented read-modify-write window.
func (r *GORMProductRepository) AppendComment(productID string, comment models.Comment) (*models.Product, error) {
	product, err := r.GetByID(productID)
	if err != nil {
		return nil, err
	}

	product.Comments = append(product.Comments, comment)
	if err := r.Update(product); err != nil {
		return nil, err
	}
	return product, nil
}

// Delete deletes a product by its ID from the database.
func (r *GORMProductRepository) Delete(id string) error {
	res := r.db.Delete(&models.Product{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete product: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("product with ID %s not found for deletion: %w", id, ErrNotFound)
	}
	return nil
}
