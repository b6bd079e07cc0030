package repositories

import (
	"fmt"
	"sync"

	"katalog/internal/models"

	"github.com/google/uuid"
)

// MockProductRepository is an in-memory implementation of ProductRepository.
type MockProductRepository struct {
	products map[string]models.Product
	mu       sync.RWMutex
}

// NewMockProductRepository creates a new instance of MockProductRepository.
func NewMockProductRepository() *MockProductRepository {
	return &MockProductRepository{
		products: make(map[string]models.Product),
	}
}

// cloneProduct copies the slices so callers cannot alias stored state.
func cloneProduct(p models.Product) models.Product {
	out := p
	out.CategoryIDs = append([]string(nil), p.CategoryIDs...)
	out.Comments = append([]models.Comment(nil), p.Comments...)
	return out
}

// GetAll returns all products.
func (r *MockProductRepository) GetAll() ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	productList := make([]models.Product, 0, len(r.products))
	for _, p := range r.products {
		productList = append(productList, cloneProduct(p))
	}
	return productList, nil
}

// GetByID returns a product by its ID.
func (r *MockProductRepository) GetByID(id string) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.products[id]
	if !ok {
		return nil, fmt.Errorf("product with ID %s: %w", id, ErrNotFound)
	}
	product = cloneProduct(product)
	return &product, nil
}

// GetByCategory returns all products referencing the given category.
func (r *MockProductRepository) GetByCategory(categoryID string) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matches := make([]models.Product, 0)
	for _, p := range r.products {
		for _, cid := range p.CategoryIDs {
			if cid == categoryID {
				matches = append(matches, cloneProduct(p))
				break
			}
		}
	}
	return matches, nil
}

// Create adds a new product.
func (r *MockProductRepository) Create(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	r.products[product.ID] = cloneProduct(*product)
	return nil
}

// Update modifies an existing product, embedded comments included.
func (r *MockProductRepository) Update(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.products[product.ID]
	if !ok {
		return fmt.Errorf("product with ID %s not found for update: %w", product.ID, ErrNotFound)
	}
	r.products[product.ID] = cloneProduct(*product)
	return nil
}

// AppendComment appends a comment to the product's comment sequence under
// the write lock, so the append is atomic with respect to other calls.
func (r *MockProductRepository) AppendComment(productID string, comment models.Comment) (*models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	product, ok := r.products[productID]
	if !ok {
		return nil, fmt.Errorf("product with ID %s: %w", productID, ErrNotFound)
	}
	product = cloneProduct(product)
	product.Comments = append(product.Comments, comment)
	r.products[productID] = product

	updated := cloneProduct(product)
	return &updated, nil
}

// Delete removes a product by its ID.
func (r *MockProductRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.products[id]
	if !ok {
		return fmt.Errorf("product with ID %s not found for deletion: %w", id, ErrNotFound)
	}
	delete(r.products, id)
	return nil
}
