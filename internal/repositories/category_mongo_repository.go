package repositories

import (
	"fmt"

	"katalog/internal/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoCategoryRepository is a MongoDB implementation of CategoryRepository.
type MongoCategoryRepository struct {
	coll *mongo.Collection
}

// NewMongoCategoryRepository creates a new instance of MongoCategoryRepository.
func NewMongoCategoryRepository(coll *mongo.Collection) *MongoCategoryRepository {
	return &MongoCategoryRepository{
		coll: coll,
	}
}

// GetAll retrieves all categories.
func (r *MongoCategoryRepository) GetAll() ([]models.Category, error) {
	ctx, cancel := mongoCtx()
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to get all categories: %w", err)
	}
	defer cursor.Close(ctx)

	var categories []models.Category
	if err := cursor.All(ctx, &categories); err != nil {
		return nil, fmt.Errorf("failed to decode categories: %w", err)
	}
	return categories, nil
}

// GetByID retrieves a single category by its ID.
func (r *MongoCategoryRepository) GetByID(id string) (*models.Category, error) {
	ctx, cancel := mongoCtx()
	defer cancel()

	var category models.Category
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&category); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("category with ID %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get category by ID %s: %w", id, err)
	}
	return &category, nil
}

// GetByIDs retrieves the categories matching the given id set in one query.
func (r *MongoCategoryRepository) GetByIDs(ids []string) ([]models.Category, error) {
	if len(ids) == 0 {
		return []models.Category{}, nil
	}

	ctx, cancel := mongoCtx()
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("failed to get categories by IDs: %w", err)
	}
	defer cursor.Close(ctx)

	var categories []models.Category
	if err := cursor.All(ctx, &categories); err != nil {
		return nil, fmt.Errorf("failed to decode categories: %w", err)
	}
	return categories, nil
}

// Create inserts a new category document.
func (r *MongoCategoryRepository) Create(category *models.Category) error {
	ctx, cancel := mongoCtx()
	defer cancel()

	if category.ID == "" {
		category.ID = uuid.New().String()
	}
	if _, err := r.coll.InsertOne(ctx, category); err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}
	return nil
}

// Update replaces an existing category document.
func (r *MongoCategoryRepository) Update(category *models.Category) error {
	ctx, cancel := mongoCtx()
	defer cancel()

	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": category.ID}, category)
	if err != nil {
		return fmt.Errorf("failed to update category: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("category with ID %s not found for update: %w", category.ID, ErrNotFound)
	}
	return nil
}

// Delete removes a category document by its ID.
func (r *MongoCategoryRepository) Delete(id string) error {
	ctx, cancel := mongoCtx()
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("category with ID %s not found for deletion: %w", id, ErrNotFound)
	}
	return nil
}
