package repositories

import (
	"fmt"

	"katalog/internal/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoProductRepository is a MongoDB implementation of ProductRepository.
// Products are stored as single documents with their comments embedded, so
// every write below is atomic per document.
type MongoProductRepository struct {
	coll *mongo.Collection
}

// NewMongoProductRepository creates a new instance of MongoProductRepository.
func NewMongoProductRepository(coll *mongo.Collection) *MongoProductRepository {
	return &MongoProductRepository{
		coll: coll,
	}
}

// GetAll retrieves all products from the collection.
func (r *MongoProductRepository) GetAll() ([]models.Product, error) {
	ctx, cancel := mongoCtx()
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to get all products: %w", err)
	}
	defer cursor.Close(ctx)

	var products []models.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}
	return products, nil
}

// GetByID retrieves a single product by its ID.
func (r *MongoProductRepository) GetByID(id string) (*models.Product, error) {
	ctx, cancel := mongoCtx()
	defer cancel()

	var product models.Product
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&product); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("product with ID %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get product by ID %s: %w", id, err)
	}
	return &product, nil
}

// GetByCategory retrieves all products whose category refs include the id.
func (r *MongoProductRepository) GetByCategory(categoryID string) ([]models.Product, error) {
	ctx, cancel := mongoCtx()
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{"category": categoryID})
	if err != nil {
		return nil, fmt.Errorf("failed to get products by category %s: %w", categoryID, err)
	}
	defer cursor.Close(ctx)

	var products []models.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}
	return products, nil
}

// Create inserts a new product document.
func (r *MongoProductRepository) Create(product *models.Product) error {
	ctx, cancel := mongoCtx()
	defer cancel()

	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	// Nil slices would be stored as null, which breaks a later $push.
	if product.CategoryIDs == nil {
		product.CategoryIDs = []string{}
	}
	if product.Comments == nil {
		product.Comments = []models.Comment{}
	}

	if _, err := r.coll.InsertOne(ctx, product); err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// Update replaces the whole product document, embedded comments included.
func (r *MongoProductRepository) Update(product *models.Product) error {
	ctx, cancel := mongoCtx()
	defer cancel()

	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": product.ID}, product)
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("product with ID %s not found for update: %w", product.ID, ErrNotFound)
	}
	return nil
}

// AppendComment appends a comment with an atomic $push and returns the
// updated parent document.
func (r *MongoProductRepository) AppendComment(productID string, comment models.Comment) (*models.Product, error) {
	ctx, cancel := mongoCtx()
	defer cancel()

	var updated models.Product
	err := r.coll.FindOneAndUpdate(
		ctx,
		bson.M{"_id": productID},
		bson.M{"$push": bson.M{"comments": comment}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("product with ID %s: %w", productID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to append comment to product %s: %w", productID, err)
	}
	return &updated, nil
}

// Delete removes a product document by its ID.
func (r *MongoProductRepository) Delete(id string) error {
	ctx, cancel := mongoCtx()
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("product with ID %s not found for deletion: %w", id, ErrNotFound)
	}
	return nil
}
