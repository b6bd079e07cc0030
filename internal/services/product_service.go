package services

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"katalog/internal/models"
	"katalog/internal/repositories"
	"katalog/internal/validation"

	"github.com/google/uuid"
)

// ProductService handles business logic for products and the comment
// sub-protocol that lives inside them. Category references are resolved here
// with an explicit join against the category repository; the store itself
// never follows references.
type ProductService struct {
	productRepo  repositories.ProductRepository
	categoryRepo repositories.CategoryRepository
	mqClient     EventPublisher
}

// NewProductService creates a new ProductService. mqClient may be nil.
func NewProductService(productRepo repositories.ProductRepository, categoryRepo repositories.CategoryRepository, mqClient EventPublisher) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		mqClient:     mqClient,
	}
}

// GetAllProducts retrieves all products in the listing projection: category
// references resolved to full Category objects, isActive and the embedded
// comment ids suppressed.
func (s *ProductService) GetAllProducts() ([]models.ProductView, error) {
	products, err := s.productRepo.GetAll()
	if err != nil {
		return nil, err
	}

	views := make([]models.ProductView, 0, len(products))
	for _, p := range products {
		categories, err := s.categoryRepo.GetByIDs(p.CategoryIDs)
		if err != nil {
			return nil, err
		}

		comments := make([]models.CommentView, 0, len(p.Comments))
		for _, c := range p.Comments {
			comments = append(comments, models.CommentView{
				Text:      c.Text,
				LikeCount: c.LikeCount,
				Username:  c.Username,
				Date:      c.Date,
				UserID:    c.UserID,
			})
		}

		views = append(views, models.ProductView{
			ID:          p.ID,
			Title:       p.Title,
			Author:      p.Author,
			Description: p.Description,
			ImageURL:    p.ImageURL,
			VideoURL:    p.VideoURL,
			Date:        p.Date,
			Categories:  categories,
			Comments:    comments,
		})
	}
	return views, nil
}

// GetProductByID retrieves a single product with its category references
// resolved to names only.
func (s *ProductService) GetProductByID(id string) (*models.ProductDetail, error) {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	categories, err := s.categoryRepo.GetByIDs(product.CategoryIDs)
	if err != nil {
		return nil, err
	}
	names := make([]models.Category, 0, len(categories))
	for _, c := range categories {
		names = append(names, models.Category{Name: c.Name})
	}

	detail := detailOf(*product)
	detail.Categories = names
	return &detail, nil
}

// GetProductsByCategory retrieves all products referencing the category,
// with the references fully resolved. A malformed category id fails with
// ErrInvalidID; an empty result set fails with ErrNotFound.
func (s *ProductService) GetProductsByCategory(categoryID string) ([]models.ProductDetail, error) {
	if _, err := uuid.Parse(categoryID); err != nil {
		return nil, fmt.Errorf("category ID %s: %w", categoryID, ErrInvalidID)
	}

	products, err := s.productRepo.GetByCategory(categoryID)
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return nil, fmt.Errorf("no products for category %s: %w", categoryID, repositories.ErrNotFound)
	}

	details := make([]models.ProductDetail, 0, len(products))
	for _, p := range products {
		categories, err := s.categoryRepo.GetByIDs(p.CategoryIDs)
		if err != nil {
			return nil, err
		}
		detail := detailOf(p)
		detail.Categories = categories
		details = append(details, detail)
	}
	return details, nil
}

// CreateProduct persists a new product from a validated payload. A supplied
// comments array is stored verbatim, without per-comment validation; only
// missing comment ids and dates get defaults, the way the store assigns
// them on the single-comment path.
func (s *ProductService) CreateProduct(payload validation.ProductPayload) (*models.Product, error) {
	comments := payload.Comments
	for i := range comments {
		if comments[i].ID == "" {
			comments[i].ID = uuid.New().String()
		}
		if comments[i].Date.IsZero() {
			comments[i].Date = time.Now()
		}
	}

	product := &models.Product{
		Title:       payload.Title,
		Author:      payload.Author,
		Description: payload.Description,
		ImageURL:    payload.ImageURL,
		VideoURL:    payload.VideoURL,
		Date:        time.Now(),
		IsActive:    payload.IsActive,
		CategoryIDs: payload.CategoryIDs,
		Comments:    comments,
	}

	if err := s.productRepo.Create(product); err != nil {
		return nil, err
	}

	s.publishEvent("product.created", map[string]interface{}{
		"productID": product.ID,
		"title":     product.Title,
	})

	return product, nil
}

// UpdateProduct overwrites the mutable product fields. Comments are never
// touched by this operation; they change only through the comment protocol.
func (s *ProductService) UpdateProduct(id string, payload validation.ProductPayload) (*models.Product, error) {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	product.Title = payload.Title
	product.Author = payload.Author
	product.Description = payload.Description
	product.ImageURL = payload.ImageURL
	product.IsActive = payload.IsActive
	product.CategoryIDs = payload.CategoryIDs

	if err := s.productRepo.Update(product); err != nil {
		return nil, err
	}
	return product, nil
}

// DeleteProduct removes a product and returns the removed snapshot.
func (s *ProductService) DeleteProduct(id string) (*models.Product, error) {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if err := s.productRepo.Delete(id); err != nil {
		return nil, err
	}

	s.publishEvent("product.deleted", map[string]interface{}{
		"productID": product.ID,
	})

	return product, nil
}

// GetComments returns the comment sequence of a product as stored.
func (s *ProductService) GetComments(productID string) ([]models.Comment, error) {
	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	return product.Comments, nil
}

// AddComment appends a validated comment to the product's sequence and
// returns both the new comment and the updated parent. The like count
// defaults to zero and the date to now.
func (s *ProductService) AddComment(productID string, payload validation.CommentPayload) (*models.Comment, *models.Product, error) {
	likeCount := 0
	if payload.LikeCount != nil {
		likeCount = *payload.LikeCount
	}

	comment := models.Comment{
		ID:        uuid.New().String(),
		Text:      payload.Text,
		LikeCount: likeCount,
		Username:  payload.Username,
		Date:      time.Now(),
		UserID:    payload.UserID,
	}

	updated, err := s.productRepo.AppendComment(productID, comment)
	if err != nil {
		return nil, nil, err
	}

	s.publishEvent("comment.added", map[string]interface{}{
		"productID": productID,
		"commentID": comment.ID,
		"username":  comment.Username,
	})

	return &comment, updated, nil
}

// UpdateComment overwrites text, username and like count of a comment in
// place; identity and date are unchanged. The whole parent document is
// persisted again.
func (s *ProductService) UpdateComment(productID, commentID string, payload validation.CommentPayload) (*models.Product, error) {
	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i := range product.Comments {
		if product.Comments[i].ID == commentID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, fmt.Errorf("comment with ID %s: %w", commentID, repositories.ErrNotFound)
	}

	likeCount := 0
	if payload.LikeCount != nil {
		likeCount = *payload.LikeCount
	}
	product.Comments[idx].Text = payload.Text
	product.Comments[idx].Username = payload.Username
	product.Comments[idx].LikeCount = likeCount

	if err := s.productRepo.Update(product); err != nil {
		return nil, err
	}
	return product, nil
}

// DeleteComment removes a comment from the product's sequence by id and
// persists the parent.
func (s *ProductService) DeleteComment(productID, commentID string) (*models.Product, error) {
	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}

	remaining := make([]models.Comment, 0, len(product.Comments))
	found := false
	for _, c := range product.Comments {
		if c.ID == commentID {
			found = true
			continue
		}
		remaining = append(remaining, c)
	}
	if !found {
		return nil, fmt.Errorf("comment with ID %s: %w", commentID, repositories.ErrNotFound)
	}

	product.Comments = remaining
	if err := s.productRepo.Update(product); err != nil {
		return nil, err
	}
	return product, nil
}

func detailOf(p models.Product) models.ProductDetail {
	return models.ProductDetail{
		ID:          p.ID,
		Title:       p.Title,
		Author:      p.Author,
		Description: p.Description,
		ImageURL:    p.ImageURL,
		VideoURL:    p.VideoURL,
		Date:        p.Date,
		IsActive:    p.IsActive,
		Comments:    p.Comments,
	}
}

func (s *ProductService) publishEvent(eventType string, payload map[string]interface{}) {
	if s.mqClient == nil {
		return
	}
	body, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Failed to marshal %s event: %v", eventType, err)
		return
	}
	if err := s.mqClient.Publish(eventType, body); err != nil {
		log.Printf("Warning: Failed to publish %s event: %v", eventType, err)
	}
}
