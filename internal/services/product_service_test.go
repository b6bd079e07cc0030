package services_test

import (
	"testing"
	"time"

	"katalog/internal/models"
	"katalog/internal/repositories"
	"katalog/internal/services"
	"katalog/internal/validation"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

// capturingPublisher records published event types for assertions.
type capturingPublisher struct {
	events []string
}

func (p *capturingPublisher) Publish(eventType string, body []byte) error {
	p.events = append(p.events, eventType)
	return nil
}

func newProductFixture(t *testing.T) (*services.ProductService, *services.CategoryService, *capturingPublisher) {
	t.Helper()
	publisher := &capturingPublisher{}
	categoryRepo := repositories.NewMockCategoryRepository()
	productRepo := repositories.NewMockProductRepository()
	return services.NewProductService(productRepo, categoryRepo, publisher),
		services.NewCategoryService(categoryRepo),
		publisher
}

func intPtr(v int) *int { return &v }

func TestProductService_CreateProduct(t *testing.T) {
	productSvc, categorySvc, publisher := newProductFixture(t)

	fiction, err := categorySvc.CreateCategory(validation.CategoryPayload{Name: "Fiction"})
	assert.NoError(t, err)

	created, err := productSvc.CreateProduct(validation.ProductPayload{
		Title:       "The Martian",
		Author:      "Andy Weir",
		Description: "Stranded on Mars",
		VideoURL:    "http://vid/martian",
		IsActive:    true,
		CategoryIDs: []string{fiction.ID},
		Comments: []models.Comment{
			{Text: "imported", Username: "ann", UserID: "u1"},
			{ID: "keep-me", Text: "kept", Username: "bob", UserID: "u2", Date: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)},
		},
	})
	assert.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.False(t, created.Date.IsZero())

	// Bulk comments are stored verbatim; only missing ids and dates are filled.
	assert.Len(t, created.Comments, 2)
	assert.NotEmpty(t, created.Comments[0].ID)
	assert.False(t, created.Comments[0].Date.IsZero())
	assert.Equal(t, "keep-me", created.Comments[1].ID)
	assert.Equal(t, time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), created.Comments[1].Date)

	assert.Equal(t, []string{"product.created"}, publisher.events)
}

func TestProductService_GetAllProducts(t *testing.T) {
	productSvc, categorySvc, _ := newProductFixture(t)

	fiction, err := categorySvc.CreateCategory(validation.CategoryPayload{Name: "Fiction"})
	assert.NoError(t, err)

	_, err = productSvc.CreateProduct(validation.ProductPayload{
		Title:       "The Martian",
		Author:      "Andy Weir",
		Description: "Stranded on Mars",
		IsActive:    true,
		CategoryIDs: []string{fiction.ID},
		Comments:    []models.Comment{{Text: "great", Username: "ann", UserID: "u1", LikeCount: 3}},
	})
	assert.NoError(t, err)

	views, err := productSvc.GetAllProducts()
	assert.NoError(t, err)
	assert.Len(t, views, 1)

	// Category references come back fully resolved in the listing.
	assert.Len(t, views[0].Categories, 1)
	assert.Equal(t, fiction.ID, views[0].Categories[0].ID)
	assert.Equal(t, "Fiction", views[0].Categories[0].Name)

	assert.Len(t, views[0].Comments, 1)
	assert.Equal(t, "great", views[0].Comments[0].Text)
	assert.Equal(t, 3, views[0].Comments[0].LikeCount)
}

func TestProductService_GetProductByID(t *testing.T) {
	productSvc, categorySvc, _ := newProductFixture(t)

	fiction, err := categorySvc.CreateCategory(validation.CategoryPayload{Name: "Fiction", ImageURL: "http://img/f.png"})
	assert.NoError(t, err)

	created, err := productSvc.CreateProduct(validation.ProductPayload{
		Title:       "The Martian",
		Author:      "Andy Weir",
		Description: "Stranded on Mars",
		IsActive:    true,
		CategoryIDs: []string{fiction.ID},
	})
	assert.NoError(t, err)

	detail, err := productSvc.GetProductByID(created.ID)
	assert.NoError(t, err)
	assert.Equal(t, created.ID, detail.ID)
	assert.True(t, detail.IsActive)

	// The detail view resolves categories to names only.
	assert.Equal(t, []models.Category{{Name: "Fiction"}}, detail.Categories)

	_, err = productSvc.GetProductByID("missing")
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestProductService_GetProductsByCategory(t *testing.T) {
	productSvc, categorySvc, _ := newProductFixture(t)

	fiction, err := categorySvc.CreateCategory(validation.CategoryPayload{Name: "Fiction", ImageURL: "http://img/f.png"})
	assert.NoError(t, err)
	history, err := categorySvc.CreateCategory(validation.CategoryPayload{Name: "History"})
	assert.NoError(t, err)

	_, err = productSvc.CreateProduct(validation.ProductPayload{
		Title:       "The Martian",
		Author:      "Andy Weir",
		Description: "Stranded on Mars",
		CategoryIDs: []string{fiction.ID},
	})
	assert.NoError(t, err)
	_, err = productSvc.CreateProduct(validation.ProductPayload{
		Title:       "SPQR",
		Author:      "Mary Beard",
		Description: "A history of ancient Rome",
		CategoryIDs: []string{history.ID},
	})
	assert.NoError(t, err)

	details, err := productSvc.GetProductsByCategory(fiction.ID)
	assert.NoError(t, err)
	assert.Len(t, details, 1)
	assert.Equal(t, "The Martian", details[0].Title)

	// References are fully resolved on this path.
	assert.Equal(t, []models.Category{{ID: fiction.ID, Name: "Fiction", ImageURL: "http://img/f.png"}}, details[0].Categories)

	// A malformed id fails before the store is consulted.
	_, err = productSvc.GetProductsByCategory("not-a-uuid")
	assert.ErrorIs(t, err, services.ErrInvalidID)

	// A well-formed id with no products is a not-found.
	_, err = productSvc.GetProductsByCategory(uuid.New().String())
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestProductService_UpdateProduct(t *testing.T) {
	productSvc, _, _ := newProductFixture(t)

	created, err := productSvc.CreateProduct(validation.ProductPayload{
		Title:       "The Martian",
		Author:      "Andy Weir",
		Description: "Stranded on Mars",
		VideoURL:    "http://vid/martian",
		IsActive:    true,
		Comments:    []models.Comment{{Text: "great", Username: "ann", UserID: "u1"}},
	})
	assert.NoError(t, err)

	updated, err := productSvc.UpdateProduct(created.ID, validation.ProductPayload{
		Title:       "The Martian (2nd ed.)",
		Author:      "Andy Weir",
		Description: "Still stranded on Mars",
		VideoURL:    "http://vid/other",
		IsActive:    false,
	})
	assert.NoError(t, err)
	assert.Equal(t, "The Martian (2nd ed.)", updated.Title)
	assert.False(t, updated.IsActive)

	// The video url and the comment sequence survive an update untouched.
	assert.Equal(t, "http://vid/martian", updated.VideoURL)
	assert.Len(t, updated.Comments, 1)

	_, err = productSvc.UpdateProduct("missing", validation.ProductPayload{
		Title:       "abc",
		Author:      "abc",
		Description: "abc",
	})
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestProductService_DeleteProduct(t *testing.T) {
	productSvc, _, publisher := newProductFixture(t)

	created, err := productSvc.CreateProduct(validation.ProductPayload{
		Title:       "The Martian",
		Author:      "Andy Weir",
		Description: "Stranded on Mars",
	})
	assert.NoError(t, err)

	deleted, err := productSvc.DeleteProduct(created.ID)
	assert.NoError(t, err)
	assert.Equal(t, created.ID, deleted.ID)

	_, err = productSvc.GetProductByID(created.ID)
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	assert.Equal(t, []string{"product.created", "product.deleted"}, publisher.events)
}

func TestProductService_AddComment(t *testing.T) {
	productSvc, _, publisher := newProductFixture(t)

	created, err := productSvc.CreateProduct(validation.ProductPayload{
		Title:       "The Martian",
		Author:      "Andy Weir",
		Description: "Stranded on Mars",
	})
	assert.NoError(t, err)

	comment, parent, err := productSvc.AddComment(created.ID, validation.CommentPayload{
		Text:     "loved it",
		Username: "ann",
		UserID:   "u1",
	})
	assert.NoError(t, err)
	assert.NotEmpty(t, comment.ID)
	assert.False(t, comment.Date.IsZero())
	assert.Equal(t, 0, comment.LikeCount)
	assert.Len(t, parent.Comments, 1)

	// An explicit like count is kept.
	liked, parent, err := productSvc.AddComment(created.ID, validation.CommentPayload{
		Text:      "me too",
		LikeCount: intPtr(7),
		Username:  "bob",
		UserID:    "u2",
	})
	assert.NoError(t, err)
	assert.Equal(t, 7, liked.LikeCount)
	assert.Len(t, parent.Comments, 2)

	_, _, err = productSvc.AddComment("missing", validation.CommentPayload{Username: "ann", UserID: "u1"})
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	assert.Equal(t, []string{"product.created", "comment.added", "comment.added"}, publisher.events)
}

func TestProductService_UpdateComment(t *testing.T) {
	productSvc, _, _ := newProductFixture(t)

	created, err := productSvc.CreateProduct(validation.ProductPayload{
		Title:       "The Martian",
		Author:      "Andy Weir",
		Description: "Stranded on Mars",
	})
	assert.NoError(t, err)

	comment, _, err := productSvc.AddComment(created.ID, validation.CommentPayload{
		Text:      "loved it",
		LikeCount: intPtr(5),
		Username:  "ann",
		UserID:    "u1",
	})
	assert.NoError(t, err)

	updated, err := productSvc.UpdateComment(created.ID, comment.ID, validation.CommentPayload{
		Text:     "changed my mind",
		Username: "ann",
		UserID:   "u1",
	})
	assert.NoError(t, err)
	assert.Len(t, updated.Comments, 1)
	assert.Equal(t, "changed my mind", updated.Comments[0].Text)
	// An absent like count resets to zero; id and date are untouched.
	assert.Equal(t, 0, updated.Comments[0].LikeCount)
	assert.Equal(t, comment.ID, updated.Comments[0].ID)
	assert.Equal(t, comment.Date.Unix(), updated.Comments[0].Date.Unix())

	_, err = productSvc.UpdateComment(created.ID, "missing", validation.CommentPayload{Username: "ann", UserID: "u1"})
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestProductService_DeleteComment(t *testing.T) {
	productSvc, _, _ := newProductFixture(t)

	created, err := productSvc.CreateProduct(validation.ProductPayload{
		Title:       "The Martian",
		Author:      "Andy Weir",
		Description: "Stranded on Mars",
	})
	assert.NoError(t, err)

	first, _, err := productSvc.AddComment(created.ID, validation.CommentPayload{Text: "a", Username: "ann", UserID: "u1"})
	assert.NoError(t, err)
	second, _, err := productSvc.AddComment(created.ID, validation.CommentPayload{Text: "b", Username: "bob", UserID: "u2"})
	assert.NoError(t, err)

	updated, err := productSvc.DeleteComment(created.ID, first.ID)
	assert.NoError(t, err)
	assert.Len(t, updated.Comments, 1)
	assert.Equal(t, second.ID, updated.Comments[0].ID)

	_, err = productSvc.DeleteComment(created.ID, first.ID)
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	comments, err := productSvc.GetComments(created.ID)
	assert.NoError(t, err)
	assert.Len(t, comments, 1)
}
