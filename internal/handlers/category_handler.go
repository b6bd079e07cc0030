package handlers

import (
	"log"

	"katalog/internal/services"
	"katalog/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// CategoryHandler handles HTTP requests for categories.
type CategoryHandler struct {
	service *services.CategoryService
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(service *services.CategoryService) *CategoryHandler {
	return &CategoryHandler{
		service: service,
	}
}

// RegisterRoutes registers the category routes. Reads are public; mutations
// require an authenticated admin, in that middleware order.
func (h *CategoryHandler) RegisterRoutes(router fiber.Router, auth, admin fiber.Handler) {
	categoryRoutes := router.Group("/categories")
	categoryRoutes.Get("/", h.HandleGetCategories)
	categoryRoutes.Get("/:id", h.HandleGetCategoryByID)
	categoryRoutes.Post("/", auth, admin, h.HandleCreateCategory)
	categoryRoutes.Put("/:id", auth, admin, h.HandleUpdateCategory)
	categoryRoutes.Delete("/:id", auth, admin, h.HandleDeleteCategory)
}

// HandleGetCategories retrieves all categories.
func (h *CategoryHandler) HandleGetCategories(c *fiber.Ctx) error {
	categories, err := h.service.GetAllCategories()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message":    "Categories retrieved successfully",
		"categories": categories,
	})
}

// HandleGetCategoryByID retrieves a single category.
func (h *CategoryHandler) HandleGetCategoryByID(c *fiber.Ctx) error {
	category, err := h.service.GetCategoryByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message":  "Category retrieved successfully",
		"category": category,
	})
}

// HandleCreateCategory creates a new category.
func (h *CategoryHandler) HandleCreateCategory(c *fiber.Ctx) error {
	var payload validation.CategoryPayload
	if err := c.BodyParser(&payload); err != nil {
		log.Printf("Error parsing category request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if err := validation.Category(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	category, err := h.service.CreateCategory(payload)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":  "Category created successfully",
		"category": category,
	})
}

// HandleUpdateCategory overwrites the name of an existing category.
func (h *CategoryHandler) HandleUpdateCategory(c *fiber.Ctx) error {
	var payload validation.CategoryPayload
	if err := c.BodyParser(&payload); err != nil {
		log.Printf("Error parsing category request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	// Existence is checked before validation, matching the 404-first
	// behavior of the update endpoints.
	if _, err := h.service.GetCategoryByID(c.Params("id")); err != nil {
		return respondError(c, err)
	}

	if err := validation.Category(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	category, err := h.service.UpdateCategory(c.Params("id"), payload)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message":  "Category updated successfully",
		"category": category,
	})
}

// HandleDeleteCategory removes a category and returns the removed snapshot.
func (h *CategoryHandler) HandleDeleteCategory(c *fiber.Ctx) error {
	category, err := h.service.DeleteCategory(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message":         "Category deleted successfully",
		"deletedCategory": category,
	})
}
