package handlers

import (
	"log"

	"katalog/internal/services"
	"katalog/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// ProductHandler handles HTTP requests for products and their comments.
type ProductHandler struct {
	service *services.ProductService
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService) *ProductHandler {
	return &ProductHandler{
		service: service,
	}
}

// RegisterRoutes registers the product and comment routes. Comment routes
// come first so "comment" is not captured by the :id parameter. Reads are
// public, product mutations need an admin, comment mutations any
// authenticated user.
func (h *ProductHandler) RegisterRoutes(router fiber.Router, auth, admin fiber.Handler) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleGetProducts)
	productRoutes.Get("/byCategory/:categoryId", h.HandleGetProductsByCategory)
	productRoutes.Get("/comment/:productId", h.HandleGetComments)
	productRoutes.Post("/comment/:productId", auth, h.HandleAddComment)
	productRoutes.Put("/comment/:productId/:commentId", auth, h.HandleUpdateComment)
	productRoutes.Delete("/comment/:productId/:commentId", auth, h.HandleDeleteComment)
	productRoutes.Get("/:id", h.HandleGetProductByID)
	productRoutes.Post("/", auth, admin, h.HandleCreateProduct)
	productRoutes.Put("/:id", auth, admin, h.HandleUpdateProduct)
	productRoutes.Delete("/:id", auth, admin, h.HandleDeleteProduct)
}

// HandleGetProducts retrieves all products in the listing projection.
func (h *ProductHandler) HandleGetProducts(c *fiber.Ctx) error {
	products, err := h.service.GetAllProducts()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(products)
}

// HandleGetProductByID retrieves a single product with category names
// resolved.
func (h *ProductHandler) HandleGetProductByID(c *fiber.Ctx) error {
	product, err := h.service.GetProductByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Product retrieved successfully",
		"product": product,
	})
}

// HandleGetProductsByCategory retrieves all products in a category.
func (h *ProductHandler) HandleGetProductsByCategory(c *fiber.Ctx) error {
	products, err := h.service.GetProductsByCategory(c.Params("categoryId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"success":  true,
		"message":  "Products retrieved successfully",
		"products": products,
	})
}

// HandleCreateProduct creates a new product.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var payload validation.ProductPayload
	if err := c.BodyParser(&payload); err != nil {
		log.Printf("Error parsing product request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if err := validation.Product(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	product, err := h.service.CreateProduct(payload)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Product created successfully",
		"product": product,
	})
}

// HandleUpdateProduct overwrites the mutable fields of a product.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	var payload validation.ProductPayload
	if err := c.BodyParser(&payload); err != nil {
		log.Printf("Error parsing product request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if _, err := h.service.GetProductByID(c.Params("id")); err != nil {
		return respondError(c, err)
	}

	if err := validation.Product(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	product, err := h.service.UpdateProduct(c.Params("id"), payload)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message":        "Product updated successfully",
		"updatedProduct": product,
	})
}

// HandleDeleteProduct removes a product and returns the removed snapshot.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	product, err := h.service.DeleteProduct(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message":        "Product deleted successfully",
		"deletedProduct": product,
	})
}

// HandleGetComments returns the comment sequence of a product.
func (h *ProductHandler) HandleGetComments(c *fiber.Ctx) error {
	comments, err := h.service.GetComments(c.Params("productId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message":  "Comments retrieved successfully",
		"comments": comments,
	})
}

// HandleAddComment appends a comment to a product.
func (h *ProductHandler) HandleAddComment(c *fiber.Ctx) error {
	var payload validation.CommentPayload
	if err := c.BodyParser(&payload); err != nil {
		log.Printf("Error parsing comment request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if err := validation.Comment(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	comment, product, err := h.service.AddComment(c.Params("productId"), payload)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":        "Comment added successfully",
		"comment":        comment,
		"updatedProduct": product,
	})
}

// HandleUpdateComment overwrites a comment in place. The payload is not
// re-validated here; only the add path validates.
func (h *ProductHandler) HandleUpdateComment(c *fiber.Ctx) error {
	var payload validation.CommentPayload
	if err := c.BodyParser(&payload); err != nil {
		log.Printf("Error parsing comment request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	product, err := h.service.UpdateComment(c.Params("productId"), c.Params("commentId"), payload)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message":        "Comment updated successfully",
		"updatedProduct": product,
	})
}

// HandleDeleteComment removes a comment from a product.
func (h *ProductHandler) HandleDeleteComment(c *fiber.Ctx) error {
	product, err := h.service.DeleteComment(c.Params("productId"), c.Params("commentId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message":        "Comment deleted successfully",
		"updatedProduct": product,
	})
}
