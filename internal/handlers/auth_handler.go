package handlers

import (
	"log"

	"katalog/internal/services"
	"katalog/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles HTTP requests for registration, login and user info.
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// RegisterRoutes registers the user routes with the Fiber app.
func (h *AuthHandler) RegisterRoutes(router fiber.Router) {
	userRoutes := router.Group("/users")
	userRoutes.Post("/create", h.HandleRegister)
	userRoutes.Post("/auth", h.HandleLogin)
	userRoutes.Get("/userinfo", h.HandleUserInfo)
	userRoutes.Get("/allusers", h.HandleAllUsers)
}

// HandleRegister handles new user registration and issues a token for the
// fresh account.
func (h *AuthHandler) HandleRegister(c *fiber.Ctx) error {
	var payload validation.RegisterPayload
	if err := c.BodyParser(&payload); err != nil {
		log.Printf("Error parsing register request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if err := validation.Register(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	token, user, err := h.authService.RegisterUser(payload)
	if err != nil {
		return respondError(c, err)
	}

	// The password hash is excluded from JSON by the model.
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "User registered successfully",
		"token":   token,
		"user":    user,
	})
}

// HandleLogin handles user login and issues a token.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var payload validation.LoginPayload
	if err := c.BodyParser(&payload); err != nil {
		log.Printf("Error parsing login request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if err := validation.Login(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	token, err := h.authService.LoginUser(payload.Email, payload.Password)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Login successful",
		"token":   token,
	})
}

// HandleUserInfo verifies the bearer token and returns the name and email
// of the user it identifies.
func (h *AuthHandler) HandleUserInfo(c *fiber.Ctx) error {
	info, err := h.authService.GetUserByToken(bearerToken(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(info)
}

// HandleAllUsers returns all users projected to name and email.
func (h *AuthHandler) HandleAllUsers(c *fiber.Ctx) error {
	users, err := h.authService.GetAllUsers()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(users)
}
