package handlers

import (
	"errors"
	"log"
	"strings"

	"katalog/internal/repositories"
	"katalog/internal/services"

	"github.com/gofiber/fiber/v2"
)

// respondError maps a service error to its HTTP status. Client-caused
// failures carry their message; anything unexpected is logged and reported
// as a plain server error so store internals never leak.
func respondError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": err.Error(),
		})
	case errors.Is(err, services.ErrInvalidID),
		errors.Is(err, repositories.ErrDuplicateEmail),
		errors.Is(err, services.ErrInvalidCredentials):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	case errors.Is(err, services.ErrInvalidToken):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": services.ErrInvalidToken.Error(),
		})
	}

	log.Printf("Internal error: %v", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "Server error",
	})
}

// bearerToken extracts the token from an "Authorization: Bearer <token>"
// header; empty string when absent or malformed.
func bearerToken(c *fiber.Ctx) string {
	parts := strings.SplitN(c.Get("Authorization"), " ", 2)
	if len(parts) == 2 && parts[0] == "Bearer" {
		return parts[1]
	}
	return ""
}
