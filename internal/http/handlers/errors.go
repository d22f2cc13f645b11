package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	applog "bookworm/internal/log"
	"bookworm/internal/services"
)

const genericMessage = "Something went wrong. Please try again."

// respond maps a core error to a status and a message that is safe to show.
func respond(c *fiber.Ctx, action string, err error) error {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		applog.Security(c, "validation.fail", map[string]any{"action": action, "field": verr.Field})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": verr.Error()})
	case errors.Is(err, services.ErrUnauthenticated):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Authentication required"})
	case errors.Is(err, services.ErrInvalidToken):
		applog.Security(c, "auth.token.invalid", map[string]any{"action": action})
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	case errors.Is(err, services.ErrInvalidCredentials):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid Credentials"})
	case errors.Is(err, services.ErrUnknownUser):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	case errors.Is(err, services.ErrItemNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Item not found"})
	case errors.Is(err, services.ErrDuplicateEmail):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "User with this email already exists."})
	case errors.Is(err, services.ErrStoreUnavailable):
		applog.Error(c, action, err, nil)
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "Service temporarily unavailable, retry soon"})
	default:
		applog.Error(c, action, err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": genericMessage})
	}
}

func badBody(c *fiber.Ctx, action string, err error) error {
	applog.Security(c, "validation.fail", map[string]any{"action": action, "field": "body", "reason": err.Error()})
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "malformed request body"})
}

// ErrorHandler is the app-wide fallback. Internal details are logged, never returned.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) && fe.Code < fiber.StatusInternalServerError {
		return c.Status(fe.Code).JSON(fiber.Map{"error": fe.Message})
	}
	applog.Error(c, "server.error", err, nil)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": genericMessage})
}
