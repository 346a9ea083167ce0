package handlers

import (
	"errors"

	"impulseguard/analysis"

	"github.com/gofiber/fiber/v2"
)

// currentUserID reads the authenticated user id set by the auth middleware.
func currentUserID(c *fiber.Ctx) (string, bool) {
	userID, ok := c.Locals("userID").(string)
	return userID, ok && userID != ""
}

func errorJSON(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}

// aiFailureResponse maps analysis pipeline errors onto the wire contract:
// missing credentials and upstream failures are 500, quota exhaustion is 429.
func aiFailureResponse(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, analysis.ErrNotConfigured):
		return errorJSON(c, fiber.StatusInternalServerError, "AI service is not configured")
	case errors.Is(err, analysis.ErrRateLimited):
		return errorJSON(c, fiber.StatusTooManyRequests, "AI quota exceeded, please try again later")
	default:
		return errorJSON(c, fiber.StatusInternalServerError, "Failed to generate analysis")
	}
}
