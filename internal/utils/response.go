package utils

import "github.com/gofiber/fiber/v2"

// Respond writes payload as JSON under the given status code. Handlers use
// this directly for the odd status (201, 402, 503) and the helpers below for
// the common ones.
func Respond(c *fiber.Ctx, status int, payload interface{}) error {
	return c.Status(status).JSON(payload)
}

// Success writes payload with a 200.
func Success(c *fiber.Ctx, payload interface{}) error {
	return Respond(c, fiber.StatusOK, payload)
}

// fail wraps message in the shared {"error": ...} envelope.
func fail(c *fiber.Ctx, status int, message string) error {
	return Respond(c, status, fiber.Map{"error": message})
}

func BadRequest(c *fiber.Ctx, message string) error {
	return fail(c, fiber.StatusBadRequest, message)
}

func Unauthorized(c *fiber.Ctx, message string) error {
	return fail(c, fiber.StatusUnauthorized, message)
}

func Forbidden(c *fiber.Ctx, message string) error {
	return fail(c, fiber.StatusForbidden, message)
}

func NotFound(c *fiber.Ctx, message string) error {
	return fail(c, fiber.StatusNotFound, message)
}

func InternalError(c *fiber.Ctx, message string) error {
	return fail(c, fiber.StatusInternalServerError, message)
}
