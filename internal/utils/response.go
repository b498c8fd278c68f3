package utils

import "github.com/gofiber/fiber/v2"

// Respond sends a JSON response with the given status code and payload.
func Respond(c *fiber.Ctx, status int, payload interface{}) error {
	return c.Status(status).JSON(payload)
}

// Success sends a 200 response with the given payload.
func Success(c *fiber.Ctx, payload interface{}) error {
	return Respond(c, fiber.StatusOK, payload)
}

// Created sends a 201 response with the given payload.
func Created(c *fiber.Ctx, payload interface{}) error {
	return Respond(c, fiber.StatusCreated, payload)
}

// Error sends an error response with the given status and message.
func Error(c *fiber.Ctx, status int, message string) error {
	return Respond(c, status, fiber.Map{"error": message})
}

// BadRequest sends a 400 response with the given message.
func BadRequest(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusBadRequest, message)
}

// Unauthorized sends a 401 response with the given message.
func Unauthorized(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusUnauthorized, message)
}

// PaymentRequired sends a 402 response with the given payload.
// Used when an operation needs more credits than the account holds.
func PaymentRequired(c *fiber.Ctx, payload interface{}) error {
	return Respond(c, fiber.StatusPaymentRequired, payload)
}

// Forbidden sends a 403 response with the given message.
func Forbidden(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusForbidden, message)
}

// NotFound sends a 404 response with the given message.
func NotFound(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusNotFound, message)
}

// Conflict sends a 409 response with the given message.
func Conflict(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusConflict, message)
}

// InternalError sends a 500 response with the given message.
func InternalError(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusInternalServerError, message)
}
