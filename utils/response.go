package utils

import (
	"log"

	"github.com/gofiber/fiber/v2"
)

// Envelope is the JSON shape every endpoint answers with.
type Envelope struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Data    interface{}       `json:"data,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
}

func Success(c *fiber.Ctx, status int, message string, data interface{}) error {
	return c.Status(status).JSON(Envelope{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func Fail(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(Envelope{
		Success: false,
		Message: message,
	})
}

// FailValidation returns a 400 with field-level messages.
func FailValidation(c *fiber.Ctx, message string, fields map[string]string) error {
	return c.Status(fiber.StatusBadRequest).JSON(Envelope{
		Success: false,
		Message: message,
		Errors:  fields,
	})
}

// FailInternal logs the underlying error and answers with a generic
// message, keeping raw error text out of the response body.
func FailInternal(c *fiber.Ctx, message string, err error) error {
	log.Printf("%s %s: %s: %v", c.Method(), c.Path(), message, err)
	return c.Status(fiber.StatusInternalServerError).JSON(Envelope{
		Success: false,
		Message: message,
	})
}
