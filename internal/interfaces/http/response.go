package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/invoice-api/internal/application/dto"
)

// success responde con el envelope estándar y success=true.
func success(c *fiber.Ctx, status int, message string, data interface{}) error {
	return c.Status(status).JSON(dto.Envelope{Success: true, Message: message, Data: data})
}

// failure responde con el envelope estándar y success=false.
func failure(c *fiber.Ctx, status int, message string, errs map[string][]string) error {
	return c.Status(status).JSON(dto.Envelope{Success: false, Message: message, Errors: errs})
}

// ErrorHandler convierte errores no manejados (incluidos los de Fiber) al envelope.
func ErrorHandler(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	message := "Internal server error"
	if fe, ok := err.(*fiber.Error); ok {
		status = fe.Code
		message = fe.Message
	}
	return failure(c, status, message, nil)
}
