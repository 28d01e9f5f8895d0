package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/invoice-api/internal/application/dto"
)

// UserHandler expone el usuario autenticado.
type UserHandler struct{}

// NewUserHandler construye el handler.
func NewUserHandler() *UserHandler {
	return &UserHandler{}
}

// Me devuelve la identidad contenida en el token.
// @Summary      Usuario autenticado
// @Tags         auth
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.Envelope{data=dto.UserResponse}
// @Failure      401  {object}  dto.Envelope
// @Router       /api/user [get]
func (h *UserHandler) Me(c *fiber.Ctx) error {
	claims := GetClaims(c)
	if claims == nil {
		return failure(c, fiber.StatusUnauthorized, msgUnauthenticated, nil)
	}
	return success(c, fiber.StatusOK, "User retrieved successfully", dto.UserResponse{
		ID:    claims.UserID,
		Email: claims.Email,
		Name:  claims.Name,
	})
}
