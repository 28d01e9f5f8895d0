package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/invoice-api/pkg/jwt"
)

// Locals keys para la identidad del usuario en Fiber.
const (
	LocalUserID = "user_id"
	LocalClaims = "claims"
)

const msgUnauthenticated = "Unauthenticated."

// AuthMiddleware valida el Bearer Token JWT y deja los claims en c.Locals.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return failure(c, fiber.StatusUnauthorized, msgUnauthenticated, nil)
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return failure(c, fiber.StatusUnauthorized, msgUnauthenticated, nil)
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return failure(c, fiber.StatusUnauthorized, msgUnauthenticated, nil)
		}
		claims, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return failure(c, fiber.StatusUnauthorized, msgUnauthenticated, nil)
		}
		c.Locals(LocalUserID, claims.UserID)
		c.Locals(LocalClaims, claims)
		return c.Next()
	}
}

// GetUserID devuelve el UserID del contexto (después del middleware de auth).
func GetUserID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalUserID).(string)
	return s
}

// GetClaims devuelve los claims del token, o nil si la ruta no pasó por AuthMiddleware.
func GetClaims(c *fiber.Ctx) *jwt.Claims {
	claims, _ := c.Locals(LocalClaims).(*jwt.Claims)
	return claims
}
