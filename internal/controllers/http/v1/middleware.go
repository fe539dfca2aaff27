package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

const userIDKey = "userID"

// requireAuth guards a route behind a bearer token. Missing, malformed and
// rejected tokens all answer 401 with generic messages.
func (r *routes) requireAuth(c *fiber.Ctx) error {
	header := c.Get(fiber.HeaderAuthorization)
	if header == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(MessageResponse{
			Message: "No hay token, permiso denegado",
		})
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(MessageResponse{
			Message: "Formato de token inválido",
		})
	}

	userID, err := r.auth.VerifyToken(parts[1])
	if err != nil {
		// Expired and malformed stay distinct internally; the client
		// sees one generic message.
		r.l.Debug("rejected bearer token", map[string]any{"reason": err.Error()})
		return c.Status(fiber.StatusUnauthorized).JSON(MessageResponse{
			Message: "Token no es válido",
		})
	}

	c.Locals(userIDKey, userID)
	return c.Next()
}

func currentUserID(c *fiber.Ctx) string {
	id, _ := c.Locals(userIDKey).(string)
	return id
}
