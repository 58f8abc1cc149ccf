package middleware

import (
	authutils "ats-backend/lib/utils/auth-utils"

	"github.com/gofiber/fiber/v2"
)

// GetEmployeeID returns the acting employee id from the token claims.
func GetEmployeeID(ctx *fiber.Ctx) string {
	claims := authutils.GetClaims(ctx)
	if sub, exist := claims["sub"]; exist {
		if id, ok := sub.(string); ok {
			return id
		}
	}
	return ""
}
