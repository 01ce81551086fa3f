// Package middleware provides HTTP middleware for the fiber app:
// session-token authentication and admin gating.
package middleware

import (
	"log/slog"
	"strings"

	"khazina/internal/models"
	"khazina/internal/services/auth"
	"khazina/internal/utils"

	"github.com/gofiber/fiber/v2"
)

// SessionCookieName is where the session token lives for browser clients.
// API clients may send the same token as a Bearer header instead.
const SessionCookieName = "session_token"

// AuthMiddleware validates session tokens and places the user claims in the
// request context. The token version is checked against the database so
// logout invalidates outstanding tokens.
type AuthMiddleware struct {
	authService auth.Service
}

func NewAuthMiddleware(authService auth.Service) *AuthMiddleware {
	if authService == nil {
		panic("auth service is required")
	}
	return &AuthMiddleware{authService: authService}
}

func (m *AuthMiddleware) Handler(c *fiber.Ctx) error {
	tokenString := c.Cookies(SessionCookieName)
	if tokenString == "" {
		authHeader := c.Get("Authorization")
		if strings.HasPrefix(authHeader, "Bearer ") {
			tokenString = strings.TrimPrefix(authHeader, "Bearer ")
		}
	}
	if tokenString == "" {
		return utils.Unauthorized(c, "authentication required")
	}

	claims, err := utils.ParseToken(tokenString)
	if err != nil {
		return utils.Unauthorized(c, "invalid token")
	}

	currentVersion, err := m.authService.GetUserTokenVersion(c.Context(), claims.UserID)
	if err != nil {
		slog.Warn("token references unknown user", "user_id", claims.PublicID)
		return utils.Unauthorized(c, "invalid token")
	}
	if claims.TokenVersion != currentVersion {
		return utils.Unauthorized(c, "session expired")
	}

	c.Locals("claims", claims)
	c.Locals("userID", claims.UserID)
	return c.Next()
}

// AdminOnly rejects requests whose claims lack the admin role. It must run
// after AuthMiddleware.Handler.
func AdminOnly(c *fiber.Ctx) error {
	claims, ok := c.Locals("claims").(*models.UserClaims)
	if !ok || claims == nil {
		return utils.Unauthorized(c, "authentication required")
	}
	if !claims.IsAdmin() {
		return utils.Forbidden(c, "insufficient permissions")
	}
	return c.Next()
}

// ClaimsFromContext retrieves the authenticated user's claims, set by
// AuthMiddleware.Handler.
func ClaimsFromContext(c *fiber.Ctx) (*models.UserClaims, bool) {
	claims, ok := c.Locals("claims").(*models.UserClaims)
	return claims, ok && claims != nil
}
