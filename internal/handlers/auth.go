package handlers

import (
	"errors"
	"time"

	"khazina/internal/config"
	"khazina/internal/middleware"
	"khazina/internal/models"
	"khazina/internal/services/auth"
	"khazina/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	authService auth.Service
}

func NewAuthHandler(authService auth.Service) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// extractUserClaims is a helper to pull authenticated claims from context.
func extractUserClaims(c *fiber.Ctx) (*models.UserClaims, error) {
	claims, ok := middleware.ClaimsFromContext(c)
	if !ok {
		return nil, fiber.ErrUnauthorized
	}
	return claims, nil
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var input struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request format")
	}
	if input.Email == "" || input.Password == "" {
		return utils.BadRequest(c, "Email and password are required")
	}

	user, token, err := h.authService.Register(c.Context(), input.Name, input.Email, input.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrEmailTaken):
			return utils.BadRequest(c, "Email already registered")
		case errors.Is(err, auth.ErrWeakPassword):
			return utils.BadRequest(c, "Password must be at least 8 characters")
		default:
			return utils.InternalError(c, "Failed to register")
		}
	}

	h.setSessionCookie(c, token)
	return utils.Respond(c, fiber.StatusCreated, fiber.Map{
		"user":  user,
		"token": token,
	})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request format")
	}

	user, token, err := h.authService.Login(c.Context(), input.Email, input.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			return utils.Unauthorized(c, "Invalid email or password")
		}
		return utils.InternalError(c, "Failed to log in")
	}

	h.setSessionCookie(c, token)
	return utils.Success(c, fiber.Map{
		"user":  user,
		"token": token,
	})
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	if err := h.authService.Logout(c.Context(), claims.UserID); err != nil {
		return utils.InternalError(c, "Failed to log out")
	}

	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
	})
	return utils.Success(c, fiber.Map{"message": "Logged out"})
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	user, err := h.authService.GetUser(c.Context(), claims.UserID)
	if err != nil {
		return utils.Unauthorized(c, "invalid token")
	}
	return utils.Success(c, fiber.Map{"user": user})
}

func (h *AuthHandler) ForgotPassword(c *fiber.Ctx) error {
	var input struct {
		Email string `json:"email"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request format")
	}
	if input.Email == "" {
		return utils.BadRequest(c, "Email is required")
	}

	debugToken, err := h.authService.ForgotPassword(c.Context(), input.Email)
	if err != nil {
		return utils.InternalError(c, "Failed to start password reset")
	}

	resp := fiber.Map{"message": "If the email exists, a reset link has been sent"}
	if debugToken != "" {
		resp["debug_token"] = debugToken
	}
	return utils.Success(c, resp)
}

func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var input struct {
		Token       string `json:"token"`
		NewPassword string `json:"new_password"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request format")
	}

	err := h.authService.ResetPassword(c.Context(), input.Token, input.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidResetToken):
			return utils.BadRequest(c, "Invalid or expired reset token")
		case errors.Is(err, auth.ErrWeakPassword):
			return utils.BadRequest(c, "Password must be at least 8 characters")
		default:
			return utils.InternalError(c, "Failed to reset password")
		}
	}
	return utils.Success(c, fiber.Map{"message": "Password updated"})
}

func (h *AuthHandler) setSessionCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    token,
		Expires:  time.Now().Add(7 * 24 * time.Hour),
		HTTPOnly: true,
		Secure:   config.IsProduction(),
		SameSite: "Lax",
	})
}
