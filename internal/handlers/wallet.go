package handlers

import (
	"errors"

	"khazina/internal/services/goldprice"
	"khazina/internal/services/wallet"
	"khazina/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type WalletHandler struct {
	walletService wallet.Service
}

func NewWalletHandler(walletService wallet.Service) *WalletHandler {
	return &WalletHandler{walletService: walletService}
}

func (h *WalletHandler) GetWallet(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	w, err := h.walletService.GetWallet(c.Context(), claims.UserID, claims.PublicID)
	if err != nil {
		return utils.InternalError(c, "Failed to get wallet")
	}
	return utils.Success(c, fiber.Map{"wallet": w})
}

func (h *WalletHandler) BuyGold(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	var input struct {
		Grams float64 `json:"grams"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request format")
	}

	tx, err := h.walletService.BuyGold(c.Context(), claims.UserID, claims.PublicID, input.Grams)
	if err != nil {
		switch {
		case errors.Is(err, wallet.ErrInvalidAmount):
			return utils.BadRequest(c, "Grams must be greater than 0")
		case errors.Is(err, goldprice.ErrPricingUnavailable):
			return utils.Respond(c, fiber.StatusServiceUnavailable, fiber.Map{"error": "Pricing unavailable, try again shortly"})
		default:
			return utils.InternalError(c, "Purchase failed")
		}
	}

	w, err := h.walletService.GetWallet(c.Context(), claims.UserID, claims.PublicID)
	if err != nil {
		return utils.InternalError(c, "Failed to get updated wallet")
	}
	return utils.Success(c, fiber.Map{
		"message":     "Purchase successful",
		"transaction": tx,
		"wallet":      w,
	})
}

func (h *WalletHandler) SellGold(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	var input struct {
		Grams float64 `json:"grams"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request format")
	}

	tx, err := h.walletService.SellGold(c.Context(), claims.UserID, claims.PublicID, input.Grams)
	if err != nil {
		switch {
		case errors.Is(err, wallet.ErrInvalidAmount):
			return utils.BadRequest(c, "Grams must be greater than 0")
		case errors.Is(err, wallet.ErrInsufficientBalance):
			return utils.BadRequest(c, "Insufficient gold balance")
		case errors.Is(err, goldprice.ErrPricingUnavailable):
			return utils.Respond(c, fiber.StatusServiceUnavailable, fiber.Map{"error": "Pricing unavailable, try again shortly"})
		default:
			return utils.InternalError(c, "Sale failed")
		}
	}

	w, err := h.walletService.GetWallet(c.Context(), claims.UserID, claims.PublicID)
	if err != nil {
		return utils.InternalError(c, "Failed to get updated wallet")
	}
	return utils.Success(c, fiber.Map{
		"message":     "Sale successful",
		"transaction": tx,
		"wallet":      w,
	})
}

func (h *WalletHandler) GetTransactions(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	limit := c.QueryInt("limit", 50)
	txs, err := h.walletService.GetTransactions(c.Context(), claims.UserID, limit)
	if err != nil {
		return utils.InternalError(c, "Failed to load transactions")
	}
	return utils.Success(c, fiber.Map{"transactions": txs})
}
