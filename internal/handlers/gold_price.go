package handlers

import (
	"errors"

	"khazina/internal/services/goldprice"
	"khazina/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type GoldPriceHandler struct {
	pricing goldprice.Service
}

func NewGoldPriceHandler(pricing goldprice.Service) *GoldPriceHandler {
	return &GoldPriceHandler{pricing: pricing}
}

// GetPrices returns the current per-karat prices. Public endpoint.
func (h *GoldPriceHandler) GetPrices(c *fiber.Ctx) error {
	prices, err := h.pricing.GetPrices(c.Context())
	if err != nil {
		return utils.InternalError(c, "Failed to load gold prices")
	}
	return utils.Success(c, fiber.Map{"prices": prices})
}

// GetPriceByKarat returns the price row for a single karat.
func (h *GoldPriceHandler) GetPriceByKarat(c *fiber.Ctx) error {
	karat, err := c.ParamsInt("karat")
	if err != nil {
		return utils.BadRequest(c, "Invalid karat")
	}

	price, err := h.pricing.GetPriceByKarat(c.Context(), karat)
	if err != nil {
		if errors.Is(err, goldprice.ErrPricingUnavailable) {
			return utils.NotFound(c, "No price for that karat")
		}
		return utils.InternalError(c, "Failed to load gold price")
	}
	return utils.Success(c, fiber.Map{"price": price})
}

// Refresh triggers an immediate pipeline pass; the scheduler runs the same
// pipeline on its own interval. Concurrent runs race on a last-write-wins
// upsert.
func (h *GoldPriceHandler) Refresh(c *fiber.Ctx) error {
	if err := h.pricing.Refresh(c.Context()); err != nil {
		return utils.InternalError(c, "Price refresh failed")
	}
	prices, err := h.pricing.GetPrices(c.Context())
	if err != nil {
		return utils.InternalError(c, "Failed to load gold prices")
	}
	return utils.Success(c, fiber.Map{
		"message": "Prices refreshed",
		"prices":  prices,
	})
}
